// Package pages wraps each storefront page in an object exposing the
// operations a test performs on it.
package pages

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/imagehealth"
	"github.com/themizzi/shopcheck/internal/retry"
)

// ErrUnexpectedMessage is returned when a page shows a different message than expected.
var ErrUnexpectedMessage = errors.New("unexpected message")

// MatchMode controls how displayed messages are compared with expected ones.
type MatchMode int

const (
	// MatchExact requires the trimmed text to equal the expected message.
	MatchExact MatchMode = iota
	// MatchContains accepts any text containing the expected message.
	MatchContains
)

func (m MatchMode) String() string {
	if m == MatchContains {
		return "contains"
	}
	return "exact"
}

// Matches compares actual against expected using m.
func (m MatchMode) Matches(actual, expected string) bool {
	actual = strings.TrimSpace(actual)
	if m == MatchContains {
		return strings.Contains(actual, expected)
	}
	return actual == expected
}

// Options configure every page object built from them.
type Options struct {
	BaseURL      string
	MessageMatch MatchMode
	Retrier      *retry.Retrier

	// TypeDelay > 0 types text key by key instead of filling the field.
	TypeDelay time.Duration

	// WaitTimeout bounds waits for page readiness. Zero uses the driver default.
	WaitTimeout time.Duration
}

// Base holds the helpers shared by all page objects.
type Base struct {
	driver browser.Driver
	opts   Options
}

func newBase(driver browser.Driver, opts Options) Base {
	if opts.Retrier == nil {
		opts.Retrier = retry.New()
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return Base{driver: driver, opts: opts}
}

// Driver returns the underlying browser driver.
func (b Base) Driver() browser.Driver {
	return b.driver
}

// Type enters text into the field at selector, key by key when a type delay is set.
func (b Base) Type(selector, text string) error {
	if b.opts.TypeDelay > 0 {
		return b.driver.PressSequentially(selector, text, b.opts.TypeDelay)
	}
	return b.driver.Fill(selector, text)
}

// WaitVisible waits until selector is visible.
func (b Base) WaitVisible(selector string) error {
	return b.driver.WaitForSelector(selector, browser.StateVisible, b.opts.WaitTimeout)
}

// Text returns the trimmed text of selector.
func (b Base) Text(selector string) (string, error) {
	text, err := b.driver.TextContent(selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// IsVisible reports whether selector is visible right now.
func (b Base) IsVisible(selector string) (bool, error) {
	return b.driver.IsVisible(selector)
}

// Title returns the page title shown in the header.
func (b Base) Title() (string, error) {
	return b.Text(`[data-test="title"]`)
}

// RetryClick waits for selector to become visible and clicks it, backing off
// between attempts as cfg describes. The per-attempt timeout bounds both steps.
func (b Base) RetryClick(ctx context.Context, selector string, cfg retry.Config) (retry.Outcome, error) {
	outcome, err := b.opts.Retrier.Do(ctx, cfg, func(ctx context.Context, timeout time.Duration) error {
		if err := b.driver.WaitForSelector(selector, browser.StateVisible, timeout); err != nil {
			return err
		}
		return b.driver.Click(selector, timeout)
	})
	if err != nil {
		return outcome, fmt.Errorf("retry click %s: %w", selector, err)
	}
	if !outcome.Success {
		log.Printf("Click on %s failed after %d attempts in %dms: %v", selector, outcome.Attempts, outcome.ElapsedMs(), outcome.LastErr)
	} else if outcome.Attempts > 1 {
		log.Printf("Click on %s succeeded after %d attempts in %dms", selector, outcome.Attempts, outcome.ElapsedMs())
	}
	return outcome, nil
}

// ImageStatus inspects the image at selector.
func (b Base) ImageStatus(selector string) imagehealth.Diagnostic {
	return imagehealth.CheckImageLoaded(b.driver, selector)
}

// ImageDimensions returns the sizes of the image at selector.
func (b Base) ImageDimensions(selector string) (imagehealth.Dimensions, error) {
	return imagehealth.GetImageDimensions(b.driver, selector)
}

// expectMessage reads the message at selector and compares it with expected.
func (b Base) expectMessage(selector, expected string) error {
	if err := b.WaitVisible(selector); err != nil {
		return err
	}
	actual, err := b.Text(selector)
	if err != nil {
		return err
	}
	if !b.opts.MessageMatch.Matches(actual, expected) {
		return fmt.Errorf("%w (%s match): expected %q, got %q", ErrUnexpectedMessage, b.opts.MessageMatch, expected, actual)
	}
	return nil
}

func (b Base) url(path string) string {
	return b.opts.BaseURL + path
}
