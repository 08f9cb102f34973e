// Package browser is the narrow boundary between page objects and the
// browser-automation engine. Every operation carries an explicit timeout.
package browser

import (
	"errors"
	"time"
)

// ErrUnknownState is returned for a wait state the driver cannot express.
var ErrUnknownState = errors.New("unknown selector state")

// State is the condition WaitForSelector waits for.
type State string

const (
	StateVisible  State = "visible"
	StateHidden   State = "hidden"
	StateAttached State = "attached"
	StateDetached State = "detached"
)

// Timeouts bound browser operations. A zero timeout passed to an operation
// falls back to these values.
type Timeouts struct {
	Action     time.Duration
	Navigation time.Duration
}

// DefaultTimeouts returns the timeouts used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Action:     5 * time.Second,
		Navigation: 15 * time.Second,
	}
}

// Driver is everything the page objects need from a browser page.
type Driver interface {
	Navigate(url string) error
	Fill(selector, text string) error
	PressSequentially(selector, text string, delay time.Duration) error
	Click(selector string, timeout time.Duration) error
	WaitForSelector(selector string, state State, timeout time.Duration) error
	WaitForURL(pattern string, timeout time.Duration) error
	IsVisible(selector string) (bool, error)
	TextContent(selector string) (string, error)
	AllTextContents(selector string) ([]string, error)
	Count(selector string) (int, error)
	SelectOption(selector, value string) error
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
	URL() string
}
