package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver adapts a playwright.Page to Driver.
type PlaywrightDriver struct {
	page     playwright.Page
	timeouts Timeouts
}

// NewPlaywrightDriver wraps page. Zero fields in timeouts take the defaults.
func NewPlaywrightDriver(page playwright.Page, timeouts Timeouts) *PlaywrightDriver {
	defaults := DefaultTimeouts()
	if timeouts.Action <= 0 {
		timeouts.Action = defaults.Action
	}
	if timeouts.Navigation <= 0 {
		timeouts.Navigation = defaults.Navigation
	}
	return &PlaywrightDriver{page: page, timeouts: timeouts}
}

// Page returns the wrapped page.
func (d *PlaywrightDriver) Page() playwright.Page {
	return d.page
}

func (d *PlaywrightDriver) Navigate(url string) error {
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		Timeout: ms(d.timeouts.Navigation),
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (d *PlaywrightDriver) Fill(selector, text string) error {
	if err := d.page.Locator(selector).Fill(text, playwright.LocatorFillOptions{
		Timeout: ms(d.timeouts.Action),
	}); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (d *PlaywrightDriver) PressSequentially(selector, text string, delay time.Duration) error {
	if err := d.page.Locator(selector).PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay:   ms(delay),
		Timeout: ms(d.timeouts.Action),
	}); err != nil {
		return fmt.Errorf("type into %s: %w", selector, err)
	}
	return nil
}

func (d *PlaywrightDriver) Click(selector string, timeout time.Duration) error {
	if err := d.page.Locator(selector).Click(playwright.LocatorClickOptions{
		Timeout: ms(d.action(timeout)),
	}); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (d *PlaywrightDriver) WaitForSelector(selector string, state State, timeout time.Duration) error {
	pwState, err := toPlaywrightState(state)
	if err != nil {
		return err
	}
	if err := d.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   pwState,
		Timeout: ms(d.action(timeout)),
	}); err != nil {
		return fmt.Errorf("wait for %s to be %s: %w", selector, state, err)
	}
	return nil
}

func (d *PlaywrightDriver) WaitForURL(pattern string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = d.timeouts.Navigation
	}
	if err := d.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: ms(timeout),
	}); err != nil {
		return fmt.Errorf("wait for url %s: %w", pattern, err)
	}
	return nil
}

func (d *PlaywrightDriver) IsVisible(selector string) (bool, error) {
	visible, err := d.page.Locator(selector).First().IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility of %s: %w", selector, err)
	}
	return visible, nil
}

func (d *PlaywrightDriver) TextContent(selector string) (string, error) {
	text, err := d.page.Locator(selector).TextContent(playwright.LocatorTextContentOptions{
		Timeout: ms(d.timeouts.Action),
	})
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", selector, err)
	}
	return text, nil
}

func (d *PlaywrightDriver) AllTextContents(selector string) ([]string, error) {
	texts, err := d.page.Locator(selector).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("texts of %s: %w", selector, err)
	}
	return texts, nil
}

func (d *PlaywrightDriver) Count(selector string) (int, error) {
	n, err := d.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	return n, nil
}

func (d *PlaywrightDriver) SelectOption(selector, value string) error {
	if _, err := d.page.Locator(selector).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	}, playwright.LocatorSelectOptionOptions{
		Timeout: ms(d.timeouts.Action),
	}); err != nil {
		return fmt.Errorf("select %q in %s: %w", value, selector, err)
	}
	return nil
}

func (d *PlaywrightDriver) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	return d.page.Evaluate(expression, arg...)
}

func (d *PlaywrightDriver) URL() string {
	return d.page.URL()
}

func (d *PlaywrightDriver) action(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return d.timeouts.Action
	}
	return timeout
}

func toPlaywrightState(state State) (*playwright.WaitForSelectorState, error) {
	switch state {
	case StateVisible:
		return playwright.WaitForSelectorStateVisible, nil
	case StateHidden:
		return playwright.WaitForSelectorStateHidden, nil
	case StateAttached:
		return playwright.WaitForSelectorStateAttached, nil
	case StateDetached:
		return playwright.WaitForSelectorStateDetached, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
