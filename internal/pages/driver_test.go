package pages

import (
	"errors"
	"fmt"
	"time"

	"github.com/themizzi/shopcheck/internal/browser"
)

var errNotFound = errors.New("element not found")

type typed struct {
	selector string
	text     string
	delay    time.Duration
	fill     bool
}

// FakeDriver is an in-memory browser.Driver for page object tests.
type FakeDriver struct {
	Texts      map[string]string
	Lists      map[string][]string
	Counts     map[string]int
	Visible    map[string]bool
	Navigated  []string
	Clicked    []string
	Typed      []typed
	Selected   map[string]string
	Waits      []time.Duration
	CurrentURL string

	// ClickFunc overrides Click when set.
	ClickFunc func(selector string, timeout time.Duration) error
	// WaitFunc overrides WaitForSelector when set.
	WaitFunc     func(selector string, state browser.State, timeout time.Duration) error
	EvaluateFunc func(expression string, arg ...interface{}) (interface{}, error)
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		Texts:    map[string]string{},
		Lists:    map[string][]string{},
		Counts:   map[string]int{},
		Visible:  map[string]bool{},
		Selected: map[string]string{},
	}
}

func (d *FakeDriver) Navigate(url string) error {
	d.Navigated = append(d.Navigated, url)
	d.CurrentURL = url
	return nil
}

func (d *FakeDriver) Fill(selector, text string) error {
	d.Typed = append(d.Typed, typed{selector: selector, text: text, fill: true})
	return nil
}

func (d *FakeDriver) PressSequentially(selector, text string, delay time.Duration) error {
	d.Typed = append(d.Typed, typed{selector: selector, text: text, delay: delay})
	return nil
}

func (d *FakeDriver) Click(selector string, timeout time.Duration) error {
	if d.ClickFunc != nil {
		return d.ClickFunc(selector, timeout)
	}
	d.Clicked = append(d.Clicked, selector)
	return nil
}

func (d *FakeDriver) WaitForSelector(selector string, state browser.State, timeout time.Duration) error {
	d.Waits = append(d.Waits, timeout)
	if d.WaitFunc != nil {
		return d.WaitFunc(selector, state, timeout)
	}
	return nil
}

func (d *FakeDriver) WaitForURL(pattern string, timeout time.Duration) error {
	return nil
}

func (d *FakeDriver) IsVisible(selector string) (bool, error) {
	return d.Visible[selector], nil
}

func (d *FakeDriver) TextContent(selector string) (string, error) {
	text, ok := d.Texts[selector]
	if !ok {
		return "", fmt.Errorf("%w: %s", errNotFound, selector)
	}
	return text, nil
}

func (d *FakeDriver) AllTextContents(selector string) ([]string, error) {
	return d.Lists[selector], nil
}

func (d *FakeDriver) Count(selector string) (int, error) {
	return d.Counts[selector], nil
}

func (d *FakeDriver) SelectOption(selector, value string) error {
	d.Selected[selector] = value
	return nil
}

func (d *FakeDriver) Evaluate(expression string, arg ...interface{}) (interface{}, error) {
	if d.EvaluateFunc != nil {
		return d.EvaluateFunc(expression, arg...)
	}
	return map[string]interface{}{"exists": false}, nil
}

func (d *FakeDriver) URL() string {
	return d.CurrentURL
}
