package pages

import (
	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
)

// ShippingInfo is the form on the first checkout step. Empty fields are left blank.
type ShippingInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// CheckoutPage covers the information, overview and complete steps.
type CheckoutPage struct {
	Base
	loc  locators.CheckoutLocators
	cart locators.CartLocators
}

func NewCheckoutPage(driver browser.Driver, opts Options) *CheckoutPage {
	return &CheckoutPage{
		Base: newBase(driver, opts),
		loc:  locators.Checkout(),
		cart: locators.Cart(),
	}
}

// FillShippingDetails enters the non-empty fields of info.
func (p *CheckoutPage) FillShippingDetails(info ShippingInfo) error {
	if err := p.WaitVisible(p.loc.FirstName); err != nil {
		return err
	}
	fields := []struct{ selector, value string }{
		{p.loc.FirstName, info.FirstName},
		{p.loc.LastName, info.LastName},
		{p.loc.PostalCode, info.PostalCode},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.Type(f.selector, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Continue submits the information step.
func (p *CheckoutPage) Continue() error {
	return p.driver.Click(p.loc.Continue, 0)
}

// Cancel leaves checkout.
func (p *CheckoutPage) Cancel() error {
	return p.driver.Click(p.loc.Cancel, 0)
}

func (p *CheckoutPage) ErrorMessage() (string, error) {
	return p.Text(p.loc.Error)
}

// ExpectError checks the form error against expected.
func (p *CheckoutPage) ExpectError(expected string) error {
	return p.expectMessage(p.loc.Error, expected)
}

// OverviewItems reads the lines listed on the overview step.
func (p *CheckoutPage) OverviewItems() ([]checkout.LineItem, error) {
	return readLines(p.driver, p.cart)
}

// ObservedTotals reads the summary labels with their captions removed.
func (p *CheckoutPage) ObservedTotals() (checkout.Observed, error) {
	if err := p.WaitVisible(p.loc.Total); err != nil {
		return checkout.Observed{}, err
	}
	texts := make([]string, 3)
	for i, selector := range []string{p.loc.Subtotal, p.loc.Tax, p.loc.Total} {
		text, err := p.Text(selector)
		if err != nil {
			return checkout.Observed{}, err
		}
		texts[i] = price.StripLabel(text)
	}
	return checkout.Observed{SubtotalText: texts[0], TaxText: texts[1], TotalText: texts[2]}, nil
}

// VerifyOrderSummary compares the overview totals with those implied by items.
func (p *CheckoutPage) VerifyOrderSummary(items []checkout.LineItem) (checkout.Comparison, error) {
	observed, err := p.ObservedTotals()
	if err != nil {
		return checkout.Comparison{}, err
	}
	return checkout.VerifyTotals(items, observed)
}

// Finish places the order.
func (p *CheckoutPage) Finish() error {
	return p.driver.Click(p.loc.Finish, 0)
}

// ConfirmationHeader returns the heading of the complete step.
func (p *CheckoutPage) ConfirmationHeader() (string, error) {
	if err := p.WaitVisible(p.loc.CompleteHeader); err != nil {
		return "", err
	}
	return p.Text(p.loc.CompleteHeader)
}

// BackToProducts returns to the inventory after an order.
func (p *CheckoutPage) BackToProducts() error {
	return p.driver.Click(p.loc.BackToProducts, 0)
}
