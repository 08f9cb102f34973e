package pages

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
)

// ErrCartMismatch is returned when the displayed cart differs from the expected lines.
var ErrCartMismatch = errors.New("cart contents mismatch")

// CartPage shows the lines added so far.
type CartPage struct {
	Base
	loc locators.CartLocators
}

func NewCartPage(driver browser.Driver, opts Options) *CartPage {
	return &CartPage{Base: newBase(driver, opts), loc: locators.Cart()}
}

func (p *CartPage) Open() error {
	if err := p.driver.Navigate(p.url("/cart.html")); err != nil {
		return err
	}
	return p.WaitForReady()
}

func (p *CartPage) WaitForReady() error {
	return p.WaitVisible(p.loc.List)
}

// Items reads the displayed lines.
func (p *CartPage) Items() ([]checkout.LineItem, error) {
	return readLines(p.driver, p.loc)
}

// VerifyItems checks that the cart shows exactly expected, in order.
func (p *CartPage) VerifyItems(expected []checkout.LineItem) error {
	if err := p.WaitForReady(); err != nil {
		return err
	}
	actual, err := p.Items()
	if err != nil {
		return err
	}
	return compareLines(expected, actual)
}

// Checkout proceeds to the information step.
func (p *CartPage) Checkout() error {
	return p.driver.Click(p.loc.CheckoutButton, 0)
}

// ContinueShopping returns to the inventory.
func (p *CartPage) ContinueShopping() error {
	return p.driver.Click(p.loc.ContinueShopping, 0)
}

// readLines reads name, quantity and price columns of a cart-style list.
func readLines(driver browser.Driver, loc locators.CartLocators) ([]checkout.LineItem, error) {
	names, err := driver.AllTextContents(loc.ItemName)
	if err != nil {
		return nil, err
	}
	quantities, err := driver.AllTextContents(loc.ItemQuantity)
	if err != nil {
		return nil, err
	}
	prices, err := driver.AllTextContents(loc.ItemPrice)
	if err != nil {
		return nil, err
	}
	if len(quantities) != len(names) || len(prices) != len(names) {
		return nil, fmt.Errorf("%w: %d names, %d quantities, %d prices", ErrCartMismatch, len(names), len(quantities), len(prices))
	}

	items := make([]checkout.LineItem, len(names))
	for i := range names {
		qty, err := strconv.Atoi(strings.TrimSpace(quantities[i]))
		if err != nil {
			return nil, fmt.Errorf("quantity of %s: %w", names[i], err)
		}
		amount, err := price.Parse(prices[i])
		if err != nil {
			return nil, fmt.Errorf("price of %s: %w", names[i], err)
		}
		item, err := checkout.NewLineItem(strings.TrimSpace(names[i]), qty, amount)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return items, nil
}

func compareLines(expected, actual []checkout.LineItem) error {
	if len(expected) != len(actual) {
		return fmt.Errorf("%w: expected %d lines, got %d", ErrCartMismatch, len(expected), len(actual))
	}
	for i := range expected {
		e, a := expected[i], actual[i]
		if e.Name() != a.Name() || e.Quantity() != a.Quantity() || !e.UnitPrice().Equal(a.UnitPrice()) {
			return fmt.Errorf("%w: line %d expected %d x %s at %s, got %d x %s at %s", ErrCartMismatch, i+1,
				e.Quantity(), e.Name(), price.Format(e.UnitPrice()),
				a.Quantity(), a.Name(), price.Format(a.UnitPrice()))
		}
	}
	return nil
}
