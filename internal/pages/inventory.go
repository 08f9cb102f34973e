package pages

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/catalog"
	"github.com/themizzi/shopcheck/internal/imagehealth"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
	"github.com/themizzi/shopcheck/internal/retry"
)

// SortOrder is a value of the product sort dropdown.
type SortOrder string

const (
	SortNameAsc   SortOrder = "az"
	SortNameDesc  SortOrder = "za"
	SortPriceAsc  SortOrder = "lohi"
	SortPriceDesc SortOrder = "hilo"
)

// InventoryPage lists the products.
type InventoryPage struct {
	Base
	loc    locators.InventoryLocators
	shared locators.SharedLocators
}

func NewInventoryPage(driver browser.Driver, opts Options) *InventoryPage {
	return &InventoryPage{
		Base:   newBase(driver, opts),
		loc:    locators.Inventory(),
		shared: locators.Shared(),
	}
}

// Open navigates straight to the inventory. The session must be logged in.
func (p *InventoryPage) Open() error {
	if err := p.driver.Navigate(p.url("/inventory.html")); err != nil {
		return err
	}
	return p.WaitForReady()
}

// WaitForReady waits for the product list.
func (p *InventoryPage) WaitForReady() error {
	return p.WaitVisible(p.loc.Container)
}

// AddToCart clicks the add button of the named product and waits for the
// page to show it in the cart.
func (p *InventoryPage) AddToCart(name string) error {
	loc, err := productLocators(name)
	if err != nil {
		return err
	}
	if err := p.WaitVisible(loc.AddButton); err != nil {
		return err
	}
	if err := p.driver.Click(loc.AddButton, 0); err != nil {
		return err
	}
	return p.WaitVisible(loc.RemoveButton)
}

// WaitInCart waits until the named product shows its remove button.
func (p *InventoryPage) WaitInCart(name string) error {
	loc, err := productLocators(name)
	if err != nil {
		return err
	}
	return p.WaitVisible(loc.RemoveButton)
}

// AddToCartWithRetry clicks the add button of the named product with backoff.
func (p *InventoryPage) AddToCartWithRetry(ctx context.Context, name string, cfg retry.Config) (retry.Outcome, error) {
	loc, err := productLocators(name)
	if err != nil {
		return retry.Outcome{}, err
	}
	return p.RetryClick(ctx, loc.AddButton, cfg)
}

// AddProducts adds every named product in order.
func (p *InventoryPage) AddProducts(names ...string) error {
	if err := p.WaitForReady(); err != nil {
		return err
	}
	for _, name := range names {
		if err := p.AddToCart(name); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
	}
	return nil
}

// RemoveFromCart clicks the remove button of the named product.
func (p *InventoryPage) RemoveFromCart(name string) error {
	loc, err := productLocators(name)
	if err != nil {
		return err
	}
	if err := p.driver.Click(loc.RemoveButton, 0); err != nil {
		return err
	}
	return p.WaitVisible(loc.AddButton)
}

// CartCount returns the number on the cart badge, zero when there is no badge.
func (p *InventoryPage) CartCount() (int, error) {
	n, err := p.driver.Count(p.shared.CartBadge)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	text, err := p.Text(p.shared.CartBadge)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge %q: %w", text, err)
	}
	return count, nil
}

// RemoveButtonCount counts the products currently in the cart as shown by their remove buttons.
func (p *InventoryPage) RemoveButtonCount() (int, error) {
	return p.driver.Count(p.loc.RemoveButtons)
}

// OpenCart follows the cart link.
func (p *InventoryPage) OpenCart() error {
	return p.driver.Click(p.shared.CartLink, 0)
}

// Sort selects order in the sort dropdown.
func (p *InventoryPage) Sort(order SortOrder) error {
	if err := p.WaitVisible(p.loc.SortDropdown); err != nil {
		return err
	}
	return p.driver.SelectOption(p.loc.SortDropdown, string(order))
}

// ProductNames returns the displayed product names in page order.
func (p *InventoryPage) ProductNames() ([]string, error) {
	return p.driver.AllTextContents(p.loc.ItemName)
}

// Prices returns the displayed product prices in page order.
func (p *InventoryPage) Prices() ([]decimal.Decimal, error) {
	texts, err := p.driver.AllTextContents(p.loc.ItemPrice)
	if err != nil {
		return nil, err
	}
	prices := make([]decimal.Decimal, len(texts))
	for i, text := range texts {
		amount, err := price.Parse(text)
		if err != nil {
			return nil, err
		}
		prices[i] = amount
	}
	return prices, nil
}

// ImageStatuses inspects the image of every catalog product.
func (p *InventoryPage) ImageStatuses() map[string]imagehealth.Diagnostic {
	out := make(map[string]imagehealth.Diagnostic)
	for _, product := range catalog.Products() {
		out[product.Name] = p.ImageStatus(product.Locators().Image)
	}
	return out
}

func productLocators(name string) (locators.ProductLocators, error) {
	product, err := catalog.ProductByName(name)
	if err != nil {
		return locators.ProductLocators{}, err
	}
	return product.Locators(), nil
}
