// Package checkout computes expected cart totals and verifies them against the
// values a storefront renders on its checkout overview.
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName     = errors.New("line item name must not be empty")
	ErrInvalidQuantity = errors.New("line item quantity must be at least 1")
	ErrInvalidPrice    = errors.New("line item unit price must not be negative")
	ErrDuplicateItem   = errors.New("item already in cart")
)

// LineItem is one product line. It cannot be changed once built.
type LineItem struct {
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewLineItem validates and builds a line item.
func NewLineItem(name string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	if strings.TrimSpace(name) == "" {
		return LineItem{}, ErrInvalidName
	}
	if quantity < 1 {
		return LineItem{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: %s", ErrInvalidPrice, unitPrice)
	}
	return LineItem{name: name, quantity: quantity, unitPrice: unitPrice}, nil
}

// MustLineItem is NewLineItem for static test data; it panics on invalid input.
func MustLineItem(name string, quantity int, unitPrice string) LineItem {
	item, err := NewLineItem(name, quantity, decimal.RequireFromString(unitPrice))
	if err != nil {
		panic(err)
	}
	return item
}

func (li LineItem) Name() string               { return li.name }
func (li LineItem) Quantity() int              { return li.quantity }
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }

// LineTotal is unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

// Cart is an ordered set of line items keyed by name.
type Cart struct {
	items []LineItem
	index map[string]int
}

// NewCart builds a cart from items, rejecting duplicate names.
func NewCart(items ...LineItem) (*Cart, error) {
	c := &Cart{index: make(map[string]int, len(items))}
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends item. Adding a name twice is a caller error, not a quantity change.
func (c *Cart) Add(item LineItem) error {
	if item.name == "" {
		return ErrInvalidName
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if _, ok := c.index[item.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.name)
	}
	c.index[item.name] = len(c.items)
	c.items = append(c.items, item)
	return nil
}

// Items returns a copy of the items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Names returns the item names in insertion order.
func (c *Cart) Names() []string {
	names := make([]string, len(c.items))
	for i, item := range c.items {
		names[i] = item.name
	}
	return names
}

func (c *Cart) Len() int { return len(c.items) }

// Totals computes the expected totals of the cart.
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.items)
}
