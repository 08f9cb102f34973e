// Package snapshot reads checkout data from a saved copy of the overview page,
// so totals can be verified without a browser.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
)

// ErrMissingElement is returned when the page lacks an expected element.
var ErrMissingElement = errors.New("missing element")

// Page is a parsed overview page.
type Page struct {
	doc *goquery.Document
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &Page{doc: doc}, nil
}

// ReadTotals parses r and returns its summary totals.
func ReadTotals(r io.Reader) (checkout.Observed, error) {
	p, err := Parse(r)
	if err != nil {
		return checkout.Observed{}, err
	}
	return p.Totals()
}

// ReadItems parses r and returns its line items.
func ReadItems(r io.Reader) ([]checkout.LineItem, error) {
	p, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return p.Items()
}

// Totals returns the summary label texts with their captions removed.
func (p *Page) Totals() (checkout.Observed, error) {
	loc := locators.Checkout()
	subtotal, err := p.text(loc.Subtotal)
	if err != nil {
		return checkout.Observed{}, err
	}
	tax, err := p.text(loc.Tax)
	if err != nil {
		return checkout.Observed{}, err
	}
	total, err := p.text(loc.Total)
	if err != nil {
		return checkout.Observed{}, err
	}
	return checkout.Observed{
		SubtotalText: price.StripLabel(subtotal),
		TaxText:      price.StripLabel(tax),
		TotalText:    price.StripLabel(total),
	}, nil
}

// Items returns the listed lines in page order.
func (p *Page) Items() ([]checkout.LineItem, error) {
	loc := locators.Cart()
	var (
		items []checkout.LineItem
		err   error
	)
	p.doc.Find(loc.Item).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var item checkout.LineItem
		item, err = readItem(s)
		if err != nil {
			err = fmt.Errorf("line %d: %w", i+1, err)
			return false
		}
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Verify checks the page totals against the listed lines.
func (p *Page) Verify() (checkout.Comparison, error) {
	items, err := p.Items()
	if err != nil {
		return checkout.Comparison{}, err
	}
	observed, err := p.Totals()
	if err != nil {
		return checkout.Comparison{}, err
	}
	return checkout.VerifyTotals(items, observed)
}

func (p *Page) text(selector string) (string, error) {
	sel := p.doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingElement, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

func readItem(s *goquery.Selection) (checkout.LineItem, error) {
	name := strings.TrimSpace(s.Find(`[data-test="inventory-item-name"]`).First().Text())
	qtyText := strings.TrimSpace(s.Find(`[data-test="item-quantity"]`).First().Text())
	priceText := s.Find(`[data-test="inventory-item-price"]`).First().Text()

	qty, err := strconv.Atoi(qtyText)
	if err != nil {
		return checkout.LineItem{}, fmt.Errorf("quantity %q: %w", qtyText, err)
	}
	amount, err := price.Parse(priceText)
	if err != nil {
		return checkout.LineItem{}, err
	}
	return checkout.NewLineItem(name, qty, amount)
}
