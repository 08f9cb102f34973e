// Package price formats, parses and computes the monetary values shown by the storefront.
package price

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the symbol prefixed to every rendered price.
const Currency = "$"

// TaxRate is the fixed sales tax applied to a cart subtotal (8%).
var TaxRate = decimal.RequireFromString("0.08")

// ErrInvalidPrice is returned when a price text carries no numeric content.
var ErrInvalidPrice = errors.New("invalid price")

// Format renders amount with the currency prefix and exactly two decimals,
// rounding half away from zero.
func Format(amount decimal.Decimal) string {
	return Currency + amount.StringFixed(2)
}

// FormatExact renders amount like Format when it is a whole number of cents
// and with all of its digits otherwise, so sub-cent values stay visible.
func FormatExact(amount decimal.Decimal) string {
	if amount.Equal(amount.Round(2)) {
		return Format(amount)
	}
	return Currency + amount.String()
}

// Parse converts a rendered price such as "$29.99" (or "29.99") back into a decimal.
func Parse(text string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(text)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, Currency))
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %q has no numeric content", ErrInvalidPrice, text)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, text, err)
	}
	return amount, nil
}

// StripLabel removes a leading "Label:" from summary texts such as "Item total: $29.99".
func StripLabel(text string) string {
	if i := strings.LastIndex(text, ":"); i >= 0 {
		return strings.TrimSpace(text[i+1:])
	}
	return strings.TrimSpace(text)
}

// CalculateTax returns the unrounded tax owed on subtotal.
func CalculateTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

// CalculateTotal returns subtotal plus tax.
func CalculateTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}

// Round2 rounds to cents, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
