package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/themizzi/shopcheck/internal/price"
)

// TaxTolerance absorbs independent rounding of tax by the page and by us.
var TaxTolerance = decimal.RequireFromString("0.01")

const (
	FieldSubtotal = "subtotal"
	FieldTax      = "tax"
	FieldTotal    = "total"
)

// Totals are derived from line items and never stored.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Observed holds the price texts read from the checkout overview.
type Observed struct {
	SubtotalText string
	TaxText      string
	TotalText    string
}

// FieldResult is the comparison of one total.
type FieldResult struct {
	Field    string
	Expected decimal.Decimal
	Actual   decimal.Decimal
	Match    bool
}

func (f FieldResult) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", f.Field, price.FormatExact(f.Expected), price.FormatExact(f.Actual))
}

// Comparison is the per-field outcome of VerifyTotals.
type Comparison struct {
	Expected Totals
	Actual   Totals
	Fields   []FieldResult
}

// Passed reports whether every field matched.
func (c Comparison) Passed() bool {
	for _, f := range c.Fields {
		if !f.Match {
			return false
		}
	}
	return true
}

// Mismatches returns the fields that did not match.
func (c Comparison) Mismatches() []FieldResult {
	var out []FieldResult
	for _, f := range c.Fields {
		if !f.Match {
			out = append(out, f)
		}
	}
	return out
}

// MismatchError reports every total that differed from the expected value.
type MismatchError struct {
	Fields []FieldResult
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "totals mismatch: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the mismatches.
func (e *MismatchError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ComputeTotals sums items and applies tax rounded to cents.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	tax := price.Round2(price.CalculateTax(subtotal))
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    price.CalculateTotal(subtotal, tax),
	}
}

// VerifyTotals compares the expected totals of items with the observed texts.
// Subtotal and total must match exactly; tax may differ by TaxTolerance.
// A parse failure is returned as an error wrapping price.ErrInvalidPrice. On a
// mismatch the Comparison is returned together with a *MismatchError.
func VerifyTotals(items []LineItem, observed Observed) (Comparison, error) {
	actual, err := parseObserved(observed)
	if err != nil {
		return Comparison{}, err
	}

	expected := ComputeTotals(items)
	cmp := Comparison{
		Expected: expected,
		Actual:   actual,
		Fields: []FieldResult{
			{Field: FieldSubtotal, Expected: expected.Subtotal, Actual: actual.Subtotal, Match: expected.Subtotal.Equal(actual.Subtotal)},
			{Field: FieldTax, Expected: expected.Tax, Actual: actual.Tax, Match: withinTolerance(expected.Tax, actual.Tax)},
			{Field: FieldTotal, Expected: expected.Total, Actual: actual.Total, Match: expected.Total.Equal(actual.Total)},
		},
	}

	if mismatches := cmp.Mismatches(); len(mismatches) > 0 {
		return cmp, &MismatchError{Fields: mismatches}
	}
	return cmp, nil
}

func withinTolerance(expected, actual decimal.Decimal) bool {
	return expected.Sub(actual).Abs().LessThanOrEqual(TaxTolerance)
}

func parseObserved(o Observed) (Totals, error) {
	subtotal, err := price.Parse(o.SubtotalText)
	if err != nil {
		return Totals{}, fmt.Errorf("%s: %w", FieldSubtotal, err)
	}
	tax, err := price.Parse(o.TaxText)
	if err != nil {
		return Totals{}, fmt.Errorf("%s: %w", FieldTax, err)
	}
	total, err := price.Parse(o.TotalText)
	if err != nil {
		return Totals{}, fmt.Errorf("%s: %w", FieldTotal, err)
	}
	return Totals{Subtotal: subtotal, Tax: tax, Total: total}, nil
}
