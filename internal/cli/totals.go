package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/themizzi/shopcheck/internal/catalog"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/price"
	"github.com/themizzi/shopcheck/internal/snapshot"
)

// PrintTotals writes the expected totals of one unit of each named product.
// With no names it uses the whole catalog.
func PrintTotals(w io.Writer, names []string) error {
	if len(names) == 0 {
		for _, p := range catalog.Products() {
			names = append(names, p.Name)
		}
	}

	items, err := catalog.LineItems(names...)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Fprintf(w, "%3d x %-36s %10s\n", item.Quantity(), item.Name(), price.Format(item.LineTotal()))
	}
	writeTotals(w, checkout.ComputeTotals(items))
	return nil
}

// VerifySnapshot checks the totals of a saved overview page against its own
// line items and writes the per-field result.
func VerifySnapshot(w io.Writer, path string) (checkout.Comparison, error) {
	f, err := os.Open(path)
	if err != nil {
		return checkout.Comparison{}, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	page, err := snapshot.Parse(f)
	if err != nil {
		return checkout.Comparison{}, err
	}

	cmp, err := page.Verify()
	for _, field := range cmp.Fields {
		status := "ok"
		if !field.Match {
			status = "MISMATCH"
		}
		fmt.Fprintf(w, "%-9s expected %10s  got %10s  %s\n", field.Field, price.FormatExact(field.Expected), price.FormatExact(field.Actual), status)
	}
	return cmp, err
}

func writeTotals(w io.Writer, t checkout.Totals) {
	fmt.Fprintf(w, "%-42s %10s\n", "Item total:", price.Format(t.Subtotal))
	fmt.Fprintf(w, "%-42s %10s\n", "Tax:", price.Format(t.Tax))
	fmt.Fprintf(w, "%-42s %10s\n", "Total:", price.Format(t.Total))
}
