package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// Console renders the run in the fixed layout the operator reads: item
// rows, the GL summary, the three totals, and the reconciliation
// warning when the figures disagree.
type Console struct {
	w io.Writer
}

// NewConsole creates a renderer; a nil writer means stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Render writes the report. The column widths are fixed so runs line up
// when pasted side by side for comparison.
func (c *Console) Render(d Data) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(c.w, format, args...)
		}
	}

	p("\n=== Extracted Items ===\n")
	p("Item Code  Quantity  Line Total  GL Code  GL Description\n")
	p("%s\n", strings.Repeat("-", 80))
	for _, item := range d.Items {
		p("%8s %10s %11s %8s %s\n",
			item.Code,
			item.Quantity.StringFixed(2),
			item.LineTotal.String(),
			item.GLCode,
			item.GLDescription)
	}

	p("\n=== Summary by GL Description ===\n")
	for _, entry := range d.Summary {
		p("%-30s %s\n", entry.GLDescription, amount(entry.Total))
	}

	p("\nTax Total: %s\n", amount(d.Totals.Tax))
	p("Items Total: %s\n", amount(d.ItemsTotal))
	p("Invoice Total: %s\n", amount(d.Totals.Invoice))

	if d.Discrepancy != nil {
		p("\nWARNING: Sum of items plus tax doesn't match invoice total\n")
		p("Difference: %s\n", amount(d.Discrepancy.Difference))
	}

	p("\n=== DONE ===\n")
	return err
}

func amount(m *money.Money) string {
	return m.CurrencySymbol() + m.String()
}
