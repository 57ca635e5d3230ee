package extraction

import (
	"log/slog"
	"strings"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// TotalSource records where the stated invoice total came from, so the
// reconciliation report can say how trustworthy the figure is.
type TotalSource string

const (
	// TotalFromInvoiceLine means the amount came from a marker line of
	// its own, the normal case.
	TotalFromInvoiceLine TotalSource = "invoice_total_line"
	// TotalFromTaxLine means the amount was recovered from the totals
	// block, where some layouts print tax and grand total together.
	TotalFromTaxLine TotalSource = "tax_line"
	// TotalMissing means no stated total was found anywhere.
	TotalMissing TotalSource = "missing"
)

// Totals carries the document-level figures used for reconciliation.
type Totals struct {
	Tax           *money.Money `json:"tax"`
	Invoice       *money.Money `json:"invoice_total"`
	InvoiceSource TotalSource  `json:"invoice_total_source"`
}

// TotalsExtractor scans the whole document for the tax and stated
// invoice totals. The scan is independent of table segmentation: totals
// live outside the items table, often on the final page only.
type TotalsExtractor struct {
	taxMarker     string
	invoiceMarker string
	currency      string
	logger        *slog.Logger
}

// NewTotalsExtractor builds a totals scanner from the vendor profile.
func NewTotalsExtractor(p *profile.Profile, logger *slog.Logger) *TotalsExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TotalsExtractor{
		taxMarker:     p.TaxMarker,
		invoiceMarker: p.InvoiceTotalMarker,
		currency:      p.Currency,
		logger:        logger,
	}
}

// Extract pulls the tax and invoice totals out of the document. Either
// figure can be missing; the result then carries a zero amount plus a
// warning, and processing continues.
func (t *TotalsExtractor) Extract(lines []string) (Totals, []Warning) {
	totals := Totals{
		Tax:           money.Zero(t.currency),
		Invoice:       money.Zero(t.currency),
		InvoiceSource: TotalMissing,
	}
	var warnings []Warning

	// Amounts from every tax-marker line, in document order. The first
	// is the tax itself. On layouts that print the totals block as one
	// line, the second is the grand total.
	taxTokens := t.taxLineAmounts(lines)
	if len(taxTokens) > 0 {
		if v, err := money.NewFromString(taxTokens[0], t.currency); err == nil {
			totals.Tax = v
		}
	} else {
		warnings = append(warnings, Warning{Message: "no tax total found in document"})
	}

	if v, ok := t.invoiceTotalFromMarker(lines); ok {
		totals.Invoice = v
		totals.InvoiceSource = TotalFromInvoiceLine
	} else if len(taxTokens) >= 2 {
		if v, err := money.NewFromString(taxTokens[1], t.currency); err == nil {
			totals.Invoice = v
			totals.InvoiceSource = TotalFromTaxLine
		}
	}
	if totals.InvoiceSource == TotalMissing {
		warnings = append(warnings, Warning{Message: "no invoice total found in document"})
	}

	t.logger.Debug("document totals extracted",
		slog.String("tax", totals.Tax.String()),
		slog.String("invoice_total", totals.Invoice.String()),
		slog.String("source", string(totals.InvoiceSource)))
	return totals, warnings
}

func (t *TotalsExtractor) taxLineAmounts(lines []string) []string {
	var amounts []string
	for _, line := range lines {
		if strings.Contains(line, t.taxMarker) {
			amounts = append(amounts, PriceTokens(strings.Fields(line))...)
		}
	}
	return amounts
}

// invoiceTotalFromMarker returns the last amount on the first marker line
// that carries any amount. Marker lines without amounts are passed over,
// which skips the bare column caption some pages print.
func (t *TotalsExtractor) invoiceTotalFromMarker(lines []string) (*money.Money, bool) {
	for _, line := range lines {
		if !strings.Contains(line, t.invoiceMarker) {
			continue
		}
		prices := PriceTokens(strings.Fields(line))
		if len(prices) == 0 {
			continue
		}
		v, err := money.NewFromString(prices[len(prices)-1], t.currency)
		if err != nil {
			continue
		}
		return v, true
	}
	return nil, false
}
