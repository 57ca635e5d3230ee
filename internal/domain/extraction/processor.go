// Package extraction turns the plain-text rendering of a vendor invoice
// into structured item records and document totals. The layout knowledge
// lives in a vendor profile; this package implements the scan itself:
// segmenting the items table, classifying tokens, synthesizing deposit
// records, and recovering the tax and invoice totals.
package extraction

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

// ErrNoItems is returned when a document yields no item records at all,
// which means the file was not an invoice in the expected layout.
var ErrNoItems = errors.New("no items extracted from document")

// Warning is a non-fatal extraction finding. Line is the 1-based document
// line it refers to; zero means the warning concerns the whole document.
type Warning struct {
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
	RawLine string `json:"raw_line,omitempty"`
}

// Resolver assigns a general-ledger classification to a vendor item code.
type Resolver interface {
	Resolve(code string) (glCode, glDescription string)
}

// Result is everything one processing run produced.
type Result struct {
	RunID       uuid.UUID `json:"run_id"`
	Items       []Item    `json:"items"`
	Totals      Totals    `json:"totals"`
	Warnings    []Warning `json:"warnings,omitempty"`
	TotalLines  int       `json:"total_lines"`
	VendorMatch bool      `json:"vendor_match"`
}

// Processor runs the full extraction pass over a document. It is
// stateless between runs: every call to Process scans with a fresh
// segmenter, so the same document always yields the same records.
type Processor struct {
	profile   *profile.Profile
	extractor *Extractor
	totals    *TotalsExtractor
	resolver  Resolver
	logger    *slog.Logger
}

// NewProcessor wires a processor for one vendor profile. The resolver
// supplies GL classifications for extracted item codes.
func NewProcessor(p *profile.Profile, resolver Resolver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		profile:   p,
		extractor: NewExtractor(p, logger),
		totals:    NewTotalsExtractor(p, logger),
		resolver:  resolver,
		logger:    logger,
	}
}

// Process scans the document and returns the extracted records, totals
// and accumulated warnings. A document that yields no items fails with
// ErrNoItems; everything else that goes wrong on a line becomes a
// warning and the scan moves on.
func (p *Processor) Process(lines []string) (*Result, error) {
	result := &Result{
		RunID:      uuid.New(),
		TotalLines: len(lines),
	}

	result.VendorMatch = p.vendorMatch(lines)
	if !result.VendorMatch && p.profile.VendorMarker != "" {
		warn := Warning{Message: "document does not look like a " + p.profile.Name + " invoice"}
		result.Warnings = append(result.Warnings, warn)
		p.logger.Warn(warn.Message, slog.String("expected_marker", p.profile.VendorMarker))
	}

	segmenter := NewSegmenter(p.profile)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !segmenter.Next(line) {
			continue
		}

		item, warn := p.extractor.Extract(i+1, line)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
			p.logger.Warn(warn.Message, slog.Int("line", warn.Line))
		}
		if item == nil {
			continue
		}
		if !item.Deposit {
			item.GLCode, item.GLDescription = p.resolver.Resolve(item.Code)
		}
		result.Items = append(result.Items, *item)
		p.logger.Debug("item extracted",
			slog.String("item_code", item.Code),
			slog.String("quantity", item.Quantity.String()),
			slog.String("line_total", item.LineTotal.String()),
			slog.String("gl_code", item.GLCode),
			slog.Int("line", item.Line))
	}

	if len(result.Items) == 0 {
		return nil, ErrNoItems
	}

	totals, warns := p.totals.Extract(lines)
	result.Totals = totals
	for _, w := range warns {
		result.Warnings = append(result.Warnings, w)
		p.logger.Warn(w.Message)
	}

	p.logger.Info("document processed",
		slog.String("run_id", result.RunID.String()),
		slog.Int("items", len(result.Items)),
		slog.Int("warnings", len(result.Warnings)),
		slog.Int("lines", result.TotalLines))
	return result, nil
}

// vendorMatch reports whether any line carries the vendor marker. A miss
// is only a warning: photocopied or re-rendered invoices sometimes lose
// the letterhead but keep the table.
func (p *Processor) vendorMatch(lines []string) bool {
	marker := p.profile.VendorMarker
	if marker == "" {
		return true
	}
	for _, line := range lines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
