// Package summary aggregates extracted items into the GL groups the
// bookkeeper posts and cross-checks the document's stated totals.
package summary

import (
	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// ToleranceCents is the reconciliation slack. The vendor rounds line
// totals independently, so a one-cent drift is normal.
const ToleranceCents = 1

// Entry is one GL group with its accumulated total.
type Entry struct {
	GLDescription string       `json:"gl_description"`
	Total         *money.Money `json:"total"`
}

// Discrepancy reports a failed reconciliation.
type Discrepancy struct {
	ItemsTotal *money.Money `json:"items_total"`
	Expected   *money.Money `json:"expected"`   // items plus tax
	Stated     *money.Money `json:"stated"`     // the printed invoice total
	Difference *money.Money `json:"difference"` // expected minus stated, signed
}

// Builder aggregates items and reconciles totals for one vendor profile.
type Builder struct {
	relocateGroup string
	currency      string
}

// NewBuilder creates a builder from the profile's summary rules.
func NewBuilder(p *profile.Profile) *Builder {
	return &Builder{
		relocateGroup: p.Summary.RelocateGroup,
		currency:      p.Currency,
	}
}

// Build groups items by GL description, keeping first-appearance order.
// The relocate group (delivery, for this vendor) moves to the end so it
// prints right above the totals, the way the posting sheet is keyed in.
func (b *Builder) Build(items []extraction.Item) []Entry {
	totals := make(map[string]*money.Money, len(items))
	order := make([]string, 0, len(items))

	for _, item := range items {
		key := item.GLDescription
		if current, ok := totals[key]; ok {
			totals[key] = current.MustAdd(item.LineTotal)
			continue
		}
		totals[key] = item.LineTotal
		order = append(order, key)
	}

	entries := make([]Entry, 0, len(order))
	var relocated *Entry
	for _, key := range order {
		entry := Entry{GLDescription: key, Total: totals[key]}
		if b.relocateGroup != "" && key == b.relocateGroup {
			relocated = &entry
			continue
		}
		entries = append(entries, entry)
	}
	if relocated != nil {
		entries = append(entries, *relocated)
	}
	return entries
}

// ItemsTotal sums every extracted line total.
func (b *Builder) ItemsTotal(items []extraction.Item) *money.Money {
	total := money.Zero(b.currency)
	for _, item := range items {
		total = total.MustAdd(item.LineTotal)
	}
	return total
}

// Reconcile checks items plus tax against the stated invoice total. A
// missing stated total reconciles against zero and therefore reports the
// full amount as the difference; the totals source says how much to
// trust the figure.
func (b *Builder) Reconcile(items []extraction.Item, totals extraction.Totals) *Discrepancy {
	itemsTotal := b.ItemsTotal(items)
	expected := itemsTotal.MustAdd(totals.Tax)
	difference := expected.MustSubtract(totals.Invoice)

	if difference.Abs().Amount() <= ToleranceCents {
		return nil
	}
	return &Discrepancy{
		ItemsTotal: itemsTotal,
		Expected:   expected,
		Stated:     totals.Invoice,
		Difference: difference,
	}
}
