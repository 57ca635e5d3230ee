// Package reference models the item-code to general-ledger classification
// table and the sources that load it (Excel workbook, CSV export, Postgres).
package reference

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNoHeader is returned when a file source cannot locate the
	// Item Code / GL Code / GL Description header row.
	ErrNoHeader = errors.New("reference: header row not found")

	// ErrEmptySource is returned when a source yields no usable rows.
	ErrEmptySource = errors.New("reference: source contains no entries")
)

// Entry is one classification row: a vendor item code and the GL account
// it posts to. The csv tags match the column names of the upstream export.
type Entry struct {
	ItemCode      string `csv:"Item Code" json:"item_code"`
	GLCode        string `csv:"GL Code" json:"gl_code"`
	GLDescription string `csv:"GL Description" json:"gl_description"`
}

// Source loads the reference table from wherever it lives.
type Source interface {
	Load(ctx context.Context) (*Table, error)
}

// Table is an immutable, order-preserving view of the reference data.
// When the upstream data carries duplicate item codes the first
// occurrence wins, matching how the bookkeeping sheet is maintained.
type Table struct {
	entries []Entry
	byCode  map[string]int
}

// NewTable builds a lookup table from entries. Rows with a blank item
// code are dropped; codes are trimmed but otherwise kept verbatim since
// lookups are case-sensitive.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.ItemCode = strings.TrimSpace(e.ItemCode)
		e.GLCode = strings.TrimSpace(e.GLCode)
		e.GLDescription = strings.TrimSpace(e.GLDescription)
		if e.ItemCode == "" {
			continue
		}
		if _, dup := t.byCode[e.ItemCode]; dup {
			continue
		}
		t.byCode[e.ItemCode] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t
}

// Lookup returns the entry for an exact item code match.
func (t *Table) Lookup(code string) (Entry, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns the rows in load order. The slice is shared; callers
// must not mutate it.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len reports the number of distinct item codes.
func (t *Table) Len() int {
	return len(t.entries)
}
