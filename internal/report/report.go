// Package report renders a finished extraction run: a fixed console
// layout for the operator, and CSV/XLSX item files for the back office.
package report

import (
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/summary"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// Data is everything one rendered report needs.
type Data struct {
	Items       []extraction.Item
	Summary     []summary.Entry
	Totals      extraction.Totals
	ItemsTotal  *money.Money
	Discrepancy *summary.Discrepancy
}

// Row is the flat record written to item files, one per extracted item.
// The header names match the posting sheet the back office keys from.
type Row struct {
	ItemCode      string `csv:"Item Code"`
	Quantity      string `csv:"Quantity"`
	LineTotal     string `csv:"Line Total"`
	GLCode        string `csv:"GL Code"`
	GLDescription string `csv:"GL Description"`
}

// Rows flattens items into file rows, preserving document order.
func Rows(items []extraction.Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			ItemCode:      item.Code,
			Quantity:      item.Quantity.StringFixed(2),
			LineTotal:     item.LineTotal.String(),
			GLCode:        item.GLCode,
			GLDescription: item.GLDescription,
		})
	}
	return rows
}

// WriteFile writes the item rows to path, picking the format from the
// extension: .xlsx gets a workbook, anything else CSV.
func WriteFile(path string, items []extraction.Item) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return WriteXLSX(path, items)
	}
	return WriteCSV(path, items)
}
