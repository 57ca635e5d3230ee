package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
)

// WriteCSV writes the item rows as CSV. An empty run still produces the
// header row, so downstream imports see a valid file.
func WriteCSV(path string, items []extraction.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv report: %w", err)
	}

	rows := Rows(items)
	if err := gocsv.Marshal(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing csv report: %w", err)
	}
	return f.Close()
}
