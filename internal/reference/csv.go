package reference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// CSVFile loads the reference table from a delimiter-separated export.
// The delimiter is detected from the header line, so comma, semicolon
// and tab exports all work without configuration.
type CSVFile struct {
	path   string
	logger *slog.Logger
}

// NewCSVFile creates a CSV-backed source for the file at path.
func NewCSVFile(path string, logger *slog.Logger) *CSVFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVFile{path: path, logger: logger}
}

// Load reads and parses the file into a lookup table.
func (c *CSVFile) Load(_ context.Context) (*Table, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("reading reference csv: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptySource
	}

	delimiter := detectDelimiter(firstLine(string(data)))
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delimiter
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})

	var rows []Entry
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing reference csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	table := NewTable(rows)
	if table.Len() == 0 {
		// Rows parsed but no item codes surfaced, so the header row
		// did not carry the expected columns.
		return nil, ErrNoHeader
	}

	c.logger.Debug("reference table loaded",
		slog.String("source", "csv"),
		slog.String("path", c.path),
		slog.String("delimiter", string(delimiter)),
		slog.Int("entries", table.Len()))
	return table, nil
}

// detectDelimiter picks the separator that appears most often in the
// header line, defaulting to comma.
func detectDelimiter(header string) rune {
	best, bestCount := ',', 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(header, string(candidate)); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
