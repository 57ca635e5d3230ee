package reference

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerScanRows bounds how deep into a sheet the header search goes.
// Bookkeeping sheets occasionally carry a title row or two above the table.
const headerScanRows = 10

// ExcelFile loads the reference table from an XLSX workbook, the format
// the GL database is maintained in.
type ExcelFile struct {
	path   string
	logger *slog.Logger
}

// NewExcelFile creates an XLSX-backed source for the workbook at path.
func NewExcelFile(path string, logger *slog.Logger) *ExcelFile {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelFile{path: path, logger: logger}
}

// Load opens the workbook, finds the sheet and header row that carry the
// Item Code / GL Code / GL Description columns, and reads every row below.
func (e *ExcelFile) Load(_ context.Context) (*Table, error) {
	f, err := excelize.OpenFile(e.path)
	if err != nil {
		return nil, fmt.Errorf("opening reference workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("closing reference workbook", slog.Any("error", cerr))
		}
	}()
	return loadWorkbook(f, e.logger, e.path)
}

func loadWorkbook(f *excelize.File, logger *slog.Logger, path string) (*Table, error) {
	sheet := findReferenceSheet(f)
	if sheet == "" {
		return nil, ErrEmptySource
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	headerIdx, cols, ok := locateHeader(rows)
	if !ok {
		return nil, ErrNoHeader
	}

	entries := make([]Entry, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		entries = append(entries, Entry{
			ItemCode:      cell(row, cols.item),
			GLCode:        cell(row, cols.glCode),
			GLDescription: cell(row, cols.glDesc),
		})
	}

	table := NewTable(entries)
	if table.Len() == 0 {
		return nil, ErrEmptySource
	}

	logger.Debug("reference table loaded",
		slog.String("source", "xlsx"),
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("entries", table.Len()))
	return table, nil
}

// findReferenceSheet prefers a sheet whose name suggests it holds the GL
// data, falling back to the first sheet in the workbook.
func findReferenceSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	preferred := []string{"reference", "gl", "codes", "database"}
	for _, name := range sheets {
		lower := strings.ToLower(name)
		for _, want := range preferred {
			if strings.Contains(lower, want) {
				return name
			}
		}
	}
	return sheets[0]
}

type columnMap struct {
	item   int
	glCode int
	glDesc int
}

// locateHeader scans the leading rows for one that names all three
// reference columns and returns its index plus the column positions.
func locateHeader(rows [][]string) (int, columnMap, bool) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		if cols, ok := mapReferenceColumns(rows[i]); ok {
			return i, cols, true
		}
	}
	return 0, columnMap{}, false
}

// mapReferenceColumns matches header cells by keyword so minor label
// variations ("Item Code", "ITEM CODES") still resolve.
func mapReferenceColumns(header []string) (columnMap, bool) {
	cols := columnMap{item: -1, glCode: -1, glDesc: -1}
	for i, raw := range header {
		lower := strings.ToLower(strings.TrimSpace(raw))
		if lower == "" {
			continue
		}
		switch {
		case strings.Contains(lower, "item"):
			if cols.item == -1 {
				cols.item = i
			}
		case strings.Contains(lower, "description"):
			if cols.glDesc == -1 {
				cols.glDesc = i
			}
		case strings.Contains(lower, "gl") && strings.Contains(lower, "code"):
			if cols.glCode == -1 {
				cols.glCode = i
			}
		}
	}
	return cols, cols.item >= 0 && cols.glCode >= 0 && cols.glDesc >= 0
}

// cell reads a column with bounds checking: excelize trims trailing empty
// cells, so rows can be shorter than the header.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
