package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
)

// WriteXLSX writes the item rows as a single-sheet workbook. Quantity
// and line total are numeric cells so the sheet sums without casting.
func WriteXLSX(path string, items []extraction.Item) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	headers := []any{"Item Code", "Quantity", "Line Total", "GL Code", "GL Description"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell: %w", err)
		}
		row := []any{
			item.Code,
			item.Quantity.InexactFloat64(),
			item.LineTotal.ToFloat64(),
			item.GLCode,
			item.GLDescription,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 10)
	_ = f.SetColWidth(sheet, "E", "E", 32)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
