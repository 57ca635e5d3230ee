package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/summary"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

func reportItem(t *testing.T, code string, qty int64, total, glCode, glDescription string) extraction.Item {
	t.Helper()
	m, err := money.NewFromString(total, money.USD)
	require.NoError(t, err)
	return extraction.Item{
		Code:          code,
		Quantity:      decimal.NewFromInt(qty),
		LineTotal:     m,
		GLCode:        glCode,
		GLDescription: glDescription,
	}
}

func mustMoney(t *testing.T, amount string) *money.Money {
	t.Helper()
	m, err := money.NewFromString(amount, money.USD)
	require.NoError(t, err)
	return m
}

func reportData(t *testing.T) Data {
	t.Helper()
	return Data{
		Items: []extraction.Item{
			reportItem(t, "JUC15", 12, "6.00", "600265", "N/A BEVERAGE"),
			reportItem(t, "FSC01", 1, "4.99", "DELIVERY", "DELIVERY CHARGE"),
		},
		Summary: []summary.Entry{
			{GLDescription: "N/A BEVERAGE", Total: mustMoney(t, "6.00")},
			{GLDescription: "DELIVERY CHARGE", Total: mustMoney(t, "4.99")},
		},
		Totals: extraction.Totals{
			Tax:           mustMoney(t, "0.42"),
			Invoice:       mustMoney(t, "11.41"),
			InvoiceSource: extraction.TotalFromInvoiceLine,
		},
		ItemsTotal: mustMoney(t, "10.99"),
	}
}

func TestConsoleRender(t *testing.T) {
	t.Run("fixed layout", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsole(&buf).Render(reportData(t)))

		expected := "\n=== Extracted Items ===\n" +
			"Item Code  Quantity  Line Total  GL Code  GL Description\n" +
			strings.Repeat("-", 80) + "\n" +
			"   JUC15      12.00        6.00   600265 N/A BEVERAGE\n" +
			"   FSC01       1.00        4.99 DELIVERY DELIVERY CHARGE\n" +
			"\n=== Summary by GL Description ===\n" +
			"N/A BEVERAGE                   $6.00\n" +
			"DELIVERY CHARGE                $4.99\n" +
			"\nTax Total: $0.42\n" +
			"Items Total: $10.99\n" +
			"Invoice Total: $11.41\n" +
			"\n=== DONE ===\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("discrepancy block", func(t *testing.T) {
		d := reportData(t)
		d.Totals.Invoice = mustMoney(t, "14.41")
		d.Discrepancy = &summary.Discrepancy{
			ItemsTotal: d.ItemsTotal,
			Expected:   mustMoney(t, "11.41"),
			Stated:     d.Totals.Invoice,
			Difference: mustMoney(t, "-3.00"),
		}

		var buf bytes.Buffer
		require.NoError(t, NewConsole(&buf).Render(d))

		out := buf.String()
		assert.Contains(t, out, "WARNING: Sum of items plus tax doesn't match invoice total")
		assert.Contains(t, out, "Difference: $-3.00")
		assert.True(t, strings.HasSuffix(out, "\n=== DONE ===\n"))
	})

	t.Run("empty run keeps the frame", func(t *testing.T) {
		var buf bytes.Buffer
		d := Data{
			Totals:     extraction.Totals{Tax: money.Zero(money.USD), Invoice: money.Zero(money.USD)},
			ItemsTotal: money.Zero(money.USD),
		}
		require.NoError(t, NewConsole(&buf).Render(d))

		out := buf.String()
		assert.Contains(t, out, "=== Extracted Items ===")
		assert.Contains(t, out, "Tax Total: $0.00")
		assert.NotContains(t, out, "WARNING")
	})
}

func TestWriteCSV(t *testing.T) {
	items := []extraction.Item{
		reportItem(t, "JUC15", 12, "6.25", "600265", "N/A BEVERAGE"),
		reportItem(t, "N/A-DEPOSIT", 1, "1.50", "600265", "N/A BEVERAGE"),
	}

	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, WriteCSV(path, items))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := "Item Code,Quantity,Line Total,GL Code,GL Description\n" +
		"JUC15,12.00,6.25,600265,N/A BEVERAGE\n" +
		"N/A-DEPOSIT,1.00,1.50,600265,N/A BEVERAGE\n"
	assert.Equal(t, expected, string(data))
}

func TestWriteCSVEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Item Code,Quantity,Line Total,GL Code,GL Description\n", string(data))
}

func TestWriteXLSX(t *testing.T) {
	items := []extraction.Item{
		reportItem(t, "JUC15", 12, "6.25", "600265", "N/A BEVERAGE"),
		reportItem(t, "N/A-DEPOSIT", 1, "1.50", "600265", "N/A BEVERAGE"),
	}

	path := filepath.Join(t.TempDir(), "run.xlsx")
	require.NoError(t, WriteXLSX(path, items))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Item Code", "Quantity", "Line Total", "GL Code", "GL Description"}, rows[0])
	assert.Equal(t, []string{"JUC15", "12", "6.25", "600265", "N/A BEVERAGE"}, rows[1])
	assert.Equal(t, []string{"N/A-DEPOSIT", "1", "1.5", "600265", "N/A BEVERAGE"}, rows[2])
}

func TestWriteFileDispatch(t *testing.T) {
	items := []extraction.Item{
		reportItem(t, "JUC15", 12, "6.25", "600265", "N/A BEVERAGE"),
	}

	t.Run("xlsx extension writes a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.XLSX")
		require.NoError(t, WriteFile(path, items))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		assert.NoError(t, f.Close())
	})

	t.Run("anything else is csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.out")
		require.NoError(t, WriteFile(path, items))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "Item Code,Quantity,Line Total,GL Code,GL Description"))
	})
}
