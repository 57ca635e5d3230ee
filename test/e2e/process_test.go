// Package e2etest runs the whole extraction pipeline over a committed
// two-page invoice rendering, the way the process command wires it.
package e2etest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/invoice-ledger/internal/domain/extraction"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/resolution"
	"github.com/FACorreiaa/invoice-ledger/internal/domain/summary"
	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/internal/reference"
	"github.com/FACorreiaa/invoice-ledger/internal/report"
	"github.com/FACorreiaa/invoice-ledger/internal/textsource"
)

const testDataDir = "testdata"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInvoicePipeline(t *testing.T) {
	ctx := context.Background()
	prof := profile.Default()

	var (
		table    *reference.Table
		lines    []string
		resolver *resolution.Resolver
		result   *extraction.Result
	)

	t.Run("LoadReference", func(t *testing.T) {
		source := reference.NewCSVFile(filepath.Join(testDataDir, "reference.csv"), testLogger())

		var err error
		table, err = source.Load(ctx)
		require.NoError(t, err, "reference fixture should load")
		assert.Equal(t, 7, table.Len())

		entry, ok := table.Lookup("CHS12BLK")
		require.True(t, ok)
		assert.Equal(t, "600210", entry.GLCode)
	})

	t.Run("RenderText", func(t *testing.T) {
		provider, err := textsource.NewProvider(filepath.Join(testDataDir, "invoice.txt"), testLogger())
		require.NoError(t, err)
		assert.IsType(t, &textsource.PlainText{}, provider, "fixture is already rendered text")

		lines, err = provider.Lines(ctx)
		require.NoError(t, err)
		assert.Greater(t, len(lines), 20, "two pages of lines expected")
	})

	t.Run("Extract", func(t *testing.T) {
		resolver = resolution.New(prof, table, testLogger())
		processor := extraction.NewProcessor(prof, resolver, testLogger())

		var err error
		result, err = processor.Process(lines)
		require.NoError(t, err)

		assert.True(t, result.VendorMatch, "vendor marker is on both page heads")
		assert.Empty(t, result.Warnings, "every line should extract cleanly")
		require.Len(t, result.Items, 8)

		codes := make([]string, 0, len(result.Items))
		for _, item := range result.Items {
			codes = append(codes, item.Code)
		}
		assert.Equal(t, []string{
			"JUC15", "CHS12BLK", "ZZQ99XX", "CCBIQF",
			"N/A-DEPOSIT", "FSC01", "PAP33CT", "KETO12",
		}, codes, "document order, suppressed lines excluded")
		assert.NotContains(t, codes, "BRD88", "zero-quantity line is suppressed")
		assert.NotContains(t, codes, "CHS47UN", "flagged promo line is suppressed")

		juice := result.Items[0]
		assert.Equal(t, "12", juice.Quantity.String())
		assert.Equal(t, "6.00", juice.LineTotal.String())
		assert.Equal(t, "600265", juice.GLCode, "profile override beats the table entry")
		assert.Equal(t, "N/A BEVERAGE", juice.GLDescription)

		unknown := result.Items[2]
		assert.Equal(t, "ASK BOSS", unknown.GLCode)
		assert.Equal(t, "ASK BOSS FOR PROPER GL", unknown.GLDescription)

		sample := result.Items[3]
		assert.True(t, sample.LineTotal.IsZero(), "exception code keeps its zero-total record")
		assert.Equal(t, "600230", sample.GLCode)

		deposit := result.Items[4]
		assert.True(t, deposit.Deposit)
		assert.Equal(t, "1", deposit.Quantity.String())
		assert.Equal(t, "3.60", deposit.LineTotal.String())
		assert.Equal(t, "600265", deposit.GLCode)

		delivery := result.Items[5]
		assert.Equal(t, "DELIVERY", delivery.GLCode)
		assert.Equal(t, "DELIVERY CHARGE", delivery.GLDescription)
	})

	t.Run("Totals", func(t *testing.T) {
		require.NotNil(t, result)
		assert.Equal(t, "2.41", result.Totals.Tax.String())
		assert.Equal(t, "96.00", result.Totals.Invoice.String())
		assert.Equal(t, extraction.TotalFromInvoiceLine, result.Totals.InvoiceSource)
	})

	t.Run("Summarize", func(t *testing.T) {
		require.NotNil(t, result)
		builder := summary.NewBuilder(prof)

		entries := builder.Build(result.Items)
		require.Len(t, entries, 6)

		order := make([]string, 0, len(entries))
		for _, e := range entries {
			order = append(order, e.GLDescription)
		}
		assert.Equal(t, []string{
			"N/A BEVERAGE", "FOOD COST", "ASK BOSS FOR PROPER GL",
			"GROCERY", "PAPER GOODS", "DELIVERY CHARGE",
		}, order, "first-appearance order with delivery moved last")

		assert.Equal(t, "9.60", entries[0].Total.String(), "juice plus deposit")
		assert.Equal(t, "60.00", entries[1].Total.String(), "cheese plus ketchup")
		assert.Equal(t, "4.99", entries[5].Total.String())

		assert.Equal(t, "93.59", builder.ItemsTotal(result.Items).String())
		assert.Nil(t, builder.Reconcile(result.Items, result.Totals),
			"93.59 items + 2.41 tax == 96.00 stated")
	})

	t.Run("Unresolved", func(t *testing.T) {
		require.NotNil(t, resolver)
		assert.Equal(t, []string{"ZZQ99XX"}, resolver.Unresolved())

		suggester := resolution.NewSuggester(table)
		ranked := suggester.Rank("ZZQ99XX", 3)
		require.Len(t, ranked, 3, "every unresolved code still ranks the table")
	})

	t.Run("WriteReport", func(t *testing.T) {
		require.NotNil(t, result)
		out := filepath.Join(t.TempDir(), "run.csv")
		require.NoError(t, report.WriteFile(out, result.Items))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Item Code,Quantity,Line Total,GL Code,GL Description")
		assert.Contains(t, string(data), "JUC15,12.00,6.00,600265,N/A BEVERAGE")
		assert.Contains(t, string(data), "N/A-DEPOSIT,1.00,3.60,600265,N/A BEVERAGE")
	})
}
