package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

func TestTotalsExtractor(t *testing.T) {
	newExtractor := func() *TotalsExtractor {
		return NewTotalsExtractor(profile.Default(), testLogger())
	}

	t.Run("tax and total from their own lines", func(t *testing.T) {
		totals, warns := newExtractor().Extract([]string{
			"            Sub Total       123.45",
			"            Tax Total         1.23",
			"        INVOICE TOTAL       124.68",
		})

		assert.Empty(t, warns)
		assert.Equal(t, int64(123), totals.Tax.Amount())
		assert.Equal(t, int64(12468), totals.Invoice.Amount())
		assert.Equal(t, TotalFromInvoiceLine, totals.InvoiceSource)
	})

	t.Run("first tax line wins across pages", func(t *testing.T) {
		totals, _ := newExtractor().Extract([]string{
			"Tax Total 1.23",
			"Tax Total 9.99",
			"INVOICE TOTAL 124.68",
		})

		assert.Equal(t, int64(123), totals.Tax.Amount())
	})

	t.Run("bare total captions are passed over", func(t *testing.T) {
		totals, _ := newExtractor().Extract([]string{
			"INVOICE TOTAL",
			"Tax Total 1.23",
			"INVOICE TOTAL 55.00",
		})

		assert.Equal(t, int64(5500), totals.Invoice.Amount())
		assert.Equal(t, TotalFromInvoiceLine, totals.InvoiceSource)
	})

	t.Run("last amount on the marker line is the total", func(t *testing.T) {
		totals, _ := newExtractor().Extract([]string{
			"Tax Total 1.23",
			"INVOICE TOTAL DUE 30 DAYS 55.00",
		})

		assert.Equal(t, int64(5500), totals.Invoice.Amount())
	})

	t.Run("combined totals block recovers the grand total", func(t *testing.T) {
		totals, warns := newExtractor().Extract([]string{
			"Tax Total 1.23 124.68",
		})

		assert.Empty(t, warns)
		assert.Equal(t, int64(123), totals.Tax.Amount())
		assert.Equal(t, int64(12468), totals.Invoice.Amount())
		assert.Equal(t, TotalFromTaxLine, totals.InvoiceSource)
	})

	t.Run("missing tax warns and keeps zero", func(t *testing.T) {
		totals, warns := newExtractor().Extract([]string{
			"INVOICE TOTAL 55.00",
		})

		require.Len(t, warns, 1)
		assert.Contains(t, warns[0].Message, "no tax total")
		assert.True(t, totals.Tax.IsZero())
		assert.Equal(t, int64(5500), totals.Invoice.Amount())
	})

	t.Run("nothing found at all", func(t *testing.T) {
		totals, warns := newExtractor().Extract([]string{
			"APL01 10 10 CS APPLES 12.50 125.00",
		})

		require.Len(t, warns, 2)
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Invoice.IsZero())
		assert.Equal(t, TotalMissing, totals.InvoiceSource)
	})

	t.Run("single tax amount leaves the total missing", func(t *testing.T) {
		totals, warns := newExtractor().Extract([]string{
			"Tax Total 1.23",
		})

		require.Len(t, warns, 1)
		assert.Contains(t, warns[0].Message, "no invoice total")
		assert.Equal(t, TotalMissing, totals.InvoiceSource)
	})
}
