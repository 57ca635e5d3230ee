package resolution

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/internal/reference"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTable() *reference.Table {
	return reference.NewTable([]reference.Entry{
		{ItemCode: "APL01", GLCode: "600210", GLDescription: "PRODUCE"},
		{ItemCode: "JUC15", GLCode: "111111", GLDescription: "SHOULD NOT WIN"},
		{ItemCode: "CHS47UN", GLCode: "600230", GLDescription: "DAIRY"},
	})
}

func TestResolverResolve(t *testing.T) {
	t.Run("profile override beats the table", func(t *testing.T) {
		r := New(profile.Default(), testTable(), testLogger())

		glCode, glDesc := r.Resolve("JUC15")
		assert.Equal(t, "600265", glCode)
		assert.Equal(t, "N/A BEVERAGE", glDesc)
	})

	t.Run("table entry", func(t *testing.T) {
		r := New(profile.Default(), testTable(), testLogger())

		glCode, glDesc := r.Resolve("APL01")
		assert.Equal(t, "600210", glCode)
		assert.Equal(t, "PRODUCE", glDesc)
	})

	t.Run("unknown code falls back to the sentinel", func(t *testing.T) {
		r := New(profile.Default(), testTable(), testLogger())

		glCode, glDesc := r.Resolve("ZZZ99")
		assert.Equal(t, "ASK BOSS", glCode)
		assert.Equal(t, "ASK BOSS FOR PROPER GL", glDesc)
	})

	t.Run("unresolved codes are tracked once in first-seen order", func(t *testing.T) {
		r := New(profile.Default(), testTable(), testLogger())

		r.Resolve("ZZZ99")
		r.Resolve("APL01")
		r.Resolve("YYY88")
		r.Resolve("ZZZ99")

		assert.Equal(t, []string{"ZZZ99", "YYY88"}, r.Unresolved())
	})

	t.Run("resolved codes are not reported", func(t *testing.T) {
		r := New(profile.Default(), testTable(), testLogger())

		r.Resolve("APL01")
		r.Resolve("JUC15")

		assert.Empty(t, r.Unresolved())
	})
}

func TestResolverEmptyTable(t *testing.T) {
	r := New(profile.Default(), reference.NewTable(nil), testLogger())

	// Overrides still work without any table data.
	glCode, _ := r.Resolve("FSC01")
	assert.Equal(t, "DELIVERY", glCode)

	glCode, _ = r.Resolve("APL01")
	assert.Equal(t, "ASK BOSS", glCode)
	require.Len(t, r.Unresolved(), 1)
}
