package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

func TestIsPrice(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"123.45", true},
		{"0.05", true},
		{"1234567.00", true},
		{"1.5", false},      // one decimal place
		{"1.234", false},    // three decimal places
		{"12", false},       // no decimals
		{".50", false},      // no leading digit
		{"-1.50", false},    // signed
		{"$1.50", false},    // currency symbol
		{"1,234.56", false}, // thousands separator
		{"12.00.", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrice(tt.tok))
		})
	}
}

func TestIsQuantity(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"12", true},
		{"0", true},
		{"12.5", true},
		{".5", true},
		{"1.2.3", false},
		{"12a", false},
		{"CS", false},
		{".", false},
		{"", false},
		{"-3", false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuantity(tt.tok))
		})
	}
}

func TestClassifierIsItemCode(t *testing.T) {
	c := NewClassifier(profile.Default())

	tests := []struct {
		name string
		tok  string
		want bool
	}{
		{"typical code", "JUC15", true},
		{"all letters", "CBHWN", true},
		{"all digits", "600265", true},
		{"too short", "AB", false},
		{"lowercase", "juc15", false},
		{"mixed case", "Juc15", false},
		{"punctuation", "JUC-15", false},
		{"stop word exact", "INVOICE", false},
		{"stop word as substring", "SERVICES", false},
		{"stop word embedded", "XPHX10", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsItemCode(tt.tok))
		})
	}
}

func TestPriceTokens(t *testing.T) {
	tokens := []string{"APL01", "10", "10", "CS", "APPLES", "12.50", "125.00"}

	assert.Equal(t, []string{"12.50", "125.00"}, PriceTokens(tokens))
	assert.Nil(t, PriceTokens([]string{"no", "amounts", "here"}))
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", q.String())

	_, err = ParseQuantity("CS")
	assert.Error(t, err)
}
