package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerSetContains(t *testing.T) {
	ms := NewMarkerSet([]string{"Sub Total", "INVOICE TOTAL"})

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"phrase mid line", "             Sub Total       1,234.56", true},
		{"phrase at start", "INVOICE TOTAL 55.00", true},
		{"absent", "APL01 10 10 CS APPLES 12.50 125.00", false},
		{"case sensitive", "sub total 1.00", false},
		{"empty line", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ms.Contains(tt.line))
		})
	}
}

func TestMarkerSetContainsAll(t *testing.T) {
	ms := NewMarkerSet([]string{"PRODUCT ID", "DESCRIPTION"})

	tests := []struct {
		name string
		line string
		want bool
	}{
		{"both present", "PRODUCT ID  DESCRIPTION   ORD  SHP  PRICE", true},
		{"one missing", "PRODUCT ID   ORD  SHP  PRICE", false},
		{"neither", "APL01 10 10 CS APPLES 125.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ms.ContainsAll(tt.line))
		})
	}
}

func TestMarkerSetEmpty(t *testing.T) {
	ms := NewMarkerSet(nil)

	assert.False(t, ms.Contains("anything at all"))
	assert.False(t, ms.ContainsAll("anything at all"))
	assert.Nil(t, ms.Matches("anything at all"))
	assert.Equal(t, 0, ms.Size())
}

func TestMarkerSetDropsBlankPhrases(t *testing.T) {
	ms := NewMarkerSet([]string{"", "RETURNS", ""})

	assert.Equal(t, 1, ms.Size())
	assert.True(t, ms.Contains("ALL RETURNS REQUIRE A SLIP"))
}

func TestMarkerSetMatches(t *testing.T) {
	ms := NewMarkerSet([]string{"TRY OUR", "RETURNED", "SIGN"})

	got := ms.Matches("X_____________ SIGN HERE FOR RETURNED GOODS")
	assert.ElementsMatch(t, []string{"SIGN", "RETURNED"}, got)
}

func TestMarkerSetRebuild(t *testing.T) {
	ms := NewMarkerSet([]string{"OLD PHRASE"})
	ms.Build([]string{"NEW PHRASE"})

	assert.False(t, ms.Contains("AN OLD PHRASE HERE"))
	assert.True(t, ms.Contains("A NEW PHRASE HERE"))
}
