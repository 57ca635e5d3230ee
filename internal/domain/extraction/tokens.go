package extraction

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

var (
	// pricePattern matches the monetary amounts the vendor prints:
	// one or more digits, a dot, exactly two decimals. No thousands
	// separators, no currency symbol, no sign.
	pricePattern = regexp.MustCompile(`^\d+\.\d{2}$`)

	// itemCodePattern matches vendor item codes: uppercase letters and
	// digits only. Lowercase anywhere disqualifies the token.
	itemCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// Classifier decides what role a raw token plays on an invoice line.
// Code-shape rules come from the vendor profile; price and quantity
// shapes are fixed across layouts.
type Classifier struct {
	minCodeLength int
	stopWords     *MarkerSet
}

// NewClassifier builds a classifier from the profile's token rules.
func NewClassifier(p *profile.Profile) *Classifier {
	return &Classifier{
		minCodeLength: p.MinCodeLength,
		stopWords:     NewMarkerSet(p.StopWords),
	}
}

// IsItemCode reports whether tok is shaped like a vendor item code:
// long enough, strictly uppercase alphanumeric, and free of stop words.
// Stop words disqualify by substring, so "SERVICE" also rejects
// "SERVICES".
func (c *Classifier) IsItemCode(tok string) bool {
	if len(tok) < c.minCodeLength {
		return false
	}
	if !itemCodePattern.MatchString(tok) {
		return false
	}
	return !c.stopWords.Contains(tok)
}

// IsPrice reports whether tok is a monetary amount token.
func IsPrice(tok string) bool {
	return pricePattern.MatchString(tok)
}

// IsQuantity reports whether tok is numeric with at most one decimal
// point. Unit counts are printed as integers but short-ship corrections
// occasionally carry decimals.
func IsQuantity(tok string) bool {
	rest := strings.Replace(tok, ".", "", 1)
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseQuantity converts a quantity token to a decimal.
func ParseQuantity(tok string) (decimal.Decimal, error) {
	return decimal.NewFromString(tok)
}

// PriceTokens returns the price-shaped tokens in order of appearance.
func PriceTokens(tokens []string) []string {
	var prices []string
	for _, tok := range tokens {
		if IsPrice(tok) {
			prices = append(prices, tok)
		}
	}
	return prices
}
