package extraction

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
)

// zeroTotalRule forces an item's line total to zero when its condition
// holds, regardless of any price tokens printed on the line.
type zeroTotalRule struct {
	Name  string
	Match func(code string, quantity decimal.Decimal, line string) bool
}

// ZeroTotalRules is the ordered table of conditions under which a line
// charges nothing: shorted items, promotional codes the vendor prints
// with a catalog price, and codes known to render misleading amounts.
// The first matching rule wins; its name feeds the debug log.
type ZeroTotalRules struct {
	rules []zeroTotalRule
}

// NewZeroTotalRules builds the rule table from the vendor profile.
func NewZeroTotalRules(p *profile.Profile) *ZeroTotalRules {
	rules := []zeroTotalRule{
		{
			Name: "zero quantity",
			Match: func(_ string, quantity decimal.Decimal, _ string) bool {
				return quantity.IsZero()
			},
		},
	}

	if exception := p.ZeroTotalExceptionCode; exception != "" {
		rules = append(rules, zeroTotalRule{
			Name: "exception item code",
			Match: func(code string, _ decimal.Decimal, _ string) bool {
				return code == exception
			},
		})
	}

	if zeroForce := NewMarkerSet(p.ZeroForceSubstrings); zeroForce.Size() > 0 {
		rules = append(rules, zeroTotalRule{
			Name: "flagged line content",
			Match: func(_ string, _ decimal.Decimal, line string) bool {
				return zeroForce.Contains(line)
			},
		})
	}

	return &ZeroTotalRules{rules: rules}
}

// Apply checks the line against the table and returns the name of the
// first rule that forces a zero total.
func (r *ZeroTotalRules) Apply(code string, quantity decimal.Decimal, line string) (string, bool) {
	for _, rule := range r.rules {
		if rule.Match(code, quantity, line) {
			return rule.Name, true
		}
	}
	return "", false
}
