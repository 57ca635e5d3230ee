package extraction

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// Item is one extracted invoice line: a vendor item or a synthesized
// bottle-deposit record, priced in integer cents and tagged with the GL
// account it posts to.
type Item struct {
	Code          string          `json:"item_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	LineTotal     *money.Money    `json:"line_total"`
	GLCode        string          `json:"gl_code"`
	GLDescription string          `json:"gl_description"`
	Line          int             `json:"line"`
	Deposit       bool            `json:"deposit,omitempty"`
}

// Extractor turns items-table body lines into item records. A line
// yields at most one record; lines that look like neither an item nor a
// deposit yield nothing, which is how column fragments and page-head
// junk inside the table fall away.
type Extractor struct {
	profile     *profile.Profile
	classifier  *Classifier
	zeroRules   *ZeroTotalRules
	terminators *MarkerSet
	currency    string
	logger      *slog.Logger
}

// NewExtractor builds an extractor from the vendor profile.
func NewExtractor(p *profile.Profile, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		profile:     p,
		classifier:  NewClassifier(p),
		zeroRules:   NewZeroTotalRules(p),
		terminators: NewMarkerSet(p.TerminatorPhrases),
		currency:    p.Currency,
		logger:      logger,
	}
}

// Extract inspects one body line and returns a record or a warning.
// A warning always means the line was dropped: it only arises when the
// price scan fails, and a priceless line never survives suppression.
func (e *Extractor) Extract(pos int, line string) (*Item, *Warning) {
	tokens := strings.Fields(line)
	if len(tokens) < e.profile.MinLineTokens {
		return nil, nil
	}
	if len(tokens) >= e.profile.MinItemTokens && e.classifier.IsItemCode(tokens[0]) {
		return e.extractItem(pos, line, tokens)
	}
	// The deposit branch only runs when the line is not shaped like an
	// item row, mirroring how deposits print without their own code.
	if e.isDepositLine(line) {
		return e.extractDeposit(pos, line, tokens), nil
	}
	return nil, nil
}

func (e *Extractor) extractItem(pos int, line string, tokens []string) (*Item, *Warning) {
	code := tokens[0]
	quantity := scanQuantity(tokens)

	var warn *Warning
	total := money.Zero(e.currency)
	if ruleName, forced := e.zeroRules.Apply(code, quantity, line); forced {
		e.logger.Debug("line total forced to zero",
			slog.String("item_code", code),
			slog.String("rule", ruleName),
			slog.Int("line", pos))
	} else if prices := PriceTokens(tokens); len(prices) == 0 {
		warn = &Warning{
			Line:    pos,
			Message: fmt.Sprintf("no price found for item %s", code),
			RawLine: line,
		}
	} else {
		last := prices[len(prices)-1]
		parsed, err := money.NewFromString(last, e.currency)
		if err != nil {
			warn = &Warning{
				Line:    pos,
				Message: fmt.Sprintf("unreadable price %q for item %s", last, code),
				RawLine: line,
			}
		} else {
			total = parsed
		}
	}

	// Zero-total lines are catalog noise, not charges. Only the
	// exception code keeps its record so the ledger shows it arrived.
	if !total.IsPositive() && code != e.profile.ZeroTotalExceptionCode {
		return nil, warn
	}

	return &Item{
		Code:      code,
		Quantity:  quantity,
		LineTotal: total,
		Line:      pos,
	}, warn
}

// isDepositLine matches bottle-deposit charge lines while keeping totals
// lines out, since "DEPOSIT" can also appear in the totals block.
func (e *Extractor) isDepositLine(line string) bool {
	marker := e.profile.Deposit.Marker
	return marker != "" && strings.Contains(line, marker) && !e.terminators.Contains(line)
}

// extractDeposit synthesizes a record for a deposit charge. Deposit lines
// print no item code, so the profile supplies the code and GL account.
// A deposit line without a readable amount yields nothing.
func (e *Extractor) extractDeposit(pos int, line string, tokens []string) *Item {
	prices := PriceTokens(tokens)
	if len(prices) == 0 {
		return nil
	}
	total, err := money.NewFromString(prices[len(prices)-1], e.currency)
	if err != nil {
		return nil
	}

	d := e.profile.Deposit
	return &Item{
		Code:          d.Code,
		Quantity:      decimal.NewFromInt(1),
		LineTotal:     total,
		GLCode:        d.GLCode,
		GLDescription: d.GLDescription,
		Line:          pos,
		Deposit:       true,
	}
}

// scanQuantity returns the first positive numeric token from the three
// positions after the item code, which span the ordered/shipped quantity
// columns across the vendor's layout variants. Lines that ship nothing
// scan to zero.
func scanQuantity(tokens []string) decimal.Decimal {
	for i := 1; i < len(tokens) && i <= 3; i++ {
		if !IsQuantity(tokens[i]) {
			continue
		}
		q, err := ParseQuantity(tokens[i])
		if err != nil {
			continue
		}
		if q.IsPositive() {
			return q
		}
	}
	return decimal.Zero
}
