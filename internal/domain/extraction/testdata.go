package extraction

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/FACorreiaa/invoice-ledger/internal/profile"
	"github.com/FACorreiaa/invoice-ledger/pkg/money"
)

// DocumentGenerator fabricates plain-text invoices in the vendor's layout
// for tests and benchmarks. Generated documents reconcile: the stated
// invoice total is exactly items plus tax.
type DocumentGenerator struct {
	faker      *gofakeit.Faker
	profile    *profile.Profile
	classifier *Classifier
}

// NewDocumentGenerator creates a generator with a fixed seed for
// reproducible documents.
func NewDocumentGenerator(seed int64) *DocumentGenerator {
	p := profile.Default()
	return &DocumentGenerator{
		faker:      gofakeit.New(seed),
		profile:    p,
		classifier: NewClassifier(p),
	}
}

// ItemCode fabricates a code in the vendor's style, three letters and two
// digits, retrying past any candidate the classifier would reject so a
// generated line always survives extraction.
func (g *DocumentGenerator) ItemCode() string {
	for i := 0; i < 10; i++ {
		code := fmt.Sprintf("%s%02d",
			strings.ToUpper(g.faker.LetterN(3)), g.faker.Number(0, 99))
		if g.classifier.IsItemCode(code) {
			return code
		}
	}
	return fmt.Sprintf("ITM%02d", g.faker.Number(0, 99))
}

// ItemLine renders one items-table body line and returns the amount it
// charges.
func (g *DocumentGenerator) ItemLine() (string, *money.Money) {
	code := g.ItemCode()
	qty := int64(g.faker.Number(1, 40))
	unit := money.New(int64(g.faker.Number(100, 5000)), money.USD)
	total := unit.Multiply(qty)
	desc := strings.ToUpper(g.faker.Fruit())

	line := fmt.Sprintf("%-10s %4d %4d  CS  %-28s %8s %10s",
		code, qty, qty, desc, unit.String(), total.String())
	return line, total
}

// DepositLine renders a bottle-deposit charge line and returns its amount.
// Deposit lines start with a count, not an item code.
func (g *DocumentGenerator) DepositLine() (string, *money.Money) {
	count := g.faker.Number(1, 24)
	total := money.New(int64(g.faker.Number(5, 2000)), money.USD)
	line := fmt.Sprintf("%2d  CS  DEPOSIT %38s", count, total.String())
	return line, total
}

// Document fabricates a complete invoice with the given number of item
// lines plus one deposit line, wrapped in realistic head and footer text.
func (g *DocumentGenerator) Document(itemCount int) []string {
	lines := []string{
		g.profile.VendorMarker,
		fmt.Sprintf("ORDER %06d ROUTE %03d STOP %02d",
			g.faker.Number(100000, 999999), g.faker.Number(1, 999), g.faker.Number(1, 99)),
		"SOLD TO: " + strings.ToUpper(g.faker.Company()),
		"",
		"PRODUCT ID  DESCRIPTION                   ORD  SHP UNIT     PRICE     AMOUNT",
	}

	itemsTotal := money.Zero(money.USD)
	for i := 0; i < itemCount; i++ {
		line, amount := g.ItemLine()
		lines = append(lines, line)
		itemsTotal = itemsTotal.MustAdd(amount)
	}

	depositLine, depositAmount := g.DepositLine()
	lines = append(lines, depositLine)
	itemsTotal = itemsTotal.MustAdd(depositAmount)

	tax := money.New(itemsTotal.Amount()*7/100, money.USD)
	invoice := itemsTotal.MustAdd(tax)

	lines = append(lines,
		fmt.Sprintf("%46sSub Total %12s", "", itemsTotal.String()),
		fmt.Sprintf("%46sTax Total %12s", "", tax.String()),
		fmt.Sprintf("%42sINVOICE TOTAL %12s", "", invoice.String()),
		"",
		"TRY OUR NEW ONLINE ORDERING AT WWW.EXAMPLE.COM",
		"RECEIVED MERCHANDISE IN GOOD CONDITION",
		"X_______________________ PURCHASER SIGN HERE",
	)
	return lines
}
