package money

import (
	"github.com/brianvoe/gofakeit/v6"
)

// TestDataGenerator produces randomized monetary values for tests using gofakeit.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a new test data generator with a random seed.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{
		faker: gofakeit.New(0), // Random seed
	}
}

// NewTestDataGeneratorWithSeed creates a generator with a specific seed for reproducibility.
func NewTestDataGeneratorWithSeed(seed int64) *TestDataGenerator {
	return &TestDataGenerator{
		faker: gofakeit.New(seed),
	}
}

// ============================================================================
// Money Generation
// ============================================================================

// RandomAmount generates a random Money value within a cent range.
func (g *TestDataGenerator) RandomAmount(currency string, minCents, maxCents int64) *Money {
	if minCents > maxCents {
		minCents, maxCents = maxCents, minCents
	}
	cents := g.faker.Int64() % (maxCents - minCents + 1)
	if cents < 0 {
		cents = -cents
	}
	return New(minCents+cents, currency)
}

// RandomAmountRange generates a random Money value within a major-unit range.
func (g *TestDataGenerator) RandomAmountRange(currency string, minAmount, maxAmount float64) *Money {
	amount := g.faker.Float64Range(minAmount, maxAmount)
	return NewFromFloat(amount, currency)
}

// PriceToken renders a random amount the way it appears in invoice text,
// as a bare two-decimal token such as "52.80".
func (g *TestDataGenerator) PriceToken(minCents, maxCents int64) string {
	return g.RandomAmount(USD, minCents, maxCents).String()
}

// CaseCharge generates a typical per-case line total ($5-$200).
func (g *TestDataGenerator) CaseCharge(currency string) *Money {
	return g.RandomAmountRange(currency, 5, 200)
}

// DeliveryFee generates a typical delivery charge ($10-$80).
func (g *TestDataGenerator) DeliveryFee(currency string) *Money {
	return g.RandomAmountRange(currency, 10, 80)
}

// DepositCharge generates a typical bottle deposit total ($0.05-$20).
func (g *TestDataGenerator) DepositCharge(currency string) *Money {
	return g.RandomAmount(currency, 5, 2000)
}

// TaxAmount generates a plausible sales tax for the given subtotal.
func (g *TestDataGenerator) TaxAmount(subtotal *Money) *Money {
	rate := g.faker.Float64Range(0.04, 0.10)
	return NewFromFloat(subtotal.ToFloat64()*rate, subtotal.Currency())
}
