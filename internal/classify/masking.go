package classify

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Masker transforms a revenue amount before it is persisted. The production
// masker obscures real dollar figures; tests and idempotence comparisons
// swap in IdentityMasker or a seeded rand.
type Masker interface {
	Mask(amount decimal.Decimal) decimal.Decimal
}

// Bounds for the uniform masking multiplier.
const (
	maskerMin = 1.01
	maskerMax = 3.00
)

// UniformMasker scales each amount by an independent uniform draw in
// [1.01, 3.00].
type UniformMasker struct {
	rng *rand.Rand
}

// NewUniformMasker creates a masker backed by the given seed.
func NewUniformMasker(seed int64) *UniformMasker {
	return &UniformMasker{rng: rand.New(rand.NewSource(seed))}
}

func (m *UniformMasker) Mask(amount decimal.Decimal) decimal.Decimal {
	mult := maskerMin + m.rng.Float64()*(maskerMax-maskerMin)
	return amount.Mul(decimal.NewFromFloat(mult)).Round(2)
}

// IdentityMasker passes amounts through unchanged.
type IdentityMasker struct{}

func (IdentityMasker) Mask(amount decimal.Decimal) decimal.Decimal {
	return amount
}
