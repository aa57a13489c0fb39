package classify

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUniformMaskerStaysInRange(t *testing.T) {
	m := NewUniformMasker(42)
	amount := decimal.NewFromFloat(100.00)

	lo := decimal.NewFromFloat(101.00)
	hi := decimal.NewFromFloat(300.00)
	for i := 0; i < 1000; i++ {
		masked := m.Mask(amount)
		if masked.LessThan(lo) || masked.GreaterThan(hi) {
			t.Fatalf("masked amount %s outside [%s, %s]", masked, lo, hi)
		}
	}
}

func TestUniformMaskerIsSeedDeterministic(t *testing.T) {
	amount := decimal.NewFromFloat(250.50)

	a := NewUniformMasker(7)
	b := NewUniformMasker(7)
	for i := 0; i < 50; i++ {
		got, want := a.Mask(amount), b.Mask(amount)
		if !got.Equal(want) {
			t.Fatalf("draw %d: %s != %s for identical seeds", i, got, want)
		}
	}
}

func TestIdentityMasker(t *testing.T) {
	amount := decimal.NewFromFloat(99.99)
	if got := (IdentityMasker{}).Mask(amount); !got.Equal(amount) {
		t.Errorf("IdentityMasker changed %s to %s", amount, got)
	}
}
