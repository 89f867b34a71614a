package pricing

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// RateBook holds the exchange rate snapshot shared by everything that renders prices.
// Reads never block; Set replaces the snapshot atomically.
type RateBook struct {
	current atomic.Pointer[decimal.Decimal]
}

// NewRateBook creates a RateBook seeded with initial (or DefaultRate if initial is not positive).
func NewRateBook(initial Rate) *RateBook {
	b := &RateBook{}
	r := ResolveRate(initial)
	b.current.Store(&r)
	return b
}

// Current returns the effective rate. It is always positive.
func (b *RateBook) Current() Rate {
	if b == nil {
		return DefaultRate
	}
	r := b.current.Load()
	if r == nil {
		return DefaultRate
	}
	return *r
}

// Set replaces the snapshot. Non-positive values, and calls on a nil RateBook, are ignored
// and false is returned.
func (b *RateBook) Set(rate Rate) bool {
	if b == nil || !rate.IsPositive() {
		return false
	}
	b.current.Store(&rate)
	return true
}

// Format renders price against the current snapshot.
func (b *RateBook) Format(price decimal.Decimal, code Code) Display {
	return FormatPrice(price, code, b.Current())
}
