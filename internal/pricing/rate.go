package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is the number of IQD that equal 100 USD.
type Rate = decimal.Decimal

// DefaultRate is used whenever no positive rate is configured.
var DefaultRate = decimal.NewFromInt(153000)

// MaxPrice is the largest amount a listing price column (NUMERIC(18,2)) can hold.
var MaxPrice = decimal.RequireFromString("9999999999999999.99")

var hundred = decimal.NewFromInt(100)

// ResolveRate returns rate when it is positive and DefaultRate otherwise.
func ResolveRate(rate Rate) Rate {
	if rate.IsPositive() {
		return rate
	}
	return DefaultRate
}

// ParseRate parses a persisted settings value such as "153000".
func ParseRate(value string) (Rate, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid exchange rate %q: %w", value, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("exchange rate must be positive, got %s", rate.String())
	}
	return rate, nil
}

// Convert converts amount from one currency into the other using rate, rounded to whole units.
func Convert(amount decimal.Decimal, from Code, rate Rate) decimal.Decimal {
	perDollar := ResolveRate(rate).Div(hundred)
	if from == USD {
		return amount.Mul(perDollar).Round(0)
	}
	return amount.Div(perDollar).Round(0)
}
