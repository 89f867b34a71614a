// Package pricing renders listing prices in Iraqi dinar and US dollar side by side.
package pricing

import (
	"strings"

	"golang.org/x/text/currency"
)

// Code is one of the two currencies a listing can be priced in.
type Code string

const (
	// IQD is the primary local currency and the default for listings.
	IQD Code = "IQD"
	// USD is the secondary currency shown next to IQD prices.
	USD Code = "USD"
)

// ParseCode normalises a currency code. Anything that is not USD is treated as IQD.
func ParseCode(s string) Code {
	unit, err := currency.ParseISO(strings.TrimSpace(s))
	if err != nil {
		return IQD
	}
	if unit.String() == string(USD) {
		return USD
	}
	return IQD
}

// IsSupported reports whether s names one of the two listing currencies exactly.
func IsSupported(s string) bool {
	return s == string(IQD) || s == string(USD)
}

// Other returns the currency a price is converted into for the secondary display.
func (c Code) Other() Code {
	if c == USD {
		return IQD
	}
	return USD
}
