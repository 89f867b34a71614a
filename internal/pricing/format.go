package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Display is a price rendered in its own currency and converted into the other one.
type Display struct {
	Primary         string          `json:"primary"`
	Secondary       string          `json:"secondary"`
	PrimaryCode     Code            `json:"primaryCurrency"`
	SecondaryCode   Code            `json:"secondaryCurrency"`
	PrimaryAmount   decimal.Decimal `json:"primaryAmount"`
	SecondaryAmount decimal.Decimal `json:"secondaryAmount"`
}

const iqdSuffix = " د.ع."

var arabicDigits = strings.NewReplacer(
	"0", "٠", "1", "١", "2", "٢", "3", "٣", "4", "٤",
	"5", "٥", "6", "٦", "7", "٧", "8", "٨", "9", "٩",
	",", "٬",
)

// FormatPrice renders price (in code) and its equivalent in the other currency.
// A non-positive rate falls back to DefaultRate and negative prices are clamped to zero.
func FormatPrice(price decimal.Decimal, code Code, rate Rate) Display {
	if price.IsNegative() {
		price = decimal.Zero
	}
	if code != USD {
		code = IQD
	}

	primary := price.Round(0)
	secondary := Convert(price, code, rate)

	return Display{
		Primary:         FormatAmount(primary, code),
		Secondary:       FormatAmount(secondary, code.Other()),
		PrimaryCode:     code,
		SecondaryCode:   code.Other(),
		PrimaryAmount:   primary,
		SecondaryAmount: secondary,
	}
}

// FormatAmount renders a whole amount in the locale used for that currency.
func FormatAmount(amount decimal.Decimal, code Code) string {
	grouped := groupDigits(amount.Round(0))
	if code == USD {
		return "$" + grouped
	}
	return arabicDigits.Replace(grouped) + iqdSuffix
}

// groupDigits inserts a comma every three digits. It works on the decimal's own digit
// string so amounts beyond int64 keep their value.
func groupDigits(amount decimal.Decimal) string {
	digits := amount.Abs().StringFixed(0)
	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
