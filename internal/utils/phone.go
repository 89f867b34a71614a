package utils

import (
	"errors"
	"strings"
)

// LoginEmailDomain is appended to the phone digits to form the login identity.
const LoginEmailDomain = "carmarket.com"

// ErrInvalidPhone is returned for numbers that are not Iraqi mobile numbers.
var ErrInvalidPhone = errors.New("invalid iraqi mobile number")

var phoneDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizePhone converts an Iraqi mobile number in any common notation
// (07XXXXXXXXX, 7XXXXXXXXX, +9647XXXXXXXXX, 009647XXXXXXXXX, Arabic-Indic digits,
// spaces or dashes) to the local form 07XXXXXXXXX.
func NormalizePhone(raw string) (string, error) {
	s := phoneDigits.Replace(strings.TrimSpace(raw))

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "00964"):
		digits = "0" + digits[5:]
	case strings.HasPrefix(digits, "964"):
		digits = "0" + digits[3:]
	case strings.HasPrefix(digits, "7") && len(digits) == 10:
		digits = "0" + digits
	}

	if len(digits) != 11 || !strings.HasPrefix(digits, "07") {
		return "", ErrInvalidPhone
	}
	return digits, nil
}

// IsValidPhone reports whether raw normalises to an Iraqi mobile number.
func IsValidPhone(raw string) bool {
	_, err := NormalizePhone(raw)
	return err == nil
}

// LoginEmail returns the phone-as-email identity for a normalised phone.
func LoginEmail(phone string) string {
	return phone + "@" + LoginEmailDomain
}
