package contacts

import (
	"strings"
	"unicode"
)

// phoneDigits is the exact length of a normalized phone number.
const phoneDigits = 10

// phoneSeparators are stripped before validation, along with whitespace.
const phoneSeparators = "-.()"

// Phone is a normalized 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone normalizes raw and validates the result.
func NewPhone(raw string) (Phone, error) {
	var p Phone
	if err := p.Set(raw); err != nil {
		return Phone{}, err
	}
	return p, nil
}

// NormalizePhone strips whitespace and separator characters from raw
// without validating what is left.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(phoneSeparators, r) {
			return -1
		}
		return r
	}, raw)
}

// Set replaces the number after normalizing and validating raw.
func (p *Phone) Set(raw string) error {
	digits := NormalizePhone(raw)
	if len(digits) != phoneDigits || !allDigits(digits) {
		return newError(KindInvalidPhone, raw, "Invalid phone number: must be exactly 10 digits")
	}
	p.value = digits
	return nil
}

func (p Phone) Value() string  { return p.value }
func (p Phone) String() string { return p.value }

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
