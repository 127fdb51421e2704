package contacts

import (
	"strings"
	"time"
)

// DateLayout is the only accepted birthday format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// Birthday is a calendar date that is not in the future.
// The value is held as midnight UTC of that date.
type Birthday struct {
	value time.Time
}

// NewBirthday parses raw and checks it against the current date.
func NewBirthday(raw string) (Birthday, error) {
	return NewBirthdayAt(raw, time.Now())
}

// NewBirthdayAt parses raw and rejects dates after now's calendar date.
func NewBirthdayAt(raw string, now time.Time) (Birthday, error) {
	var b Birthday
	if err := b.setAt(raw, now); err != nil {
		return Birthday{}, err
	}
	return b, nil
}

// Set replaces the birthday after validating raw against the current date.
func (b *Birthday) Set(raw string) error {
	return b.setAt(raw, time.Now())
}

func (b *Birthday) setAt(raw string, now time.Time) error {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return newError(KindInvalidBirthday, raw, "Invalid date or its format. DD.MM.YYYY should be used")
	}
	today := DateOf(now)
	if parsed.After(today) {
		return newError(KindInvalidBirthday, raw,
			"Birthday cannot be in the future. Today is "+today.Format(DateLayout))
	}
	b.value = parsed
	return nil
}

func (b Birthday) Value() time.Time  { return b.value }
func (b Birthday) String() string    { return b.value.Format(DateLayout) }
func (b Birthday) Month() time.Month { return b.value.Month() }
func (b Birthday) Day() int          { return b.value.Day() }
func (b Birthday) IsZero() bool      { return b.value.IsZero() }

// DateOf returns midnight UTC of t's calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
