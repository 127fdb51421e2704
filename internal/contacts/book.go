package contacts

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// DefaultBirthdayWindow is the number of days ahead UpcomingBirthdays
// looks by default.
const DefaultBirthdayWindow = 7

// AddressBook holds records keyed by name. Iteration follows insertion order.
// The zero value is an empty book ready to use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// UpcomingBirthday pairs a record with the date its birthday should be
// celebrated, moved off weekends.
type UpcomingBirthday struct {
	Record         *Record
	Birthday       time.Time // The actual occurrence.
	CongratulateOn time.Time // Occurrence shifted to Monday if on a weekend.
}

// NewAddressBook returns an empty book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. A name that is already present is
// rejected so existing phones and birthdays are never replaced silently.
func (b *AddressBook) AddRecord(r *Record) error {
	key := r.Name().Value()
	if _, ok := b.records[key]; ok {
		return newError(KindDuplicateRecord, key, "Contact "+key+" already exists")
	}
	if b.records == nil {
		b.records = make(map[string]*Record)
	}
	b.records[key] = r
	b.order = append(b.order, key)
	return nil
}

// Find returns the record stored under exactly name.
func (b *AddressBook) Find(name string) (*Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, recordNotFound(name)
	}
	return r, nil
}

// Delete removes the record stored under exactly name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return recordNotFound(name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == name })
	return nil
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, len(b.order))
	for i, k := range b.order {
		out[i] = b.records[k]
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// UpcomingBirthdays lists records whose next birthday falls between today
// and today+windowDays, both inclusive. A birthday on Saturday or Sunday is
// congratulated the following Monday, and 29 February is observed on
// 1 March in non-leap years. Results are ordered by congratulation date,
// then by name. The book is not modified.
func (b *AddressBook) UpcomingBirthdays(today time.Time, windowDays int) []UpcomingBirthday {
	if windowDays < 0 {
		return nil
	}
	day := DateOf(today)
	last := day.AddDate(0, 0, windowDays)

	var out []UpcomingBirthday
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		next := nextOccurrence(bd, day)
		if next.After(last) {
			continue
		}
		out = append(out, UpcomingBirthday{
			Record:         r,
			Birthday:       next,
			CongratulateOn: skipWeekend(next),
		})
	}

	slices.SortStableFunc(out, func(a, b UpcomingBirthday) int {
		if c := a.CongratulateOn.Compare(b.CongratulateOn); c != 0 {
			return c
		}
		return cmp.Compare(a.Record.Name().Value(), b.Record.Name().Value())
	})
	return out
}

func (b *AddressBook) String() string {
	if len(b.order) == 0 {
		return "Address book is empty"
	}
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// nextOccurrence returns the first anniversary of bd on or after day.
// time.Date normalizes 29 February to 1 March in non-leap years.
func nextOccurrence(bd Birthday, day time.Time) time.Time {
	next := time.Date(day.Year(), bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(day) {
		next = time.Date(day.Year()+1, bd.Month(), bd.Day(), 0, 0, 0, 0, time.UTC)
	}
	return next
}

func skipWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

func recordNotFound(name string) error {
	return newError(KindRecordNotFound, name, "Contact "+name+" not found")
}
