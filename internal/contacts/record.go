package contacts

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Record is one contact: a name, an ordered set of unique phones, and an
// optional birthday. The name is fixed once the record is created.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's name.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// Birthday returns the birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if r.indexOf(p.Value()) >= 0 {
		return newError(KindDuplicatePhone, raw, "This phone number already exists for this contact")
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the phone equal to raw after normalization.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(NormalizePhone(raw))
	if i < 0 {
		return phoneNotFound(raw)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldRaw with newRaw, keeping its position. Nothing
// changes if any check fails.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.indexOf(NormalizePhone(oldRaw))
	if i < 0 {
		return phoneNotFound(oldRaw)
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	if j := r.indexOf(p.Value()); j >= 0 && j != i {
		return newError(KindDuplicatePhone, newRaw, "This phone number already exists for this contact")
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the phone equal to raw after normalization.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.indexOf(NormalizePhone(raw))
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

// AddBirthday sets the birthday. A birthday can only be added once.
func (r *Record) AddBirthday(raw string) error {
	return r.AddBirthdayAt(raw, time.Now())
}

// AddBirthdayAt is AddBirthday with now as the current date.
func (r *Record) AddBirthdayAt(raw string, now time.Time) error {
	if r.birthday != nil {
		return newError(KindDuplicateBirthday, raw, "Birthday already exists for this contact")
	}
	b, err := NewBirthdayAt(raw, now)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) String() string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	birthday := "not added yet"
	if r.birthday != nil {
		birthday = r.birthday.String()
	}
	return fmt.Sprintf("Contact name: %s; phones: %s; birthday: %s",
		r.name, strings.Join(phones, ", "), birthday)
}

func (r *Record) indexOf(digits string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool {
		return p.Value() == digits
	})
}

func phoneNotFound(raw string) error {
	return newError(KindPhoneNotFound, raw, "Phone number not found for this contact")
}
