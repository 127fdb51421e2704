// Package contacts implements the address book data model: validated
// fields (Name, Phone, Birthday), contact records, and the book that
// owns them.
//
// Every failure is a *Error; match it with errors.Is against the kind
// sentinels (ErrInvalidPhone, ...) or the categories (ErrPhone,
// ErrValidation, ErrAddressBook). The package never logs or prints.
package contacts

import "time"

// Field is a validated value holder. Set validates raw before assigning it;
// on failure it returns a validation error and the old value is kept.
type Field[T comparable] interface {
	Value() T
	String() string
	Set(raw string) error
}

var (
	_ Field[string]    = (*Name)(nil)
	_ Field[string]    = (*Phone)(nil)
	_ Field[time.Time] = (*Birthday)(nil)
)

// Equal reports whether two fields hold the same value.
func Equal[T comparable](a, b Field[T]) bool {
	return a.Value() == b.Value()
}
