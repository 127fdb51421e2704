package contacts

import (
	"errors"
	"fmt"
)

// Category sentinels. Every *Error matches its own kind sentinel and all of
// the categories above it, so callers can branch at whatever depth they need:
//
//	ErrAddressBook
//	├── ErrValidation
//	│   ├── ErrPhone     (ErrInvalidPhone, ErrDuplicatePhone, ErrPhoneNotFound)
//	│   ├── ErrName      (ErrEmptyName, ErrInvalidName)
//	│   └── ErrBirthday  (ErrInvalidBirthday, ErrDuplicateBirthday)
//	├── ErrRecordNotFound
//	└── ErrDuplicateRecord
var (
	ErrAddressBook = errors.New("address book error")
	ErrValidation  = errors.New("validation error")
	ErrPhone       = errors.New("phone error")
	ErrName        = errors.New("name error")
	ErrBirthday    = errors.New("birthday error")
)

// Kind sentinels, one per leaf of the taxonomy.
var (
	ErrInvalidPhone      = errors.New("invalid phone")
	ErrDuplicatePhone    = errors.New("duplicate phone")
	ErrPhoneNotFound     = errors.New("phone not found")
	ErrEmptyName         = errors.New("empty name")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidBirthday   = errors.New("invalid birthday")
	ErrDuplicateBirthday = errors.New("duplicate birthday")
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateRecord   = errors.New("duplicate record")
)

// Kind identifies a leaf failure in the taxonomy.
type Kind int

const (
	KindInvalidPhone Kind = iota + 1
	KindDuplicatePhone
	KindPhoneNotFound
	KindEmptyName
	KindInvalidName
	KindInvalidBirthday
	KindDuplicateBirthday
	KindRecordNotFound
	KindDuplicateRecord
)

// FieldKind names the field an error is about.
type FieldKind string

const (
	FieldName     FieldKind = "name"
	FieldPhone    FieldKind = "phone"
	FieldBirthday FieldKind = "birthday"
	FieldRecord   FieldKind = "record"
)

// kindInfo maps a kind to its sentinel, field, and ancestor categories
// (nearest first).
var kindInfo = map[Kind]struct {
	sentinel  error
	field     FieldKind
	ancestors []error
}{
	KindInvalidPhone:      {ErrInvalidPhone, FieldPhone, []error{ErrPhone, ErrValidation, ErrAddressBook}},
	KindDuplicatePhone:    {ErrDuplicatePhone, FieldPhone, []error{ErrPhone, ErrValidation, ErrAddressBook}},
	KindPhoneNotFound:     {ErrPhoneNotFound, FieldPhone, []error{ErrPhone, ErrValidation, ErrAddressBook}},
	KindEmptyName:         {ErrEmptyName, FieldName, []error{ErrName, ErrValidation, ErrAddressBook}},
	KindInvalidName:       {ErrInvalidName, FieldName, []error{ErrName, ErrValidation, ErrAddressBook}},
	KindInvalidBirthday:   {ErrInvalidBirthday, FieldBirthday, []error{ErrBirthday, ErrValidation, ErrAddressBook}},
	KindDuplicateBirthday: {ErrDuplicateBirthday, FieldBirthday, []error{ErrBirthday, ErrValidation, ErrAddressBook}},
	KindRecordNotFound:    {ErrRecordNotFound, FieldRecord, []error{ErrAddressBook}},
	KindDuplicateRecord:   {ErrDuplicateRecord, FieldRecord, []error{ErrAddressBook}},
}

// String returns the kind's sentinel text, e.g. "invalid phone".
func (k Kind) String() string {
	info, ok := kindInfo[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return info.sentinel.Error()
}

// Error is the single failure type returned by the contacts package.
// Msg is the human-readable text shown to users; Input is the offending
// value as the caller supplied it.
type Error struct {
	Kind  Kind
	Field FieldKind
	Input string
	Msg   string
}

func newError(kind Kind, input, msg string) *Error {
	return &Error{Kind: kind, Field: kindInfo[kind].field, Input: input, Msg: msg}
}

func (e *Error) Error() string {
	return e.Msg
}

// Is reports whether target is e's kind sentinel or one of its categories.
func (e *Error) Is(target error) bool {
	info, ok := kindInfo[e.Kind]
	if !ok {
		return false
	}
	if target == info.sentinel {
		return true
	}
	for _, a := range info.ancestors {
		if target == a {
			return true
		}
	}
	return false
}

// KindOf returns the kind of err if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
