package contacts

import (
	"regexp"
	"strings"
)

// namePattern: an ASCII letter, then letters, digits, and single spaces or
// hyphens, at least 2 characters in all. Two separators never touch, and one
// may end the name ("John-", "J-").
var namePattern = regexp.MustCompile(`^[A-Za-z](?:(?:[ -]?[A-Za-z0-9])+[ -]?|[ -])$`)

// Name is a contact's display name and the key it is stored under.
type Name struct {
	value string
}

// NewName validates raw and returns it as a Name.
func NewName(raw string) (Name, error) {
	var n Name
	if err := n.Set(raw); err != nil {
		return Name{}, err
	}
	return n, nil
}

// Set replaces the name after validating raw.
func (n *Name) Set(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return newError(KindEmptyName, raw, "Name cannot be empty")
	}
	if !namePattern.MatchString(raw) {
		return newError(KindInvalidName, raw,
			"Invalid name: must start with a letter, use letters, digits, single spaces or hyphens, and be at least 2 characters long")
	}
	n.value = raw
	return nil
}

func (n Name) Value() string  { return n.value }
func (n Name) String() string { return n.value }
