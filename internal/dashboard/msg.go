// Package dashboard implements a read-only two-pane TUI for browsing the
// address book: contacts on the left, the selected contact or the upcoming
// birthdays on the right.
package dashboard

import "github.com/smileynet/addressbook/internal/contacts"

// Mode represents the current dashboard view mode.
type Mode int

const (
	ModeContacts  Mode = iota // Contact list with detail pane.
	ModeBirthdays             // Contact list with upcoming birthdays pane.
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // Left pane (contact list) has focus.
	PaneRight              // Right pane (detail viewport) has focus.
)

// BookLoader provides the address book to display.
type BookLoader interface {
	LoadBook() (*contacts.AddressBook, error)
}

// BookLoaderFunc adapts a function to BookLoader.
type BookLoaderFunc func() (*contacts.AddressBook, error)

// LoadBook calls f.
func (f BookLoaderFunc) LoadBook() (*contacts.AddressBook, error) { return f() }

// BookMsg carries the result of an async book load.
type BookMsg struct {
	Book *contacts.AddressBook
	Err  error
}

// RefreshMsg requests a reload of the book.
type RefreshMsg struct{}
