// Package report renders a printable contact sheet from a text template.
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"text/template"
	"time"

	"github.com/smileynet/addressbook/internal/contacts"
)

// DefaultTemplate is the name of the built-in contact sheet template.
const DefaultTemplate = "contacts.md.tmpl"

// ErrTemplateNotFound indicates the named template is not in the filesystem.
var ErrTemplateNotFound = errors.New("report: template not found")

// Sheet is the data passed to a contact sheet template.
type Sheet struct {
	Generated  time.Time
	WindowDays int
	Contacts   []contacts.RecordSnapshot
	Upcoming   []contacts.UpcomingBirthday
}

// NewSheet collects the contacts of book and the birthdays due within
// windowDays of today.
func NewSheet(book *contacts.AddressBook, today time.Time, windowDays int) Sheet {
	return Sheet{
		Generated:  contacts.DateOf(today),
		WindowDays: windowDays,
		Contacts:   book.Snapshot(),
		Upcoming:   book.UpcomingBirthdays(today, windowDays),
	}
}

// Render executes the template name from fsys with sheet and writes the
// result to w.
func Render(w io.Writer, fsys fs.FS, name string, sheet Sheet) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return fmt.Errorf("report: reading template: %w", err)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("report: parsing %s: %w", name, err)
	}
	if err := tmpl.Execute(w, sheet); err != nil {
		return fmt.Errorf("report: rendering %s: %w", name, err)
	}
	return nil
}
