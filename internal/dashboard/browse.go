package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/contacts"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// browseState manages the contact list, cursor, and loading/error states
// for the left pane.
type browseState struct {
	book    *contacts.AddressBook
	records []*contacts.Record
	cursor  int
	loading bool
	err     error
}

// newBrowseState returns a browseState in the loading state.
func newBrowseState() browseState {
	return browseState{loading: true}
}

// loadBook returns a tea.Cmd that calls loader.LoadBook() asynchronously
// and wraps the result in a BookMsg.
func loadBook(loader BookLoader) tea.Cmd {
	return func() tea.Msg {
		book, err := loader.LoadBook()
		return BookMsg{Book: book, Err: err}
	}
}

// Update processes messages for the browse state.
func (bs browseState) Update(msg tea.Msg) (browseState, tea.Cmd) {
	switch msg := msg.(type) {
	case BookMsg:
		return bs.applyBook(msg.Book, msg.Err), nil

	case tea.KeyMsg:
		if bs.loading {
			return bs, nil
		}
		return bs.handleKey(msg)
	}

	return bs, nil
}

// applyBook applies a loaded book (or error) to the browse state. The
// cursor stays on the same contact when it still exists.
func (bs browseState) applyBook(book *contacts.AddressBook, err error) browseState {
	bs.loading = false
	if err != nil {
		bs.err = err
		bs.book = nil
		bs.records = nil
		return bs
	}
	selected := bs.SelectedName()
	bs.err = nil
	bs.book = book
	bs.records = book.Records()
	bs.cursor = 0
	for i, r := range bs.records {
		if r.Name().Value() == selected {
			bs.cursor = i
			break
		}
	}
	return bs
}

func (bs browseState) handleKey(msg tea.KeyMsg) (browseState, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if len(bs.records) > 0 {
			bs.cursor--
			if bs.cursor < 0 {
				bs.cursor = len(bs.records) - 1
			}
		}
		return bs, nil

	case "down", "j":
		if len(bs.records) > 0 {
			bs.cursor++
			if bs.cursor >= len(bs.records) {
				bs.cursor = 0
			}
		}
		return bs, nil

	case "r":
		bs.loading = true
		bs.err = nil
		return bs, func() tea.Msg { return RefreshMsg{} }
	}

	return bs, nil
}

// Selected returns the record at the cursor, or nil if there is none.
func (bs browseState) Selected() *contacts.Record {
	if len(bs.records) == 0 || bs.cursor < 0 || bs.cursor >= len(bs.records) {
		return nil
	}
	return bs.records[bs.cursor]
}

// SelectedName returns the name at the cursor, or "".
func (bs browseState) SelectedName() string {
	if r := bs.Selected(); r != nil {
		return r.Name().Value()
	}
	return ""
}

// View renders the contact list.
// spinnerView is the current spinner frame.
func (bs browseState) View(spinnerView string) string {
	if bs.loading {
		return fmt.Sprintf("%s Loading contacts...", spinnerView)
	}

	if bs.err != nil {
		return errorText.Render(fmt.Sprintf("Error: %s", bs.err)) + "\n\nPress r to retry"
	}

	if len(bs.records) == 0 {
		return mutedText.Render("Address book is empty")
	}

	var b strings.Builder
	for i, r := range bs.records {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == bs.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(r.Name().Value())
		if n := len(r.Phones()); n > 0 {
			b.WriteString(mutedText.Render(fmt.Sprintf(" (%d)", n)))
		}
	}
	return b.String()
}
