package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/contacts"
)

// saturday is 2024-06-08, a fixed "today" for the birthdays pane.
var saturday = time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)

// contact is a test fixture row: name, phones, and an optional birthday.
type contact struct {
	name     string
	phones   []string
	birthday string
}

// newBook builds an address book from fixtures, failing the test on any
// validation error.
func newBook(t *testing.T, cs ...contact) *contacts.AddressBook {
	t.Helper()
	book := contacts.NewAddressBook()
	for _, c := range cs {
		r, err := contacts.NewRecord(c.name)
		if err != nil {
			t.Fatalf("NewRecord(%q) error = %v", c.name, err)
		}
		for _, p := range c.phones {
			if err := r.AddPhone(p); err != nil {
				t.Fatalf("AddPhone(%q) error = %v", p, err)
			}
		}
		if c.birthday != "" {
			if err := r.AddBirthday(c.birthday); err != nil {
				t.Fatalf("AddBirthday(%q) error = %v", c.birthday, err)
			}
		}
		if err := book.AddRecord(r); err != nil {
			t.Fatalf("AddRecord(%q) error = %v", c.name, err)
		}
	}
	return book
}

// staticLoader returns a loader that always yields book.
func staticLoader(book *contacts.AddressBook) BookLoader {
	return BookLoaderFunc(func() (*contacts.AddressBook, error) { return book, nil })
}

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. It returns all resulting messages. Spinner ticks are skipped
// to avoid infinite recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c != nil {
				result := c()
				// Skip spinner ticks to avoid recursion.
				if _, isTick := result.(spinner.TickMsg); !isTick {
					msgs = append(msgs, result)
				}
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}
