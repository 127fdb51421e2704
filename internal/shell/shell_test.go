package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smileynet/addressbook/internal/contacts"
)

// saturday is 2024-06-08, a fixed "today" for birthday commands.
var saturday = time.Date(2024, 6, 8, 15, 0, 0, 0, time.UTC)

func newShell(t *testing.T, opts ...Option) (*Shell, *contacts.AddressBook) {
	t.Helper()
	book := contacts.NewAddressBook()
	opts = append([]Option{WithClock(func() time.Time { return saturday })}, opts...)
	return New(book, opts...), book
}

// run feeds lines to s, failing the test on any error.
func run(t *testing.T, s *Shell, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := s.Handle(line); err != nil {
			t.Fatalf("Handle(%q) error = %v", line, err)
		}
	}
}

func TestShell_Handle(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		line  string
		want  string
	}{
		{"hello", nil, "hello", "How can I help you?"},
		{"command is case-insensitive", nil, "HeLLo", "How can I help you?"},
		{"add creates contact", nil, "add John 1234567890", "Contact added."},
		{"add to existing", []string{"add John 1234567890"}, "add John 0987654321", "Contact updated."},
		{"quoted name", nil, `add "John Doe" 1234567890`, "Contact added."},
		{"change", []string{"add John 1234567890"}, "change John 1234567890 1112223333", "Contact updated."},
		{"phone lists numbers", []string{"add John 1234567890", "add John 0987654321"}, "phone John", "1234567890\n0987654321"},
		{"remove-phone", []string{"add John 1234567890"}, "remove-phone John 1234567890", "Phone removed."},
		{"phone after removal", []string{"add John 1234567890", "remove-phone John 1234567890"}, "phone John", "No phone numbers for this contact."},
		{"delete", []string{"add John 1234567890"}, "delete John", "Contact deleted."},
		{"all empty", nil, "all", "Address book is empty"},
		{"all", []string{"add John 1234567890"}, "all", "Contact name: John; phones: 1234567890; birthday: not added yet"},
		{"add-birthday", []string{"add John 1234567890"}, "add-birthday John 10.06.1990", "Birthday added."},
		{"add-birthday today", []string{"add John 1234567890"}, "add-birthday John 08.06.2024", "Birthday added."},
		{"show-birthday", []string{"add John 1234567890", "add-birthday John 10.06.1990"}, "show-birthday John", "10.06.1990"},
		{"show-birthday unset", []string{"add John 1234567890"}, "show-birthday John", "No birthday set for this contact."},
		{"birthdays none", nil, "birthdays", "No upcoming birthdays."},
		{"blank line", nil, "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a shell with the setup commands applied
			s, _ := newShell(t)
			run(t, s, tt.setup...)

			// When: the line is handled
			got, err := s.Handle(tt.line)

			// Then: the output matches
			if err != nil {
				t.Fatalf("Handle(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Handle(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestShell_HandleErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   []string
		line    string
		wantErr error
		wantMsg string
	}{
		{"invalid phone", nil, "add John 12345", contacts.ErrInvalidPhone, "Invalid phone number: must be exactly 10 digits"},
		{"invalid name", nil, "add 1John 1234567890", contacts.ErrInvalidName, ""},
		{"duplicate phone", []string{"add John 1234567890"}, "add John 123-456-7890", contacts.ErrDuplicatePhone, "This phone number already exists for this contact"},
		{"phone unknown contact", nil, "phone Jane", contacts.ErrRecordNotFound, "Contact Jane not found"},
		{"change missing phone", []string{"add John 1234567890"}, "change John 5555555555 1112223333", contacts.ErrPhoneNotFound, "Phone number not found for this contact"},
		{"delete unknown", nil, "delete Jane", contacts.ErrRecordNotFound, "Contact Jane not found"},
		{"bad birthday", []string{"add John 1234567890"}, "add-birthday John 1990-06-10", contacts.ErrInvalidBirthday, ""},
		{"birthday after shell clock", []string{"add John 1234567890"}, "add-birthday John 09.06.2024", contacts.ErrInvalidBirthday, "Birthday cannot be in the future. Today is 08.06.2024"},
		{"duplicate birthday", []string{"add John 1234567890", "add-birthday John 10.06.1990"}, "add-birthday John 11.06.1990", contacts.ErrDuplicateBirthday, "Birthday already exists for this contact"},
		{"unknown command", nil, "frobnicate", ErrUnknownCommand, ""},
		{"unbalanced quote", nil, `add "John 1234567890`, ErrUnbalancedQuote, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a shell with the setup commands applied
			s, _ := newShell(t)
			run(t, s, tt.setup...)

			// When: the failing line is handled
			_, err := s.Handle(tt.line)

			// Then: the error has the expected kind and message
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Handle(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestShell_FailedCommandLeavesBookUnchanged(t *testing.T) {
	// Given: a book with one contact
	s, book := newShell(t)
	run(t, s, "add John 1234567890")
	before := book.String()

	// When: commands fail validation
	for _, line := range []string{"add Jane 12", "change John 1234567890 12", "add-birthday John 31.02.1990"} {
		if _, err := s.Handle(line); err == nil {
			t.Fatalf("Handle(%q) succeeded, want error", line)
		}
	}

	// Then: the book is unchanged and no half-created contact exists
	if got := book.String(); got != before {
		t.Errorf("book = %q, want %q", got, before)
	}
	if book.Len() != 1 {
		t.Errorf("Len() = %d, want 1", book.Len())
	}
}

func TestShell_UsageErrors(t *testing.T) {
	tests := []struct {
		line      string
		wantUsage string
	}{
		{"add John", "add <name> <phone>"},
		{"change John 1234567890", "change <name> <old phone> <new phone>"},
		{"phone", "phone <name>"},
		{"add-birthday John", "add-birthday <name> <DD.MM.YYYY>"},
		{"birthdays soon", "birthdays [days]"},
		{"birthdays -1", "birthdays [days]"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, _ := newShell(t)

			_, err := s.Handle(tt.line)

			var ue *UsageError
			if !errors.As(err, &ue) {
				t.Fatalf("Handle(%q) error = %v, want *UsageError", tt.line, err)
			}
			want := "Invalid number of arguments. Usage: " + tt.wantUsage
			if ue.Error() != want {
				t.Errorf("Error() = %q, want %q", ue.Error(), want)
			}
		})
	}
}

func TestShell_UnknownCommandListsHelp(t *testing.T) {
	s, _ := newShell(t)

	_, err := s.Handle("frobnicate")

	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("error = %v, want ErrUnknownCommand", err)
	}
	msg := Render(err)
	if !strings.Contains(msg, "Invalid command. Available commands:") {
		t.Errorf("message = %q, want unknown-command prefix", msg)
	}
	if !strings.Contains(msg, "Usage: add <name> <phone>") {
		t.Errorf("message = %q, want the command list", msg)
	}
}

func TestRender_SentenceCase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unbalanced quote", ErrUnbalancedQuote, "Unbalanced quote in command"},
		{"core error kept", &contacts.Error{Kind: contacts.KindRecordNotFound, Msg: "Contact Jane not found"}, "Contact Jane not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("Render() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestShell_Birthdays(t *testing.T) {
	// Given: contacts whose birthdays fall around Saturday 2024-06-08
	s, _ := newShell(t)
	run(t, s,
		"add Alice 1234567890", "add-birthday Alice 08.06.1990", // Saturday, moved to Monday
		"add Bob 1234567890", "add-birthday Bob 11.06.1985", // Tuesday
		"add Carol 1234567890", "add-birthday Carol 20.06.1980", // outside the default window
	)

	t.Run("default window", func(t *testing.T) {
		got, err := s.Handle("birthdays")
		if err != nil {
			t.Fatal(err)
		}
		want := "Name: Alice, congratulation date: 10.06.2024\n" +
			"Name: Bob, congratulation date: 11.06.2024"
		if got != want {
			t.Errorf("birthdays = %q, want %q", got, want)
		}
	})

	t.Run("explicit window", func(t *testing.T) {
		got, err := s.Handle("birthdays 12")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "Name: Carol, congratulation date: 20.06.2024") {
			t.Errorf("birthdays 12 = %q, want Carol included", got)
		}
	})

	t.Run("configured window", func(t *testing.T) {
		s2, _ := newShell(t, WithBirthdayWindow(0))
		run(t, s2, "add Alice 1234567890", "add-birthday Alice 08.06.1990")
		got, err := s2.Handle("birthdays")
		if err != nil {
			t.Fatal(err)
		}
		if got != "Name: Alice, congratulation date: 10.06.2024" {
			t.Errorf("birthdays = %q", got)
		}
	})
}

func TestShell_ExitAliases(t *testing.T) {
	for _, line := range []string{"close", "exit", "EXIT"} {
		t.Run(line, func(t *testing.T) {
			s, _ := newShell(t)

			got, err := s.Handle(line)

			if err != nil {
				t.Fatal(err)
			}
			if got != "Good bye!" {
				t.Errorf("Handle(%q) = %q, want %q", line, got, "Good bye!")
			}
			if !s.Done() {
				t.Error("Done() = false after exit command")
			}
		})
	}
}

func TestShell_Run(t *testing.T) {
	t.Run("stops at exit and keeps going after failures", func(t *testing.T) {
		// Given: a session with a failing command between valid ones
		s, book := newShell(t)
		in := strings.NewReader("add John 1234567890\nadd Jane 12\nbogus\nexit\nadd Late 1234567890\n")
		var out bytes.Buffer

		// When: the loop runs
		if err := s.Run(in, &out); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		// Then: every line up to exit was handled and later lines were not
		got := out.String()
		for _, want := range []string{
			"Welcome to the assistant bot!",
			"Contact added.",
			"Invalid phone number: must be exactly 10 digits",
			"Invalid command. Available commands:",
			"Good bye!",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		if _, err := book.Find("Late"); err == nil {
			t.Error("line after exit was handled")
		}
	})

	t.Run("ends at EOF", func(t *testing.T) {
		s, book := newShell(t)
		var out bytes.Buffer

		if err := s.Run(strings.NewReader("add John 1234567890"), &out); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if book.Len() != 1 {
			t.Errorf("Len() = %d, want 1", book.Len())
		}
		if s.Done() {
			t.Error("Done() = true without an exit command")
		}
	})

	t.Run("prompt", func(t *testing.T) {
		s, _ := newShell(t, WithPrompt(true))
		var out bytes.Buffer

		if err := s.Run(strings.NewReader("exit\n"), &out); err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(out.String(), "Enter a command:") {
			t.Errorf("output = %q, want prompt", out.String())
		}
	})
}

func TestShell_RunRecordsHistory(t *testing.T) {
	// Given: a shell writing history into a temp dir
	path := filepath.Join(t.TempDir(), "nested", "history")
	s, _ := newShell(t, WithHistory(NewHistory(path)))

	// When: a session runs
	in := strings.NewReader("hello\n\nadd John 1234567890\nexit\n")
	if err := s.Run(in, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	// Then: non-blank lines are appended in order
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "hello\nadd John 1234567890\nexit\n"
	if string(data) != want {
		t.Errorf("history = %q, want %q", data, want)
	}
}

func TestShell_RunSurvivesBrokenHistory(t *testing.T) {
	// Given: a history path whose parent is a regular file
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s, book := newShell(t, WithHistory(NewHistory(filepath.Join(blocker, "history"))))

	// When: a session runs
	err := s.Run(strings.NewReader("add John 1234567890\nexit\n"), &bytes.Buffer{})

	// Then: commands still run
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if book.Len() != 1 {
		t.Errorf("Len() = %d, want 1", book.Len())
	}
}

func TestHelpText(t *testing.T) {
	help := HelpText()
	lines := strings.Split(help, "\n")
	if len(lines) != len(Commands()) {
		t.Fatalf("help has %d lines, want %d", len(lines), len(Commands()))
	}
	for _, want := range []string{
		"Usage: hello - Get a greeting",
		"Usage: close | exit - Save and exit",
		"Usage: birthdays [days] - Show birthdays in the coming days",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestFormatUpcoming(t *testing.T) {
	if got := FormatUpcoming(nil); got != "No upcoming birthdays." {
		t.Errorf("FormatUpcoming(nil) = %q", got)
	}
}
