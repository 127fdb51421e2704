// Package shell implements the line-oriented command interface: it parses
// a line into a command and arguments, runs it against the address book,
// and renders the result or the failure as text.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/smileynet/addressbook/internal/contacts"
)

// Shell dispatches command lines against one address book.
type Shell struct {
	book    *contacts.AddressBook
	now     func() time.Time
	window  int
	history *History
	prompt  bool
	done    bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithClock sets the time source used for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(s *Shell) { s.now = now }
}

// WithBirthdayWindow sets the default number of days "birthdays" looks ahead.
func WithBirthdayWindow(days int) Option {
	return func(s *Shell) { s.window = days }
}

// WithHistory records every entered line to h.
func WithHistory(h *History) Option {
	return func(s *Shell) { s.history = h }
}

// WithPrompt enables the "Enter a command:" prompt before each line.
func WithPrompt(enabled bool) Option {
	return func(s *Shell) { s.prompt = enabled }
}

// New creates a Shell for book.
func New(book *contacts.AddressBook, opts ...Option) *Shell {
	s := &Shell{
		book:   book,
		now:    time.Now,
		window: contacts.DefaultBirthdayWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Done reports whether an exit command has been run.
func (s *Shell) Done() bool {
	return s.done
}

// Handle runs one command line. It returns the text to show on success, or
// the failure to show: a *contacts.Error, a *UsageError, or
// ErrUnknownCommand. A blank line does nothing.
func (s *Shell) Handle(line string) (string, error) {
	fields, err := Tokenize(line)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := lookup(name)
	if !ok {
		return "", fmt.Errorf("%w. Available commands:\n%s", ErrUnknownCommand, HelpText())
	}
	if len(args) < cmd.MinArgs {
		return "", &UsageError{Command: cmd}
	}
	return cmd.run(s, args)
}

// Run greets the user and processes lines from in until an exit command or
// end of input. Failures are written to out and never stop the loop.
func (s *Shell) Run(in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(out, titleStyle.Render("Welcome to the assistant bot!"))
	_, _ = fmt.Fprintln(out, "Available commands:")
	_, _ = fmt.Fprintln(out, dimStyle.Render(HelpText()))

	scanner := bufio.NewScanner(in)
	for !s.done {
		if s.prompt {
			_, _ = fmt.Fprint(out, "\n"+promptStyle.Render("Enter a command:")+" ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		s.record(line)

		text, err := s.Handle(line)
		switch {
		case err != nil:
			_, _ = fmt.Fprintln(out, Render(err))
		case text != "":
			_, _ = fmt.Fprintln(out, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("shell: reading input: %w", err)
	}
	return nil
}

// record appends line to the history. A failing history is logged once
// and then switched off.
func (s *Shell) record(line string) {
	if s.history == nil || strings.TrimSpace(line) == "" {
		return
	}
	if err := s.history.Append(line); err != nil {
		slog.Warn("history disabled", "err", err)
		s.history = nil
	}
}

// Render formats a failure for display as a sentence.
func Render(err error) string {
	msg := capitalize(err.Error())
	var ue *UsageError
	if errors.As(err, &ue) || errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrUnbalancedQuote) {
		return warnStyle.Render(msg)
	}
	return errorStyle.Render(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
