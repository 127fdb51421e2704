package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smileynet/addressbook/internal/contacts"
)

// Command describes one shell command.
type Command struct {
	Name        string
	Aliases     []string
	Args        string // Argument synopsis, e.g. "<name> <phone>".
	Description string
	MinArgs     int
	run         func(s *Shell, args []string) (string, error)
}

// Usage returns the command synopsis, e.g. "add <name> <phone>".
func (c Command) Usage() string {
	names := append([]string{c.Name}, c.Aliases...)
	usage := strings.Join(names, " | ")
	if c.Args != "" {
		usage += " " + c.Args
	}
	return usage
}

// UsageError reports a command called with too few or malformed arguments.
type UsageError struct {
	Command Command
}

func (e *UsageError) Error() string {
	return "Invalid number of arguments. Usage: " + e.Command.Usage()
}

// ErrUnknownCommand is returned for a command name that is not in the table.
var ErrUnknownCommand = errors.New("invalid command")

// commands is the dispatch table, in the order help lists them. It is
// filled in init because the help command refers back to it.
var commands []Command

func init() {
	commands = []Command{
		{
			Name:        "hello",
			Description: "Get a greeting",
			run: func(*Shell, []string) (string, error) {
				return "How can I help you?", nil
			},
		},
		{
			Name:        "add",
			Args:        "<name> <phone>",
			Description: "Add a new contact or a phone to an existing one",
			MinArgs:     2,
			run:         (*Shell).add,
		},
		{
			Name:        "change",
			Args:        "<name> <old phone> <new phone>",
			Description: "Change an existing phone number",
			MinArgs:     3,
			run:         (*Shell).change,
		},
		{
			Name:        "phone",
			Args:        "<name>",
			Description: "Show phone numbers for a contact",
			MinArgs:     1,
			run:         (*Shell).phone,
		},
		{
			Name:        "remove-phone",
			Args:        "<name> <phone>",
			Description: "Remove a phone number from a contact",
			MinArgs:     2,
			run:         (*Shell).removePhone,
		},
		{
			Name:        "delete",
			Args:        "<name>",
			Description: "Delete a contact",
			MinArgs:     1,
			run:         (*Shell).delete,
		},
		{
			Name:        "all",
			Description: "Show all contacts",
			run: func(s *Shell, _ []string) (string, error) {
				return s.book.String(), nil
			},
		},
		{
			Name:        "add-birthday",
			Args:        "<name> <DD.MM.YYYY>",
			Description: "Add a birthday for a contact",
			MinArgs:     2,
			run:         (*Shell).addBirthday,
		},
		{
			Name:        "show-birthday",
			Args:        "<name>",
			Description: "Show the birthday of a contact",
			MinArgs:     1,
			run:         (*Shell).showBirthday,
		},
		{
			Name:        "birthdays",
			Args:        "[days]",
			Description: "Show birthdays in the coming days",
			run:         (*Shell).birthdays,
		},
		{
			Name:        "help",
			Description: "Show this list",
			run: func(*Shell, []string) (string, error) {
				return HelpText(), nil
			},
		},
		{
			Name:        "close",
			Aliases:     []string{"exit"},
			Description: "Save and exit",
			run: func(s *Shell, _ []string) (string, error) {
				s.done = true
				return "Good bye!", nil
			},
		},
	}
}

// Commands returns the command table in help order.
func Commands() []Command {
	return append([]Command(nil), commands...)
}

// lookup finds a command by name or alias.
func lookup(name string) (Command, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
		for _, a := range c.Aliases {
			if a == name {
				return c, true
			}
		}
	}
	return Command{}, false
}

// HelpText lists every command with its usage and description.
func HelpText() string {
	lines := make([]string, len(commands))
	for i, c := range commands {
		lines[i] = fmt.Sprintf("Usage: %s - %s", c.Usage(), c.Description)
	}
	return strings.Join(lines, "\n")
}

func (s *Shell) add(args []string) (string, error) {
	name, phone := args[0], args[1]
	rec, err := s.book.Find(name)
	if errors.Is(err, contacts.ErrRecordNotFound) {
		rec, err = contacts.NewRecord(name)
		if err != nil {
			return "", err
		}
		if err := rec.AddPhone(phone); err != nil {
			return "", err
		}
		if err := s.book.AddRecord(rec); err != nil {
			return "", err
		}
		return "Contact added.", nil
	}
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(phone); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func (s *Shell) change(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func (s *Shell) phone(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		return "No phone numbers for this contact.", nil
	}
	lines := make([]string, len(phones))
	for i, p := range phones {
		lines[i] = p.String()
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Shell) removePhone(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.RemovePhone(args[1]); err != nil {
		return "", err
	}
	return "Phone removed.", nil
}

func (s *Shell) delete(args []string) (string, error) {
	if err := s.book.Delete(args[0]); err != nil {
		return "", err
	}
	return "Contact deleted.", nil
}

func (s *Shell) addBirthday(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.AddBirthdayAt(args[1], s.now()); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

func (s *Shell) showBirthday(args []string) (string, error) {
	rec, err := s.book.Find(args[0])
	if err != nil {
		return "", err
	}
	bd, ok := rec.Birthday()
	if !ok {
		return "No birthday set for this contact.", nil
	}
	return bd.String(), nil
}

func (s *Shell) birthdays(args []string) (string, error) {
	window := s.window
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			c, _ := lookup("birthdays")
			return "", &UsageError{Command: c}
		}
		window = n
	}
	return FormatUpcoming(s.book.UpcomingBirthdays(s.now(), window)), nil
}

// FormatUpcoming renders an upcoming-birthday list, one contact per line.
func FormatUpcoming(upcoming []contacts.UpcomingBirthday) string {
	if len(upcoming) == 0 {
		return "No upcoming birthdays."
	}
	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("Name: %s, congratulation date: %s",
			u.Record.Name(), u.CongratulateOn.Format(contacts.DateLayout))
	}
	return strings.Join(lines, "\n")
}
