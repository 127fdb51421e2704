package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/smileynet/addressbook/internal/contacts"
)

// RenderDetail renders one contact for the right pane.
func RenderDetail(r *contacts.Record) string {
	if r == nil {
		return mutedText.Render("No contact selected")
	}

	var b strings.Builder
	b.WriteString(headingText.Render(r.Name().Value()))
	b.WriteString("\n\nPhones:\n")
	phones := r.Phones()
	if len(phones) == 0 {
		b.WriteString(mutedText.Render("  none"))
		b.WriteByte('\n')
	}
	for _, p := range phones {
		fmt.Fprintf(&b, "  %s\n", p)
	}

	b.WriteString("\nBirthday: ")
	if bd, ok := r.Birthday(); ok {
		b.WriteString(bd.String())
	} else {
		b.WriteString(mutedText.Render("not added yet"))
	}
	return b.String()
}

// RenderUpcoming renders the birthdays due within window days of today.
func RenderUpcoming(book *contacts.AddressBook, today time.Time, window int) string {
	var b strings.Builder
	b.WriteString(headingText.Render(fmt.Sprintf("Birthdays in the next %d days", window)))
	b.WriteString("\n\n")

	if book == nil {
		return b.String()
	}
	upcoming := book.UpcomingBirthdays(today, window)
	if len(upcoming) == 0 {
		b.WriteString(mutedText.Render("No upcoming birthdays."))
		return b.String()
	}
	for _, u := range upcoming {
		fmt.Fprintf(&b, "%s  %s", u.CongratulateOn.Format(contacts.DateLayout), u.Record.Name())
		if !u.CongratulateOn.Equal(u.Birthday) {
			b.WriteString(mutedText.Render(" (born " + u.Birthday.Format("02.01") + ")"))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
