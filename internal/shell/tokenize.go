package shell

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnbalancedQuote is returned for a line with an unterminated quote.
var ErrUnbalancedQuote = errors.New("unbalanced quote in command")

// Tokenize splits line on whitespace. Double quotes group words, so
// `add "John Doe" 1234567890` passes the name as one argument.
func Tokenize(line string) ([]string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				fields = append(fields, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, ErrUnbalancedQuote
	}
	if started {
		fields = append(fields, cur.String())
	}
	return fields, nil
}
