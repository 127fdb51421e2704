package shell

import (
	"fmt"
	"os"
	"path/filepath"
)

// History appends entered command lines to a file.
type History struct {
	path string
}

// NewHistory returns a History that writes to path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Append writes line to the end of the history file, creating it if needed.
func (h *History) Append(line string) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("history: creating directory: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("history: opening %s: %w", h.path, err)
	}
	if _, err := fmt.Fprintln(f, line); err != nil {
		_ = f.Close()
		return fmt.Errorf("history: writing %s: %w", h.path, err)
	}
	return f.Close()
}
