// Package jsonfile persists the address book as a single JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smileynet/addressbook/internal/contacts"
	"github.com/smileynet/addressbook/internal/store"
)

var _ store.Store = (*FileStore)(nil)

// formatVersion is written into every document and checked on load.
const formatVersion = 1

// ErrUnsupportedVersion indicates a document written by a newer format.
var ErrUnsupportedVersion = errors.New("jsonfile: unsupported format version")

type document struct {
	Version  int                       `json:"version"`
	Contacts []contacts.RecordSnapshot `json:"contacts"`
}

// FileStore keeps the book in one JSON file.
type FileStore struct {
	path string
}

// New creates a FileStore backed by the file at path.
// The file and its directory are created on first Save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the book. A missing file loads as an empty book.
func (s *FileStore) Load(ctx context.Context) ([]contacts.RecordSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no saved book", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("jsonfile: reading %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsonfile: parsing %s: %w", s.path, err)
	}
	if doc.Version > formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	slog.Debug("loaded book", "path", s.path, "contacts", len(doc.Contacts))
	return doc.Contacts, nil
}

// Save writes the book, replacing the file atomically.
func (s *FileStore) Save(ctx context.Context, snapshots []contacts.RecordSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshots == nil {
		snapshots = []contacts.RecordSnapshot{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(document{Version: formatVersion, Contacts: snapshots}, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("jsonfile: replacing %s: %w", s.path, err)
	}

	slog.Debug("saved book", "path", s.path, "contacts", len(snapshots))
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}
