// Package store defines how an address book is persisted between sessions.
package store

import (
	"context"
	"fmt"

	"github.com/smileynet/addressbook/internal/contacts"
)

// Store loads and saves the full list of contacts.
// Implementations must preserve record order and phone order.
type Store interface {
	// Load returns every saved contact. A store that has never been saved
	// returns an empty list and no error.
	Load(ctx context.Context) ([]contacts.RecordSnapshot, error)

	// Save replaces everything stored with snapshots.
	Save(ctx context.Context, snapshots []contacts.RecordSnapshot) error

	// Close releases any resources held by the store.
	Close() error
}

// LoadBook loads and validates the book held by s.
func LoadBook(ctx context.Context, s Store) (*contacts.AddressBook, error) {
	snaps, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	book, err := contacts.Restore(snaps)
	if err != nil {
		return nil, fmt.Errorf("store: restoring book: %w", err)
	}
	return book, nil
}

// SaveBook writes book to s.
func SaveBook(ctx context.Context, s Store, book *contacts.AddressBook) error {
	return s.Save(ctx, book.Snapshot())
}
