package main

import (
	"context"
	"path/filepath"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contacts"
	"github.com/smileynet/addressbook/internal/store"
)

// testConfig returns the default config with every path under dir.
func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(dir, "book.json")
	cfg.Shell.HistoryFile = filepath.Join(dir, "history")
	return &cfg
}

// memStore is an in-memory store.Store for command tests.
type memStore struct {
	snapshots []contacts.RecordSnapshot
	saveErr   error
	saved     bool
}

var _ store.Store = (*memStore)(nil)

func (m *memStore) Load(context.Context) ([]contacts.RecordSnapshot, error) {
	return m.snapshots, nil
}

func (m *memStore) Save(_ context.Context, snapshots []contacts.RecordSnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots = snapshots
	m.saved = true
	return nil
}

func (m *memStore) Close() error { return nil }
