// Package sqlite provides a SQLite-backed implementation of the store.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/smileynet/addressbook/internal/contacts"
	"github.com/smileynet/addressbook/internal/store"
)

// Ensure SQLiteStore implements store.Store
var _ store.Store = (*SQLiteStore)(nil)

// SQLiteStore implements store.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	// Pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns every contact ordered by the position it was saved at.
func (s *SQLiteStore) Load(ctx context.Context) ([]contacts.RecordSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying contacts: %w", err)
	}
	defer rows.Close()

	var (
		snaps []contacts.RecordSnapshot
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			id, name string
			birthday sql.NullString
		)
		if err := rows.Scan(&id, &name, &birthday); err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact: %w", err)
		}
		index[id] = len(snaps)
		snaps = append(snaps, contacts.RecordSnapshot{
			Name:     name,
			Phones:   []string{},
			Birthday: birthday.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contacts: %w", err)
	}

	if err := s.loadPhones(ctx, snaps, index); err != nil {
		return nil, err
	}

	slog.Debug("loaded book", "contacts", len(snaps))
	return snaps, nil
}

func (s *SQLiteStore) loadPhones(ctx context.Context, snaps []contacts.RecordSnapshot, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT contact_id, number FROM phones ORDER BY contact_id, position`)
	if err != nil {
		return fmt.Errorf("sqlite: querying phones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contactID, number string
		if err := rows.Scan(&contactID, &number); err != nil {
			return fmt.Errorf("sqlite: scanning phone: %w", err)
		}
		i, ok := index[contactID]
		if !ok {
			continue
		}
		snaps[i].Phones = append(snaps[i].Phones, number)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating phones: %w", err)
	}
	return nil
}

// Save replaces all stored contacts in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshots []contacts.RecordSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"phones", "contacts"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clearing %s: %w", table, err)
		}
	}

	for pos, snap := range snapshots {
		id := uuid.New().String()
		var birthday sql.NullString
		if snap.Birthday != "" {
			birthday = sql.NullString{String: snap.Birthday, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (id, position, name, birthday) VALUES (?, ?, ?, ?)`,
			id, pos, snap.Name, birthday,
		); err != nil {
			return fmt.Errorf("sqlite: inserting contact %q: %w", snap.Name, err)
		}
		for ppos, number := range snap.Phones {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)`,
				id, ppos, number,
			); err != nil {
				return fmt.Errorf("sqlite: inserting phone for %q: %w", snap.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing: %w", err)
	}

	slog.Debug("saved book", "contacts", len(snapshots))
	return nil
}
