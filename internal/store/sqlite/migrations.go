package sqlite

import "database/sql"

// schema sets up the tables on startup. Contacts keep their book position
// so insertion order survives a round trip; phones keep theirs per contact.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL UNIQUE,
    birthday TEXT
);

CREATE TABLE IF NOT EXISTS phones (
    contact_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (contact_id, number),
    FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_contacts_position ON contacts(position);
CREATE INDEX IF NOT EXISTS idx_phones_contact_id ON phones(contact_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
