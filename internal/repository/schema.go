package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// leadsDDL is shared between postgres and sqlite: TEXT ids and TEXT-encoded
// JSON keep the store portable across both drivers.
const leadsDDL = `
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	service       TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'new',
	raw_data      TEXT,
	realist_data  TEXT,
	agent_notes   TEXT,
	reviewed_at   TIMESTAMP,
	drafted_at    TIMESTAMP,
	created_at    TIMESTAMP NOT NULL
)`

const leadsStatusIndexDDL = `CREATE INDEX IF NOT EXISTS leads_status_idx ON leads (status)`

// InitSchema creates the leads table and indexes if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, leadsDDL); err != nil {
		return fmt.Errorf("create leads table: %w", err)
	}
	if _, err := db.ExecContext(ctx, leadsStatusIndexDDL); err != nil {
		return fmt.Errorf("create leads status index: %w", err)
	}
	return nil
}
