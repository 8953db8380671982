package store

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence  INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS snapshots_sequence ON snapshots (sequence)`,
	`CREATE TABLE IF NOT EXISTS events (
		sequence  INTEGER PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		kind      TEXT NOT NULL,
		day       INTEGER NOT NULL,
		detail    TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
