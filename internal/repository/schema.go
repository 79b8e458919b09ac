package repository

import (
	"context"
	"fmt"
)

// Portable DDL: works on both SQLite and Postgres. Timestamps are stored as
// epoch seconds to keep the two drivers scanning identically.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id              TEXT PRIMARY KEY,
		merchant        TEXT NOT NULL DEFAULT '',
		amount_minor    BIGINT,
		currency        TEXT NOT NULL DEFAULT '',
		pay_time        BIGINT NOT NULL,
		pay_time_source TEXT NOT NULL,
		pay_method      TEXT NOT NULL DEFAULT '',
		card_tail       TEXT NOT NULL DEFAULT '',
		category_guess  TEXT NOT NULL DEFAULT '',
		platform        TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT '',
		order_id        TEXT NOT NULL DEFAULT '',
		item            TEXT NOT NULL DEFAULT '',
		template        TEXT NOT NULL DEFAULT '',
		conf_amount     INTEGER NOT NULL DEFAULT 0,
		conf_merchant   INTEGER NOT NULL DEFAULT 0,
		conf_category   INTEGER NOT NULL DEFAULT 0,
		conf_overall    INTEGER NOT NULL DEFAULT 0,
		category_id     TEXT NOT NULL DEFAULT '',
		tag_id          TEXT NOT NULL DEFAULT '',
		direction       TEXT NOT NULL DEFAULT '',
		account_id      TEXT NOT NULL DEFAULT '',
		needs_review    INTEGER NOT NULL DEFAULT 0,
		raw_text        TEXT NOT NULL DEFAULT '',
		created_at      BIGINT NOT NULL,
		updated_at      BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_created_at ON records (created_at)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		direction TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		parent_id TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		group_id TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the store tables when they do not exist yet.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
