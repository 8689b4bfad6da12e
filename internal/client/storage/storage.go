// Package storage holds the client's durable state: the single bearer-token
// slot the session manager persists between runs, and a local audit log of
// session lifecycle transitions. Both live in one sqlite database file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// AuthTokenKey is the fixed key of the persisted bearer token slot.
const AuthTokenKey = "authToken"

// Open opens (or creates) the client database at path and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open client db: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the client tables if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS client_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS auth_audit (
			id          TEXT PRIMARY KEY,
			reason      TEXT NOT NULL,
			username    TEXT NOT NULL,
			recorded_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate client db: %w", err)
	}
	return nil
}
