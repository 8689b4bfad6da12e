package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/olivierdt/skyjo-cli/internal/dbx"
)

// TokenRepository is the durable slot for the bearer token. A missing token
// reads as "" rather than an error: the session manager treats both the same.
type TokenRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

type SQLiteTokenRepository struct {
	db dbx.DBTX
}

func NewSQLiteTokenRepository(db dbx.DBTX) *SQLiteTokenRepository {
	return &SQLiteTokenRepository{db: db}
}

func (r *SQLiteTokenRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM client_state WHERE key = ?`, AuthTokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get auth token: %w", err)
	}
	return value, nil
}

func (r *SQLiteTokenRepository) Set(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO client_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, AuthTokenKey, token)
	if err != nil {
		return fmt.Errorf("failed to set auth token: %w", err)
	}
	return nil
}

func (r *SQLiteTokenRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, AuthTokenKey)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}
	return nil
}
