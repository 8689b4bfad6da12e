package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/olivierdt/skyjo-cli/internal/dbx"
)

// AuditReason tags a session lifecycle transition. A rejected stored token
// (ReasonVerifyRejected) is recorded distinctly from startup with no token at
// all (ReasonNoToken), even though both end in the anonymous state.
type AuditReason string

const (
	ReasonLogin          AuditReason = "login"
	ReasonRegister       AuditReason = "register"
	ReasonVerifyOK       AuditReason = "verify_ok"
	ReasonVerifyRejected AuditReason = "verify_rejected"
	ReasonNoToken        AuditReason = "no_token"
	ReasonLogout         AuditReason = "logout"
)

// AuditEvent is one recorded lifecycle transition. Username is empty for
// transitions without a known identity.
type AuditEvent struct {
	ID         string
	Reason     AuditReason
	Username   string
	RecordedAt time.Time
}

// AuditRepository records session lifecycle transitions locally.
type AuditRepository interface {
	Record(ctx context.Context, ev AuditEvent) error
	List(ctx context.Context) ([]AuditEvent, error)
}

type SQLiteAuditRepository struct {
	db dbx.DBTX
}

func NewSQLiteAuditRepository(db dbx.DBTX) *SQLiteAuditRepository {
	return &SQLiteAuditRepository{db: db}
}

func (r *SQLiteAuditRepository) Record(ctx context.Context, ev AuditEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO auth_audit (id, reason, username, recorded_at) VALUES (?, ?, ?, ?)
	`, ev.ID, string(ev.Reason), ev.Username, ev.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepository) List(ctx context.Context) ([]AuditEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reason, username, recorded_at FROM auth_audit ORDER BY recorded_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var result []AuditEvent
	for rows.Next() {
		var (
			ev     AuditEvent
			reason string
		)
		if err := rows.Scan(&ev.ID, &reason, &ev.Username, &ev.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		ev.Reason = AuditReason(reason)
		result = append(result, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
	}

	return result, nil
}
