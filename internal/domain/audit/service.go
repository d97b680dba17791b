// Package audit records one row per relayed invocation. The store is
// append-only and strictly optional: when no database is configured the relay
// keeps no state at all.
package audit

import (
	"context"
	"database/sql"
	"time"
)

// Outcome classifies how an invocation ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Record is one invocation audit entry.
type Record struct {
	ID           int64
	RequestedAt  time.Time
	ModelID      string
	PromptBytes  int
	Outcome      Outcome
	DurationMS   int64
	Turns        int
	ErrorMessage *string
}

// Service writes and reads invocation records. A nil Service is valid and
// records nothing, so callers don't branch on whether auditing is enabled.
type Service struct {
	db *sql.DB
}

// NewService creates an audit service backed by db.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Log appends one record. Append-only: no updates, no deletes.
func (s *Service) Log(ctx context.Context, rec Record) error {
	if s == nil {
		return nil
	}
	if rec.RequestedAt.IsZero() {
		rec.RequestedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invocation_log (
			requested_at, model_id, prompt_bytes, outcome, duration_ms, turns, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.RequestedAt.UTC().Format(time.RFC3339Nano),
		rec.ModelID,
		rec.PromptBytes,
		string(rec.Outcome),
		rec.DurationMS,
		rec.Turns,
		rec.ErrorMessage,
	)
	return err
}

// Recent returns up to limit records, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, requested_at, model_id, prompt_bytes, outcome, duration_ms, turns, error_message
		FROM invocation_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var (
			rec      Record
			at       string
			outcome  string
			errorMsg sql.NullString
		)
		if err := rows.Scan(&rec.ID, &at, &rec.ModelID, &rec.PromptBytes, &outcome, &rec.DurationMS, &rec.Turns, &errorMsg); err != nil {
			return nil, err
		}
		rec.Outcome = Outcome(outcome)
		if ts, parseErr := time.Parse(time.RFC3339Nano, at); parseErr == nil {
			rec.RequestedAt = ts
		}
		if errorMsg.Valid {
			v := errorMsg.String
			rec.ErrorMessage = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
