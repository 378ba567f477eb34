package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sangha/internal/adapters/storage"
	domain "sangha/internal/domain/notification"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new dispatch log store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a dispatch report with its per-recipient outcomes.
// PRE: value.ID is set and counters have been tallied
// POST: Report and outcomes are committed together
func (s *SQLiteStore) Save(ctx context.Context, value domain.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO notification_log (id, event_id, subject, total, sent, failed, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		value.ID,
		value.EventID,
		value.Subject,
		value.Total,
		value.Sent,
		value.Failed,
		value.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	for _, o := range value.Outcomes {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO notification_outcome (id, log_id, recipient_email, status, reason) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), value.ID, o.RecipientEmail, o.Status, o.Reason)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByEvent returns dispatch reports for an event, newest first, with
// outcomes attached.
func (s *SQLiteStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, event_id, subject, total, sent, failed, created_at FROM notification_log WHERE event_id = ? ORDER BY created_at DESC",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var r domain.Report
		var createdAt string
		if err := rows.Scan(&r.ID, &r.EventID, &r.Subject, &r.Total, &r.Sent, &r.Failed, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reports {
		outcomes, err := s.outcomes(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
		reports[i].Outcomes = outcomes
	}
	return reports, nil
}

func (s *SQLiteStore) outcomes(ctx context.Context, logID string) ([]domain.Outcome, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT recipient_email, status, reason FROM notification_outcome WHERE log_id = ?", logID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []domain.Outcome
	for rows.Next() {
		var o domain.Outcome
		if err := rows.Scan(&o.RecipientEmail, &o.Status, &o.Reason); err != nil {
			return nil, err
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
