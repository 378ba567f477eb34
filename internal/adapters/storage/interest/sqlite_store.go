package interest

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"sangha/internal/adapters/storage"
	eventDomain "sangha/internal/domain/event"
	domain "sangha/internal/domain/interest"
)

const interestColumns = "id, event_id, user_id, status, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new interest ledger store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts an interest record and increments the event's counter in one
// transaction. Uniqueness of the (event, user) pair is enforced by the
// database index, not by a prior existence check — two concurrent creates for
// the same pair race to the insert and exactly one wins.
// PRE: value has been validated
// POST: Record and counter are committed together; a duplicate pair maps to
// domain.ErrAlreadyInterested with no side effects
func (s *SQLiteStore) Create(ctx context.Context, value domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM event WHERE id = ?", value.EventID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return eventDomain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO event_interest (id, event_id, user_id, status, created_at) VALUES (?, ?, ?, ?, ?)",
		value.ID,
		value.EventID,
		value.UserID,
		value.Status,
		value.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return domain.ErrAlreadyInterested
		}
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE event SET interested_count = interested_count + 1 WHERE id = ?", value.EventID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Remove deletes the record for a pair and decrements the event's counter in
// one transaction. The decrement floors at zero; with the uniqueness invariant
// holding, the floor can never actually engage.
// PRE: eventID and userID are non-empty
// POST: Record and counter are committed together; a missing pair maps to
// domain.ErrNotFound with the event's aggregates untouched
func (s *SQLiteStore) Remove(ctx context.Context, eventID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM event_interest WHERE event_id = ? AND user_id = ?", eventID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE event SET interested_count = MAX(interested_count - 1, 0) WHERE id = ?", eventID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves the record for one (event, user) pair.
// POST: Returns the record or domain.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, eventID, userID string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+interestColumns+" FROM event_interest WHERE event_id = ? AND user_id = ?",
		eventID, userID)
	return scanRecord(row)
}

// IsInterested reports whether a record exists for the pair.
// POST: Never errors except on transport failure
func (s *SQLiteStore) IsInterested(ctx context.Context, eventID, userID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_interest WHERE event_id = ? AND user_id = ?",
		eventID, userID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByEvent returns all interest records for an event, oldest first.
func (s *SQLiteStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error) {
	return s.list(ctx,
		"SELECT "+interestColumns+" FROM event_interest WHERE event_id = ? ORDER BY created_at", eventID)
}

// ListByUser returns all interest records for a user, newest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Record, error) {
	return s.list(ctx,
		"SELECT "+interestColumns+" FROM event_interest WHERE user_id = ? ORDER BY created_at DESC", userID)
}

// CountByEvent returns the ledger cardinality for an event.
func (s *SQLiteStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_interest WHERE event_id = ?", eventID).Scan(&n)
	return n, err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var entity domain.Record
		var createdAt string
		if err := rows.Scan(&entity.ID, &entity.EventID, &entity.UserID, &entity.Status, &createdAt); err != nil {
			return nil, err
		}
		entity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		records = append(records, entity)
	}
	return records, rows.Err()
}

func scanRecord(row *sql.Row) (domain.Record, error) {
	var entity domain.Record
	var createdAt string
	err := row.Scan(&entity.ID, &entity.EventID, &entity.UserID, &entity.Status, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Record{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return entity, nil
}
