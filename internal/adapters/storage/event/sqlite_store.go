package event

import (
	"context"
	"database/sql"
	"time"

	"sangha/internal/adapters/storage"
	domain "sangha/internal/domain/event"
)

const eventColumns = "id, title, description, date, time, location, category, image, max_participants, created_by, active, interested_count, created_at"

// dateFormat stores event dates as bare calendar dates.
const dateFormat = "2006-01-02"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Event by its ID, soft-deleted events included —
// historical interest records must keep resolving.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM event WHERE id = ?", id)
	return scanEvent(row)
}

// Save persists an Event (insert or update). The interested_count column is
// deliberately absent from the update set: the ledger is its sole writer.
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	query := `INSERT INTO event (id, title, description, date, time, location, category, image, max_participants, created_by, active, interested_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			date=excluded.date,
			time=excluded.time,
			location=excluded.location,
			category=excluded.category,
			image=excluded.image,
			max_participants=excluded.max_participants,
			active=excluded.active`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Date.Format(dateFormat),
		entity.Time,
		entity.Location,
		entity.Category,
		entity.Image,
		entity.MaxParticipants,
		entity.CreatedBy,
		boolToInt(entity.Active),
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// SoftDelete clears the active flag. The row is never physically removed so
// historical interest records stay valid.
// PRE: id is non-empty
// POST: Event is inactive, or domain.ErrNotFound
func (s *SQLiteStore) SoftDelete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE event SET active = 0 WHERE id = ?", id)
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
	return nil
}

// List returns all active events ordered by date ascending.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, "SELECT "+eventColumns+" FROM event WHERE active = 1 ORDER BY date")
}

// ListByCategory returns active events in one category, date ascending.
// PRE: category is non-empty
func (s *SQLiteStore) ListByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	return s.list(ctx, "SELECT "+eventColumns+" FROM event WHERE active = 1 AND category = ? ORDER BY date", category)
}

// ListInterestedUserIDs resolves the event's interested-user set from the
// ledger, which is the source of truth for set membership.
// PRE: eventID is non-empty
// POST: Returns user IDs ordered by when interest was marked
func (s *SQLiteStore) ListInterestedUserIDs(ctx context.Context, eventID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM event_interest WHERE event_id = ? ORDER BY created_at", eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecountInterested repairs every event's denormalized counter from the
// ledger. Run at startup so a crash between past writes cannot leave a
// permanently stale count.
// POST: interested_count equals the ledger cardinality for every event;
// returns the number of rows that needed repair
func (s *SQLiteStore) RecountInterested(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE event SET interested_count = (
			SELECT COUNT(*) FROM event_interest WHERE event_interest.event_id = event.id
		)
		WHERE interested_count != (
			SELECT COUNT(*) FROM event_interest WHERE event_interest.event_id = event.id
		)`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var entity domain.Event
		var date, createdAt string
		var active int
		if err := rows.Scan(
			&entity.ID,
			&entity.Title,
			&entity.Description,
			&date,
			&entity.Time,
			&entity.Location,
			&entity.Category,
			&entity.Image,
			&entity.MaxParticipants,
			&entity.CreatedBy,
			&active,
			&entity.InterestedCount,
			&createdAt,
		); err != nil {
			return nil, err
		}
		entity.Date, _ = time.Parse(dateFormat, date)
		entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entity.Active = active == 1
		events = append(events, entity)
	}
	return events, rows.Err()
}

func scanEvent(row *sql.Row) (domain.Event, error) {
	var entity domain.Event
	var date, createdAt string
	var active int
	err := row.Scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&date,
		&entity.Time,
		&entity.Location,
		&entity.Category,
		&entity.Image,
		&entity.MaxParticipants,
		&entity.CreatedBy,
		&active,
		&entity.InterestedCount,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Event{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Event{}, err
	}
	entity.Date, _ = time.Parse(dateFormat, date)
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	entity.Active = active == 1
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
