package account

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"sangha/internal/adapters/storage"
	domain "sangha/internal/domain/account"
)

const accountColumns = "id, name, email, password_hash, phone, role, notification_preference, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new account store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Account by its ID.
// PRE: id is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE id = ?", id)
	return scanAccount(row)
}

// GetByEmail retrieves an Account by email.
// PRE: email is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+accountColumns+" FROM account WHERE email = ?", email)
	return scanAccount(row)
}

// Save persists an Account (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted; a duplicate email maps to domain.ErrEmailAlreadyExists
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Account) error {
	query := `INSERT INTO account (id, name, email, password_hash, phone, role, notification_preference, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			password_hash=excluded.password_hash,
			phone=excluded.phone,
			role=excluded.role,
			notification_preference=excluded.notification_preference`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.PasswordHash,
		entity.Phone,
		entity.Role,
		entity.NotificationPreference,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

// Delete removes an Account from the database.
// PRE: id is non-empty; the account's interest records have been removed
// POST: Entity with given id is removed, or domain.ErrNotFound
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM account WHERE id = ?", id)
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

// List returns all accounts ordered by creation time.
// POST: Returns every account; password hashes are included, callers must not expose them
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+accountColumns+" FROM account ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var entity domain.Account
		var createdAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Email,
			&entity.PasswordHash,
			&entity.Phone,
			&entity.Role,
			&entity.NotificationPreference,
			&createdAt,
		); err != nil {
			return nil, err
		}
		entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		accounts = append(accounts, entity)
	}
	return accounts, rows.Err()
}

// CountByRole returns the number of accounts per role.
func (s *SQLiteStore) CountByRole(ctx context.Context) (map[string]int, error) {
	return s.countGrouped(ctx, "SELECT role, COUNT(*) FROM account GROUP BY role")
}

// CountByNotificationPreference returns the number of accounts per cadence preference.
func (s *SQLiteStore) CountByNotificationPreference(ctx context.Context) (map[string]int, error) {
	return s.countGrouped(ctx, "SELECT notification_preference, COUNT(*) FROM account GROUP BY notification_preference")
}

func (s *SQLiteStore) countGrouped(ctx context.Context, query string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var entity domain.Account
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&entity.PasswordHash,
		&entity.Phone,
		&entity.Role,
		&entity.NotificationPreference,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Account{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return entity, nil
}
