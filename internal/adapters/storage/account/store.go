package account

import (
	"context"

	domain "sangha/internal/domain/account"
)

// Store persists Account state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Account, error)
	CountByRole(ctx context.Context) (map[string]int, error)
	CountByNotificationPreference(ctx context.Context) (map[string]int, error)
}
