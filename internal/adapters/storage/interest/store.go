package interest

import (
	"context"

	domain "sangha/internal/domain/interest"
)

// Store persists interest records and keeps the owning event's denormalized
// interested_count in step. Create and Remove run both writes in a single
// transaction, so a reader can never observe a record without its count.
type Store interface {
	Create(ctx context.Context, value domain.Record) error
	Remove(ctx context.Context, eventID, userID string) error
	Get(ctx context.Context, eventID, userID string) (domain.Record, error)
	IsInterested(ctx context.Context, eventID, userID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Record, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}
