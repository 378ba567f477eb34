package event

import (
	"context"

	domain "sangha/internal/domain/event"
)

// Store persists Event state. The interested_count column is written only by
// the interest ledger's transactions; Save never touches it after insert.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Event, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Event, error)
	ListInterestedUserIDs(ctx context.Context, eventID string) ([]string, error)
	RecountInterested(ctx context.Context) (int, error)
}
