package projections

import (
	"context"

	domainAccount "sangha/internal/domain/account"
	domainEvent "sangha/internal/domain/event"
	domainInterest "sangha/internal/domain/interest"
)

// AccountStore interface for directory queries.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (domainAccount.Account, error)
	List(ctx context.Context) ([]domainAccount.Account, error)
	CountByRole(ctx context.Context) (map[string]int, error)
	CountByNotificationPreference(ctx context.Context) (map[string]int, error)
}

// EventStore interface for catalog queries.
type EventStore interface {
	GetByID(ctx context.Context, id string) (domainEvent.Event, error)
}

// InterestStore interface for ledger queries.
type InterestStore interface {
	IsInterested(ctx context.Context, eventID, userID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]domainInterest.Record, error)
	ListByUser(ctx context.Context, userID string) ([]domainInterest.Record, error)
}
