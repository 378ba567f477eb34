package projections

import (
	"context"
	"log/slog"
	"time"

	domainEvent "sangha/internal/domain/event"
)

// UserInterest is one of the caller's interest records enriched with full
// event details.
type UserInterest struct {
	InterestID string            `json:"interestId"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
	Event      domainEvent.Event `json:"event"`
}

// GetUserInterestsDeps holds dependencies for GetUserInterests.
type GetUserInterestsDeps struct {
	InterestStore InterestStore
	EventStore    EventStore
}

// QueryGetUserInterests returns all events a user has marked, newest first
// by when interest was marked. Soft-deleted events still resolve — the
// records stay valid history.
// PRE: userID is the authenticated caller
func QueryGetUserInterests(ctx context.Context, userID string, deps GetUserInterestsDeps) ([]UserInterest, error) {
	records, err := deps.InterestStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var interests []UserInterest
	for _, rec := range records {
		e, err := deps.EventStore.GetByID(ctx, rec.EventID)
		if err != nil {
			slog.Warn("interest_event", "event", "event_lookup_failed", "event_id", rec.EventID, "error", err)
			continue
		}
		interests = append(interests, UserInterest{
			InterestID: rec.ID,
			Status:     rec.Status,
			CreatedAt:  rec.CreatedAt,
			Event:      e,
		})
	}
	return interests, nil
}

// CheckInterestDeps holds dependencies for CheckInterest.
type CheckInterestDeps struct {
	InterestStore InterestStore
}

// QueryCheckInterest reports whether the user has marked the event. A pure
// read; it fails only on transport error.
func QueryCheckInterest(ctx context.Context, eventID, userID string, deps CheckInterestDeps) (bool, error) {
	return deps.InterestStore.IsInterested(ctx, eventID, userID)
}
