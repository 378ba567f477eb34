package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"sangha/internal/domain/account"
	"sangha/internal/domain/event"
	"sangha/internal/domain/interest"
)

// InterestStoreForLedger defines the ledger operations used by the
// mark/remove orchestrators.
type InterestStoreForLedger interface {
	Create(ctx context.Context, rec interest.Record) error
	Remove(ctx context.Context, eventID, userID string) error
}

// AccountLookup resolves a user for result enrichment.
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
}

// EventLookup resolves an event for result enrichment.
type EventLookup interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// UserSummary is the slice of an account attached to an interest result.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventSummary is the slice of an event attached to an interest result.
type EventSummary struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
}

// MarkInterestInput carries input for marking interest.
type MarkInterestInput struct {
	EventID string
	UserID  string
}

// MarkInterestDeps holds dependencies for MarkInterest.
type MarkInterestDeps struct {
	InterestStore InterestStoreForLedger
	AccountStore  AccountLookup
	EventStore    EventLookup
	GenerateID    func() string
	Now           func() time.Time
}

// MarkInterestResult is the created record enriched with user and event summaries.
type MarkInterestResult struct {
	Record interest.Record
	User   UserSummary
	Event  EventSummary
}

// ExecuteMarkInterest records that a user is interested in an event. The
// ledger store inserts the record and bumps the event's counter in one
// transaction; a concurrent duplicate loses at the unique index and surfaces
// as interest.ErrAlreadyInterested with no side effects.
// PRE: UserID is the authenticated caller
// POST: Exactly one record exists for the pair; result carries summaries
func ExecuteMarkInterest(ctx context.Context, input MarkInterestInput, deps MarkInterestDeps) (MarkInterestResult, error) {
	rec := interest.Record{
		ID:        deps.GenerateID(),
		EventID:   input.EventID,
		UserID:    input.UserID,
		Status:    interest.StatusInterested,
		CreatedAt: deps.Now(),
	}
	if err := rec.Validate(); err != nil {
		return MarkInterestResult{}, err
	}

	if err := deps.InterestStore.Create(ctx, rec); err != nil {
		return MarkInterestResult{}, err
	}

	result := MarkInterestResult{Record: rec}
	if acct, err := deps.AccountStore.GetByID(ctx, input.UserID); err == nil {
		result.User = UserSummary{ID: acct.ID, Name: acct.Name, Email: acct.Email}
	}
	if e, err := deps.EventStore.GetByID(ctx, input.EventID); err == nil {
		result.Event = EventSummary{ID: e.ID, Title: e.Title, Date: e.Date, Time: e.Time, Location: e.Location}
	}

	slog.Info("interest_event", "event", "interest_marked", "event_id", input.EventID, "user_id", input.UserID)
	return result, nil
}

// RemoveInterestInput carries input for withdrawing interest.
type RemoveInterestInput struct {
	EventID string
	UserID  string
}

// RemoveInterestDeps holds dependencies for RemoveInterest.
type RemoveInterestDeps struct {
	InterestStore InterestStoreForLedger
}

// ExecuteRemoveInterest withdraws a user's interest in an event. Deleting the
// record and decrementing the counter happen in one ledger transaction.
// PRE: UserID is the authenticated caller
// POST: No record exists for the pair; a pair that was never marked surfaces
// as interest.ErrNotFound with the event's aggregates unchanged
func ExecuteRemoveInterest(ctx context.Context, input RemoveInterestInput, deps RemoveInterestDeps) error {
	if err := deps.InterestStore.Remove(ctx, input.EventID, input.UserID); err != nil {
		return err
	}
	slog.Info("interest_event", "event", "interest_removed", "event_id", input.EventID, "user_id", input.UserID)
	return nil
}
