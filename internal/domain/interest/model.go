package interest

import (
	"errors"
	"time"
)

// Status constants. A record is created as "interested". The "registered"
// status is stored for forward compatibility but no operation transitions
// to it — the lifecycle of a (event, user) pair is absent → interested → absent.
const (
	StatusInterested = "interested"
	StatusRegistered = "registered"
)

// Domain errors
var (
	ErrAlreadyInterested = errors.New("already interested in this event")
	ErrNotFound          = errors.New("interest not found")
	ErrEmptyEventID      = errors.New("event_id is required")
	ErrEmptyUserID       = errors.New("user_id is required")
)

// Record asserts that one user is interested in one event. At most one
// record exists per (EventID, UserID) pair; the storage layer enforces
// this with a unique index, not an application-side existence check.
type Record struct {
	ID        string
	EventID   string
	UserID    string
	Status    string
	CreatedAt time.Time
}

// Validate checks the record's invariants.
// PRE: fields may be empty (validation will catch this)
// POST: Returns nil if valid, error otherwise
func (r *Record) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if r.UserID == "" {
		return ErrEmptyUserID
	}
	if r.Status != StatusInterested && r.Status != StatusRegistered {
		return errors.New("status must be 'interested' or 'registered'")
	}
	return nil
}
