package notification

import (
	"errors"
	"fmt"
	"time"
)

// Per-recipient outcome statuses.
const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// Domain errors
var (
	ErrNoRecipients = errors.New("no interested users found for this event")
	ErrEmptySubject = errors.New("subject is required")
)

// Outcome records the result of one send attempt. A failed send carries
// the provider's reason; it is reported, never retried.
type Outcome struct {
	RecipientEmail string
	Status         string
	Reason         string
}

// Report is the result of one dispatch: every recipient resolves to exactly
// one outcome, and partial failure is a successful report, not an error.
type Report struct {
	ID        string
	EventID   string // empty for directory-wide broadcasts
	Subject   string
	Total     int
	Sent      int
	Failed    int
	Outcomes  []Outcome
	CreatedAt time.Time
}

// Summary renders the human-readable result line for the response envelope.
// INVARIANT: Report fields are not mutated
func (r *Report) Summary() string {
	return fmt.Sprintf("Emails sent successfully to %d users. %d failed.", r.Sent, r.Failed)
}

// Tally recomputes the Sent/Failed/Total counters from the outcome list.
// PRE: Outcomes is populated
// POST: Total == len(Outcomes) and Sent + Failed == Total
func (r *Report) Tally() {
	r.Total = len(r.Outcomes)
	r.Sent = 0
	r.Failed = 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeSent {
			r.Sent++
		} else {
			r.Failed++
		}
	}
}
