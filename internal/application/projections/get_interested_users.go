package projections

import (
	"context"
	"log/slog"
	"time"
)

// InterestedUser is one interest record enriched with the user's contact
// fields — exactly the input the notification dispatcher consumes.
type InterestedUser struct {
	InterestID             string    `json:"interestId"`
	UserID                 string    `json:"userId"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone,omitempty"`
	NotificationPreference string    `json:"notificationPreference"`
	Status                 string    `json:"status"`
	CreatedAt              time.Time `json:"createdAt"`
}

// GetInterestedUsersDeps holds dependencies for GetInterestedUsers.
type GetInterestedUsersDeps struct {
	InterestStore InterestStore
	AccountStore  AccountStore
	EventStore    EventStore
}

// QueryGetInterestedUsers returns every interest record for an event with
// the interested user's contact fields populated.
// PRE: the event exists
// POST: One entry per ledger record; records whose user cannot be resolved
// are skipped, not errored
func QueryGetInterestedUsers(ctx context.Context, eventID string, deps GetInterestedUsersDeps) ([]InterestedUser, error) {
	if _, err := deps.EventStore.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	records, err := deps.InterestStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var users []InterestedUser
	for _, rec := range records {
		acct, err := deps.AccountStore.GetByID(ctx, rec.UserID)
		if err != nil {
			slog.Warn("interest_event", "event", "user_lookup_failed", "user_id", rec.UserID, "error", err)
			continue
		}
		users = append(users, InterestedUser{
			InterestID:             rec.ID,
			UserID:                 acct.ID,
			Name:                   acct.Name,
			Email:                  acct.Email,
			Phone:                  acct.Phone,
			NotificationPreference: acct.NotificationPreference,
			Status:                 rec.Status,
			CreatedAt:              rec.CreatedAt,
		})
	}
	return users, nil
}
