package orchestrators

import (
	"context"
	"log/slog"

	"sangha/internal/domain/account"
)

// AccountStoreForProfile defines the store interface needed by profile updates.
type AccountStoreForProfile interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// UpdateProfileInput carries the self-editable profile fields.
type UpdateProfileInput struct {
	AccountID              string
	Name                   string
	Phone                  string
	NotificationPreference string
}

// UpdateProfileDeps holds dependencies for UpdateProfile.
type UpdateProfileDeps struct {
	AccountStore AccountStoreForProfile
}

// ExecuteUpdateProfile updates a user's own name, phone, and cadence preference.
// Role and email are not self-editable.
// PRE: AccountID identifies an existing account
// POST: Profile fields are persisted; invalid values are rejected before any write
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps UpdateProfileDeps) (account.Account, error) {
	acct, err := deps.AccountStore.GetByID(ctx, input.AccountID)
	if err != nil {
		return account.Account{}, err
	}

	acct.Name = input.Name
	acct.Phone = input.Phone
	if input.NotificationPreference != "" {
		acct.NotificationPreference = input.NotificationPreference
	}

	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "profile_updated", "account_id", acct.ID)
	return acct, nil
}
