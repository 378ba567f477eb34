package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"sangha/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by registration.
type AccountStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	Name                   string
	Email                  string
	Password               string
	Phone                  string
	NotificationPreference string
}

// RegisterDeps holds dependencies for registration.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRegister creates a new member account.
// PRE: input carries at least name, email, and password
// POST: Account is persisted with member role; duplicate email is rejected
// before any write
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	return register(ctx, input, deps, account.RoleMember)
}

// ExecuteRegisterAdmin creates a new account with the admin role forced.
// PRE: input carries at least name, email, and password
// POST: Account is persisted with admin role and instant notification cadence
func ExecuteRegisterAdmin(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.Account, error) {
	input.NotificationPreference = account.NotifyInstant
	return register(ctx, input, deps, account.RoleAdmin)
}

func register(ctx context.Context, input RegisterInput, deps RegisterDeps, role string) (account.Account, error) {
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return account.Account{}, account.ErrEmailAlreadyExists
	}

	pref := input.NotificationPreference
	if pref == "" {
		pref = account.NotifyInstant
	}

	acct := account.Account{
		ID:                     deps.GenerateID(),
		Name:                   input.Name,
		Email:                  input.Email,
		Phone:                  input.Phone,
		Role:                   role,
		NotificationPreference: pref,
		CreatedAt:              deps.Now(),
	}
	if err := acct.Validate(); err != nil {
		return account.Account{}, err
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return account.Account{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "account_registered", "account_id", acct.ID, "role", acct.Role)
	return acct, nil
}
