package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"sangha/internal/domain/account"
)

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// ExecuteSeedAdmin ensures a bootstrap admin account exists. It is
// idempotent — if the email is already registered, the existing account is
// returned untouched (the stored password is never reset).
// PRE: Database is initialized
// POST: An admin account with the given email exists
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps RegisterDeps) (account.Account, error) {
	existing, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err == nil {
		slog.Info("auth_event", "event", "seed_admin_skipped", "email", input.Email)
		return existing, nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return account.Account{}, err
	}

	acct, err := ExecuteRegisterAdmin(ctx, RegisterInput{
		Name:     "Administrator",
		Email:    input.Email,
		Password: input.Password,
	}, deps)
	if err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "seed_admin_created", "email", input.Email)
	return acct, nil
}
