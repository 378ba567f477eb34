package orchestrators

import (
	"context"
	"log/slog"

	"sangha/internal/domain/account"
	"sangha/internal/domain/interest"
)

// AccountStoreForAdmin defines the store interface needed by user administration.
type AccountStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Delete(ctx context.Context, id string) error
}

// InterestStoreForAdmin is the slice of the ledger used when deleting a user.
type InterestStoreForAdmin interface {
	ListByUser(ctx context.Context, userID string) ([]interest.Record, error)
	Remove(ctx context.Context, eventID, userID string) error
}

// UpdateRoleInput carries input for a role change.
type UpdateRoleInput struct {
	ActorID  string // the admin performing the change
	TargetID string
	Role     string
}

// UpdateRoleDeps holds dependencies for UpdateRole.
type UpdateRoleDeps struct {
	AccountStore AccountStoreForAdmin
}

// ExecuteUpdateRole changes a user's role.
// PRE: ActorID is an authenticated admin
// POST: Role is persisted. An admin demoting their own account is rejected
// before any write — that rule protects who may operate the dispatcher.
func ExecuteUpdateRole(ctx context.Context, input UpdateRoleInput, deps UpdateRoleDeps) (account.Account, error) {
	if !account.IsValidRole(input.Role) {
		return account.Account{}, account.ErrInvalidRole
	}
	if input.TargetID == input.ActorID && input.Role != account.RoleAdmin {
		return account.Account{}, account.ErrSelfDemotion
	}

	acct, err := deps.AccountStore.GetByID(ctx, input.TargetID)
	if err != nil {
		return account.Account{}, err
	}

	acct.Role = input.Role
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return account.Account{}, err
	}

	slog.Info("auth_event", "event", "role_updated", "account_id", acct.ID, "role", acct.Role, "actor_id", input.ActorID)
	return acct, nil
}

// DeleteUserInput carries input for a user deletion.
type DeleteUserInput struct {
	ActorID  string
	TargetID string
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	AccountStore  AccountStoreForAdmin
	InterestStore InterestStoreForAdmin
}

// ExecuteDeleteUser hard-deletes a user account. The user's interest records
// are removed through the ledger first, so every event's counter stays equal
// to its ledger cardinality.
// PRE: ActorID is an authenticated admin
// POST: Account and its interest records are gone. Self-deletion is rejected
// before any write.
func ExecuteDeleteUser(ctx context.Context, input DeleteUserInput, deps DeleteUserDeps) error {
	if input.TargetID == input.ActorID {
		return account.ErrSelfDeletion
	}

	if _, err := deps.AccountStore.GetByID(ctx, input.TargetID); err != nil {
		return err
	}

	records, err := deps.InterestStore.ListByUser(ctx, input.TargetID)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := deps.InterestStore.Remove(ctx, rec.EventID, rec.UserID); err != nil {
			return err
		}
	}

	if err := deps.AccountStore.Delete(ctx, input.TargetID); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "user_deleted", "account_id", input.TargetID, "actor_id", input.ActorID, "interests_removed", len(records))
	return nil
}
