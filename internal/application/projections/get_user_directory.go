package projections

import (
	"context"
)

// DirectoryEntry is a user's name and email, the broadcast recipient shape.
type DirectoryEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetUserDirectoryDeps holds dependencies for GetUserDirectory.
type GetUserDirectoryDeps struct {
	AccountStore AccountStore
}

// QueryGetUserDirectory returns name and email for every account — the
// recipient list for the "all users" broadcast mode.
func QueryGetUserDirectory(ctx context.Context, deps GetUserDirectoryDeps) ([]DirectoryEntry, error) {
	accounts, err := deps.AccountStore.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, 0, len(accounts))
	for _, acct := range accounts {
		entries = append(entries, DirectoryEntry{ID: acct.ID, Name: acct.Name, Email: acct.Email})
	}
	return entries, nil
}

// UserStats summarizes the directory for the admin dashboard.
type UserStats struct {
	TotalUsers        int            `json:"totalUsers"`
	AdminUsers        int            `json:"adminUsers"`
	RegularUsers      int            `json:"regularUsers"`
	NotificationStats map[string]int `json:"notificationStats"`
}

// GetUserStatsDeps holds dependencies for GetUserStats.
type GetUserStatsDeps struct {
	AccountStore AccountStore
}

// QueryGetUserStats returns account totals grouped by role and by
// notification cadence preference.
func QueryGetUserStats(ctx context.Context, deps GetUserStatsDeps) (UserStats, error) {
	byRole, err := deps.AccountStore.CountByRole(ctx)
	if err != nil {
		return UserStats{}, err
	}
	byPref, err := deps.AccountStore.CountByNotificationPreference(ctx)
	if err != nil {
		return UserStats{}, err
	}

	stats := UserStats{
		AdminUsers:        byRole["admin"],
		RegularUsers:      byRole["member"],
		NotificationStats: byPref,
	}
	for _, n := range byRole {
		stats.TotalUsers += n
	}
	return stats, nil
}
