package projections_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sangha/internal/application/projections"
	"sangha/internal/domain/account"
	"sangha/internal/domain/event"
	"sangha/internal/domain/interest"
)

// --- Mocks ---

type mockAccountStore struct {
	accounts map[string]account.Account
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return a, nil
}

func (m *mockAccountStore) List(_ context.Context) ([]account.Account, error) {
	var out []account.Account
	for _, a := range m.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAccountStore) CountByRole(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.accounts {
		counts[a.Role]++
	}
	return counts, nil
}

func (m *mockAccountStore) CountByNotificationPreference(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, a := range m.accounts {
		counts[a.NotificationPreference]++
	}
	return counts, nil
}

type mockEventStore struct {
	events map[string]event.Event
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return e, nil
}

type mockInterestStore struct {
	records []interest.Record
}

func (m *mockInterestStore) IsInterested(_ context.Context, eventID, userID string) (bool, error) {
	for _, rec := range m.records {
		if rec.EventID == eventID && rec.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockInterestStore) ListByEvent(_ context.Context, eventID string) ([]interest.Record, error) {
	var out []interest.Record
	for _, rec := range m.records {
		if rec.EventID == eventID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockInterestStore) ListByUser(_ context.Context, userID string) ([]interest.Record, error) {
	var out []interest.Record
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func fixture() (*mockAccountStore, *mockEventStore, *mockInterestStore) {
	accounts := &mockAccountStore{accounts: map[string]account.Account{
		"admin-1": {ID: "admin-1", Name: "Admin", Email: "admin@example.org",
			Role: account.RoleAdmin, NotificationPreference: account.NotifyInstant},
		"u-1": {ID: "u-1", Name: "Radha", Email: "radha@example.org", Phone: "021 555 0101",
			Role: account.RoleMember, NotificationPreference: account.NotifyInstant},
		"u-2": {ID: "u-2", Name: "Govinda", Email: "govinda@example.org",
			Role: account.RoleMember, NotificationPreference: account.NotifyWeekly},
	}}
	events := &mockEventStore{events: map[string]event.Event{
		"evt-1": {ID: "evt-1", Title: "Saturday Kirtan", Active: true},
		"evt-2": {ID: "evt-2", Title: "Janmashtami Festival", Active: false},
	}}
	interests := &mockInterestStore{records: []interest.Record{
		{ID: "i-1", EventID: "evt-1", UserID: "u-1", Status: interest.StatusInterested,
			CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "i-2", EventID: "evt-1", UserID: "u-2", Status: interest.StatusInterested,
			CreatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
		{ID: "i-3", EventID: "evt-2", UserID: "u-1", Status: interest.StatusInterested,
			CreatedAt: time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)},
	}}
	return accounts, events, interests
}

// TestGetInterestedUsers tests contact enrichment of the ledger view.
func TestGetInterestedUsers(t *testing.T) {
	accounts, events, interests := fixture()
	deps := projections.GetInterestedUsersDeps{
		InterestStore: interests, AccountStore: accounts, EventStore: events,
	}

	users, err := projections.QueryGetInterestedUsers(context.Background(), "evt-1", deps)
	if err != nil {
		t.Fatalf("QueryGetInterestedUsers failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Name != "Radha" || users[0].Email != "radha@example.org" {
		t.Errorf("users[0] = %+v", users[0])
	}
	if users[0].Phone != "021 555 0101" {
		t.Errorf("Phone = %q", users[0].Phone)
	}
	if users[0].Status != interest.StatusInterested {
		t.Errorf("Status = %q", users[0].Status)
	}
}

// TestGetInterestedUsers_EventNotFound tests the existence guard.
func TestGetInterestedUsers_EventNotFound(t *testing.T) {
	accounts, events, interests := fixture()
	deps := projections.GetInterestedUsersDeps{
		InterestStore: interests, AccountStore: accounts, EventStore: events,
	}

	_, err := projections.QueryGetInterestedUsers(context.Background(), "evt-missing", deps)
	if !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("got %v, want event ErrNotFound", err)
	}
}

// TestGetInterestedUsers_SkipsDanglingUsers verifies an unresolvable user
// shrinks the result instead of failing it.
func TestGetInterestedUsers_SkipsDanglingUsers(t *testing.T) {
	accounts, events, interests := fixture()
	delete(accounts.accounts, "u-2")
	deps := projections.GetInterestedUsersDeps{
		InterestStore: interests, AccountStore: accounts, EventStore: events,
	}

	users, err := projections.QueryGetInterestedUsers(context.Background(), "evt-1", deps)
	if err != nil {
		t.Fatalf("QueryGetInterestedUsers failed: %v", err)
	}
	if len(users) != 1 || users[0].UserID != "u-1" {
		t.Errorf("got %+v, want only u-1", users)
	}
}

// TestGetUserInterests verifies full event details attach, soft-deleted
// events included.
func TestGetUserInterests(t *testing.T) {
	_, events, interests := fixture()
	deps := projections.GetUserInterestsDeps{InterestStore: interests, EventStore: events}

	got, err := projections.QueryGetUserInterests(context.Background(), "u-1", deps)
	if err != nil {
		t.Fatalf("QueryGetUserInterests failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d interests, want 2", len(got))
	}

	titles := map[string]bool{}
	for _, ui := range got {
		titles[ui.Event.Title] = true
	}
	if !titles["Saturday Kirtan"] || !titles["Janmashtami Festival"] {
		t.Errorf("events = %v, want both including the inactive one", titles)
	}
}

// TestCheckInterest tests the membership probe.
func TestCheckInterest(t *testing.T) {
	_, _, interests := fixture()
	deps := projections.CheckInterestDeps{InterestStore: interests}
	ctx := context.Background()

	if got, _ := projections.QueryCheckInterest(ctx, "evt-1", "u-1", deps); !got {
		t.Error("QueryCheckInterest(evt-1, u-1) = false, want true")
	}
	if got, _ := projections.QueryCheckInterest(ctx, "evt-2", "u-2", deps); got {
		t.Error("QueryCheckInterest(evt-2, u-2) = true, want false")
	}
}

// TestGetUserDirectory tests the broadcast recipient shape.
func TestGetUserDirectory(t *testing.T) {
	accounts, _, _ := fixture()
	deps := projections.GetUserDirectoryDeps{AccountStore: accounts}

	entries, err := projections.QueryGetUserDirectory(context.Background(), deps)
	if err != nil {
		t.Fatalf("QueryGetUserDirectory failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" || e.Name == "" || e.Email == "" {
			t.Errorf("incomplete entry %+v", e)
		}
	}
}

// TestGetUserStats tests role and cadence aggregation.
func TestGetUserStats(t *testing.T) {
	accounts, _, _ := fixture()
	deps := projections.GetUserStatsDeps{AccountStore: accounts}

	stats, err := projections.QueryGetUserStats(context.Background(), deps)
	if err != nil {
		t.Fatalf("QueryGetUserStats failed: %v", err)
	}
	if stats.TotalUsers != 3 || stats.AdminUsers != 1 || stats.RegularUsers != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.NotificationStats[account.NotifyInstant] != 2 || stats.NotificationStats[account.NotifyWeekly] != 1 {
		t.Errorf("NotificationStats = %v", stats.NotificationStats)
	}
}
