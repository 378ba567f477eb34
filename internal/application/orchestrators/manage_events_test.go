package orchestrators_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"sangha/internal/application/orchestrators"
	"sangha/internal/domain/event"
)

// mockEventAdminStore backs the event administration tests.
type mockEventAdminStore struct {
	events map[string]event.Event
}

func newMockEventAdminStore() *mockEventAdminStore {
	return &mockEventAdminStore{events: make(map[string]event.Event)}
}

func (m *mockEventAdminStore) GetByID(_ context.Context, id string) (event.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}
	return e, nil
}

func (m *mockEventAdminStore) Save(_ context.Context, e event.Event) error {
	m.events[e.ID] = e
	return nil
}

func (m *mockEventAdminStore) SoftDelete(_ context.Context, id string) error {
	e, ok := m.events[id]
	if !ok {
		return event.ErrNotFound
	}
	e.Active = false
	m.events[id] = e
	return nil
}

func createEventInput() orchestrators.CreateEventInput {
	return orchestrators.CreateEventInput{
		Title:     "Saturday Kirtan",
		Date:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:      "18:30",
		Location:  "Main Hall",
		Category:  event.CategoryKirtan,
		CreatedBy: "admin-1",
	}
}

// TestCreateEvent tests the happy path.
func TestCreateEvent(t *testing.T) {
	store := newMockEventAdminStore()
	deps := orchestrators.CreateEventDeps{
		EventStore: store,
		GenerateID: func() string { return "evt-1" },
		Now:        func() time.Time { return time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC) },
	}

	e, err := orchestrators.ExecuteCreateEvent(context.Background(), createEventInput(), deps)
	if err != nil {
		t.Fatalf("ExecuteCreateEvent failed: %v", err)
	}
	if !e.Active {
		t.Error("new event is not active")
	}
	if e.InterestedCount != 0 {
		t.Errorf("InterestedCount = %d, want 0", e.InterestedCount)
	}
	if e.CreatedBy != "admin-1" {
		t.Errorf("CreatedBy = %q", e.CreatedBy)
	}
}

// TestCreateEvent_Validation tests rejection before any write.
func TestCreateEvent_Validation(t *testing.T) {
	store := newMockEventAdminStore()
	deps := orchestrators.CreateEventDeps{
		EventStore: store,
		GenerateID: func() string { return "evt-1" },
		Now:        time.Now,
	}

	input := createEventInput()
	input.Category = "picnic"
	_, err := orchestrators.ExecuteCreateEvent(context.Background(), input, deps)
	if !errors.Is(err, event.ErrInvalidCategory) {
		t.Fatalf("invalid category = %v, want ErrInvalidCategory", err)
	}
	if len(store.events) != 0 {
		t.Errorf("store has %d events after rejection, want 0", len(store.events))
	}
}

// TestUpdateEvent verifies edits preserve the interested aggregates.
func TestUpdateEvent(t *testing.T) {
	store := newMockEventAdminStore()
	store.events["evt-1"] = event.Event{
		ID:              "evt-1",
		Title:           "Saturday Kirtan",
		Date:            time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:            "18:30",
		Location:        "Main Hall",
		Category:        event.CategoryKirtan,
		CreatedBy:       "admin-1",
		Active:          true,
		InterestedCount: 4,
	}
	deps := orchestrators.UpdateEventDeps{EventStore: store}

	e, err := orchestrators.ExecuteUpdateEvent(context.Background(), orchestrators.UpdateEventInput{
		EventID:  "evt-1",
		Title:    "Saturday Kirtan (rescheduled)",
		Date:     time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		Time:     "19:00",
		Location: "Garden Pavilion",
		Category: event.CategoryKirtan,
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateEvent failed: %v", err)
	}
	if e.Title != "Saturday Kirtan (rescheduled)" || e.Location != "Garden Pavilion" {
		t.Errorf("got %+v", e)
	}
	if e.InterestedCount != 4 {
		t.Errorf("InterestedCount = %d, want 4 (not editable)", e.InterestedCount)
	}
	if e.CreatedBy != "admin-1" {
		t.Errorf("CreatedBy changed: %q", e.CreatedBy)
	}
}

// TestUpdateEvent_NotFound tests the missing-event error.
func TestUpdateEvent_NotFound(t *testing.T) {
	deps := orchestrators.UpdateEventDeps{EventStore: newMockEventAdminStore()}

	_, err := orchestrators.ExecuteUpdateEvent(context.Background(), orchestrators.UpdateEventInput{
		EventID:  "evt-missing",
		Title:    "Saturday Kirtan",
		Date:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Time:     "18:30",
		Location: "Main Hall",
		Category: event.CategoryKirtan,
	}, deps)
	if !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("missing event = %v, want ErrNotFound", err)
	}
}

// TestSoftDeleteEvent tests deactivation.
func TestSoftDeleteEvent(t *testing.T) {
	store := newMockEventAdminStore()
	store.events["evt-1"] = event.Event{ID: "evt-1", Active: true}
	deps := orchestrators.SoftDeleteEventDeps{EventStore: store}

	if err := orchestrators.ExecuteSoftDeleteEvent(context.Background(), "evt-1", deps); err != nil {
		t.Fatalf("ExecuteSoftDeleteEvent failed: %v", err)
	}
	if store.events["evt-1"].Active {
		t.Error("event still active after soft delete")
	}

	err := orchestrators.ExecuteSoftDeleteEvent(context.Background(), "evt-missing", deps)
	if !errors.Is(err, event.ErrNotFound) {
		t.Fatalf("missing event = %v, want ErrNotFound", err)
	}
}
