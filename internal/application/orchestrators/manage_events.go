package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"sangha/internal/domain/event"
)

// EventStoreForAdmin defines the store interface needed by event administration.
type EventStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	Save(ctx context.Context, e event.Event) error
	SoftDelete(ctx context.Context, id string) error
}

// CreateEventInput carries the admin-supplied event fields.
type CreateEventInput struct {
	Title           string
	Description     string
	Date            time.Time
	Time            string
	Location        string
	Category        string
	Image           string
	MaxParticipants int
	CreatedBy       string // admin account ID
}

// CreateEventDeps holds dependencies for CreateEvent.
type CreateEventDeps struct {
	EventStore EventStoreForAdmin
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateEvent creates a new active event with a zero interested count.
// PRE: CreatedBy is an authenticated admin
// POST: Event is persisted and active
func ExecuteCreateEvent(ctx context.Context, input CreateEventInput, deps CreateEventDeps) (event.Event, error) {
	e := event.Event{
		ID:              deps.GenerateID(),
		Title:           input.Title,
		Description:     input.Description,
		Date:            input.Date,
		Time:            input.Time,
		Location:        input.Location,
		Category:        input.Category,
		Image:           input.Image,
		MaxParticipants: input.MaxParticipants,
		CreatedBy:       input.CreatedBy,
		Active:          true,
		CreatedAt:       deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_created", "event_id", e.ID, "category", e.Category, "created_by", e.CreatedBy)
	return e, nil
}

// UpdateEventInput carries the editable event fields.
type UpdateEventInput struct {
	EventID         string
	Title           string
	Description     string
	Date            time.Time
	Time            string
	Location        string
	Category        string
	Image           string
	MaxParticipants int
}

// UpdateEventDeps holds dependencies for UpdateEvent.
type UpdateEventDeps struct {
	EventStore EventStoreForAdmin
}

// ExecuteUpdateEvent updates an event's details. The interested aggregates
// are not editable here — only ledger transitions move them.
// PRE: EventID identifies an existing event
// POST: Event fields are persisted; invalid values rejected before any write
func ExecuteUpdateEvent(ctx context.Context, input UpdateEventInput, deps UpdateEventDeps) (event.Event, error) {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return event.Event{}, err
	}

	e.Title = input.Title
	e.Description = input.Description
	e.Date = input.Date
	e.Time = input.Time
	e.Location = input.Location
	e.Category = input.Category
	e.Image = input.Image
	e.MaxParticipants = input.MaxParticipants

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	if err := deps.EventStore.Save(ctx, e); err != nil {
		return event.Event{}, err
	}

	slog.Info("event_event", "event", "event_updated", "event_id", e.ID)
	return e, nil
}

// SoftDeleteEventDeps holds dependencies for SoftDeleteEvent.
type SoftDeleteEventDeps struct {
	EventStore EventStoreForAdmin
}

// ExecuteSoftDeleteEvent deactivates an event. Interest records referencing
// it remain valid.
// PRE: eventID identifies an existing event
// POST: Event is inactive
func ExecuteSoftDeleteEvent(ctx context.Context, eventID string, deps SoftDeleteEventDeps) error {
	if err := deps.EventStore.SoftDelete(ctx, eventID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", eventID)
	return nil
}
