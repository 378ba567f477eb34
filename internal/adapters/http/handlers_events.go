package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sangha/internal/adapters/http/middleware"
	"sangha/internal/application/orchestrators"
	domainEvent "sangha/internal/domain/event"
)

// eventDateFormat is the wire format for event dates.
const eventDateFormat = "2006-01-02"

// eventJSON is the outward shape of an event. InterestedUserIDs is resolved
// from the ledger and attached on single-event reads.
type eventJSON struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Location          string    `json:"location"`
	Category          string    `json:"category"`
	Image             string    `json:"image,omitempty"`
	MaxParticipants   int       `json:"maxParticipants,omitempty"`
	CreatedBy         string    `json:"createdBy"`
	IsActive          bool      `json:"isActive"`
	InterestedCount   int       `json:"interestedCount"`
	InterestedUserIDs []string  `json:"interestedUserIds,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

func toEventJSON(e domainEvent.Event) eventJSON {
	return eventJSON{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            e.Date.Format(eventDateFormat),
		Time:            e.Time,
		Location:        e.Location,
		Category:        e.Category,
		Image:           e.Image,
		MaxParticipants: e.MaxParticipants,
		CreatedBy:       e.CreatedBy,
		IsActive:        e.Active,
		InterestedCount: e.InterestedCount,
		CreatedAt:       e.CreatedAt,
	}
}

// eventInput is the request body for create and update.
type eventInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Image           string `json:"image"`
	MaxParticipants int    `json:"maxParticipants"`
}

func (in eventInput) parseDate(w http.ResponseWriter) (time.Time, bool) {
	if in.Date == "" {
		writeMessage(w, http.StatusBadRequest, domainEvent.ErrEmptyDate.Error())
		return time.Time{}, false
	}
	date, err := time.Parse(eventDateFormat, in.Date)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}

// handleListEvents handles GET /api/events.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := stores.EventStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventJSONList(events))
}

// handleListEventsByCategory handles GET /api/events/category/{category}.
func handleListEventsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !domainEvent.IsValidCategory(category) {
		writeMessage(w, http.StatusBadRequest, domainEvent.ErrInvalidCategory.Error())
		return
	}
	events, err := stores.EventStore.ListByCategory(r.Context(), category)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventJSONList(events))
}

// handleGetEvent handles GET /api/events/{id}.
func handleGetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := stores.EventStore.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	out := toEventJSON(e)
	if ids, err := stores.EventStore.ListInterestedUserIDs(r.Context(), e.ID); err == nil {
		out.InterestedUserIDs = ids
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCreateEvent handles POST /api/events.
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	var input eventInput
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	date, ok := input.parseDate(w)
	if !ok {
		return
	}

	e, err := orchestrators.ExecuteCreateEvent(r.Context(), orchestrators.CreateEventInput{
		Title:           input.Title,
		Description:     input.Description,
		Date:            date,
		Time:            input.Time,
		Location:        input.Location,
		Category:        input.Category,
		Image:           input.Image,
		MaxParticipants: input.MaxParticipants,
		CreatedBy:       identity.AccountID,
	}, orchestrators.CreateEventDeps{
		EventStore: stores.EventStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Event created successfully",
		"event":   toEventJSON(e),
	})
}

// handleUpdateEvent handles PUT /api/events/{id}.
func handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var input eventInput
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	date, ok := input.parseDate(w)
	if !ok {
		return
	}

	e, err := orchestrators.ExecuteUpdateEvent(r.Context(), orchestrators.UpdateEventInput{
		EventID:         chi.URLParam(r, "id"),
		Title:           input.Title,
		Description:     input.Description,
		Date:            date,
		Time:            input.Time,
		Location:        input.Location,
		Category:        input.Category,
		Image:           input.Image,
		MaxParticipants: input.MaxParticipants,
	}, orchestrators.UpdateEventDeps{EventStore: stores.EventStore})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Event updated successfully",
		"event":   toEventJSON(e),
	})
}

// handleDeleteEvent handles DELETE /api/events/{id} (soft delete).
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteSoftDeleteEvent(r.Context(), chi.URLParam(r, "id"),
		orchestrators.SoftDeleteEventDeps{EventStore: stores.EventStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Event deleted successfully")
}

func toEventJSONList(events []domainEvent.Event) []eventJSON {
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, toEventJSON(e))
	}
	return out
}
