package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sangha/internal/adapters/http/middleware"
	"sangha/internal/application/orchestrators"
	"sangha/internal/application/projections"
)

// handleMarkInterested handles POST /api/event-interests/{eventId}/interested.
func handleMarkInterested(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	result, err := orchestrators.ExecuteMarkInterest(r.Context(), orchestrators.MarkInterestInput{
		EventID: chi.URLParam(r, "eventId"),
		UserID:  identity.AccountID,
	}, orchestrators.MarkInterestDeps{
		InterestStore: stores.InterestStore,
		AccountStore:  stores.AccountStore,
		EventStore:    stores.EventStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Marked as interested",
		"eventInterest": map[string]any{
			"id":        result.Record.ID,
			"status":    result.Record.Status,
			"createdAt": result.Record.CreatedAt,
			"user":      result.User,
			"event":     result.Event,
		},
	})
}

// handleRemoveInterest handles DELETE /api/event-interests/{eventId}/interested.
func handleRemoveInterest(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	err := orchestrators.ExecuteRemoveInterest(r.Context(), orchestrators.RemoveInterestInput{
		EventID: chi.URLParam(r, "eventId"),
		UserID:  identity.AccountID,
	}, orchestrators.RemoveInterestDeps{InterestStore: stores.InterestStore})
	if err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Interest removed")
}

// handleCheckInterest handles GET /api/event-interests/{eventId}/check-interest.
func handleCheckInterest(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	interested, err := projections.QueryCheckInterest(r.Context(),
		chi.URLParam(r, "eventId"), identity.AccountID,
		projections.CheckInterestDeps{InterestStore: stores.InterestStore})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isInterested": interested})
}

// handleUserInterestedEvents handles GET /api/event-interests/user/interested.
func handleUserInterestedEvents(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentityFromContext(r.Context())

	interests, err := projections.QueryGetUserInterests(r.Context(), identity.AccountID,
		projections.GetUserInterestsDeps{
			InterestStore: stores.InterestStore,
			EventStore:    stores.EventStore,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(interests))
	for _, ui := range interests {
		out = append(out, map[string]any{
			"id":        ui.InterestID,
			"status":    ui.Status,
			"createdAt": ui.CreatedAt,
			"event":     toEventJSON(ui.Event),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleInterestedUsers handles GET /api/event-interests/{eventId}/interested-users.
func handleInterestedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := projections.QueryGetInterestedUsers(r.Context(), chi.URLParam(r, "eventId"),
		projections.GetInterestedUsersDeps{
			InterestStore: stores.InterestStore,
			AccountStore:  stores.AccountStore,
			EventStore:    stores.EventStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	if users == nil {
		users = []projections.InterestedUser{}
	}
	writeJSON(w, http.StatusOK, users)
}
