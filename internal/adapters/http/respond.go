package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sangha/internal/application/orchestrators"
	"sangha/internal/domain/account"
	"sangha/internal/domain/event"
	"sangha/internal/domain/interest"
	"sangha/internal/domain/notification"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeMessage sends the bare {message} envelope.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// internalError logs the real error and returns a generic message to the
// client. Storage and mail-provider failures never leak detail outward.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeMessage(w, http.StatusInternalServerError, "Server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// conflictErrors are rejected before any write and map to 400.
var conflictErrors = []error{
	interest.ErrAlreadyInterested,
	account.ErrSelfDemotion,
	account.ErrSelfDeletion,
	account.ErrEmailAlreadyExists,
	notification.ErrNoRecipients,
	orchestrators.ErrInvalidCredentials,
}

// notFoundErrors map to 404.
var notFoundErrors = []error{
	account.ErrNotFound,
	event.ErrNotFound,
	interest.ErrNotFound,
}

// validationErrors map to 400.
var validationErrors = []error{
	account.ErrEmptyName,
	account.ErrEmptyEmail,
	account.ErrInvalidEmail,
	account.ErrInvalidRole,
	account.ErrInvalidPreference,
	account.ErrEmptyPassword,
	account.ErrPasswordTooShort,
	event.ErrEmptyTitle,
	event.ErrEmptyDate,
	event.ErrEmptyTime,
	event.ErrEmptyLocation,
	event.ErrInvalidCategory,
	interest.ErrEmptyEventID,
	interest.ErrEmptyUserID,
	notification.ErrEmptySubject,
}

// respondError maps a domain error onto the response taxonomy: conflicts and
// validation failures are 400, missing entities 404, everything else is a
// redacted 500.
func respondError(w http.ResponseWriter, err error) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			writeMessage(w, http.StatusNotFound, err.Error())
			return
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	internalError(w, err)
}
