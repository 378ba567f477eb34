package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sangha/internal/application/orchestrators"
	"sangha/internal/application/projections"
	"sangha/internal/domain/notification"
)

// notificationInput is the request body for both dispatch endpoints.
type notificationInput struct {
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	CustomMessage string `json:"customMessage"`
}

// outcomeJSON is the outward shape of one per-recipient result.
type outcomeJSON struct {
	RecipientEmail string `json:"recipientEmail"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
}

func toOutcomeJSON(outcomes []notification.Outcome) []outcomeJSON {
	out := make([]outcomeJSON, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, outcomeJSON{
			RecipientEmail: o.RecipientEmail,
			Status:         o.Status,
			Reason:         o.Reason,
		})
	}
	return out
}

// reportJSON is the dispatch report envelope, matching the counts the admin
// dashboard renders.
type reportJSON struct {
	Message    string        `json:"message"`
	TotalUsers int           `json:"totalUsers"`
	Sent       int           `json:"sent"`
	Failed     int           `json:"failed"`
	Details    []outcomeJSON `json:"details"`
}

func toReportJSON(r notification.Report) reportJSON {
	return reportJSON{
		Message:    r.Summary(),
		TotalUsers: r.Total,
		Sent:       r.Sent,
		Failed:     r.Failed,
		Details:    toOutcomeJSON(r.Outcomes),
	}
}

// historyJSON is the outward shape of one logged dispatch.
type historyJSON struct {
	ID         string        `json:"id"`
	EventID    string        `json:"eventId,omitempty"`
	Subject    string        `json:"subject"`
	TotalUsers int           `json:"totalUsers"`
	Sent       int           `json:"sent"`
	Failed     int           `json:"failed"`
	Details    []outcomeJSON `json:"details"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func toHistoryJSON(reports []notification.Report) []historyJSON {
	out := make([]historyJSON, 0, len(reports))
	for _, r := range reports {
		out = append(out, historyJSON{
			ID:         r.ID,
			EventID:    r.EventID,
			Subject:    r.Subject,
			TotalUsers: r.Total,
			Sent:       r.Sent,
			Failed:     r.Failed,
			Details:    toOutcomeJSON(r.Outcomes),
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

// handleSendNotification handles POST /api/email/events/{eventId}/send-notification.
// Partial failure is a successful response: the report carries the breakdown.
func handleSendNotification(w http.ResponseWriter, r *http.Request) {
	var input notificationInput
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	report, err := orchestrators.ExecuteNotifyInterested(r.Context(), orchestrators.NotifyInput{
		EventID:       chi.URLParam(r, "eventId"),
		Subject:       input.Subject,
		Message:       input.Message,
		CustomMessage: input.CustomMessage,
	}, notifyDeps())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportJSON(report))
}

// handleSendBroadcast handles POST /api/email/send-broadcast — the
// directory-wide counterpart of the per-event dispatch.
func handleSendBroadcast(w http.ResponseWriter, r *http.Request) {
	var input notificationInput
	if err := strictDecode(r, &input); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	report, err := orchestrators.ExecuteNotifyAll(r.Context(), orchestrators.NotifyInput{
		Subject:       input.Subject,
		Message:       input.Message,
		CustomMessage: input.CustomMessage,
	}, notifyDeps())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toReportJSON(report))
}

// handleUserDirectory handles GET /api/email/users.
func handleUserDirectory(w http.ResponseWriter, r *http.Request) {
	entries, err := projections.QueryGetUserDirectory(r.Context(),
		projections.GetUserDirectoryDeps{AccountStore: stores.AccountStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleNotificationHistory handles GET /api/email/events/{eventId}/notifications.
func handleNotificationHistory(w http.ResponseWriter, r *http.Request) {
	reports, err := stores.NotificationStore.ListByEvent(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHistoryJSON(reports))
}

func notifyDeps() orchestrators.NotifyDeps {
	return orchestrators.NotifyDeps{
		EventStore:   stores.EventStore,
		AccountStore: stores.AccountStore,
		LogStore:     stores.NotificationStore,
		Sender:       emailSender,
		GenerateID:   generateID,
		Now:          timeNow,
		FromAddress:  emailFromAddress,
		ReplyTo:      emailReplyTo,
		SendTimeout:  sendTimeout,
	}
}
