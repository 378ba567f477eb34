package orchestrators

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	emailAdapter "sangha/internal/adapters/email"
	"sangha/internal/domain/account"
	"sangha/internal/domain/event"
	"sangha/internal/domain/notification"
)

// EventStoreForNotify defines the event reads needed by the dispatcher.
type EventStoreForNotify interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	ListInterestedUserIDs(ctx context.Context, eventID string) ([]string, error)
}

// AccountStoreForNotify defines the directory reads needed by the dispatcher.
type AccountStoreForNotify interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	List(ctx context.Context) ([]account.Account, error)
}

// NotificationLogStore records dispatch reports for the admin audit trail.
type NotificationLogStore interface {
	Save(ctx context.Context, r notification.Report) error
}

// NotifyInput carries the admin-supplied message for a dispatch.
type NotifyInput struct {
	EventID       string
	Subject       string
	Message       string // optional free-text body
	CustomMessage string // optional organizer note, markdown
}

// NotifyDeps holds dependencies for the notification dispatchers.
type NotifyDeps struct {
	EventStore   EventStoreForNotify
	AccountStore AccountStoreForNotify
	LogStore     NotificationLogStore
	Sender       emailAdapter.Sender
	GenerateID   func() string
	Now          func() time.Time
	FromAddress  string
	ReplyTo      string
	SendTimeout  time.Duration // per-recipient bound; a timeout counts as a failed outcome
}

// recipient is one resolved destination for a dispatch.
type recipient struct {
	Name  string
	Email string
}

// ExecuteNotifyInterested sends one email to every user interested in an
// event. Sends are issued concurrently and independently: one recipient's
// failure never aborts or blocks another's, and the operation completes with
// a full per-recipient report rather than erroring on partial failure.
// PRE: the caller is an authenticated admin
// POST: Every recipient resolves to exactly one outcome; report counters
// satisfy Sent + Failed == Total. Nothing is retried automatically.
func ExecuteNotifyInterested(ctx context.Context, input NotifyInput, deps NotifyDeps) (notification.Report, error) {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return notification.Report{}, err
	}

	userIDs, err := deps.EventStore.ListInterestedUserIDs(ctx, input.EventID)
	if err != nil {
		return notification.Report{}, err
	}

	var recipients []recipient
	for _, id := range userIDs {
		acct, err := deps.AccountStore.GetByID(ctx, id)
		if err != nil {
			slog.Warn("notification_event", "event", "recipient_lookup_failed", "user_id", id, "error", err)
			continue
		}
		recipients = append(recipients, recipient{Name: acct.Name, Email: acct.Email})
	}
	if len(recipients) == 0 {
		return notification.Report{}, notification.ErrNoRecipients
	}

	subject := input.Subject
	if subject == "" {
		subject = "Update: " + e.Title
	}

	html, err := renderNotificationHTML(subject, &e, input.CustomMessage, input.Message)
	if err != nil {
		return notification.Report{}, err
	}

	report := dispatch(ctx, deps, recipients, subject, html)
	report.EventID = input.EventID

	if err := deps.LogStore.Save(ctx, report); err != nil {
		// The dispatch already happened; a log failure must not turn a
		// completed send into a caller-visible error.
		slog.Error("notification_event", "event", "log_save_failed", "error", err)
	}

	slog.Info("notification_event", "event", "dispatch_complete",
		"event_id", input.EventID, "total", report.Total, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

// ExecuteNotifyAll sends one email to every account in the directory — the
// broadcast counterpart of ExecuteNotifyInterested, with the same dispatch
// policy and report shape.
// PRE: the caller is an authenticated admin; Subject is non-empty
// POST: Same guarantees as ExecuteNotifyInterested
func ExecuteNotifyAll(ctx context.Context, input NotifyInput, deps NotifyDeps) (notification.Report, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return notification.Report{}, notification.ErrEmptySubject
	}

	accounts, err := deps.AccountStore.List(ctx)
	if err != nil {
		return notification.Report{}, err
	}
	var recipients []recipient
	for _, acct := range accounts {
		recipients = append(recipients, recipient{Name: acct.Name, Email: acct.Email})
	}
	if len(recipients) == 0 {
		return notification.Report{}, notification.ErrNoRecipients
	}

	html, err := renderNotificationHTML(input.Subject, nil, input.CustomMessage, input.Message)
	if err != nil {
		return notification.Report{}, err
	}

	report := dispatch(ctx, deps, recipients, input.Subject, html)

	if err := deps.LogStore.Save(ctx, report); err != nil {
		slog.Error("notification_event", "event", "log_save_failed", "error", err)
	}

	slog.Info("notification_event", "event", "broadcast_complete",
		"total", report.Total, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

// dispatch fans out one send per recipient and joins all outcomes. There is
// no fail-fast path: the WaitGroup join completes only when every attempt has
// resolved, success or failure.
func dispatch(ctx context.Context, deps NotifyDeps, recipients []recipient, subject, html string) notification.Report {
	timeout := deps.SendTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	outcomes := make([]notification.Outcome, len(recipients))
	var wg sync.WaitGroup
	for i, rcpt := range recipients {
		wg.Add(1)
		go func(i int, rcpt recipient) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			_, err := deps.Sender.Send(sendCtx, emailAdapter.SendRequest{
				To:      rcpt.Email,
				From:    deps.FromAddress,
				Subject: subject,
				HTML:    html,
				ReplyTo: deps.ReplyTo,
			})
			if err != nil {
				outcomes[i] = notification.Outcome{
					RecipientEmail: rcpt.Email,
					Status:         notification.OutcomeFailed,
					Reason:         err.Error(),
				}
				return
			}
			outcomes[i] = notification.Outcome{
				RecipientEmail: rcpt.Email,
				Status:         notification.OutcomeSent,
			}
		}(i, rcpt)
	}
	wg.Wait()

	report := notification.Report{
		ID:        deps.GenerateID(),
		Subject:   subject,
		Outcomes:  outcomes,
		CreatedAt: deps.Now(),
	}
	report.Tally()
	return report
}

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var notificationTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #f8f9fa; padding: 20px; text-align: center; border-radius: 8px; }
      .event-details { background: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 8px; margin: 20px 0; }
      .custom-message { background: #e7f3ff; padding: 15px; border-radius: 5px; margin: 15px 0; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Sangha Events</h1>
        <h2>{{.Subject}}</h2>
      </div>
{{if .HasEvent}}
      <div class="event-details">
        <h3>Event Details:</h3>
        <p><strong>Event:</strong> {{.EventTitle}}</p>
        <p><strong>Date:</strong> {{.EventDate}}</p>
        <p><strong>Time:</strong> {{.EventTime}}</p>
        <p><strong>Location:</strong> {{.EventLocation}}</p>
      </div>
{{end}}
{{if .CustomMessage}}
      <div class="custom-message">
        <h4>Message from Event Organizer:</h4>
        {{.CustomMessage}}
      </div>
{{end}}
{{if .Message}}
      <p>{{.Message}}</p>
{{end}}
      <div class="footer">
        <p>Thank you for your interest in our events.</p>
      </div>
    </div>
  </body>
</html>
`))

// renderNotificationHTML merges the fixed template with the event details,
// the optional organizer note (markdown), and the optional free-text body.
// A nil event renders the broadcast variant without the details block.
func renderNotificationHTML(subject string, e *event.Event, customMessage, message string) (string, error) {
	data := struct {
		Subject       string
		HasEvent      bool
		EventTitle    string
		EventDate     string
		EventTime     string
		EventLocation string
		CustomMessage template.HTML
		Message       string
	}{
		Subject: subject,
		Message: message,
	}

	if e != nil {
		data.HasEvent = true
		data.EventTitle = e.Title
		data.EventDate = e.LongDate()
		data.EventTime = e.Time
		data.EventLocation = e.Location
	}

	if strings.TrimSpace(customMessage) != "" {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(customMessage), &buf); err != nil {
			return "", err
		}
		data.CustomMessage = template.HTML(buf.String())
	}

	var out bytes.Buffer
	if err := notificationTmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
