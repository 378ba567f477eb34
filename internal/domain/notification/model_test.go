package notification_test

import (
	"testing"

	"sangha/internal/domain/notification"
)

// TestReport_Tally tests counter recomputation from the outcome list.
func TestReport_Tally(t *testing.T) {
	tests := []struct {
		name       string
		outcomes   []notification.Outcome
		wantSent   int
		wantFailed int
	}{
		{
			name: "all sent",
			outcomes: []notification.Outcome{
				{RecipientEmail: "a@example.org", Status: notification.OutcomeSent},
				{RecipientEmail: "b@example.org", Status: notification.OutcomeSent},
			},
			wantSent: 2,
		},
		{
			name: "partial failure",
			outcomes: []notification.Outcome{
				{RecipientEmail: "a@example.org", Status: notification.OutcomeSent},
				{RecipientEmail: "b@example.org", Status: notification.OutcomeFailed, Reason: "mailbox full"},
				{RecipientEmail: "c@example.org", Status: notification.OutcomeSent},
			},
			wantSent:   2,
			wantFailed: 1,
		},
		{
			name: "all failed",
			outcomes: []notification.Outcome{
				{RecipientEmail: "a@example.org", Status: notification.OutcomeFailed, Reason: "timeout"},
			},
			wantFailed: 1,
		},
		{
			name: "no outcomes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := notification.Report{Outcomes: tt.outcomes}
			r.Tally()
			if r.Total != len(tt.outcomes) {
				t.Errorf("Total = %d, want %d", r.Total, len(tt.outcomes))
			}
			if r.Sent != tt.wantSent {
				t.Errorf("Sent = %d, want %d", r.Sent, tt.wantSent)
			}
			if r.Failed != tt.wantFailed {
				t.Errorf("Failed = %d, want %d", r.Failed, tt.wantFailed)
			}
			if r.Sent+r.Failed != r.Total {
				t.Errorf("Sent+Failed = %d, want Total %d", r.Sent+r.Failed, r.Total)
			}
		})
	}
}

// TestReport_Summary tests the response message line.
func TestReport_Summary(t *testing.T) {
	r := notification.Report{Sent: 5, Failed: 2}
	want := "Emails sent successfully to 5 users. 2 failed."
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
