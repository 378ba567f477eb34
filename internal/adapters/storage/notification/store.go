package notification

import (
	"context"

	domain "sangha/internal/domain/notification"
)

// Store persists dispatch reports. The log is an audit trail only — the
// dispatcher never consults it, so re-invoking a send re-sends to everyone.
type Store interface {
	Save(ctx context.Context, value domain.Report) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Report, error)
}
