package audit

import (
	"context"
	"time"
)

// EventType names a report lifecycle event.
type EventType string

const (
	EventReportCreated  EventType = "report.created"
	EventReportResolved EventType = "report.resolved"
)

// Event is one append-only audit record.
type Event struct {
	Type       EventType
	ReportID   int
	ActorID    int
	OccurredAt time.Time
}

// Store persists audit events. Append-only; sinks can be swapped in tests.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByReport(ctx context.Context, reportID int) ([]Event, error)
}
