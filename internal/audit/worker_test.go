package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWorkerPersistsEmittedEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()
	pub := NewPublisher(8, logger)
	worker := NewWorker(store, pub.Inbox(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	pub.Emit(ctx, Event{Type: EventReportCreated, ReportID: 1, ActorID: 7})
	pub.Emit(ctx, Event{Type: EventReportResolved, ReportID: 1, ActorID: 4410})

	require.Eventually(t, func() bool {
		events, err := store.ListByReport(ctx, 1)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	events, err := store.ListByReport(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, EventReportCreated, events[0].Type)
	require.False(t, events[0].OccurredAt.IsZero())

	cancel()
	<-done
}

func TestEmitDropsWhenInboxFull(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pub := NewPublisher(1, logger)

	ctx := context.Background()
	pub.Emit(ctx, Event{Type: EventReportCreated, ReportID: 1})
	// No worker draining: the second emit must not block.
	pub.Emit(ctx, Event{Type: EventReportCreated, ReportID: 2})

	require.Len(t, pub.inbox, 1)
}
