package live

import (
	"context"
	"log/slog"
	"time"

	"safesound/internal/audit"
	"safesound/internal/platform/metrics"
	"safesound/internal/platform/web"
	"safesound/internal/report"
)

// Engine runs the receive-validate-persist-fan-out loop for live connections.
// One Run call per connection, each on its own goroutine; the registry is the
// only state they share.
type Engine struct {
	registry *Registry
	store    report.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
}

// NewEngine wires the engine's collaborators. audit may be nil.
func NewEngine(registry *Registry, store report.Store, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher) *Engine {
	return &Engine{
		registry: registry,
		store:    store,
		logger:   logger,
		metrics:  m,
		audit:    auditPub,
	}
}

// Registry exposes the connection registry, mainly for handlers and tests.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Run drives a connection from OPEN to CLOSED. It registers the connection,
// processes submissions strictly in receipt order, and guarantees exactly one
// unregistration on every exit path: peer close, transport fault, or context
// cancellation.
func (e *Engine) Run(ctx context.Context, conn *Conn) {
	e.registry.Register(conn)
	if e.metrics != nil {
		e.metrics.ConnectionOpened(string(conn.role))
	}
	e.logger.InfoContext(ctx, "live connection opened", "conn_id", conn.id, "role", conn.role)

	// Receive has no context plumbing on the underlying transport; closing
	// the peer is what unblocks it when the request context ends.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.peer.Close()
		case <-watchDone:
		}
	}()

	defer func() {
		close(watchDone)
		e.registry.Unregister(conn)
		conn.peer.Close()
		if e.metrics != nil {
			e.metrics.ConnectionClosed(string(conn.role))
		}
		e.logger.InfoContext(ctx, "live connection closed", "conn_id", conn.id, "role", conn.role)
	}()

	for {
		sub, err := conn.peer.Receive()
		if err != nil {
			// Peer-initiated close, transport fault and protocol violation
			// all end the session the same way.
			e.logger.DebugContext(ctx, "live receive ended", "conn_id", conn.id, "error", err)
			return
		}
		e.process(ctx, conn, sub)
	}
}

// process handles a single submission: validate, persist, enrich, fan out.
// Failures are contained here; the connection stays open regardless.
func (e *Engine) process(ctx context.Context, conn *Conn, sub report.Submission) {
	var enriched *report.Enriched
	created := false

	if sub.Valid() {
		id, err := e.store.Insert(ctx, sub)
		if err != nil {
			e.logger.WarnContext(ctx, "report insert failed", "conn_id", conn.id, "error", err)
		} else {
			created = true
			conn.bindUser(*sub.UserID)
			if e.metrics != nil {
				e.metrics.ReportsCreated.Inc()
			}
			if e.audit != nil {
				e.audit.Emit(ctx, audit.Event{
					Type:       audit.EventReportCreated,
					ReportID:   id,
					ActorID:    *sub.UserID,
					OccurredAt: time.Now(),
				})
			}
			enriched, err = e.store.EnrichedByID(ctx, id)
			if err != nil {
				// The report exists but cannot be joined (e.g. a referenced
				// row vanished mid-flight). The submitter still gets a
				// success; the police push is skipped.
				enriched = nil
				if e.metrics != nil {
					e.metrics.EnrichmentMisses.Inc()
				}
				e.logger.WarnContext(ctx, "report enrichment failed", "report_id", id, "error", err)
			}
		}
	}
	if !created && e.metrics != nil {
		e.metrics.ReportsRejected.Inc()
	}

	submitterID := 0
	if sub.UserID != nil {
		submitterID = *sub.UserID
	}
	e.fanOut(ctx, conn, created, submitterID, enriched)
}

// fanOut delivers the outcome and, on success, the enriched report over a
// snapshot of the registry. Each delivery is attempted independently.
func (e *Engine) fanOut(ctx context.Context, origin *Conn, created bool, submitterID int, enriched *report.Enriched) {
	outcome := web.Envelope{Success: created, Message: report.MsgReportMade}
	if !created {
		outcome.Message = report.MsgUnableToReport
	}

	e.registry.ForEach(func(c *Conn) {
		// The submitting connection always hears its outcome; other
		// connections only when bound to the same user. Unbound connections
		// never receive replies meant for someone else.
		if c == origin || (submitterID != 0 && c.UserID() == submitterID) {
			e.deliver(ctx, c, outcome)
		}
		if c.role == RolePolice && enriched != nil {
			e.deliver(ctx, c, web.Envelope{Success: true, Message: report.MsgNewReport, Generic: enriched})
		}
	})
}

func (e *Engine) deliver(ctx context.Context, c *Conn, env web.Envelope) {
	if err := c.send(env); err != nil {
		if e.metrics != nil {
			e.metrics.BroadcastFailures.Inc()
		}
		e.logger.WarnContext(ctx, "live delivery failed", "conn_id", c.id, "error", err)
	}
}
