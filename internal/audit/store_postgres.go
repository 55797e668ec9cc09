package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists audit events in the report_audit table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO report_audit (event_type, report_id, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4)`,
		string(event.Type), event.ReportID, event.ActorID, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByReport(ctx context.Context, reportID int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_type, report_id, actor_id, occurred_at
		FROM report_audit WHERE report_id = $1 ORDER BY audit_id`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var eventType string
		if err := rows.Scan(&eventType, &e.ReportID, &e.ActorID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Type = EventType(eventType)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
