package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists reports in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed report store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const enrichedColumns = `
	r.report_id, r.report_date, u.phone, r.report_details, u.name,
	c.crime_name, c.crime_severity, v.venue_name, v.venue_lat, v.venue_long, r.resolved`

const enrichedJoins = `
	FROM reports r
	JOIN users u ON u.user_id = r.report_user
	JOIN crimes c ON c.crime_id = r.report_type
	JOIN venues v ON v.venue_id = r.report_venue`

func (s *PostgresStore) Insert(ctx context.Context, sub Submission) (int, error) {
	date, err := sub.ParsedDate()
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	var id int
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO reports (report_date, report_details, report_user, report_type, report_venue, resolved)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING report_id`,
		date, sub.Details, *sub.UserID, *sub.TypeID, *sub.VenueID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) EnrichedByID(ctx context.Context, id int) (*Enriched, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT`+enrichedColumns+enrichedJoins+` WHERE r.report_id = $1`, id)
	enriched, err := scanEnriched(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find report %d: %w", id, err)
	}
	return enriched, nil
}

func (s *PostgresStore) Unresolved(ctx context.Context) ([]Enriched, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+enrichedColumns+enrichedJoins+` WHERE r.resolved = FALSE ORDER BY r.report_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list unresolved reports: %w", err)
	}
	return collectEnriched(rows)
}

func (s *PostgresStore) Latest(ctx context.Context, limit int) ([]Enriched, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+enrichedColumns+enrichedJoins+` ORDER BY r.report_id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest reports: %w", err)
	}
	return collectEnriched(rows)
}

func (s *PostgresStore) LatestByVenue(ctx context.Context, venueID, limit int) ([]Enriched, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT`+enrichedColumns+enrichedJoins+` WHERE r.report_venue = $1 ORDER BY r.report_id DESC LIMIT $2`,
		venueID, limit)
	if err != nil {
		return nil, fmt.Errorf("list venue reports: %w", err)
	}
	return collectEnriched(rows)
}

func (s *PostgresStore) Resolve(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE reports SET resolved = TRUE WHERE report_id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolve report %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve report %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnriched(row rowScanner) (*Enriched, error) {
	var e Enriched
	var date time.Time
	err := row.Scan(&e.ID, &date, &e.Phone, &e.Details, &e.User,
		&e.Type, &e.Severity, &e.Venue, &e.Location[0], &e.Location[1], &e.Resolved)
	if err != nil {
		return nil, err
	}
	e.Date = date.Format("2006-01-02T15:04:05")
	return &e, nil
}

func collectEnriched(rows *sql.Rows) ([]Enriched, error) {
	defer rows.Close()
	var out []Enriched
	for rows.Next() {
		e, err := scanEnriched(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}
