package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists venues in the venues table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const venueColumns = `venue_id, venue_name, venue_lat, venue_long, venue_city, venue_active`

func (s *PostgresStore) Add(ctx context.Context, v Venue) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO venues (venue_name, venue_lat, venue_long, venue_city, venue_active)
		VALUES ($1, $2, $3, $4, TRUE)`,
		v.Name, *v.Lat, *v.Long, v.City,
	)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

func (s *PostgresStore) ByID(ctx context.Context, id int) (*Venue, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE venue_id = $1`, id)
	v, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) Active(ctx context.Context) ([]Venue, error) {
	return s.list(ctx, `SELECT `+venueColumns+` FROM venues WHERE venue_active ORDER BY venue_city`)
}

func (s *PostgresStore) All(ctx context.Context) ([]Venue, error) {
	return s.list(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY venue_city`)
}

func (s *PostgresStore) SearchName(ctx context.Context, name string, activeOnly bool) ([]Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE venue_name ILIKE '%' || $1 || '%'`
	if activeOnly {
		query += ` AND venue_active`
	}
	return s.list(ctx, query+` ORDER BY venue_city`, name)
}

func (s *PostgresStore) SearchCity(ctx context.Context, city string, activeOnly bool) ([]Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE venue_city ILIKE '%' || $1 || '%'`
	if activeOnly {
		query += ` AND venue_active`
	}
	return s.list(ctx, query+` ORDER BY venue_city`, city)
}

func (s *PostgresStore) SetActive(ctx context.Context, id int, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE venues SET venue_active = $1 WHERE venue_id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update venue active: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AverageSeverity(ctx context.Context, venueID int) (*Severity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT AVG(c.crime_severity)
		FROM reports r
		JOIN crimes c ON c.crime_id = r.report_type
		WHERE r.report_venue = $1
		GROUP BY r.report_venue`,
		venueID,
	)
	var sev Severity
	err := row.Scan(&sev.Average)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue severity: %w", err)
	}
	return &sev, nil
}

func (s *PostgresStore) AverageSeverities(ctx context.Context) (map[int]Severity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.report_venue, AVG(c.crime_severity)
		FROM reports r
		JOIN crimes c ON c.crime_id = r.report_type
		JOIN venues v ON v.venue_id = r.report_venue
		WHERE v.venue_active
		GROUP BY r.report_venue`)
	if err != nil {
		return nil, fmt.Errorf("select venue severities: %w", err)
	}
	defer rows.Close()

	severities := make(map[int]Severity)
	for rows.Next() {
		var id int
		var sev Severity
		if err := rows.Scan(&id, &sev.Average); err != nil {
			return nil, fmt.Errorf("scan venue severity: %w", err)
		}
		severities[id] = sev
	}
	return severities, rows.Err()
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]Venue, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*Venue, error) {
	var v Venue
	var lat, long float64
	if err := row.Scan(&v.ID, &v.Name, &lat, &long, &v.City, &v.Active); err != nil {
		return nil, err
	}
	v.Lat, v.Long = &lat, &long
	return &v, nil
}
