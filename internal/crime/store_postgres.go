package crime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists crime types in the crimes table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const crimeColumns = `crime_id, crime_name, crime_description, crime_severity, crime_active`

func (s *PostgresStore) Add(ctx context.Context, c Crime) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crimes (crime_name, crime_description, crime_severity, crime_active)
		VALUES ($1, $2, $3, TRUE)`,
		c.Name, c.Description, *c.Severity,
	)
	if err != nil {
		return fmt.Errorf("insert crime: %w", err)
	}
	return nil
}

func (s *PostgresStore) ByID(ctx context.Context, id int) (*Crime, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+crimeColumns+` FROM crimes WHERE crime_id = $1`, id)
	c, err := scanCrime(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select crime: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Active(ctx context.Context) ([]Crime, error) {
	return s.list(ctx, `SELECT `+crimeColumns+` FROM crimes WHERE crime_active ORDER BY crime_name`)
}

func (s *PostgresStore) All(ctx context.Context) ([]Crime, error) {
	return s.list(ctx, `SELECT `+crimeColumns+` FROM crimes ORDER BY crime_name`)
}

func (s *PostgresStore) SetActive(ctx context.Context, id int, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE crimes SET crime_active = $1 WHERE crime_id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("update crime active: %w", err)
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

func (s *PostgresStore) list(ctx context.Context, query string) ([]Crime, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select crimes: %w", err)
	}
	defer rows.Close()

	var crimes []Crime
	for rows.Next() {
		c, err := scanCrime(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crime: %w", err)
		}
		crimes = append(crimes, *c)
	}
	return crimes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCrime(row rowScanner) (*Crime, error) {
	var c Crime
	var severity int
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &severity, &c.Active); err != nil {
		return nil, err
	}
	c.Severity = &severity
	return &c, nil
}
