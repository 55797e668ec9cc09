package police

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists officers in the police table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, o Officer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO police (badge, police_password, police_active, police_admin)
		VALUES ($1, $2, $3, $4)`,
		o.Badge, o.Password, o.Active, o.Admin,
	)
	if err != nil {
		return fmt.Errorf("insert police: %w", err)
	}
	return nil
}

func (s *PostgresStore) ByBadge(ctx context.Context, badge int) (*Officer, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT police_id, badge, police_password, police_active, police_admin
		FROM police
		WHERE badge = $1`,
		badge,
	)
	var o Officer
	err := row.Scan(&o.ID, &o.Badge, &o.Password, &o.Active, &o.Admin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select police: %w", err)
	}
	return &o, nil
}

func (s *PostgresStore) SetActive(ctx context.Context, badge int, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE police SET police_active = $1 WHERE badge = $2`, active, badge)
	if err != nil {
		return fmt.Errorf("update police active: %w", err)
	}
	return s.checkAffected(res)
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, badge int, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE police SET police_password = $1 WHERE badge = $2`, hash, badge)
	if err != nil {
		return fmt.Errorf("update police password: %w", err)
	}
	return s.checkAffected(res)
}

func (s *PostgresStore) List(ctx context.Context) ([]Officer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT police_id, badge, police_active, police_admin
		FROM police
		ORDER BY badge`)
	if err != nil {
		return nil, fmt.Errorf("select police list: %w", err)
	}
	defer rows.Close()

	var officers []Officer
	for rows.Next() {
		var o Officer
		if err := rows.Scan(&o.ID, &o.Badge, &o.Active, &o.Admin); err != nil {
			return nil, fmt.Errorf("scan police: %w", err)
		}
		officers = append(officers, o)
	}
	return officers, rows.Err()
}

func (s *PostgresStore) checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
