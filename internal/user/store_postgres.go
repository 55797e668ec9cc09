package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore persists accounts in the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, surname, email, phone, dob, nhs_number, user_password, gender, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
		a.Name, a.Surname, a.Email, a.Phone, a.DOB, a.NHS, a.Password, a.Gender,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) ByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, name, surname, email, phone, to_char(dob, 'YYYY-MM-DD'), nhs_number, user_password, gender, active
		FROM users
		WHERE email = $1`,
		email,
	)
	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Surname, &a.Email, &a.Phone, &a.DOB, &a.NHS, &a.Password, &a.Gender, &a.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) SetActive(ctx context.Context, email string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET active = $1 WHERE email = $2`, active, email)
	if err != nil {
		return fmt.Errorf("update user active: %w", err)
	}
	return checkAffected(res)
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, email, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET user_password = $1 WHERE email = $2`, hash, email)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
