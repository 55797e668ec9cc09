package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so startup can run them unconditionally.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       SERIAL PRIMARY KEY,
		name          VARCHAR(50) NOT NULL,
		surname       VARCHAR(50) NOT NULL,
		email         VARCHAR(512) NOT NULL UNIQUE,
		phone         VARCHAR(30) NOT NULL,
		dob           DATE NOT NULL,
		nhs_number    VARCHAR(512) NOT NULL UNIQUE,
		user_password VARCHAR(512) NOT NULL,
		gender        VARCHAR(50) NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS police (
		police_id       SERIAL PRIMARY KEY,
		badge           INTEGER NOT NULL UNIQUE,
		police_password VARCHAR(512) NOT NULL,
		police_active   BOOLEAN NOT NULL DEFAULT TRUE,
		police_admin    BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS venues (
		venue_id     SERIAL PRIMARY KEY,
		venue_name   VARCHAR(100) NOT NULL UNIQUE,
		venue_lat    DOUBLE PRECISION NOT NULL,
		venue_long   DOUBLE PRECISION NOT NULL,
		venue_city   VARCHAR(100) NOT NULL,
		venue_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS crimes (
		crime_id          SERIAL PRIMARY KEY,
		crime_name        VARCHAR(100) NOT NULL UNIQUE,
		crime_description VARCHAR(1000) NOT NULL,
		crime_severity    INTEGER NOT NULL,
		crime_active      BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		report_id      SERIAL PRIMARY KEY,
		report_date    TIMESTAMP NOT NULL,
		report_details VARCHAR(1000) NOT NULL,
		report_user    INTEGER NOT NULL REFERENCES users (user_id),
		report_type    INTEGER NOT NULL REFERENCES crimes (crime_id),
		report_venue   INTEGER NOT NULL REFERENCES venues (venue_id),
		resolved       BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS report_audit (
		audit_id   SERIAL PRIMARY KEY,
		event_type VARCHAR(50) NOT NULL,
		report_id  INTEGER NOT NULL,
		actor_id   INTEGER NOT NULL,
		occurred_at TIMESTAMP NOT NULL
	)`,
}
