//go:build integration

package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"safesound/internal/report"
	"safesound/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *report.PostgresStore
	ctx      context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = report.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(s.ctx, "reports", "users", "crimes", "venues")
	s.Require().NoError(err)

	_, err = s.postgres.DB.ExecContext(s.ctx, `
		INSERT INTO users (name, surname, email, phone, dob, nhs_number, user_password, gender, active)
		VALUES ('Jane', 'Doe', 'jane@example.com', '07700900000', '1990-05-01', 'NHS123', 'x', 'female', TRUE)`)
	s.Require().NoError(err)
	_, err = s.postgres.DB.ExecContext(s.ctx, `
		INSERT INTO crimes (crime_name, crime_description, crime_severity, crime_active)
		VALUES ('Assault', 'Physical attack', 8, TRUE)`)
	s.Require().NoError(err)
	_, err = s.postgres.DB.ExecContext(s.ctx, `
		INSERT INTO venues (venue_name, venue_lat, venue_long, venue_city, venue_active)
		VALUES ('The Crown', 51.5, -0.12, 'London', TRUE)`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) submission() report.Submission {
	one := 1
	return report.Submission{
		Date:    "2024-01-01T10:00:00",
		Details: "fight",
		UserID:  &one,
		TypeID:  &one,
		VenueID: &one,
	}
}

func (s *PostgresStoreSuite) TestInsertAndEnrich() {
	id, err := s.store.Insert(s.ctx, s.submission())
	s.Require().NoError(err)

	enriched, err := s.store.EnrichedByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, enriched.ID)
	s.Equal("Jane", enriched.User)
	s.Equal("07700900000", enriched.Phone)
	s.Equal("Assault", enriched.Type)
	s.Equal(8, enriched.Severity)
	s.Equal("The Crown", enriched.Venue)
	s.Equal([2]float64{51.5, -0.12}, enriched.Location)
	s.Equal("2024-01-01T10:00:00", enriched.Date)
	s.False(enriched.Resolved)
}

func (s *PostgresStoreSuite) TestInsertRejectsUnknownReferences() {
	sub := s.submission()
	missing := 99
	sub.VenueID = &missing
	_, err := s.store.Insert(s.ctx, sub)
	s.Error(err)
}

func (s *PostgresStoreSuite) TestEnrichedByIDNotFound() {
	_, err := s.store.EnrichedByID(s.ctx, 4242)
	s.ErrorIs(err, report.ErrNotFound)
}

func (s *PostgresStoreSuite) TestResolveAndUnresolved() {
	id, err := s.store.Insert(s.ctx, s.submission())
	s.Require().NoError(err)

	unresolved, err := s.store.Unresolved(s.ctx)
	s.Require().NoError(err)
	s.Len(unresolved, 1)

	s.Require().NoError(s.store.Resolve(s.ctx, id))

	unresolved, err = s.store.Unresolved(s.ctx)
	s.Require().NoError(err)
	s.Empty(unresolved)

	s.ErrorIs(s.store.Resolve(s.ctx, 4242), report.ErrNotFound)
}

func (s *PostgresStoreSuite) TestLatestByVenueLimits() {
	for range 12 {
		_, err := s.store.Insert(s.ctx, s.submission())
		s.Require().NoError(err)
	}

	latest, err := s.store.LatestByVenue(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(latest, 10)
	s.Greater(latest[0].ID, latest[9].ID)
}
