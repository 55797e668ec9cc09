package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
	s.store.SeedUser(CatalogUser{ID: 7, Name: "Jane Doe", Phone: "07700900000"})
	s.store.SeedCrime(CatalogCrime{ID: 3, Name: "Assault", Severity: 8})
	s.store.SeedVenue(CatalogVenue{ID: 2, Name: "The Crown", Lat: 51.5, Long: -0.12})
}

func (s *MemoryStoreSuite) TestInsertAndEnrich() {
	id, err := s.store.Insert(s.ctx, complete())
	s.Require().NoError(err)
	s.Equal(1, id)

	enriched, err := s.store.EnrichedByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("Jane Doe", enriched.User)
	s.Equal("Assault", enriched.Type)
	s.Equal(8, enriched.Severity)
	s.Equal("The Crown", enriched.Venue)
	s.Equal([2]float64{51.5, -0.12}, enriched.Location)
	s.False(enriched.Resolved)
}

func (s *MemoryStoreSuite) TestInsertEnforcesReferences() {
	sub := complete()
	sub.UserID = intp(99)
	_, err := s.store.Insert(s.ctx, sub)
	s.Error(err)

	sub = complete()
	sub.VenueID = intp(99)
	_, err = s.store.Insert(s.ctx, sub)
	s.Error(err)
}

func (s *MemoryStoreSuite) TestInsertRejectsBadDate() {
	sub := complete()
	sub.Date = "not-a-date"
	_, err := s.store.Insert(s.ctx, sub)
	s.Error(err)
}

func (s *MemoryStoreSuite) TestEnrichedByIDNotFound() {
	_, err := s.store.EnrichedByID(s.ctx, 123)
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreSuite) TestResolve() {
	id, err := s.store.Insert(s.ctx, complete())
	s.Require().NoError(err)

	s.Require().NoError(s.store.Resolve(s.ctx, id))
	enriched, err := s.store.EnrichedByID(s.ctx, id)
	s.Require().NoError(err)
	s.True(enriched.Resolved)

	unresolved, err := s.store.Unresolved(s.ctx)
	s.Require().NoError(err)
	s.Empty(unresolved)

	s.ErrorIs(s.store.Resolve(s.ctx, 99), ErrNotFound)
}

func (s *MemoryStoreSuite) TestLatestOrdersNewestFirst() {
	for range 3 {
		_, err := s.store.Insert(s.ctx, complete())
		s.Require().NoError(err)
	}

	latest, err := s.store.Latest(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(latest, 2)
	s.Equal(3, latest[0].ID)
	s.Equal(2, latest[1].ID)

	byVenue, err := s.store.LatestByVenue(s.ctx, 2, 10)
	s.Require().NoError(err)
	s.Len(byVenue, 3)

	none, err := s.store.LatestByVenue(s.ctx, 5, 10)
	s.Require().NoError(err)
	s.Empty(none)
}
