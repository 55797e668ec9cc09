package report

import (
	"context"
	"fmt"
	"sync"
)

// CatalogUser is the slice of the user catalog enrichment needs.
type CatalogUser struct {
	ID    int
	Name  string
	Phone string
}

// CatalogCrime is the slice of the crime catalog enrichment needs.
type CatalogCrime struct {
	ID       int
	Name     string
	Severity int
}

// CatalogVenue is the slice of the venue catalog enrichment needs.
type CatalogVenue struct {
	ID   int
	Name string
	Lat  float64
	Long float64
}

type memoryReport struct {
	id       int
	sub      Submission
	resolved bool
}

// MemoryStore is an in-memory Store used by tests and local development. It
// enforces the same referential integrity the database would.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int
	reports map[int]*memoryReport
	users   map[int]CatalogUser
	crimes  map[int]CatalogCrime
	venues  map[int]CatalogVenue
}

// NewMemoryStore creates an empty in-memory report store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		reports: make(map[int]*memoryReport),
		users:   make(map[int]CatalogUser),
		crimes:  make(map[int]CatalogCrime),
		venues:  make(map[int]CatalogVenue),
	}
}

// SeedUser adds a user to the catalog backing enrichment.
func (s *MemoryStore) SeedUser(u CatalogUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// SeedCrime adds a crime to the catalog backing enrichment.
func (s *MemoryStore) SeedCrime(c CatalogCrime) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crimes[c.ID] = c
}

// SeedVenue adds a venue to the catalog backing enrichment.
func (s *MemoryStore) SeedVenue(v CatalogVenue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[v.ID] = v
}

func (s *MemoryStore) Insert(ctx context.Context, sub Submission) (int, error) {
	if _, err := sub.ParsedDate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[*sub.UserID]; !ok {
		return 0, fmt.Errorf("insert report: user %d does not exist", *sub.UserID)
	}
	if _, ok := s.crimes[*sub.TypeID]; !ok {
		return 0, fmt.Errorf("insert report: crime %d does not exist", *sub.TypeID)
	}
	if _, ok := s.venues[*sub.VenueID]; !ok {
		return 0, fmt.Errorf("insert report: venue %d does not exist", *sub.VenueID)
	}
	id := s.nextID
	s.nextID++
	s.reports[id] = &memoryReport{id: id, sub: sub}
	return id, nil
}

func (s *MemoryStore) EnrichedByID(ctx context.Context, id int) (*Enriched, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.enrichLocked(r)
}

func (s *MemoryStore) Unresolved(ctx context.Context) ([]Enriched, error) {
	return s.list(func(r *memoryReport) bool { return !r.resolved }, 0)
}

func (s *MemoryStore) Latest(ctx context.Context, limit int) ([]Enriched, error) {
	return s.list(func(*memoryReport) bool { return true }, limit)
}

func (s *MemoryStore) LatestByVenue(ctx context.Context, venueID, limit int) ([]Enriched, error) {
	return s.list(func(r *memoryReport) bool { return *r.sub.VenueID == venueID }, limit)
}

func (s *MemoryStore) Resolve(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return ErrNotFound
	}
	r.resolved = true
	return nil
}

func (s *MemoryStore) list(keep func(*memoryReport) bool, limit int) ([]Enriched, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Enriched
	// Newest first, matching the SQL ORDER BY report_id DESC.
	for id := s.nextID - 1; id >= 1; id-- {
		r, ok := s.reports[id]
		if !ok || !keep(r) {
			continue
		}
		e, err := s.enrichLocked(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) enrichLocked(r *memoryReport) (*Enriched, error) {
	user, ok := s.users[*r.sub.UserID]
	if !ok {
		return nil, ErrNotFound
	}
	crime, ok := s.crimes[*r.sub.TypeID]
	if !ok {
		return nil, ErrNotFound
	}
	venue, ok := s.venues[*r.sub.VenueID]
	if !ok {
		return nil, ErrNotFound
	}
	return &Enriched{
		ID:       r.id,
		Date:     r.sub.Date,
		Phone:    user.Phone,
		Details:  r.sub.Details,
		User:     user.Name,
		Type:     crime.Name,
		Severity: crime.Severity,
		Venue:    venue.Name,
		Location: [2]float64{venue.Lat, venue.Long},
		Resolved: r.resolved,
	}, nil
}
