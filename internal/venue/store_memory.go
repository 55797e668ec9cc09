package venue

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local runs. Severity
// aggregates are fed through RecordSeverity rather than a reports join.
type MemoryStore struct {
	mu         sync.Mutex
	nextID     int
	venues     map[int]*Venue
	severities map[int][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, venues: make(map[int]*Venue), severities: make(map[int][]int)}
}

// RecordSeverity registers a report's crime severity against a venue.
func (s *MemoryStore) RecordSeverity(venueID, severity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.severities[venueID] = append(s.severities[venueID], severity)
}

func (s *MemoryStore) Add(ctx context.Context, v Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID
	s.nextID++
	v.Active = true
	s.venues[v.ID] = &v
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id int) (*Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *v
	return &copied, nil
}

func (s *MemoryStore) Active(ctx context.Context) ([]Venue, error) {
	return s.filter(func(v *Venue) bool { return v.Active }), nil
}

func (s *MemoryStore) All(ctx context.Context) ([]Venue, error) {
	return s.filter(func(*Venue) bool { return true }), nil
}

func (s *MemoryStore) SearchName(ctx context.Context, name string, activeOnly bool) ([]Venue, error) {
	needle := strings.ToLower(name)
	return s.filter(func(v *Venue) bool {
		if activeOnly && !v.Active {
			return false
		}
		return strings.Contains(strings.ToLower(v.Name), needle)
	}), nil
}

func (s *MemoryStore) SearchCity(ctx context.Context, city string, activeOnly bool) ([]Venue, error) {
	needle := strings.ToLower(city)
	return s.filter(func(v *Venue) bool {
		if activeOnly && !v.Active {
			return false
		}
		return strings.Contains(strings.ToLower(v.City), needle)
	}), nil
}

func (s *MemoryStore) SetActive(ctx context.Context, id int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok {
		return ErrNotFound
	}
	v.Active = active
	return nil
}

func (s *MemoryStore) AverageSeverity(ctx context.Context, venueID int) (*Severity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	samples := s.severities[venueID]
	if len(samples) == 0 {
		return nil, ErrNotFound
	}
	return &Severity{Average: average(samples)}, nil
}

func (s *MemoryStore) AverageSeverities(ctx context.Context) (map[int]Severity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	severities := make(map[int]Severity)
	for id, samples := range s.severities {
		if v, ok := s.venues[id]; !ok || !v.Active || len(samples) == 0 {
			continue
		}
		severities[id] = Severity{Average: average(samples)}
	}
	return severities, nil
}

func (s *MemoryStore) filter(keep func(*Venue) bool) []Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	var venues []Venue
	for _, v := range s.venues {
		if keep(v) {
			venues = append(venues, *v)
		}
	}
	sort.Slice(venues, func(i, j int) bool {
		if venues[i].City != venues[j].City {
			return venues[i].City < venues[j].City
		}
		return venues[i].ID < venues[j].ID
	})
	return venues
}

func average(samples []int) float64 {
	sum := 0
	for _, v := range samples {
		sum += v
	}
	return float64(sum) / float64(len(samples))
}
