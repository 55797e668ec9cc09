package police

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int
	officers map[int]*Officer
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, officers: make(map[int]*Officer)}
}

func (s *MemoryStore) Create(ctx context.Context, o Officer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.officers[o.Badge]; ok {
		return fmt.Errorf("badge %d already registered", o.Badge)
	}
	o.ID = s.nextID
	s.nextID++
	s.officers[o.Badge] = &o
	return nil
}

func (s *MemoryStore) ByBadge(ctx context.Context, badge int) (*Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.officers[badge]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *MemoryStore) SetActive(ctx context.Context, badge int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.officers[badge]
	if !ok {
		return ErrNotFound
	}
	o.Active = active
	return nil
}

func (s *MemoryStore) UpdatePassword(ctx context.Context, badge int, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.officers[badge]
	if !ok {
		return ErrNotFound
	}
	o.Password = hash
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	officers := make([]Officer, 0, len(s.officers))
	for _, o := range s.officers {
		copied := *o
		copied.Password = ""
		officers = append(officers, copied)
	}
	sort.Slice(officers, func(i, j int) bool { return officers[i].Badge < officers[j].Badge })
	return officers, nil
}
