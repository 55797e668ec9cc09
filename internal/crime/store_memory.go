package crime

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int
	crimes map[int]*Crime
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, crimes: make(map[int]*Crime)}
}

func (s *MemoryStore) Add(ctx context.Context, c Crime) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	c.Active = true
	s.crimes[c.ID] = &c
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id int) (*Crime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *MemoryStore) Active(ctx context.Context) ([]Crime, error) {
	return s.filter(func(c *Crime) bool { return c.Active }), nil
}

func (s *MemoryStore) All(ctx context.Context) ([]Crime, error) {
	return s.filter(func(*Crime) bool { return true }), nil
}

func (s *MemoryStore) SetActive(ctx context.Context, id int, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crimes[id]
	if !ok {
		return ErrNotFound
	}
	c.Active = active
	return nil
}

func (s *MemoryStore) filter(keep func(*Crime) bool) []Crime {
	s.mu.Lock()
	defer s.mu.Unlock()
	var crimes []Crime
	for _, c := range s.crimes {
		if keep(c) {
			crimes = append(crimes, *c)
		}
	}
	sort.Slice(crimes, func(i, j int) bool { return crimes[i].Name < crimes[j].Name })
	return crimes
}
