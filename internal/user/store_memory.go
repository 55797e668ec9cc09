package user

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and local runs.
type MemoryStore struct {
	mu       sync.Mutex
	nextID   int
	accounts map[string]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, accounts: make(map[string]*Account)}
}

func (s *MemoryStore) Create(ctx context.Context, a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.Email]; ok {
		return fmt.Errorf("user %q already registered", a.Email)
	}
	a.ID = s.nextID
	s.nextID++
	a.Active = false
	s.accounts[a.Email] = &a
	return nil
}

func (s *MemoryStore) ByEmail(ctx context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *MemoryStore) SetActive(ctx context.Context, email string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return ErrNotFound
	}
	a.Active = active
	return nil
}

func (s *MemoryStore) UpdatePassword(ctx context.Context, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return ErrNotFound
	}
	a.Password = hash
	return nil
}

// MemoryCodeStore is an in-memory CodeStore with TTL expiry.
type MemoryCodeStore struct {
	mu    sync.Mutex
	codes map[string]pendingCode
}

type pendingCode struct {
	email   string
	expires time.Time
}

func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{codes: make(map[string]pendingCode)}
}

func (s *MemoryCodeStore) SaveActivation(ctx context.Context, code, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = pendingCode{email: email, expires: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryCodeStore) TakeActivation(ctx context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.codes[code]
	if !ok || time.Now().After(pending.expires) {
		delete(s.codes, code)
		return "", ErrCodeNotFound
	}
	delete(s.codes, code)
	return pending.email, nil
}
