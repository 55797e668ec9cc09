package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safesound/internal/jwtauth"
	"safesound/internal/notify"
	"safesound/internal/secrets"
)

var (
	// ErrInactive is returned when a known account has not been activated.
	ErrInactive = errors.New("user: account is not active")
	// ErrBadCredentials is returned when the password does not match.
	ErrBadCredentials = errors.New("user: bad credentials")
)

// Service orchestrates the account lifecycle: registration with an SMS
// activation code, login and password management.
type Service struct {
	store         Store
	codes         CodeStore
	sender        notify.Sender
	tokens        *jwtauth.Service
	activationTTL time.Duration
}

func NewService(store Store, codes CodeStore, sender notify.Sender, tokens *jwtauth.Service, activationTTL time.Duration) *Service {
	return &Service{
		store:         store,
		codes:         codes,
		sender:        sender,
		tokens:        tokens,
		activationTTL: activationTTL,
	}
}

// Register stores the account inactive, hashes its password and sends the
// activation code to the account phone.
func (s *Service) Register(ctx context.Context, a Account) error {
	hash, err := secrets.Hash(a.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a.Password = hash
	if err := s.store.Create(ctx, a); err != nil {
		return err
	}

	code, err := secrets.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate activation code: %w", err)
	}
	if err := s.codes.SaveActivation(ctx, code, a.Email, s.activationTTL); err != nil {
		return err
	}
	return s.sender.SendActivation(ctx, a.Phone, code)
}

// Activate consumes the code and marks the matching account active.
func (s *Service) Activate(ctx context.Context, code string) error {
	email, err := s.codes.TakeActivation(ctx, code)
	if err != nil {
		return err
	}
	return s.store.SetActive(ctx, email, true)
}

// Login verifies the credentials and issues a user token. The returned
// account has its password hash cleared.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	a, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if !a.Active {
		return "", nil, ErrInactive
	}
	if err := secrets.Verify(password, a.Password); err != nil {
		return "", nil, ErrBadCredentials
	}
	token, err := s.tokens.GenerateUserToken(a.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	a.Password = ""
	return token, a, nil
}

// RecoverPassword replaces the account password with a generated one and
// sends it to the account phone.
func (s *Service) RecoverPassword(ctx context.Context, email string) error {
	a, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	generated, err := secrets.GenerateCode()
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hash, err := secrets.Hash(generated)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	return s.sender.SendRecovery(ctx, a.Phone, generated)
}

// ChangePassword sets a new password for the authenticated account.
func (s *Service) ChangePassword(ctx context.Context, email, password string) error {
	hash, err := secrets.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdatePassword(ctx, email, hash)
}

// Deactivate disables the authenticated account.
func (s *Service) Deactivate(ctx context.Context, email string) error {
	return s.store.SetActive(ctx, email, false)
}
