package user

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no account matches the given email.
var ErrNotFound = errors.New("user: not found")

// ErrCodeNotFound is returned when an activation code is unknown or expired.
var ErrCodeNotFound = errors.New("user: activation code not found")

// Store persists submitter accounts.
type Store interface {
	Create(ctx context.Context, a Account) error
	ByEmail(ctx context.Context, email string) (*Account, error)
	SetActive(ctx context.Context, email string, active bool) error
	UpdatePassword(ctx context.Context, email, hash string) error
}

// CodeStore holds pending activation codes. Codes expire on their own after
// the configured TTL.
type CodeStore interface {
	SaveActivation(ctx context.Context, code, email string, ttl time.Duration) error
	// TakeActivation resolves a code to the email it was issued for and
	// consumes it, so a code activates at most one account once.
	TakeActivation(ctx context.Context, code string) (string, error)
}
