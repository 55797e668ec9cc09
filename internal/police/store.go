package police

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"safesound/internal/secrets"
)

// ErrNotFound is returned when no officer matches the given badge.
var ErrNotFound = errors.New("police: not found")

// Store persists officer accounts.
type Store interface {
	Create(ctx context.Context, o Officer) error
	ByBadge(ctx context.Context, badge int) (*Officer, error)
	SetActive(ctx context.Context, badge int, active bool) error
	UpdatePassword(ctx context.Context, badge int, hash string) error
	List(ctx context.Context) ([]Officer, error)
}

// Bootstrap creates the initial admin officer when the configured badge is
// not registered yet. Without it a fresh deployment has no account able to
// register officers.
func Bootstrap(ctx context.Context, store Store, badge int, password string, logger *slog.Logger) error {
	if badge == 0 || password == "" {
		return nil
	}
	if _, err := store.ByBadge(ctx, badge); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("bootstrap admin lookup: %w", err)
	}

	hash, err := secrets.Hash(password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if err := store.Create(ctx, Officer{Badge: badge, Password: hash, Active: true, Admin: true}); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	logger.InfoContext(ctx, "bootstrapped admin officer", "badge", badge)
	return nil
}
