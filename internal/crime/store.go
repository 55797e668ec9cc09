package crime

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no crime type matches the given id.
var ErrNotFound = errors.New("crime: not found")

// Store persists the crime catalog.
type Store interface {
	Add(ctx context.Context, c Crime) error
	ByID(ctx context.Context, id int) (*Crime, error)
	Active(ctx context.Context) ([]Crime, error)
	All(ctx context.Context) ([]Crime, error)
	SetActive(ctx context.Context, id int, active bool) error
}
