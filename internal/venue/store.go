package venue

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no venue matches the given id, or when a
// venue has no reports to aggregate severity over.
var ErrNotFound = errors.New("venue: not found")

// Store persists the venue catalog. The Active variants filter out
// deactivated venues and back the routes users can reach; the All variants
// back the police routes.
type Store interface {
	Add(ctx context.Context, v Venue) error
	ByID(ctx context.Context, id int) (*Venue, error)
	Active(ctx context.Context) ([]Venue, error)
	All(ctx context.Context) ([]Venue, error)
	// SearchName matches venue names case-insensitively by substring.
	SearchName(ctx context.Context, name string, activeOnly bool) ([]Venue, error)
	// SearchCity matches venue cities case-insensitively by substring.
	SearchCity(ctx context.Context, city string, activeOnly bool) ([]Venue, error)
	SetActive(ctx context.Context, id int, active bool) error
	// AverageSeverity aggregates crime severity over a venue's reports.
	// Returns ErrNotFound when the venue has no reports.
	AverageSeverity(ctx context.Context, venueID int) (*Severity, error)
	// AverageSeverities aggregates severity per active venue, keyed by
	// venue id. Venues without reports are absent.
	AverageSeverities(ctx context.Context) (map[int]Severity, error)
}
