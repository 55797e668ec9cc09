package report

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a report (or its enriched form) does not exist.
var ErrNotFound = errors.New("report not found")

// Store is the persistence port the live engine and the REST handlers call.
// Implementations treat every call as a single atomic operation; the engine
// never inspects failure causes beyond "it failed".
type Store interface {
	// Insert persists a submission and returns the new report id.
	Insert(ctx context.Context, sub Submission) (int, error)
	// EnrichedByID fetches the joined form of a persisted report.
	EnrichedByID(ctx context.Context, id int) (*Enriched, error)
	// Unresolved lists all reports not yet resolved.
	Unresolved(ctx context.Context) ([]Enriched, error)
	// Latest lists the most recent reports, newest first.
	Latest(ctx context.Context, limit int) ([]Enriched, error)
	// LatestByVenue lists the most recent reports for one venue, newest first.
	LatestByVenue(ctx context.Context, venueID, limit int) ([]Enriched, error)
	// Resolve marks a report resolved.
	Resolve(ctx context.Context, id int) error
}
