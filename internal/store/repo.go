package store

import (
	"context"
	"errors"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("schedule not found")

// Repo defines storage operations for schedules.
type Repo interface {
	// Insert stores a new schedule and returns its assigned id.
	Insert(ctx context.Context, s *domain.Schedule) (int64, error)
	// GetByID returns the schedule with the given id or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	// ListActiveByUser returns a user's active schedules, oldest first.
	ListActiveByUser(ctx context.Context, userID int64) ([]domain.Schedule, error)
	// ListActive returns every active schedule. Used by startup
	// reconciliation.
	ListActive(ctx context.Context) ([]domain.Schedule, error)
	// ListRecent returns up to limit schedules for a user, newest first,
	// skipping offset rows.
	ListRecent(ctx context.Context, userID int64, limit, offset int) ([]domain.Schedule, error)
	// UpdateStatus flips a schedule from one status to another and
	// reports whether a row actually changed. The from guard makes
	// concurrent transitions resolve to a single winner.
	UpdateStatus(ctx context.Context, id int64, from, to domain.Status) (bool, error)
	Close() error
}
