// Package store defines the datastore abstraction for faredrop-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
//
// Two implementations exist: PostgresStore (pgx) and DynamoStore (AWS
// DynamoDB). Both enforce per-user ownership with existence-conditioned
// writes and report missing rows as domain.ErrNotFound.
package store

import (
	"context"
	"time"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// DefaultHistoryLimit is the number of snapshots returned when the caller
// does not ask for a specific count.
const DefaultHistoryLimit = 50

// Store defines all data access operations for faredrop-tracker.
type Store interface {
	// Watches
	ListWatches(ctx context.Context, userID string) ([]domain.Watch, error)
	GetWatch(ctx context.Context, userID, watchID string) (*domain.Watch, error)
	CreateWatch(ctx context.Context, w *domain.Watch) error
	UpdateWatch(
		ctx context.Context,
		userID, watchID string,
		patch *domain.WatchPatch,
		updatedAt time.Time,
	) (*domain.Watch, error)
	DeleteWatch(ctx context.Context, userID, watchID string) error
	ListActiveWatches(ctx context.Context, asOf time.Time) ([]domain.Watch, error)
	ApplyPollResult(ctx context.Context, userID, watchID string, price float64, checkedAt time.Time) error
	MarkAlertSent(ctx context.Context, userID, watchID string, sentAt time.Time) error

	// Snapshots
	RecordSnapshot(ctx context.Context, s *domain.PriceSnapshot) error
	GetPriceHistory(ctx context.Context, watchID string, limit int) ([]domain.PriceSnapshot, error)
	DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int64, error)

	// Scheduler locks
	AcquireSchedulerLock(ctx context.Context, jobName, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName, holder string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
