package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithMaxConns overrides the pool size.
func WithMaxConns(n int32) PostgresOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateWatch inserts a fully built watch.
func (s *PostgresStore) CreateWatch(ctx context.Context, w *domain.Watch) error {
	args := pgx.NamedArgs{
		"watch_id":        w.WatchID,
		"user_id":         w.UserID,
		"origin":          w.Origin,
		"destination":     w.Destination,
		"departure_date":  w.DepartureDate,
		"return_date":     w.ReturnDate,
		"price_threshold": w.PriceThreshold,
		"currency":        w.Currency,
		"is_active":       w.IsActive,
		"created_at":      w.CreatedAt,
		"updated_at":      w.UpdatedAt,
	}

	if _, err := s.pool.Exec(ctx, queryCreateWatch, args); err != nil {
		return fmt.Errorf("creating watch: %w", err)
	}
	return nil
}

// GetWatch retrieves a watch owned by userID.
func (s *PostgresStore) GetWatch(ctx context.Context, userID, watchID string) (*domain.Watch, error) {
	w, err := scanWatch(s.pool.QueryRow(ctx, queryGetWatch, userID, watchID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting watch: %w", err)
	}
	return w, nil
}

// ListWatches returns the user's watches, most recently updated first.
func (s *PostgresStore) ListWatches(ctx context.Context, userID string) ([]domain.Watch, error) {
	rows, err := s.pool.Query(ctx, queryListWatchesByUser, userID)
	if err != nil {
		return nil, fmt.Errorf("querying watches: %w", err)
	}
	return collectWatches(rows)
}

// ListActiveWatches returns active watches departing on or after asOf, across
// all users.
func (s *PostgresStore) ListActiveWatches(ctx context.Context, asOf time.Time) ([]domain.Watch, error) {
	rows, err := s.pool.Query(ctx, queryListActiveWatches, domain.FormatDate(asOf))
	if err != nil {
		return nil, fmt.Errorf("querying active watches: %w", err)
	}
	return collectWatches(rows)
}

// UpdateWatch applies patch to an existing watch. The row must already exist
// for userID; nothing is inserted otherwise.
func (s *PostgresStore) UpdateWatch(
	ctx context.Context,
	userID, watchID string,
	patch *domain.WatchPatch,
	updatedAt time.Time,
) (*domain.Watch, error) {
	args := pgx.NamedArgs{
		"user_id":         userID,
		"watch_id":        watchID,
		"price_threshold": patch.PriceThreshold,
		"departure_date":  patch.DepartureDate,
		"return_date":     patch.ReturnDate,
		"is_active":       patch.IsActive,
		"updated_at":      updatedAt,
	}

	w, err := scanWatch(s.pool.QueryRow(ctx, queryUpdateWatch, args))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating watch: %w", err)
	}
	return w, nil
}

// DeleteWatch removes a watch owned by userID.
func (s *PostgresStore) DeleteWatch(ctx context.Context, userID, watchID string) error {
	return s.execOwned(ctx, "deleting watch", queryDeleteWatch, userID, watchID)
}

// ApplyPollResult records the latest observed price on the watch.
func (s *PostgresStore) ApplyPollResult(
	ctx context.Context,
	userID, watchID string,
	price float64,
	checkedAt time.Time,
) error {
	return s.execOwned(ctx, "applying poll result", queryApplyPollResult, userID, watchID, price, checkedAt)
}

// MarkAlertSent stamps the time of the last delivered alert.
func (s *PostgresStore) MarkAlertSent(ctx context.Context, userID, watchID string, sentAt time.Time) error {
	return s.execOwned(ctx, "marking alert sent", queryMarkAlertSent, userID, watchID, sentAt)
}

// RecordSnapshot appends a price snapshot.
func (s *PostgresStore) RecordSnapshot(ctx context.Context, snap *domain.PriceSnapshot) error {
	args := pgx.NamedArgs{
		"watch_id":      snap.WatchID,
		"captured_at":   snap.Timestamp,
		"price":         snap.Price,
		"currency":      snap.Currency,
		"source":        snap.Source,
		"airline":       snap.FlightDetails.Airline,
		"flight_number": snap.FlightDetails.FlightNumber,
		"duration":      snap.FlightDetails.Duration,
		"stops":         snap.FlightDetails.Stops,
		"expires_at":    snap.ExpiresAt,
	}

	if _, err := s.pool.Exec(ctx, queryInsertSnapshot, args); err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// GetPriceHistory returns unexpired snapshots for a watch, newest first.
func (s *PostgresStore) GetPriceHistory(
	ctx context.Context,
	watchID string,
	limit int,
) ([]domain.PriceSnapshot, error) {
	rows, err := s.pool.Query(ctx, queryGetPriceHistory, watchID, historyLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("querying price history: %w", err)
	}
	defer rows.Close()

	snaps := []domain.PriceSnapshot{}
	for rows.Next() {
		var p domain.PriceSnapshot
		if err := rows.Scan(
			&p.WatchID, &p.Timestamp, &p.Price, &p.Currency, &p.Source,
			&p.FlightDetails.Airline, &p.FlightDetails.FlightNumber,
			&p.FlightDetails.Duration, &p.FlightDetails.Stops, &p.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, p)
	}

	return snaps, rows.Err()
}

// DeleteExpiredSnapshots removes snapshots whose expiry is at or before now.
func (s *PostgresStore) DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteExpiredSnapshots, now)
	if err != nil {
		return 0, fmt.Errorf("deleting expired snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AcquireSchedulerLock attempts to acquire a distributed lock for the given job.
// Returns true if the lock was acquired (or is already held by holder), false
// if another holder owns an unexpired lock.
func (s *PostgresStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var gotName string
	err := s.pool.QueryRow(ctx, queryAcquireSchedulerLock, jobName, holder, expiresAt).Scan(&gotName)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil // lock held by another; conflict not replaced
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}

	return true, nil
}

// ReleaseSchedulerLock deletes the lock row for the given job and holder.
func (s *PostgresStore) ReleaseSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
) error {
	_, err := s.pool.Exec(ctx, queryReleaseSchedulerLock, jobName, holder)
	if err != nil {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}

// execOwned runs a single-row write conditioned on (user_id, watch_id) and
// maps zero affected rows to ErrNotFound.
func (s *PostgresStore) execOwned(ctx context.Context, op, query string, args ...any) error {
	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanWatch(row pgx.Row) (*domain.Watch, error) {
	w := &domain.Watch{}
	if err := row.Scan(
		&w.WatchID, &w.UserID, &w.Origin, &w.Destination,
		&w.DepartureDate, &w.ReturnDate,
		&w.PriceThreshold, &w.Currency, &w.IsActive,
		&w.LastPrice, &w.LastCheckedAt, &w.LastAlertSent,
		&w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return w, nil
}

func collectWatches(rows pgx.Rows) ([]domain.Watch, error) {
	defer rows.Close()

	watches := []domain.Watch{}
	for rows.Next() {
		w, err := scanWatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning watch: %w", err)
		}
		watches = append(watches, *w)
	}

	return watches, rows.Err()
}
