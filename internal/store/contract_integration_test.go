//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

func testWatch(t *testing.T, userID, departure string, now time.Time) *domain.Watch {
	t.Helper()

	threshold := 500.0
	w, err := domain.NewWatch(userID, uuid.NewString(), &domain.CreateWatchRequest{
		Origin:         "jfk",
		Destination:    "lax",
		DepartureDate:  departure,
		PriceThreshold: &threshold,
	}, now)
	require.NoError(t, err)
	return w
}

func testSnapshot(watchID string, at time.Time) *domain.PriceSnapshot {
	return domain.NewPriceSnapshot(watchID, &domain.PriceResult{
		Price:    450,
		Currency: "USD",
		Source:   "amadeus",
		FlightDetails: domain.FlightDetails{
			Airline:      "B6",
			FlightNumber: "B6123",
			Duration:     "PT6H10M",
			Stops:        0,
		},
	}, at, 7*24*time.Hour)
}

// runStoreContract exercises behavior both backends must share.
func runStoreContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("create get and ownership", func(t *testing.T) {
		w := testWatch(t, "owner-a", "2099-01-01", now)
		require.NoError(t, s.CreateWatch(ctx, w))

		got, err := s.GetWatch(ctx, "owner-a", w.WatchID)
		require.NoError(t, err)
		assert.Equal(t, "JFK", got.Origin)
		assert.Equal(t, "LAX", got.Destination)
		assert.Equal(t, "2099-01-01", got.DepartureDate)
		assert.True(t, got.IsActive)
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)

		_, err = s.GetWatch(ctx, "owner-b", w.WatchID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		first := testWatch(t, "lister", "2099-01-01", now)
		second := testWatch(t, "lister", "2099-01-02", now.Add(time.Minute))
		require.NoError(t, s.CreateWatch(ctx, first))
		require.NoError(t, s.CreateWatch(ctx, second))

		watches, err := s.ListWatches(ctx, "lister")
		require.NoError(t, err)
		require.Len(t, watches, 2)
		assert.Equal(t, second.WatchID, watches[0].WatchID)

		empty, err := s.ListWatches(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("update is conditioned on existence", func(t *testing.T) {
		w := testWatch(t, "updater", "2099-01-01", now)
		require.NoError(t, s.CreateWatch(ctx, w))

		threshold := 350.0
		later := now.Add(time.Hour)
		got, err := s.UpdateWatch(ctx, "updater", w.WatchID, &domain.WatchPatch{PriceThreshold: &threshold}, later)
		require.NoError(t, err)
		assert.InDelta(t, 350.0, got.PriceThreshold, 0.001)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
		assert.Equal(t, "2099-01-01", got.DepartureDate)

		_, err = s.UpdateWatch(ctx, "intruder", w.WatchID, &domain.WatchPatch{PriceThreshold: &threshold}, later)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = s.UpdateWatch(ctx, "updater", uuid.NewString(), &domain.WatchPatch{PriceThreshold: &threshold}, later)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		intruderWatches, err := s.ListWatches(ctx, "intruder")
		require.NoError(t, err)
		assert.Empty(t, intruderWatches)
	})

	t.Run("second delete is not found", func(t *testing.T) {
		w := testWatch(t, "deleter", "2099-01-01", now)
		require.NoError(t, s.CreateWatch(ctx, w))

		require.NoError(t, s.DeleteWatch(ctx, "deleter", w.WatchID))
		assert.ErrorIs(t, s.DeleteWatch(ctx, "deleter", w.WatchID), domain.ErrNotFound)
	})

	t.Run("active watches exclude inactive and past", func(t *testing.T) {
		today := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)

		future := testWatch(t, "scanner", "2030-06-15", now)
		past := testWatch(t, "scanner", "2030-06-14", now)
		inactive := testWatch(t, "scanner", "2030-07-01", now)
		inactive.IsActive = false
		for _, w := range []*domain.Watch{future, past, inactive} {
			require.NoError(t, s.CreateWatch(ctx, w))
		}

		active, err := s.ListActiveWatches(ctx, today)
		require.NoError(t, err)

		ids := map[string]bool{}
		for _, w := range active {
			assert.True(t, w.IsActive)
			assert.GreaterOrEqual(t, w.DepartureDate, "2030-06-15")
			ids[w.WatchID] = true
		}
		assert.True(t, ids[future.WatchID])
		assert.False(t, ids[past.WatchID])
		assert.False(t, ids[inactive.WatchID])
	})

	t.Run("poll result and alert stamps", func(t *testing.T) {
		w := testWatch(t, "poller", "2099-01-01", now)
		require.NoError(t, s.CreateWatch(ctx, w))

		checked := now.Add(2 * time.Hour)
		require.NoError(t, s.ApplyPollResult(ctx, "poller", w.WatchID, 450, checked))

		got, err := s.GetWatch(ctx, "poller", w.WatchID)
		require.NoError(t, err)
		require.NotNil(t, got.LastPrice)
		assert.InDelta(t, 450.0, *got.LastPrice, 0.001)
		require.NotNil(t, got.LastCheckedAt)
		assert.True(t, got.LastCheckedAt.Equal(checked))
		assert.Nil(t, got.LastAlertSent)

		require.NoError(t, s.MarkAlertSent(ctx, "poller", w.WatchID, checked))
		got, err = s.GetWatch(ctx, "poller", w.WatchID)
		require.NoError(t, err)
		require.NotNil(t, got.LastAlertSent)
		assert.True(t, got.LastAlertSent.Equal(checked))

		assert.ErrorIs(t, s.ApplyPollResult(ctx, "poller", uuid.NewString(), 1, checked), domain.ErrNotFound)
	})

	t.Run("history newest first with limit", func(t *testing.T) {
		watchID := uuid.NewString()
		for i := range 3 {
			require.NoError(t, s.RecordSnapshot(ctx, testSnapshot(watchID, now.Add(time.Duration(i)*time.Hour))))
		}

		history, err := s.GetPriceHistory(ctx, watchID, 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.True(t, history[0].Timestamp.After(history[1].Timestamp))
		assert.Equal(t, "B6123", history[0].FlightDetails.FlightNumber)

		all, err := s.GetPriceHistory(ctx, watchID, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("scheduler lock", func(t *testing.T) {
		ok, err := s.AcquireSchedulerLock(ctx, "contract-job", "holder-a", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.AcquireSchedulerLock(ctx, "contract-job", "holder-b", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.ReleaseSchedulerLock(ctx, "contract-job", "holder-a"))

		ok, err = s.AcquireSchedulerLock(ctx, "contract-job", "holder-b", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
