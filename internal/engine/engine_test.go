package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
	amadeusMocks "github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus/mocks"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/notify"
	notifyMocks "github.com/venkatadeepikapotu/faredrop-tracker/internal/notify/mocks"
	storeMocks "github.com/venkatadeepikapotu/faredrop-tracker/internal/store/mocks"
	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

var pollTime = time.Date(2026, 10, 1, 6, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEngine(
	s *storeMocks.MockStore,
	f *amadeusMocks.MockFareClient,
	n *notifyMocks.MockNotifier,
	opts ...EngineOption,
) *Engine {
	opts = append([]EngineOption{
		WithLogger(logger.Discard()),
		WithWatchDelay(0),
		WithNowFunc(fixedClock(pollTime)),
	}, opts...)
	return NewEngine(s, f, n, opts...)
}

func testWatch(id string) domain.Watch {
	return domain.Watch{
		WatchID:        id,
		UserID:         "user-" + id,
		Origin:         "JFK",
		Destination:    "LAX",
		DepartureDate:  "2099-01-01",
		PriceThreshold: 500,
		Currency:       "USD",
		IsActive:       true,
	}
}

func quote(price float64) *domain.PriceResult {
	return &domain.PriceResult{
		Price:    price,
		Currency: "USD",
		Source:   "amadeus",
		FlightDetails: domain.FlightDetails{
			Airline:      "AA",
			FlightNumber: "AA100",
			Duration:     "PT6H",
			Stops:        0,
		},
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	eng := NewEngine(
		storeMocks.NewMockStore(t),
		amadeusMocks.NewMockFareClient(t),
		notifyMocks.NewMockNotifier(t),
	)
	assert.Equal(t, 500*time.Millisecond, eng.watchDelay)
	assert.Equal(t, 24*time.Hour, eng.cooldown)
	assert.Equal(t, 7*24*time.Hour, eng.retention)
	assert.Equal(t, notify.DefaultBookingBaseURL, eng.bookingBaseURL)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.nowFunc)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	l := logger.Discard()
	eng := NewEngine(
		storeMocks.NewMockStore(t),
		amadeusMocks.NewMockFareClient(t),
		notifyMocks.NewMockNotifier(t),
		WithLogger(l),
		WithWatchDelay(time.Second),
		WithAlertCooldown(12*time.Hour),
		WithSnapshotRetention(48*time.Hour),
		WithBookingBaseURL("https://flights.example.com"),
		WithAlertCooldown(0), // ignored
	)
	assert.Same(t, l, eng.log)
	assert.Equal(t, time.Second, eng.watchDelay)
	assert.Equal(t, 12*time.Hour, eng.cooldown)
	assert.Equal(t, 48*time.Hour, eng.retention)
	assert.Equal(t, "https://flights.example.com", eng.bookingBaseURL)
}

func TestRunPoll_NoActiveWatches(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{}, nil).Once()

	eng := newTestEngine(ms, amadeusMocks.NewMockFareClient(t), notifyMocks.NewMockNotifier(t))

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No active watches to poll", summary.Message)
	assert.Zero(t, summary.WatchesProcessed)
}

func TestRunPoll_ListActiveWatchesFails(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return(nil, errors.New("table missing")).Once()

	eng := newTestEngine(ms, amadeusMocks.NewMockFareClient(t), notifyMocks.NewMockNotifier(t))

	summary, err := eng.RunPoll(context.Background())
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "listing active watches")
}

func TestRunPoll_PriceBelowThresholdAlerts(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	mn := notifyMocks.NewMockNotifier(t)
	eng := newTestEngine(ms, mf, mn)

	w := testWatch("w1")
	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{w}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(func(got *domain.Watch) bool {
		return got.WatchID == "w1"
	})).Return(quote(450), nil).Once()

	ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).
		Run(func(_ context.Context, s *domain.PriceSnapshot) {
			assert.Equal(t, "w1", s.WatchID)
			assert.Equal(t, pollTime, s.Timestamp)
			assert.InDelta(t, 450.0, s.Price, 0.001)
			assert.Equal(t, "amadeus", s.Source)
			assert.Equal(t, "AA100", s.FlightDetails.FlightNumber)
			assert.Equal(t, pollTime.Add(7*24*time.Hour), s.ExpiresAt)
		}).Return(nil).Once()
	ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 450.0, pollTime).Return(nil).Once()
	mn.EXPECT().SendAlert(mock.Anything, mock.Anything).
		Run(func(_ context.Context, a *notify.AlertPayload) {
			assert.Equal(t, "w1", a.WatchID)
			assert.Equal(t, "50.00", a.Savings().StringFixed(2))
		}).Return(nil).Once()
	ms.EXPECT().MarkAlertSent(mock.Anything, "user-w1", "w1", pollTime).Return(nil).Once()

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.PollSummary{
		Message:          "Price polling completed",
		WatchesProcessed: 1,
		Successful:       1,
		AlertsSent:       1,
		StartedAt:        pollTime,
		CompletedAt:      pollTime,
	}, summary)
}

func TestRunPoll_PriceEqualToThresholdAlerts(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	mn := notifyMocks.NewMockNotifier(t)
	eng := newTestEngine(ms, mf, mn)

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{testWatch("w1")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(quote(500), nil).Once()
	ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 500.0, pollTime).Return(nil).Once()
	mn.EXPECT().SendAlert(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().MarkAlertSent(mock.Anything, "user-w1", "w1", pollTime).Return(nil).Once()

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AlertsSent)
}

func TestRunPoll_PriceAboveThresholdUpdatesOnly(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	mn := notifyMocks.NewMockNotifier(t)
	eng := newTestEngine(ms, mf, mn)

	w := testWatch("w1")
	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{w}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(quote(612.4), nil).Once()
	ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 612.4, pollTime).Return(nil).Once()

	// No SendAlert or MarkAlertSent: the strict mocks fail on any call.
	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successful)
	assert.Zero(t, summary.AlertsSent)
}

func TestRunPoll_AlertCooldown(t *testing.T) {
	t.Parallel()

	lastSent := pollTime

	tests := []struct {
		name      string
		now       time.Time
		lastSent  *time.Time
		wantAlert bool
	}{
		{name: "never alerted", now: pollTime, wantAlert: true},
		{name: "23h59m after last alert", now: lastSent.Add(23*time.Hour + 59*time.Minute), lastSent: &lastSent},
		{name: "exactly 24h after last alert", now: lastSent.Add(24 * time.Hour), lastSent: &lastSent},
		{name: "24h01m after last alert", now: lastSent.Add(24*time.Hour + time.Minute), lastSent: &lastSent, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			mf := amadeusMocks.NewMockFareClient(t)
			mn := notifyMocks.NewMockNotifier(t)
			eng := newTestEngine(ms, mf, mn, WithNowFunc(fixedClock(tt.now)))

			w := testWatch("w1")
			w.LastAlertSent = tt.lastSent

			ms.EXPECT().ListActiveWatches(mock.Anything, tt.now).Return([]domain.Watch{w}, nil).Once()
			mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(quote(420), nil).Once()
			ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).Return(nil).Once()
			ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 420.0, tt.now).Return(nil).Once()
			if tt.wantAlert {
				mn.EXPECT().SendAlert(mock.Anything, mock.Anything).Return(nil).Once()
				ms.EXPECT().MarkAlertSent(mock.Anything, "user-w1", "w1", tt.now).Return(nil).Once()
			}

			summary, err := eng.RunPoll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, summary.Successful)
			if tt.wantAlert {
				assert.Equal(t, 1, summary.AlertsSent)
			} else {
				assert.Zero(t, summary.AlertsSent)
			}
		})
	}
}

func TestRunPoll_NoQuote(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	eng := newTestEngine(ms, mf, notifyMocks.NewMockNotifier(t))

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{testWatch("w1")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(nil, nil).Once()

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.WatchesProcessed)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.NoQuote)
	assert.Zero(t, summary.Errors)
}

func TestRunPoll_ErrorDoesNotStopNextWatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(ms *storeMocks.MockStore, mf *amadeusMocks.MockFareClient)
	}{
		{
			name: "quote error",
			setup: func(_ *storeMocks.MockStore, mf *amadeusMocks.MockFareClient) {
				mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).
					Return(nil, errors.New("connection reset")).Once()
			},
		},
		{
			name: "daily limit reached",
			setup: func(_ *storeMocks.MockStore, mf *amadeusMocks.MockFareClient) {
				mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).
					Return(nil, fmt.Errorf("rate limit: %w", amadeus.ErrDailyLimitReached)).Once()
			},
		},
		{
			name: "snapshot write error",
			setup: func(ms *storeMocks.MockStore, mf *amadeusMocks.MockFareClient) {
				mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).Return(quote(700), nil).Once()
				ms.EXPECT().RecordSnapshot(mock.Anything, mock.MatchedBy(func(s *domain.PriceSnapshot) bool {
					return s.WatchID == "a"
				})).Return(errors.New("throughput exceeded")).Once()
			},
		},
		{
			name: "watch deleted mid-run",
			setup: func(ms *storeMocks.MockStore, mf *amadeusMocks.MockFareClient) {
				mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).Return(quote(700), nil).Once()
				ms.EXPECT().RecordSnapshot(mock.Anything, mock.MatchedBy(func(s *domain.PriceSnapshot) bool {
					return s.WatchID == "a"
				})).Return(nil).Once()
				ms.EXPECT().ApplyPollResult(mock.Anything, "user-a", "a", 700.0, pollTime).
					Return(domain.ErrNotFound).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			mf := amadeusMocks.NewMockFareClient(t)
			eng := newTestEngine(ms, mf, notifyMocks.NewMockNotifier(t))

			ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).
				Return([]domain.Watch{testWatch("a"), testWatch("b")}, nil).Once()
			tt.setup(ms, mf)

			mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("b"))).Return(quote(650), nil).Once()
			ms.EXPECT().RecordSnapshot(mock.Anything, mock.MatchedBy(func(s *domain.PriceSnapshot) bool {
				return s.WatchID == "b"
			})).Return(nil).Once()
			ms.EXPECT().ApplyPollResult(mock.Anything, "user-b", "b", 650.0, pollTime).Return(nil).Once()

			summary, err := eng.RunPoll(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 2, summary.WatchesProcessed)
			assert.Equal(t, 1, summary.Successful)
			assert.Equal(t, 1, summary.Errors)
		})
	}
}

func TestRunPoll_NotifierFailureLeavesLastAlertSent(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	mn := notifyMocks.NewMockNotifier(t)
	eng := newTestEngine(ms, mf, mn)

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{testWatch("w1")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(quote(450), nil).Once()
	ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 450.0, pollTime).Return(nil).Once()
	mn.EXPECT().SendAlert(mock.Anything, mock.Anything).Return(errors.New("ses throttled")).Once()

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Successful)
	assert.Zero(t, summary.Errors)
	assert.Zero(t, summary.AlertsSent)
}

func TestRunPoll_MarkAlertSentFails(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	mn := notifyMocks.NewMockNotifier(t)
	eng := newTestEngine(ms, mf, mn)

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).Return([]domain.Watch{testWatch("w1")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.Anything).Return(quote(450), nil).Once()
	ms.EXPECT().RecordSnapshot(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().ApplyPollResult(mock.Anything, "user-w1", "w1", 450.0, pollTime).Return(nil).Once()
	mn.EXPECT().SendAlert(mock.Anything, mock.Anything).Return(nil).Once()
	ms.EXPECT().MarkAlertSent(mock.Anything, "user-w1", "w1", pollTime).Return(errors.New("conditional check failed")).Once()

	summary, err := eng.RunPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.AlertsSent)
	assert.Equal(t, 1, summary.Errors)
	assert.Zero(t, summary.Successful)
}

func TestRunPoll_CredentialsNotConfiguredAborts(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	eng := newTestEngine(ms, mf, notifyMocks.NewMockNotifier(t))

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).
		Return([]domain.Watch{testWatch("a"), testWatch("b")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).
		Return(nil, fmt.Errorf("getting auth token: %w", amadeus.ErrCredentialsNotConfigured)).Once()

	summary, err := eng.RunPoll(context.Background())
	require.ErrorIs(t, err, amadeus.ErrCredentialsNotConfigured)
	require.NotNil(t, summary)
	assert.Equal(t, "Price polling aborted", summary.Message)
	assert.Equal(t, 1, summary.WatchesProcessed)
	assert.Equal(t, 1, summary.Errors)
}

func TestRunPoll_InProgress(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(
		storeMocks.NewMockStore(t),
		amadeusMocks.NewMockFareClient(t),
		notifyMocks.NewMockNotifier(t),
	)

	eng.running.Lock()
	defer eng.running.Unlock()

	_, err := eng.RunPoll(context.Background())
	require.ErrorIs(t, err, ErrPollInProgress)
}

func TestRunPoll_ContextCanceledDuringDelay(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	mf := amadeusMocks.NewMockFareClient(t)
	eng := newTestEngine(ms, mf, notifyMocks.NewMockNotifier(t), WithWatchDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())

	ms.EXPECT().ListActiveWatches(mock.Anything, pollTime).
		Return([]domain.Watch{testWatch("a"), testWatch("b")}, nil).Once()
	mf.EXPECT().GetFarePrice(mock.Anything, mock.MatchedBy(isWatch("a"))).
		RunAndReturn(func(context.Context, *domain.Watch) (*domain.PriceResult, error) {
			cancel()
			return nil, nil
		}).Once()

	summary, err := eng.RunPoll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "Price polling interrupted", summary.Message)
	assert.Equal(t, 1, summary.WatchesProcessed)
}

func TestRunSnapshotReap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deleted int64
		err     error
	}{
		{name: "deletes expired", deleted: 12},
		{name: "native expiry reports zero"},
		{name: "store error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().DeleteExpiredSnapshots(mock.Anything, pollTime).Return(tt.deleted, tt.err).Once()

			eng := newTestEngine(ms, amadeusMocks.NewMockFareClient(t), notifyMocks.NewMockNotifier(t))
			n, err := eng.RunSnapshotReap(context.Background())

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.deleted, n)
		})
	}
}

func isWatch(id string) func(*domain.Watch) bool {
	return func(w *domain.Watch) bool { return w.WatchID == id }
}
