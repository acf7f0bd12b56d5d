// Package engine runs the price polling pipeline: scan active watches, quote
// each one, record a snapshot, update the watch and alert on price drops.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/notify"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const (
	defaultWatchDelay        = 500 * time.Millisecond
	defaultAlertCooldown     = 24 * time.Hour
	defaultSnapshotRetention = 7 * 24 * time.Hour

	tracerName = "github.com/venkatadeepikapotu/faredrop-tracker/internal/engine"
)

// ErrPollInProgress is returned when RunPoll is called while another run in
// the same process has not finished.
var ErrPollInProgress = errors.New("poll already in progress")

// Engine orchestrates the polling of active watches.
type Engine struct {
	store    store.Store
	fares    amadeus.FareClient
	notifier notify.Notifier
	log      *slog.Logger
	tracer   trace.Tracer

	watchDelay     time.Duration
	cooldown       time.Duration
	retention      time.Duration
	bookingBaseURL string
	nowFunc        func() time.Time

	running sync.Mutex
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	f amadeus.FareClient,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:          s,
		fares:          f,
		notifier:       n,
		log:            slog.Default(),
		tracer:         otel.Tracer(tracerName),
		watchDelay:     defaultWatchDelay,
		cooldown:       defaultAlertCooldown,
		retention:      defaultSnapshotRetention,
		bookingBaseURL: notify.DefaultBookingBaseURL,
		nowFunc:        time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithWatchDelay sets the pause between consecutive watches.
func WithWatchDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.watchDelay = d
	}
}

// WithAlertCooldown sets the minimum interval between two alerts for the
// same watch.
func WithAlertCooldown(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.cooldown = d
		}
	}
}

// WithSnapshotRetention sets how long recorded snapshots are kept.
func WithSnapshotRetention(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.retention = d
		}
	}
}

// WithBookingBaseURL sets the flight search page linked from alerts.
func WithBookingBaseURL(u string) EngineOption {
	return func(e *Engine) {
		if u != "" {
			e.bookingBaseURL = u
		}
	}
}

// WithNowFunc overrides the clock for testing.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// watchOutcome is what processing one watch produced.
type watchOutcome struct {
	noQuote bool
	alerted bool
}

// RunPoll executes one polling pass over every active watch. Per-watch
// failures are logged and counted. Failing to list active watches, missing
// provider credentials and context cancellation abort the run.
func (eng *Engine) RunPoll(ctx context.Context) (*domain.PollSummary, error) {
	if !eng.running.TryLock() {
		metrics.PollRunsTotal.WithLabelValues("skipped").Inc()
		return nil, ErrPollInProgress
	}
	defer eng.running.Unlock()

	ctx, span := eng.tracer.Start(ctx, "engine.RunPoll")
	defer span.End()

	began := time.Now()
	defer func() {
		metrics.PollDuration.Observe(time.Since(began).Seconds())
	}()

	start := eng.nowFunc()
	summary := &domain.PollSummary{StartedAt: start}

	watches, err := eng.store.ListActiveWatches(ctx, start)
	if err != nil {
		eng.failRun(span, err)
		return nil, fmt.Errorf("listing active watches: %w", err)
	}

	eng.log.Info("polling active watches", "count", len(watches))
	span.SetAttributes(attribute.Int("watches", len(watches)))

	if len(watches) == 0 {
		summary.Message = "No active watches to poll"
		summary.CompletedAt = eng.nowFunc()
		metrics.PollRunsTotal.WithLabelValues("success").Inc()
		return summary, nil
	}

	for i := range watches {
		if err := ctx.Err(); err != nil {
			eng.failRun(span, err)
			return eng.finish(summary, "Price polling interrupted"), err
		}

		w := &watches[i]
		summary.WatchesProcessed++
		metrics.PollWatchesTotal.Inc()

		outcome, err := eng.processWatch(ctx, w)
		if outcome.alerted {
			summary.AlertsSent++
		}
		switch {
		case errors.Is(err, amadeus.ErrCredentialsNotConfigured):
			summary.Errors++
			eng.failRun(span, err)
			return eng.finish(summary, "Price polling aborted"), fmt.Errorf("polling watch %s: %w", w.WatchID, err)
		case err != nil:
			summary.Errors++
			metrics.PollErrorsTotal.Inc()
			eng.log.Error("failed to process watch",
				"watch_id", w.WatchID,
				"route", w.Route(),
				"error", err,
			)
		default:
			summary.Successful++
			if outcome.noQuote {
				summary.NoQuote++
			}
		}

		if i < len(watches)-1 && eng.watchDelay > 0 {
			select {
			case <-ctx.Done():
				eng.failRun(span, ctx.Err())
				return eng.finish(summary, "Price polling interrupted"), ctx.Err()
			case <-time.After(eng.watchDelay):
			}
		}
	}

	eng.finish(summary, "Price polling completed")
	metrics.PollRunsTotal.WithLabelValues("success").Inc()

	eng.log.Info("polling complete",
		"processed", summary.WatchesProcessed,
		"successful", summary.Successful,
		"errors", summary.Errors,
		"no_quote", summary.NoQuote,
		"alerts_sent", summary.AlertsSent,
	)
	span.SetAttributes(
		attribute.Int("successful", summary.Successful),
		attribute.Int("errors", summary.Errors),
		attribute.Int("alerts_sent", summary.AlertsSent),
	)

	return summary, nil
}

func (eng *Engine) finish(summary *domain.PollSummary, msg string) *domain.PollSummary {
	summary.Message = msg
	summary.CompletedAt = eng.nowFunc()
	return summary
}

func (eng *Engine) failRun(span trace.Span, err error) {
	metrics.PollRunsTotal.WithLabelValues("failed").Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (eng *Engine) processWatch(ctx context.Context, w *domain.Watch) (watchOutcome, error) {
	ctx, span := eng.tracer.Start(ctx, "engine.processWatch", trace.WithAttributes(
		attribute.String("watch.id", w.WatchID),
		attribute.String("route", w.Origin+"-"+w.Destination),
	))
	defer span.End()

	log := eng.log.With("watch_id", w.WatchID, "route", w.Route())

	result, err := eng.fares.GetFarePrice(ctx, w)
	if err != nil {
		span.RecordError(err)
		return watchOutcome{}, fmt.Errorf("getting fare price: %w", err)
	}
	if result == nil {
		log.Info("no price found")
		return watchOutcome{noQuote: true}, nil
	}

	now := eng.nowFunc()
	log.Info("price found", "price", result.Price, "currency", result.Currency)
	span.SetAttributes(attribute.Float64("price", result.Price))

	snap := domain.NewPriceSnapshot(w.WatchID, result, now, eng.retention)
	if err := eng.store.RecordSnapshot(ctx, snap); err != nil {
		return watchOutcome{}, fmt.Errorf("recording snapshot: %w", err)
	}
	metrics.SnapshotsRecordedTotal.Inc()

	if err := eng.store.ApplyPollResult(ctx, w.UserID, w.WatchID, result.Price, now); err != nil {
		return watchOutcome{}, fmt.Errorf("updating watch price: %w", err)
	}

	if result.Price > w.PriceThreshold {
		log.Debug("price above threshold", "price", result.Price, "threshold", w.PriceThreshold)
		return watchOutcome{}, nil
	}

	return eng.maybeAlert(ctx, w, result.Price, now)
}
