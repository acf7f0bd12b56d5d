package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
)

const (
	jobPoll = "poll"
	jobReap = "snapshot-reap"
)

// Scheduler runs polling and snapshot reaping on fixed intervals. Each job
// takes a store-level lock so only one instance runs it at a time.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	store   store.Store
	log     *slog.Logger
	holder  string
	lockTTL time.Duration

	pollEntryID cron.EntryID
	reapEntryID cron.EntryID
}

// NewScheduler creates a Scheduler. A zero reapInterval disables reaping.
func NewScheduler(
	eng *Engine,
	s store.Store,
	pollInterval time.Duration,
	reapInterval time.Duration,
	lockTTL time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	sched := &Scheduler{
		cron:    c,
		engine:  eng,
		store:   s,
		log:     log,
		holder:  lockHolder(),
		lockTTL: lockTTL,
	}

	id, err := c.AddFunc("@every "+pollInterval.String(), sched.runPoll)
	if err != nil {
		return nil, fmt.Errorf("scheduling poll: %w", err)
	}
	sched.pollEntryID = id

	if reapInterval > 0 {
		id, err = c.AddFunc("@every "+reapInterval.String(), sched.runReap)
		if err != nil {
			return nil, fmt.Errorf("scheduling snapshot reap: %w", err)
		}
		sched.reapEntryID = id
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "holder", s.holder)
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next poll time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	next := s.cron.Entry(s.pollEntryID).Next
	if !next.IsZero() {
		metrics.SchedulerNextPollTimestamp.Set(float64(next.Unix()))
	}
}

func (s *Scheduler) runPoll() {
	defer s.SyncNextRunTimestamps()

	err := s.runJob(context.Background(), jobPoll, s.lockTTL, func(ctx context.Context) error {
		summary, err := s.engine.RunPoll(ctx)
		if err != nil {
			return err
		}
		s.log.Info("scheduled poll finished",
			"processed", summary.WatchesProcessed,
			"errors", summary.Errors,
			"alerts_sent", summary.AlertsSent,
		)
		return nil
	})
	if err != nil {
		s.log.Error("scheduled poll failed", "error", err)
	}
}

func (s *Scheduler) runReap() {
	err := s.runJob(context.Background(), jobReap, s.lockTTL, func(ctx context.Context) error {
		_, err := s.engine.RunSnapshotReap(ctx)
		return err
	})
	if err != nil {
		s.log.Error("scheduled snapshot reap failed", "error", err)
	}
}

// runJob runs fn while holding the store lock for name. It returns nil
// without running fn when another holder owns the lock.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	ttl time.Duration,
	fn func(context.Context) error,
) error {
	acquired, err := s.store.AcquireSchedulerLock(ctx, name, s.holder, ttl)
	if err != nil {
		return fmt.Errorf("acquiring lock for %s: %w", name, err)
	}
	if !acquired {
		s.log.Info("job locked by another instance, skipping", "job", name)
		if name == jobPoll {
			metrics.PollRunsTotal.WithLabelValues("skipped").Inc()
		}
		return nil
	}
	defer func() {
		if err := s.store.ReleaseSchedulerLock(context.WithoutCancel(ctx), name, s.holder); err != nil {
			s.log.Warn("releasing scheduler lock", "job", name, "error", err)
		}
	}()

	jobCtx := ctx
	if ttl > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, ttl)
		defer cancel()
	}

	return fn(jobCtx)
}

func lockHolder() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "faredrop"
	}
	return host + "-" + uuid.NewString()
}
