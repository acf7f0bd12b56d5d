package amadeus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const quotaWindow = 24 * time.Hour

// ErrDailyLimitReached is returned when the daily API call limit has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// Usage is a point-in-time view of the daily quota.
type Usage struct {
	Limit     int64 // 0 when uncapped
	Used      int64
	Remaining int64 // -1 when uncapped
	ResetAt   time.Time
}

// RateLimiter paces quote requests with a token bucket and caps them with a
// rolling 24-hour quota shared by every caller.
type RateLimiter struct {
	pace  *rate.Limiter
	limit int64
	now   func() time.Time

	mu      sync.Mutex
	used    int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the clock used for the daily window.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.now = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond calls with the given
// burst and at most maxDaily calls per window. A non-positive maxDaily
// disables the cap.
func NewRateLimiter(perSecond float64, burst int, maxDaily int64, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		pace:  rate.NewLimiter(rate.Limit(perSecond), burst),
		limit: max(maxDaily, 0),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.now().Add(quotaWindow)
	return r
}

// Wait reserves one call from the daily quota and then blocks until the
// token bucket admits it. The reservation is returned if ctx ends first.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserve(); err != nil {
		return err
	}
	if err := r.pace.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Usage reports the current window.
func (r *RateLimiter) Usage() Usage {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()

	u := Usage{Limit: r.limit, Used: r.used, Remaining: -1, ResetAt: r.resetAt}
	if r.limit > 0 {
		u.Remaining = max(r.limit-r.used, 0)
	}
	return u
}

func (r *RateLimiter) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()

	if r.limit > 0 && r.used >= r.limit {
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, r.used, r.limit)
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used > 0 {
		r.used--
	}
}

func (r *RateLimiter) rollLocked() {
	if now := r.now(); now.After(r.resetAt) {
		r.used = 0
		r.resetAt = now.Add(quotaWindow)
	}
}
