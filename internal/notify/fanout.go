package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
)

// Channel is a named notification target.
type Channel struct {
	Name     string
	Notifier Notifier
}

// Fanout delivers each alert to every channel. Delivery succeeds when at
// least one channel accepts the alert.
type Fanout struct {
	channels []Channel
	log      *slog.Logger
}

// NewFanout creates a Fanout over channels.
func NewFanout(log *slog.Logger, channels ...Channel) *Fanout {
	return &Fanout{channels: channels, log: log}
}

// Len returns the number of channels.
func (f *Fanout) Len() int {
	return len(f.channels)
}

// SendAlert sends alert to all channels and returns the joined errors only
// when every channel failed.
func (f *Fanout) SendAlert(ctx context.Context, alert *AlertPayload) error {
	if len(f.channels) == 0 {
		return errors.New("no notification channels configured")
	}

	var (
		errs      []error
		delivered int
	)
	for _, ch := range f.channels {
		start := time.Now()
		err := ch.Notifier.SendAlert(ctx, alert)
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.NotificationFailuresTotal.WithLabelValues(ch.Name).Inc()
			f.log.Warn("notification channel failed",
				"channel", ch.Name,
				"watch_id", alert.WatchID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return errors.Join(errs...)
	}
	return nil
}
