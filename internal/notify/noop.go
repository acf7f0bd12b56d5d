package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier stands in when no channel is enabled. Alerts are written to
// the log so a triggered threshold is still visible.
type NoOpNotifier struct {
	log *slog.Logger
}

func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

func (n *NoOpNotifier) SendAlert(_ context.Context, alert *AlertPayload) error {
	n.log.Info("price drop alert (no channel enabled)",
		"watch_id", alert.WatchID,
		"user_id", alert.UserID,
		"subject", Subject(alert),
		"savings", alert.Savings().StringFixed(2),
	)
	return nil
}
