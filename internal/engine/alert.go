package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/notify"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// alertDue reports whether a watch whose last alert went out at lastSent may
// alert again at now. A watch that never alerted is always due.
func alertDue(lastSent *time.Time, now time.Time, cooldown time.Duration) bool {
	if lastSent == nil {
		return true
	}
	return now.Sub(*lastSent) > cooldown
}

// maybeAlert sends a price drop alert unless the watch is in cooldown, and
// stamps lastAlertSent only after a successful delivery.
func (eng *Engine) maybeAlert(
	ctx context.Context,
	w *domain.Watch,
	price float64,
	now time.Time,
) (watchOutcome, error) {
	log := eng.log.With("watch_id", w.WatchID, "route", w.Route())

	if !alertDue(w.LastAlertSent, now, eng.cooldown) {
		metrics.AlertsSuppressedTotal.Inc()
		log.Debug("alert cooldown active",
			"last_alert_sent", w.LastAlertSent,
			"hours_since", now.Sub(*w.LastAlertSent).Hours(),
		)
		return watchOutcome{}, nil
	}

	if !eng.sendPriceDropAlert(ctx, w, price) {
		return watchOutcome{}, nil
	}

	if err := eng.store.MarkAlertSent(ctx, w.UserID, w.WatchID, now); err != nil {
		return watchOutcome{alerted: true}, fmt.Errorf("marking alert sent: %w", err)
	}
	return watchOutcome{alerted: true}, nil
}

// sendPriceDropAlert renders and delivers the alert. Delivery failures are
// logged and reported as false; they never fail the watch.
func (eng *Engine) sendPriceDropAlert(ctx context.Context, w *domain.Watch, price float64) bool {
	alert := notify.NewAlertPayload(w, price, eng.bookingBaseURL)

	if err := eng.notifier.SendAlert(ctx, alert); err != nil {
		eng.log.Warn("price drop alert not delivered",
			"watch_id", w.WatchID,
			"user_id", w.UserID,
			"price", price,
			"error", err,
		)
		return false
	}

	metrics.AlertsSentTotal.Inc()
	eng.log.Info("price drop alert sent",
		"watch_id", w.WatchID,
		"user_id", w.UserID,
		"price", price,
		"threshold", w.PriceThreshold,
		"savings", alert.Savings().StringFixed(2),
	)
	return true
}
