// Package notify defines the notification interface and implementations
// for price drop alert delivery.
package notify

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// DefaultBookingBaseURL is the flight search page linked from alerts.
const DefaultBookingBaseURL = "https://www.google.com/travel/flights"

// AlertPayload contains the data needed to send a price drop notification.
type AlertPayload struct {
	WatchID       string
	UserID        string
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string // empty for one-way
	Currency      string
	Price         decimal.Decimal
	Threshold     decimal.Decimal
	BookingURL    string
}

// NewAlertPayload builds the alert for a watch quoted at price.
func NewAlertPayload(w *domain.Watch, price float64, bookingBaseURL string) *AlertPayload {
	p := &AlertPayload{
		WatchID:       w.WatchID,
		UserID:        w.UserID,
		Origin:        w.Origin,
		Destination:   w.Destination,
		DepartureDate: w.DepartureDate,
		Currency:      w.Currency,
		Price:         decimal.NewFromFloat(price),
		Threshold:     decimal.NewFromFloat(w.PriceThreshold),
	}
	if w.ReturnDate != nil {
		p.ReturnDate = *w.ReturnDate
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	p.BookingURL = BookingURL(bookingBaseURL, p)
	return p
}

// Route returns "ORIGIN → DESTINATION".
func (p *AlertPayload) Route() string {
	return p.Origin + " → " + p.Destination
}

// Savings is threshold minus current price.
func (p *AlertPayload) Savings() decimal.Decimal {
	return p.Threshold.Sub(p.Price)
}

// BookingURL builds a flight search link for the alert's route and dates.
func BookingURL(base string, p *AlertPayload) string {
	if base == "" {
		base = DefaultBookingBaseURL
	}
	q := "Flights from " + p.Origin + " to " + p.Destination + " on " + p.DepartureDate
	if p.ReturnDate != "" {
		q += " returning " + p.ReturnDate
	}
	return base + "?" + url.Values{"q": {q}}.Encode()
}

// Notifier defines the interface for sending price drop notifications.
type Notifier interface {
	SendAlert(ctx context.Context, alert *AlertPayload) error
}
