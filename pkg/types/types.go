// Package domain defines the core business types for the fare drop tracker.
package domain

import "time"

// DateLayout is the calendar-date format used for departure and return dates.
const DateLayout = "2006-01-02"

// DefaultCurrency is applied to watches created without a currency.
const DefaultCurrency = "USD"

// Watch is a user's standing request to monitor a route and date for a
// price drop below a threshold.
type Watch struct {
	WatchID        string  `json:"watchId"`
	UserID         string  `json:"userId"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	DepartureDate  string  `json:"departureDate"`
	ReturnDate     *string `json:"returnDate,omitempty"`
	PriceThreshold float64 `json:"priceThreshold"`
	Currency       string  `json:"currency"`
	IsActive       bool    `json:"isActive"`

	// Maintained by the polling engine.
	LastPrice     *float64   `json:"lastPrice,omitempty"`
	LastCheckedAt *time.Time `json:"lastCheckedAt,omitempty"`
	LastAlertSent *time.Time `json:"lastAlertSent,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Route returns the watch's route in "ORIGIN → DESTINATION" form.
func (w *Watch) Route() string {
	return w.Origin + " → " + w.Destination
}

// FlightDetails describes the itinerary behind a quoted price.
type FlightDetails struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Duration     string `json:"duration"`
	Stops        int    `json:"stops"`
}

// PriceResult is a normalized fare quote returned by a quote provider.
type PriceResult struct {
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	Source        string        `json:"source"`
	FlightDetails FlightDetails `json:"flightDetails"`
}

// PriceSnapshot is one recorded price observation for a watch. Snapshots are
// append-only and expire after a retention window.
type PriceSnapshot struct {
	WatchID       string        `json:"watchId"`
	Timestamp     time.Time     `json:"timestamp"`
	Price         float64       `json:"price"`
	Currency      string        `json:"currency"`
	Source        string        `json:"source"`
	FlightDetails FlightDetails `json:"flightDetails"`
	ExpiresAt     time.Time     `json:"-"`
}

// NewPriceSnapshot builds the snapshot recorded for a quote observed at now.
func NewPriceSnapshot(watchID string, r *PriceResult, now time.Time, retention time.Duration) *PriceSnapshot {
	return &PriceSnapshot{
		WatchID:       watchID,
		Timestamp:     now,
		Price:         r.Price,
		Currency:      r.Currency,
		Source:        r.Source,
		FlightDetails: r.FlightDetails,
		ExpiresAt:     now.Add(retention),
	}
}

// PollSummary describes the outcome of one polling run. It is reported for
// observability and never persisted.
type PollSummary struct {
	Message          string    `json:"message"`
	WatchesProcessed int       `json:"watchesProcessed"`
	Successful       int       `json:"successful"`
	Errors           int       `json:"errors"`
	AlertsSent       int       `json:"alertsSent"`
	NoQuote          int       `json:"noQuote"`
	StartedAt        time.Time `json:"startedAt"`
	CompletedAt      time.Time `json:"completedAt"`
}
