package store

import (
	"fmt"
	"time"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// watchItem is the DynamoDB representation of a watch. isActive is stored as
// the string "true" or "false" because it is the partition key of the
// active-watches GSI.
type watchItem struct {
	UserID         string   `dynamodbav:"userId"`
	WatchID        string   `dynamodbav:"watchId"`
	Origin         string   `dynamodbav:"origin"`
	Destination    string   `dynamodbav:"destination"`
	DepartureDate  string   `dynamodbav:"departureDate"`
	ReturnDate     *string  `dynamodbav:"returnDate,omitempty"`
	PriceThreshold float64  `dynamodbav:"priceThreshold"`
	Currency       string   `dynamodbav:"currency"`
	IsActive       string   `dynamodbav:"isActive"`
	LastPrice      *float64 `dynamodbav:"lastPrice,omitempty"`
	LastCheckedAt  string   `dynamodbav:"lastCheckedAt,omitempty"`
	LastAlertSent  string   `dynamodbav:"lastAlertSent,omitempty"`
	CreatedAt      string   `dynamodbav:"createdAt"`
	UpdatedAt      string   `dynamodbav:"updatedAt"`
}

type flightDetailsItem struct {
	Airline      string `dynamodbav:"airline"`
	FlightNumber string `dynamodbav:"flightNumber"`
	Duration     string `dynamodbav:"duration"`
	Stops        int    `dynamodbav:"stops"`
}

// snapshotItem is the DynamoDB representation of a price snapshot. TTL holds
// the expiry in epoch seconds for the table's time-to-live feature.
type snapshotItem struct {
	WatchID       string            `dynamodbav:"watchId"`
	Timestamp     string            `dynamodbav:"timestamp"`
	Price         float64           `dynamodbav:"price"`
	Currency      string            `dynamodbav:"currency"`
	Source        string            `dynamodbav:"source"`
	FlightDetails flightDetailsItem `dynamodbav:"flightDetails"`
	TTL           int64             `dynamodbav:"ttl"`
}

type lockItem struct {
	JobName    string `dynamodbav:"jobName"`
	LockHolder string `dynamodbav:"lockHolder"`
	ExpiresAt  int64  `dynamodbav:"expiresAt"`
}

func activeFlag(active bool) string {
	if active {
		return "true"
	}
	return "false"
}

// itemTimeLayout is fixed width so timestamps sort lexicographically as
// DynamoDB sort keys.
const itemTimeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(itemTimeLayout)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptionalTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", field, err)
	}
	return &t, nil
}

func newWatchItem(w *domain.Watch) watchItem {
	return watchItem{
		UserID:         w.UserID,
		WatchID:        w.WatchID,
		Origin:         w.Origin,
		Destination:    w.Destination,
		DepartureDate:  w.DepartureDate,
		ReturnDate:     w.ReturnDate,
		PriceThreshold: w.PriceThreshold,
		Currency:       w.Currency,
		IsActive:       activeFlag(w.IsActive),
		LastPrice:      w.LastPrice,
		LastCheckedAt:  formatOptionalTime(w.LastCheckedAt),
		LastAlertSent:  formatOptionalTime(w.LastAlertSent),
		CreatedAt:      formatTime(w.CreatedAt),
		UpdatedAt:      formatTime(w.UpdatedAt),
	}
}

func (it *watchItem) toDomain() (*domain.Watch, error) {
	w := &domain.Watch{
		WatchID:        it.WatchID,
		UserID:         it.UserID,
		Origin:         it.Origin,
		Destination:    it.Destination,
		DepartureDate:  it.DepartureDate,
		ReturnDate:     it.ReturnDate,
		PriceThreshold: it.PriceThreshold,
		Currency:       it.Currency,
		IsActive:       it.IsActive == "true",
		LastPrice:      it.LastPrice,
	}

	var err error
	if w.LastCheckedAt, err = parseOptionalTime("lastCheckedAt", it.LastCheckedAt); err != nil {
		return nil, err
	}
	if w.LastAlertSent, err = parseOptionalTime("lastAlertSent", it.LastAlertSent); err != nil {
		return nil, err
	}

	created, err := parseOptionalTime("createdAt", it.CreatedAt)
	if err != nil {
		return nil, err
	}
	if created != nil {
		w.CreatedAt = *created
	}
	updated, err := parseOptionalTime("updatedAt", it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		w.UpdatedAt = *updated
	}

	return w, nil
}

func newSnapshotItem(s *domain.PriceSnapshot) snapshotItem {
	return snapshotItem{
		WatchID:   s.WatchID,
		Timestamp: formatTime(s.Timestamp),
		Price:     s.Price,
		Currency:  s.Currency,
		Source:    s.Source,
		FlightDetails: flightDetailsItem{
			Airline:      s.FlightDetails.Airline,
			FlightNumber: s.FlightDetails.FlightNumber,
			Duration:     s.FlightDetails.Duration,
			Stops:        s.FlightDetails.Stops,
		},
		TTL: s.ExpiresAt.Unix(),
	}
}

func (it *snapshotItem) toDomain() (domain.PriceSnapshot, error) {
	ts, err := time.Parse(time.RFC3339Nano, it.Timestamp)
	if err != nil {
		return domain.PriceSnapshot{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	return domain.PriceSnapshot{
		WatchID:   it.WatchID,
		Timestamp: ts,
		Price:     it.Price,
		Currency:  it.Currency,
		Source:    it.Source,
		FlightDetails: domain.FlightDetails{
			Airline:      it.FlightDetails.Airline,
			FlightNumber: it.FlightDetails.FlightNumber,
			Duration:     it.FlightDetails.Duration,
			Stops:        it.FlightDetails.Stops,
		},
		ExpiresAt: time.Unix(it.TTL, 0).UTC(),
	}, nil
}
