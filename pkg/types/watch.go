package domain

import (
	"strings"
	"time"
)

// CreateWatchRequest holds the caller-supplied fields for a new watch.
type CreateWatchRequest struct {
	Origin         string
	Destination    string
	DepartureDate  string
	ReturnDate     *string
	PriceThreshold *float64
	Currency       string
}

// Validate checks presence first, so a request with missing fields reports
// all of them at once, then checks field formats.
func (r *CreateWatchRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.DepartureDate) == "" {
		missing = append(missing, "departureDate")
	}
	if r.PriceThreshold == nil || *r.PriceThreshold <= 0 {
		missing = append(missing, "priceThreshold")
	}
	if len(missing) > 0 {
		return &ValidationError{
			Message:  "Missing required fields",
			Required: missing,
		}
	}

	if !isLocationCode(r.Origin) {
		return &ValidationError{Message: "origin must be a 3-letter location code"}
	}
	if !isLocationCode(r.Destination) {
		return &ValidationError{Message: "destination must be a 3-letter location code"}
	}
	return validateDates(r.DepartureDate, r.ReturnDate)
}

// NewWatch validates req and builds a watch owned by userID. Location codes
// are upper-cased, currency defaults to USD, and the watch starts active with
// createdAt equal to updatedAt.
func NewWatch(userID, watchID string, req *CreateWatchRequest, now time.Time) (*Watch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Watch{
		WatchID:        watchID,
		UserID:         userID,
		Origin:         strings.ToUpper(strings.TrimSpace(req.Origin)),
		Destination:    strings.ToUpper(strings.TrimSpace(req.Destination)),
		DepartureDate:  strings.TrimSpace(req.DepartureDate),
		ReturnDate:     trimmed(req.ReturnDate),
		PriceThreshold: *req.PriceThreshold,
		Currency:       currency,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// WatchPatch carries the fields an update may change. Nil fields are left
// untouched.
type WatchPatch struct {
	PriceThreshold *float64 `json:"priceThreshold,omitempty"`
	DepartureDate  *string  `json:"departureDate,omitempty"`
	ReturnDate     *string  `json:"returnDate,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *WatchPatch) Empty() bool {
	return p.PriceThreshold == nil && p.DepartureDate == nil &&
		p.ReturnDate == nil && p.IsActive == nil
}

// Normalize trims the date fields in place so the stored values match what
// Validate checked.
func (p *WatchPatch) Normalize() {
	for _, f := range []*string{p.DepartureDate, p.ReturnDate} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Validate normalizes the patch, then rejects empty patches, non-positive
// thresholds and malformed dates. An empty returnDate is malformed: the
// stores cannot clear it. A return date is only checked against a departure
// date carried in the same patch.
func (p *WatchPatch) Validate() error {
	p.Normalize()
	if p.Empty() {
		return &ValidationError{Message: "no fields to update"}
	}
	if p.PriceThreshold != nil && *p.PriceThreshold <= 0 {
		return &ValidationError{Message: "priceThreshold must be a positive number"}
	}
	if p.ReturnDate != nil && *p.ReturnDate == "" {
		return &ValidationError{Message: "returnDate must be formatted YYYY-MM-DD"}
	}
	if p.DepartureDate != nil {
		return validateDates(*p.DepartureDate, p.ReturnDate)
	}
	if p.ReturnDate != nil {
		if _, err := time.Parse(DateLayout, *p.ReturnDate); err != nil {
			return &ValidationError{Message: "returnDate must be formatted YYYY-MM-DD"}
		}
	}
	return nil
}

// FormatDate renders t as a calendar date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func validateDates(departure string, ret *string) error {
	dep, err := time.Parse(DateLayout, strings.TrimSpace(departure))
	if err != nil {
		return &ValidationError{Message: "departureDate must be formatted YYYY-MM-DD"}
	}
	if ret == nil || strings.TrimSpace(*ret) == "" {
		return nil
	}
	rd, err := time.Parse(DateLayout, strings.TrimSpace(*ret))
	if err != nil {
		return &ValidationError{Message: "returnDate must be formatted YYYY-MM-DD"}
	}
	if rd.Before(dep) {
		return &ValidationError{Message: "returnDate must not be before departureDate"}
	}
	return nil
}

func isLocationCode(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
