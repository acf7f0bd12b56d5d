package notify

import (
	"fmt"
	"strings"
)

// Subject renders the alert's one-line summary.
func Subject(p *AlertPayload) string {
	return fmt.Sprintf("Price drop: %s now %s %s", p.Route(), p.Currency, p.Price.StringFixed(2))
}

// Body renders the plain-text alert message.
func Body(p *AlertPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Good news! The fare for %s dropped below your target.\n\n", p.Route())
	fmt.Fprintf(&b, "Departure:     %s\n", p.DepartureDate)
	if p.ReturnDate != "" {
		fmt.Fprintf(&b, "Return:        %s\n", p.ReturnDate)
	}
	fmt.Fprintf(&b, "Current price: %s %s\n", p.Currency, p.Price.StringFixed(2))
	fmt.Fprintf(&b, "Your target:   %s %s\n", p.Currency, p.Threshold.StringFixed(2))
	fmt.Fprintf(&b, "You save:      %s %s\n\n", p.Currency, p.Savings().StringFixed(2))
	fmt.Fprintf(&b, "Book now: %s\n", p.BookingURL)

	return b.String()
}
