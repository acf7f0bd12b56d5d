// Package amadeus provides a fare quote client for the Amadeus self-service
// flight offers API, abstracted behind interfaces for testability.
package amadeus

import (
	"context"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// Source is recorded on every snapshot built from an Amadeus quote.
const Source = "amadeus"

// FareClient defines the interface for obtaining a current fare quote.
// A nil result with a nil error means the provider had no usable offer.
type FareClient interface {
	GetFarePrice(ctx context.Context, w *domain.Watch) (*domain.PriceResult, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
