package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

const (
	defaultOffersURL     = "https://test.api.amadeus.com/v2/shopping/flight-offers"
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
	maxOffersBody        = 4 << 20
	tracerName           = "github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
)

// statusError carries a non-2xx status that is worth retrying.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("amadeus API returned status %d", e.code)
}

// tokenInvalidator is implemented by token providers that can drop a token
// the API has rejected.
type tokenInvalidator interface {
	Invalidate()
}

// OffersClient implements FareClient using the flight-offers search API.
type OffersClient struct {
	tokens      TokenProvider
	offersURL   string
	client      *http.Client
	rateLimiter *RateLimiter
	attempts    uint
	retryDelay  time.Duration
	logger      *slog.Logger
	tracer      trace.Tracer
}

// OffersOption configures the OffersClient.
type OffersOption func(*OffersClient)

// WithOffersURL overrides the default flight-offers endpoint.
func WithOffersURL(u string) OffersOption {
	return func(c *OffersClient) {
		if u != "" {
			c.offersURL = u
		}
	}
}

// WithOffersHTTPClient overrides the default HTTP client.
func WithOffersHTTPClient(hc *http.Client) OffersOption {
	return func(c *OffersClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. Every request, retries included, goes through Wait first.
func WithRateLimiter(r *RateLimiter) OffersOption {
	return func(c *OffersClient) {
		c.rateLimiter = r
	}
}

// WithRetry sets how many times a transport failure, HTTP 429 or 5xx is attempted
// and the initial backoff between attempts.
func WithRetry(attempts uint, delay time.Duration) OffersOption {
	return func(c *OffersClient) {
		if attempts > 0 {
			c.attempts = attempts
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithLogger sets the logger used for skipped quotes and retries.
func WithLogger(l *slog.Logger) OffersOption {
	return func(c *OffersClient) {
		c.logger = l
	}
}

// NewOffersClient creates a new flight-offers client.
func NewOffersClient(tokens TokenProvider, opts ...OffersOption) *OffersClient {
	c := &OffersClient{
		tokens:     tokens,
		offersURL:  defaultOffersURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		attempts:   defaultRetryAttempts,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetFarePrice returns the cheapest single-adult offer for the watch's route
// and dates. It returns nil, nil when the provider answers with a non-success
// status or no offers, or when retries are exhausted on transport failures.
// Token and rate limit failures are returned as errors.
func (c *OffersClient) GetFarePrice(
	ctx context.Context,
	w *domain.Watch,
) (*domain.PriceResult, error) {
	ctx, span := c.tracer.Start(ctx, "amadeus.GetFarePrice", trace.WithAttributes(
		attribute.String("watch.id", w.WatchID),
		attribute.String("route", w.Origin+"-"+w.Destination),
		attribute.String("departure_date", w.DepartureDate),
	))
	defer span.End()

	result, err := c.getFarePrice(ctx, w)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("quote.found", result != nil))
	if result == nil {
		metrics.QuoteMissesTotal.Inc()
	}
	return result, nil
}

func (c *OffersClient) getFarePrice(
	ctx context.Context,
	w *domain.Watch,
) (*domain.PriceResult, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u := c.buildOffersURL(w)

	var (
		status   int
		body     []byte
		limitErr error
	)
	err = retry.Do(
		func() error {
			if limitErr = c.acquire(ctx); limitErr != nil {
				return retry.Unrecoverable(limitErr)
			}
			metrics.AmadeusAPICallsTotal.WithLabelValues("flight_offers").Inc()

			var doErr error
			status, body, doErr = c.do(ctx, u, token)
			if doErr != nil {
				return doErr
			}
			if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
				return &statusError{code: status}
			}
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(max(c.retryDelay/2, time.Millisecond)),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying flight offers request",
				"watch_id", w.WatchID,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
	if limitErr != nil {
		return nil, fmt.Errorf("rate limit: %w", limitErr)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("searching flight offers: %w", ctxErr)
		}
		c.logger.Warn("flight offers unavailable after retries",
			"watch_id", w.WatchID,
			"route", w.Route(),
			"error", err,
		)
		return nil, nil
	}

	if status < 200 || status > 299 {
		if inv, ok := c.tokens.(tokenInvalidator); ok && status == http.StatusUnauthorized {
			inv.Invalidate()
		}
		c.logger.Warn("amadeus API error",
			"watch_id", w.WatchID,
			"status", status,
			"body", truncate(string(body), 512),
		)
		return nil, nil
	}

	var resp offersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("unparseable flight offers response",
			"watch_id", w.WatchID,
			"error", err,
		)
		return nil, nil
	}

	return toPriceResult(resp, w.Currency)
}

// acquire takes one rate limiter slot per outgoing request.
func (c *OffersClient) acquire(ctx context.Context) error {
	if c.rateLimiter == nil {
		return nil
	}
	err := c.rateLimiter.Wait(ctx)
	if errors.Is(err, ErrDailyLimitReached) {
		metrics.AmadeusDailyLimitHits.Inc()
	}
	if err == nil {
		metrics.AmadeusDailyUsage.Set(float64(c.rateLimiter.Usage().Used))
	}
	return err
}

func (c *OffersClient) do(ctx context.Context, u, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return 0, nil, retry.Unrecoverable(fmt.Errorf("creating HTTP request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("executing offers request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOffersBody))
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *OffersClient) buildOffersURL(w *domain.Watch) string {
	params := url.Values{}
	params.Set("originLocationCode", w.Origin)
	params.Set("destinationLocationCode", w.Destination)
	params.Set("departureDate", w.DepartureDate)
	if w.ReturnDate != nil && *w.ReturnDate != "" {
		params.Set("returnDate", *w.ReturnDate)
	}
	params.Set("adults", "1")

	currency := w.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	params.Set("currencyCode", currency)
	params.Set("max", "1")

	return c.offersURL + "?" + params.Encode()
}

// toPriceResult maps the first offer's first itinerary and segment. An offer
// without itineraries or segments counts as no offer.
func toPriceResult(resp offersResponse, fallbackCurrency string) (*domain.PriceResult, error) {
	if len(resp.Data) == 0 {
		return nil, nil
	}

	offer := resp.Data[0]
	if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
		return nil, nil
	}
	first := offer.Itineraries[0]
	seg := first.Segments[0]

	price, err := decimal.NewFromString(offer.Price.Total)
	if err != nil {
		return nil, fmt.Errorf("parsing offer price %q: %w", offer.Price.Total, err)
	}

	currency := offer.Price.Currency
	if currency == "" {
		currency = fallbackCurrency
	}

	return &domain.PriceResult{
		Price:    price.InexactFloat64(),
		Currency: currency,
		Source:   Source,
		FlightDetails: domain.FlightDetails{
			Airline:      seg.CarrierCode,
			FlightNumber: seg.CarrierCode + seg.Number,
			Duration:     first.Duration,
			Stops:        len(first.Segments) - 1,
		},
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
