package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/shopspring/decimal"
)

const (
	colorGreen = 0x2ECC71 // savings of 20% or more
	colorBlue  = 0x3498DB

	maxRetryAfter = 30 * time.Second
)

var twentyPercent = decimal.NewFromFloat(0.2)

// WebhookError is returned when Discord answers with a non-2xx status.
type WebhookError struct {
	StatusCode int
	RetryAfter time.Duration
	Body       string
}

func (e *WebhookError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("discord rate limited (429), retry after %s", e.RetryAfter)
	}
	if e.Body == "" {
		return fmt.Sprintf("discord returned %d", e.StatusCode)
	}
	return fmt.Sprintf("discord returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the request may succeed if sent again.
func (e *WebhookError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// DiscordNotifier posts alerts as embeds to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	username   string
	client     *http.Client
	attempts   uint
	retryDelay time.Duration
	log        *slog.Logger
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithUsername overrides the webhook's default display name.
func WithUsername(name string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.username = name
	}
}

// WithDiscordRetry sets the delivery attempts and the backoff used when
// Discord does not send Retry-After.
func WithDiscordRetry(attempts uint, delay time.Duration) DiscordOption {
	return func(d *DiscordNotifier) {
		if attempts > 0 {
			d.attempts = attempts
		}
		if delay > 0 {
			d.retryDelay = delay
		}
	}
}

// WithDiscordLogger sets the logger.
func WithDiscordLogger(l *slog.Logger) DiscordOption {
	return func(d *DiscordNotifier) {
		d.log = l
	}
}

// NewDiscordNotifier creates a notifier posting to webhookURL.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
		attempts:   3,
		retryDelay: time.Second,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type webhookMessage struct {
	Username string         `json:"username,omitempty"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string       `json:"title"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color"`
	Description string       `json:"description,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendAlert posts the alert, retrying rate-limited and server-side failures.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *AlertPayload) error {
	body, err := json.Marshal(webhookMessage{
		Username: d.username,
		Embeds:   []discordEmbed{alertEmbed(alert)},
	})
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	err = retry.Do(
		func() error { return d.post(ctx, body) },
		retry.Attempts(d.attempts),
		retry.Delay(d.retryDelay),
		retry.MaxDelay(maxRetryAfter),
		retry.DelayType(retryAfterDelay),
		retry.RetryIf(isTemporaryWebhookError),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			d.log.Warn("retrying discord webhook", "watch_id", alert.WatchID, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return err
	}

	d.log.Debug("discord alert posted", "watch_id", alert.WatchID)
	return nil
}

func alertEmbed(alert *AlertPayload) discordEmbed {
	money := func(v decimal.Decimal) string {
		return alert.Currency + " " + v.StringFixed(2)
	}

	fields := []embedField{{Name: "Departure", Value: alert.DepartureDate, Inline: true}}
	if alert.ReturnDate != "" {
		fields = append(fields, embedField{Name: "Return", Value: alert.ReturnDate, Inline: true})
	}
	fields = append(fields,
		embedField{Name: "Price", Value: money(alert.Price), Inline: true},
		embedField{Name: "Target", Value: money(alert.Threshold), Inline: true},
		embedField{Name: "Savings", Value: money(alert.Savings()), Inline: true},
	)

	return discordEmbed{
		Title:       "Price Drop: " + alert.Route(),
		URL:         alert.BookingURL,
		Color:       savingsColor(alert),
		Description: "Book now: " + alert.BookingURL,
		Fields:      fields,
	}
}

func savingsColor(alert *AlertPayload) int {
	if alert.Threshold.IsPositive() &&
		alert.Savings().Div(alert.Threshold).Cmp(twentyPercent) >= 0 {
		return colorGreen
	}
	return colorBlue
}

func (d *DiscordNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return retry.Unrecoverable(fmt.Errorf("creating discord request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	whErr := &WebhookError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		whErr.Body = string(bytes.TrimSpace(b))
	}
	return whErr
}

// parseRetryAfter reads Discord's Retry-After header, which is given in
// seconds and may be fractional.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs*float64(time.Second)), maxRetryAfter)
}

func isTemporaryWebhookError(err error) bool {
	var whErr *WebhookError
	if errors.As(err, &whErr) {
		return whErr.Temporary()
	}
	// transport errors
	return true
}

func retryAfterDelay(n uint, err error, cfg *retry.Config) time.Duration {
	var whErr *WebhookError
	if errors.As(err, &whErr) && whErr.RetryAfter > 0 {
		return whErr.RetryAfter
	}
	return retry.BackOffDelay(n, err, cfg)
}
