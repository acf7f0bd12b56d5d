// Package app builds the service's collaborators from configuration. The
// faredrop CLI and the faredrop-poller Lambda both start here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/api"
	mw "github.com/venkatadeepikapotu/faredrop-tracker/internal/api/middleware"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/auth"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/config"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/engine"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/telemetry"
)

// ErrNoAuthenticator is returned when neither auth.hmac_secret nor
// auth.public_key_file is configured.
var ErrNoAuthenticator = errors.New("no token verification key configured")

// App holds the wired collaborators for one process.
type App struct {
	Config      *config.Config
	Log         *slog.Logger
	Store       store.Store
	RateLimiter *amadeus.RateLimiter
	Engine      *engine.Engine

	closers []func(context.Context) error
}

// New opens the store, starts telemetry and assembles the polling engine.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, version string) (*App, error) {
	a := &App{Config: cfg, Log: log}

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}
	a.closers = append(a.closers, shutdown)

	st, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.Store = st
	a.closers = append(a.closers, func(context.Context) error {
		closeStore()
		return nil
	})

	fares, limiter := NewFareClient(cfg.Amadeus, log)
	a.RateLimiter = limiter

	notifier, err := NewNotifier(ctx, cfg.Notifications, httpClient(cfg.Amadeus.Timeout), log)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.Engine = engine.NewEngine(st, fares, notifier,
		engine.WithLogger(log),
		engine.WithWatchDelay(cfg.Schedule.WatchDelay),
		engine.WithAlertCooldown(cfg.Alerts.Cooldown),
		engine.WithSnapshotRetention(cfg.Alerts.SnapshotRetention),
		engine.WithBookingBaseURL(cfg.Alerts.BookingBaseURL),
	)

	return a, nil
}

// Close releases everything New acquired, in reverse order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	a.closers = nil
	return errors.Join(errs...)
}

// NewScheduler returns a scheduler driving the engine on the configured
// intervals.
func (a *App) NewScheduler() (*engine.Scheduler, error) {
	return engine.NewScheduler(
		a.Engine,
		a.Store,
		a.Config.Schedule.PollInterval,
		a.Config.Schedule.ReapInterval,
		a.Config.Schedule.LockTTL,
		a.Log,
	)
}

// RouterConfig returns the HTTP server configuration for this App.
func (a *App) RouterConfig(version string) (api.RouterConfig, error) {
	authn, err := NewAuthenticator(a.Config.Auth)
	if err != nil {
		return api.RouterConfig{}, err
	}

	rc := api.RouterConfig{
		Store:         a.Store,
		Authenticator: authn,
		Logger:        a.Log,
		CORS: mw.CORSOptions{
			AllowedOrigins:   a.Config.CORS.AllowedOrigins,
			AllowedMethods:   a.Config.CORS.AllowedMethods,
			AllowedHeaders:   a.Config.CORS.AllowedHeaders,
			AllowCredentials: a.Config.CORS.AllowCredentials != nil && *a.Config.CORS.AllowCredentials,
		},
		RateLimiter:          a.RateLimiter,
		HistoryRequiresOwner: a.Config.API.HistoryRequiresOwner,
		Version:              version,
	}
	if a.Config.API.EnablePollTrigger {
		rc.Poller = a.Engine
	}
	return rc, nil
}

// NewAuthenticator builds the bearer token verifier. A public key file takes
// precedence over a shared secret.
func NewAuthenticator(cfg config.AuthConfig) (auth.Authenticator, error) {
	opts := []auth.JWTOption{
		auth.WithIssuer(cfg.Issuer),
		auth.WithAudience(cfg.Audience),
		auth.WithSubjectClaim(cfg.SubjectClaim),
	}

	switch {
	case cfg.PublicKeyFile != "":
		pem, err := os.ReadFile(cfg.PublicKeyFile) //nolint:gosec // path from trusted config
		if err != nil {
			return nil, fmt.Errorf("reading public key: %w", err)
		}
		return auth.NewPublicKeyAuthenticator(pem, opts...)
	case cfg.HMACSecret != "":
		return auth.NewHMACAuthenticator([]byte(cfg.HMACSecret), opts...)
	default:
		return nil, ErrNoAuthenticator
	}
}

// NewFareClient builds the flight-offers client and the rate limiter it
// shares with the quota endpoint.
func NewFareClient(cfg config.AmadeusConfig, log *slog.Logger) (*amadeus.OffersClient, *amadeus.RateLimiter) {
	hc := httpClient(cfg.Timeout)

	tokens := amadeus.NewOAuthTokenProvider(cfg.ClientID, cfg.ClientSecret,
		amadeus.WithTokenURL(cfg.TokenURL),
		amadeus.WithHTTPClient(hc),
	)
	limiter := amadeus.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.DailyLimit)

	client := amadeus.NewOffersClient(tokens,
		amadeus.WithOffersURL(cfg.OffersURL),
		amadeus.WithOffersHTTPClient(hc),
		amadeus.WithRateLimiter(limiter),
		amadeus.WithRetry(cfg.RetryAttempts, 0),
		amadeus.WithLogger(log),
	)
	return client, limiter
}
