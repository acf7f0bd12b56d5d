// Package api assembles the HTTP server: Echo for transport and operational
// routes, Huma for the documented watch API under /api/v1.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/api/handlers"
	mw "github.com/venkatadeepikapotu/faredrop-tracker/internal/api/middleware"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/auth"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
)

// APIPrefix is the versioned base path of the authenticated API.
const APIPrefix = "/api/v1/"

// RouterConfig carries the collaborators the HTTP server needs.
type RouterConfig struct {
	Store         store.Store
	Authenticator auth.Authenticator
	Logger        *slog.Logger
	CORS          mw.CORSOptions

	// RateLimiter backs the quota endpoint. Optional.
	RateLimiter *amadeus.RateLimiter
	// Poller enables POST /api/v1/poll when set.
	Poller handlers.Poller

	HistoryRequiresOwner bool
	Version              string
}

// NewRouter builds the Echo server with every route and middleware attached.
func NewRouter(cfg RouterConfig) *echo.Echo {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = jsonErrorHandler(log)

	e.Pre(mw.CORS(cfg.CORS))
	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(log))
	e.Use(mw.Metrics())
	e.Use(mw.Auth(cfg.Authenticator, log, APIPrefix))

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	health := handlers.NewHealthHandler(cfg.Store,
		handlers.WithHealthLogger(log),
		handlers.WithVersion(version),
	)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, handlers.NewAPIConfig("FareDrop Tracker API", version))

	handlers.RegisterWatchRoutes(humaAPI, handlers.NewWatchHandler(cfg.Store, handlers.WithWatchLogger(log)))
	handlers.RegisterHistoryRoutes(humaAPI, handlers.NewHistoryHandler(cfg.Store, log, cfg.HistoryRequiresOwner))
	handlers.RegisterQuotaRoutes(humaAPI, handlers.NewQuotaHandler(cfg.RateLimiter))
	if cfg.Poller != nil {
		handlers.RegisterTriggerRoutes(humaAPI, handlers.NewPollHandler(cfg.Poller, log))
	}

	return e
}

// jsonErrorHandler renders Echo-level errors (unknown routes, methods) with
// the same {"error": ...} body the API uses.
func jsonErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				msg = m
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, map[string]string{"error": msg})
	}
}
