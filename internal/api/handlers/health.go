// Package handlers implements HTTP handlers for the faredrop API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	"github.com/venkatadeepikapotu/faredrop-tracker/pkg/logger"
)

const defaultReadyTimeout = 2 * time.Second

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	store        store.Store
	log          *slog.Logger
	version      string
	readyTimeout time.Duration
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithHealthLogger sets the logger used for failed readiness checks.
func WithHealthLogger(l *slog.Logger) HealthOption {
	return func(h *HealthHandler) {
		h.log = l
	}
}

// WithVersion reports version from the liveness endpoint.
func WithVersion(v string) HealthOption {
	return func(h *HealthHandler) {
		h.version = v
	}
}

// WithReadyTimeout bounds the store ping behind /readyz.
func WithReadyTimeout(d time.Duration) HealthOption {
	return func(h *HealthHandler) {
		if d > 0 {
			h.readyTimeout = d
		}
	}
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		store:        s,
		log:          logger.Discard(),
		readyTimeout: defaultReadyTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz returns 200 while the process is running.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok", Version: h.version})
}

// Readyz returns 200 if the store answers a ping within the ready timeout,
// 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}
