// Package middleware provides Echo middleware for the faredrop API server.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/metrics"
)

// unmatchedRoute is the route label for requests that hit no registered
// route, so raw URLs never become label values.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route template. Probe,
// scrape and docs traffic is not counted; the two probes instead drive the
// healthz_up and readyz_up gauges.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			if isOperationalPath(p) {
				err := next(c)
				recordProbe(p, responseStatus(c, err))
				return err
			}

			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			labels := []string{c.Request().Method, route, strconv.Itoa(responseStatus(c, err))}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

func isOperationalPath(p string) bool {
	switch p {
	case "/metrics", "/healthz", "/readyz":
		return true
	}
	return p == "/docs" || strings.HasPrefix(p, "/openapi") || strings.HasPrefix(p, "/schemas/")
}

// responseStatus is the status the client will see. An error returned up the
// chain has not been rendered yet, so its status wins over the recorder's
// default 200.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func recordProbe(p string, status int) {
	up := 0.0
	if status >= 200 && status < 300 {
		up = 1
	}
	switch p {
	case "/healthz":
		metrics.HealthzUp.Set(up)
	case "/readyz":
		metrics.ReadyzUp.Set(up)
	}
}
