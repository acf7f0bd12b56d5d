package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/auth"
)

// errorBody matches the JSON error model returned by the API handlers.
type errorBody struct {
	Error string `json:"error"`
}

// Auth returns Echo middleware that resolves the caller for every request
// under prefix. The user id is stored on the request context for handlers;
// requests without a valid bearer token get 401 before any handler runs.
// OPTIONS requests are never authenticated.
func Auth(a auth.Authenticator, log *slog.Logger, prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions || !strings.HasPrefix(req.URL.Path, prefix) {
				return next(c)
			}

			token, ok := auth.BearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c)
			}

			userID, err := a.Authenticate(req.Context(), token)
			if err != nil {
				log.Debug("rejected bearer token", "path", req.URL.Path, "error", err)
				return unauthorized(c)
			}

			c.SetRequest(req.WithContext(auth.WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
}
