package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORSOptions is the cross-origin policy applied to every response.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// CORS returns Echo middleware that applies the policy to every response and
// answers any OPTIONS request with 200 without reaching the router. Register
// it with e.Pre so it runs ahead of authentication.
func CORS(opts CORSOptions) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:       opts.AllowedOrigins,
		AllowedMethods:       opts.AllowedMethods,
		AllowedHeaders:       opts.AllowedHeaders,
		AllowCredentials:     opts.AllowCredentials,
		OptionsSuccessStatus: http.StatusOK,
	})
	wrap := echo.WrapMiddleware(c.Handler)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return wrap(func(ec echo.Context) error {
			if ec.Request().Method == http.MethodOptions {
				return ec.NoContent(http.StatusOK)
			}
			return next(ec)
		})
	}
}
