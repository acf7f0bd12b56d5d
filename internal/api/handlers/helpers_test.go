package handlers_test

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/api/handlers"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/auth"
)

const userHeader = "X-Test-User"

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

// newTestAPI returns a humatest API that resolves the caller from the
// X-Test-User header, standing in for the bearer auth middleware.
func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	_, api := humatest.New(t, handlers.NewAPIConfig("FareDrop Test API", "test"))
	api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
		if user := ctx.Header(userHeader); user != "" {
			ctx = huma.WithContext(ctx, auth.WithUserID(ctx.Context(), user))
		}
		next(ctx)
	})
	return api
}

func asUser(id string) string {
	return userHeader + ": " + id
}

func ptr[T any](v T) *T {
	return &v
}
