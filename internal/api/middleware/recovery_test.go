package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		path       string
		requestID  string
		handler    echo.HandlerFunc
		wantStatus int
		wantBody   string
		wantLog    []string
	}{
		{
			name:   "no panic passes through silently",
			method: http.MethodGet,
			path:   "/api/v1/watches",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:   "string panic becomes 500 with error body",
			method: http.MethodGet,
			path:   "/api/v1/watches/w-1",
			handler: func(echo.Context) error {
				panic("nil watch")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
			wantLog:    []string{"panic recovered", "nil watch", "path=/api/v1/watches/w-1"},
		},
		{
			name:   "non-string panic value",
			method: http.MethodPost,
			path:   "/api/v1/poll",
			handler: func(echo.Context) error {
				panic(42)
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"error=42", "method=POST"},
		},
		{
			name:      "request id included in log",
			method:    http.MethodDelete,
			path:      "/api/v1/watches/w-2",
			requestID: "req-abc",
			handler: func(echo.Context) error {
				panic("boom")
			},
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"request_id=req-abc"},
		},
		{
			name:   "committed response is left alone",
			method: http.MethodGet,
			path:   "/api/v1/watches",
			handler: func(c echo.Context) error {
				if err := c.String(http.StatusAccepted, "partial"); err != nil {
					return err
				}
				panic("after write")
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "partial",
			wantLog:    []string{"after write"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.requestID != "" {
				c.Set("request_id", tt.requestID)
			}

			err := Recovery(logger)(tt.handler)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, string(bytes.TrimSpace(rec.Body.Bytes())))
			}

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
			}
			for _, want := range tt.wantLog {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestRecovery_AbortHandlerPropagates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := Recovery(slog.New(slog.NewTextHandler(&buf, nil)))(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", http.NoBody), httptest.NewRecorder())
	assert.PanicsWithError(t, http.ErrAbortHandler.Error(), func() { _ = h(c) })
	assert.Empty(t, buf.String())
}
