package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.ListWatches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		wantMsg      string
		wantRequired []string
		wantNotFound bool
	}{
		{
			name:    "json error body",
			status:  http.StatusInternalServerError,
			body:    `{"error":"internal server error"}`,
			wantMsg: "internal server error",
		},
		{
			name:         "validation with required fields",
			status:       http.StatusBadRequest,
			body:         `{"error":"Missing required fields","required":["departureDate"]}`,
			wantMsg:      "Missing required fields",
			wantRequired: []string{"departureDate"},
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			body:         `{"error":"watch not found"}`,
			wantMsg:      "watch not found",
			wantNotFound: true,
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    "upstream unavailable\n",
			wantMsg: "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetWatch(context.Background(), "w1")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantRequired, apiErr.Required)
			assert.Equal(t, tt.wantNotFound, IsNotFound(err))
		})
	}
}

func TestClient_RequestHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []Option
		wantAuth  string
		wantAgent string
	}{
		{name: "defaults", wantAgent: "faredrop-client"},
		{
			name:      "token and agent",
			opts:      []Option{WithToken("secret-token"), WithUserAgent("fdt")},
			wantAuth:  "Bearer secret-token",
			wantAgent: "fdt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantAuth, r.Header.Get("Authorization"))
				assert.Equal(t, tt.wantAgent, r.Header.Get("User-Agent"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				_, _ = w.Write([]byte(`{"watches":[]}`))
			}))
			defer srv.Close()

			watches, err := New(srv.URL+"/", tt.opts...).ListWatches(context.Background())
			require.NoError(t, err)
			assert.Empty(t, watches)
		})
	}
}

func TestClient_EscapesWatchID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/watches/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteWatch(context.Background(), "a/b"))
}

func TestClient_ListWatches(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/watches", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"watches": []domain.Watch{{WatchID: "w1", Origin: "JFK", Destination: "LAX"}},
		})
	}))
	defer srv.Close()

	result, err := New(srv.URL).ListWatches(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "w1", result[0].WatchID)
}

func TestClient_CreateWatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jfk", body["origin"])
		assert.InDelta(t, 500.0, body["priceThreshold"], 0.001)
		assert.NotContains(t, body, "returnDate")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Watch{WatchID: "w-created", Origin: "JFK", IsActive: true})
	}))
	defer srv.Close()

	threshold := 500.0
	result, err := New(srv.URL).CreateWatch(context.Background(), &CreateWatchRequest{
		Origin:         "jfk",
		Destination:    "lax",
		DepartureDate:  "2099-01-01",
		PriceThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "w-created", result.WatchID)
	assert.True(t, result.IsActive)
}

func TestClient_UpdateWatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/watches/w1", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"isActive": false}, body)

		_ = json.NewEncoder(w).Encode(domain.Watch{WatchID: "w1", IsActive: false})
	}))
	defer srv.Close()

	inactive := false
	result, err := New(srv.URL).UpdateWatch(context.Background(), "w1", &domain.WatchPatch{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, result.IsActive)
}

func TestClient_DeleteWatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/watches/w1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).DeleteWatch(context.Background(), "w1"))
}

func TestClient_GetHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		limit     int
		wantQuery string
	}{
		{name: "server default", limit: 0, wantQuery: ""},
		{name: "explicit limit", limit: 10, wantQuery: "limit=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/watches/w1/history", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_, _ = w.Write([]byte(`{"snapshots":[{"watchId":"w1","price":450}],"count":1}`))
			}))
			defer srv.Close()

			h, err := New(srv.URL).GetHistory(context.Background(), "w1", tt.limit)
			require.NoError(t, err)
			assert.Equal(t, 1, h.Count)
			assert.InDelta(t, 450.0, h.Snapshots[0].Price, 0.001)
		})
	}
}

func TestClient_TriggerPoll(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/poll", r.URL.Path)
		_, _ = w.Write([]byte(`{"message":"Price polling completed","watchesProcessed":2,"alertsSent":1}`))
	}))
	defer srv.Close()

	s, err := New(srv.URL).TriggerPoll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.WatchesProcessed)
	assert.Equal(t, 1, s.AlertsSent)
}
