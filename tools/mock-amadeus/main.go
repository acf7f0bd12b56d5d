// Package main implements a mock flight-offers server for local development.
// It serves the OAuth token endpoint and a flight-offers search that answers
// with one offer per route, priced from a JSON fixture or derived from the
// route and date, so the poller can run without real provider credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type fixture struct {
	Fares       map[string]string `json:"fares"`
	Unavailable []string          `json:"unavailable"`
}

type offersResponse struct {
	Data []offer `json:"data"`
}

type offer struct {
	ID          string      `json:"id"`
	Price       price       `json:"price"`
	Itineraries []itinerary `json:"itineraries"`
}

type price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	CarrierCode string  `json:"carrierCode"`
	Number      string  `json:"number"`
	Departure   airport `json:"departure"`
	Arrival     airport `json:"arrival"`
}

type airport struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

var carriers = []string{"AA", "B6", "DL", "UA", "AF", "NH"}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-amadeus/testdata/fares.json", "path to fare fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "fares", len(fx.Fares), "unavailable", len(fx.Unavailable))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock flight-offers server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fx)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fx *fixture) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/security/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /v2/shopping/flight-offers", offersHandler(logger, fx))
	return mux
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil ||
			r.PostForm.Get("grant_type") != "client_credentials" ||
			r.PostForm.Get("client_id") == "" ||
			r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing client credentials")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "invalid_client",
				"error_description": "Client credentials are invalid",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-token-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   1799,
			"token_type":   "Bearer",
		})
		logger.Info("issued mock token")
	}
}

func offersHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"errors": []map[string]any{{"status": 401, "title": "Unauthorized"}},
			})
			return
		}

		q := r.URL.Query()
		origin := q.Get("originLocationCode")
		dest := q.Get("destinationLocationCode")
		date := q.Get("departureDate")
		currency := q.Get("currencyCode")
		if currency == "" {
			currency = "USD"
		}
		if origin == "" || dest == "" || date == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": []map[string]any{{"status": 400, "title": "MANDATORY DATA MISSING"}},
			})
			return
		}

		route := origin + "-" + dest
		if slices.Contains(fx.Unavailable, route) {
			writeJSON(w, http.StatusOK, offersResponse{Data: []offer{}})
			logger.Info("offers", "route", route, "date", date, "result", "none")
			return
		}

		total := fareFor(fx, route, date)
		resp := offersResponse{Data: []offer{buildOffer(origin, dest, date, currency, total, q.Get("returnDate"))}}
		writeJSON(w, http.StatusOK, resp)
		logger.Info("offers", "route", route, "date", date, "total", total, "currency", currency)
	}
}

// fareFor returns the fixture fare for route, or a stable pseudo-random fare
// between 150.00 and 649.99 derived from the route and date.
func fareFor(fx *fixture, route, date string) string {
	if v, ok := fx.Fares[route]; ok {
		return v
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(route + "|" + date))
	cents := decimal.NewFromInt(int64(h.Sum32() % 50000)).Div(decimal.NewFromInt(100))
	return cents.Add(decimal.NewFromInt(150)).StringFixed(2)
}

func buildOffer(origin, dest, date, currency, total, returnDate string) offer {
	h := fnv.New32a()
	_, _ = h.Write([]byte(origin + dest))
	carrier := carriers[int(h.Sum32())%len(carriers)]
	number := strconv.Itoa(100 + int(h.Sum32()%900))

	out := itinerary{
		Duration: "PT5H30M",
		Segments: []segment{{
			CarrierCode: carrier,
			Number:      number,
			Departure:   airport{IATACode: origin, At: date + "T08:00:00"},
			Arrival:     airport{IATACode: dest, At: date + "T13:30:00"},
		}},
	}
	o := offer{
		ID:          "1",
		Price:       price{Currency: currency, Total: total, GrandTotal: total},
		Itineraries: []itinerary{out},
	}
	if returnDate != "" {
		o.Itineraries = append(o.Itineraries, itinerary{
			Duration: "PT5H45M",
			Segments: []segment{{
				CarrierCode: carrier,
				Number:      strconv.Itoa(100 + int((h.Sum32()+1)%900)),
				Departure:   airport{IATACode: dest, At: returnDate + "T15:00:00"},
				Arrival:     airport{IATACode: origin, At: returnDate + "T23:45:00"},
			}},
		})
	}
	return o
}
