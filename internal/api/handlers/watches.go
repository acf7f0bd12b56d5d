package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/auth"
	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// WatchHandler handles Watch CRUD operations for the authenticated caller.
type WatchHandler struct {
	store   store.Store
	log     *slog.Logger
	nowFunc func() time.Time
	newID   func() string
}

// WatchHandlerOption configures a WatchHandler.
type WatchHandlerOption func(*WatchHandler)

// WithWatchLogger sets the handler's logger.
func WithWatchLogger(l *slog.Logger) WatchHandlerOption {
	return func(h *WatchHandler) {
		h.log = l
	}
}

// WithWatchClock overrides the clock and id generator used for new watches.
func WithWatchClock(now func() time.Time, newID func() string) WatchHandlerOption {
	return func(h *WatchHandler) {
		h.nowFunc = now
		h.newID = newID
	}
}

// NewWatchHandler creates a new WatchHandler.
func NewWatchHandler(s store.Store, opts ...WatchHandlerOption) *WatchHandler {
	h := &WatchHandler{
		store:   s,
		log:     slog.Default(),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ListWatchesOutput is the response for listing watches.
type ListWatchesOutput struct {
	Body struct {
		Watches []domain.Watch `json:"watches" doc:"Caller's watches, most recently updated first"`
	}
}

// List returns the caller's watches.
func (h *WatchHandler) List(ctx context.Context, _ *struct{}) (*ListWatchesOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	watches, err := h.store.ListWatches(ctx, userID)
	if err != nil {
		return nil, toHTTPError(h.log, "listing watches", err)
	}
	if watches == nil {
		watches = []domain.Watch{}
	}

	resp := &ListWatchesOutput{}
	resp.Body.Watches = watches
	return resp, nil
}

// WatchIDInput identifies a watch by path.
type WatchIDInput struct {
	WatchID string `path:"watchId" doc:"Watch ID"`
}

// WatchOutput wraps a single watch.
type WatchOutput struct {
	Body *domain.Watch
}

// Get returns one of the caller's watches. Watches owned by someone else are
// reported as not found.
func (h *WatchHandler) Get(ctx context.Context, input *WatchIDInput) (*WatchOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	w, err := h.store.GetWatch(ctx, userID, input.WatchID)
	if err != nil {
		return nil, toHTTPError(h.log, "getting watch", err)
	}
	return &WatchOutput{Body: w}, nil
}

// CreateWatchInput is the request body for creating a watch. Every field is
// optional in the schema so missing fields are reported together.
type CreateWatchInput struct {
	Body struct {
		Origin         string   `json:"origin,omitempty"         doc:"Origin location code"      example:"JFK"`
		Destination    string   `json:"destination,omitempty"    doc:"Destination location code" example:"LAX"`
		DepartureDate  string   `json:"departureDate,omitempty"  doc:"Departure date YYYY-MM-DD" example:"2026-12-20"`
		ReturnDate     *string  `json:"returnDate,omitempty"     doc:"Return date YYYY-MM-DD"    example:"2027-01-03"`
		PriceThreshold *float64 `json:"priceThreshold,omitempty" doc:"Alert at or below this price" example:"350"`
		Currency       string   `json:"currency,omitempty"       doc:"ISO currency code"         example:"USD"`
	}
}

// CreateWatchOutput is the response for a created watch.
type CreateWatchOutput struct {
	Status int
	Body   *domain.Watch
}

// Create validates the request and stores a new watch owned by the caller.
func (h *WatchHandler) Create(ctx context.Context, input *CreateWatchInput) (*CreateWatchOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	req := &domain.CreateWatchRequest{
		Origin:         input.Body.Origin,
		Destination:    input.Body.Destination,
		DepartureDate:  input.Body.DepartureDate,
		ReturnDate:     input.Body.ReturnDate,
		PriceThreshold: input.Body.PriceThreshold,
		Currency:       input.Body.Currency,
	}

	w, err := domain.NewWatch(userID, h.newID(), req, h.nowFunc().UTC())
	if err != nil {
		return nil, toHTTPError(h.log, "creating watch", err)
	}

	if err := h.store.CreateWatch(ctx, w); err != nil {
		return nil, toHTTPError(h.log, "creating watch", err)
	}

	h.log.Info("watch created", "watch_id", w.WatchID, "user_id", userID, "route", w.Route())

	return &CreateWatchOutput{Status: http.StatusCreated, Body: w}, nil
}

// UpdateWatchInput is the request for a partial watch update.
type UpdateWatchInput struct {
	WatchID string `path:"watchId" doc:"Watch ID"`
	Body    domain.WatchPatch
}

// Update applies the provided fields to one of the caller's watches. PUT and
// PATCH share this handler.
func (h *WatchHandler) Update(ctx context.Context, input *UpdateWatchInput) (*WatchOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	patch := &input.Body
	if err := patch.Validate(); err != nil {
		return nil, toHTTPError(h.log, "updating watch", err)
	}

	w, err := h.store.UpdateWatch(ctx, userID, input.WatchID, patch, h.nowFunc().UTC())
	if err != nil {
		return nil, toHTTPError(h.log, "updating watch", err)
	}
	return &WatchOutput{Body: w}, nil
}

// Delete removes one of the caller's watches.
func (h *WatchHandler) Delete(ctx context.Context, input *WatchIDInput) (*struct{}, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.store.DeleteWatch(ctx, userID, input.WatchID); err != nil {
		return nil, toHTTPError(h.log, "deleting watch", err)
	}

	h.log.Info("watch deleted", "watch_id", input.WatchID, "user_id", userID)
	return nil, nil
}

// RegisterWatchRoutes registers watch CRUD endpoints with the Huma API.
func RegisterWatchRoutes(api huma.API, h *WatchHandler) {
	UseErrorModel()

	huma.Register(api, huma.Operation{
		OperationID: "list-watches",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches",
		Summary:     "List watches",
		Description: "Returns the caller's watches, most recently updated first.",
		Tags:        []string{"watches"},
		Errors:      []int{http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "get-watch",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches/{watchId}",
		Summary:     "Get a watch",
		Tags:        []string{"watches"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID:   "create-watch",
		Method:        http.MethodPost,
		Path:          "/api/v1/watches",
		Summary:       "Create a watch",
		Description:   "Creates an active watch owned by the caller. Location codes are upper-cased.",
		Tags:          []string{"watches"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, h.Create)

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		huma.Register(api, huma.Operation{
			OperationID: "update-watch-" + strings.ToLower(method),
			Method:      method,
			Path:        "/api/v1/watches/{watchId}",
			Summary:     "Update a watch",
			Description: "Applies any subset of priceThreshold, departureDate, returnDate and isActive.",
			Tags:        []string{"watches"},
			Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound},
		}, h.Update)
	}

	huma.Register(api, huma.Operation{
		OperationID:   "delete-watch",
		Method:        http.MethodDelete,
		Path:          "/api/v1/watches/{watchId}",
		Summary:       "Delete a watch",
		Tags:          []string{"watches"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.Delete)
}

// callerID returns the authenticated user for the request.
func callerID(ctx context.Context) (string, error) {
	userID, ok := auth.UserID(ctx)
	if !ok {
		return "", &ErrorModel{status: http.StatusUnauthorized, Message: "Unauthorized"}
	}
	return userID, nil
}
