package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/store"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// HistoryHandler serves price snapshots for a watch.
type HistoryHandler struct {
	store         store.Store
	log           *slog.Logger
	requiresOwner bool
}

// NewHistoryHandler creates a new HistoryHandler. When requiresOwner is false
// any authenticated caller may read a watch's history by id.
func NewHistoryHandler(s store.Store, log *slog.Logger, requiresOwner bool) *HistoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryHandler{store: s, log: log, requiresOwner: requiresOwner}
}

// HistoryInput identifies the watch and how many snapshots to return.
type HistoryInput struct {
	WatchID string `path:"watchId" doc:"Watch ID"`
	Limit   int    `query:"limit"  doc:"Maximum snapshots to return" default:"50" minimum:"1" maximum:"500"`
}

// HistoryOutput is the response body for price history.
type HistoryOutput struct {
	Body struct {
		Snapshots []domain.PriceSnapshot `json:"snapshots" doc:"Snapshots, newest first"`
		Count     int                    `json:"count"     doc:"Number of snapshots returned"`
	}
}

// GetHistory returns unexpired snapshots for a watch, newest first.
func (h *HistoryHandler) GetHistory(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if h.requiresOwner {
		if _, err := h.store.GetWatch(ctx, userID, input.WatchID); err != nil {
			return nil, toHTTPError(h.log, "checking watch owner", err)
		}
	}

	snaps, err := h.store.GetPriceHistory(ctx, input.WatchID, input.Limit)
	if err != nil {
		return nil, toHTTPError(h.log, "getting price history", err)
	}
	if snaps == nil {
		snaps = []domain.PriceSnapshot{}
	}

	resp := &HistoryOutput{}
	resp.Body.Snapshots = snaps
	resp.Body.Count = len(snaps)
	return resp, nil
}

// RegisterHistoryRoutes registers the price history endpoint with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	UseErrorModel()

	huma.Register(api, huma.Operation{
		OperationID: "get-price-history",
		Method:      http.MethodGet,
		Path:        "/api/v1/watches/{watchId}/history",
		Summary:     "Get price history",
		Description: "Returns recorded price snapshots for a watch, newest first.",
		Tags:        []string{"watches"},
		Errors:      []int{http.StatusUnauthorized, http.StatusNotFound},
	}, h.GetHistory)
}
