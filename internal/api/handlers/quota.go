package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/amadeus"
)

// QuotaHandler provides the fare provider quota status endpoint.
type QuotaHandler struct {
	rl *amadeus.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(rl *amadeus.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64     `json:"dailyLimit" example:"2000"                 doc:"Configured daily call limit, 0 when unlimited"`
		DailyUsed  int64     `json:"dailyUsed"  example:"142"                  doc:"Calls used in the current 24-hour window"`
		Remaining  int64     `json:"remaining"  example:"1858"                 doc:"Calls left in the window, -1 when unlimited"`
		ResetAt    time.Time `json:"resetAt"    example:"2026-06-16T14:30:00Z" doc:"When the current 24-hour window expires"`
	}
}

// GetQuota returns the current fare provider quota status.
func (h *QuotaHandler) GetQuota(ctx context.Context, _ *struct{}) (*QuotaOutput, error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	u := h.rl.Usage()
	resp.Body.DailyLimit = u.Limit
	resp.Body.DailyUsed = u.Used
	resp.Body.Remaining = u.Remaining
	resp.Body.ResetAt = u.ResetAt

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	UseErrorModel()

	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get fare provider quota status",
		Description: "Returns the daily fare quote call usage, remaining quota, and window reset time.",
		Tags:        []string{"amadeus"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.GetQuota)
}
