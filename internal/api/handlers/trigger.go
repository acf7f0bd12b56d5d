package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/venkatadeepikapotu/faredrop-tracker/internal/engine"
	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// Poller runs one polling pass.
type Poller interface {
	RunPoll(ctx context.Context) (*domain.PollSummary, error)
}

// PollHandler handles manual polling trigger requests.
type PollHandler struct {
	poller Poller
	log    *slog.Logger
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(p Poller, log *slog.Logger) *PollHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PollHandler{poller: p, log: log}
}

// PollOutput is the response body for the poll trigger.
type PollOutput struct {
	Body *domain.PollSummary
}

// Poll runs a polling pass synchronously and returns its summary.
func (h *PollHandler) Poll(ctx context.Context, _ *struct{}) (*PollOutput, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	h.log.Info("manual poll requested", "user_id", userID)

	summary, err := h.poller.RunPoll(ctx)
	if errors.Is(err, engine.ErrPollInProgress) {
		return nil, &ErrorModel{status: http.StatusConflict, Message: "poll already in progress"}
	}
	if err != nil {
		return nil, toHTTPError(h.log, "running poll", err)
	}

	return &PollOutput{Body: summary}, nil
}

// RegisterTriggerRoutes registers the manual poll endpoint with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *PollHandler) {
	UseErrorModel()

	huma.Register(api, huma.Operation{
		OperationID: "trigger-poll",
		Method:      http.MethodPost,
		Path:        "/api/v1/poll",
		Summary:     "Trigger a polling run",
		Description: "Quotes every active watch, records snapshots, and sends due alerts.",
		Tags:        []string{"polling"},
		Errors:      []int{http.StatusUnauthorized, http.StatusConflict, http.StatusInternalServerError},
	}, h.Poll)
}
