package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// ErrorModel is the JSON error body returned by every API operation.
type ErrorModel struct {
	status int

	Message  string   `json:"error"              doc:"Short error message"        example:"watch not found"`
	Required []string `json:"required,omitempty" doc:"Missing required field names"`
}

// Error implements error.
func (e *ErrorModel) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorModel) GetStatus() int {
	return e.status
}

// NewAPIConfig returns the huma configuration shared by the server and tests.
// Response bodies are plain JSON without a $schema link.
func NewAPIConfig(title, version string) huma.Config {
	UseErrorModel()

	cfg := huma.DefaultConfig(title, version)
	cfg.CreateHooks = nil
	return cfg
}

var errorModelOnce sync.Once

// UseErrorModel replaces huma's default problem+json errors with ErrorModel.
// Request validation failures are reported as 400 rather than 422.
func UseErrorModel() {
	errorModelOnce.Do(func() {
		huma.NewError = newError
	})
}

func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
		if len(errs) > 0 {
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				if err != nil {
					details = append(details, err.Error())
				}
			}
			if len(details) > 0 {
				msg = strings.Join(details, "; ")
			}
		}
	}
	return &ErrorModel{status: status, Message: msg}
}

// toHTTPError maps domain and store errors onto API errors. Unexpected errors
// are logged and reported with a generic message.
func toHTTPError(log *slog.Logger, op string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return &ErrorModel{status: http.StatusBadRequest, Message: ve.Message, Required: ve.Required}
	case errors.Is(err, domain.ErrNotFound):
		return &ErrorModel{status: http.StatusNotFound, Message: "watch not found"}
	default:
		log.Error(op+" failed", "error", err)
		return &ErrorModel{status: http.StatusInternalServerError, Message: "internal server error"}
	}
}
