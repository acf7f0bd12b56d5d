package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a watch does not exist for the given owner.
var ErrNotFound = errors.New("not found")

// ValidationError reports bad or missing input. Required lists the names of
// missing required fields, if any.
type ValidationError struct {
	Message  string
	Required []string
}

func (e *ValidationError) Error() string {
	if len(e.Required) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Required, ", ")
}
