package apierror

import (
	"fmt"
	"net/http"
)

// APIError is an error that already knows which HTTP status and message
// should reach the client. Anything else is rendered as a 500.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s", http.StatusText(e.Status), e.Message)
}

func New(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func BadRequest(message string) *APIError {
	return New(http.StatusBadRequest, message)
}
