package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrInvalidResponse is returned when a successful response has an
// unexpected shape.
var ErrInvalidResponse = errors.New("invalid api response")

// Error is a non-2xx answer from the API.
type Error struct {
	// Status is the HTTP status code.
	Status int

	// Message is the API's "error" field, or the status text.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func newError(status int, body []byte) *Error {
	msg := gjson.GetBytes(body, "error").String()
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// API error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
