package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable covers transport failures and an open circuit breaker.
var ErrUnavailable = errors.New("backend unavailable")

type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func newStatusError(status int, body []byte) *StatusError {
	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(status)
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{Status: status, Message: msg}
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
