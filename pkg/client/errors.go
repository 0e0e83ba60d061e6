package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents the error body the Cloud Director API sends alongside non-2xx statuses
type APIError struct {
	MinorErrorCode string `json:"minorErrorCode"`
	Message        string `json:"message"`
}

// StatusError is returned when the remote API answered with a non-2xx status code.
// If the response carried a decodable error body, it is attached as API.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	API        *APIError
}

func (err *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d", err.Method, err.URL, err.StatusCode)
	if err.API != nil {
		msg += fmt.Sprintf(" (%s: %s)", err.API.MinorErrorCode, err.API.Message)
	}
	return msg
}

// IsNotFound checks whether the error is or wraps a StatusError with a 404 status code
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
