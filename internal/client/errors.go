package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnreachable wraps transport failures talking to the shop API.
	ErrUnreachable = errors.New("shop api unreachable")
	// ErrBadResponse wraps 2xx answers whose body could not be decoded.
	ErrBadResponse = errors.New("shop api sent an unreadable response")
)

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api %s: %d %s", e.Path, e.Status, e.Message)
}

// errorBody covers the error shapes the shop API produces.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Mensaje string `json:"mensaje"`
}

func newAPIError(status int, path string, body []byte) *APIError {
	msg := ""
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		switch {
		case eb.Message != "":
			msg = eb.Message
		case eb.Error != "":
			msg = eb.Error
		case eb.Mensaje != "":
			msg = eb.Mensaje
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: strings.TrimSpace(msg), Path: path}
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func hasStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

// IsNotFound reports a 404 from the shop API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports a 401 or 403 from the shop API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsConflict reports a 409 from the shop API.
func IsConflict(err error) bool { return hasStatus(err, http.StatusConflict) }

// IsUpstreamFailure reports whether err means the shop API is unhealthy.
// Client errors (4xx) are answers and do not count.
func IsUpstreamFailure(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return true
}
