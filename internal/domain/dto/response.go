package dto

import (
	"net/http"
	"time"

	"github.com/semanticshop/storefront/internal/cart"
	"github.com/semanticshop/storefront/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUpstream indicates the shop API failed.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeUnavailable indicates the shop API is switched off by the circuit breaker.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"cantidad: must be a positive integer"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one detail entry.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusBadGateway:
		return ErrCodeUpstream
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// SessionResponse carries a freshly issued BFF session token.
// @Description Guest session token
type SessionResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	SessionID string    `json:"session_id" example:"0b6b3f9e-4c1e-4a4b-9a57-5d2f0f4d8e11"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int64     `json:"expires_in" example:"86400"`
} // @name SessionResponse

// CartResponse is the cart with its priced summary.
// @Description Cart contents and totals
type CartResponse struct {
	Items   []cart.Item  `json:"items"`
	Summary cart.Summary `json:"summary"`
} // @name CartResponse

// NewCartResponse snapshots c.
func NewCartResponse(c *cart.Cart) CartResponse {
	return CartResponse{
		Items:   c.Items(),
		Summary: c.Summary().Rounded(),
	}
}

// CartMutationResponse reports what a cart operation did and the cart after it.
// @Description Result of a cart operation
type CartMutationResponse struct {
	Outcome cart.Outcome `json:"outcome" swaggertype:"string" example:"added"`
	Cart    CartResponse `json:"cart"`
} // @name CartMutationResponse

// FilterOptionsResponse lists the values offered as search filters.
type FilterOptionsResponse = model.FilterOptions

// SuggestionsResponse lists autocomplete suggestions.
// @Description Autocomplete suggestions
type SuggestionsResponse struct {
	Query       string   `json:"q" example:"lap"`
	Sugerencias []string `json:"sugerencias"`
	Total       int      `json:"total" example:"2"`
} // @name SuggestionsResponse

// SearchResponse is a search page plus the page numbers to offer.
// @Description Paginated search results
type SearchResponse struct {
	model.SearchPage
	Paginas []int `json:"paginas"`
} // @name SearchResponse

// OrdersResponse is a filtered order list with counts for every status.
// @Description Order history
type OrdersResponse struct {
	Estado  string         `json:"estado" example:"TODOS"`
	Pedidos []model.Order  `json:"pedidos"`
	Conteo  map[string]int `json:"conteo"`
} // @name OrdersResponse
