package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semanticshop/storefront/internal/circuitbreaker"
	"github.com/semanticshop/storefront/internal/client"
	"github.com/semanticshop/storefront/internal/domain/dto"
	"github.com/semanticshop/storefront/internal/i18n"
	"github.com/semanticshop/storefront/internal/logger"
	"github.com/semanticshop/storefront/internal/service"
)

// HTTPError is the HTTP answer chosen for an error.
type HTTPError struct {
	Status int
	Code   string
	// Key is the i18n message key. Message, when set, is used verbatim.
	Key     string
	Message string
	Details map[string]string
}

// ClassifyError maps service, validation and shop API errors to an HTTP
// answer. Unknown errors become 500.
func ClassifyError(err error) HTTPError {
	var (
		vErr    *dto.ValidationError
		syncErr *service.SyncError
	)

	switch {
	case errors.As(err, &vErr):
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    dto.ErrCodeInvalidRequest,
			Key:     i18n.ErrKeyInvalidRequest,
			Details: map[string]string{vErr.Field: vErr.Message},
		}
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return HTTPError{Status: http.StatusServiceUnavailable, Code: dto.ErrCodeUnavailable, Key: i18n.ErrKeyUnavailable}
	case errors.Is(err, context.DeadlineExceeded):
		return HTTPError{Status: http.StatusGatewayTimeout, Code: dto.ErrCodeTimeout, Key: i18n.ErrKeyTimeout}
	case errors.As(err, &syncErr):
		details := map[string]string{"step": syncErr.Step}
		if syncErr.ProductID != "" {
			details["product_id"] = syncErr.ProductID
		}
		return HTTPError{Status: http.StatusBadGateway, Code: dto.ErrCodeUpstream, Key: i18n.ErrKeyCartSync, Details: details}
	case errors.Is(err, service.ErrNotAuthenticated):
		return HTTPError{Status: http.StatusUnauthorized, Code: dto.ErrCodeUnauthorized, Key: i18n.ErrKeyLoginRequired}
	case errors.Is(err, service.ErrInvalidToken):
		return HTTPError{Status: http.StatusUnauthorized, Code: dto.ErrCodeUnauthorized, Key: i18n.ErrKeyInvalidToken}
	case errors.Is(err, service.ErrForbidden):
		return HTTPError{Status: http.StatusForbidden, Code: dto.ErrCodeForbidden, Key: i18n.ErrKeyForbidden}
	case errors.Is(err, service.ErrNotCancellable):
		return HTTPError{Status: http.StatusConflict, Code: dto.ErrCodeConflict, Key: i18n.ErrKeyNotCancellable}
	case errors.Is(err, service.ErrAddressRequired):
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    dto.ErrCodeInvalidRequest,
			Key:     i18n.ErrKeyAddressRequired,
			Details: map[string]string{"direccionEnvio": "is required"},
		}
	case errors.Is(err, service.ErrEmptyCart):
		return HTTPError{Status: http.StatusBadRequest, Code: dto.ErrCodeInvalidRequest, Key: i18n.ErrKeyEmptyCart}
	case errors.Is(err, service.ErrNoClientID):
		return HTTPError{Status: http.StatusNotFound, Code: dto.ErrCodeNotFound, Key: i18n.ErrKeyNoClientID}
	}

	if apiErr, ok := client.AsAPIError(err); ok {
		if apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError {
			return HTTPError{
				Status:  apiErr.Status,
				Code:    dto.ErrCodeFromStatus(apiErr.Status),
				Message: apiErr.Message,
			}
		}
		return HTTPError{Status: http.StatusBadGateway, Code: dto.ErrCodeUpstream, Key: i18n.ErrKeyUpstream}
	}
	if errors.Is(err, client.ErrUnreachable) || errors.Is(err, client.ErrBadResponse) {
		return HTTPError{Status: http.StatusBadGateway, Code: dto.ErrCodeUpstream, Key: i18n.ErrKeyUpstream}
	}

	return HTTPError{Status: http.StatusInternalServerError, Code: dto.ErrCodeInternal, Key: i18n.ErrKeyInternalError}
}

// RespondError writes the JSON error answer for err and aborts the chain.
func RespondError(c *gin.Context, err error) {
	he := ClassifyError(err)

	message := he.Message
	if message == "" {
		message = i18n.GetTranslator().Translate(he.Key, i18n.GetLocale(c))
	}

	resp := dto.NewError(he.Code, message).WithRequestID(GetRequestID(c))
	for k, v := range he.Details {
		resp = resp.WithDetail(k, v)
	}

	log := logger.Component("http")
	event := log.Warn()
	if he.Status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Err(err).
		Str("request_id", GetRequestID(c)).
		Str("session_id", GetSessionID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status_code", he.Status).
		Msg("Request failed")

	c.AbortWithStatusJSON(he.Status, resp)
}

// ErrorHandler answers the last error handlers attached with c.Error,
// unless a response was already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		RespondError(c, c.Errors.Last().Err)
	}
}
