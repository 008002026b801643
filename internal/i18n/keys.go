package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials is shown when the shop API rejects a login.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired session token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a session token is required.
	ErrKeyTokenRequired = "error.token_required"
	ErrKeyTimeout       = "error.timeout"
	// ErrKeyUpstream indicates the shop API failed or was unreachable.
	ErrKeyUpstream = "error.upstream"
	// ErrKeyUnavailable indicates the shop API is temporarily switched off.
	ErrKeyUnavailable = "error.unavailable"
	// ErrKeyLoginRequired indicates the session has no shop login.
	ErrKeyLoginRequired   = "error.login_required"
	ErrKeyNotCancellable  = "error.not_cancellable"
	ErrKeyAddressRequired = "error.address_required"
	ErrKeyEmptyCart       = "error.empty_cart"
	ErrKeyNoClientID      = "error.no_client_id"
	ErrKeyCartSync        = "error.cart_sync"
)

// Success message translation keys.
const (
	SuccessKeyLoggedOut     = "success.logged_out"
	SuccessKeyOrderPlaced   = "success.order_placed"
	SuccessKeyCartCleared   = "success.cart_cleared"
	SuccessKeySessionIssued = "success.session_issued"
)
