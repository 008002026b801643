package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a logged-in user.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrForbidden is returned when the session lacks the admin role.
	ErrForbidden = errors.New("admin role required")
	// ErrNotCancellable is returned when an order is past the point of cancellation.
	ErrNotCancellable = errors.New("order can no longer be cancelled")
	// ErrAddressRequired is returned by checkout for a blank shipping address.
	ErrAddressRequired = errors.New("shipping address is required")
	// ErrEmptyCart is returned by checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoClientID is returned when the user has no recommendation profile.
	ErrNoClientID = errors.New("user has no recommendation profile")
	// ErrInvalidToken is returned when a session token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Sync steps reported by SyncError.
const (
	SyncStepClear = "clear"
	SyncStepAdd   = "add"
)

// SyncError reports which step of pushing the local cart to the shop API
// failed. Steps that completed before it are not rolled back.
type SyncError struct {
	Step      string
	ProductID string
	Err       error
}

func (e *SyncError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("cart sync %s %s: %v", e.Step, e.ProductID, e.Err)
	}
	return fmt.Sprintf("cart sync %s: %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
