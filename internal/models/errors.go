package models

import "errors"

// Sentinel errors shared across repositories and services. Callers wrap them
// with context via fmt.Errorf("...: %w", ...) and match with errors.Is.
var (
	// ErrNotFound marks a missing record: product, variant, cart, cart line,
	// order, todo or user.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidQuantity marks a cart quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrEmailTaken marks a signup with an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmptyCart marks a checkout against a cart with no lines, including
	// the case where no active cart exists at all.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidCharge marks a negative delivery fee or a tax rate outside
	// [0, 1] at checkout.
	ErrInvalidCharge = errors.New("invalid charge")

	// ErrInvalidStatus marks an order status outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrStatusFinal marks a status change on an order whose status is
	// terminal. Paid and cancelled orders no longer transition.
	ErrStatusFinal = errors.New("order status is final")
)
