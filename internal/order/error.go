package order

import (
	"errors"

	"backoffice-console/internal/role"
)

var (
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrCancellationNotPending = errors.New("no pending cancellation request on this order")
	ErrCancellationPending    = errors.New("order has a pending cancellation request")
	ErrOrderCancelled         = errors.New("order is cancelled")
	ErrItemNotFound           = errors.New("order item not found")
	ErrItemAlreadyDelivered   = errors.New("order item already delivered")
	ErrNotPermitted           = role.ErrNotPermitted
	ErrInvalidFilter          = errors.New("invalid order filter")
)

// IsPrecondition reports whether err is a lifecycle rule violation, as
// opposed to a permission or transport failure.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrCancellationNotPending) ||
		errors.Is(err, ErrCancellationPending) ||
		errors.Is(err, ErrOrderCancelled) ||
		errors.Is(err, ErrItemAlreadyDelivered)
}
