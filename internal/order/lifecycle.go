package order

import (
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
)

// ItemAction is what the detail screen offers for one order line.
type ItemAction string

const (
	ActionNoAccess         ItemAction = "no_access"
	ActionAwaitingApproval ItemAction = "awaiting_approval"
	ActionCancelled        ItemAction = "cancelled"
	ActionDelivered        ItemAction = "delivered"
	ActionDeliver          ItemAction = "deliver"
)

func canTouchItem(s *session.Session, it *OrderItem) bool {
	return s.Can(role.DeliverAnyItem) || s.User.ID == it.VendorID
}

// CanResolve guards approve and reject. Rules are checked before
// permissions so a vendor sees the same precondition errors as an admin.
func (o *Order) CanResolve(s *session.Session) error {
	if o.Status.Terminal() {
		return ErrOrderCancelled
	}
	if o.Cancellation() != CancellationPending {
		return ErrCancellationNotPending
	}
	if !s.Can(role.ResolveCancellation) {
		return ErrNotPermitted
	}
	return nil
}

// CanDeliver guards marking one line delivered.
func (o *Order) CanDeliver(s *session.Session, vendorID, productID string) error {
	if o.Status.Terminal() {
		return ErrOrderCancelled
	}
	switch o.Cancellation() {
	case CancellationPending:
		return ErrCancellationPending
	case CancellationApproved:
		return ErrOrderCancelled
	}

	it, ok := o.Item(vendorID, productID)
	if !ok {
		return ErrItemNotFound
	}
	if !canTouchItem(s, it) {
		return ErrNotPermitted
	}
	if it.IsDelivered {
		return ErrItemAlreadyDelivered
	}
	return nil
}

// ItemAction picks the first matching rule, in screen order.
func (o *Order) ItemAction(s *session.Session, it *OrderItem) ItemAction {
	switch {
	case !canTouchItem(s, it):
		return ActionNoAccess
	case o.Cancellation() == CancellationPending:
		return ActionAwaitingApproval
	case o.Cancellation() == CancellationApproved || o.Status.Terminal():
		return ActionCancelled
	case it.IsDelivered:
		return ActionDelivered
	default:
		return ActionDeliver
	}
}
