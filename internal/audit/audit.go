// Package audit keeps a trail of the mutations console users make.
package audit

import (
	"context"
	"time"

	"backoffice-console/internal/session"

	"github.com/google/uuid"
)

type Action string

const (
	ActionApproveCancellation Action = "order.approve_cancellation"
	ActionRejectCancellation  Action = "order.reject_cancellation"
	ActionDeliverItem         Action = "order.deliver_item"
	ActionCreateProduct       Action = "product.create"
	ActionUpdateProduct       Action = "product.update"
	ActionToggleProduct       Action = "product.toggle_status"
	ActionResetStock          Action = "product.reset_stock"
	ActionUpdateStock         Action = "product.update_stock"
	ActionDeleteProduct       Action = "product.delete"
	ActionCreateProductList   Action = "product_list.create"
	ActionUpdateProductList   Action = "product_list.update"
	ActionDeleteProductList   Action = "product_list.delete"
	ActionToggleProductList   Action = "product_list.toggle_status"
	ActionRegisterUser        Action = "user.register"
	ActionToggleUser          Action = "user.toggle_status"
	ActionUpdateProfile       Action = "user.update_profile"
	ActionChangePassword      Action = "user.change_password"
)

// Recorder receives one entry per successful mutation.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type Entry struct {
	ID        uuid.UUID `json:"id"`
	ActorID   string    `json:"actorId"`
	ActorRole string    `json:"actorRole"`
	Action    Action    `json:"action"`
	TargetID  string    `json:"targetId"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEntry stamps an entry for the session's user.
func NewEntry(s *session.Session, action Action, targetID, detail string) Entry {
	return Entry{
		ID:        uuid.New(),
		ActorID:   s.User.ID,
		ActorRole: s.User.Role.String(),
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}
