package product

import (
	"errors"

	"backoffice-console/internal/role"
)

// PendingOrdersMessage is shown when a delete is refused upstream.
const PendingOrdersMessage = "Product cannot be deleted as there are pending orders."

var (
	ErrPendingOrders = errors.New("product has pending orders")
	ErrNotPermitted  = role.ErrNotPermitted
)
