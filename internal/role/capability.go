package role

import "fmt"

type Capability string

const (
	ViewAllOrders       Capability = "orders:view-all"
	ResolveCancellation Capability = "orders:resolve-cancellation"
	DeliverAnyItem      Capability = "orders:deliver-any"
	ViewAllProducts     Capability = "products:view-all"
	CreateProducts      Capability = "products:create"
	ManageProductLists  Capability = "product-lists:manage"
	ManageUsers         Capability = "users:manage"
	ViewReviews         Capability = "reviews:view"
	ViewCustomerStats   Capability = "dashboard:customers"
	ViewStaffStats      Capability = "dashboard:staff"
	ViewCatalogStats    Capability = "dashboard:catalog"
	ViewAudit           Capability = "audit:view"
)

var capabilities = map[Role]map[Capability]bool{
	Admin: {
		ViewAllOrders:       true,
		ResolveCancellation: true,
		DeliverAnyItem:      true,
		ViewAllProducts:     true,
		ManageProductLists:  true,
		ManageUsers:         true,
		ViewCustomerStats:   true,
		ViewStaffStats:      true,
		ViewCatalogStats:    true,
		ViewAudit:           true,
	},
	CSR: {
		ViewAllOrders:      true,
		ViewAllProducts:    true,
		ManageProductLists: true,
		ManageUsers:        true,
		ViewCustomerStats:  true,
		ViewStaffStats:     true,
	},
	Vendor: {
		CreateProducts:   true,
		ViewReviews:      true,
		ViewCatalogStats: true,
	},
}

// Can reports whether r holds c. Unknown roles hold nothing.
func Can(r Role, c Capability) bool {
	return capabilities[r][c]
}

// Require returns ErrNotPermitted unless r holds c.
func Require(r Role, c Capability) error {
	if !Can(r, c) {
		return fmt.Errorf("%w: %s lacks %s", ErrNotPermitted, r, c)
	}
	return nil
}

// Capabilities lists what r holds, for the /me response.
func Capabilities(r Role) []Capability {
	out := make([]Capability, 0, len(capabilities[r]))
	for _, c := range allCapabilities {
		if capabilities[r][c] {
			out = append(out, c)
		}
	}
	return out
}

var allCapabilities = []Capability{
	ViewAllOrders,
	ResolveCancellation,
	DeliverAnyItem,
	ViewAllProducts,
	CreateProducts,
	ManageProductLists,
	ManageUsers,
	ViewReviews,
	ViewCustomerStats,
	ViewStaffStats,
	ViewCatalogStats,
	ViewAudit,
}
