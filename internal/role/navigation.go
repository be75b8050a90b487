package role

type NavItem struct {
	Title    string    `json:"title"`
	Link     string    `json:"link"`
	Children []NavItem `json:"children,omitempty"`
}

var (
	navDashboard = NavItem{Title: "Dashboard", Link: "/"}
	navCustomers = NavItem{Title: "Customers", Link: "/customers/approved", Children: []NavItem{
		{Title: "Approved Customers", Link: "/customers/approved"},
		{Title: "Pending Customers", Link: "/customers/pending"},
	}}
	navProducts = NavItem{Title: "Products", Link: "/products"}
	navUsers    = NavItem{Title: "Users", Link: "/users/vendors", Children: []NavItem{
		{Title: "Vendor", Link: "/users/vendors"},
		{Title: "CSR", Link: "/users/csr"},
	}}
	navOrders = NavItem{Title: "Orders", Link: "/orders/new", Children: []NavItem{
		{Title: "New Orders", Link: "/orders/new"},
		{Title: "All Orders", Link: "/orders/all"},
		{Title: "Incomplete Orders", Link: "/orders/incomplete"},
		{Title: "Complete Orders", Link: "/orders/complete"},
		{Title: "Cancelation Requests", Link: "/orders/cancel"},
		{Title: "Cancelation Accepted", Link: "/orders/approved-cancelation"},
	}}
	navReviews = NavItem{Title: "Reviews", Link: "/review/comment", Children: []NavItem{
		{Title: "Ratings", Link: "/review/rating"},
		{Title: "Comments", Link: "/review/comment"},
	}}
)

var navigation = map[Role][]NavItem{
	Admin:  {navDashboard, navCustomers, navProducts, navUsers, navOrders},
	CSR:    {navDashboard, navCustomers, navUsers, navOrders},
	Vendor: {navDashboard, navProducts, navOrders, navReviews},
}

// Navigation returns the sidebar entries shown to r.
func Navigation(r Role) []NavItem {
	return navigation[r]
}
