// Package httpapi is the console's own JSON surface, served under /api.
package httpapi

import (
	"context"
	"net/http"

	"backoffice-console/internal/audit"
	"backoffice-console/internal/dashboard"
	"backoffice-console/internal/metrics"
	"backoffice-console/internal/notification"
	"backoffice-console/internal/order"
	"backoffice-console/internal/product"
	"backoffice-console/internal/review"
	"backoffice-console/internal/session"
	"backoffice-console/internal/user"
)

type Dashboard interface {
	Build(ctx context.Context, s *session.Session) (*dashboard.Summary, error)
}

type AuditLog interface {
	List(ctx context.Context, limit int) ([]audit.Entry, error)
}

// Handler holds the services behind every route. Audit and Metrics may be
// nil.
type Handler struct {
	users         user.Service
	orders        order.Service
	products      product.Service
	reviews       review.Service
	notifications notification.Service
	dashboard     Dashboard
	audit         AuditLog
	store         session.Store
	issuer        *session.Issuer
	metrics       *metrics.Upstream
	secureCookie  bool
}

type Deps struct {
	Users         user.Service
	Orders        order.Service
	Products      product.Service
	Reviews       review.Service
	Notifications notification.Service
	Dashboard     Dashboard
	Audit         AuditLog
	Store         session.Store
	Issuer        *session.Issuer
	Metrics       *metrics.Upstream
	SecureCookie  bool
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		users:         d.Users,
		orders:        d.Orders,
		products:      d.Products,
		reviews:       d.Reviews,
		notifications: d.Notifications,
		dashboard:     d.Dashboard,
		audit:         d.Audit,
		store:         d.Store,
		issuer:        d.Issuer,
		metrics:       d.Metrics,
		secureCookie:  d.SecureCookie,
	}
}

type healthResponse struct {
	Status   string            `json:"status"`
	Upstream *metrics.Snapshot `json:"upstream,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	res := healthResponse{Status: "ok"}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		res.Upstream = &snap
	}
	writeJSON(w, http.StatusOK, res)
}
