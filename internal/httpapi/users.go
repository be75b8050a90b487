package httpapi

import (
	"net/http"
	"strconv"

	"backoffice-console/internal/audit"
	"backoffice-console/internal/role"
	"backoffice-console/internal/user"
	"backoffice-console/internal/utils"

	"github.com/go-chi/chi/v5"
)

func accountFilter(r *http.Request) user.Filter {
	q := r.URL.Query()
	f := user.Filter{Name: q.Get("name")}
	if n, err := strconv.Atoi(q.Get("status")); err == nil {
		st := user.AccountStatus(n)
		f.Status = &st
	}
	return f
}

// listAccounts serves one fixed listing; kind comes from the route.
func (h *Handler) listAccounts(kind user.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := h.users.List(r.Context(), sessionFrom(r), kind, accountFilter(r))
		if err != nil {
			h.fail(w, r, err)
			return
		}

		items, page := utils.Paginate(accounts, queryInt(r, "page", 1), queryInt(r, "perPage", utils.DefaultPerPage))
		writeJSON(w, http.StatusOK, listResponse[user.Account]{Items: items, Page: page})
	}
}

type registerRequest struct {
	Confirm bool `json:"confirm"`
	user.Registration
}

// registerAccount adds an account to one listing; kind comes from the route.
func (h *Handler) registerAccount(kind user.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
			return
		}
		if err := h.users.Register(r.Context(), sessionFrom(r), kind, req.Registration); err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

func (h *Handler) ToggleAccount(w http.ResponseWriter, r *http.Request) {
	if !confirmOnly(w, r) {
		return
	}
	h.mutated(w, r, h.users.ToggleStatus(r.Context(), sessionFrom(r), chi.URLParam(r, "id")))
}

func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reviews.Ratings(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.reviews.Comments(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *Handler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	if err := role.Require(s.User.Role, role.ViewAudit); err != nil {
		h.fail(w, r, err)
		return
	}
	if h.audit == nil {
		writeError(w, http.StatusServiceUnavailable, "audit_disabled", "The audit trail is not enabled.")
		return
	}

	entries, err := h.audit.List(r.Context(), queryInt(r, "limit", audit.DefaultListLimit))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
