package httpapi

import (
	"net/http"

	"backoffice-console/internal/user"
)

type profileRequest struct {
	Confirm bool `json:"confirm"`
	user.ProfileUpdate
}

type passwordRequest struct {
	Confirm         bool   `json:"confirm"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	account, err := h.users.Profile(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	h.mutated(w, r, h.users.UpdateProfile(r.Context(), sessionFrom(r), req.ProfileUpdate))
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if !confirmed(w, r, &req, func() bool { return req.Confirm }) {
		return
	}
	h.mutated(w, r, h.users.ChangePassword(r.Context(), sessionFrom(r), req.CurrentPassword, req.NewPassword))
}

func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.notifications.List(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
