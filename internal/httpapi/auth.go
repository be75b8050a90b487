package httpapi

import (
	"net/http"
	"time"

	"backoffice-console/internal/logger"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"

	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	User         session.User      `json:"user"`
	Role         string            `json:"role"`
	Navigation   []role.NavItem    `json:"navigation"`
	Capabilities []role.Capability `json:"capabilities"`
}

type loginResponse struct {
	meResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newMeResponse(u session.User) meResponse {
	return meResponse{
		User:         u,
		Role:         u.Role.String(),
		Navigation:   role.Navigation(u.Role),
		Capabilities: role.Capabilities(u.Role),
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.store.Create(r.Context(), res.User, res.Token)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session_error", "Could not start a session. Please try again.")
		return
	}

	token, exp, err := h.issuer.Issue(s)
	if err != nil {
		_ = h.store.End(r.Context(), s)
		logger.FromCtx(r.Context()).Error("failed to issue session token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "session_error", "Could not start a session. Please try again.")
		return
	}

	logger.FromCtx(r.Context()).Info("console sign-in",
		zap.String("user_id", s.User.ID),
		zap.String("role", s.User.Role.String()),
	)

	http.SetCookie(w, session.Cookie(token, exp, h.secureCookie))
	writeJSON(w, http.StatusOK, loginResponse{
		meResponse: newMeResponse(s.User),
		Token:      token,
		ExpiresAt:  exp,
	})
}

// Logout always clears the cookie, with or without a live session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if s, ok := session.FromContext(r.Context()); ok {
		if err := h.store.End(r.Context(), s); err != nil {
			logger.FromCtx(r.Context()).Warn("failed to end session", zap.Error(err))
		}
	}
	http.SetCookie(w, session.ClearCookie(h.secureCookie))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newMeResponse(sessionFrom(r).User))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.dashboard.Build(r.Context(), sessionFrom(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
