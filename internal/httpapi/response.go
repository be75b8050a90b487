package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/order"
	"backoffice-console/internal/product"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"
	"backoffice-console/internal/user"
	"backoffice-console/internal/utils"

	"go.uber.org/zap"
)

const upstreamFailureMessage = "The back-office service could not complete the request. Please try again."

type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

type listResponse[T any] struct {
	Items []T        `json:"items"`
	Page  utils.Page `json:"page"`
}

// confirmRequest is the body every mutating route expects.
type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

var preconditionMessages = map[error]string{
	order.ErrCancellationNotPending: "This order has no pending cancellation request.",
	order.ErrCancellationPending:    "Resolve the cancellation request before delivering items.",
	order.ErrOrderCancelled:         "This order is cancelled.",
	order.ErrItemAlreadyDelivered:   "This item is already delivered.",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// decodeBody reads an optional JSON body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// confirmed decodes the body into req and answers 400 unless the caller set
// confirm. It reports whether the handler may proceed.
func confirmed(w http.ResponseWriter, r *http.Request, req any, confirm func() bool) bool {
	if err := decodeBody(r, req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return false
	}
	if !confirm() {
		writeError(w, http.StatusBadRequest, "confirmation_required", "this action must be confirmed")
		return false
	}
	return true
}

func confirmOnly(w http.ResponseWriter, r *http.Request) bool {
	var req confirmRequest
	return confirmed(w, r, &req, func() bool { return req.Confirm })
}

// sessionFrom is only called behind RequireSession.
func sessionFrom(r *http.Request) *session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// fail maps a service error onto a status code and a message the console can
// show as is.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *utils.ValidationError
	var apiErr *apiclient.APIError
	var credErr *user.CredentialsError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "Please correct the highlighted fields.",
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
	case errors.As(err, &credErr):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", credErr.UserMessage())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", user.InvalidCredentialsMessage)
	case errors.Is(err, apiclient.ErrUnauthorized):
		http.SetCookie(w, session.ClearCookie(h.secureCookie))
		writeError(w, http.StatusUnauthorized, "session_expired", "Your session has expired. Please sign in again.")
	case errors.Is(err, user.ErrRoleNotAllowed):
		writeError(w, http.StatusForbidden, "role_not_allowed", "This account cannot use the console.")
	case errors.Is(err, role.ErrNotPermitted), errors.Is(err, apiclient.ErrForbidden):
		writeError(w, http.StatusForbidden, "not_permitted", "You do not have permission to do that.")
	case errors.Is(err, apiclient.ErrNotFound), errors.Is(err, order.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "not_found", "The requested record was not found.")
	case errors.Is(err, user.ErrEmailInUse):
		writeError(w, http.StatusConflict, "email_in_use", user.EmailInUseMessage)
	case errors.Is(err, product.ErrPendingOrders):
		writeError(w, http.StatusConflict, "pending_orders", product.PendingOrdersMessage)
	case order.IsPrecondition(err):
		writeError(w, http.StatusConflict, "precondition_failed", preconditionMessage(err))
	case errors.Is(err, apiclient.ErrConflict):
		msg := "The record changed since it was loaded. Refresh and try again."
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		writeError(w, http.StatusConflict, "conflict", msg)
	case errors.Is(err, order.ErrInvalidFilter), errors.Is(err, user.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "upstream_error", upstreamFailureMessage)
	}
}

func preconditionMessage(err error) string {
	for target, msg := range preconditionMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}
