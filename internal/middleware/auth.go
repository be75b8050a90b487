package middleware

import (
	"net/http"

	"backoffice-console/internal/logger"
	"backoffice-console/internal/session"
	"backoffice-console/internal/utils"

	"go.uber.org/zap"
)

// Auth resolves the console token on a request into a live session.
type Auth struct {
	issuer       *session.Issuer
	store        session.Store
	secureCookie bool
}

func NewAuth(issuer *session.Issuer, store session.Store, secureCookie bool) *Auth {
	return &Auth{issuer: issuer, store: store, secureCookie: secureCookie}
}

func (a *Auth) resolve(r *http.Request) (*session.Session, error) {
	tokenStr := session.ExtractToken(r)
	if tokenStr == "" {
		return nil, session.ErrInvalidToken
	}
	claims, err := a.issuer.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	s, err := a.store.Get(r.Context(), claims.SessionID)
	if err != nil {
		return nil, err
	}
	if s.User.ID != claims.UserID {
		return nil, session.ErrInvalidToken
	}
	return s, nil
}

// Authenticate attaches the session to the request context when the token
// is valid and passes the request through untouched otherwise.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := a.resolve(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := session.WithContext(r.Context(), s)
		ctx = logger.WithActor(ctx, s.User.ID, s.User.Role.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSession rejects requests that Authenticate left without a session.
func (a *Auth) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			if session.ExtractToken(r) != "" {
				logger.FromCtx(r.Context()).Info("stale console token", zap.String("path", r.URL.Path))
				http.SetCookie(w, session.ClearCookie(a.secureCookie))
			}
			utils.WriteJSONError(w, "sign in required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
