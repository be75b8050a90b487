package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice-console/internal/role"
	"backoffice-console/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func setupAuth(t *testing.T) (*Auth, *session.MemoryStore, *session.Issuer, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	issuer := session.NewIssuer(secret, time.Hour)
	s, err := store.Create(context.Background(), session.User{ID: "u-1", Role: role.Vendor}, "upstream")
	require.NoError(t, err)
	return NewAuth(issuer, store, false), store, issuer, s
}

func protected(a *Auth, seen **session.Session) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		*seen = s
		w.WriteHeader(http.StatusOK)
	})
	return a.Authenticate(a.RequireSession(inner))
}

func TestAuth_ValidCookie(t *testing.T) {
	a, _, issuer, s := setupAuth(t)
	token, exp, err := issuer.Issue(s)
	require.NoError(t, err)

	var seen *session.Session
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(session.Cookie(token, exp, false))
	w := httptest.NewRecorder()

	protected(a, &seen).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, s.ID, seen.ID)
}

func TestAuth_BearerFallback(t *testing.T) {
	a, _, issuer, s := setupAuth(t)
	token, _, err := issuer.Issue(s)
	require.NoError(t, err)

	var seen *session.Session
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	protected(a, &seen).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, seen)
}

func TestAuth_MissingToken(t *testing.T) {
	a, _, _, _ := setupAuth(t)

	var seen *session.Session
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	w := httptest.NewRecorder()

	protected(a, &seen).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, seen)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuth_EndedSessionClearsCookie(t *testing.T) {
	a, store, issuer, s := setupAuth(t)
	token, exp, err := issuer.Issue(s)
	require.NoError(t, err)
	require.NoError(t, store.End(context.Background(), s))

	var seen *session.Session
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(session.Cookie(token, exp, false))
	w := httptest.NewRecorder()

	protected(a, &seen).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuth_ForgedToken(t *testing.T) {
	a, _, _, s := setupAuth(t)
	forged, _, err := session.NewIssuer("other-secret", time.Hour).Issue(s)
	require.NoError(t, err)

	var seen *session.Session
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()

	protected(a, &seen).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResolveRateTier(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, LoginPath, nil)
	_, _, tier := resolveRateTier(req)
	assert.Equal(t, "strict", tier)

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("X-Client-Type", "frontend-heavy")
	_, _, tier = resolveRateTier(req)
	assert.Equal(t, "frontend", tier)

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	_, _, tier = resolveRateTier(req)
	assert.Equal(t, "general", tier)
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := map[int]int{}
	for i := 0; i < burstStrict+3; i++ {
		req := httptest.NewRequest(http.MethodPost, LoginPath, nil)
		req.RemoteAddr = "10.9.8.7:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes[w.Code]++
	}

	assert.GreaterOrEqual(t, codes[http.StatusOK], burstStrict)
	assert.Positive(t, codes[http.StatusTooManyRequests])
}

func TestRateLimitMiddleware_PerUserBucket(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	s := &session.Session{User: session.User{ID: "bucket-user", Role: role.Admin}}
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req = req.WithContext(session.WithContext(req.Context(), s))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mu.Lock()
	_, ok := visitors["user:bucket-user:general"]
	mu.Unlock()
	assert.True(t, ok)
}

func TestSweepVisitors(t *testing.T) {
	getVisitor("sweep:me", limitGeneral, burstGeneral)
	sweepVisitors(time.Now().Add(time.Hour), time.Minute)

	mu.Lock()
	_, ok := visitors["sweep:me"]
	mu.Unlock()
	assert.False(t, ok)
}

func TestCORS(t *testing.T) {
	handler := CORS("http://localhost:3000")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("OtherOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
