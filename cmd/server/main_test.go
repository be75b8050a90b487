package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice-console/internal/config"
	"backoffice-console/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:        "8080",
		AppEnv:         "test",
		APIBaseURL:     "http://127.0.0.1:1",
		RequestTimeout: time.Second,
		SecretKey:      "test-secret",
		SessionTTL:     time.Hour,
		CORSOrigin:     "http://localhost:3000",
	}
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)

	router := newServer(testConfig(), db, session.NewMemoryStore(time.Hour))
	require.NotNil(t, router)

	t.Run("Health Check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"requests":0`)
	})

	t.Run("API needs a session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestNewServer_WithoutDatabase(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	router := newServer(testConfig(), nil, store)

	s, err := store.Create(context.Background(), session.User{ID: "a-1", Role: 1}, "api-token")
	require.NoError(t, err)
	token, _, err := session.NewIssuer("test-secret", time.Hour).Issue(s)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/audit", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestNewStore(t *testing.T) {
	t.Run("Memory when no Redis URL", func(t *testing.T) {
		store, err := newStore(context.Background(), testConfig())
		require.NoError(t, err)
		assert.IsType(t, &session.MemoryStore{}, store)
	})

	t.Run("Invalid Redis URL", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedisURL = "not-a-redis-url"

		_, err := newStore(context.Background(), cfg)
		assert.Error(t, err)
	})
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	var dbOpened bool
	initDBFunc = func(cfg *config.Config) *sql.DB {
		dbOpened = true
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var gotAddr string
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "8181")
	t.Setenv("APP_ENV", "test")
	t.Setenv("API_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("REDIS_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")

	assert.NoError(t, run())
	assert.True(t, dbOpened)
	assert.Equal(t, ":8181", gotAddr)

	t.Run("Missing configuration", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")
		assert.Error(t, run())
	})
}
