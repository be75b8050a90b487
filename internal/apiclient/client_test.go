package apiclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"backoffice-console/internal/logger"
	"backoffice-console/internal/metrics"
	"backoffice-console/internal/role"
	"backoffice-console/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newSession(t *testing.T) (*session.MemoryStore, *session.Session) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	s, err := store.Create(context.Background(), session.User{ID: "7", Role: role.Admin}, "upstream-token")
	require.NoError(t, err)
	return store, s
}

func newClient(rt http.RoundTripper, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: rt})}, opts...)
	return New("http://api.test/api/", 5*time.Second, opts...)
}

func TestClient_Get(t *testing.T) {
	_, s := newSession(t)

	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "http://api.test/api/Orders/42", req.URL.String())
		assert.Equal(t, "Bearer upstream-token", req.Header.Get("Authorization"))
		assert.Equal(t, "req-1", req.Header.Get(logger.RequestIDHeader))
		return jsonResponse(http.StatusOK, `{"id":"42"}`)
	}))

	var out struct {
		ID string `json:"id"`
	}
	ctx := logger.WithRequestID(context.Background(), "req-1")
	err := c.Get(ctx, s, "/Orders/42", &out)
	require.NoError(t, err)
	assert.Equal(t, "42", out.ID)
}

func TestClient_PostEncodesBody(t *testing.T) {
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Empty(t, req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		body, _ := io.ReadAll(req.Body)
		assert.JSONEq(t, `{"Email":"a@b.c","Password":"pw"}`, string(body))
		return jsonResponse(http.StatusOK, `{"token":"t"}`)
	}))

	var out map[string]string
	err := c.Post(context.Background(), nil, "Users/login", map[string]string{"Email": "a@b.c", "Password": "pw"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t", out["token"])
}

func TestClient_EmptyBodyIsNotDecoded(t *testing.T) {
	_, s := newSession(t)
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusNoContent, "")
	}))

	var out map[string]any
	assert.NoError(t, c.Put(context.Background(), s, "Orders/1/approve", nil, &out))
	assert.Nil(t, out)
	assert.NoError(t, c.Delete(context.Background(), s, "Products/1"))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		msg    string
	}{
		{"forbidden", http.StatusForbidden, `{"message":"nope"}`, ErrForbidden, "nope"},
		{"not found", http.StatusNotFound, ``, ErrNotFound, ""},
		{"conflict", http.StatusConflict, `{"error":"Product cannot be deleted as there are pending orders."}`, ErrConflict, "Product cannot be deleted as there are pending orders."},
		{"server error", http.StatusInternalServerError, `boom`, ErrUpstream, "boom"},
		{"bad request", http.StatusBadRequest, `{"title":"One or more validation errors occurred."}`, ErrUpstream, "One or more validation errors occurred."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := newSession(t)
			c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
				return jsonResponse(tt.status, tt.body)
			}))

			err := c.Patch(context.Background(), s, "Products/1/status", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, StatusOf(err))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.msg, apiErr.Message)
			assert.False(t, s.Ended())
		})
	}
}

func TestClient_UnauthorizedEndsSession(t *testing.T) {
	store, s := newSession(t)

	var hooked *session.Session
	calls := 0
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		calls++
		return jsonResponse(http.StatusUnauthorized, `{"message":"token expired"}`)
	}), WithUnauthorizedHook(func(ctx context.Context, sess *session.Session) {
		hooked = sess
		_ = store.End(ctx, sess)
	}))

	err := c.Get(context.Background(), s, "Orders", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Same(t, s, hooked)
	assert.True(t, s.Ended())

	// no further upstream calls once the session is gone
	err = c.Get(context.Background(), s, "Orders", nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, calls)
}

func TestClient_UnauthorizedWithoutSessionSkipsHook(t *testing.T) {
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusUnauthorized, ``)
	}), WithUnauthorizedHook(func(ctx context.Context, sess *session.Session) {
		t.Fatal("hook must not run for unauthenticated calls")
	}))

	err := c.Post(context.Background(), nil, "Users/login", map[string]string{}, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_TransportError(t *testing.T) {
	_, s := newSession(t)
	c := newClient(MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))

	err := c.Get(context.Background(), s, "Orders", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, StatusOf(err))
}

func TestClient_DecodeError(t *testing.T) {
	_, s := newSession(t)
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, `{not json`)
	}))

	var out map[string]any
	err := c.Get(context.Background(), s, "Orders", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_EncodeError(t *testing.T) {
	_, s := newSession(t)
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		t.Fatal("request must not be sent")
		return nil
	}))

	err := c.Post(context.Background(), s, "Orders", map[string]any{"bad": make(chan int)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode request")
}

func TestClient_ResponseTooLarge(t *testing.T) {
	_, s := newSession(t)
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, `"`+strings.Repeat("a", maxResponseBytes)+`"`)
	}))

	var out string
	err := c.Get(context.Background(), s, "Orders", &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "response exceeds")
	assert.Empty(t, out)
}

func TestClient_ResponseAtLimit(t *testing.T) {
	_, s := newSession(t)
	payload := `"` + strings.Repeat("a", maxResponseBytes-2) + `"`
	c := newClient(MockRoundTripper(func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, payload)
	}))

	var out string
	require.NoError(t, c.Get(context.Background(), s, "Orders", &out))
	assert.Len(t, out, maxResponseBytes-2)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "Orders/a%2Fb/items/p%201/deliver", Path("Orders/%s/items/%s/deliver", "a/b", "p 1"))
}

func TestClient_Metrics(t *testing.T) {
	m := &metrics.Upstream{}

	statuses := []int{http.StatusOK, http.StatusUnauthorized, http.StatusInternalServerError}
	i := 0
	c := newClient(MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
		if i == len(statuses) {
			return nil, errors.New("connection reset")
		}
		status := statuses[i]
		i++
		return jsonResponse(status, `{}`), nil
	}), WithMetrics(m))

	for range 4 {
		_ = c.Get(context.Background(), nil, "Orders", nil)
	}
	snap := m.Snapshot()
	assert.Equal(t, uint64(4), snap.Requests)
	assert.Equal(t, uint64(2), snap.Failures)
	assert.Equal(t, uint64(1), snap.Unauthorized)
}
