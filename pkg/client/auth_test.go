package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authTestServer simulates the token lifecycle: requests bearing
// validToken succeed, everything else gets a 401; /api/refresh rotates
// to validToken unless refusing.
type authTestServer struct {
	*httptest.Server
	validToken   string
	refuse       bool
	refreshDelay time.Duration

	meCalls      atomic.Int32
	refreshCalls atomic.Int32
}

func newAuthTestServer(t *testing.T) *authTestServer {
	t.Helper()
	s := &authTestServer{validToken: "fresh-token"}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/refresh":
			s.refreshCalls.Add(1)
			if s.refreshDelay > 0 {
				time.Sleep(s.refreshDelay)
			}
			if s.refuse {
				writeEnvelope(w, http.StatusUnauthorized, false, "refresh token invalide", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{"access_token": s.validToken})
		case "/api/me":
			s.meCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer "+s.validToken {
				writeEnvelope(w, http.StatusUnauthorized, false, "token expiré", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{"id": 1, "username": "samira", "total_score": 10})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func TestAuthedDo_RefreshAndRetryOnce(t *testing.T) {
	srv := newAuthTestServer(t)

	c := New(srv.URL, "expired-token")
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "samira", me.Username)

	assert.Equal(t, int32(1), srv.refreshCalls.Load(), "exactly one refresh call")
	assert.Equal(t, int32(2), srv.meCalls.Load(), "original request plus one replay")
	assert.Equal(t, "fresh-token", c.Token(), "refresh replaces the stored credential")
}

func TestAuthedDo_RefreshFailureIsSessionExpired(t *testing.T) {
	srv := newAuthTestServer(t)
	srv.refuse = true

	c := New(srv.URL, "expired-token")
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Contains(t, err.Error(), "refresh token invalide")

	assert.Equal(t, int32(1), srv.refreshCalls.Load())
	assert.Equal(t, int32(1), srv.meCalls.Load(), "no replay after a failed refresh")
}

func TestAuthedDo_SecondUnauthorizedPropagates(t *testing.T) {
	// The refresh hands out a token the API still rejects: the replay's
	// 401 must propagate instead of looping into another refresh.
	var refreshCalls, meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/refresh":
			refreshCalls.Add(1)
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{"access_token": "still-bad"})
		case "/api/me":
			meCalls.Add(1)
			writeEnvelope(w, http.StatusUnauthorized, false, "token expiré", nil)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "expired-token")
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized), "err = %v", err)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	assert.Equal(t, int32(1), refreshCalls.Load(), "bounded to a single refresh cycle")
	assert.Equal(t, int32(2), meCalls.Load())
}

func TestRefresh_DeduplicatesConcurrent401s(t *testing.T) {
	srv := newAuthTestServer(t)
	srv.refreshDelay = 50 * time.Millisecond

	c := New(srv.URL, "expired-token")

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Me(context.Background())
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), srv.refreshCalls.Load(), "concurrent 401s collapse into one refresh")
}

func TestRefresh_FiresPersistHook(t *testing.T) {
	srv := newAuthTestServer(t)

	var mu sync.Mutex
	var persisted []string
	c := New(srv.URL, "expired-token")
	c.OnTokenRefresh = func(tok string) {
		mu.Lock()
		persisted = append(persisted, tok)
		mu.Unlock()
	}

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh-token"}, persisted)
}

func TestRefresh_EmptyTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/refresh":
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{})
		default:
			writeEnvelope(w, http.StatusUnauthorized, false, "token expiré", nil)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "expired-token")
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
