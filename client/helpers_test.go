package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/luminox/luminox/db"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// apiServer is a fake backend that accepts only one bearer token at a time and
// records every request it sees.
type apiServer struct {
	*httptest.Server

	valid        atomic.Value // string, the accepted access token
	refreshCalls atomic.Int32
	refreshTo    string // access token handed out by the refresh endpoint
	refreshFails bool

	mu    sync.Mutex
	seen  []seenRequest
	route http.HandlerFunc // serves authorised, non-auth requests
}

type seenRequest struct {
	Method, Path, Auth, RequestID string
}

func newAPIServer(t *testing.T, validToken string, route http.HandlerFunc) *apiServer {
	t.Helper()
	s := &apiServer{route: route, refreshTo: "new-access"}
	s.valid.Store(validToken)
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.seen = append(s.seen, seenRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), RequestID: r.Header.Get("X-Request-Id")})
	s.mu.Unlock()

	if r.URL.Path == RefreshPath {
		s.refreshCalls.Add(1)
		if s.refreshFails {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"invalid refresh token"}`))
			return
		}
		s.valid.Store(s.refreshTo)
		writeJSON(w, http.StatusOK, map[string]string{"access_token": s.refreshTo, "refresh_token": "rotated-refresh"})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+s.valid.Load().(string) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "not authenticated"})
		return
	}
	if s.route != nil {
		s.route(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": r.URL.Path})
}

func (s *apiServer) requests() []seenRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]seenRequest(nil), s.seen...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// storeWith returns an in-memory token store holding access and refresh.
func storeWith(access, refresh string) *db.MemoryTokenStore {
	s := db.NewMemoryTokenStore()
	_ = s.SetTokens(access, refresh)
	return s
}

// blockingRefresher hands out fixed tokens once release is closed.
type blockingRefresher struct {
	calls   atomic.Int32
	release chan struct{}
	access  string
	refresh string
	err     error
}

func (b *blockingRefresher) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return "", "", b.err
	}
	return b.access, b.refresh, nil
}

func queued() float64 { return testutil.ToFloat64(queuedTotal) }
