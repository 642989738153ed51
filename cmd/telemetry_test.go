package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/config"
	"github.com/luminox/luminox/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

type pushed struct {
	method, path string
	body         int
}

func newPushgateway(t *testing.T) (*httptest.Server, func() []pushed) {
	t.Helper()
	var mu sync.Mutex
	var got []pushed
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, pushed{method: r.Method, path: r.URL.Path, body: len(body)})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, func() []pushed {
		mu.Lock()
		defer mu.Unlock()
		return append([]pushed(nil), got...)
	}
}

func TestPushMetrics_SendsClientCounters(t *testing.T) {
	gateway, requests := newPushgateway(t)
	a, store := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, []map[string]any{})
	})
	loggedIn(t, store, map[string]any{})
	a.cfg = &config.Config{PushgatewayURL: gateway.URL}

	_, err := run(t, a, "", "cliente", "list")
	require.NoError(t, err)
	a.pushMetrics(context.Background())

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].method)
	assert.Equal(t, "/metrics/job/luminox", got[0].path)
	assert.Positive(t, got[0].body)
}

func TestPushMetrics_SkippedWithoutGateway(t *testing.T) {
	_, requests := newPushgateway(t)
	a := &app{cfg: &config.Config{}}
	a.pushMetrics(context.Background())

	a = &app{}
	a.pushMetrics(context.Background())

	assert.Empty(t, requests())
}

func TestPushMetrics_ReportsGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	err := pushMetrics(context.Background(), server.URL, client.Metrics())
	assert.ErrorContains(t, err, "failed to push metrics")
}

func TestSetupTracing_WritesClientSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	spans := new(bytes.Buffer)
	shutdown, err := setupTracing(spans)
	require.NoError(t, err)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{})
	}))
	t.Cleanup(api.Close)

	c := client.New(api.URL, db.NewMemoryTokenStore())
	require.NoError(t, c.Get(context.Background(), "/api/v1/ping", nil))
	require.NoError(t, shutdown(context.Background()))

	out := spans.String()
	assert.Contains(t, out, "TraceID")
	assert.Contains(t, out, "GET")
	assert.Contains(t, out, "luminox")
}
