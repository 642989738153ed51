package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry = prometheus.NewRegistry()
	metrics  = promauto.With(registry)

	requestsTotal = metrics.NewCounterVec(prometheus.CounterOpts{
		Name: "luminox_client_requests_total",
		Help: "API requests sent, by method and status code (\"error\" for transport failures).",
	}, []string{"method", "code"})

	refreshTotal = metrics.NewCounterVec(prometheus.CounterOpts{
		Name: "luminox_client_refresh_total",
		Help: "Token refresh attempts by outcome.",
	}, []string{"outcome"})

	queuedTotal = metrics.NewCounter(prometheus.CounterOpts{
		Name: "luminox_client_queued_requests_total",
		Help: "Requests that waited on an in-flight token refresh.",
	})
)

// Metrics returns the gatherer holding the client counters.
func Metrics() prometheus.Gatherer { return registry }
