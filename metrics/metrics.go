// Package metrics exposes Prometheus instrumentation for the request pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "blog"

var (
	// RequestsTotal counts handled requests by handler name and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of handled requests",
		},
		[]string{"handler", "status"},
	)

	// RequestDuration measures the time spent in the middleware chain and
	// handler, including storage round-trips.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent processing requests",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"handler"},
	)
)

// ObserveRequest records one completed request.
func ObserveRequest(handler string, status int, d time.Duration) {
	RequestsTotal.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(handler).Observe(d.Seconds())
}

// Server returns an HTTP server exposing /metrics on addr.
func Server(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}
