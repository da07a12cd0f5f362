// Package metrics exposes the Prometheus collectors for the dashboard.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tickdesk_http_requests_total",
		Help: "HTTP requests processed, labeled by method, route and status.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes request latency per route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tickdesk_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// TicketsOpen tracks tickets not yet done, refreshed by the sweep job.
	TicketsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickdesk_tickets_open",
		Help: "Tickets currently not done.",
	})

	// TicketsOverdue tracks not-done tickets whose due date has passed.
	TicketsOverdue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tickdesk_tickets_overdue",
		Help: "Tickets past their due date and not done.",
	})
)

// Middleware records request counts and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
