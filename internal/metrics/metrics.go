// Package metrics defines the Prometheus collectors for the cleaning
// schedule API and an echo middleware that feeds them. Collectors are
// registered with the default registry via promauto; expose them by
// mounting promhttp.Handler at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cleansched"

// RequestsTotal counts handled HTTP requests by method, route and
// response status.
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// RequestDuration measures request latency per route.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// PlacesCompletedTotal counts completed cleaning actions.
var PlacesCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "places_completed_total",
		Help:      "Total number of places marked as cleaned.",
	},
)

// Instrument records request count and latency for every handled
// request. Mount it early so error responses are counted too.
func Instrument() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			RequestsTotal.WithLabelValues(
				c.Request().Method, route, strconv.Itoa(c.Response().Status),
			).Inc()
			RequestDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
			return err
		}
	}
}
