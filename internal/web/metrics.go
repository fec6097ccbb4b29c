package web

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal   *prometheus.CounterVec   //nolint:gochecknoglobals
	requestDuration *prometheus.HistogramVec //nolint:gochecknoglobals
	metricsOnce     sync.Once                //nolint:gochecknoglobals
)

// requestMetrics counts requests and observes their latency per route.
// Unmatched requests are labeled with the route "unknown" to keep the label set bounded.
func requestMetrics() fiber.Handler {
	metricsOnce.Do(func() {
		requestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of http requests, differentiated by method, route and status.",
			},
			[]string{"method", "route", "status"},
		)
		requestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of http requests, differentiated by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
	})

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()

		if err != nil {
			status = fiber.StatusInternalServerError

			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}

			if status == fiber.StatusNotFound {
				route = "unknown"
			}
		}

		requestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}
