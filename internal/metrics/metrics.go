// Package metrics registers the Prometheus collectors for the service.
package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushare_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	ReportsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushare_reports_created_total",
		Help: "User reports accepted, by entity type.",
	}, []string{"entity_type"})

	ModerationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushare_moderation_decisions_total",
		Help: "Admin moderation decisions, by resulting queue status.",
	}, []string{"decision"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campushare_notifications_total",
		Help: "In-app notifications written, by outcome.",
	}, []string{"outcome"})
)

// Middleware counts every completed request against its matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
		}
		HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}
