package health

import (
	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// RegisterRoutes registers health check routes. Liveness and readiness
// probes stay open; the metrics endpoint requires a session.
func RegisterRoutes(e *echo.Echo, h *Handler, m *MetricsHandler, authMiddleware *auth.Middleware) {
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Healthz)
	e.GET("/ready", h.Ready)
	e.GET("/debug", h.Debug)
	e.GET("/api/health", h.Health)

	e.GET("/api/metrics/generation", m.GenerationMetrics, authMiddleware.RequireSession())
}
