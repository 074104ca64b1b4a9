package generation

import (
	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// RegisterRoutes registers the generation routes
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	g := e.Group("/api")
	g.Use(authMiddleware.RequireSession())

	g.POST("/generate", h.Submit)
	g.GET("/status", h.Status)
}
