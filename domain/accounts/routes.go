package accounts

import (
	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// RegisterRoutes registers the account routes. Login is rate limited per
// client IP to slow down credential stuffing.
func RegisterRoutes(e *echo.Echo, h *Handler, limiter *auth.IPRateLimiter) {
	g := e.Group("/api")

	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login, limiter.Limit())
	g.POST("/logout", h.Logout)
}
