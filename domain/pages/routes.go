package pages

import (
	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// RegisterRoutes registers the page routes. The home page needs a session;
// login and signup bounce authenticated users back home.
func RegisterRoutes(e *echo.Echo, h *Handler, authMiddleware *auth.Middleware) {
	e.GET("/", h.Home, authMiddleware.RequirePage())
	e.GET("/login", h.Login, authMiddleware.RedirectAuthenticated())
	e.GET("/signup", h.Signup, authMiddleware.RedirectAuthenticated())
}
