package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/apperror"
	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// Handler handles HTTP requests for signup, login and logout
type Handler struct {
	svc      *Service
	sessions *auth.SessionManager
}

// NewHandler creates a new accounts handler
func NewHandler(svc *Service, sessions *auth.SessionManager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

// Signup registers a new account
// POST /api/signup
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.Signup(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and sets the session cookie
// POST /api/login
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	account, err := h.svc.Authenticate(c.Request().Context(), req)
	if err != nil {
		return err
	}

	cookie, err := h.sessions.Issue(account.ID.String(), account.Email)
	if err != nil {
		return apperror.NewInternal(err)
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, LoginResponse{Success: true, Email: account.Email})
}

// Logout clears the session cookie. It works without a valid session so a
// half-expired browser can always reach a clean state.
// POST /api/logout
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(h.sessions.ClearCookie())
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
