package generation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/apperror"
	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

// Handler handles HTTP requests for page generation
type Handler struct {
	svc *Service
}

// NewHandler creates a new generation handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Submit queues a generation for the authenticated account
// POST /api/generate
func (h *Handler) Submit(c echo.Context) error {
	session := auth.GetSession(c)
	if session == nil {
		return apperror.ErrUnauthorized
	}

	var req SubmitRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithMessage("invalid request body")
	}

	resp, err := h.svc.Submit(c.Request().Context(), session.Email, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Status returns the authenticated account's generation state
// GET /api/status
func (h *Handler) Status(c echo.Context) error {
	session := auth.GetSession(c)
	if session == nil {
		return apperror.ErrUnauthorized
	}

	state, err := h.svc.Status(c.Request().Context(), session.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, state)
}
