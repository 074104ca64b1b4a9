// Package pages serves the HTML shell of the application: the login and
// signup forms and the generator home page. The pages are static; all
// dynamic behavior goes through the JSON API.
package pages

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templates embed.FS

// Handler serves the embedded HTML pages
type Handler struct {
	login  []byte
	signup []byte
	home   []byte
}

// NewHandler loads the embedded pages
func NewHandler() (*Handler, error) {
	h := &Handler{}
	for _, p := range []struct {
		name string
		dst  *[]byte
	}{
		{"login", &h.login},
		{"signup", &h.signup},
		{"home", &h.home},
	} {
		body, err := templates.ReadFile("templates/" + p.name + ".html")
		if err != nil {
			return nil, fmt.Errorf("load page %s: %w", p.name, err)
		}
		*p.dst = body
	}
	return h, nil
}

// Home serves the generator page
// GET /
func (h *Handler) Home(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.home)
}

// Login serves the login page
// GET /login
func (h *Handler) Login(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.login)
}

// Signup serves the signup page
// GET /signup
func (h *Handler) Signup(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.signup)
}
