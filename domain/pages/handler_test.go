package pages

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/pkg/auth"
)

func newTestPages(t *testing.T) (*echo.Echo, *auth.SessionManager) {
	t.Helper()

	h, err := NewHandler()
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := auth.NewSessionManager(&config.Config{
		Session: config.SessionConfig{
			Secret:     "test-secret",
			CookieName: "pagesmith_session",
			TTL:        time.Hour,
		},
	})

	e := echo.New()
	RegisterRoutes(e, h, auth.NewMiddleware(sessions, log))
	return e, sessions
}

func get(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPages_HomeRequiresSession(t *testing.T) {
	e, _ := newTestPages(t)

	rec := get(e, "/", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("home without session status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestPages_HomeWithSession(t *testing.T) {
	e, sessions := newTestPages(t)
	cookie, err := sessions.Issue("acc-1", "user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	rec := get(e, "/", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("home status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Landing Page Generator") {
		t.Error("home page does not contain the generator heading")
	}
	if !strings.Contains(rec.Body.String(), "landing-page.html") {
		t.Error("home page does not wire the download filename")
	}
}

func TestPages_LoginAndSignup(t *testing.T) {
	e, _ := newTestPages(t)

	for _, path := range []string{"/login", "/signup"} {
		rec := get(e, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
		if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
			t.Errorf("%s content type = %q", path, ct)
		}
	}
}

func TestPages_AuthenticatedUserLeavesLogin(t *testing.T) {
	e, sessions := newTestPages(t)
	cookie, err := sessions.Issue("acc-1", "user@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	for _, path := range []string{"/login", "/signup"} {
		rec := get(e, path, cookie)
		if rec.Code != http.StatusFound {
			t.Errorf("%s with session status = %d, want 302", path, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
			t.Errorf("%s redirect = %q, want /", path, loc)
		}
	}
}
