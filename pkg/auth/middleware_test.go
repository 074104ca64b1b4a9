package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pagesmith-app/pagesmith/pkg/apperror"
)

func newTestMiddleware(t *testing.T) (*Middleware, *SessionManager) {
	t.Helper()
	m := newTestManager(t, time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMiddleware(m, log), m
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireSession_NoCookie(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw.RequireSession()(okHandler)(c)
	if err == nil {
		t.Fatal("expected an error without a session cookie")
	}
	appErr, ok := err.(*apperror.Error)
	if !ok || appErr.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("error = %v, want 401 app error", err)
	}
}

func TestRequireSession_ValidCookie(t *testing.T) {
	mw, sessions := newTestMiddleware(t)
	e := echo.New()

	cookie, err := sessions.Issue("acct-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		session := GetSession(c)
		if session == nil {
			t.Fatal("GetSession() returned nil inside protected handler")
		}
		if session.Email != "a@b.com" {
			t.Errorf("session email = %q, want %q", session.Email, "a@b.com")
		}
		return c.NoContent(http.StatusOK)
	}

	if err := mw.RequireSession()(handler)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if !handlerCalled {
		t.Error("handler was not called with a valid session")
	}
}

func TestRequireSession_RejectsInvalidSubjectEmail(t *testing.T) {
	mw, sessions := newTestMiddleware(t)
	e := echo.New()

	cookie, err := sessions.Issue("acct-1", "not-an-email")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw.RequireSession()(okHandler)(c); err == nil {
		t.Error("sessions whose subject is not an email address must be rejected")
	}
}

func TestRequirePage_RedirectsToLogin(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw.RequirePage()(okHandler)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Errorf("redirect location = %q, want %q", loc, "/login")
	}
}

func TestRedirectAuthenticated(t *testing.T) {
	mw, sessions := newTestMiddleware(t)
	e := echo.New()

	cookie, err := sessions.Issue("acct-1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw.RedirectAuthenticated()(okHandler)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/" {
		t.Errorf("redirect location = %q, want %q", loc, "/")
	}

	// Without a cookie the login page renders normally
	req2 := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	if err := mw.RedirectAuthenticated()(okHandler)(c2); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if rec2.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec2.Code, http.StatusOK)
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(3)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("attempt beyond the burst should be denied")
	}

	// Other IPs are unaffected
	if !l.Allow("10.0.0.2") {
		t.Error("a different IP should have its own bucket")
	}
}
