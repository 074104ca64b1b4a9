// Package auth provides the cookie session layer: signed session tokens,
// password hashing, and Echo middleware for protected routes and pages.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/pkg/apperror"
)

var Module = fx.Module("auth",
	fx.Provide(NewSessionManager),
	fx.Provide(NewMiddleware),
	fx.Provide(func(cfg *config.Config) *IPRateLimiter {
		return NewIPRateLimiter(cfg.Session.LoginRatePerMinute)
	}),
)

// Session identifies an authenticated account
type Session struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
}

type sessionClaims struct {
	AccountID string `json:"aid"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies signed session cookies
type SessionManager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager creates a session manager from configuration
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret:     []byte(cfg.Session.Secret),
		cookieName: cfg.Session.CookieName,
		ttl:        cfg.Session.TTL,
		secure:     cfg.Session.CookieSecure,
	}
}

// CookieName returns the name of the session cookie
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Issue creates a session cookie for the given account
func (m *SessionManager) Issue(accountID, email string) (*http.Cookie, error) {
	now := time.Now()
	claims := sessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	}, nil
}

// Verify validates a session token and returns the session it carries
func (m *SessionManager) Verify(tokenString string) (*Session, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		// jwt/v5 joins validation errors, so match by errors.Is
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrSessionExpired
		}
		return nil, apperror.ErrUnauthorized.WithInternal(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperror.ErrUnauthorized
	}

	return &Session{
		AccountID: claims.AccountID,
		Email:     claims.Subject,
	}, nil
}

// ClearCookie returns a cookie that deletes the session
func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
