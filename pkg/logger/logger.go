// Package logger provides slog-based structured logging for the application.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
)

// Module provides the application logger
var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Provide(NewHTTPLogger),
)

// NewLogger creates the root slog.Logger.
// Level is taken from LOG_LEVEL (debug, info, warn, error); defaults to info.
// When GO_ENV=production the handler emits JSON, otherwise human-readable text.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// Scope returns a slog attribute identifying a logger scope (e.g. "auth", "generation.svc")
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Error returns a slog attribute for an error value
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// HTTPLogger writes one line per HTTP request to a dedicated access log.
// It is separate from the structured application log so access logs can be
// shipped or rotated independently. When HTTP_LOG_FILE is unset, lines go
// to stdout.
type HTTPLogger struct {
	mu  sync.Mutex
	out *os.File
}

// NewHTTPLogger creates an HTTP access logger
func NewHTTPLogger(lc fx.Lifecycle) (*HTTPLogger, error) {
	out := os.Stdout

	if path := os.Getenv("HTTP_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open http log file: %w", err)
		}
		out = f

		lc.Append(fx.StopHook(func() error {
			return f.Close()
		}))
	}

	return &HTTPLogger{out: out}, nil
}

// LogRequest writes a single access log line
func (l *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	line := fmt.Sprintf("%s %s %s %s %d %s %q %s\n",
		time.Now().UTC().Format(time.RFC3339), ip, method, uri, status, latency, userAgent, requestID)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.WriteString(line)
}
