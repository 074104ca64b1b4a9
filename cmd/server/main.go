// Package main provides the entry point for the PageSmith server, an
// LLM-backed landing page generator.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/pagesmith-app/pagesmith/domain/accounts"
	"github.com/pagesmith-app/pagesmith/domain/generation"
	"github.com/pagesmith-app/pagesmith/domain/health"
	"github.com/pagesmith-app/pagesmith/domain/pages"
	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/internal/database"
	"github.com/pagesmith-app/pagesmith/internal/migrate"
	"github.com/pagesmith-app/pagesmith/internal/server"
	"github.com/pagesmith-app/pagesmith/internal/tasks"
	"github.com/pagesmith-app/pagesmith/pkg/auth"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
)

func main() {
	// Load .env files if present (for local development)
	// Note: Load() won't overwrite existing vars, Overload() will
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		// Logging
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure modules
		logger.Module,
		config.Module,
		database.Module,
		// Listed before the server module so a DB_MIGRATE run finishes
		// before the listener comes up
		migrate.Module,
		server.Module,
		tasks.Module,

		// Auth module
		auth.Module,

		// Domain modules
		health.Module,
		accounts.Module,
		generation.Module,
		pages.Module,
	).Run()
}
