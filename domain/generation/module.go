package generation

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/pagesmith-app/pagesmith/domain/accounts"
	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/pkg/llm"
	"github.com/pagesmith-app/pagesmith/pkg/llm/gemini"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
)

// Module provides the generation domain
var Module = fx.Module("generation",
	fx.Provide(func(r *accounts.Repository) Store { return r }),
	fx.Provide(newProvider),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerSweeper),
)

// newProvider builds the completion provider. Without an API key the
// disabled provider stands in, so submissions still resolve to an error
// status instead of the server refusing to start.
func newProvider(cfg *config.Config, log *slog.Logger) (llm.Provider, error) {
	if !cfg.LLM.IsEnabled() {
		log.Warn("completion provider not configured; generations will fail",
			logger.Scope("generation"))
		return llm.Disabled{}, nil
	}

	return gemini.NewClient(context.Background(), gemini.Config{
		APIKey:          cfg.LLM.APIKey,
		Model:           cfg.LLM.Model,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Timeout:         cfg.LLM.Timeout,
	}, gemini.WithLogger(log))
}

func registerSweeper(lc fx.Lifecycle, repo *accounts.Repository, cfg *config.Config, log *slog.Logger) {
	if !cfg.Sweeper.Enabled {
		return
	}

	sweeper := NewSweeper(repo, cfg, log)
	lc.Append(fx.Hook{
		OnStart: sweeper.Start,
		OnStop:  sweeper.Stop,
	})
}
