package generation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pagesmith-app/pagesmith/domain/accounts"
	"github.com/pagesmith-app/pagesmith/internal/tasks"
	"github.com/pagesmith-app/pagesmith/pkg/apperror"
	"github.com/pagesmith-app/pagesmith/pkg/llm"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
)

// Store persists generation state on the owning account
type Store interface {
	SetProcessing(ctx context.Context, email string) error
	SetCompleted(ctx context.Context, email, code string) error
	SetError(ctx context.Context, email string) error
	GetGenerationState(ctx context.Context, email string) (*accounts.GenerationState, error)
}

// Service queues generations and resolves their status
type Service struct {
	store      Store
	provider   llm.Provider
	dispatcher *tasks.Dispatcher
	log        *slog.Logger
}

// NewService creates a new generation service
func NewService(store Store, provider llm.Provider, dispatcher *tasks.Dispatcher, log *slog.Logger) *Service {
	return &Service{
		store:      store,
		provider:   provider,
		dispatcher: dispatcher,
		log:        log.With(logger.Scope("generation")),
	}
}

// Submit marks the account as processing and queues the completion work.
// It returns as soon as the task is queued; callers learn the outcome by
// polling the status endpoint. A submission while a previous one is still
// in flight simply takes over the account's status: last write wins.
func (s *Service) Submit(ctx context.Context, email string, req SubmitRequest) (*SubmitResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperror.ErrBadRequest.WithMessage("prompt is required")
	}

	// The processing status must be visible before the response goes out,
	// so the first poll never observes a stale idle.
	if err := s.store.SetProcessing(ctx, email); err != nil {
		return nil, err
	}

	prompt := req.Prompt
	existing := req.ExistingCode
	err := s.dispatcher.Enqueue(func(taskCtx context.Context) {
		s.generate(taskCtx, email, prompt, existing)
	})
	if err != nil {
		s.log.Error("failed to queue generation", logger.Error(err))
		if storeErr := s.store.SetError(ctx, email); storeErr != nil {
			s.log.Error("failed to record queue failure", logger.Error(storeErr))
		}
		return nil, apperror.ErrInternal.WithMessage("Failed to start generation").WithInternal(err)
	}

	return &SubmitResponse{Message: "Generation started"}, nil
}

// generate runs on a dispatcher worker. Completion failures end with the
// account in error state; a crash that skips the final write is picked up
// later by the stale sweeper.
func (s *Service) generate(ctx context.Context, email, prompt string, existingCode *string) {
	code, err := s.provider.Complete(ctx, BuildConversation(prompt, existingCode))
	if err != nil {
		s.log.Error("generation failed",
			slog.String("email", email),
			logger.Error(err))
		if storeErr := s.store.SetError(ctx, email); storeErr != nil {
			s.log.Error("failed to record generation failure", logger.Error(storeErr))
		}
		return
	}

	if err := s.store.SetCompleted(ctx, email, code); err != nil {
		s.log.Error("failed to store generated code", logger.Error(err))
		return
	}

	s.log.Info("generation completed",
		slog.String("email", email),
		slog.Int("code_chars", len(code)))
}

// Status returns the account's current generation state
func (s *Service) Status(ctx context.Context, email string) (*accounts.GenerationState, error) {
	return s.store.GetGenerationState(ctx, email)
}
