package accounts

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/pagesmith-app/pagesmith/internal/config"
	"github.com/pagesmith-app/pagesmith/pkg/apperror"
	"github.com/pagesmith-app/pagesmith/pkg/auth"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
)

// accountStore is the slice of the repository the service needs
type accountStore interface {
	Create(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// Service handles signup and credential verification
type Service struct {
	repo       accountStore
	validate   *validator.Validate
	bcryptCost int
	log        *slog.Logger
}

// NewService creates a new accounts service
func NewService(repo *Repository, cfg *config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		validate:   validator.New(),
		bcryptCost: cfg.Session.BcryptCost,
		log:        log.With(logger.Scope("accounts.svc")),
	}
}

// Signup registers a new account with status idle and no artifact
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.NewBadRequest("A valid email and a password of at least 8 characters are required")
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	account := &Account{
		Email:        req.Email,
		PasswordHash: hash,
		Status:       StatusIdle,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("account created", slog.String("email", account.Email))

	return &SignupResponse{Success: true, Email: account.Email}, nil
}

// Authenticate verifies credentials and returns the matching account.
// Unknown email, a stored email that no longer parses as one, and a
// password mismatch all yield the same generic unauthorized error.
func (s *Service) Authenticate(ctx context.Context, req LoginRequest) (*Account, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.NewBadRequest("Email and password are required")
	}

	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if s.validate.Var(account.Email, "required,email") != nil {
		s.log.Warn("account has invalid stored email", slog.String("id", account.ID.String()))
		return nil, apperror.ErrInvalidCredentials
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return account, nil
}
