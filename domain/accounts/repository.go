package accounts

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/uptrace/bun"

	"github.com/pagesmith-app/pagesmith/pkg/apperror"
	"github.com/pagesmith-app/pagesmith/pkg/logger"
	"github.com/pagesmith-app/pagesmith/pkg/pgutils"
)

// Repository handles database operations for accounts, including the
// generation state columns the worker and status endpoint read and write.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

// NewRepository creates a new accounts repository
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("accounts.repo")),
	}
}

// Create inserts a new account. A duplicate email fails with a conflict;
// uniqueness is enforced by the database, not a racy pre-check.
func (r *Repository) Create(ctx context.Context, account *Account) error {
	_, err := r.db.NewInsert().
		Model(account).
		Returning("id, created_at, updated_at").
		Exec(ctx)

	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return apperror.NewConflict("User already exists")
		}
		r.log.Error("failed to create account", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}

	return nil
}

// GetByEmail retrieves an account by email. Returns (nil, nil) when no
// account exists; callers decide whether that is an error.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.db.NewSelect().
		Model(&account).
		Where("email = ?", email).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get account by email", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &account, nil
}

// GetGenerationState returns the status and artifact for an account
func (r *Repository) GetGenerationState(ctx context.Context, email string) (*GenerationState, error) {
	var state GenerationState
	err := r.db.NewSelect().
		Model((*Account)(nil)).
		Column("status", "generated_code").
		Where("email = ?", email).
		Scan(ctx, &state.Status, &state.Code)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound.WithMessage("account not found")
		}
		r.log.Error("failed to get generation state", logger.Error(err))
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	return &state, nil
}

// SetProcessing marks an account's generation as in flight. The artifact
// is left untouched; it is only overwritten on success.
func (r *Repository) SetProcessing(ctx context.Context, email string) error {
	return r.setStatus(ctx, email, StatusProcessing)
}

// SetCompleted stores the artifact and the completed status in one UPDATE
// so a poller observing completed always sees the matching artifact.
func (r *Repository) SetCompleted(ctx context.Context, email, code string) error {
	result, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("status = ?", StatusCompleted).
		Set("generated_code = ?", code).
		Set("updated_at = ?", time.Now()).
		Where("email = ?", email).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to complete generation", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return r.requireRow(result)
}

// SetError marks a generation as failed without touching the artifact
func (r *Repository) SetError(ctx context.Context, email string) error {
	return r.setStatus(ctx, email, StatusError)
}

func (r *Repository) setStatus(ctx context.Context, email string, status Status) error {
	result, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("email = ?", email).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to set status",
			slog.String("status", string(status)),
			logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return r.requireRow(result)
}

func (r *Repository) requireRow(result sql.Result) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.ErrNotFound.WithMessage("account not found")
	}
	return nil
}

// SweepStale flips accounts stuck in processing for longer than staleAfter
// to error. The dispatcher never retries, so without this a crash between
// the processing write and the final write would strand pollers.
func (r *Repository) SweepStale(ctx context.Context, staleAfter time.Duration) (int64, error) {
	result, err := r.db.NewUpdate().
		Model((*Account)(nil)).
		Set("status = ?", StatusError).
		Set("updated_at = ?", time.Now()).
		Where("status = ?", StatusProcessing).
		Where("updated_at < ?", time.Now().Add(-staleAfter)).
		Exec(ctx)

	if err != nil {
		r.log.Error("failed to sweep stale generations", logger.Error(err))
		return 0, apperror.ErrDatabase.WithInternal(err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
