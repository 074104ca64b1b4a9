package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status tracks the lifecycle of an account's most recent generation
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Valid reports whether s is a known status value
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// Account represents a row in the accounts table. The table also carries
// the generation state: status and the most recent artifact. Status and
// artifact are mutated only by the generation worker; writing them in a
// single UPDATE keeps a completed status and its artifact consistent.
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email         string    `bun:"email,notnull,unique"`
	PasswordHash  string    `bun:"password_hash,notnull"`
	Status        Status    `bun:"status,notnull,default:'idle'"`
	GeneratedCode *string   `bun:"generated_code"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// GenerationState is the slice of an account the status endpoint exposes
type GenerationState struct {
	Status Status  `json:"status"`
	Code   *string `json:"code"`
}

// SignupRequest is the request body for signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupResponse is the response body for a successful signup
type SignupResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the response body for a successful login
type LoginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}
