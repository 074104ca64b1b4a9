package pgutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "typed unique violation",
			err:  &pgconn.PgError{Code: CodeUniqueViolation},
			want: true,
		},
		{
			name: "wrapped typed unique violation",
			err:  fmt.Errorf("insert account: %w", &pgconn.PgError{Code: CodeUniqueViolation}),
			want: true,
		},
		{
			name: "typed error with different code",
			err:  &pgconn.PgError{Code: CodeCheckViolation},
			want: false,
		},
		{
			name: "flattened SQLSTATE message",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "accounts_email_key" (SQLSTATE 23505)`),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsCheckViolation(t *testing.T) {
	if !IsCheckViolation(&pgconn.PgError{Code: CodeCheckViolation}) {
		t.Error("typed check violation not detected")
	}
	if IsCheckViolation(&pgconn.PgError{Code: CodeUniqueViolation}) {
		t.Error("unique violation misclassified as check violation")
	}
}

func TestIsNotNullViolation(t *testing.T) {
	if !IsNotNullViolation(errors.New("null value in column (SQLSTATE 23502)")) {
		t.Error("flattened not-null violation not detected")
	}
	if IsNotNullViolation(nil) {
		t.Error("nil error misclassified")
	}
}
