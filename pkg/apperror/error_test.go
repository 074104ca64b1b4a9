package apperror

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "without internal error",
			err: &Error{
				HTTPStatus: http.StatusConflict,
				Code:       "conflict",
				Message:    "User already exists",
			},
			expected: "conflict: User already exists",
		},
		{
			name: "with internal error",
			err: &Error{
				HTTPStatus: http.StatusInternalServerError,
				Code:       "internal_error",
				Message:    "Something went wrong",
				Internal:   errors.New("connection refused"),
			},
			expected: "internal_error: Something went wrong (connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := ErrInternal.WithInternal(inner)

	if !errors.Is(err, inner) {
		t.Errorf("errors.Is() should match the wrapped internal error")
	}
}

func TestWithMessage(t *testing.T) {
	err := ErrConflict.WithMessage("User already exists")

	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, http.StatusConflict)
	}
	if err.Code != "conflict" {
		t.Errorf("Code = %q, want %q", err.Code, "conflict")
	}
	if err.Message != "User already exists" {
		t.Errorf("Message = %q, want %q", err.Message, "User already exists")
	}

	// The shared definition must not be mutated
	if ErrConflict.Message == "User already exists" {
		t.Error("WithMessage() mutated the shared error definition")
	}
}

func TestWithInternalPreservesPublicFields(t *testing.T) {
	inner := errors.New("duplicate key value violates unique constraint")
	err := ErrConflict.WithInternal(inner)

	if err.HTTPStatus != ErrConflict.HTTPStatus || err.Code != ErrConflict.Code || err.Message != ErrConflict.Message {
		t.Error("WithInternal() changed public fields")
	}
	if err.Internal != inner {
		t.Error("WithInternal() did not attach the internal error")
	}
}

func TestGenericAuthMessages(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable to clients
	if ErrInvalidCredentials.Message != "Invalid email or password" {
		t.Errorf("ErrInvalidCredentials.Message = %q", ErrInvalidCredentials.Message)
	}
	if ErrInvalidCredentials.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("ErrInvalidCredentials.HTTPStatus = %d", ErrInvalidCredentials.HTTPStatus)
	}
}
