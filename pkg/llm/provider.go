// Package llm provides interfaces for completion providers.
package llm

import (
	"context"
	"errors"
)

// Role identifies who authored a conversation message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a completion conversation
type Message struct {
	Role    Role
	Content string
}

// Provider is an interface for completion providers
type Provider interface {
	// Complete generates a completion for the given conversation
	Complete(ctx context.Context, messages []Message) (string, error)

	// IsConfigured returns true if the provider is properly configured
	IsConfigured() bool
}

// ErrNotConfigured is returned when no completion provider is available
var ErrNotConfigured = errors.New("completion provider is not configured")

// Disabled is a Provider that always fails. It stands in when no API key
// is configured so generation submissions still resolve to an error status
// instead of panicking.
type Disabled struct{}

// Complete always returns ErrNotConfigured
func (Disabled) Complete(ctx context.Context, messages []Message) (string, error) {
	return "", ErrNotConfigured
}

// IsConfigured returns false
func (Disabled) IsConfigured() bool {
	return false
}
