// Package gemini provides a Gemini API completion client.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/pagesmith-app/pagesmith/pkg/llm"
)

const (
	// DefaultModel is the default completion model
	DefaultModel = "gemini-2.0-flash"

	// DefaultTimeout is the default completion request timeout
	DefaultTimeout = 120 * time.Second

	// DefaultTemperature biases toward structurally consistent output
	DefaultTemperature = 0.4

	// DefaultMaxOutputTokens bounds the generated page size
	DefaultMaxOutputTokens = 3000
)

// Config holds the configuration for the Gemini completion client
type Config struct {
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// Client is a Gemini API completion client
type Client struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	timeout         time.Duration
	log             *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new Gemini completion client
func NewClient(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c := &Client{
		client:          client,
		model:           cfg.Model,
		temperature:     float32(cfg.Temperature),
		maxOutputTokens: int32(cfg.MaxOutputTokens),
		timeout:         cfg.Timeout,
		log:             slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Complete generates a completion for the given conversation
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	system, contents, err := BuildContents(messages)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxOutputTokens,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("completion returned no text")
	}

	c.log.Debug("completion finished",
		slog.String("model", c.model),
		slog.Duration("duration", time.Since(start)),
		slog.Int("output_chars", len(text)),
	)

	return text, nil
}

// IsConfigured returns true; a constructed client always has an API key
func (c *Client) IsConfigured() bool {
	return true
}

// BuildContents maps a provider-neutral conversation onto the Gemini
// request shape: system turns merge into the system instruction, user and
// assistant turns become alternating contents (Gemini calls the assistant
// role "model").
func BuildContents(messages []llm.Message) (string, []*genai.Content, error) {
	var system []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleUser:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			return "", nil, fmt.Errorf("unknown message role %q", m.Role)
		}
	}

	if len(contents) == 0 {
		return "", nil, fmt.Errorf("conversation has no user or assistant turns")
	}

	return strings.Join(system, "\n\n"), contents, nil
}
