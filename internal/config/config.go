package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"3000"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	// Database settings
	Database DatabaseConfig

	// Session cookie settings
	Session SessionConfig

	// LLM completion settings
	LLM LLMConfig

	// Background generation dispatcher settings
	Dispatcher DispatcherConfig

	// Stale status sweeper settings
	Sweeper SweeperConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"pagesmith"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"pagesmith"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`

	// Migrate applies pending migrations on server start
	Migrate bool `env:"DB_MIGRATE" envDefault:"false"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	// Secret signs the session JWT. Required outside local environments.
	Secret string `env:"SESSION_SECRET" envDefault:""`

	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"pagesmith_session"`

	// TTL is how long a session stays valid
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CookieSecure marks the cookie Secure (set behind TLS)
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// BcryptCost is the bcrypt work factor for password hashing
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	// LoginRatePerMinute bounds login attempts per client IP
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

// LLMConfig holds completion API settings
type LLMConfig struct {
	// APIKey for the Gemini API
	APIKey string `env:"GOOGLE_API_KEY" envDefault:""`

	// Model is the completion model name
	Model string `env:"LLM_MODEL" envDefault:"gemini-2.0-flash"`

	// Temperature biases toward structurally consistent output across
	// regenerations; kept low on purpose.
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.4"`

	// MaxOutputTokens bounds the generated page size
	MaxOutputTokens int `env:"LLM_MAX_OUTPUT_TOKENS" envDefault:"3000"`

	// Timeout is the completion request timeout
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`

	// NetworkDisabled disables completion calls (for testing)
	NetworkDisabled bool `env:"LLM_NETWORK_DISABLED" envDefault:"false"`
}

// IsEnabled returns true if the completion API is configured
func (l *LLMConfig) IsEnabled() bool {
	if l.NetworkDisabled {
		return false
	}
	return l.APIKey != ""
}

// DispatcherConfig holds background task dispatcher settings
type DispatcherConfig struct {
	// Workers is the number of concurrent generation workers
	Workers int `env:"DISPATCHER_WORKERS" envDefault:"4"`

	// QueueSize bounds pending generation tasks; a full queue rejects
	// new submissions instead of blocking the request handler
	QueueSize int `env:"DISPATCHER_QUEUE_SIZE" envDefault:"64"`

	// DrainTimeout bounds how long shutdown waits for in-flight tasks
	DrainTimeout time.Duration `env:"DISPATCHER_DRAIN_TIMEOUT" envDefault:"30s"`
}

// SweeperConfig holds stale generation sweeper settings
type SweeperConfig struct {
	// Enabled toggles the sweeper
	Enabled bool `env:"SWEEPER_ENABLED" envDefault:"true"`

	// Schedule is the cron expression for sweep runs
	Schedule string `env:"SWEEPER_SCHEDULE" envDefault:"*/5 * * * *"`

	// StaleAfter is how long an account may stay in processing before
	// being flipped to error
	StaleAfter time.Duration `env:"SWEEPER_STALE_AFTER" envDefault:"10m"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Session.Secret == "" && cfg.Environment != "local" {
		return nil, fmt.Errorf("SESSION_SECRET is required when ENVIRONMENT=%s", cfg.Environment)
	}

	return cfg, nil
}
