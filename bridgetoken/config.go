package bridgetoken

import (
	"fmt"
	"log/slog"
	"time"
)

// Defaults shared with the gateway's development settings
const (
	DefaultSecret      = "CHANGE_THIS_TO_A_SECURE_SECRET_KEY_AT_LEAST_32_CHARS"
	DefaultIssuer      = "nats-websocket-bridge"
	DefaultAudience    = "nats-devices"
	DefaultExpiryHours = 24.0
)

// MinSecretLength is the HS256 key size below which a warning is logged
const MinSecretLength = 32

// Config holds immutable configuration for token issuance and decoding
type Config struct {
	secret   []byte
	issuer   string
	audience string
	logger   *slog.Logger
	now      func() time.Time

	secretWarnings bool
}

// Option is a functional option for configuring the issuer
type Option func(*Config) error

// NewConfig creates a new immutable configuration with the given options.
// Without WithSecret the development secret is used and a warning is logged.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		secret:   []byte(DefaultSecret),
		issuer:   DefaultIssuer,
		audience: DefaultAudience,
		now:      time.Now,

		secretWarnings: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewError(ErrConfigError, fmt.Sprintf("configuration error: %v", err), err)
		}
	}

	if cfg.logger != nil && cfg.secretWarnings {
		switch {
		case cfg.UsesDefaultSecret():
			cfg.logger.Warn("using default development secret, tokens must not be used in production",
				"issuer", cfg.issuer)
		case len(cfg.secret) < MinSecretLength:
			cfg.logger.Warn("HS256 secret is shorter than recommended",
				"length", len(cfg.secret), "recommended", MinSecretLength)
		}
	}

	return cfg, nil
}

// WithSecret sets the shared HMAC secret
func WithSecret(secret []byte) Option {
	return func(c *Config) error {
		if len(secret) == 0 {
			return fmt.Errorf("secret cannot be empty")
		}
		c.secret = append([]byte(nil), secret...)
		return nil
	}
}

// WithIssuer sets the iss claim
func WithIssuer(issuer string) Option {
	return func(c *Config) error {
		c.issuer = issuer
		return nil
	}
}

// WithAudience sets the aud claim
func WithAudience(audience string) Option {
	return func(c *Config) error {
		c.audience = audience
		return nil
	}
}

// WithLogger sets a structured logger for issuance events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithSecretWarnings toggles the weak-secret warnings logged by NewConfig.
// Callers that report the default secret themselves disable them.
func WithSecretWarnings(enabled bool) Option {
	return func(c *Config) error {
		c.secretWarnings = enabled
		return nil
	}
}

// WithClock overrides the time source used for iat/exp
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// UsesDefaultSecret reports whether the development secret is in use
func (c *Config) UsesDefaultSecret() bool {
	return string(c.secret) == DefaultSecret
}

func (c *Config) Issuer() string {
	return c.issuer
}

func (c *Config) Audience() string {
	return c.audience
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}
