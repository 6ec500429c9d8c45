package authkit

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// TokenConfig holds the secret and time-to-live for a single token kind.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// Config holds every recognized environment option. Time-to-lives are
// expressed in seconds in the environment.
type Config struct {
	Port        int
	Domain      string
	DatabaseDSN string
	RedisURL    string

	CookieName   string
	CookieSecret string

	Access        TokenConfig
	Refresh       TokenConfig
	Confirmation  TokenConfig
	ResetPassword TokenConfig

	// Testing relaxes the cookie Secure attribute and binds the listener
	// to loopback.
	Testing bool
}

// LoadConfig reads configuration from the environment, applying development
// defaults for anything unset.
func LoadConfig() *Config {
	return &Config{
		Port:         envInt("PORT", 3000),
		Domain:       envStr("DOMAIN", "example.com"),
		DatabaseDSN:  envStr("DATABASE_DSN", "file::memory:?cache=shared"),
		RedisURL:     envStr("REDIS_URL", "redis://localhost:6379"),
		CookieName:   envStr("REFRESH_COOKIE", "cookie_refresh"),
		CookieSecret: envStr("COOKIE_SECRET", "secret"),
		Access: TokenConfig{
			Secret: envStr("JWT_ACCESS_SECRET", "secret"),
			TTL:    envSeconds("JWT_ACCESS_TIME", 600),
		},
		Refresh: TokenConfig{
			Secret: envStr("JWT_REFRESH_SECRET", "secret"),
			TTL:    envSeconds("JWT_REFRESH_TIME", 604800),
		},
		Confirmation: TokenConfig{
			Secret: envStr("JWT_CONFIRMATION_SECRET", "secret"),
			TTL:    envSeconds("JWT_CONFIRMATION_TIME", 3600),
		},
		ResetPassword: TokenConfig{
			Secret: envStr("JWT_RESET_PASSWORD_SECRET", "secret"),
			TTL:    envSeconds("JWT_RESET_PASSWORD_TIME", 1800),
		},
		Testing: os.Getenv("APP_ENV") != "production",
	}
}

// Kind returns the token configuration for the given kind.
func (c *Config) Kind(kind TokenKind) (TokenConfig, error) {
	switch kind {
	case TokenKindAccess:
		return c.Access, nil
	case TokenKindRefresh:
		return c.Refresh, nil
	case TokenKindConfirmation:
		return c.Confirmation, nil
	case TokenKindResetPassword:
		return c.ResetPassword, nil
	default:
		return TokenConfig{}, fmt.Errorf("unknown token kind: %q", kind)
	}
}

// Validate checks the options a process cannot run without.
func (c *Config) Validate() error {
	if c.Domain == "" {
		return errors.New("config: domain is required")
	}
	if c.CookieSecret == "" {
		return errors.New("config: cookie secret is required")
	}
	for _, kind := range AllTokenKinds() {
		tc, err := c.Kind(kind)
		if err != nil {
			return err
		}
		if tc.Secret == "" {
			return fmt.Errorf("config: %s token secret is required", kind)
		}
		if tc.TTL <= 0 {
			return fmt.Errorf("config: %s token TTL must be positive", kind)
		}
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
