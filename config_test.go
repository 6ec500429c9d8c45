package authkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "example.com", cfg.Domain)
	assert.Equal(t, "cookie_refresh", cfg.CookieName)
	assert.Equal(t, 10*time.Minute, cfg.Access.TTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Refresh.TTL)
	assert.Equal(t, time.Hour, cfg.Confirmation.TTL)
	assert.Equal(t, 30*time.Minute, cfg.ResetPassword.TTL)
	assert.True(t, cfg.Testing)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DOMAIN", "myapp.dev")
	t.Setenv("JWT_ACCESS_TIME", "120")
	t.Setenv("JWT_ACCESS_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")

	cfg := LoadConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "myapp.dev", cfg.Domain)
	assert.Equal(t, 2*time.Minute, cfg.Access.TTL)
	assert.Equal(t, "s3cret", cfg.Access.Secret)
	assert.False(t, cfg.Testing)
}

func TestConfigKind(t *testing.T) {
	cfg := testConfig()

	for _, kind := range AllTokenKinds() {
		tc, err := cfg.Kind(kind)
		require.NoError(t, err)
		assert.NotEmpty(t, tc.Secret)
		assert.Positive(t, tc.TTL)
	}

	_, err := cfg.Kind(TokenKind("bogus"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testConfig().Validate())
	})

	t.Run("missing domain", func(t *testing.T) {
		cfg := testConfig()
		cfg.Domain = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing cookie secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.CookieSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing token secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.Refresh.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero ttl", func(t *testing.T) {
		cfg := testConfig()
		cfg.Confirmation.TTL = 0
		assert.Error(t, cfg.Validate())
	})
}
