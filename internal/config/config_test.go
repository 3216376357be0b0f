package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeConfig_Defaults(t *testing.T) {
	cfg, err := NewScrapeConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.BackoffStep)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 10000, cfg.MaxTextLength)
	assert.False(t, cfg.UseBrowser)
}

func TestNewScrapeConfig_FromEnv(t *testing.T) {
	t.Setenv("SCRAPE_MAX_ATTEMPTS", "5")
	t.Setenv("SCRAPE_BACKOFF_MS", "250")
	t.Setenv("SCRAPE_MAX_TEXT_CHARS", "2000")
	t.Setenv("SCRAPE_USE_BROWSER", "true")

	cfg, err := NewScrapeConfig()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.BackoffStep)
	assert.Equal(t, 2000, cfg.MaxTextLength)
	assert.True(t, cfg.UseBrowser)
}

func TestNewScrapeConfig_Invalid(t *testing.T) {
	t.Setenv("SCRAPE_MAX_ATTEMPTS", "0")
	_, err := NewScrapeConfig()
	assert.Error(t, err)
}

func TestNewScrapeConfig_NotANumber(t *testing.T) {
	t.Setenv("SCRAPE_BACKOFF_MS", "fast")
	_, err := NewScrapeConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Expiry)
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_CustomExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, cfg.Expiry)
}

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_OutOfRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "20")
	_, err := NewPasswordConfig()
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}
