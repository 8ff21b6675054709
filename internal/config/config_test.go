package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gropower")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "NGN", cfg.DefaultCurrency)
	assert.Equal(t, "JAIZ BANK", cfg.BankName)
	assert.Equal(t, "GP GRO POWER MULTI BIZ RESOURCES", cfg.BankAccountName)
	assert.Equal(t, "0017310086", cfg.BankAccountNumber)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/gropower")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDurationSecondsFallback(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "30")
	assert.Equal(t, 30*time.Second, getDuration("HTTP_READ_TIMEOUT", time.Second))

	t.Setenv("HTTP_READ_TIMEOUT", "45s")
	assert.Equal(t, 45*time.Second, getDuration("HTTP_READ_TIMEOUT", time.Second))

	t.Setenv("HTTP_READ_TIMEOUT", "bogus")
	assert.Equal(t, time.Second, getDuration("HTTP_READ_TIMEOUT", time.Second))
}
