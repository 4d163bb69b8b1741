package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/testdb")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 100*time.Millisecond, cfg.CopyRowDelay)
	assert.Equal(t, 10, cfg.CopyProgressEvery)
	assert.Equal(t, 5*time.Second, cfg.CountCacheTTL)
	assert.InDelta(t, 1.0, cfg.CopyRatePerSecond, 0.001)
	assert.Equal(t, 5, cfg.CopyRateBurst)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingRedisURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/testdb")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_CopyRowDelay(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COPY_ROW_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.CopyRowDelay)
}

func TestLoad_CopyRowDelayInvalid(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COPY_ROW_DELAY", "fast")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY_ROW_DELAY")
}

func TestLoad_CopyRowDelayNegative(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COPY_ROW_DELAY", "-1s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY_ROW_DELAY")
}

func TestLoad_CopyProgressEveryInvalid(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COPY_PROGRESS_EVERY", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY_PROGRESS_EVERY")
}

func TestLoad_RateLimitInvalid(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COPY_RATE_PER_SECOND", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY_RATE_PER_SECOND")
}

func TestLoad_ZeroCountCacheTTLAllowed(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COUNT_CACHE_TTL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.CountCacheTTL)
}
