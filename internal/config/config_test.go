package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "SERVER_PORT", "PORT", "JWT_ACCESS_TTL", "JWT_REFRESH_TTL",
		"APPOINTMENT_CONFLICT_MODE", "APPOINTMENT_ALLOW_PAST_DELETE", "TIMEZONE",
		"S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.JWTAccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshTTL)
	assert.Equal(t, "exact", cfg.ConflictMode)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.False(t, cfg.AllowPastDelete)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("APPOINTMENT_CONFLICT_MODE", " Overlap ")
	t.Setenv("APPOINTMENT_ALLOW_PAST_DELETE", "true")
	t.Setenv("JWT_ACCESS_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "overlap", cfg.ConflictMode)
	assert.True(t, cfg.AllowPastDelete)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("APPOINTMENT_CONFLICT_MODE", "sometimes")
	_, err := Load()
	assert.ErrorContains(t, err, "APPOINTMENT_CONFLICT_MODE")

	clearEnv(t)
	t.Setenv("JWT_REFRESH_TTL", "a week")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_REFRESH_TTL")
}

func TestS3Enabled(t *testing.T) {
	assert.True(t, S3Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}.Enabled())
	assert.False(t, S3Config{Bucket: "b"}.Enabled())
}
