package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recycle")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 8760*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "@hourly", cfg.Session.CleanupSchedule)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, "./media", cfg.Media.BasePath)
	assert.Equal(t, "http://localhost:8080", cfg.Media.BaseURL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/recycle?parseTime=true&charset=utf8mb4&multiStatements=true", cfg.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.com, ,http://b.com")
	t.Setenv("SESSION_TTL", "87600h")
	t.Setenv("SESSION_CLEANUP_SCHEDULE", "")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("MEDIA_BASE_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 87600*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.Session.CleanupSchedule)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "https://cdn.example.com", cfg.Media.BaseURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "missing host", key: "DB_HOST", value: ""},
		{name: "invalid port", key: "DB_PORT", value: "abc"},
		{name: "invalid session ttl", key: "SESSION_TTL", value: "forever"},
		{name: "negative session ttl", key: "SESSION_TTL", value: "-1h"},
		{name: "session ttl over ten years", key: "SESSION_TTL", value: "87601h"},
		{name: "invalid cookie secure", key: "COOKIE_SECURE", value: "maybe"},
		{name: "invalid rate limit", key: "RATE_LIMIT_PER_MINUTE", value: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
