package utils

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"ZODIACLE_HTTP_ADDR", "ZODIACLE_API_PREFIX", "ZODIACLE_CORS_ORIGINS",
		"ZODIACLE_JWT_SECRET", "ZODIACLE_JWT_TTL", "ZODIACLE_SIGN_POLICY",
		"ZODIACLE_LOG_LEVEL", "ZODIACLE_UPSTREAM_TIMEOUT", "ZODIACLE_HOROSCOPE_BASE_URL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, SignPolicyPassthrough, cfg.SignPolicy)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 3650*24*time.Hour, cfg.Auth.JWTDuration)
	assert.Equal(t, "user_id", cfg.Auth.Subject)
	assert.Equal(t, DefaultHoroscopeBaseURL, cfg.Upstream.HoroscopeBaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ZODIACLE_API_PREFIX", "/")
	t.Setenv("ZODIACLE_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ZODIACLE_JWT_TTL", "1h")
	t.Setenv("ZODIACLE_SIGN_POLICY", "Strict")
	t.Setenv("ZODIACLE_LOG_LEVEL", "debug")
	t.Setenv("ZODIACLE_UPSTREAM_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.APIPrefix)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.Auth.JWTDuration)
	assert.Equal(t, SignPolicyStrict, cfg.SignPolicy)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"ZODIACLE_JWT_TTL", "forever"},
		{"ZODIACLE_UPSTREAM_TIMEOUT", "-1s"},
		{"ZODIACLE_SIGN_POLICY", "lenient"},
		{"ZODIACLE_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
