package utils

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	DefaultHoroscopeBaseURL     = "https://www.horoscopo.com/horoscopos"
	DefaultCompatibilityBaseURL = "https://www.lavanguardia.com/horoscopo/compatibilidad-signos-zodiaco"
)

// Sign policies accepted in ZODIACLE_SIGN_POLICY.
const (
	SignPolicyPassthrough = "passthrough"
	SignPolicyStrict      = "strict"
)

type AuthConfig struct {
	JWTSecret    string
	JWTIssuer    string
	JWTDuration  time.Duration
	Subject      string
	PasswordHash string
}

type UpstreamConfig struct {
	HoroscopeBaseURL     string
	CompatibilityBaseURL string
	Timeout              time.Duration
	UserAgent            string
}

// Config is built once at startup and handed to the server; nothing reads
// the environment after LoadConfig returns.
type Config struct {
	HTTPAddr    string
	APIPrefix   string
	LogLevel    slog.Level
	CORSOrigins []string
	SignPolicy  string
	Auth        AuthConfig
	Upstream    UpstreamConfig
}

func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPAddr:    envOr("ZODIACLE_HTTP_ADDR", ":8080"),
		APIPrefix:   envOr("ZODIACLE_API_PREFIX", "/api/v1"),
		CORSOrigins: splitList(envOr("ZODIACLE_CORS_ORIGINS", "*")),
		Auth: AuthConfig{
			JWTSecret:    envOr("ZODIACLE_JWT_SECRET", "dev-secret-change-me"),
			JWTIssuer:    envOr("ZODIACLE_JWT_ISSUER", "zodiacle"),
			JWTDuration:  10 * 365 * 24 * time.Hour,
			Subject:      envOr("ZODIACLE_JWT_SUBJECT", "user_id"),
			PasswordHash: os.Getenv("ZODIACLE_LOGIN_PASSWORD_HASH"),
		},
		Upstream: UpstreamConfig{
			HoroscopeBaseURL:     envOr("ZODIACLE_HOROSCOPE_BASE_URL", DefaultHoroscopeBaseURL),
			CompatibilityBaseURL: envOr("ZODIACLE_COMPATIBILITY_BASE_URL", DefaultCompatibilityBaseURL),
			Timeout:              15 * time.Second,
			UserAgent:            os.Getenv("ZODIACLE_USER_AGENT"),
		},
	}

	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}
	cfg.APIPrefix = strings.TrimRight(cfg.APIPrefix, "/")

	if v := os.Getenv("ZODIACLE_JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid ZODIACLE_JWT_TTL %q", v)
		}
		cfg.Auth.JWTDuration = d
	}

	if v := os.Getenv("ZODIACLE_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid ZODIACLE_UPSTREAM_TIMEOUT %q", v)
		}
		cfg.Upstream.Timeout = d
	}

	switch policy := strings.ToLower(envOr("ZODIACLE_SIGN_POLICY", SignPolicyPassthrough)); policy {
	case SignPolicyPassthrough, SignPolicyStrict:
		cfg.SignPolicy = policy
	default:
		return Config{}, fmt.Errorf("invalid ZODIACLE_SIGN_POLICY %q", policy)
	}

	level, err := parseLogLevel(envOr("ZODIACLE_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid ZODIACLE_LOG_LEVEL %q", s)
	}
}
