package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	JWTSigningKey string

	// WriteTimeout bounds a single send on a live connection so one stalled
	// peer cannot hold up fan-out to the rest.
	WriteTimeout time.Duration

	// ReadHeaderTimeout bounds how long the server waits for request
	// headers, live channel handshakes included.
	ReadHeaderTimeout time.Duration

	// ActivationTTL is how long an account activation or recovery code stays
	// redeemable.
	ActivationTTL time.Duration

	// AdminBadge and AdminPassword seed the initial admin officer on first
	// start. Bootstrap is skipped when the password is empty.
	AdminBadge    int
	AdminPassword string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SAFESOUND_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SECRET")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		JWTSigningKey:     jwtSigningKey,
		WriteTimeout:      durationFromEnv("SAFESOUND_WRITE_TIMEOUT", 5*time.Second),
		ReadHeaderTimeout: durationFromEnv("SAFESOUND_READ_HEADER_TIMEOUT", 5*time.Second),
		ActivationTTL:     durationFromEnv("SAFESOUND_ACTIVATION_TTL", 24*time.Hour),
		AdminBadge:        intFromEnv("SAFESOUND_ADMIN_BADGE", 111111),
		AdminPassword:     os.Getenv("SAFESOUND_ADMIN_PASSWORD"),
	}
}

func intFromEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
