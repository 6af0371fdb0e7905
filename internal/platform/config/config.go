// Package config loads process configuration from the environment so main
// stays lean. Everything has a dev-friendly default except the external
// backends, which are simply not used when their URL is absent.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Token    Token
	Postgres Postgres
	Redis    Redis
	Postmark Postmark
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Token configures session token signing.
type Token struct {
	SigningKey string
}

// Postgres configures the user store backend. An empty URL selects the
// in-memory store.
type Postgres struct {
	URL string
}

// Redis configures the challenge store and revocation list backend. An empty
// URL selects the in-memory implementations.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Postmark configures outbound email. An empty token selects the mock
// sender, which only logs.
type Postmark struct {
	BaseURL   string
	AuthToken string
	Sender    string
}

// FromEnv builds the configuration from environment variables.
func FromEnv() Config {
	signingKey := os.Getenv("JWT_SECRET")
	if signingKey == "" {
		// Dev default; must be overridden in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	return Config{
		Server: Server{
			Addr: envOr("WARDEN_ADDR", ":3000"),
		},
		Token: Token{
			SigningKey: signingKey,
		},
		Postgres: Postgres{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postmark: Postmark{
			BaseURL:   envOr("POSTMARK_BASE_URL", "https://api.postmarkapp.com"),
			AuthToken: os.Getenv("POSTMARK_AUTH_TOKEN"),
			Sender:    envOr("POSTMARK_SENDER", "no-reply@warden.local"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
