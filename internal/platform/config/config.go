// Package config builds runtime configuration from the environment so main
// stays lean. Every knob has a development-safe default; production overrides
// via DERMIS_* variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures the full service configuration.
type Server struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration

	Redis        RedisConfig
	PostgresDSN  string
	KafkaBrokers []string

	RulesPath     string
	TemplatesPath string
}

// RedisConfig captures cache client tuning. An empty URL means no cache; the
// pipeline runs without one.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:            envOr("DERMIS_ADDR", ":8080"),
		LogLevel:        envOr("DERMIS_LOG_LEVEL", "info"),
		ShutdownTimeout: envDuration("DERMIS_SHUTDOWN_TIMEOUT", 10*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("DERMIS_REDIS_URL"),
			PoolSize:     envInt("DERMIS_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("DERMIS_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("DERMIS_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("DERMIS_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("DERMIS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		PostgresDSN:   os.Getenv("DERMIS_POSTGRES_DSN"),
		KafkaBrokers:  envList("DERMIS_KAFKA_BROKERS"),
		RulesPath:     envOr("DERMIS_RULES_PATH", "configs/rules.yaml"),
		TemplatesPath: os.Getenv("DERMIS_TEMPLATES_PATH"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
