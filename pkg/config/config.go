// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"motorbikes/pkg/logger"
)

// Catalog sources.
const (
	SourceBundled  = "bundled"
	SourcePostgres = "postgres"
)

// Config holds all environment-based configuration.
type Config struct {
	Addr             string
	TLSCert          string
	TLSKey           string
	CatalogSource    string
	DatabaseURL      string
	RedisAddr        string
	SessionTTL       time.Duration
	OTelHost         string
	TraceProbability float64
	LogLevel         logger.Level
}

// Load reads the environment, first merging any variables from a .env file
// in the working directory. Variables already set take precedence. A missing
// .env is fine; an unreadable or malformed one is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf(".env: %w", err)
	}

	cfg := Config{
		Addr:          envOr("ADDR", ":8443"),
		TLSCert:       os.Getenv("TLS_CERT"),
		TLSKey:        os.Getenv("TLS_KEY"),
		CatalogSource: envOr("CATALOG_SOURCE", SourceBundled),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		OTelHost:      os.Getenv("OTEL_HOST"),
	}
	if _, set := os.LookupEnv("TLS_CERT"); !set {
		cfg.TLSCert = "certs/server.crt"
	}
	if _, set := os.LookupEnv("TLS_KEY"); !set {
		cfg.TLSKey = "certs/server.key"
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(envOr("SESSION_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.TraceProbability, err = strconv.ParseFloat(envOr("TRACE_PROBABILITY", "1.0"), 64); err != nil {
		return Config{}, fmt.Errorf("TRACE_PROBABILITY: %w", err)
	}
	if cfg.TraceProbability < 0 || cfg.TraceProbability > 1 {
		return Config{}, fmt.Errorf("TRACE_PROBABILITY must be within [0,1], got %v", cfg.TraceProbability)
	}
	if cfg.LogLevel, err = logger.ParseLevel(envOr("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}

	switch cfg.CatalogSource {
	case SourceBundled:
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("CATALOG_SOURCE=postgres requires DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("CATALOG_SOURCE: unknown source %q", cfg.CatalogSource)
	}
	return cfg, nil
}

// TLS reports whether the server should terminate TLS itself.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
