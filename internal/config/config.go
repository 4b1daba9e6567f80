// Package config loads service configuration from an optional YAML file
// with environment variable overrides. Environment always wins, so a bare
// deployment can run without any file at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration of the API server.
type Config struct {
	Addr      string     `yaml:"addr"`
	Database  Database   `yaml:"database"`
	Auth      Auth       `yaml:"auth"`
	HTTP      HTTPLimits `yaml:"http"`
	TextsPath string     `yaml:"texts_path"`
}

// Database carries the PostgreSQL connection settings.
type Database struct {
	DSN string `yaml:"dsn"`
}

// Auth carries token issuance settings. The signing secret itself is only
// ever read from the environment, never from a file.
type Auth struct {
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// HTTPLimits carries the request throttling knobs.
type HTTPLimits struct {
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`
	MaxBodyBytes       int64   `yaml:"max_body_bytes"`
}

// Default returns the configuration used when neither file nor environment
// say otherwise.
func Default() Config {
	return Config{
		Addr: ":8080",
		Auth: Auth{TokenTTL: 12 * time.Hour},
		HTTP: HTTPLimits{
			RateLimitPerSecond: 20,
			RateLimitBurst:     40,
			MaxBodyBytes:       1 << 20,
		},
		TextsPath: "texts.json",
	}
}

// Load reads the YAML file at path (skipped when path is empty or missing)
// and applies PATRIMOINE_* environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional file
		case err != nil:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Addr == "" {
		return Config{}, errors.New("config: addr must not be empty")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, errors.New("config: auth.token_ttl must be positive")
	}
	if cfg.HTTP.MaxBodyBytes <= 0 {
		return Config{}, errors.New("config: http.max_body_bytes must be positive")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PATRIMOINE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PATRIMOINE_PG_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PATRIMOINE_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = d
		}
	}
	if v := os.Getenv("PATRIMOINE_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HTTP.RateLimitPerSecond = f
		}
	}
	if v := os.Getenv("PATRIMOINE_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimitBurst = n
		}
	}
	if v := os.Getenv("PATRIMOINE_MAX_BODY"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HTTP.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("PATRIMOINE_TEXTS_PATH"); v != "" {
		cfg.TextsPath = v
	}
}
