// Package config provides centralized configuration management for Luminos.
// Values are layered: built-in defaults, an optional YAML config file, and
// LUMINOS_* environment variables.
package config

import (
	"time"

	"github.com/luminoshq/luminos/internal/ailink"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	AILink    ailink.Config   `mapstructure:"ailink"`
	Diagnosis DiagnosisConfig `mapstructure:"diagnosis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Health    HealthConfig    `mapstructure:"health"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig contains database configuration for libsql/Turso.
type StoreConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url"`
	AuthToken string `mapstructure:"auth_token"`
}

// DiagnosisConfig tunes the audit pipeline. Scoring weights are
// configuration on purpose: the formula has been revised before.
type DiagnosisConfig struct {
	// StructuringProvider handles profile/prompt/competitor structuring
	// calls; the free tier also evaluates against it when available.
	StructuringProvider string `mapstructure:"structuring_provider"`

	// MaxConcurrency bounds in-flight provider calls in the fan-out.
	MaxConcurrency int `mapstructure:"max_concurrency"`

	// RateLimits maps provider id to requests/minute.
	RateLimits map[string]int `mapstructure:"rate_limits"`

	// Retry429 enables one bounded retry on provider rate limiting.
	Retry429 bool `mapstructure:"retry_429"`

	// Weights are the composite dimension weights.
	Weights WeightsConfig `mapstructure:"weights"`

	// ProviderWeights are the importance weights for multi-provider
	// visibility.
	ProviderWeights map[string]float64 `mapstructure:"provider_weights"`

	// TemplatesPath points at a YAML override for the fallback prompt
	// templates.
	TemplatesPath string `mapstructure:"templates_path"`
}

// WeightsConfig mirrors the four composite dimensions.
type WeightsConfig struct {
	Visibility     float64 `mapstructure:"visibility"`
	Representation float64 `mapstructure:"representation"`
	Intent         float64 `mapstructure:"intent"`
	Citation       float64 `mapstructure:"citation"`
}

// LoggingConfig contains logging configuration.
// Profiles follow gofulmen logging: SIMPLE for CLI, STRUCTURED for services.
type LoggingConfig struct {
	// Level controls the minimum log level.
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level.
	// Valid values: SIMPLE, STRUCTURED
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains the Prometheus exporter configuration.
type MetricsConfig struct {
	// Port is the exporter listen port. Use 0 for random assignment.
	Port int `mapstructure:"port"`
}

// HealthConfig contains health check configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are exposed.
	Enabled bool `mapstructure:"enabled"`
}
