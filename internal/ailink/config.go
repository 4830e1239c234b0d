// Package ailink provides the uniform gateway over external
// text-completion providers.
package ailink

import (
	"strings"
	"time"
)

// Provider identifiers. These form the closed provider-id vocabulary used
// in configuration, scoring weights, and persisted results.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderXAI    = "xai"
)

// ProviderOrder is the stable iteration order for providers. Availability
// listings and tier selection follow it.
var ProviderOrder = []string{ProviderGemini, ProviderOpenAI, ProviderXAI}

// ProviderConfig holds credentials and tuning for one backend.
type ProviderConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the gateway configuration.
type Config struct {
	Providers map[string]ProviderConfig `mapstructure:"providers"`
}

// DefaultModels maps each provider to the model used when none is
// configured.
var DefaultModels = map[string]string{
	ProviderGemini: "gemini-2.0-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderXAI:    "grok-2-latest",
}

const defaultTimeout = 60 * time.Second

// Normalize fills per-provider defaults. Unknown provider keys are dropped.
func (c Config) Normalize() Config {
	out := Config{Providers: make(map[string]ProviderConfig, len(ProviderOrder))}
	for _, id := range ProviderOrder {
		pc := c.Providers[id]
		pc.APIKey = strings.TrimSpace(pc.APIKey)
		if pc.Model == "" {
			pc.Model = DefaultModels[id]
		}
		if pc.Timeout <= 0 {
			pc.Timeout = defaultTimeout
		}
		out.Providers[id] = pc
	}
	return out
}
