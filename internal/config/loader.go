package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// SetDefaults installs the built-in defaults on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("store.driver", "libsql")

	v.SetDefault("diagnosis.structuring_provider", "gemini")
	v.SetDefault("diagnosis.max_concurrency", 8)
	v.SetDefault("diagnosis.retry_429", true)
	v.SetDefault("diagnosis.weights.visibility", 0.40)
	v.SetDefault("diagnosis.weights.representation", 0.25)
	v.SetDefault("diagnosis.weights.intent", 0.25)
	v.SetDefault("diagnosis.weights.citation", 0.10)
	v.SetDefault("diagnosis.provider_weights.gemini", 1.5)
	v.SetDefault("diagnosis.provider_weights.openai", 1.0)
	v.SetDefault("diagnosis.provider_weights.xai", 0.8)
	v.SetDefault("diagnosis.rate_limits.gemini", 60)
	v.SetDefault("diagnosis.rate_limits.openai", 60)
	v.SetDefault("diagnosis.rate_limits.xai", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "SIMPLE")

	v.SetDefault("metrics.port", 9090)

	v.SetDefault("health.enabled", true)
}

// BindProviderEnv wires provider credentials to both the LUMINOS_* names
// and the conventional vendor variables.
func BindProviderEnv(v *viper.Viper) {
	_ = v.BindEnv("ailink.providers.gemini.api_key", "LUMINOS_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("ailink.providers.openai.api_key", "LUMINOS_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("ailink.providers.xai.api_key", "LUMINOS_XAI_API_KEY", "XAI_API_KEY")
}

// Load decodes the merged viper settings into a typed Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("create config decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.Store.URL) == "" && strings.TrimSpace(cfg.Store.Path) == "" {
		cfg.Store.Path = DefaultStorePath()
	}

	return cfg, nil
}

// DefaultStorePath returns the default database file location.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "./luminos.db"
	}
	return filepath.Join(home, ".local", "share", "luminos", "luminos.db")
}
