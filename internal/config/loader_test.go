package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "libsql", cfg.Store.Driver)
	assert.NotEmpty(t, cfg.Store.Path, "store path defaults when unset")

	assert.Equal(t, "gemini", cfg.Diagnosis.StructuringProvider)
	assert.Equal(t, 8, cfg.Diagnosis.MaxConcurrency)
	assert.True(t, cfg.Diagnosis.Retry429)
	assert.InDelta(t, 0.40, cfg.Diagnosis.Weights.Visibility, 0.001)
	// gemini mentions brands least readily, so it carries the heaviest
	// importance weight.
	assert.InDelta(t, 1.5, cfg.Diagnosis.ProviderWeights["gemini"], 0.001)
	assert.InDelta(t, 1.0, cfg.Diagnosis.ProviderWeights["openai"], 0.001)
	assert.InDelta(t, 0.8, cfg.Diagnosis.ProviderWeights["xai"], 0.001)
	assert.Equal(t, 60, cfg.Diagnosis.RateLimits["gemini"])

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Health.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("server.port", 9999)
	v.Set("diagnosis.weights.visibility", 0.35)
	v.Set("diagnosis.weights.citation", 0.15)
	v.Set("ailink.providers.gemini.api_key", "g-key")
	v.Set("ailink.providers.gemini.timeout", "45s")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.InDelta(t, 0.35, cfg.Diagnosis.Weights.Visibility, 0.001)
	assert.InDelta(t, 0.15, cfg.Diagnosis.Weights.Citation, 0.001)

	pc := cfg.AILink.Providers["gemini"]
	assert.Equal(t, "g-key", pc.APIKey)
	assert.Equal(t, 45*time.Second, pc.Timeout)
}

func TestBindProviderEnv(t *testing.T) {
	t.Setenv("LUMINOS_GEMINI_API_KEY", "from-env")

	v := viper.New()
	SetDefaults(v)
	BindProviderEnv(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AILink.Providers["gemini"].APIKey)
}
