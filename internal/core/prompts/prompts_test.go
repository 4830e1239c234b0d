package prompts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/core"
)

type stubGen struct {
	raw string
	err error
}

func (s *stubGen) Generate(context.Context, string, string, int) (string, error) {
	return s.raw, s.err
}

func acmeProfile() core.BrandProfile {
	return core.BrandProfile{
		Name:           "Acme",
		Domain:         "acme.com",
		Category:       "kitchen knives",
		Positioning:    "Premium knives for home cooks",
		TargetAudience: "home cooks",
		KeyProducts:    []string{"chef knife", "paring knife"},
	}
}

func llmItems(n int, kind core.PromptKind, withBrand bool) []map[string]string {
	items := make([]map[string]string, 0, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("prompt number %d about knives", i)
		if withBrand {
			text = fmt.Sprintf("What do you think of Acme product %d?", i)
		}
		items = append(items, map[string]string{"text": text, "intent": "discovery", "kind": string(kind)})
	}
	return items
}

func TestSynthesizeFromProvider(t *testing.T) {
	items := append(llmItems(25, core.KindGeneric, false), llmItems(20, core.KindBrandSpecific, true)...)
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	s := NewSynthesizer(&stubGen{raw: string(raw)}, "gemini")
	specs := s.Synthesize(context.Background(), acmeProfile(), nil)

	require.Len(t, specs, 45)
	counts := map[core.PromptKind]int{}
	for _, spec := range specs {
		counts[spec.Kind]++
	}
	assert.Equal(t, 25, counts[core.KindGeneric])
	assert.Equal(t, 20, counts[core.KindBrandSpecific])
}

func TestSynthesizeRepairsKindAgainstBrandName(t *testing.T) {
	items := []map[string]string{
		{"text": "Is Acme any good?", "intent": "reputation", "kind": "generic"},
		{"text": "Best knives for beginners?", "intent": "discovery", "kind": "brand_specific"},
	}
	// Pad past the fallback threshold with well-formed generics.
	items = append(items, llmItems(30, core.KindGeneric, false)...)
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	s := NewSynthesizer(&stubGen{raw: string(raw)}, "gemini")
	specs := s.Synthesize(context.Background(), acmeProfile(), nil)

	assert.Equal(t, core.KindBrandSpecific, specs[0].Kind)
	assert.Equal(t, core.KindGeneric, specs[1].Kind)
}

func TestSynthesizeFallsBackOnProviderError(t *testing.T) {
	s := NewSynthesizer(&stubGen{err: errors.New("boom")}, "gemini")
	specs := s.Synthesize(context.Background(), acmeProfile(), nil)

	require.Len(t, specs, 45)
	for _, spec := range specs {
		if spec.Kind == core.KindGeneric {
			assert.NotContains(t, strings.ToLower(spec.Text), "acme", "generic prompt leaked brand name: %s", spec.Text)
		} else {
			assert.Contains(t, spec.Text, "Acme")
		}
	}
}

func TestSynthesizeFallsBackBelowThreshold(t *testing.T) {
	raw, err := json.Marshal(llmItems(10, core.KindGeneric, false))
	require.NoError(t, err)

	s := NewSynthesizer(&stubGen{raw: string(raw)}, "gemini")
	specs := s.Synthesize(context.Background(), acmeProfile(), nil)
	assert.Len(t, specs, 45)
}

func TestSynthesizeAppendsCustomAndCaps(t *testing.T) {
	s := NewSynthesizer(&stubGen{err: errors.New("boom")}, "gemini")
	custom := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}
	specs := s.Synthesize(context.Background(), acmeProfile(), custom)

	assert.LessOrEqual(t, len(specs), MaxPrompts)
	customCount := 0
	for _, spec := range specs {
		if spec.Kind == core.KindCustom {
			customCount++
			assert.Equal(t, core.IntentCustom, spec.Intent)
		}
	}
	assert.Equal(t, MaxCustom, customCount)
}

func TestFallbackPartition(t *testing.T) {
	specs := Fallback(acmeProfile(), DefaultTemplates())

	generic, brand := 0, 0
	for _, spec := range specs {
		switch spec.Kind {
		case core.KindGeneric:
			generic++
		case core.KindBrandSpecific:
			brand++
		default:
			t.Fatalf("unexpected kind %q", spec.Kind)
		}
	}
	assert.Equal(t, 25, generic)
	assert.Equal(t, 20, brand)
	assert.Equal(t, len(specs), generic+brand)
}

func TestFallbackDeterministic(t *testing.T) {
	a := Fallback(acmeProfile(), DefaultTemplates())
	b := Fallback(acmeProfile(), DefaultTemplates())
	assert.Equal(t, a, b)
}

func TestFallbackUnknownCategory(t *testing.T) {
	p := core.BrandProfile{Name: "Acme", Category: "unknown"}
	specs := Fallback(p, DefaultTemplates())
	require.NotEmpty(t, specs)
	for _, spec := range specs {
		assert.NotContains(t, spec.Text, "{")
		assert.NotContains(t, spec.Text, "unknown")
	}
}

func TestLoadTemplatesMergesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := "generic:\n  discovery:\n    - \"Custom discovery about {category}?\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tpl, err := LoadTemplates(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Custom discovery about {category}?"}, tpl.Generic[core.IntentDiscovery])
	// Untouched intents keep their defaults.
	assert.Equal(t, DefaultTemplates().Generic[core.IntentComparison], tpl.Generic[core.IntentComparison])
	assert.Equal(t, DefaultTemplates().BrandSpecific[core.IntentReputation], tpl.BrandSpecific[core.IntentReputation])
}

func TestLoadTemplatesMissingFile(t *testing.T) {
	_, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
