package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/core"
)

func result(kind core.PromptKind, intent core.Intent, provider string, mentioned bool, sentiment core.Sentiment, cited bool) core.PromptResult {
	if !mentioned {
		sentiment = core.SentimentAbsent
	}
	return core.PromptResult{
		Prompt:      "q",
		Intent:      intent,
		Kind:        kind,
		Provider:    provider,
		Mentioned:   mentioned,
		Sentiment:   sentiment,
		HasCitation: cited,
	}
}

func TestHalfVisibilityScenario(t *testing.T) {
	// Two generic prompts, one provider, one mention, no citations.
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentPositive, false),
		result(core.KindGeneric, core.IntentComparison, "gemini", false, core.SentimentAbsent, false),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini"})
	assert.Equal(t, 50, s.Visibility)
	assert.Equal(t, 0, s.Citation)
	assert.Equal(t, 100, s.Representation) // sole mention is positive
	assert.Equal(t, 50, s.Intent)          // one of two generic intents covered
	assert.Equal(t, 1, s.MentionedCount)
	assert.Equal(t, 2, s.TotalPrompts)
}

func TestZeroGenericPromptsNoPanic(t *testing.T) {
	results := []core.PromptResult{
		result(core.KindCustom, core.IntentCustom, "gemini", false, core.SentimentAbsent, false),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini"})
	assert.Equal(t, 0, s.Visibility)
	assert.Equal(t, 0, s.Intent)
	assert.Equal(t, 0, s.Representation)
}

func TestEmptyResults(t *testing.T) {
	s := Aggregate(DefaultConfig(), nil, nil)
	assert.Zero(t, s.Composite)
	assert.Zero(t, s.TotalPrompts)
}

func TestScoreBounds(t *testing.T) {
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentPositive, true),
		result(core.KindBrandSpecific, core.IntentReputation, "gemini", true, core.SentimentPositive, true),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini"})
	for name, v := range map[string]int{
		"visibility":     s.Visibility,
		"representation": s.Representation,
		"intent":         s.Intent,
		"citation":       s.Citation,
		"composite":      s.Composite,
	} {
		assert.GreaterOrEqual(t, v, 0, name)
		assert.LessOrEqual(t, v, 100, name)
	}
	// Fully mentioned, fully positive, fully cited: perfect score.
	assert.Equal(t, 100, s.Composite)
}

func TestDefaultProviderWeights(t *testing.T) {
	// gemini is the hardest provider to get mentioned by, so it counts
	// most in the composite.
	pw := DefaultConfig().ProviderWeights
	assert.InDelta(t, 1.5, pw["gemini"], 0.001)
	assert.InDelta(t, 1.0, pw["openai"], 0.001)
	assert.InDelta(t, 0.8, pw["xai"], 0.001)
}

func TestProviderWeightedVisibility(t *testing.T) {
	// gemini mentions on its generic prompt, openai does not. With
	// gemini carrying weight 1.5 vs openai 1.0, the weighted rate is
	// 100*1.5 / 2.5 = 60.
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentNeutral, false),
		result(core.KindGeneric, core.IntentDiscovery, "openai", false, core.SentimentAbsent, false),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini", "openai"})
	assert.Equal(t, 60, s.Visibility)
}

func TestRepresentationWeighting(t *testing.T) {
	// A positive generic mention (weight 2) and a negative
	// brand-specific one (weight 1): (2*3 + 1*1) / 3 = 2.333 -> 78.
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentPositive, false),
		result(core.KindBrandSpecific, core.IntentReputation, "gemini", true, core.SentimentNegative, false),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini"})
	assert.Equal(t, 78, s.Representation)
}

func TestPerProviderScores(t *testing.T) {
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentNeutral, false),
		result(core.KindGeneric, core.IntentDiscovery, "openai", false, core.SentimentAbsent, false),
		result(core.KindBrandSpecific, core.IntentReputation, "gemini", true, core.SentimentNeutral, false),
		result(core.KindBrandSpecific, core.IntentReputation, "openai", true, core.SentimentNeutral, false),
	}

	s := Aggregate(DefaultConfig(), results, []string{"gemini", "openai"})
	require.Contains(t, s.PerProviderScores, "gemini")
	require.Contains(t, s.PerProviderScores, "openai")

	assert.Equal(t, 100, s.PerProviderScores["gemini"].MentionRate)
	assert.Equal(t, 2, s.PerProviderScores["gemini"].MentionedCount)
	assert.Equal(t, 50, s.PerProviderScores["openai"].MentionRate)
	assert.Equal(t, 2, s.TotalPrompts)
	assert.Equal(t, 3, s.MentionedCount)
}

func TestCompositeUsesConfiguredWeights(t *testing.T) {
	results := []core.PromptResult{
		result(core.KindGeneric, core.IntentDiscovery, "gemini", true, core.SentimentNeutral, false),
	}

	cfg := Config{Weights: Weights{Visibility: 1.0}}
	s := Aggregate(cfg, results, []string{"gemini"})
	assert.Equal(t, 100, s.Composite)

	cfg = Config{Weights: Weights{Citation: 1.0}}
	s = Aggregate(cfg, results, []string{"gemini"})
	assert.Equal(t, 0, s.Composite)
}
