// Package score rolls analyzed results into the weighted 0-100 scorecard.
package score

import (
	"math"

	"github.com/luminoshq/luminos/internal/core"
)

// Weights are the composite dimension weights. They are configuration, not
// constants: the scoring formula has been revised before and will be again.
type Weights struct {
	Visibility     float64 `mapstructure:"visibility"`
	Representation float64 `mapstructure:"representation"`
	Intent         float64 `mapstructure:"intent"`
	Citation       float64 `mapstructure:"citation"`
}

// DefaultWeights returns the current formula revision.
func DefaultWeights() Weights {
	return Weights{Visibility: 0.40, Representation: 0.25, Intent: 0.25, Citation: 0.10}
}

// Config tunes aggregation.
type Config struct {
	Weights Weights
	// ProviderWeights holds importance weights for multi-provider
	// visibility: providers that are harder to get mentioned by count
	// more. Missing providers default to 1.0.
	ProviderWeights map[string]float64
}

// DefaultConfig returns the default weights.
func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		ProviderWeights: map[string]float64{
			"gemini": 1.5,
			"openai": 1.0,
			"xai":    0.8,
		},
	}
}

// Sentiment contribution of a mentioned result.
var sentimentScores = map[core.Sentiment]float64{
	core.SentimentPositive: 3,
	core.SentimentNeutral:  2,
	core.SentimentNegative: 1,
}

// Aggregate computes the four dimension scores and the composite. Zero
// denominators yield 0, never panic.
func Aggregate(cfg Config, results []core.PromptResult, providers []string) core.DiagnosisScore {
	visibility := visibilityScore(cfg, results, providers)
	representation := representationScore(results)
	intent := intentScore(results)
	citation := citationScore(results)

	w := cfg.Weights
	composite := w.Visibility*visibility + w.Representation*representation + w.Intent*intent + w.Citation*citation

	mentioned := 0
	for _, r := range results {
		if r.Mentioned {
			mentioned++
		}
	}

	return core.DiagnosisScore{
		Visibility:        toScore(visibility),
		Representation:    toScore(representation),
		Intent:            toScore(intent),
		Citation:          toScore(citation),
		Composite:         toScore(composite),
		TotalPrompts:      totalPrompts(results, providers),
		MentionedCount:    mentioned,
		ProvidersUsed:     providers,
		PerProviderScores: perProviderScores(results, providers),
	}
}

// visibilityScore measures unprompted discovery, so it only looks at
// generic results. Multi-provider runs combine per-provider mention rates
// with importance weights.
func visibilityScore(cfg Config, results []core.PromptResult, providers []string) float64 {
	if len(providers) <= 1 {
		total, mentioned := 0, 0
		for _, r := range results {
			if r.Kind != core.KindGeneric {
				continue
			}
			total++
			if r.Mentioned {
				mentioned++
			}
		}
		return ratio(mentioned, total)
	}

	weightSum, weighted := 0.0, 0.0
	for _, p := range providers {
		total, mentioned := 0, 0
		for _, r := range results {
			if r.Provider != p || r.Kind != core.KindGeneric {
				continue
			}
			total++
			if r.Mentioned {
				mentioned++
			}
		}
		if total == 0 {
			continue
		}
		w := 1.0
		if pw, ok := cfg.ProviderWeights[p]; ok && pw > 0 {
			w = pw
		}
		weightSum += w
		weighted += w * ratio(mentioned, total)
	}
	if weightSum == 0 {
		return 0
	}
	return weighted / weightSum
}

// representationScore is the weighted average sentiment of mentions,
// normalized to 0-100. Generic mentions weigh double: being praised
// unprompted says more than being polite when asked directly.
func representationScore(results []core.PromptResult) float64 {
	weightSum, scoreSum := 0.0, 0.0
	for _, r := range results {
		if !r.Mentioned {
			continue
		}
		s, ok := sentimentScores[r.Sentiment]
		if !ok {
			continue
		}
		w := 1.0
		if r.Kind == core.KindGeneric {
			w = 2.0
		}
		weightSum += w
		scoreSum += w * s
	}
	if weightSum == 0 {
		return 0
	}
	return 100 * (scoreSum / weightSum) / 3
}

// intentScore is the share of distinct generic intents with at least one
// mention.
func intentScore(results []core.PromptResult) float64 {
	intents := make(map[core.Intent]bool)
	for _, r := range results {
		if r.Kind != core.KindGeneric {
			continue
		}
		intents[r.Intent] = intents[r.Intent] || r.Mentioned
	}
	if len(intents) == 0 {
		return 0
	}
	covered := 0
	for _, mentioned := range intents {
		if mentioned {
			covered++
		}
	}
	return ratio(covered, len(intents))
}

func citationScore(results []core.PromptResult) float64 {
	cited := 0
	for _, r := range results {
		if r.HasCitation {
			cited++
		}
	}
	return ratio(cited, len(results))
}

func perProviderScores(results []core.PromptResult, providers []string) map[string]core.ProviderScore {
	out := make(map[string]core.ProviderScore, len(providers))
	for _, p := range providers {
		total, mentioned := 0, 0
		for _, r := range results {
			if r.Provider != p {
				continue
			}
			total++
			if r.Mentioned {
				mentioned++
			}
		}
		out[p] = core.ProviderScore{
			MentionRate:    toScore(ratio(mentioned, total)),
			MentionedCount: mentioned,
			ResultCount:    total,
		}
	}
	return out
}

func totalPrompts(results []core.PromptResult, providers []string) int {
	if len(providers) == 0 {
		return len(results)
	}
	return len(results) / len(providers)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return 100 * float64(num) / float64(den)
}

func toScore(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
