// Package prompts synthesizes the tagged evaluation prompt battery for a
// diagnosis run.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/jsonutil"
)

const (
	// MaxPrompts is the hard cap on the final prompt list.
	MaxPrompts = 50
	// MaxCustom is the cap on caller-supplied custom prompts.
	MaxCustom = 5

	// minValidItems is the threshold under which LLM output is discarded
	// in favor of the deterministic fallback.
	minValidItems = 30

	maxTokens = 4096
)

const generationPrompt = `You are simulating the search queries real consumers type into AI assistants.
Generate exactly 45 evaluation prompts for the brand below, as a strict JSON array of objects with keys "text", "intent", "kind".

25 prompts must have kind "generic" and must NOT mention the brand name %q:
- 5 with intent "discovery" (finding options in the category)
- 4 with intent "comparison" (comparing category options)
- 4 with intent "purchase_intent" (ready-to-buy questions)
- 4 with intent "trend" (what is popular or rising)
- 4 with intent "problem_solving" (solving a need the category serves)
- 4 with intent "contextual" (situational needs of the target audience)

20 prompts must have kind "brand_specific" and must mention %q:
- 4 with intent "reputation"
- 4 with intent "comparison"
- 4 with intent "product"
- 4 with intent "sentiment"
- 4 with intent "authority"

Brand profile:
- name: %s
- category: %s
- positioning: %s
- target audience: %s
- key products: %s

Return only the JSON array, no markdown, no commentary.`

type textGenerator interface {
	Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error)
}

// Synthesizer produces the evaluation prompt list via the structuring
// provider, with a deterministic template fallback.
type Synthesizer struct {
	gen       textGenerator
	provider  string
	templates Templates
}

// NewSynthesizer returns a synthesizer using the default templates.
func NewSynthesizer(gen textGenerator, provider string) *Synthesizer {
	return &Synthesizer{gen: gen, provider: provider, templates: DefaultTemplates()}
}

// SetTemplates overrides the fallback templates (e.g. from a YAML file).
func (s *Synthesizer) SetTemplates(t Templates) {
	s.templates = t
}

// Synthesize returns the tagged prompt list for the profile. LLM output
// that yields fewer than 30 valid items is replaced wholesale by the
// deterministic fallback. Up to MaxCustom caller prompts are appended with
// kind custom and the list is capped at MaxPrompts.
func (s *Synthesizer) Synthesize(ctx context.Context, p core.BrandProfile, custom []string) []core.PromptSpec {
	specs := s.fromProvider(ctx, p)
	if len(specs) < minValidItems {
		specs = Fallback(p, s.templates)
	}

	for i, text := range custom {
		if i >= MaxCustom {
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		specs = append(specs, core.PromptSpec{Text: text, Intent: core.IntentCustom, Kind: core.KindCustom})
	}

	if len(specs) > MaxPrompts {
		specs = specs[:MaxPrompts]
	}
	return specs
}

func (s *Synthesizer) fromProvider(ctx context.Context, p core.BrandProfile) []core.PromptSpec {
	prompt := fmt.Sprintf(generationPrompt,
		p.Name, p.Name,
		p.Name, p.Category, p.Positioning, p.TargetAudience,
		strings.Join(p.KeyProducts, ", "))

	raw, err := s.gen.Generate(ctx, s.provider, prompt, maxTokens)
	if err != nil {
		return nil
	}

	var items []struct {
		Text   string `json:"text"`
		Intent string `json:"intent"`
		Kind   string `json:"kind"`
	}
	if err := jsonutil.Unmarshal(raw, &items); err != nil {
		return nil
	}

	specs := make([]core.PromptSpec, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			continue
		}

		kind := core.PromptKind(item.Kind)
		if kind != core.KindGeneric && kind != core.KindBrandSpecific {
			continue
		}
		// Repair kind against the brand-name invariant: a "generic"
		// prompt echoing the name is brand_specific in effect, and
		// vice versa.
		if kind == core.KindGeneric && mentionsBrand(text, p.Name) {
			kind = core.KindBrandSpecific
		} else if kind == core.KindBrandSpecific && !mentionsBrand(text, p.Name) {
			kind = core.KindGeneric
		}

		intent := core.Intent(item.Intent)
		if !core.ValidIntent(item.Intent) || intent == core.IntentCustom {
			intent = core.IntentContextual
		}

		specs = append(specs, core.PromptSpec{Text: text, Intent: intent, Kind: kind})
	}
	return specs
}

func mentionsBrand(text, brand string) bool {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(brand))
}
