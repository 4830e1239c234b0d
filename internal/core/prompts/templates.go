package prompts

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/luminoshq/luminos/internal/core"
)

// Templates holds the fallback prompt templates per intent. Placeholders
// {brand}, {category}, {product}, {audience} are expanded from the brand
// profile. Generic templates must not use {brand}.
type Templates struct {
	Generic       map[core.Intent][]string `yaml:"generic"`
	BrandSpecific map[core.Intent][]string `yaml:"brand_specific"`
}

type intentQuota struct {
	intent core.Intent
	count  int
}

// 25 generic / 20 brand-specific, matching the synthesis distribution.
var (
	genericQuotas = []intentQuota{
		{core.IntentDiscovery, 5},
		{core.IntentComparison, 4},
		{core.IntentPurchaseIntent, 4},
		{core.IntentTrend, 4},
		{core.IntentProblemSolving, 4},
		{core.IntentContextual, 4},
	}
	brandQuotas = []intentQuota{
		{core.IntentReputation, 4},
		{core.IntentComparison, 4},
		{core.IntentProduct, 4},
		{core.IntentSentiment, 4},
		{core.IntentAuthority, 4},
	}
)

// DefaultTemplates returns the built-in fallback templates.
func DefaultTemplates() Templates {
	return Templates{
		Generic: map[core.Intent][]string{
			core.IntentDiscovery: {
				"What are the best {category} options available right now?",
				"Can you recommend some good {category} brands?",
				"Where should I look for quality {product}?",
				"Which companies are known for great {category}?",
				"I'm new to {category}, what brands should I know about?",
			},
			core.IntentComparison: {
				"How do the top {category} brands compare?",
				"What are the pros and cons of the leading {category} options?",
				"Which {category} brand offers the best value for money?",
				"Compare the most popular choices for {product}.",
			},
			core.IntentPurchaseIntent: {
				"I'm ready to buy {product}, which brand should I pick?",
				"What's the best place to buy {product} online?",
				"Which {category} brand is worth paying more for?",
				"What should I check before ordering {product}?",
			},
			core.IntentTrend: {
				"What {category} brands are trending this year?",
				"Which up-and-coming {category} companies should I watch?",
				"What's new in the {category} market?",
				"Are there any {category} brands gaining popularity lately?",
			},
			core.IntentProblemSolving: {
				"I need {product} that actually lasts, what do you suggest?",
				"What's a reliable solution for someone who needs {product}?",
				"How do I choose {category} that fits a tight budget?",
				"What {category} options work best for {audience}?",
			},
			core.IntentContextual: {
				"As one of {audience}, what {category} brands suit me?",
				"What {category} would you recommend as a gift?",
				"Which {category} brands do {audience} usually prefer?",
				"What {product} is suitable for everyday use?",
			},
		},
		BrandSpecific: map[core.Intent][]string{
			core.IntentReputation: {
				"Is {brand} a reputable company?",
				"What do customers say about {brand}?",
				"Can I trust {brand} with my purchase?",
				"Has {brand} had any notable complaints or issues?",
			},
			core.IntentComparison: {
				"How does {brand} compare to other {category} brands?",
				"Is {brand} better than its main competitors?",
				"Should I choose {brand} or a cheaper alternative?",
				"What makes {brand} different from other {category} companies?",
			},
			core.IntentProduct: {
				"What is {brand}'s {product} like?",
				"Tell me about the product range {brand} offers.",
				"What is {brand}'s most popular product?",
				"Does {brand} offer good quality {category}?",
			},
			core.IntentSentiment: {
				"Do people generally like {brand}?",
				"What's the overall sentiment around {brand}?",
				"Would you personally recommend {brand}?",
				"Are reviews of {brand} mostly positive or negative?",
			},
			core.IntentAuthority: {
				"Is {brand} considered a leader in {category}?",
				"How established is {brand} in the {category} market?",
				"What is {brand} known for?",
				"Does {brand} have expertise in {category}?",
			},
		},
	}
}

// LoadTemplates reads a YAML template override file. Intents missing from
// the file keep their defaults.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("read templates: %w", err)
	}

	var override Templates
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Templates{}, fmt.Errorf("parse templates: %w", err)
	}

	merged := DefaultTemplates()
	for intent, list := range override.Generic {
		if len(list) > 0 {
			merged.Generic[intent] = list
		}
	}
	for intent, list := range override.BrandSpecific {
		if len(list) > 0 {
			merged.BrandSpecific[intent] = list
		}
	}
	return merged, nil
}

// Fallback deterministically fills the 25/20 intent distribution from the
// profile. A generic template that would surface the brand name is skipped
// to preserve the kind invariant.
func Fallback(p core.BrandProfile, tpl Templates) []core.PromptSpec {
	vars := templateVars(p)

	var specs []core.PromptSpec
	for _, q := range genericQuotas {
		list := tpl.Generic[q.intent]
		added := 0
		for i := 0; i < len(list) && added < q.count; i++ {
			text := expand(list[i], vars)
			if mentionsBrand(text, p.Name) {
				continue
			}
			specs = append(specs, core.PromptSpec{Text: text, Intent: q.intent, Kind: core.KindGeneric})
			added++
		}
	}
	for _, q := range brandQuotas {
		list := tpl.BrandSpecific[q.intent]
		for i := 0; i < len(list) && i < q.count; i++ {
			specs = append(specs, core.PromptSpec{Text: expand(list[i], vars), Intent: q.intent, Kind: core.KindBrandSpecific})
		}
	}
	return specs
}

func templateVars(p core.BrandProfile) map[string]string {
	category := strings.TrimSpace(p.Category)
	if category == "" || category == "unknown" {
		category = "products"
	}
	product := category
	if len(p.KeyProducts) > 0 && strings.TrimSpace(p.KeyProducts[0]) != "" {
		product = strings.TrimSpace(p.KeyProducts[0])
	}
	audience := strings.TrimSpace(p.TargetAudience)
	if audience == "" {
		audience = "consumers"
	}
	return map[string]string{
		"{brand}":    p.Name,
		"{category}": category,
		"{product}":  product,
		"{audience}": audience,
	}
}

func expand(tpl string, vars map[string]string) string {
	out := tpl
	for k, v := range vars {
		out = strings.ReplaceAll(out, k, v)
	}
	return out
}
