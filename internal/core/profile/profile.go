// Package profile turns site text (or a bare name) into a structured brand
// profile via the structuring provider.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/jsonutil"
)

const (
	maxTokens      = 1024
	maxKeyProducts = 5
)

const siteTextPrompt = `You are a brand analyst. Based on the website text below, describe the brand as strict JSON with exactly these keys:
{"name": "brand name", "category": "industry category", "positioning": "one-sentence positioning statement", "target_audience": "primary audience", "key_products": ["3-5 key products or services"]}
Return only the JSON object, no markdown, no commentary.
%s
Website text:
%s`

const nameOnlyPrompt = `You are a brand analyst. Invent a minimal plausible profile for a brand called %q as strict JSON with exactly these keys:
{"name": "brand name", "category": "industry category", "positioning": "one-sentence positioning statement", "target_audience": "primary audience", "key_products": ["3-5 key products or services"]}
Return only the JSON object, no markdown, no commentary.`

type textGenerator interface {
	Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error)
}

// Extractor builds brand profiles with one designated structuring provider.
type Extractor struct {
	gen      textGenerator
	provider string
}

// NewExtractor returns an extractor bound to the structuring provider id.
func NewExtractor(gen textGenerator, provider string) *Extractor {
	return &Extractor{gen: gen, provider: provider}
}

// Extract never fails: provider or parse trouble degrades to a profile
// built from the name/domain hints alone.
func (e *Extractor) Extract(ctx context.Context, nameHint, domain, siteText string) core.BrandProfile {
	prompt := e.buildPrompt(nameHint, domain, siteText)

	raw, err := e.gen.Generate(ctx, e.provider, prompt, maxTokens)
	if err != nil {
		return Fallback(nameHint, domain)
	}

	var payload struct {
		Name           string   `json:"name"`
		Category       string   `json:"category"`
		Positioning    string   `json:"positioning"`
		TargetAudience string   `json:"target_audience"`
		KeyProducts    []string `json:"key_products"`
	}
	if err := jsonutil.Unmarshal(raw, &payload); err != nil || strings.TrimSpace(payload.Name) == "" {
		return Fallback(nameHint, domain)
	}

	products := payload.KeyProducts
	if len(products) > maxKeyProducts {
		products = products[:maxKeyProducts]
	}

	return core.BrandProfile{
		Name:           strings.TrimSpace(payload.Name),
		Domain:         strings.TrimSpace(domain),
		Category:       orUnknown(payload.Category),
		Positioning:    strings.TrimSpace(payload.Positioning),
		TargetAudience: strings.TrimSpace(payload.TargetAudience),
		KeyProducts:    products,
	}
}

func (e *Extractor) buildPrompt(nameHint, domain, siteText string) string {
	if strings.TrimSpace(siteText) != "" {
		hint := ""
		if strings.TrimSpace(nameHint) != "" {
			hint = fmt.Sprintf("The brand is likely called %q.", nameHint)
		}
		return fmt.Sprintf(siteTextPrompt, hint, siteText)
	}

	name := strings.TrimSpace(nameHint)
	if name == "" {
		name = NameFromDomain(domain)
	}
	return fmt.Sprintf(nameOnlyPrompt, name)
}

// Fallback builds the hint-only profile used when structured extraction
// cannot be trusted.
func Fallback(nameHint, domain string) core.BrandProfile {
	name := strings.TrimSpace(nameHint)
	if name == "" {
		name = NameFromDomain(domain)
	}
	return core.BrandProfile{
		Name:           name,
		Domain:         strings.TrimSpace(domain),
		Category:       "unknown",
		Positioning:    "",
		TargetAudience: "",
		KeyProducts:    nil,
	}
}

// NameFromDomain derives a display name from a domain: scheme and www are
// stripped and the first label is title-cased.
func NameFromDomain(domain string) string {
	d := strings.TrimSpace(domain)
	if idx := strings.Index(d, "://"); idx >= 0 {
		d = d[idx+3:]
	}
	d = strings.TrimPrefix(d, "www.")
	if idx := strings.IndexAny(d, "./:"); idx >= 0 {
		d = d[:idx]
	}
	if d == "" {
		return ""
	}
	return strings.ToUpper(d[:1]) + d[1:]
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
