// Package competitor mines rival brands from generic-prompt answers.
package competitor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/evaluate"
	"github.com/luminoshq/luminos/internal/jsonutil"
)

const (
	// MaxCompetitors caps the returned list.
	MaxCompetitors = 15

	// corpusBudget caps the characters of prompt+answer pairs sent to the
	// provider.
	corpusBudget = 12000

	maxTokens = 2048
)

const extractionPrompt = `Below are consumer questions and AI answers about the %q market.
List every brand or company mentioned in the answers EXCEPT %q, as a strict JSON array of objects:
{"name": "brand", "count": <number of answers mentioning it>, "avg_rank": <average list position or null>, "sentiment": "positive"|"neutral"|"negative", "why": "one short reason it was mentioned"}
Sort by count descending and return at most %d entries. Return only the JSON array.

%s`

type textGenerator interface {
	Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error)
}

// Extractor asks a provider to enumerate competing brands. Brand-specific
// answers are deliberately excluded upstream: the query itself names the
// subject and would contaminate the counts.
type Extractor struct {
	gen      textGenerator
	provider string
}

// NewExtractor returns an extractor bound to a provider id.
func NewExtractor(gen textGenerator, provider string) *Extractor {
	return &Extractor{gen: gen, provider: provider}
}

// Extract never fails: provider or parse trouble yields an empty list.
func (e *Extractor) Extract(ctx context.Context, brandName, category string, answers []evaluate.GenericAnswer) []core.CompetitorInfo {
	corpus := buildCorpus(answers)
	if corpus == "" {
		return nil
	}
	if strings.TrimSpace(category) == "" {
		category = "relevant"
	}

	prompt := fmt.Sprintf(extractionPrompt, category, brandName, MaxCompetitors, corpus)
	raw, err := e.gen.Generate(ctx, e.provider, prompt, maxTokens)
	if err != nil {
		return nil
	}

	var items []struct {
		Name      string   `json:"name"`
		Count     int      `json:"count"`
		AvgRank   *float64 `json:"avg_rank"`
		Sentiment string   `json:"sentiment"`
		Why       string   `json:"why"`
	}
	if err := jsonutil.Unmarshal(raw, &items); err != nil {
		return nil
	}

	subject := normalize(brandName)
	var out []core.CompetitorInfo
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || normalize(name) == subject {
			continue
		}
		count := item.Count
		if count < 1 {
			count = 1
		}
		out = append(out, core.CompetitorInfo{
			Name:         name,
			MentionCount: count,
			AvgRank:      item.AvgRank,
			Sentiment:    parseSentiment(item.Sentiment),
			WhyMentioned: strings.TrimSpace(item.Why),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MentionCount > out[j].MentionCount
	})
	if len(out) > MaxCompetitors {
		out = out[:MaxCompetitors]
	}
	return out
}

func buildCorpus(answers []evaluate.GenericAnswer) string {
	var sb strings.Builder
	for _, a := range answers {
		pair := "Q: " + a.Prompt + "\nA: " + a.Text + "\n\n"
		if sb.Len()+len(pair) > corpusBudget {
			break
		}
		sb.WriteString(pair)
	}
	return strings.TrimSpace(sb.String())
}

func parseSentiment(s string) core.Sentiment {
	switch core.Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case core.SentimentPositive:
		return core.SentimentPositive
	case core.SentimentNegative:
		return core.SentimentNegative
	default:
		return core.SentimentNeutral
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
