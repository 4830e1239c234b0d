package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/store"
)

func sampleRecord() *core.DiagnosisRecord {
	rank := 2
	avgRank := 1.5
	return &core.DiagnosisRecord{
		ID:        "diag-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Pro:       true,
		Profile: core.BrandProfile{
			Name:     "Acme",
			Domain:   "acme.com",
			Category: "kitchen knives",
		},
		Score: core.DiagnosisScore{
			Visibility:     62,
			Representation: 70,
			Intent:         50,
			Citation:       10,
			Composite:      55,
			ProvidersUsed:  []string{"gemini"},
			PerProviderScores: map[string]core.ProviderScore{
				"gemini": {MentionRate: 62, MentionedCount: 28, ResultCount: 45},
			},
		},
		Results: []core.PromptResult{
			{
				Prompt:    "What are the best kitchen knives?",
				Kind:      core.KindGeneric,
				Intent:    core.IntentDiscovery,
				Provider:  "gemini",
				Mentioned: true,
				Rank:      &rank,
				Sentiment: core.SentimentPositive,
			},
			{
				Prompt:    "Is Acme any good?",
				Kind:      core.KindBrandSpecific,
				Intent:    core.IntentReputation,
				Provider:  "gemini",
				Mentioned: false,
				Sentiment: core.SentimentAbsent,
			},
		},
		Competitors: []core.CompetitorInfo{
			{Name: "WidgetCo", MentionCount: 3, AvgRank: &avgRank, Sentiment: core.SentimentPositive, WhyMentioned: "listed first"},
		},
		Insights:        []string{"Moderate AI visibility."},
		Recommendations: []string{"Publish comparison content."},
		PromptCount:     45,
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{
		"":          FormatTable,
		"table":     FormatTable,
		" JSON ":    FormatJSON,
		"markdown":  FormatMarkdown,
		"MARKDOWN ": FormatMarkdown,
	} {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatDiagnosis(sampleRecord())
	require.NoError(t, err)

	assert.Contains(t, rendered, "Acme")
	assert.Contains(t, rendered, "Visibility")
	assert.Contains(t, rendered, "Composite")
	assert.Contains(t, rendered, "WidgetCo")
	assert.Contains(t, rendered, "#2")
	assert.Contains(t, rendered, "Insights:")
	assert.Contains(t, rendered, "Publish comparison content.")
}

func TestTableFormatterNilRecord(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatDiagnosis(nil)
	require.NoError(t, err)
	assert.Empty(t, rendered)
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatDiagnosis(sampleRecord())
	require.NoError(t, err)

	var got core.DiagnosisRecord
	require.NoError(t, json.Unmarshal([]byte(rendered), &got))
	assert.Equal(t, "diag-1", got.ID)
	assert.Equal(t, 55, got.Score.Composite)
	assert.Len(t, got.Results, 2)
}

func TestMarkdownFormatter(t *testing.T) {
	rendered, err := (&MarkdownFormatter{}).FormatDiagnosis(sampleRecord())
	require.NoError(t, err)

	assert.Contains(t, rendered, "## Acme brand visibility (pro tier)")
	assert.Contains(t, rendered, "| Visibility | 62 |")
	assert.Contains(t, rendered, "**Composite**: 55")
	assert.Contains(t, rendered, "### Competitors")
	assert.Contains(t, rendered, "### Recommendations")
}

func TestFormatSummaries(t *testing.T) {
	assert.Equal(t, "No diagnoses recorded.", FormatSummaries(nil))

	rendered := FormatSummaries([]store.DiagnosisSummary{
		{ID: "diag-1", BrandName: "Acme", Domain: "acme.com", Pro: true, Composite: 55, CreatedAt: time.Now()},
	})
	assert.Contains(t, rendered, "diag-1")
	assert.Contains(t, rendered, "Acme")
	assert.Contains(t, rendered, "pro")
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &MarkdownFormatter{}, NewFormatter(FormatMarkdown))
}
