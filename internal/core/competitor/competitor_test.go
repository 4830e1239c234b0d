package competitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/evaluate"
)

type stubGen struct {
	raw        string
	err        error
	lastPrompt string
}

func (s *stubGen) Generate(_ context.Context, _ string, prompt string, _ int) (string, error) {
	s.lastPrompt = prompt
	return s.raw, s.err
}

func answers() []evaluate.GenericAnswer {
	return []evaluate.GenericAnswer{
		{Prompt: "best knife brands?", Text: "WidgetCo and ToolMart are popular."},
	}
}

func TestExtract(t *testing.T) {
	gen := &stubGen{raw: `[
		{"name":"WidgetCo","count":3,"avg_rank":1.5,"sentiment":"positive","why":"listed first"},
		{"name":"ToolMart","count":1,"sentiment":"neutral","why":"budget option"}
	]`}
	e := NewExtractor(gen, "gemini")

	got := e.Extract(context.Background(), "Acme", "kitchen knives", answers())
	require.Len(t, got, 2)
	assert.Equal(t, "WidgetCo", got[0].Name)
	assert.Equal(t, 3, got[0].MentionCount)
	require.NotNil(t, got[0].AvgRank)
	assert.InDelta(t, 1.5, *got[0].AvgRank, 0.001)
	assert.Equal(t, core.SentimentPositive, got[0].Sentiment)

	assert.Contains(t, gen.lastPrompt, "best knife brands?")
	assert.Contains(t, gen.lastPrompt, `"Acme"`)
}

func TestExtractExcludesSubjectBrand(t *testing.T) {
	gen := &stubGen{raw: `[
		{"name":"ACME","count":5,"sentiment":"positive","why":"the subject itself"},
		{"name":"acme ","count":2,"sentiment":"neutral","why":"again"},
		{"name":"WidgetCo","count":1,"sentiment":"neutral","why":"rival"}
	]`}
	e := NewExtractor(gen, "gemini")

	got := e.Extract(context.Background(), "Acme", "knives", answers())
	require.Len(t, got, 1)
	assert.Equal(t, "WidgetCo", got[0].Name)
}

func TestExtractCapsAtFifteen(t *testing.T) {
	items := make([]map[string]any, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, map[string]any{"name": fmt.Sprintf("Brand%02d", i), "count": 30 - i, "sentiment": "neutral"})
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	e := NewExtractor(&stubGen{raw: string(raw)}, "gemini")
	got := e.Extract(context.Background(), "Acme", "knives", answers())

	require.Len(t, got, MaxCompetitors)
	assert.Equal(t, "Brand00", got[0].Name)
	// Sorted by mention count descending.
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].MentionCount, got[i].MentionCount)
	}
}

func TestExtractParseFailureYieldsEmpty(t *testing.T) {
	e := NewExtractor(&stubGen{raw: "I couldn't identify any brands."}, "gemini")
	assert.Empty(t, e.Extract(context.Background(), "Acme", "knives", answers()))
}

func TestExtractProviderErrorYieldsEmpty(t *testing.T) {
	e := NewExtractor(&stubGen{err: errors.New("boom")}, "gemini")
	assert.Empty(t, e.Extract(context.Background(), "Acme", "knives", answers()))
}

func TestExtractNoAnswersSkipsProvider(t *testing.T) {
	gen := &stubGen{raw: `[]`}
	e := NewExtractor(gen, "gemini")
	assert.Empty(t, e.Extract(context.Background(), "Acme", "knives", nil))
	assert.Empty(t, gen.lastPrompt)
}

func TestBuildCorpusRespectsBudget(t *testing.T) {
	long := strings.Repeat("x", 5000)
	in := []evaluate.GenericAnswer{
		{Prompt: "p1", Text: long},
		{Prompt: "p2", Text: long},
		{Prompt: "p3", Text: long},
	}
	corpus := buildCorpus(in)
	assert.LessOrEqual(t, len(corpus), corpusBudget)
	assert.Contains(t, corpus, "p1")
	assert.NotContains(t, corpus, "p3")
}
