//go:build cgo

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/config"
	"github.com/luminoshq/luminos/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Driver: "libsql", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(id string, createdAt time.Time) core.DiagnosisRecord {
	return core.DiagnosisRecord{
		ID:        id,
		CreatedAt: createdAt,
		Pro:       true,
		Profile:   core.BrandProfile{Name: "Acme", Domain: "acme.com", Category: "knives"},
		Score:     core.DiagnosisScore{Visibility: 50, Composite: 47, TotalPrompts: 45, ProvidersUsed: []string{"gemini"}},
		Results: []core.PromptResult{
			{Prompt: "q", Intent: core.IntentDiscovery, Kind: core.KindGeneric, Provider: "gemini", Mentioned: true, Sentiment: core.SentimentPositive},
		},
		Insights:        []string{"finding"},
		Recommendations: []string{"do the thing"},
		PromptCount:     45,
		ElapsedSeconds:  12.5,
	}
}

func TestSaveAndGetDiagnosis(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("d-1", time.Now().UTC())
	require.NoError(t, s.SaveDiagnosis(ctx, rec))

	got, err := s.GetDiagnosis(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Profile, got.Profile)
	assert.Equal(t, rec.Score.Composite, got.Score.Composite)
	assert.Len(t, got.Results, 1)
	assert.True(t, got.Pro)
}

func TestGetDiagnosisNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetDiagnosis(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDiagnosesNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveDiagnosis(ctx, sampleRecord("d-old", base)))
	require.NoError(t, s.SaveDiagnosis(ctx, sampleRecord("d-new", base.Add(time.Hour))))

	list, err := s.ListDiagnoses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d-new", list[0].ID)
	assert.Equal(t, "d-old", list[1].ID)
	assert.Equal(t, "Acme", list[0].BrandName)
	assert.Equal(t, 47, list[0].Composite)
}

func TestListDiagnosesLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.SaveDiagnosis(ctx, rec))
	}

	list, err := s.ListDiagnoses(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
