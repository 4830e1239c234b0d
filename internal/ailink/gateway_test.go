package ailink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminoshq/luminos/internal/ailink/driver"
)

type stubDriver struct {
	name string
	text string
	err  error

	lastReq *driver.Request
}

func (s *stubDriver) Complete(_ context.Context, req *driver.Request) (*driver.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &driver.Response{Text: s.text}, nil
}

func (s *stubDriver) Name() string { return s.name }

func TestAvailableStableOrder(t *testing.T) {
	g := NewGateway(Config{Providers: map[string]ProviderConfig{
		ProviderXAI:    {APIKey: "x"},
		ProviderGemini: {APIKey: "g"},
	}})

	assert.Equal(t, []string{ProviderGemini, ProviderXAI}, g.Available())
	assert.True(t, g.Has(ProviderGemini))
	assert.False(t, g.Has(ProviderOpenAI))
}

func TestAvailableEmptyWithoutCredentials(t *testing.T) {
	g := NewGateway(Config{})
	assert.Empty(t, g.Available())
}

func TestGenerateUsesConfiguredModel(t *testing.T) {
	g := NewGateway(Config{Providers: map[string]ProviderConfig{
		ProviderGemini: {APIKey: "g", Model: "gemini-custom"},
	}})
	stub := &stubDriver{name: ProviderGemini, text: "answer"}
	g.Register(stub)

	got, err := g.Generate(context.Background(), ProviderGemini, "question", 128)
	require.NoError(t, err)
	assert.Equal(t, "answer", got)

	require.NotNil(t, stub.lastReq)
	assert.Equal(t, "gemini-custom", stub.lastReq.Model)
	require.NotNil(t, stub.lastReq.MaxTokens)
	assert.Equal(t, 128, *stub.lastReq.MaxTokens)
	require.Len(t, stub.lastReq.Messages, 1)
	assert.Equal(t, "question", stub.lastReq.Messages[0].Content)
}

func TestGenerateUnconfiguredProvider(t *testing.T) {
	g := NewGateway(Config{})
	_, err := g.Generate(context.Background(), ProviderOpenAI, "question", 0)
	assert.ErrorContains(t, err, "not configured")
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Providers: map[string]ProviderConfig{
		ProviderOpenAI: {APIKey: "  sk-test  "},
	}}.Normalize()

	pc := cfg.Providers[ProviderOpenAI]
	assert.Equal(t, "sk-test", pc.APIKey)
	assert.Equal(t, DefaultModels[ProviderOpenAI], pc.Model)
	assert.Positive(t, pc.Timeout)
}
