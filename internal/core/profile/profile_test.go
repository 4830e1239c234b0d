package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestExtractFromSiteText(t *testing.T) {
	gen := &stubGen{raw: "```json\n" + `{"name":"Acme","category":"Widgets","positioning":"Premium widgets for makers","target_audience":"hobbyists","key_products":["Widget One","Widget Two"]}` + "\n```"}
	e := NewExtractor(gen, "gemini")

	p := e.Extract(context.Background(), "Acme", "acme.com", "Acme makes premium widgets")
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "acme.com", p.Domain)
	assert.Equal(t, "Widgets", p.Category)
	assert.Equal(t, []string{"Widget One", "Widget Two"}, p.KeyProducts)
	assert.Contains(t, gen.lastPrompt, "Acme makes premium widgets")
}

func TestExtractFallsBackOnProviderError(t *testing.T) {
	gen := &stubGen{err: errors.New("boom")}
	e := NewExtractor(gen, "gemini")

	p := e.Extract(context.Background(), "", "www.acme.com", "site text")
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "unknown", p.Category)
	assert.Empty(t, p.KeyProducts)
}

func TestExtractFallsBackOnGarbage(t *testing.T) {
	gen := &stubGen{raw: "I cannot help with that."}
	e := NewExtractor(gen, "gemini")

	p := e.Extract(context.Background(), "Acme", "acme.com", "site text")
	assert.Equal(t, "Acme", p.Name)
	assert.Equal(t, "unknown", p.Category)
}

func TestExtractNameOnlyPrompt(t *testing.T) {
	gen := &stubGen{raw: `{"name":"Acme","category":"Widgets"}`}
	e := NewExtractor(gen, "gemini")

	p := e.Extract(context.Background(), "Acme", "", "")
	require.Contains(t, gen.lastPrompt, `"Acme"`)
	assert.Equal(t, "Acme", p.Name)
}

func TestExtractCapsKeyProducts(t *testing.T) {
	gen := &stubGen{raw: `{"name":"Acme","key_products":["a","b","c","d","e","f","g"]}`}
	e := NewExtractor(gen, "gemini")

	p := e.Extract(context.Background(), "Acme", "", "text")
	assert.Len(t, p.KeyProducts, 5)
}

func TestNameFromDomain(t *testing.T) {
	assert.Equal(t, "Acme", NameFromDomain("https://www.acme.com/shop"))
	assert.Equal(t, "Acme", NameFromDomain("acme.io"))
	assert.Equal(t, "Localhost", NameFromDomain("http://localhost:8080"))
	assert.Empty(t, NameFromDomain(""))
}
