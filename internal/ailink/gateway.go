package ailink

import (
	"context"
	"fmt"
	"sync"

	"github.com/luminoshq/luminos/internal/ailink/driver"
	"github.com/luminoshq/luminos/internal/ailink/driver/gemini"
	"github.com/luminoshq/luminos/internal/ailink/driver/openai"
	"github.com/luminoshq/luminos/internal/ailink/driver/xai"
)

// Gateway exposes one generate capability per configured backend.
// Availability is determined purely by credential presence; no health check
// is performed up front. Drivers are constructed lazily, once per process,
// and are stateless with respect to any single call.
type Gateway struct {
	cfg Config

	mu      sync.Mutex
	drivers map[string]driver.Driver
}

// NewGateway builds a gateway from cfg with defaults applied.
func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		cfg:     cfg.Normalize(),
		drivers: make(map[string]driver.Driver),
	}
}

// Available returns the ids of providers with a configured credential, in
// stable order.
func (g *Gateway) Available() []string {
	var ids []string
	for _, id := range ProviderOrder {
		if g.cfg.Providers[id].APIKey != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Has reports whether providerID has a configured credential.
func (g *Gateway) Has(providerID string) bool {
	return g.cfg.Providers[providerID].APIKey != ""
}

// Register installs a pre-built driver for its id, replacing lazy
// construction. Intended for diagnostics and tests.
func (g *Gateway) Register(d driver.Driver) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drivers[d.Name()] = d
}

// Generate runs one completion against providerID and returns the answer
// text. Transport and provider failures surface as errors; callers decide
// whether an error degrades to an absent answer.
func (g *Gateway) Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error) {
	d, err := g.driverFor(providerID)
	if err != nil {
		return "", err
	}

	req := &driver.Request{
		Model:    g.cfg.Providers[providerID].Model,
		Messages: []driver.Message{{Role: driver.RoleUser, Content: prompt}},
	}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}

	resp, err := d.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (g *Gateway) driverFor(providerID string) (driver.Driver, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if d, ok := g.drivers[providerID]; ok {
		return d, nil
	}

	pc, ok := g.cfg.Providers[providerID]
	if !ok || pc.APIKey == "" {
		return nil, fmt.Errorf("provider %q is not configured", providerID)
	}

	var d driver.Driver
	switch providerID {
	case ProviderGemini:
		client := gemini.NewClient(pc.BaseURL, pc.APIKey)
		client.Timeout = pc.Timeout
		d = client
	case ProviderOpenAI:
		client := openai.NewClient(pc.BaseURL, pc.APIKey)
		client.Timeout = pc.Timeout
		d = client
	case ProviderXAI:
		client := xai.NewClient(pc.BaseURL, pc.APIKey)
		client.Timeout = pc.Timeout
		d = client
	default:
		return nil, fmt.Errorf("unknown provider %q", providerID)
	}

	g.drivers[providerID] = d
	return d, nil
}
