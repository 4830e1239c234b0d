// Package diagnosis orchestrates the full audit pipeline: fetch, profile,
// synthesize, fan out, analyze, mine competitors, score, and persist.
package diagnosis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/competitor"
	"github.com/luminoshq/luminos/internal/core/evaluate"
	"github.com/luminoshq/luminos/internal/core/fetcher"
	"github.com/luminoshq/luminos/internal/core/insight"
	"github.com/luminoshq/luminos/internal/core/profile"
	"github.com/luminoshq/luminos/internal/core/prompts"
	"github.com/luminoshq/luminos/internal/core/score"
)

var (
	// ErrNoProviders is the one fatal pipeline error: nothing to
	// evaluate against.
	ErrNoProviders = errors.New("no AI provider configured")
	// ErrNoSubject rejects requests naming neither a domain nor a brand.
	ErrNoSubject = errors.New("domain or brand name is required")
	// ErrTooManyCustomPrompts rejects requests above the custom cap.
	ErrTooManyCustomPrompts = errors.New("too many custom prompts")
)

// Request describes one diagnosis run.
type Request struct {
	Domain        string   `json:"domain,omitempty"`
	BrandName     string   `json:"brand_name,omitempty"`
	CustomPrompts []string `json:"custom_prompts,omitempty"`
	Pro           bool     `json:"pro"`
}

// Validate checks request preconditions.
func (r Request) Validate() error {
	if r.Domain == "" && r.BrandName == "" {
		return ErrNoSubject
	}
	if len(r.CustomPrompts) > prompts.MaxCustom {
		return ErrTooManyCustomPrompts
	}
	return nil
}

// Gateway is the provider capability surface the pipeline consumes.
type Gateway interface {
	Available() []string
	Has(providerID string) bool
	Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error)
}

// Sink receives the finished record. The pipeline is write-only toward it.
type Sink interface {
	SaveDiagnosis(ctx context.Context, rec core.DiagnosisRecord) error
}

// Config tunes one pipeline instance.
type Config struct {
	// StructuringProvider handles profile, prompt, and competitor
	// structuring calls when available.
	StructuringProvider string
	MaxConcurrency      int
	RateLimits          map[string]int
	Retry429            bool
	Score               score.Config
	// Templates overrides the fallback prompt templates when non-nil.
	Templates *prompts.Templates
}

// Pipeline runs diagnoses. Construct once and reuse; provider clients are
// process-wide.
type Pipeline struct {
	gateway Gateway
	fetcher *fetcher.Fetcher
	sink    Sink
	cfg     Config
	logger  *zap.Logger
}

// New builds a pipeline. The sink may be nil (CLI one-shot runs).
func New(gateway Gateway, f *fetcher.Fetcher, sink Sink, cfg Config, logger *zap.Logger) *Pipeline {
	if f == nil {
		f = fetcher.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StructuringProvider == "" {
		cfg.StructuringProvider = "gemini"
	}
	return &Pipeline{gateway: gateway, fetcher: f, sink: sink, cfg: cfg, logger: logger}
}

// Run executes the whole pipeline. Every failure mode except missing
// providers degrades to a best-effort, internally consistent record.
func (p *Pipeline) Run(ctx context.Context, req Request) (*core.DiagnosisRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	available := p.gateway.Available()
	if len(available) == 0 {
		return nil, ErrNoProviders
	}

	structuring := p.cfg.StructuringProvider
	if !p.gateway.Has(structuring) {
		structuring = available[0]
	}

	providers := []string{structuring}
	if req.Pro {
		providers = available
	}

	start := time.Now()
	p.logger.Info("diagnosis started",
		zap.String("domain", req.Domain),
		zap.String("brand_name", req.BrandName),
		zap.Bool("pro", req.Pro),
		zap.Strings("providers", providers))

	var siteText string
	if req.Domain != "" {
		siteText = p.fetcher.Fetch(ctx, req.Domain)
		p.logger.Debug("site text fetched", zap.Int("chars", len(siteText)))
	}

	brand := profile.NewExtractor(p.gateway, structuring).Extract(ctx, req.BrandName, req.Domain, siteText)

	synth := prompts.NewSynthesizer(p.gateway, structuring)
	if p.cfg.Templates != nil {
		synth.SetTemplates(*p.cfg.Templates)
	}
	specs := synth.Synthesize(ctx, brand, req.CustomPrompts)
	p.logger.Debug("prompts synthesized", zap.Int("count", len(specs)))

	runner := evaluate.NewRunner(p.gateway, evaluate.RunnerConfig{
		MaxConcurrency: p.cfg.MaxConcurrency,
		RateLimits:     p.cfg.RateLimits,
		Retry429:       p.cfg.Retry429,
	}, providers)
	results, genericAnswers := runner.Run(ctx, brand, specs, providers)

	competitors := competitor.NewExtractor(p.gateway, structuring).Extract(ctx, brand.Name, brand.Category, genericAnswers)

	sc := score.Aggregate(p.cfg.Score, results, providers)
	insights, recommendations := insight.Generate(sc, competitors, results)

	rec := &core.DiagnosisRecord{
		ID:              uuid.NewString(),
		CreatedAt:       time.Now().UTC(),
		Pro:             req.Pro,
		Profile:         brand,
		Score:           sc,
		Results:         results,
		Competitors:     competitors,
		Insights:        insights,
		Recommendations: recommendations,
		PromptCount:     len(specs),
		ElapsedSeconds:  time.Since(start).Seconds(),
	}

	if p.sink != nil {
		if err := p.sink.SaveDiagnosis(ctx, *rec); err != nil {
			// Persistence trouble must not void a finished run.
			p.logger.Warn("diagnosis not persisted", zap.Error(err))
		}
	}

	p.logger.Info("diagnosis finished",
		zap.String("id", rec.ID),
		zap.String("brand", brand.Name),
		zap.Int("composite", sc.Composite),
		zap.Float64("elapsed_seconds", rec.ElapsedSeconds))
	return rec, nil
}
