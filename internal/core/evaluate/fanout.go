package evaluate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/luminoshq/luminos/internal/ailink/driver"
	"github.com/luminoshq/luminos/internal/core"
)

const (
	defaultConcurrency = 8
	defaultRatePerMin  = 60
	answerTokens       = 1024
)

var retryBackoff = 2 * time.Second

type textGenerator interface {
	Generate(ctx context.Context, providerID, prompt string, maxTokens int) (string, error)
}

// RunnerConfig tunes the fan-out stage.
type RunnerConfig struct {
	// MaxConcurrency bounds in-flight provider calls across all providers.
	MaxConcurrency int
	// RateLimits holds per-provider request budgets in requests/minute.
	RateLimits map[string]int
	// Retry429 enables a single retry after a short backoff when a
	// provider signals rate limiting.
	Retry429 bool
}

// GenericAnswer is a raw answer to a generic prompt, kept for competitor
// mining. It is not persisted beyond the run.
type GenericAnswer struct {
	Prompt string
	Text   string
}

// Runner fans the prompt battery out across providers. One task exists per
// (prompt, provider) pair; a failing task degrades to a not-mentioned
// result and never aborts the batch.
type Runner struct {
	gen      textGenerator
	cfg      RunnerConfig
	limiters map[string]*rate.Limiter
}

// NewRunner builds a runner for the given provider set.
func NewRunner(gen textGenerator, cfg RunnerConfig, providers []string) *Runner {
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultConcurrency
	}
	limiters := make(map[string]*rate.Limiter, len(providers))
	for _, id := range providers {
		perMin := cfg.RateLimits[id]
		if perMin <= 0 {
			perMin = defaultRatePerMin
		}
		limiters[id] = rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin)
	}
	return &Runner{gen: gen, cfg: cfg, limiters: limiters}
}

// Run evaluates every (prompt, provider) pair and joins all results before
// returning. Results keep task order: prompts outer, providers inner.
func (r *Runner) Run(ctx context.Context, brand core.BrandProfile, specs []core.PromptSpec, providers []string) ([]core.PromptResult, []GenericAnswer) {
	type task struct {
		idx      int
		spec     core.PromptSpec
		provider string
	}

	tasks := make([]task, 0, len(specs)*len(providers))
	for _, spec := range specs {
		for _, p := range providers {
			tasks = append(tasks, task{idx: len(tasks), spec: spec, provider: p})
		}
	}

	results := make([]core.PromptResult, len(tasks))
	answers := make([]string, len(tasks))

	sem := make(chan struct{}, r.cfg.MaxConcurrency)
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			answer, err := r.generate(ctx, t.provider, t.spec.Text)
			if err != nil {
				results[t.idx] = FailureResult(t.spec, t.provider, err)
				return
			}
			results[t.idx] = Analyze(brand.Name, brand.Domain, t.spec, t.provider, answer)
			answers[t.idx] = answer
		}(t)
	}
	wg.Wait()

	var generic []GenericAnswer
	for i, t := range tasks {
		if t.spec.Kind == core.KindGeneric && answers[i] != "" {
			generic = append(generic, GenericAnswer{Prompt: t.spec.Text, Text: answers[i]})
		}
	}
	return results, generic
}

func (r *Runner) generate(ctx context.Context, provider, prompt string) (string, error) {
	if lim := r.limiters[provider]; lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return "", err
		}
	}

	answer, err := r.gen.Generate(ctx, provider, prompt, answerTokens)
	if err == nil || !r.cfg.Retry429 || !driver.IsRateLimited(err) {
		return answer, err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(retryBackoff):
	}
	return r.gen.Generate(ctx, provider, prompt, answerTokens)
}
