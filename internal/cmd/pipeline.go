package cmd

import (
	"go.uber.org/zap"

	"github.com/luminoshq/luminos/internal/ailink"
	"github.com/luminoshq/luminos/internal/config"
	"github.com/luminoshq/luminos/internal/core/diagnosis"
	"github.com/luminoshq/luminos/internal/core/prompts"
	"github.com/luminoshq/luminos/internal/core/score"
	"github.com/luminoshq/luminos/internal/observability"
)

// newGateway builds the provider gateway from config.
func newGateway(cfg *config.Config) *ailink.Gateway {
	return ailink.NewGateway(cfg.AILink)
}

// pipelineConfig translates the typed app config into pipeline tuning.
func pipelineConfig(cfg *config.Config) diagnosis.Config {
	pc := diagnosis.Config{
		StructuringProvider: cfg.Diagnosis.StructuringProvider,
		MaxConcurrency:      cfg.Diagnosis.MaxConcurrency,
		RateLimits:          cfg.Diagnosis.RateLimits,
		Retry429:            cfg.Diagnosis.Retry429,
		Score: score.Config{
			Weights: score.Weights{
				Visibility:     cfg.Diagnosis.Weights.Visibility,
				Representation: cfg.Diagnosis.Weights.Representation,
				Intent:         cfg.Diagnosis.Weights.Intent,
				Citation:       cfg.Diagnosis.Weights.Citation,
			},
			ProviderWeights: cfg.Diagnosis.ProviderWeights,
		},
	}

	if path := cfg.Diagnosis.TemplatesPath; path != "" {
		templates, err := prompts.LoadTemplates(path)
		if err != nil {
			if observability.CLILogger != nil {
				observability.CLILogger.Warn("Failed to load prompt templates, using built-ins",
					zap.String("path", path), zap.Error(err))
			}
		} else {
			pc.Templates = &templates
		}
	}

	return pc
}

// newPipeline assembles the diagnosis pipeline. sink may be nil.
func newPipeline(cfg *config.Config, gateway *ailink.Gateway, sink diagnosis.Sink, logger *zap.Logger) *diagnosis.Pipeline {
	return diagnosis.New(gateway, nil, sink, pipelineConfig(cfg), logger)
}
