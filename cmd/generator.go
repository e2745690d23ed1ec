package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/spigell/rfp-analyzer/internal/ai/gemini"
	"github.com/spigell/rfp-analyzer/internal/ai/mock"
	"github.com/spigell/rfp-analyzer/internal/ai/ollama"
	"github.com/spigell/rfp-analyzer/internal/analysis"
	"github.com/spigell/rfp-analyzer/internal/secrets"
	"go.uber.org/zap"
)

// newGenerator builds the configured provider behind an ai.Guard.
func newGenerator(ctx context.Context, cfg *GenerationConfig, logger *zap.Logger) (ai.Generator, error) {
	var generator ai.Generator

	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case gemini.ProviderName:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			File:  cfg.Gemini.APIKeyFile,
			Env:   "GEMINI_API_KEY",
			Value: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set generation.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		g, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:     apiKey,
			Model:      cfg.Gemini.Model,
			MaxRetries: cfg.Gemini.MaxRetries,
		}, logger)
		if err != nil {
			return nil, err
		}
		generator = g
	case ollama.ProviderName:
		generator = ollama.New(ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.Ollama.Timeout,
		}, logger)
	case mock.ProviderName:
		generator = mock.New()
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}

	return ai.NewGuard(generator, ai.GuardOptions{
		MaxInputTokens: cfg.MaxInputTokens,
		Logger:         logger,
		MaxLogLength:   cfg.MaxLogLength,
	}), nil
}

func newAnalyzer(generator ai.Generator, config *Config, logger *zap.Logger) *analysis.Analyzer {
	return analysis.New(generator, analysis.Options{
		Temperature:          &config.Generation.Temperature,
		SummaryMaxLength:     config.Generation.SummaryMaxLength,
		MetaSummaryMaxLength: config.Generation.MetaSummaryMaxLength,
		CriteriaMaxLength:    config.Generation.CriteriaMaxLength,
		EvaluationMaxLength:  config.Generation.EvaluationMaxLength,
		MaxLogLength:         config.Generation.MaxLogLength,
		Strategy:             analysis.KeywordStrategy{RequireCriteria: config.Verdict.RequireCriteria},
		Logger:               logger,
	})
}
