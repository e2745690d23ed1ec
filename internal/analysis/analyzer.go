// Package analysis turns chunked RFP and company text into a summary, a list
// of eligibility criteria, a strict evaluation and a verdict.
package analysis

import (
	"context"
	"unicode/utf8"

	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/spigell/rfp-analyzer/internal/utils"
	"go.uber.org/zap"
)

const (
	DefaultTemperature          = 0.3
	DefaultSummaryMaxLength     = 250
	DefaultMetaSummaryMaxLength = 600
	DefaultCriteriaMaxLength    = 600
	DefaultEvaluationMaxLength  = 1024

	defaultMaxLogLength = 200
)

// Options tunes generation parameters. Zero values select the defaults,
// except Temperature, where only nil does.
type Options struct {
	Temperature          *float64
	SummaryMaxLength     int
	MetaSummaryMaxLength int
	CriteriaMaxLength    int
	EvaluationMaxLength  int
	MaxLogLength         int
	Strategy             VerdictStrategy
	Logger               *zap.Logger
}

// Analyzer runs the generation-backed analysis steps. Calls to the generator
// are issued one at a time in document order.
type Analyzer struct {
	generator   ai.Generator
	opts        Options
	temperature float64
	strategy    VerdictStrategy
	logger      *zap.Logger
}

// New creates an Analyzer using generator for every model call.
func New(generator ai.Generator, opts Options) *Analyzer {
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	if opts.SummaryMaxLength <= 0 {
		opts.SummaryMaxLength = DefaultSummaryMaxLength
	}
	if opts.MetaSummaryMaxLength <= 0 {
		opts.MetaSummaryMaxLength = DefaultMetaSummaryMaxLength
	}
	if opts.CriteriaMaxLength <= 0 {
		opts.CriteriaMaxLength = DefaultCriteriaMaxLength
	}
	if opts.EvaluationMaxLength <= 0 {
		opts.EvaluationMaxLength = DefaultEvaluationMaxLength
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}

	strategy := opts.Strategy
	if strategy == nil {
		strategy = KeywordStrategy{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		generator:   generator,
		opts:        opts,
		temperature: temperature,
		strategy:    strategy,
		logger:      logger,
	}
}

// Verdict derives the decision with the configured strategy.
func (a *Analyzer) Verdict(criteria []Criterion, evaluation string) Verdict {
	return a.strategy.Derive(criteria, evaluation)
}

func (a *Analyzer) generate(ctx context.Context, step, prompt string, maxOutput int) (string, error) {
	out, err := a.generator.Generate(ctx, ai.Request{
		Prompt:      prompt,
		MaxOutput:   maxOutput,
		Temperature: a.temperature,
	})
	if err != nil {
		return "", err
	}

	a.logger.Debug("model output",
		zap.String("step", step),
		zap.Int("response_length", utf8.RuneCountInString(out)),
		zap.String("response_preview", utils.TruncateForLog(out, a.opts.MaxLogLength)),
	)

	return out, nil
}
