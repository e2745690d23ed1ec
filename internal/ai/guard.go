package ai

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spigell/rfp-analyzer/internal/ai/tokens"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"github.com/spigell/rfp-analyzer/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

// GuardOptions configures Guard.
type GuardOptions struct {
	// MaxInputTokens bounds the prompt size. Older text is dropped first. Zero disables the limit.
	MaxInputTokens int
	Counter        *tokens.Counter
	Logger         *zap.Logger
	MaxLogLength   int
}

// Guard serializes access to a generator and normalizes its output: the prompt
// is cut to the input budget, an echoed prompt is removed from the answer and
// empty answers become generation failures.
type Guard struct {
	mu        sync.Mutex
	next      Generator
	maxInput  int
	counter   *tokens.Counter
	logger    *zap.Logger
	maxLogLen int
}

// NewGuard wraps next.
func NewGuard(next Generator, opts GuardOptions) *Guard {
	maxLogLength := opts.MaxLogLength
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	counter := opts.Counter
	if counter == nil && opts.MaxInputTokens > 0 {
		counter = tokens.New("", opts.Logger)
	}

	return &Guard{
		next:      next,
		maxInput:  opts.MaxInputTokens,
		counter:   counter,
		logger:    logger.WithCommonFields(opts.Logger, next.Provider(), next.Model()),
		maxLogLen: maxLogLength,
	}
}

func (g *Guard) Provider() string { return g.next.Provider() }

func (g *Guard) Model() string { return g.next.Model() }

// Generate runs one request at a time against the wrapped generator.
func (g *Guard) Generate(ctx context.Context, req Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", Failure(g.Provider(), err)
	}

	if g.maxInput > 0 {
		truncated, dropped := g.counter.KeepLast(req.Prompt, g.maxInput)
		if dropped > 0 {
			g.logger.Warn("prompt exceeds input budget, dropping oldest context",
				zap.Int("max_input_tokens", g.maxInput),
				zap.Int("dropped_tokens", dropped),
			)
			req.Prompt = truncated
		}
	}

	g.logger.Debug("generate request",
		zap.Int("prompt_length", utf8.RuneCountInString(req.Prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(req.Prompt, g.maxLogLen)),
		zap.Int("max_output", req.MaxOutput),
		zap.Float64("temperature", req.Temperature),
	)

	raw, err := g.next.Generate(ctx, req)
	if err != nil {
		return "", Failure(g.Provider(), err)
	}

	output := strings.TrimSpace(stripEcho(req.Prompt, raw))
	if output == "" {
		return "", Failure(g.Provider(), ErrEmptyOutput)
	}

	g.logger.Debug("generate response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", utils.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

// stripEcho removes the prompt when the model repeats it before its answer.
func stripEcho(prompt, output string) string {
	trimmedOut := strings.TrimSpace(output)
	for _, p := range []string{prompt, strings.TrimSpace(prompt)} {
		if p != "" && strings.HasPrefix(trimmedOut, p) {
			return trimmedOut[len(p):]
		}
	}
	return output
}
