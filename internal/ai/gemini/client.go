package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	// ProviderName identifies this provider in configuration and logs.
	ProviderName = "gemini"

	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 3
)

var errEmptyResponse = errors.New("gemini api returned empty response")

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the Gemini connection settings.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models     contentModels
	model      string
	maxRetries int
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg Config, log *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg, log), nil
}

func newGenerator(models contentModels, cfg Config, log *zap.Logger) *Generator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Generator{
		models:     models,
		model:      model,
		maxRetries: maxRetries,
		logger:     logger.WithCommonFields(log, ProviderName, model),
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 2 * time.Minute
	return b
}

func (g *Generator) Provider() string { return ProviderName }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// Generate sends the prompt to Gemini and returns the joined text of the response.
// Rate limits and server errors are retried up to the configured attempt count.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxOutput > 0 {
		config.MaxOutputTokens = int32(req.MaxOutput)
	}

	attempt := 0
	operation := func() (string, error) {
		attempt++

		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
		if err != nil {
			if !isRetryable(err) {
				return "", backoff.Permanent(fmt.Errorf("generate content: %w", err))
			}
			g.logger.Warn("gemini request failed, retrying",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", g.maxRetries),
				zap.Error(err),
			)
			return "", fmt.Errorf("generate content: %w", err)
		}

		output := responseText(resp)
		if output == "" {
			return "", backoff.Permanent(errEmptyResponse)
		}
		return output, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(g.newBackOff(), uint64(g.maxRetries-1)), ctx)

	output, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return "", &ai.GenerationError{Provider: ProviderName, Cause: err}
	}

	return output, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

// isRetryable reports whether a failed call may succeed later. Exhausted
// quotas do not recover within the retry window and fail immediately.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) {
			return true
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return !isQuotaExhausted(apiErr)
	case apiErr.Code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

func isQuotaExhausted(apiErr genai.APIError) bool {
	return strings.EqualFold(apiErr.Status, "RESOURCE_EXHAUSTED") &&
		strings.Contains(strings.ToLower(apiErr.Message), "quota")
}
