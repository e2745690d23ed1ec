// Package ollama generates text with a local Ollama server.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"go.uber.org/zap"
)

const (
	// ProviderName identifies this provider in configuration and logs.
	ProviderName = "ollama"

	DefaultBaseURL = "http://localhost:11434"
	defaultModel   = "llama3.1"
	defaultTimeout = 120 * time.Second
)

// Config holds the Ollama connection settings.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Generator calls the non-streaming /api/generate endpoint.
type Generator struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a generator for the server at cfg.BaseURL.
func New(cfg Config, log *zap.Logger) *Generator {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Generator{
		client: client,
		model:  model,
		logger: logger.WithCommonFields(log, ProviderName, model),
	}
}

func (g *Generator) Provider() string { return ProviderName }

func (g *Generator) Model() string { return g.model }

// Generate sends one prompt and returns the complete response text.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var (
		result generateResponse
		apiErr errorResponse
	)

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  g.model,
			Prompt: prompt,
			Stream: false,
			Options: generateOptions{
				Temperature: req.Temperature,
				NumPredict:  req.MaxOutput,
			},
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/api/generate")
	if err != nil {
		return "", &ai.GenerationError{Provider: ProviderName, Cause: fmt.Errorf("ollama request failed: %w", err)}
	}

	if resp.IsError() {
		msg := strings.TrimSpace(apiErr.Error)
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return "", &ai.GenerationError{Provider: ProviderName, Cause: fmt.Errorf("ollama error %d: %s", resp.StatusCode(), msg)}
	}

	g.logger.Debug("ollama response received",
		zap.Bool("done", result.Done),
		zap.Duration("elapsed", resp.Time()),
	)

	return strings.TrimSpace(result.Response), nil
}
