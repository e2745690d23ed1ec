// Package ai defines the text generation collaborator used by the analysis
// pipeline and the guard that every provider is wrapped in.
package ai

import "context"

// Request is a single prompt submitted to a generation provider.
type Request struct {
	Prompt string
	// MaxOutput bounds the generated length in provider tokens. Zero leaves the provider default.
	MaxOutput   int
	Temperature float64
}

// Generator produces free text for a prompt. Implementations must be safe to
// call from a single goroutine at a time; Guard enforces that for callers.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
	Model() string
}
