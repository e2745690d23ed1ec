package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/rfp-analyzer/internal/ai"
)

// scriptedGenerator returns its outputs in order and records every request.
type scriptedGenerator struct {
	outputs  []string
	failAt   int
	requests []ai.Request
}

var errScripted = errors.New("scripted failure")

func (s *scriptedGenerator) Generate(_ context.Context, req ai.Request) (string, error) {
	s.requests = append(s.requests, req)
	n := len(s.requests)
	if s.failAt > 0 && n == s.failAt {
		return "", &ai.GenerationError{Provider: "scripted", Cause: errScripted}
	}
	if n > len(s.outputs) {
		return "", errors.New("unexpected generate call")
	}
	return s.outputs[n-1], nil
}

func (s *scriptedGenerator) Provider() string { return "scripted" }
func (s *scriptedGenerator) Model() string    { return "script-1" }

func (s *scriptedGenerator) prompt(i int) string {
	if i >= len(s.requests) {
		return ""
	}
	return s.requests[i].Prompt
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
