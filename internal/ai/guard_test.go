package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spigell/rfp-analyzer/internal/ai/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubGenerator struct {
	mu       sync.Mutex
	output   string
	err      error
	prompts  []string
	active   int
	overlaps int
	delay    time.Duration
}

func (s *stubGenerator) Generate(ctx context.Context, req Request) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, req.Prompt)
	s.active++
	if s.active > 1 {
		s.overlaps++
	}
	s.mu.Unlock()

	time.Sleep(s.delay)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()

	return s.output, s.err
}

func (s *stubGenerator) Provider() string { return "stub" }
func (s *stubGenerator) Model() string    { return "stub-1" }

func TestGuardStripsEchoedPrompt(t *testing.T) {
	stub := &stubGenerator{output: "Summarize this.\n\nThe answer."}
	g := NewGuard(stub, GuardOptions{})

	got, err := g.Generate(context.Background(), Request{Prompt: "Summarize this."})
	require.NoError(t, err)
	assert.Equal(t, "The answer.", got)
}

func TestGuardEmptyOutputIsFailure(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "blank", output: "  \n "},
		{name: "only echo", output: "prompt text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(&stubGenerator{output: tt.output}, GuardOptions{})

			_, err := g.Generate(context.Background(), Request{Prompt: "prompt text"})
			assert.ErrorIs(t, err, ErrGenerationFailure)
			assert.ErrorIs(t, err, ErrEmptyOutput)
		})
	}
}

func TestGuardWrapsProviderErrors(t *testing.T) {
	cause := errors.New("device lost")
	g := NewGuard(&stubGenerator{err: cause}, GuardOptions{})

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrGenerationFailure)
	assert.ErrorIs(t, err, cause)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "stub", genErr.Provider)
}

func TestGuardDoesNotDoubleWrap(t *testing.T) {
	inner := &GenerationError{Provider: "inner", Cause: errors.New("boom")}
	g := NewGuard(&stubGenerator{err: inner}, GuardOptions{})

	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	assert.Same(t, inner, err)
}

func TestGuardTruncatesOldestContext(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	stub := &stubGenerator{output: "ok"}
	g := NewGuard(stub, GuardOptions{
		MaxInputTokens: 6,
		Counter:        &tokens.Counter{},
		Logger:         zap.New(core),
	})

	_, err := g.Generate(context.Background(), Request{Prompt: "0123456789"})
	require.NoError(t, err)
	assert.Equal(t, []string{"456789"}, stub.prompts)

	entries := logs.FilterMessage("prompt exceeds input budget, dropping oldest context").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ContextMap()["dropped_tokens"])
	assert.Equal(t, "stub", entries[0].ContextMap()["ai_provider"])
}

func TestGuardSerializesCalls(t *testing.T) {
	stub := &stubGenerator{output: "ok", delay: 5 * time.Millisecond}
	g := NewGuard(stub, GuardOptions{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = g.Generate(context.Background(), Request{Prompt: "p"})
		}()
	}
	wg.Wait()

	assert.Zero(t, stub.overlaps, "generator was called concurrently")
}

func TestGuardCanceledContext(t *testing.T) {
	stub := &stubGenerator{output: "ok"}
	g := NewGuard(stub, GuardOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, Request{Prompt: "p"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.prompts)
}
