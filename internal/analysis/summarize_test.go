package analysis

import (
	"context"
	"testing"

	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeNoChunks(t *testing.T) {
	gen := &scriptedGenerator{}
	got, err := New(gen, Options{}).Summarize(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, NoContentSummary, got)
	assert.Empty(t, gen.requests)
}

func TestSummarizeSingleChunk(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"only summary"}}
	got, err := New(gen, Options{}).Summarize(context.Background(), []string{"Section text."})
	require.NoError(t, err)

	assert.Equal(t, "only summary", got)
	require.Len(t, gen.requests, 1)

	req := gen.requests[0]
	assert.True(t, containsAll(req.Prompt, "Summarize the following section", "Section text.", "Summary:"),
		"unexpected prompt: %q", req.Prompt)
	assert.Equal(t, DefaultSummaryMaxLength, req.MaxOutput)
	assert.Equal(t, DefaultTemperature, req.Temperature)
}

func TestSummarizeMapReduce(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"first", "second", "overall"}}
	got, err := New(gen, Options{MetaSummaryMaxLength: 700}).Summarize(context.Background(), []string{"A.", "B."})
	require.NoError(t, err)

	assert.Equal(t, "overall", got)
	require.Len(t, gen.requests, 3)

	meta := gen.requests[2]
	assert.True(t, containsAll(meta.Prompt, "Below are summaries", "first\n\nsecond", "Overall Summary:"),
		"unexpected meta prompt: %q", meta.Prompt)
	assert.Equal(t, 700, meta.MaxOutput)
}

func TestSummarizeStopsOnFailure(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"first", "second", "overall"}, failAt: 2}
	_, err := New(gen, Options{}).Summarize(context.Background(), []string{"A.", "B."})

	require.ErrorIs(t, err, ai.ErrGenerationFailure)
	assert.Len(t, gen.requests, 2)
}
