package analysis

import (
	"context"
	"testing"

	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePrompt(t *testing.T) {
	gen := &scriptedGenerator{outputs: []string{"1. FULLY MEETS"}}
	criteria := []Criterion{
		{Description: "ISO 9001", Importance: Critical},
		{Description: "Local office", Importance: NiceToHave},
	}

	got, err := New(gen, Options{}).Evaluate(context.Background(), criteria, []string{"We are certified.", "We have an office."})
	require.NoError(t, err)
	assert.Equal(t, "1. FULLY MEETS", got)

	prompt := gen.prompt(0)
	assert.True(t, containsAll(prompt,
		"Be extremely strict",
		"FULLY MEETS",
		"DOES NOT MEET",
		"Eligibility Criteria:\n1. ISO 9001 - Critical\n2. Local office - Nice-to-have",
		"Company Profile:\nWe are certified.\n\nWe have an office.",
		"Evaluation (each criterion individually):",
	), "unexpected prompt: %q", prompt)
	assert.Equal(t, DefaultEvaluationMaxLength, gen.requests[0].MaxOutput)
}

func TestEvaluateWithoutCriteria(t *testing.T) {
	gen := &scriptedGenerator{}
	got, err := New(gen, Options{}).Evaluate(context.Background(), nil, []string{"profile"})
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Empty(t, gen.requests)
}

func TestEvaluateFailure(t *testing.T) {
	gen := &scriptedGenerator{failAt: 1}
	_, err := New(gen, Options{}).Evaluate(context.Background(), []Criterion{{Description: "x", Importance: Important}}, nil)

	assert.ErrorIs(t, err, ai.ErrGenerationFailure)
	assert.ErrorIs(t, err, errScripted)
}

func TestPromptPlaceholdersInDocumentText(t *testing.T) {
	prompt := evaluatePrompt([]Criterion{{Description: "Mention {{COMPANY}}", Importance: Important}}, []string{"Profile {{CRITERIA}}"})

	assert.True(t, containsAll(prompt, "1. Mention {{COMPANY}} - Important", "Profile {{CRITERIA}}"),
		"placeholders in document text must be kept: %q", prompt)
}
