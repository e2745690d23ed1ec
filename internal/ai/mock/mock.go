// Package mock provides a deterministic generator for demo runs and tests.
// It recognizes the analysis prompts by the instruction line they open with
// and answers in the shapes a real model is asked for.
package mock

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/rfp-analyzer/internal/ai"
	"github.com/spigell/rfp-analyzer/internal/document"
)

const (
	// ProviderName identifies this provider in configuration and logs.
	ProviderName = "mock"
	model        = "demo-v1"

	instructionCriteria   = "Extract key eligibility requirements"
	instructionEvaluation = "Evaluate if the company"
	instructionOverall    = "Below are summaries"

	headingSection   = "\nRFP Section:\n"
	headingCriteria  = "\nEligibility Criteria:\n"
	headingProfile   = "\n\nCompany Profile:\n"
	headingOverall   = "Overall Summary:"
	headingSummary   = "Summary:"
	headingExtracted = "\n\nEligibility Criteria:"
	headingEvaluated = "\n\nEvaluation"
)

var criterionLine = regexp.MustCompile(`^\d+\.\s+(.+?)\s+-\s+(\S.*)$`)

// Generator answers analysis prompts without a model.
type Generator struct{}

// New returns a mock generator.
func New() *Generator { return &Generator{} }

func (g *Generator) Provider() string { return ProviderName }

func (g *Generator) Model() string { return model }

// Generate returns canned output derived from the prompt content.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(req.Prompt)
	switch {
	case strings.HasPrefix(prompt, instructionEvaluation):
		return evaluate(prompt), nil
	case strings.HasPrefix(prompt, instructionCriteria):
		return criteria(between(prompt, headingSection, headingExtracted)), nil
	case strings.HasPrefix(prompt, instructionOverall):
		return overall(body(prompt)), nil
	default:
		return summary(body(prompt)), nil
	}
}

func criteria(section string) string {
	var b strings.Builder
	n := 0
	for _, sentence := range document.SplitSentences(section) {
		importance := classify(sentence)
		if importance == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. %s - %s\n", n, strings.TrimRight(sentence, ".!?"), importance)
	}
	if n == 0 {
		return "1. Relevant experience delivering comparable projects - Important"
	}
	return strings.TrimSpace(b.String())
}

func classify(sentence string) string {
	lower := strings.ToLower(sentence)
	switch {
	case containsAny(lower, "must", "required", "mandatory", "shall"):
		return "Critical"
	case containsAny(lower, "should", "important"):
		return "Important"
	case containsAny(lower, "prefer", "optional", "nice", "desirable"):
		return "Nice-to-have"
	default:
		return ""
	}
}

func evaluate(prompt string) string {
	// Criteria are one per line, so the first blank-line heading after them
	// is the template's own. The profile runs up to the last heading.
	listed, profile, _ := strings.Cut(after(prompt, headingCriteria), headingProfile)
	profile = strings.ToLower(before(profile, headingEvaluated))

	var b strings.Builder
	n := 0
	for _, line := range strings.Split(listed, "\n") {
		m := criterionLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		n++
		description, importance := m[1], m[2]
		if supported(description, profile) {
			fmt.Fprintf(&b, "%d. %s (%s): FULLY MEETS. The profile states this explicitly.\n", n, description, importance)
		} else {
			fmt.Fprintf(&b, "%d. %s (%s): DOES NOT MEET. No explicit evidence in the profile.\n", n, description, importance)
		}
	}
	if n == 0 {
		return "No criteria were provided for evaluation."
	}
	return strings.TrimSpace(b.String())
}

// supported reports whether at least half of the significant words of the
// description occur in the profile.
func supported(description, profile string) bool {
	total, found := 0, 0
	for _, word := range strings.Fields(strings.ToLower(description)) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len([]rune(word)) < 5 {
			continue
		}
		total++
		if strings.Contains(profile, word) {
			found++
		}
	}
	return total > 0 && found*2 >= total
}

func summary(section string) string {
	sentences := document.SplitSentences(section)
	if len(sentences) == 0 {
		return "The section contains no substantive content."
	}
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	return strings.Join(sentences, " ")
}

func overall(summaries string) string {
	var parts []string
	for _, paragraph := range strings.Split(summaries, "\n\n") {
		if sentences := document.SplitSentences(paragraph); len(sentences) > 0 {
			parts = append(parts, sentences[0])
		}
	}
	if len(parts) == 0 {
		return "The solicitation contains no substantive content."
	}
	return "This solicitation covers the following points. " + strings.Join(parts, " ")
}

// body returns the prompt without its instruction line and trailing heading.
func body(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if i := strings.Index(prompt, "\n\n"); i >= 0 {
		prompt = prompt[i+2:]
	}
	if i := strings.LastIndex(prompt, "\n\n"); i >= 0 {
		tail := strings.TrimSpace(prompt[i:])
		if tail == headingSummary || tail == headingOverall {
			prompt = prompt[:i]
		}
	}
	return strings.TrimSpace(prompt)
}

// between returns the text after the first start and before the last end.
func between(s, start, end string) string {
	return strings.TrimSpace(before(after(s, start), end))
}

func after(s, start string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	return s[i+len(start):]
}

func before(s, end string) string {
	if j := strings.LastIndex(s, end); j >= 0 {
		return s[:j]
	}
	return s
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
