package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NoContentSummary is returned when there is nothing to summarize.
const NoContentSummary = "No content provided."

// Summarize produces one summary per chunk and, for more than one chunk, a
// final summary of those summaries.
func (a *Analyzer) Summarize(ctx context.Context, chunks []string) (string, error) {
	switch len(chunks) {
	case 0:
		return NoContentSummary, nil
	case 1:
		summary, err := a.generate(ctx, "summary", summarizeChunkPrompt(chunks[0]), a.opts.SummaryMaxLength)
		if err != nil {
			return "", fmt.Errorf("summarize chunk 1/1: %w", err)
		}
		return summary, nil
	}

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := a.generate(ctx, "summary", summarizeChunkPrompt(chunk), a.opts.SummaryMaxLength)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
	}

	a.logger.Debug("combining chunk summaries", zap.Int("summaries", len(summaries)))

	overall, err := a.generate(ctx, "meta-summary", metaSummaryPrompt(summaries), a.opts.MetaSummaryMaxLength)
	if err != nil {
		return "", fmt.Errorf("summarize chunk summaries: %w", err)
	}

	return overall, nil
}
