package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Evaluate asks the model to judge the company against every criterion.
// The answer is returned as is; Verdict derives the decision from it.
// Without criteria there is nothing to judge and no model call is made.
func (a *Analyzer) Evaluate(ctx context.Context, criteria []Criterion, companyChunks []string) (string, error) {
	if len(criteria) == 0 {
		a.logger.Warn("no criteria to evaluate")
		return "", nil
	}

	evaluation, err := a.generate(ctx, "evaluation", evaluatePrompt(criteria, companyChunks), a.opts.EvaluationMaxLength)
	if err != nil {
		return "", fmt.Errorf("evaluate company: %w", err)
	}

	a.logger.Info("company evaluated",
		zap.Int("criteria", len(criteria)),
		zap.Int("company_chunks", len(companyChunks)),
	)

	return evaluation, nil
}
