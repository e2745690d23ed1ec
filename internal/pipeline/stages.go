package pipeline

import (
	"context"

	"github.com/spigell/rfp-analyzer/internal/document"
	"go.uber.org/zap"
)

const (
	StageChunk      = "chunk"
	StageSummary    = "summary"
	StageCriteria   = "criteria"
	StageEvaluation = "evaluation"
	StageVerdict    = "verdict"
)

type toggle struct {
	enabled bool
	reason  string
}

func (t *toggle) Disable(reason string) {
	t.enabled = false
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return t.enabled }

// DefaultStages returns the full analysis: chunk, summary, criteria, evaluation and verdict.
func DefaultStages() []Stage {
	return []Stage{
		NewChunkStage(),
		NewSummaryStage(),
		NewCriteriaStage(),
		NewEvaluationStage(),
		NewVerdictStage(),
	}
}

// CriteriaStages returns the stages needed to list the RFP criteria only.
func CriteriaStages() []Stage {
	return []Stage{NewChunkStage(), NewCriteriaStage()}
}

type chunkStage struct{ toggle }

// NewChunkStage splits both documents into chunks.
func NewChunkStage() Stage { return &chunkStage{toggle{enabled: true}} }

func (s *chunkStage) Name() string { return StageChunk }

func (s *chunkStage) Validate(Deps) error { return nil }

func (s *chunkStage) Apply(_ context.Context, deps Deps, state State) (State, error) {
	state.RFPChunks = document.Chunk(state.RFPText, deps.MaxChunkSize)
	state.CompanyChunks = document.Chunk(state.CompanyText, deps.MaxChunkSize)

	deps.Logger.Info("documents chunked",
		zap.Int("max_chunk_size", deps.MaxChunkSize),
		zap.Int("rfp_chunks", len(state.RFPChunks)),
		zap.Int("company_chunks", len(state.CompanyChunks)),
	)
	return state, nil
}

type summaryStage struct{ toggle }

// NewSummaryStage summarizes the RFP chunks.
func NewSummaryStage() Stage { return &summaryStage{toggle{enabled: true}} }

func (s *summaryStage) Name() string { return StageSummary }

func (s *summaryStage) Validate(deps Deps) error { return requireAnalyzer(deps) }

func (s *summaryStage) Apply(ctx context.Context, deps Deps, state State) (State, error) {
	summary, err := deps.Analyzer.Summarize(ctx, state.RFPChunks)
	if err != nil {
		return state, err
	}
	state.Summary = summary
	return state, nil
}

type criteriaStage struct{ toggle }

// NewCriteriaStage extracts and deduplicates the RFP criteria.
func NewCriteriaStage() Stage { return &criteriaStage{toggle{enabled: true}} }

func (s *criteriaStage) Name() string { return StageCriteria }

func (s *criteriaStage) Validate(deps Deps) error { return requireAnalyzer(deps) }

func (s *criteriaStage) Apply(ctx context.Context, deps Deps, state State) (State, error) {
	criteria, err := deps.Analyzer.ExtractCriteria(ctx, state.RFPChunks)
	if err != nil {
		return state, err
	}
	state.Criteria = criteria
	return state, nil
}

type evaluationStage struct{ toggle }

// NewEvaluationStage evaluates the company against the extracted criteria.
func NewEvaluationStage() Stage { return &evaluationStage{toggle{enabled: true}} }

func (s *evaluationStage) Name() string { return StageEvaluation }

func (s *evaluationStage) Validate(deps Deps) error { return requireAnalyzer(deps) }

func (s *evaluationStage) Apply(ctx context.Context, deps Deps, state State) (State, error) {
	evaluation, err := deps.Analyzer.Evaluate(ctx, state.Criteria, state.CompanyChunks)
	if err != nil {
		return state, err
	}
	state.Evaluation = evaluation
	return state, nil
}

type verdictStage struct{ toggle }

// NewVerdictStage derives the eligibility verdict.
func NewVerdictStage() Stage { return &verdictStage{toggle{enabled: true}} }

func (s *verdictStage) Name() string { return StageVerdict }

func (s *verdictStage) Validate(deps Deps) error { return requireAnalyzer(deps) }

func (s *verdictStage) Apply(_ context.Context, deps Deps, state State) (State, error) {
	verdict := deps.Analyzer.Verdict(state.Criteria, state.Evaluation)
	state.Verdict = &verdict

	deps.Logger.Info("verdict derived",
		zap.Stringer("decision", verdict.Decision),
		zap.Int("criteria", verdict.Tally.Criteria),
		zap.Int("critical_fails", verdict.Tally.CriticalFails),
		zap.Int("important_fails", verdict.Tally.ImportantFails),
		zap.Int("fully_met", verdict.Tally.FullyMet),
	)
	return state, nil
}

func requireAnalyzer(deps Deps) error {
	if deps.Analyzer == nil {
		return errNoAnalyzer
	}
	return nil
}
