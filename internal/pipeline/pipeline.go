// Package pipeline runs the analysis stages in order over an explicit State.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/rfp-analyzer/internal/analysis"
	"github.com/spigell/rfp-analyzer/internal/logger"
	"go.uber.org/zap"
)

// Stage is a single step of an analysis run.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(deps Deps) error
	Apply(ctx context.Context, deps Deps, state State) (State, error)
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Analyzer     *analysis.Analyzer
	Logger       *zap.Logger
	MaxChunkSize int
}

// StageError reports the stage a run stopped at.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run executes the enabled stages sequentially. When a stage fails the
// returned state still holds everything computed by the stages before it.
func Run(ctx context.Context, deps Deps, stages []Stage, state State) (State, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(deps); err != nil {
			return state, &StageError{Stage: stage.Name(), Cause: err}
		}
	}

	for _, stage := range stages {
		log := logger.WithRun(deps.Logger, state.RunID, stage.Name())

		if !stage.IsEnabled() {
			log.Info("stage disabled")
			continue
		}

		if err := ctx.Err(); err != nil {
			return state, &StageError{Stage: stage.Name(), Cause: err}
		}

		log.Info("stage started")
		started := time.Now()
		next, err := stage.Apply(ctx, Deps{Analyzer: deps.Analyzer, Logger: log, MaxChunkSize: deps.MaxChunkSize}, state)
		if err != nil {
			log.Error("stage failed", zap.Error(err))
			return state, &StageError{Stage: stage.Name(), Cause: err}
		}

		state = next
		state.Completed = append(append([]string(nil), state.Completed...), stage.Name())

		log.Info("stage completed", zap.Duration("duration", time.Since(started)))
	}

	return state, nil
}

var errNoAnalyzer = errors.New("analyzer is not configured")
