package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationFailure matches every error returned by a generator.
	ErrGenerationFailure = errors.New("text generation failed")
	// ErrEmptyOutput is the cause used when the provider returned nothing usable.
	ErrEmptyOutput = errors.New("generator returned empty output")
)

// GenerationError wraps a provider failure.
type GenerationError struct {
	Provider string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("%s: %v", ErrGenerationFailure, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %v", ErrGenerationFailure, e.Provider, e.Cause)
}

// Is reports ErrGenerationFailure so callers can branch with errors.Is.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailure
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Failure wraps err as a GenerationError unless it already is one.
func Failure(provider string, err error) error {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &GenerationError{Provider: provider, Cause: err}
}
