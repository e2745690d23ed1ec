package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for files outside the supported set or whose content does not match the extension.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrDependencyUnavailable is returned when the optional parser for a supported format is not available.
	ErrDependencyUnavailable = errors.New("document parser unavailable")
	// ErrNoText is returned when a binary document yields no extractable text.
	ErrNoText = errors.New("no extractable text found in document")
)

// FormatError describes a document that cannot be read because of its format.
type FormatError struct {
	Path     string
	Ext      string
	Detected string
}

func (e *FormatError) Error() string {
	if e.Detected != "" {
		return fmt.Sprintf("unsupported file format %s for %s: content detected as %s", e.Ext, e.Path, e.Detected)
	}
	if e.Ext == "" {
		return fmt.Sprintf("unsupported file format for %s: missing extension", e.Path)
	}
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

func (e *FormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// DependencyError is returned when a supported format needs a parser that is not configured or reachable.
type DependencyError struct {
	Format     string
	Dependency string
	Hint       string
	Cause      error
}

func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("unable to process %s files: %s is not available", e.Format, e.Dependency)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Hint)
	}
	return msg
}

// Is reports ErrDependencyUnavailable so callers can branch with errors.Is.
func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

func (e *DependencyError) Unwrap() error {
	return e.Cause
}
