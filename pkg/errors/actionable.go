// Package errors turns walk failures into actionable errors with
// context-aware suggestions.
//
// A walk reports failures either as error entries or, in strict mode, as the
// error that aborted the call. Both are plain Go errors; the enricher
// categorizes them (permission, missing path, symlink loop, bad pattern,
// remote transport) and attaches advice for the user.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	entries, err := walker.Walk(fsys, root, walker.WithStrict())
//	if err != nil {
//	    actionable := enricher.Enrich(err, root)
//	    fmt.Println(actionable.Error())
//	    fmt.Println(errors.FormatSuggestions(actionable))
//	}
//
// The enricher extracts paths from error messages when not explicitly provided:
//
//	err := fmt.Errorf("failed to read directory /srv/data: %w", fs.ErrPermission)
//	enriched := enricher.Enrich(err, "") // Path is "/srv/data"
package errors

import "strings"

// Exported constants.
const (
	CategoryLoop       ErrorCategory = "loop"
	CategoryPath       ErrorCategory = "path"
	CategoryPattern    ErrorCategory = "pattern"
	CategoryPermission ErrorCategory = "permission"
	CategoryRemote     ErrorCategory = "remote"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the kind of failure that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list.
// Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError) //nolint:errorlint // Enricher output is never wrapped
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
	cause         error
}

// AffectedPath returns the path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}

// Unwrap returns the enriched error, so errors.Is still sees sentinels
// such as fs.ErrNotExist.
func (e *actionableError) Unwrap() error {
	return e.cause
}
