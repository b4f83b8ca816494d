package errors_test

import (
	"testing"

	"github.com/joe/rrdir/pkg/errors"
)

func TestActionableError_Accessors(t *testing.T) {
	t.Parallel()

	suggestions := []string{"Check permissions", "Retry"}
	err := errors.NewActionableError(
		"permission denied",
		errors.CategoryPermission,
		suggestions,
		"/srv/data",
	)

	if err.Error() != "permission denied" {
		t.Errorf("Error() = %q, want %q", err.Error(), "permission denied")
	}
	if err.OriginalError() != "permission denied" {
		t.Errorf("OriginalError() = %q", err.OriginalError())
	}
	if err.Category() != errors.CategoryPermission {
		t.Errorf("Category() = %q, want %q", err.Category(), errors.CategoryPermission)
	}
	if err.AffectedPath() != "/srv/data" {
		t.Errorf("AffectedPath() = %q, want %q", err.AffectedPath(), "/srv/data")
	}
	if len(err.Suggestions()) != len(suggestions) {
		t.Fatalf("expected %d suggestions, got %d", len(suggestions), len(err.Suggestions()))
	}
}

func TestFormatSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "no suggestions",
			err:      errors.NewActionableError("x", errors.CategoryUnknown, nil, ""),
			expected: "",
		},
		{
			name:     "single suggestion",
			err:      errors.NewActionableError("x", errors.CategoryLoop, []string{"Run without --follow-symlinks"}, ""),
			expected: "  • Run without --follow-symlinks",
		},
		{
			name:     "multiple suggestions",
			err:      errors.NewActionableError("x", errors.CategoryPath, []string{"first", "second"}, ""),
			expected: "  • first\n  • second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := errors.FormatSuggestions(tt.err); got != tt.expected {
				t.Errorf("expected:\n%q\ngot:\n%q", tt.expected, got)
			}
		})
	}
}
