package errors_test

import (
	"strings"
	"testing"

	"github.com/joe/rrdir/pkg/errors"
)

func TestSuggestionGenerator_EveryCategoryHasAdvice(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()

	categories := []errors.ErrorCategory{
		errors.CategoryLoop,
		errors.CategoryPath,
		errors.CategoryPattern,
		errors.CategoryPermission,
		errors.CategoryRemote,
		errors.CategoryUnknown,
		errors.ErrorCategory("unrecognized"),
	}

	for _, category := range categories {
		if suggestions := generator.Generate(category, ""); len(suggestions) == 0 {
			t.Errorf("category %q produced no suggestions", category)
		}
	}
}

func TestSuggestionGenerator_PathIsMentioned(t *testing.T) {
	t.Parallel()

	generator := errors.NewSuggestionGenerator()
	path := "/srv/private"

	for _, category := range []errors.ErrorCategory{
		errors.CategoryLoop,
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryUnknown,
	} {
		joined := strings.Join(generator.Generate(category, path), "\n")
		if !strings.Contains(joined, path) {
			t.Errorf("category %q suggestions do not mention %q:\n%s", category, path, joined)
		}
	}
}

func TestSuggestionGenerator_PermissionMentionsStrict(t *testing.T) {
	t.Parallel()

	suggestions := errors.NewSuggestionGenerator().Generate(errors.CategoryPermission, "")
	last := suggestions[len(suggestions)-1]

	if !strings.Contains(last, "--strict") {
		t.Errorf("expected last permission suggestion to mention --strict, got %q", last)
	}
}
