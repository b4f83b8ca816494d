package walker

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matchers holds compiled include and exclude pattern sets.
//
// Both predicates take a normalized path: absolute, with '/' separators.
// Glob engines generally fail to match relative paths such as "./a/b"
// against "**/b", so callers normalize before matching (see matchRoot).
// Wildcards match names with a leading dot.
type Matchers struct {
	include     []string
	exclude     []string
	insensitive bool
}

// NewMatchers compiles include and exclude patterns.
// An empty include set matches everything; an empty exclude set matches
// nothing. Invalid patterns are reported as ErrBadPattern.
func NewMatchers(include, exclude []string, insensitive bool) (*Matchers, error) {
	inc, err := compilePatterns(include, insensitive)
	if err != nil {
		return nil, err
	}

	exc, err := compilePatterns(exclude, insensitive)
	if err != nil {
		return nil, err
	}

	return &Matchers{
		include:     inc,
		exclude:     exc,
		insensitive: insensitive,
	}, nil
}

// Exclude reports whether path matches any exclude pattern.
func (m *Matchers) Exclude(path string) bool {
	if len(m.exclude) == 0 {
		return false
	}

	return m.matchAny(m.exclude, path)
}

// Include reports whether path matches any include pattern, or true when
// there are none.
func (m *Matchers) Include(path string) bool {
	if len(m.include) == 0 {
		return true
	}

	return m.matchAny(m.include, path)
}

func (m *Matchers) matchAny(patterns []string, path string) bool {
	if m.insensitive {
		path = strings.ToLower(path)
	}

	for _, pattern := range patterns {
		// Patterns were validated at compile time
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}

	return false
}

func compilePatterns(patterns []string, insensitive bool) ([]string, error) {
	compiled := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
		}

		if insensitive {
			pattern = strings.ToLower(pattern)
		}

		compiled = append(compiled, pattern)
	}

	return compiled, nil
}
