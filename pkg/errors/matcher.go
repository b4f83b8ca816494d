package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryPatterns{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"access is denied",
				"operation not permitted",
			}},
			{CategoryLoop, []string{
				"too many levels of symbolic links",
				"symlink resolves to an ancestor",
				"file name too long",
			}},
			{CategoryPattern, []string{
				"syntax error in pattern",
				"bad pattern",
			}},
			{CategoryRemote, []string{
				"ssh:",
				"sftp",
				"connection refused",
				"connection reset",
				"pool is closed",
				"handshake failed",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"not a directory",
				"file does not exist",
				"cannot find the path",
			}},
		},
	}
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

// patternMatcher is the concrete implementation of PatternMatcher.
// Rules are checked in order; the first hit wins.
type patternMatcher struct {
	rules []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
