package errors

import "fmt"

// SuggestionGenerator generates actionable suggestions based on error category.
type SuggestionGenerator interface {
	Generate(category ErrorCategory, affectedPath string) []string
}

// NewSuggestionGenerator creates a new SuggestionGenerator.
func NewSuggestionGenerator() SuggestionGenerator {
	return &suggestionGenerator{}
}

// suggestionGenerator is the concrete implementation of SuggestionGenerator.
type suggestionGenerator struct{}

// Generate returns actionable suggestions based on the error category and affected path.
func (g *suggestionGenerator) Generate(category ErrorCategory, affectedPath string) []string {
	switch category {
	case CategoryPermission:
		return g.generatePermissionSuggestions(affectedPath)
	case CategoryPath:
		return g.generatePathSuggestions(affectedPath)
	case CategoryLoop:
		return g.generateLoopSuggestions(affectedPath)
	case CategoryPattern:
		return g.generatePatternSuggestions()
	case CategoryRemote:
		return g.generateRemoteSuggestions()
	case CategoryUnknown:
		return g.generateUnknownSuggestions(affectedPath)
	default:
		return g.generateUnknownSuggestions(affectedPath)
	}
}

func (g *suggestionGenerator) generateLoopSuggestions(path string) []string {
	suggestions := []string{
		"A symbolic link points back into a directory that is already being walked",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Inspect the link with 'ls -l %s'", path))
		suggestions = append(suggestions, fmt.Sprintf("Skip it with --exclude '%s'", path))
	}

	suggestions = append(suggestions, "Run without --follow-symlinks to report links instead of entering them")

	return suggestions
}

func (g *suggestionGenerator) generatePathSuggestions(path string) []string {
	suggestions := []string{
		"Verify the path exists and is spelled correctly",
	}

	if path != "" {
		suggestions = append(suggestions, "Check if the path exists: "+path)
		suggestions = append(suggestions, "Files can disappear while a walk is running; retry if "+path+" was being modified")
	} else {
		suggestions = append(suggestions, "Ensure all parent directories exist")
	}

	return suggestions
}

func (g *suggestionGenerator) generatePatternSuggestions() []string {
	return []string{
		"Check --include and --exclude patterns for unbalanced '[' or '{'",
		"Quote patterns so the shell does not expand them: --exclude '**/node_modules'",
		"Use '**' to match any number of directories",
	}
}

func (g *suggestionGenerator) generatePermissionSuggestions(path string) []string {
	suggestions := []string{
		"Ensure you have read and execute permission on every directory being walked",
	}

	if path != "" {
		suggestions = append(suggestions, fmt.Sprintf("Check permissions with 'ls -ld %s'", path))
		suggestions = append(suggestions, fmt.Sprintf("Skip it with --exclude '%s'", path))
	} else {
		suggestions = append(suggestions, "Check permissions with 'ls -ld' on the affected path")
	}

	suggestions = append(suggestions, "Run without --strict to record unreadable directories and continue")

	return suggestions
}

func (g *suggestionGenerator) generateRemoteSuggestions() []string {
	return []string{
		"Verify the host is reachable and accepts SSH connections",
		"Check that your key is loaded in ssh-agent or present in ~/.ssh",
		"Confirm the host key is in ~/.ssh/known_hosts",
		"Lower --pool-size if the server limits concurrent sessions",
	}
}

func (g *suggestionGenerator) generateUnknownSuggestions(path string) []string {
	suggestions := []string{
		"Check the error message for more details",
		"Verify file and directory permissions",
	}

	if path != "" {
		suggestions = append(suggestions, "Verify the path is accessible: "+path)
	}

	return suggestions
}
