package render

import "github.com/charmbracelet/lipgloss"

// Glyphs used in styled output.
const (
	ErrorMark      = "✗ "
	SuggestionMark = "  • "
)

func AccentColor() lipgloss.Color    { return lipgloss.Color(accentColorCode) }
func DimColor() lipgloss.Color       { return lipgloss.Color(dimColorCode) }
func ErrorColor() lipgloss.Color     { return lipgloss.Color(errorColorCode) }
func HighlightColor() lipgloss.Color { return lipgloss.Color(highlightColorCode) }
func NormalColor() lipgloss.Color    { return lipgloss.Color(normalColorCode) }

// DirStyle returns the style for directory paths
func DirStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(AccentColor()).
		Bold(true)
}

// FileStyle returns the style for regular file paths
func FileStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(NormalColor())
}

// SymlinkStyle returns the style for symbolic link paths
func SymlinkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(HighlightColor()).
		Italic(true)
}

// ErrorStyle returns the style for error lines
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor()).
		Bold(true)
}

// DimStyle returns the style for metadata columns and suggestions
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(DimColor())
}

// unexported constants.
const (
	accentColorCode    = "62"  // Blue
	dimColorCode       = "240" // Dark gray
	errorColorCode     = "196" // Red
	highlightColorCode = "86"  // Cyan
	normalColorCode    = "252" // Light gray
)
