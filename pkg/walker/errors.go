package walker

import (
	"errors"

	"github.com/bmatcuk/doublestar/v4"
)

// Exported errors.
var (
	// ErrBadPattern wraps include or exclude patterns that fail to compile.
	ErrBadPattern = doublestar.ErrBadPattern

	// ErrSymlinkLoop marks a followed symlink that resolves to one of the
	// directories it is nested in.
	ErrSymlinkLoop = errors.New("symlink resolves to an ancestor directory")
)
