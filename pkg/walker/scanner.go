package walker

import (
	"iter"

	"github.com/joe/rrdir/pkg/filesystem"
)

// Scanner is a pull-style cursor over a lazy walk.
//
//	scanner := walker.NewScanner(fsys, "src")
//	defer scanner.Close()
//	for {
//	    entry, ok := scanner.Next()
//	    if !ok {
//	        break
//	    }
//	    ...
//	}
//	if err := scanner.Err(); err != nil { ... }
type Scanner[P Path] struct {
	next func() (Entry[P], error, bool)
	stop func()
	err  error
	done bool
}

// NewScanner creates a scanner over WalkLazy. Nothing is read until the
// first Next.
func NewScanner[P Path](fsys filesystem.FileSystem, root P, opts ...Option) *Scanner[P] {
	next, stop := iter.Pull2(WalkLazy(fsys, root, opts...))

	return &Scanner[P]{
		next: next,
		stop: stop,
	}
}

// Close ends the walk early. It is safe to call more than once and after
// Next has returned false.
func (s *Scanner[P]) Close() {
	if s.done {
		return
	}

	s.done = true
	s.stop()
}

// Err returns the error that ended the walk, if any.
// Check it after Next returns false.
func (s *Scanner[P]) Err() error {
	return s.err
}

// Next advances to the next entry.
// Returns (Entry{}, false) when the walk is done or has failed.
func (s *Scanner[P]) Next() (Entry[P], bool) {
	if s.done {
		return Entry[P]{}, false
	}

	entry, err, ok := s.next()
	if !ok || err != nil {
		s.err = err
		s.Close()

		return Entry[P]{}, false
	}

	return entry, true
}
