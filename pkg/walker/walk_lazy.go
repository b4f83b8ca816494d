package walker

import (
	"iter"

	"github.com/joe/rrdir/pkg/filesystem"
)

// WalkLazy returns a sequence producing Walk's entries one at a time, in
// the same order. Nothing is read until the consumer pulls, and the walk
// stops as soon as the consumer does.
//
// Failures that Walk would return are yielded once as (zero Entry, err)
// and end the sequence. Every range over the sequence is a fresh walk.
func WalkLazy[P Path](fsys filesystem.FileSystem, root P, opts ...Option) iter.Seq2[Entry[P], error] {
	return func(yield func(Entry[P], error) bool) {
		w, top, err := newWalk(fsys, root, opts)
		if err != nil {
			yield(Entry[P]{}, err)
			return
		}

		w.walkDirLazy(top, yield)
	}
}

// walkDirLazy reports whether the consumer still wants entries.
func (w *walk[P]) walkDirLazy(dir dirNode[P], yield func(Entry[P], error) bool) bool {
	children, failed, err := w.list(dir)
	if err != nil {
		yield(Entry[P]{}, err)
		return false
	}

	if failed != nil {
		return yield(*failed, nil)
	}

	for _, child := range children {
		entry, next, err := w.visit(dir, child)
		if err != nil {
			yield(Entry[P]{}, err)
			return false
		}

		if entry != nil && !yield(*entry, nil) {
			return false
		}

		if next != nil && !w.walkDirLazy(*next, yield) {
			return false
		}
	}

	return true
}
