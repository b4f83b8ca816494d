// Package walker recursively enumerates the files, directories and symlinks
// beneath a root directory, producing a flat list of entries.
//
// Three front-ends share one traversal policy:
//
//	entries, err := walker.Walk(fsys, "src", walker.WithExclude("**/node_modules"))
//	entries, err := walker.WalkAsync(ctx, fsys, "src")  // siblings in parallel
//	for entry, err := range walker.WalkLazy(fsys, "src") { ... }
//
// Per directory the walk lists children, drops excluded ones (and their
// subtrees) before any stat, emits the children that match the include set,
// and descends into directories whether or not they were emitted. Failures
// become error entries unless Options.Strict is set, in which case the first
// one aborts the call.
//
// Roots may be string or []byte; every produced path has the root's type.
package walker

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joe/rrdir/pkg/filesystem"
)

// walk is the per-call state shared read-only by every directory visit.
type walk[P Path] struct {
	fsys     filesystem.FileSystem
	opts     Options
	matchers *Matchers
	sep      byte
}

// dirNode is a directory about to be listed.
type dirNode[P Path] struct {
	path      P
	matchPath string
	depth     int

	// viaLink is the target's Stat result when the directory was reached
	// through a followed symlink.
	viaLink os.FileInfo

	// chain is this directory followed by its ancestors; only tracked
	// when following symlinks.
	chain *ancestor
}

// ancestor is one link of an immutable parent chain. Its identity is
// resolved on first use and cached, so concurrent branches can share it.
type ancestor struct {
	path   string
	parent *ancestor
	once   sync.Once
	info   os.FileInfo
}

func (a *ancestor) resolve(fsys filesystem.FileSystem) os.FileInfo {
	a.once.Do(func() {
		a.info, _ = fsys.Stat(a.path)
	})

	return a.info
}

// newWalk normalizes options, compiles matchers and prepares the root
// exactly once per top-level call.
func newWalk[P Path](fsys filesystem.FileSystem, root P, opts []Option) (*walk[P], dirNode[P], error) {
	options := resolveOptions(opts)

	matchers, err := NewMatchers(options.Include, options.Exclude, options.Insensitive)
	if err != nil {
		return nil, dirNode[P]{}, err
	}

	w := &walk[P]{
		fsys:     fsys,
		opts:     options,
		matchers: matchers,
		sep:      fsys.Separator(),
	}

	root = TrimSeparator(root)
	top := dirNode[P]{
		path:      root,
		matchPath: w.matchRoot(string(root)),
	}

	if options.FollowSymlinks {
		top.chain = &ancestor{path: string(root)}
	}

	return w, top, nil
}

// list reads a directory. A failure either aborts (strict) or comes back
// as the single error entry standing in for the listing.
func (w *walk[P]) list(dir dirNode[P]) ([]os.FileInfo, *Entry[P], error) {
	var err error

	if dir.viaLink != nil && w.isLoop(dir) {
		err = fmt.Errorf("%s: %w", string(dir.path), ErrSymlinkLoop)
	} else {
		var children []os.FileInfo

		children, err = w.fsys.ReadDir(string(dir.path))
		if err == nil {
			return children, nil, nil
		}
	}

	if w.opts.Strict {
		return nil, nil, err
	}

	failed := errorEntry(dir.path, err)

	return nil, &failed, nil
}

// isLoop reports whether a directory reached through a symlink is one of
// its own ancestors.
func (w *walk[P]) isLoop(dir dirNode[P]) bool {
	if dir.chain == nil {
		return false
	}

	for a := dir.chain.parent; a != nil; a = a.parent {
		if info := a.resolve(w.fsys); info != nil && w.fsys.SameFile(info, dir.viaLink) {
			return true
		}
	}

	return false
}

// matchRoot normalizes the root for pattern matching: absolute, '/'
// separated. Children extend it by name, so no per-entry resolution is
// needed.
func (w *walk[P]) matchRoot(root string) string {
	abs, err := w.fsys.Abs(root)
	if err != nil {
		w.opts.Logger.LogDebug(fmt.Sprintf("cannot resolve %q for matching, using it as given: %v", root, err))
		abs = root
	}

	if w.sep == '\\' {
		abs = strings.ReplaceAll(abs, `\`, "/")
	}

	return abs
}

// metadata fetches the stat used for an emitted entry: through links when
// following them, of the link itself otherwise.
func (w *walk[P]) metadata(path string) (os.FileInfo, error) {
	if w.opts.FollowSymlinks {
		return w.fsys.Stat(path) //nolint:wrapcheck // FileSystem errors already carry the path
	}

	return w.fsys.Lstat(path) //nolint:wrapcheck // FileSystem errors already carry the path
}

// visit runs filter, classify and emit for one child, then decides whether
// to descend. It returns the entry to emit (if any), the directory to
// descend into (if any), and a non-nil error only for strict aborts.
func (w *walk[P]) visit(dir dirNode[P], child os.FileInfo) (*Entry[P], *dirNode[P], error) {
	name := child.Name()
	childPath := JoinPath(dir.path, name, w.sep)
	matchPath := matchJoin(dir.matchPath, name)

	verdict := decide(child, matchPath, &w.opts, w.matchers)
	if verdict.skip {
		w.opts.Logger.LogDebug("excluded " + matchPath)
		return nil, nil, nil
	}

	var (
		stats   os.FileInfo
		emitted *Entry[P]
	)

	if verdict.emit {
		if verdict.needsStat {
			var err error

			stats, err = w.metadata(string(childPath))
			if err != nil {
				if w.opts.Strict {
					return nil, nil, err
				}

				failed := errorEntry(childPath, err)
				emitted = &failed
			}
		}

		if emitted == nil {
			entry := buildEntry(child, childPath, stats, w.opts.Stats)
			emitted = &entry
		}
	}

	descend := verdict.recurseDir
	if verdict.followLink {
		if stats == nil {
			// Best effort: a failure here was either reported above or
			// belongs to an entry that was not requested.
			target, err := w.fsys.Stat(string(childPath))
			if err != nil {
				w.opts.Logger.LogDebug(fmt.Sprintf("not following %s: %v", matchPath, err))
			}
			stats = target
		}

		descend = stats != nil && stats.IsDir()
	}

	if !descend {
		return emitted, nil, nil
	}

	next := &dirNode[P]{
		path:      childPath,
		matchPath: matchPath,
		depth:     dir.depth + 1,
	}

	if w.opts.MaxDepth > 0 && next.depth >= w.opts.MaxDepth {
		w.opts.Logger.LogDebug("max depth reached at " + matchPath)
		return emitted, nil, nil
	}

	if verdict.followLink {
		next.viaLink = stats
	}

	if dir.chain != nil {
		next.chain = &ancestor{path: string(childPath), parent: dir.chain}
	}

	return emitted, next, nil
}

// Walk enumerates everything beneath root depth-first, in listing order,
// each directory's entry before its contents. The result is complete or,
// under Options.Strict, replaced by the first error.
func Walk[P Path](fsys filesystem.FileSystem, root P, opts ...Option) ([]Entry[P], error) {
	w, top, err := newWalk(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	results := make([]Entry[P], 0)
	if err := w.walkDir(top, &results); err != nil { //nolint:noinlineerr // Recursive accumulation
		return nil, err
	}

	return results, nil
}

func (w *walk[P]) walkDir(dir dirNode[P], results *[]Entry[P]) error {
	children, failed, err := w.list(dir)
	if err != nil {
		return err
	}

	if failed != nil {
		*results = append(*results, *failed)
		return nil
	}

	for _, child := range children {
		entry, next, err := w.visit(dir, child)
		if err != nil {
			return err
		}

		if entry != nil {
			*results = append(*results, *entry)
		}

		if next != nil {
			if err := w.walkDir(*next, results); err != nil { //nolint:noinlineerr // Recursive accumulation
				return err
			}
		}
	}

	return nil
}
