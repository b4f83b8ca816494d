package walker

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/joe/rrdir/pkg/filesystem"
)

// WalkAsync enumerates the same entries as Walk, processing the children of
// each directory concurrently. Each child's branch collects its own entry
// followed by its subtree, so a directory still precedes its contents;
// only the order among siblings is unspecified.
//
// Options.Concurrency bounds the goroutines per directory. Under Strict the
// first failure cancels outstanding branches and is returned alone. A
// cancelled ctx aborts with ctx.Err().
func WalkAsync[P Path](ctx context.Context, fsys filesystem.FileSystem, root P, opts ...Option) ([]Entry[P], error) {
	w, top, err := newWalk(fsys, root, opts)
	if err != nil {
		return nil, err
	}

	results, err := w.walkDirAsync(ctx, top)
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = make([]Entry[P], 0)
	}

	return results, nil
}

func (w *walk[P]) walkDirAsync(ctx context.Context, dir dirNode[P]) ([]Entry[P], error) {
	if err := ctx.Err(); err != nil { //nolint:noinlineerr // Cancellation check
		return nil, err //nolint:wrapcheck // Context errors are returned as is
	}

	children, failed, err := w.list(dir)
	if err != nil {
		return nil, err
	}

	if failed != nil {
		return []Entry[P]{*failed}, nil
	}

	branches := make([][]Entry[P], len(children))

	group, groupCtx := errgroup.WithContext(ctx)
	if w.opts.Concurrency > 0 {
		group.SetLimit(w.opts.Concurrency)
	}

	for i, child := range children {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil { //nolint:noinlineerr // Cancellation check
				return err //nolint:wrapcheck // Context errors are returned as is
			}

			entry, next, err := w.visit(dir, child)
			if err != nil {
				return err
			}

			var branch []Entry[P]
			if entry != nil {
				branch = append(branch, *entry)
			}

			if next != nil {
				sub, err := w.walkDirAsync(groupCtx, *next)
				if err != nil {
					return err
				}
				branch = append(branch, sub...)
			}

			// Each goroutine owns its own slot
			branches[i] = branch

			return nil
		})
	}

	if err := group.Wait(); err != nil { //nolint:noinlineerr // Group result
		return nil, err //nolint:wrapcheck // Branch errors already carry the path
	}

	return slices.Concat(branches...), nil
}
