package walker

import "os"

// decision is the filtering verdict for one listed child. It is computed
// once per child and drives all three walk front-ends the same way.
type decision struct {
	// skip: excluded, so no stat, no entry and no descent.
	skip bool

	// emit: the child matched the include set.
	emit bool

	// needsStat: emitting requires a metadata call first.
	needsStat bool

	// followLink: the child is a symlink that FollowSymlinks may descend
	// into once its target is known to be a directory.
	followLink bool

	// recurseDir: the child is a plain directory to descend into.
	recurseDir bool
}

// decide classifies a child given its normalized match path. Exclusion is
// checked first, so excluded paths never cost a stat.
func decide(child os.FileInfo, matchPath string, opts *Options, matchers *Matchers) decision {
	if matchers.Exclude(matchPath) {
		return decision{skip: true}
	}

	isLink := child.Mode()&os.ModeSymlink != 0
	followLink := opts.FollowSymlinks && isLink
	emit := matchers.Include(matchPath)

	return decision{
		emit:       emit,
		needsStat:  emit && (opts.Stats || followLink),
		followLink: followLink,
		recurseDir: !followLink && child.IsDir(),
	}
}
