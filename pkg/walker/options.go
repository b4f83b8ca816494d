package walker

// Options configures a walk. The zero value is the default: non-strict,
// no stats, symlinks reported but not followed, no filtering.
type Options struct {
	// Strict aborts the whole call on the first listing or stat failure
	// instead of recording it as an error entry.
	Strict bool

	// Stats attaches the metadata of every emitted entry. It costs one
	// extra stat call per entry.
	Stats bool

	// FollowSymlinks reports symlinks by their target's type and descends
	// into links that resolve to directories.
	FollowSymlinks bool

	// Include limits emitted entries to paths matching any pattern.
	// Directories that do not match are still descended.
	Include []string

	// Exclude drops paths matching any pattern, together with everything
	// beneath them.
	Exclude []string

	// Insensitive folds case for Include and Exclude matching.
	Insensitive bool

	// Concurrency caps how many children of one directory WalkAsync
	// processes at once. Zero means no cap.
	Concurrency int

	// MaxDepth stops descending below this many levels; the root's
	// children are level 1. Zero means unlimited.
	MaxDepth int

	// Logger receives debug traces of filtering and symlink-follow decisions.
	Logger Logger
}

// Logger is the debug sink a walk reports to.
type Logger interface {
	LogDebug(message string)
}

// Option mutates Options. Options are applied in order.
type Option func(*Options)

// WithConcurrency caps per-directory fan-out in WalkAsync.
// Values <= 0 leave fan-out unbounded.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = max(n, 0)
	}
}

// WithExclude appends exclude patterns.
func WithExclude(patterns ...string) Option {
	return func(o *Options) {
		o.Exclude = append(o.Exclude, patterns...)
	}
}

// WithFollowSymlinks enables following symlinks.
func WithFollowSymlinks() Option {
	return func(o *Options) {
		o.FollowSymlinks = true
	}
}

// WithInclude appends include patterns.
func WithInclude(patterns ...string) Option {
	return func(o *Options) {
		o.Include = append(o.Include, patterns...)
	}
}

// WithInsensitive enables case-insensitive pattern matching.
func WithInsensitive() Option {
	return func(o *Options) {
		o.Insensitive = true
	}
}

// WithLogger sets the debug sink.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMaxDepth limits recursion depth. Values <= 0 mean unlimited.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = max(n, 0)
	}
}

// WithOptions replaces the accumulated options wholesale, for callers that
// already hold an Options value. Later options still apply on top.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

// WithStats attaches metadata to every emitted entry.
func WithStats() Option {
	return func(o *Options) {
		o.Stats = true
	}
}

// WithStrict makes failures abort the walk.
func WithStrict() Option {
	return func(o *Options) {
		o.Strict = true
	}
}

func resolveOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	// Slices are copied so a caller mutating its pattern list mid-walk
	// cannot change filtering.
	o.Include = append([]string(nil), o.Include...)
	o.Exclude = append([]string(nil), o.Exclude...)

	if o.Logger == nil {
		o.Logger = nopLogger{}
	}

	return o
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
