// Package config handles command-line argument parsing for rrdir.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/joe/rrdir/pkg/filesystem"
	"github.com/joe/rrdir/pkg/walker"
)

// ErrUsage marks errors caused by invalid arguments rather than by the walk.
var ErrUsage = errors.New("usage error")

// Mode selects which walk front-end runs.
type Mode int

const (
	// ModeSync walks depth-first and returns everything at the end
	ModeSync Mode = iota
	// ModeAsync processes siblings concurrently
	ModeAsync
	// ModeLazy streams entries as they are found
	ModeLazy
)

// String returns the string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeSync:
		return "sync"
	case ModeAsync:
		return "async"
	case ModeLazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(s)
	switch s {
	case "sync", "blocking":
		return ModeSync, nil
	case "async", "eager":
		return ModeAsync, nil
	case "lazy", "stream":
		return ModeLazy, nil
	default:
		return ModeSync, fmt.Errorf("invalid mode: %s (valid: sync, async, lazy)", s) //nolint:err113 // Message carries the value
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Format selects how entries are printed.
type Format int

const (
	// FormatText prints one path per line, styled on terminals
	FormatText Format = iota
	// FormatJSON prints one JSON object per line
	FormatJSON
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	switch s {
	case "text", "plain":
		return FormatText, nil
	case "json", "jsonl":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid format: %s (valid: text, json)", s) //nolint:err113 // Message carries the value
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Config holds the application configuration
type Config struct {
	Root           string   `arg:"positional" help:"Directory to walk: a local path or sftp://user@host[:port]/path"`
	Mode           Mode     `arg:"-m,--mode" default:"sync" help:"Walk mode: sync|async|lazy (aliases: blocking|eager|stream)"`
	Strict         bool     `arg:"--strict" help:"Abort on the first failure instead of reporting error entries"`
	Stats          bool     `arg:"--stats" help:"Attach size, mode and modification time to every entry"`
	FollowSymlinks bool     `arg:"-L,--follow-symlinks" help:"Report links by their target and descend into linked directories"`
	Include        []string `arg:"-i,--include,separate" help:"Only print paths matching this glob (repeatable)"`
	Exclude        []string `arg:"-e,--exclude,separate" help:"Skip paths matching this glob and everything below them (repeatable)"`
	Insensitive    bool     `arg:"--insensitive" help:"Match include and exclude patterns case-insensitively"`
	Concurrency    int      `arg:"-c,--concurrency" default:"0" help:"Siblings processed at once in async mode (0 = unbounded)"`
	MaxDepth       int      `arg:"--max-depth" default:"0" help:"Do not descend below this many levels (0 = unlimited)"`
	Bytes          bool     `arg:"--bytes" help:"Walk with a raw byte root; paths are never decoded"`
	Format         Format   `arg:"-f,--format" default:"text" help:"Output format: text|json"`
	Progress       bool     `arg:"-p,--progress" help:"Show a live progress view while walking"`
	LogLevel       string   `arg:"--log-level" default:"warn" help:"Log verbosity: trace|debug|info|warn|error|off"`
	PoolSize       int      `arg:"--pool-size" default:"4" help:"SFTP sessions opened for remote roots"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Recursively list the files, directories and symlinks beneath a directory"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "rrdir 1.0.0"
}

// ParseArgs parses args (without the program name) into a Config.
// Help and version requests are written to stdout and returned as
// arg.ErrHelp or arg.ErrVersion. Every other failure wraps ErrUsage.
func ParseArgs(args []string, stdout io.Writer) (*Config, error) {
	cfg := &Config{
		Mode:     ModeSync,
		Format:   FormatText,
		LogLevel: "warn",
		PoolSize: filesystem.DefaultPoolSize,
	}

	parser, err := arg.NewParser(arg.Config{Program: "rrdir"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)

	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return nil, err //nolint:wrapcheck // Sentinel for the caller
	case errors.Is(err, arg.ErrVersion):
		_, _ = fmt.Fprintln(stdout, cfg.Version())
		return nil, err //nolint:wrapcheck // Sentinel for the caller
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig validates a parsed config.
func PostProcessConfig(cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil { //nolint:noinlineerr // Validation
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return cfg, nil
}

// Validate checks values that go-arg cannot check by type alone.
// A local root is not required to exist: a missing root is reported by
// the walk itself.
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.New("root path is required") //nolint:err113 // Simple validation message
	}

	if _, err := filesystem.ParsePath(cfg.Root); err != nil { //nolint:noinlineerr // Validation
		return fmt.Errorf("invalid root %q: %w", cfg.Root, err)
	}

	if cfg.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency) //nolint:err113 // Validation error with actual value
	}

	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", cfg.MaxDepth) //nolint:err113 // Validation error with actual value
	}

	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, off)", cfg.LogLevel) //nolint:err113 // Validation error with actual value
	}

	if cfg.PoolSize < 1 {
		return fmt.Errorf("pool size must be at least 1, got %d", cfg.PoolSize) //nolint:err113 // Validation error with actual value
	}

	// Surface bad globs before connecting anywhere
	if _, err := walker.NewMatchers(cfg.Include, cfg.Exclude, cfg.Insensitive); err != nil { //nolint:noinlineerr // Validation
		return err //nolint:wrapcheck // Already names the pattern
	}

	return nil
}

// WalkOptions translates the config into walker options.
func (cfg *Config) WalkOptions(logger walker.Logger) []walker.Option {
	return []walker.Option{
		walker.WithOptions(walker.Options{
			Strict:         cfg.Strict,
			Stats:          cfg.Stats,
			FollowSymlinks: cfg.FollowSymlinks,
			Include:        cfg.Include,
			Exclude:        cfg.Exclude,
			Insensitive:    cfg.Insensitive,
			Concurrency:    cfg.Concurrency,
			MaxDepth:       cfg.MaxDepth,
		}),
		walker.WithLogger(logger),
	}
}
