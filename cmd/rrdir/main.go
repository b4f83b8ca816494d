// Package main is the entry point for the rrdir command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/rrdir/internal/config"
	"github.com/joe/rrdir/internal/logger"
	"github.com/joe/rrdir/internal/render"
	"github.com/joe/rrdir/internal/tui"
	"github.com/joe/rrdir/pkg/filesystem"
	"github.com/joe/rrdir/pkg/walker"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		styledOut:   render.IsTerminal(os.Stdout),
		styledErr:   render.IsTerminal(os.Stderr),
		interactive: render.IsTerminal(os.Stderr),
	}

	code := app.run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}

// app carries the process environment so run can be exercised in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer

	styledOut   bool
	styledErr   bool
	interactive bool
}

func (a *app) run(ctx context.Context, args []string) int {
	cfg, err := config.ParseArgs(args, a.stdout)

	switch {
	case errors.Is(err, arg.ErrHelp), errors.Is(err, arg.ErrVersion):
		return exitOK
	case err != nil:
		render.WriteError(a.stderr, err, "", a.styledErr)
		_, _ = fmt.Fprintln(a.stderr, "Run 'rrdir --help' for usage.")

		return exitUsage
	}

	log := newLogger(a.stderr, cfg.LogLevel)

	fsys, root, closer, err := filesystem.CreateFileSystem(cfg.Root, cfg.PoolSize)
	if err != nil {
		render.WriteError(a.stderr, err, cfg.Root, a.styledErr)
		return exitFailure
	}
	defer closer()

	log.LogDebug(fmt.Sprintf("walking %q with %T", root, fsys))

	if cfg.Bytes {
		return walkAndPrint(ctx, a, cfg, log, fsys, []byte(root))
	}

	return walkAndPrint(ctx, a, cfg, log, fsys, root)
}

// newLogger returns a console logger, or a silent one for level "off".
func newLogger(w io.Writer, level string) logger.Logger {
	if strings.EqualFold(strings.TrimSpace(level), "off") {
		return logger.NewNoOpLogger()
	}

	return logger.NewConsoleLogger(w, level)
}

// walkAndPrint runs the configured walk mode and prints its entries.
func walkAndPrint[P walker.Path](
	ctx context.Context,
	a *app,
	cfg *config.Config,
	log logger.Logger,
	fsys filesystem.FileSystem,
	root P,
) int {
	opts := cfg.WalkOptions(log)
	printer := render.NewPrinter[P](a.stdout, a.stderr, render.Options{
		Format: cfg.Format,
		Styled: a.styledOut && cfg.Format == config.FormatText,
	})

	log.LogWalkStart(string(root), cfg.Mode.String())
	start := time.Now()

	var err error

	switch {
	case cfg.Progress && a.interactive:
		var cancelled bool

		cancelled, err = walkWithProgress(a, fsys, root, opts, printer)
		if cancelled {
			log.LogWarn("walk cancelled")
			return exitInterrupted
		}
	case cfg.Mode == config.ModeLazy:
		err = walkLazy(fsys, root, opts, printer, log)
	case cfg.Mode == config.ModeAsync:
		var entries []walker.Entry[P]

		entries, err = walker.WalkAsync(ctx, fsys, root, opts...)
		if err == nil {
			log.LogTrace(fmt.Sprintf("collected %d entries", len(entries)))
			err = printer.PrintAll(entries)
		}
	default:
		var entries []walker.Entry[P]

		entries, err = walker.Walk(fsys, root, opts...)
		if err == nil {
			log.LogTrace(fmt.Sprintf("collected %d entries", len(entries)))
			err = printer.PrintAll(entries)
		}
	}

	if cfg.Progress && !a.interactive {
		log.LogInfo("progress view needs a terminal on stderr; skipped")
	}

	if errors.Is(err, context.Canceled) {
		log.LogWarn("walk cancelled")
		return exitInterrupted
	}

	if errors.Is(err, render.ErrOutput) {
		log.LogError(err.Error())
		return exitFailure
	}

	if err != nil {
		render.WriteError(a.stderr, err, string(root), a.styledErr)
		return exitFailure
	}

	entries, failures := printer.Counts()
	log.LogWalkSummary(entries, failures, time.Since(start))

	return exitOK
}

// walkLazy prints entries as they are produced.
func walkLazy[P walker.Path](
	fsys filesystem.FileSystem,
	root P,
	opts []walker.Option,
	printer *render.Printer[P],
	log logger.Logger,
) error {
	for entry, err := range walker.WalkLazy(fsys, root, opts...) {
		if err != nil {
			return err //nolint:wrapcheck // Walk errors already carry the path
		}

		log.LogTrace("entry " + entry.String())

		if err := printer.Print(entry); err != nil { //nolint:noinlineerr // Loop body
			return err
		}
	}

	return nil
}

// walkWithProgress streams the walk through the progress view on stderr
// and prints the collected entries once it is over.
func walkWithProgress[P walker.Path](
	a *app,
	fsys filesystem.FileSystem,
	root P,
	opts []walker.Option,
	printer *render.Printer[P],
) (bool, error) {
	model := tui.NewModel(walker.NewScanner(fsys, root, opts...), string(root))

	final, err := tui.Run(model, tea.WithOutput(a.stderr))
	if err != nil {
		return false, err //nolint:wrapcheck // Already wrapped by tui.Run
	}

	if final.Cancelled() {
		return true, nil
	}

	// Strict aborts print nothing, as in the blocking modes
	if err := final.Err(); err != nil { //nolint:noinlineerr // Single call
		return false, err //nolint:wrapcheck // Walk errors already carry the path
	}

	return false, printer.PrintAll(final.Entries())
}
