// Package render prints walk entries, either as text for people or as JSON
// lines for other programs.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/rrdir/internal/config"
	rrerrors "github.com/joe/rrdir/pkg/errors"
	"github.com/joe/rrdir/pkg/walker"
)

// ErrOutput marks failures to write entries, as opposed to walk failures.
var ErrOutput = errors.New("failed to write output")

// Options controls how a Printer writes entries.
type Options struct {
	Format config.Format

	// Styled enables colors and suggestions in text output.
	Styled bool
}

// Printer writes entries one at a time and keeps a tally.
//
// In text format ok entries go to out, one path per line, and error entries
// go to errOut. In JSON format every entry is one JSON object on out.
type Printer[P walker.Path] struct {
	out      io.Writer
	errOut   io.Writer
	opts     Options
	enricher rrerrors.Enricher
	encoder  *json.Encoder

	entries  int
	failures int
}

// NewPrinter creates a Printer.
func NewPrinter[P walker.Path](out, errOut io.Writer, opts Options) *Printer[P] {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	return &Printer[P]{
		out:      out,
		errOut:   errOut,
		opts:     opts,
		enricher: rrerrors.NewEnricher(),
		encoder:  encoder,
	}
}

// Counts returns how many ok entries and error entries were printed.
func (p *Printer[P]) Counts() (entries, failures int) {
	return p.entries, p.failures
}

// Print writes one entry.
func (p *Printer[P]) Print(entry walker.Entry[P]) error {
	if entry.IsErr() {
		p.failures++
	} else {
		p.entries++
	}

	if p.opts.Format == config.FormatJSON {
		if err := p.encoder.Encode(entry); err != nil { //nolint:noinlineerr // Single write
			return fmt.Errorf("%w: encode %s: %w", ErrOutput, entry, err)
		}

		return nil
	}

	if entry.IsErr() {
		return p.printError(entry)
	}

	_, err := fmt.Fprintln(p.out, p.formatEntry(entry))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	return nil
}

// PrintAll writes every entry in order, stopping at the first write failure.
func (p *Printer[P]) PrintAll(entries []walker.Entry[P]) error {
	for _, entry := range entries {
		if err := p.Print(entry); err != nil { //nolint:noinlineerr // Loop body
			return err
		}
	}

	return nil
}

func (p *Printer[P]) formatEntry(entry walker.Entry[P]) string {
	path := entry.String()

	if p.opts.Styled {
		switch {
		case entry.Directory:
			path = DirStyle().Render(path)
		case entry.Symlink:
			path = SymlinkStyle().Render(path)
		default:
			path = FileStyle().Render(path)
		}
	}

	if entry.Stats == nil {
		return path
	}

	columns := FormatStats(entry.Stats)
	if p.opts.Styled {
		columns = DimStyle().Render(columns)
	}

	return columns + "  " + path
}

func (p *Printer[P]) printError(entry walker.Entry[P]) error {
	var builder strings.Builder

	if p.opts.Styled {
		builder.WriteString(ErrorStyle().Render(ErrorMark + errorLine(entry)))

		enriched := p.enricher.Enrich(entry.Err, entry.String())
		if suggestions := rrerrors.FormatSuggestions(enriched); suggestions != "" {
			builder.WriteString("\n")
			builder.WriteString(DimStyle().Render(suggestions))
		}
	} else {
		builder.WriteString("rrdir: ")
		builder.WriteString(errorLine(entry))
	}

	_, err := fmt.Fprintln(p.errOut, builder.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	return nil
}

// FormatStats renders metadata as fixed-width columns: mode, size and
// modification time.
func FormatStats(info os.FileInfo) string {
	return fmt.Sprintf("%s %12d %s",
		info.Mode().String(), info.Size(), info.ModTime().Format("2006-01-02 15:04"))
}

// errorLine names the failed path unless the error text already does.
func errorLine[P walker.Path](entry walker.Entry[P]) string {
	msg := entry.Err.Error()
	path := entry.String()

	if path == "" || strings.Contains(msg, path) {
		return msg
	}

	return path + ": " + msg
}

// WriteError prints an error that ended the program, with suggestions.
func WriteError(w io.Writer, err error, affectedPath string, styled bool) {
	enriched := rrerrors.NewEnricher().Enrich(err, affectedPath)
	suggestions := rrerrors.FormatSuggestions(enriched)

	if styled {
		_, _ = fmt.Fprintln(w, ErrorStyle().Render("Error: "+enriched.Error()))
		if suggestions != "" {
			_, _ = fmt.Fprintln(w, DimStyle().Render(suggestions))
		}

		return
	}

	_, _ = fmt.Fprintf(w, "Error: %v\n", enriched)
	if suggestions != "" {
		_, _ = fmt.Fprintln(w, suggestions)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int
}
