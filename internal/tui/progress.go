// Package tui shows a live progress view while a lazy walk streams entries.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/rrdir/internal/render"
	"github.com/joe/rrdir/pkg/walker"
)

// Exported constants.
const (
	// BatchSize is how many entries one pull takes from the scanner
	// before the view is refreshed.
	BatchSize = 64
	// DefaultWidth is used until the terminal reports its size.
	DefaultWidth = 80
	// KeyCtrlC is the key binding for cancellation
	KeyCtrlC = "ctrl+c"
)

// Model is the bubbletea model for the progress view. It pulls entries from
// a scanner in batches and keeps them for printing once the walk is over.
type Model[P walker.Path] struct {
	feed    *feed[P]
	root    string
	spinner spinner.Model
	width   int

	entries   []walker.Entry[P]
	failures  int
	current   string
	started   time.Time
	elapsed   time.Duration
	done      bool
	cancelled bool
	err       error
}

// NewModel creates a progress view over scanner. root is only displayed.
func NewModel[P walker.Path](scanner *walker.Scanner[P], root string) Model[P] {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(render.AccentColor())

	return Model[P]{
		feed:    &feed[P]{scanner: scanner},
		root:    root,
		spinner: spin,
		width:   DefaultWidth,
		started: time.Now(),
	}
}

// Cancelled reports whether the user interrupted the walk.
func (m Model[P]) Cancelled() bool { return m.cancelled }

// Close stops the underlying walk. Safe to call more than once.
func (m Model[P]) Close() { m.feed.close() }

// Done reports whether the walk has finished.
func (m Model[P]) Done() bool { return m.done }

// Entries returns everything collected so far, in walk order.
func (m Model[P]) Entries() []walker.Entry[P] { return m.entries }

// Err returns the error that aborted the walk, if any.
func (m Model[P]) Err() error { return m.err }

// Init implements tea.Model
func (m Model[P]) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.nextBatch(),
	)
}

// Update implements tea.Model
func (m Model[P]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case batchMsg[P]:
		return m.handleBatch(msg)
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m Model[P]) View() string {
	counts := fmt.Sprintf("%d entries", len(m.entries)-m.failures)
	if m.failures > 0 {
		counts += ", " + render.ErrorStyle().Render(fmt.Sprintf("%d errors", m.failures))
	}

	switch {
	case m.cancelled:
		return render.DimStyle().Render("Cancelled after "+counts) + "\n"
	case m.done:
		return fmt.Sprintf("Walked %s: %s in %s\n", m.root, counts, m.elapsed.Round(time.Millisecond))
	}

	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" Walking ")
	b.WriteString(render.DirStyle().Render(m.root))
	b.WriteString("  ")
	b.WriteString(counts)
	b.WriteString("\n")

	if m.current != "" {
		b.WriteString("  ")
		b.WriteString(render.DimStyle().Render(truncatePath(m.current, m.width-2)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model[P]) handleBatch(msg batchMsg[P]) (tea.Model, tea.Cmd) {
	for _, entry := range msg.entries {
		if entry.IsErr() {
			m.failures++
		}
	}

	m.entries = append(m.entries, msg.entries...)
	if n := len(msg.entries); n > 0 {
		m.current = msg.entries[n-1].String()
	}

	if !msg.done {
		return m, m.nextBatch()
	}

	m.done = true
	m.err = msg.err
	m.elapsed = time.Since(m.started)

	return m, tea.Quit
}

func (m Model[P]) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyCtrlC, "q", "esc":
		m.cancelled = true
		m.elapsed = time.Since(m.started)

		return m, tea.Quit
	}

	return m, nil
}

func (m Model[P]) nextBatch() tea.Cmd {
	f := m.feed

	return func() tea.Msg {
		return f.pull(BatchSize)
	}
}

// batchMsg carries entries pulled from the scanner.
type batchMsg[P walker.Path] struct {
	entries []walker.Entry[P]
	done    bool
	err     error
}

// feed serializes access to the scanner: pulls run in tea command
// goroutines while Close may come from the caller.
type feed[P walker.Path] struct {
	mu      sync.Mutex
	scanner *walker.Scanner[P]
	closed  bool
}

func (f *feed[P]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}

	f.closed = true
	f.scanner.Close()
}

func (f *feed[P]) pull(limit int) batchMsg[P] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return batchMsg[P]{done: true}
	}

	entries := make([]walker.Entry[P], 0, limit)
	for len(entries) < limit {
		entry, ok := f.scanner.Next()
		if !ok {
			return batchMsg[P]{entries: entries, done: true, err: f.scanner.Err()}
		}

		entries = append(entries, entry)
	}

	return batchMsg[P]{entries: entries}
}

// truncatePath keeps the tail of path, which is the part that changes.
func truncatePath(path string, width int) string {
	const ellipsis = "..."

	runes := []rune(path)
	if width <= len(ellipsis) || len(runes) <= width {
		return path
	}

	return ellipsis + string(runes[len(runes)-(width-len(ellipsis)):])
}

// Run drives the progress view until the walk finishes or the user
// cancels, and returns the final model. The walk is closed on return.
func Run[P walker.Path](model Model[P], opts ...tea.ProgramOption) (Model[P], error) {
	defer model.Close()

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return model, fmt.Errorf("progress view failed: %w", err)
	}

	result, ok := final.(Model[P])
	if !ok {
		return model, fmt.Errorf("progress view returned unexpected model %T", final) //nolint:err113 // Programming error
	}

	return result, nil
}
