package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/rrdir/pkg/filesystem"
	"github.com/joe/rrdir/pkg/walker"
)

func newTestFS(files int) *filesystem.MockFileSystem {
	fsys := filesystem.NewMockFileSystem()
	now := time.Now()

	for i := range files {
		fsys.AddFile(fmt.Sprintf("root/dir/file%03d", i), nil, now)
	}

	return fsys
}

// drain feeds batches through Update until the walk reports done.
func drain(m Model[string]) (Model[string], tea.Cmd) {
	var cmd tea.Cmd = m.nextBatch()

	for !m.done {
		next, c := m.Update(cmd())
		m = next.(Model[string])
		cmd = c
	}

	return m, cmd
}

var _ = Describe("Progress model", func() {
	var model Model[string]

	AfterEach(func() {
		model.Close()
	})

	Describe("Initial state", func() {
		BeforeEach(func() {
			model = NewModel(walker.NewScanner(newTestFS(1), "root"), "root")
		})

		It("starts with nothing collected", func() {
			Expect(model.Entries()).To(BeEmpty())
			Expect(model.Done()).To(BeFalse())
			Expect(model.Cancelled()).To(BeFalse())
			Expect(model.Err()).ToNot(HaveOccurred())
		})

		It("returns a start command", func() {
			Expect(model.Init()).ToNot(BeNil())
		})

		It("shows the root while walking", func() {
			Expect(model.View()).To(ContainSubstring("Walking"))
			Expect(model.View()).To(ContainSubstring("root"))
			Expect(model.View()).To(ContainSubstring("0 entries"))
		})
	})

	Describe("Consuming the walk", func() {
		It("collects every entry in order and quits", func() {
			model = NewModel(walker.NewScanner(newTestFS(BatchSize+10), "root"), "root")

			final, cmd := drain(model)

			Expect(final.Done()).To(BeTrue())
			Expect(final.Err()).ToNot(HaveOccurred())
			Expect(final.Entries()).To(HaveLen(BatchSize + 11))
			Expect(final.Entries()[0].Path).To(Equal("root/dir"))
			Expect(final.Entries()[1].Path).To(Equal("root/dir/file000"))
			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			Expect(final.View()).To(ContainSubstring(fmt.Sprintf("%d entries", BatchSize+11)))
		})

		It("tracks the most recent path", func() {
			model = NewModel(walker.NewScanner(newTestFS(3), "root"), "root")

			next, _ := model.Update(model.nextBatch()())
			updated := next.(Model[string])

			Expect(updated.current).To(Equal("root/dir/file002"))
		})

		It("counts error entries", func() {
			fsys := newTestFS(2)
			fsys.AddDir("root/locked", time.Now())
			fsys.FailOn(filesystem.OpReadDir, "root/locked", errors.New("denied"))

			model = NewModel(walker.NewScanner(fsys, "root"), "root")
			final, _ := drain(model)

			Expect(final.failures).To(Equal(1))
			Expect(final.Entries()).To(HaveLen(5))
			Expect(final.View()).To(ContainSubstring("4 entries"))
			Expect(final.View()).To(ContainSubstring("1 errors"))
		})

		It("keeps the abort error in strict mode", func() {
			fsys := newTestFS(1)
			fsys.FailOn(filesystem.OpReadDir, "root/dir", errors.New("denied"))

			model = NewModel(walker.NewScanner(fsys, "root", walker.WithStrict()), "root")
			final, _ := drain(model)

			Expect(final.Done()).To(BeTrue())
			Expect(final.Err()).To(MatchError(ContainSubstring("denied")))
		})
	})

	Describe("Keyboard", func() {
		BeforeEach(func() {
			model = NewModel(walker.NewScanner(newTestFS(1), "root"), "root")
		})

		It("cancels on ctrl+c", func() {
			next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
			updated := next.(Model[string])

			Expect(updated.Cancelled()).To(BeTrue())
			Expect(cmd()).To(Equal(tea.QuitMsg{}))
			Expect(updated.View()).To(ContainSubstring("Cancelled"))
		})

		It("ignores other keys", func() {
			next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

			Expect(next.(Model[string]).Cancelled()).To(BeFalse())
			Expect(cmd).To(BeNil())
		})
	})

	Describe("Closing", func() {
		It("ends further pulls", func() {
			model = NewModel(walker.NewScanner(newTestFS(5), "root"), "root")
			model.Close()
			model.Close()

			msg, ok := model.nextBatch()().(batchMsg[string])
			Expect(ok).To(BeTrue())
			Expect(msg.done).To(BeTrue())
			Expect(msg.entries).To(BeEmpty())
		})
	})

	Describe("Window size", func() {
		It("truncates the current path to the width", func() {
			model = NewModel(walker.NewScanner(newTestFS(1), "root"), "root")
			model.current = "root/a/very/long/path/that/will/not/fit"

			next, _ := model.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
			updated := next.(Model[string])

			Expect(updated.width).To(Equal(20))
			Expect(updated.View()).To(ContainSubstring("...at/will/not/fit"))

			for _, line := range strings.Split(strings.TrimSuffix(updated.View(), "\n"), "\n") {
				Expect(lipgloss.Width(line)).To(BeNumerically("<=", 20))
			}
		})
	})

	Describe("Run", func() {
		It("runs headless to completion", func() {
			model = NewModel(walker.NewScanner(newTestFS(3), "root"), "root")

			final, err := Run(model, tea.WithInput(nil), tea.WithOutput(io.Discard))

			Expect(err).ToNot(HaveOccurred())
			Expect(final.Done()).To(BeTrue())
			Expect(final.Entries()).To(HaveLen(4))
		})
	})
})

var _ = DescribeTable("truncatePath",
	func(path string, width int, expected string) {
		Expect(truncatePath(path, width)).To(Equal(expected))
	},
	Entry("fits", "a/b", 10, "a/b"),
	Entry("exact", "abcde", 5, "abcde"),
	Entry("keeps the tail", "abcdefghij", 7, "...ghij"),
	Entry("too narrow to bother", "abcdefghij", 3, "abcdefghij"),
)
