//go:build integration

//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rrdir/pkg/filesystem"
	"github.com/joe/rrdir/pkg/walker"
)

// makeScenario builds <tmp>/test with file, dir/file, dir2/file and
// dir2/UPPER, and returns the root.
func makeScenario(t *testing.T) string {
	t.Helper()
	g := NewWithT(t)

	root := filepath.Join(t.TempDir(), "test")
	g.Expect(os.MkdirAll(filepath.Join(root, "dir"), 0o755)).Should(Succeed())
	g.Expect(os.MkdirAll(filepath.Join(root, "dir2"), 0o755)).Should(Succeed())

	for _, name := range []string{"file", "dir/file", "dir2/file", "dir2/UPPER"} {
		g.Expect(os.WriteFile(filepath.Join(root, name), []byte(name), 0o600)).Should(Succeed())
	}

	return root
}

// runAll walks with every mode and returns the three results.
func runAll(t *testing.T, root string, opts ...walker.Option) map[string][]walker.Entry[string] {
	t.Helper()
	g := NewWithT(t)

	fsys := filesystem.NewRealFileSystem()

	blocking, err := walker.Walk(fsys, root, opts...)
	g.Expect(err).ShouldNot(HaveOccurred())

	eager, err := walker.WalkAsync(context.Background(), fsys, root, opts...)
	g.Expect(err).ShouldNot(HaveOccurred())

	var lazy []walker.Entry[string]
	for entry, err := range walker.WalkLazy(fsys, root, opts...) {
		g.Expect(err).ShouldNot(HaveOccurred())
		lazy = append(lazy, entry)
	}

	return map[string][]walker.Entry[string]{"sync": blocking, "async": eager, "lazy": lazy}
}

func paths(entries []walker.Entry[string]) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Path)
	}

	return out
}

// entryShape is the comparable part of an entry.
type entryShape struct {
	Path      string
	Directory bool
	Symlink   bool
	StatDir   bool
	Size      int64
}

func shapes(entries []walker.Entry[string]) []entryShape {
	out := make([]entryShape, 0, len(entries))
	for _, entry := range entries {
		shape := entryShape{Path: entry.Path, Directory: entry.Directory, Symlink: entry.Symlink}
		if entry.Stats != nil {
			shape.StatDir = entry.Stats.IsDir()
			shape.Size = entry.Stats.Size()
		}

		out = append(out, shape)
	}

	return out
}

func TestIntegration_ScenarioExclude(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)

	for mode, entries := range runAll(t, root, walker.WithExclude("**/dir")) {
		g.Expect(paths(entries)).Should(ConsistOf(
			filepath.Join(root, "dir2"),
			filepath.Join(root, "dir2", "UPPER"),
			filepath.Join(root, "dir2", "file"),
			filepath.Join(root, "file"),
		), "mode %s", mode)
	}
}

func TestIntegration_ScenarioIncludeDir(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)

	for mode, entries := range runAll(t, root, walker.WithInclude("**/dir")) {
		g.Expect(entries).Should(Equal([]walker.Entry[string]{
			{Path: filepath.Join(root, "dir"), Directory: true},
		}), "mode %s", mode)
	}
}

func TestIntegration_ScenarioInsensitive(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)

	for mode, entries := range runAll(t, root, walker.WithInclude("**/u*"), walker.WithInsensitive()) {
		g.Expect(paths(entries)).Should(ContainElement(filepath.Join(root, "dir2", "UPPER")), "mode %s", mode)
	}

	// Case matters by default
	for mode, entries := range runAll(t, root, walker.WithInclude("**/u*")) {
		g.Expect(entries).Should(BeEmpty(), "mode %s", mode)
	}
}

func TestIntegration_ModesAgreeWithStats(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)
	results := runAll(t, root, walker.WithStats())

	g.Expect(results["sync"]).Should(HaveLen(6))

	// Separate walks see different access times in Sys(), so compare what
	// the entries say rather than the raw FileInfo values
	g.Expect(shapes(results["lazy"])).Should(Equal(shapes(results["sync"])))
	g.Expect(shapes(results["async"])).Should(ConsistOf(shapes(results["sync"])))

	for _, entry := range results["sync"] {
		g.Expect(entry.Stats).ShouldNot(BeNil())
		g.Expect(entry.Stats.IsDir()).Should(Equal(entry.Directory))
	}
}

func TestIntegration_StatsAbsentByDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)

	for _, entry := range runAll(t, root)["sync"] {
		g.Expect(entry.Stats).Should(BeNil())

		encoded, err := json.Marshal(entry)
		g.Expect(err).ShouldNot(HaveOccurred())

		var fields map[string]any
		g.Expect(json.Unmarshal(encoded, &fields)).Should(Succeed())
		g.Expect(fields).ShouldNot(HaveKey("stats"))
	}
}

func TestIntegration_BytesRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := makeScenario(t)

	entries, err := walker.Walk(filesystem.NewRealFileSystem(), []byte(root))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(HaveLen(6))
	g.Expect(string(entries[0].Path)).Should(Equal(filepath.Join(root, "dir")))
}

func TestIntegration_MissingRoot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := filesystem.NewRealFileSystem()
	missing := filepath.Join(t.TempDir(), "missing")

	entries, err := walker.Walk(fsys, missing)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(HaveLen(1))
	g.Expect(entries[0].Path).Should(Equal(missing))
	g.Expect(entries[0].Err).Should(MatchError(os.ErrNotExist))

	_, err = walker.Walk(fsys, missing, walker.WithStrict())
	g.Expect(err).Should(MatchError(os.ErrNotExist))

	_, err = walker.WalkAsync(context.Background(), fsys, missing, walker.WithStrict())
	g.Expect(err).Should(MatchError(os.ErrNotExist))

	var produced int
	for _, err := range walker.WalkLazy(fsys, missing, walker.WithStrict()) {
		if err != nil {
			g.Expect(err).Should(MatchError(os.ErrNotExist))
			break
		}
		produced++
	}
	g.Expect(produced).Should(BeZero())
}

func TestIntegration_SymlinkLoopTerminates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	root := makeScenario(t)
	g.Expect(os.Symlink("..", filepath.Join(root, "dir", "up"))).Should(Succeed())

	fsys := filesystem.NewRealFileSystem()
	up := filepath.Join(root, "dir", "up")

	entries, err := walker.Walk(fsys, root, walker.WithFollowSymlinks())
	g.Expect(err).ShouldNot(HaveOccurred())

	loop := slices.IndexFunc(entries, func(e walker.Entry[string]) bool { return e.IsErr() })
	g.Expect(loop).ShouldNot(Equal(-1))
	g.Expect(entries[loop].Path).Should(Equal(up))
	g.Expect(entries[loop].Err).Should(MatchError(walker.ErrSymlinkLoop))

	// Without following, the link is just reported
	entries, err = walker.Walk(fsys, root)
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(entries).Should(ContainElement(walker.Entry[string]{Path: up, Symlink: true}))
}
