//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/rrdir/pkg/filesystem"
)

func newTestSFTPFileSystem(t *testing.T) *filesystem.SFTPFileSystem {
	t.Helper()

	pool, err := filesystem.NewSFTPClientPool(2, pipeClientFactory(t))
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	fs := filesystem.NewSFTPFileSystem(pool, "/home/walker")
	t.Cleanup(func() { _ = fs.Close() })

	return fs
}

func TestSFTPFileSystem_ReadDirAndStat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	g.Expect(os.Mkdir(filepath.Join(root, "sub"), 0o755)).Should(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "sub", "a.txt"), []byte("abc"), 0o600)).Should(Succeed())
	g.Expect(os.Symlink("sub", filepath.Join(root, "link"))).Should(Succeed())

	fs := newTestSFTPFileSystem(t)

	infos, err := fs.ReadDir(root)
	g.Expect(err).ShouldNot(HaveOccurred())

	modes := make(map[string]os.FileMode, len(infos))
	for _, info := range infos {
		modes[info.Name()] = info.Mode()
	}

	g.Expect(modes).Should(HaveLen(2))
	g.Expect(modes["sub"].IsDir()).Should(BeTrue())
	g.Expect(modes["link"] & os.ModeSymlink).ShouldNot(BeZero())

	linkInfo, err := fs.Lstat(filepath.Join(root, "link"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(linkInfo.Mode() & os.ModeSymlink).ShouldNot(BeZero())

	targetInfo, err := fs.Stat(filepath.Join(root, "link"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(targetInfo.IsDir()).Should(BeTrue())

	fileInfo, err := fs.Stat(filepath.Join(root, "sub", "a.txt"))
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(fileInfo.Size()).Should(Equal(int64(3)))
}

func TestSFTPFileSystem_Errors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := newTestSFTPFileSystem(t)
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := fs.ReadDir(missing)
	g.Expect(err).Should(MatchError(os.ErrNotExist))
	g.Expect(err.Error()).Should(ContainSubstring("failed to read remote directory"))

	_, err = fs.Lstat(missing)
	g.Expect(err).Should(MatchError(os.ErrNotExist))

	_, err = fs.Stat(missing)
	g.Expect(err).Should(MatchError(os.ErrNotExist))
}

func TestSFTPFileSystem_ClosedPool(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := newTestSFTPFileSystem(t)
	g.Expect(fs.Close()).Should(Succeed())

	_, err := fs.ReadDir("/")
	g.Expect(err).Should(MatchError(filesystem.ErrPoolClosed))
}

func TestSFTPFileSystem_PathHelpers(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fs := filesystem.NewSFTPFileSystem(nil, "/home/walker")

	abs, err := fs.Abs("data/logs")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(abs).Should(Equal("/home/walker/data/logs"))

	abs, err = fs.Abs("/srv//x/")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(abs).Should(Equal("/srv/x"))

	abs, err = fs.Abs(".")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(abs).Should(Equal("/home/walker"))

	g.Expect(fs.Join("a", "b")).Should(Equal("a/b"))
	g.Expect(fs.Separator()).Should(Equal(byte('/')))
	g.Expect(fs.SameFile(nil, nil)).Should(BeFalse())
	g.Expect(fs.Close()).Should(Succeed())

	rootless := filesystem.NewSFTPFileSystem(nil, "")
	abs, err = rootless.Abs("x")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(abs).Should(Equal("/x"))
}
