package filesystem

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Op names a primitive call on MockFileSystem, for failure injection and
// call inspection.
type Op string

// Primitive operations recorded by MockFileSystem.
const (
	OpLstat   Op = "lstat"
	OpReadDir Op = "readdir"
	OpStat    Op = "stat"
)

// maxSymlinkHops mirrors the kernel's limit before ELOOP.
const maxSymlinkHops = 40

// MockFileSystem is an in-memory filesystem implementation for testing.
// Paths use '/' and relative paths resolve against the working directory "/".
type MockFileSystem struct {
	mu       sync.RWMutex
	nodes    map[string]*mockNode
	failures map[Op]map[string]error
	calls    map[Op][]string
}

// mockNode is a directory, regular file or symlink.
type mockNode struct {
	name    string
	target  string // non-empty for symlinks
	size    int64
	modTime time.Time
	isDir   bool
}

// mockFileInfo implements os.FileInfo for mock nodes.
// Sys returns the node pointer so SameFile can compare identities.
type mockFileInfo struct {
	node *mockNode
	name string
}

func (fi *mockFileInfo) IsDir() bool        { return fi.node.isDir && fi.node.target == "" }
func (fi *mockFileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.node.size }
func (fi *mockFileInfo) Sys() any           { return fi.node }

func (fi *mockFileInfo) Mode() os.FileMode {
	switch {
	case fi.node.target != "":
		return os.ModeSymlink | 0o777
	case fi.node.isDir:
		return os.ModeDir | 0o755
	default:
		return 0o644
	}
}

// NewMockFileSystem creates a new in-memory filesystem holding only "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		nodes: map[string]*mockNode{
			"/": {name: "/", isDir: true, modTime: time.Now()},
		},
		failures: make(map[Op]map[string]error),
		calls:    make(map[Op][]string),
	}
}

// Abs resolves path against "/".
func (fs *MockFileSystem) Abs(p string) (string, error) {
	return absMock(p), nil
}

// Join joins path elements with '/'.
func (fs *MockFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns information about p without following a final symlink.
func (fs *MockFileSystem) Lstat(p string) (os.FileInfo, error) {
	return fs.statOp(OpLstat, p, false)
}

// ReadDir lists the children of dirname in name order, following symlinks
// along the way.
func (fs *MockFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.recordLocked(OpReadDir, dirname); err != nil { //nolint:noinlineerr // Injected failure
		return nil, err
	}

	resolved, node, err := fs.resolveLocked(dirname, true)
	if err != nil {
		return nil, &iofs.PathError{Op: "open", Path: dirname, Err: err}
	}
	if !node.isDir {
		return nil, &iofs.PathError{Op: "readdirent", Path: dirname, Err: syscall.ENOTDIR}
	}

	var infos []os.FileInfo
	for p, child := range fs.nodes {
		if p != "/" && path.Dir(p) == resolved {
			infos = append(infos, &mockFileInfo{node: child, name: child.name})
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})

	return infos, nil
}

// SameFile reports whether both infos came from the same mock node.
func (fs *MockFileSystem) SameFile(a, b os.FileInfo) bool {
	if a == nil || b == nil {
		return false
	}

	na, okA := a.Sys().(*mockNode)
	nb, okB := b.Sys().(*mockNode)

	return okA && okB && na == nb
}

// Separator returns '/'.
func (fs *MockFileSystem) Separator() byte {
	return '/'
}

// Stat returns information about p, following symlinks.
func (fs *MockFileSystem) Stat(p string) (os.FileInfo, error) {
	return fs.statOp(OpStat, p, true)
}

// Helper methods for testing

// AddDir adds a directory and any missing parents.
func (fs *MockFileSystem) AddDir(p string, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.mkdirAllLocked(absMock(p), modTime)
}

// AddFile adds a regular file with the given content, creating parents.
func (fs *MockFileSystem) AddFile(p string, content []byte, modTime time.Time) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	abs := absMock(p)
	fs.mkdirAllLocked(path.Dir(abs), modTime)
	fs.nodes[abs] = &mockNode{
		name:    path.Base(abs),
		size:    int64(len(content)),
		modTime: modTime,
	}
}

// AddSymlink adds a symbolic link at p pointing to target. Relative targets
// resolve against the link's directory. The target need not exist.
func (fs *MockFileSystem) AddSymlink(p, target string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	abs := absMock(p)
	fs.mkdirAllLocked(path.Dir(abs), time.Now())
	fs.nodes[abs] = &mockNode{
		name:    path.Base(abs),
		target:  target,
		modTime: time.Now(),
	}
}

// Calls returns the paths passed to op, in call order.
func (fs *MockFileSystem) Calls(op Op) []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return append([]string(nil), fs.calls[op]...)
}

// FailOn makes every op call on p return err.
func (fs *MockFileSystem) FailOn(op Op, p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.failures[op] == nil {
		fs.failures[op] = make(map[string]error)
	}
	fs.failures[op][p] = err
}

// mkdirAllLocked creates p and its parents. Caller holds the lock.
func (fs *MockFileSystem) mkdirAllLocked(p string, modTime time.Time) {
	if p == "/" {
		return
	}

	fs.mkdirAllLocked(path.Dir(p), modTime)

	if _, exists := fs.nodes[p]; !exists {
		fs.nodes[p] = &mockNode{name: path.Base(p), isDir: true, modTime: modTime}
	}
}

// recordLocked logs the call and returns any injected failure.
func (fs *MockFileSystem) recordLocked(op Op, p string) error {
	fs.calls[op] = append(fs.calls[op], p)

	if err, ok := fs.failures[op][p]; ok {
		return &iofs.PathError{Op: string(op), Path: p, Err: err}
	}

	return nil
}

// resolveLocked walks p component by component, substituting symlink
// targets for every intermediate link and, when followFinal is set, for the
// last component too.
func (fs *MockFileSystem) resolveLocked(p string, followFinal bool) (string, *mockNode, error) {
	parts := splitMock(absMock(p))
	current := "/"
	hops := 0

	for i := 0; i < len(parts); i++ {
		next := path.Join(current, parts[i])

		node, exists := fs.nodes[next]
		if !exists {
			return "", nil, iofs.ErrNotExist
		}

		last := i == len(parts)-1
		if node.target != "" && (!last || followFinal) {
			hops++
			if hops > maxSymlinkHops {
				return "", nil, syscall.ELOOP
			}

			target := node.target
			if !path.IsAbs(target) {
				target = path.Join(current, target)
			}

			parts = append(splitMock(target), parts[i+1:]...)
			current = "/"
			i = -1

			continue
		}

		if !last && !node.isDir {
			return "", nil, syscall.ENOTDIR
		}

		current = next
	}

	return current, fs.nodes[current], nil
}

func (fs *MockFileSystem) statOp(op Op, p string, follow bool) (os.FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.recordLocked(op, p); err != nil { //nolint:noinlineerr // Injected failure
		return nil, err
	}

	_, node, err := fs.resolveLocked(p, follow)
	if err != nil {
		return nil, &iofs.PathError{Op: string(op), Path: p, Err: err}
	}

	return &mockFileInfo{node: node, name: path.Base(absMock(p))}, nil
}

func absMock(p string) string {
	if !path.IsAbs(p) {
		p = "/" + p
	}

	return path.Clean(p)
}

func splitMock(p string) []string {
	trimmed := strings.Trim(path.Clean(p), "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

var _ FileSystem = (*MockFileSystem)(nil)

// String summarizes the tree size, for test failure messages.
func (fs *MockFileSystem) String() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fmt.Sprintf("MockFileSystem(%d nodes)", len(fs.nodes))
}
