package filesystem

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// SFTPFileSystem implements FileSystem for a remote host.
// Each call borrows a session from the pool for its duration.
type SFTPFileSystem struct {
	pool    *SFTPClientPool
	workDir string
}

// NewSFTPFileSystem creates a remote filesystem over pool.
// workDir is the session's working directory and anchors relative paths in Abs.
func NewSFTPFileSystem(pool *SFTPClientPool, workDir string) *SFTPFileSystem {
	if workDir == "" {
		workDir = "/"
	}

	return &SFTPFileSystem{
		pool:    pool,
		workDir: workDir,
	}
}

// Abs resolves path against the session working directory.
// Remote paths always use forward slashes.
func (fs *SFTPFileSystem) Abs(p string) (string, error) {
	if path.IsAbs(p) {
		return path.Clean(p), nil
	}

	return path.Join(fs.workDir, p), nil
}

// Close closes the session pool.
func (fs *SFTPFileSystem) Close() error {
	if fs.pool != nil {
		return fs.pool.Close()
	}

	return nil
}

// Join joins remote path elements.
func (fs *SFTPFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}

// Lstat returns remote file information without following a final symlink.
func (fs *SFTPFileSystem) Lstat(p string) (os.FileInfo, error) {
	return withClient(fs.pool, func(client *sftp.Client) (os.FileInfo, error) {
		info, err := client.Lstat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to lstat remote %s: %w", p, err)
		}

		return info, nil
	})
}

// ReadDir lists a remote directory. The server reports each child's own
// attributes, so symlinks are described as links.
func (fs *SFTPFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	return withClient(fs.pool, func(client *sftp.Client) ([]os.FileInfo, error) {
		infos, err := client.ReadDir(dirname)
		if err != nil {
			return nil, fmt.Errorf("failed to read remote directory %s: %w", dirname, err)
		}

		return infos, nil
	})
}

// SameFile always reports false: SFTP attributes carry no inode numbers.
func (fs *SFTPFileSystem) SameFile(_, _ os.FileInfo) bool {
	return false
}

// Separator returns '/', which SFTP uses regardless of the local OS.
func (fs *SFTPFileSystem) Separator() byte {
	return '/'
}

// Stat returns remote file information, following symlinks.
func (fs *SFTPFileSystem) Stat(p string) (os.FileInfo, error) {
	return withClient(fs.pool, func(client *sftp.Client) (os.FileInfo, error) {
		info, err := client.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat remote %s: %w", p, err)
		}

		return info, nil
	})
}

// withClient runs fn with a pooled session and releases it afterwards.
func withClient[T any](pool *SFTPClientPool, fn func(*sftp.Client) (T, error)) (T, error) {
	var zero T

	client, err := pool.Acquire()
	if err != nil {
		return zero, fmt.Errorf("failed to acquire SFTP client: %w", err)
	}
	defer pool.Release(client)

	return fn(client)
}
