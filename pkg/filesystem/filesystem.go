// Package filesystem provides the host primitives a directory walk consumes:
// listing a directory, stat (following links) and lstat (not following).
// Local disks, SFTP servers and an in-memory fake all satisfy the same
// interface so the walker can be exercised without real I/O.
package filesystem

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	krfs "github.com/kr/fs"
)

// FileSystem is the contract the walker lists and stats through.
//
// The embedded kr/fs interface supplies ReadDir, Lstat and Join. ReadDir
// returns lightweight descriptors: their Mode type bits (directory, symlink)
// describe the entry itself, not a link target, and are the only fields
// guaranteed to be populated without a further stat.
type FileSystem interface {
	krfs.FileSystem

	// Stat returns metadata for path, following symbolic links.
	Stat(path string) (os.FileInfo, error)

	// Abs resolves path to an absolute path on this filesystem.
	Abs(path string) (string, error)

	// SameFile reports whether two Stat results describe the same object.
	// Filesystems without stable identities always report false.
	SameFile(a, b os.FileInfo) bool

	// Separator is the byte placed between a parent path and a child name.
	Separator() byte
}

// RealFileSystem implements FileSystem using the local operating system.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// Abs returns an absolute representation of path.
func (fs *RealFileSystem) Abs(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return abs, nil
}

// Join joins path elements with the OS separator.
func (fs *RealFileSystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Lstat returns file information without following a final symlink.
func (fs *RealFileSystem) Lstat(path string) (os.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to lstat %s: %w", path, err)
	}

	return info, nil
}

// ReadDir lists the children of dirname in name order.
// The returned descriptors do not stat their entries; see direntInfo.
func (fs *RealFileSystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirname, err)
	}

	infos := make([]os.FileInfo, len(entries))
	for i, entry := range entries {
		infos[i] = &direntInfo{entry: entry}
	}

	return infos, nil
}

// SameFile compares device and inode numbers via os.SameFile.
func (fs *RealFileSystem) SameFile(a, b os.FileInfo) bool {
	return os.SameFile(a, b)
}

// Separator returns the OS path separator.
func (fs *RealFileSystem) Separator() byte {
	return os.PathSeparator
}

// Stat returns file information, following symlinks.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}

// direntInfo adapts an iofs.DirEntry to os.FileInfo.
// Name, Mode type bits and IsDir come straight from the directory read.
// Size, ModTime and Sys trigger a lazy lstat via DirEntry.Info and report
// zero values when that fails.
type direntInfo struct {
	entry iofs.DirEntry
}

func (d *direntInfo) IsDir() bool       { return d.entry.IsDir() }
func (d *direntInfo) Mode() os.FileMode { return d.entry.Type() }
func (d *direntInfo) Name() string      { return d.entry.Name() }

func (d *direntInfo) ModTime() time.Time {
	if info, err := d.entry.Info(); err == nil {
		return info.ModTime()
	}

	return time.Time{}
}

func (d *direntInfo) Size() int64 {
	if info, err := d.entry.Info(); err == nil {
		return info.Size()
	}

	return 0
}

func (d *direntInfo) Sys() any {
	if info, err := d.entry.Info(); err == nil {
		return info.Sys()
	}

	return nil
}
