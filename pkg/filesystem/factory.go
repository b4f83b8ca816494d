package filesystem

import (
	"fmt"

	"github.com/pkg/sftp"
)

// DefaultPoolSize is the number of SFTP sessions opened for a remote root.
const DefaultPoolSize = 4

// CreateFileSystem creates a FileSystem for the given root.
// Returns (filesystem, walkRoot, closer, error).
//   - filesystem: local for plain paths, SFTP for sftp:// URLs
//   - walkRoot: the path to walk on that filesystem (URL framing removed)
//   - closer: releases remote sessions; a no-op for local roots
//
// poolSize <= 0 uses DefaultPoolSize.
func CreateFileSystem(root string, poolSize int) (FileSystem, string, func(), error) {
	parsed, err := ParsePath(root)
	if err != nil {
		return nil, "", nil, err
	}

	if !parsed.IsRemote {
		return NewRealFileSystem(), parsed.Root, func() {}, nil
	}

	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	conn, err := Connect(parsed.Host, parsed.Port, parsed.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			parsed.User, parsed.Host, parsed.Port, err)
	}

	workDir, err := conn.Client().Getwd()
	if err != nil {
		_ = conn.Close()
		return nil, "", nil, fmt.Errorf("failed to resolve remote working directory: %w", err)
	}

	pool, err := NewSFTPClientPool(poolSize, func() (*sftp.Client, error) {
		return sftp.NewClient(conn.SSHClient()) //nolint:wrapcheck // Wrapped by NewSFTPClientPool
	})
	if err != nil {
		_ = conn.Close()
		return nil, "", nil, fmt.Errorf("failed to create SFTP client pool: %w", err)
	}

	fs := NewSFTPFileSystem(pool, workDir)
	closer := func() {
		_ = fs.Close()
		_ = conn.Close()
	}

	return fs, parsed.Root, closer, nil
}
