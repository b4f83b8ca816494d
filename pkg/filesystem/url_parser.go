package filesystem

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	sftpScheme      = "sftp://"
	defaultSFTPPort = 22
)

// Exported errors for malformed SFTP roots.
var (
	ErrMissingHost = errors.New("SFTP URL must include host")
	ErrMissingUser = errors.New("SFTP URL must include username (sftp://user@host/path)")
)

// ParsedPath is a walk root: either a local path or a location on an SFTP host.
type ParsedPath struct {
	IsRemote bool

	// Root is the path handed to the walker: the local path as given, or
	// the remote path with URL framing removed.
	Root string

	// Set only for remote roots
	Host string
	Port int
	User string
}

// String renders the root the way it was addressed.
func (p *ParsedPath) String() string {
	if !p.IsRemote {
		return p.Root
	}

	return fmt.Sprintf("%s%s@%s:%d/%s", sftpScheme, p.User, p.Host, p.Port, p.Root)
}

// ParsePath detects whether root is a local path or an SFTP URL of the form
// sftp://user@host[:port]/path. The port defaults to 22.
//
// Remote path convention:
//   - sftp://user@host/path  → "path", relative to the login directory
//   - sftp://user@host//path → "/path", absolute
//   - sftp://user@host       → ".", the login directory
func ParsePath(root string) (*ParsedPath, error) {
	if !strings.HasPrefix(root, sftpScheme) {
		return &ParsedPath{Root: root}, nil
	}

	return parseSFTPURL(root)
}

func parseSFTPURL(raw string) (*ParsedPath, error) {
	u, err := url.Parse(raw) //nolint:varnamelen // u is idiomatic for URL
	if err != nil {
		return nil, fmt.Errorf("invalid SFTP URL: %w", err)
	}

	if u.User == nil || u.User.Username() == "" {
		return nil, ErrMissingUser
	}

	host := u.Hostname()
	if host == "" {
		return nil, ErrMissingHost
	}

	port := defaultSFTPPort
	if portStr := u.Port(); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port number: %w", err)
		}
	}

	remotePath := u.Path
	switch {
	case remotePath == "" || remotePath == "/":
		remotePath = "."
	case strings.HasPrefix(remotePath, "//"):
		remotePath = remotePath[1:]
	default:
		remotePath = strings.TrimPrefix(remotePath, "/")
	}

	return &ParsedPath{
		IsRemote: true,
		Root:     remotePath,
		Host:     host,
		Port:     port,
		User:     u.User.Username(),
	}, nil
}
