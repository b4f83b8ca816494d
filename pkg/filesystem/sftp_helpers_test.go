package filesystem_test

import (
	"io"
	"testing"

	"github.com/pkg/sftp"
)

// pipeSession wires an SFTP client to an in-process server over io.Pipes,
// so remote code paths run against the local disk without SSH.
type pipeSession struct {
	io.Reader
	io.WriteCloser
}

func newPipeClient(t *testing.T) (*sftp.Client, error) {
	t.Helper()

	serverRead, clientWrite := io.Pipe()
	clientRead, serverWrite := io.Pipe()

	server, err := sftp.NewServer(pipeSession{serverRead, serverWrite})
	if err != nil {
		return nil, err //nolint:wrapcheck // Test helper
	}

	go func() {
		_ = server.Serve()
		_ = server.Close()
	}()

	client, err := sftp.NewClientPipe(clientRead, clientWrite)
	if err != nil {
		_ = server.Close()
		return nil, err //nolint:wrapcheck // Test helper
	}

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, nil
}

// pipeClientFactory returns a session constructor for NewSFTPClientPool.
func pipeClientFactory(t *testing.T) func() (*sftp.Client, error) {
	t.Helper()

	return func() (*sftp.Client, error) {
		return newPipeClient(t)
	}
}
