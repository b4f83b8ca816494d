package filesystem

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pkg/sftp"
)

// ErrPoolClosed is returned by Acquire once the pool has been closed.
var ErrPoolClosed = errors.New("pool is closed")

// SFTPClientPool hands out SFTP sessions sharing one SSH connection.
// It uses a channel-based semaphore so concurrent directory reads spread
// across sessions instead of queueing on a single one.
type SFTPClientPool struct {
	clients chan *sftp.Client // channel-based semaphore for pool
	size    int
	mu      sync.Mutex // protects closed and sends on clients
	closed  bool
}

// NewSFTPClientPool creates size sessions up front using newClient.
// If any session fails to open, those already created are closed.
func NewSFTPClientPool(size int, newClient func() (*sftp.Client, error)) (*SFTPClientPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pool size must be greater than 0, got %d", size) //nolint:err113 // Validation error with actual value
	}

	pool := &SFTPClientPool{
		clients: make(chan *sftp.Client, size),
		size:    size,
	}

	for i := range size {
		client, err := newClient()
		if err != nil {
			_ = pool.Close()
			return nil, fmt.Errorf("failed to create client %d/%d: %w", i+1, size, err)
		}
		pool.clients <- client
	}

	return pool, nil
}

// Acquire retrieves a session, blocking until one is released if all are
// in use. Returns ErrPoolClosed after Close.
func (p *SFTPClientPool) Acquire() (*sftp.Client, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.mu.Unlock()

	client, ok := <-p.clients
	if !ok {
		return nil, ErrPoolClosed
	}

	return client, nil
}

// Close closes every idle session. Sessions still checked out are closed
// when they are released. Close is idempotent.
func (p *SFTPClientPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.clients)
	p.mu.Unlock()

	var firstErr error
	for client := range p.clients {
		if err := client.Close(); err != nil && firstErr == nil { //nolint:noinlineerr // Cleanup
			firstErr = err
		}
	}

	return firstErr
}

// Release returns a session to the pool, or closes it if the pool is closed.
// Nil clients are ignored.
func (p *SFTPClientPool) Release(client *sftp.Client) {
	if client == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		_ = client.Close()
		return
	}

	select {
	case p.clients <- client:
	default:
		// More releases than acquires; drop the extra session
		_ = client.Close()
	}
}

// Size returns the number of sessions the pool was created with.
func (p *SFTPClientPool) Size() int {
	return p.size
}
