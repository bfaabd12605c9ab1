// Package lock provides per-repository mutual exclusion. Locks are held in
// process with a keyed mutex and, when a lock directory is configured, also
// as advisory file locks so that several gateway processes sharing one
// repository root serialize with each other.
package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/gofrs/flock"
	"github.com/m-mizutani/goerr/v2"
)

const fileLockRetryDelay = 50 * time.Millisecond

type entry struct {
	ch   chan struct{}
	refs int
}

type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
	dir     string
}

type Option func(*Locker)

// WithFileLock enables advisory file locks created under dir.
func WithFileLock(dir string) Option {
	return func(x *Locker) {
		x.dir = dir
	}
}

func New(options ...Option) *Locker {
	x := &Locker{
		entries: make(map[string]*entry),
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// Lock blocks until the lock for key is acquired or ctx is done. The returned
// function releases the lock and must be called exactly once.
func (x *Locker) Lock(ctx context.Context, key string) (func(), error) {
	e := x.acquireEntry(key)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		x.releaseEntry(key, e)
		return nil, goerr.Wrap(ctx.Err(), "interrupted while waiting for repository lock", goerr.V("key", key))
	}

	unlockLocal := func() {
		<-e.ch
		x.releaseEntry(key, e)
	}

	if x.dir == "" {
		return unlockLocal, nil
	}

	fl, err := x.lockFile(ctx, key)
	if err != nil {
		unlockLocal()
		return nil, err
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			logging.Default().Warn("failed to release file lock", slog.String("key", key), slog.Any("error", err))
		}
		unlockLocal()
	}, nil
}

func (x *Locker) lockFile(ctx context.Context, key string) (*flock.Flock, error) {
	if err := os.MkdirAll(x.dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create lock directory", goerr.V("dir", x.dir))
	}

	sum := sha256.Sum256([]byte(key))
	fl := flock.New(filepath.Join(x.dir, hex.EncodeToString(sum[:8])+".lock"))

	locked, err := fl.TryLockContext(ctx, fileLockRetryDelay)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to acquire file lock", goerr.V("key", key), goerr.V("path", fl.Path()))
	}
	if !locked {
		return nil, goerr.New("file lock was not acquired", goerr.V("key", key), goerr.V("path", fl.Path()))
	}

	return fl, nil
}

func (x *Locker) acquireEntry(key string) *entry {
	x.mu.Lock()
	defer x.mu.Unlock()

	e, ok := x.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		x.entries[key] = e
	}
	e.refs++
	return e
}

func (x *Locker) releaseEntry(key string, e *entry) {
	x.mu.Lock()
	defer x.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(x.entries, key)
	}
}

// Len returns the number of keys currently held or waited on.
func (x *Locker) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}
