// Package gitcmd runs the native git binary. Smart-HTTP services are run in
// stateless-RPC mode with their output streamed to the caller as it is
// produced.
package gitcmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/degit-io/degit-riptide/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMaxProcesses = 32
	defaultWaitDelay    = 5 * time.Second
	stderrTailSize      = 4096
)

type Client interface {
	RunService(ctx context.Context, req *ServiceRequest) (*Result, error)
	CreateBundle(ctx context.Context, repoPath, dst string) error
	CloneMirror(ctx context.Context, src, dst string) error
	Version(ctx context.Context) (string, error)
}

// ServiceRequest is one invocation of upload-pack or receive-pack.
type ServiceRequest struct {
	Service   types.Service
	RepoPath  string
	Advertise bool
	Stdin     io.Reader
	Stdout    io.Writer
}

// Result describes how a service process ended.
type Result struct {
	State    State
	ExitCode int
	Stderr   string
	Elapsed  time.Duration
}

type client struct {
	path      string
	sem       *semaphore.Weighted
	timeout   time.Duration
	waitDelay time.Duration
}

type Option func(*client)

// WithMaxProcesses bounds the number of git processes running at once.
func WithMaxProcesses(n int64) Option {
	return func(x *client) {
		if n > 0 {
			x.sem = semaphore.NewWeighted(n)
		}
	}
}

// WithTimeout bounds the run time of one git process. Zero means no bound
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(x *client) {
		x.timeout = d
	}
}

// WithWaitDelay sets how long to wait for I/O to drain after the process is
// gone before the pipes are forcibly closed.
func WithWaitDelay(d time.Duration) Option {
	return func(x *client) {
		x.waitDelay = d
	}
}

func New(path string, options ...Option) Client {
	x := &client{
		path:      path,
		sem:       semaphore.NewWeighted(DefaultMaxProcesses),
		waitDelay: defaultWaitDelay,
	}
	for _, opt := range options {
		opt(x)
	}
	return x
}

func (x *client) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, x.path, args...)
	cmd.WaitDelay = x.waitDelay
	return cmd
}

func (x *client) acquire(ctx context.Context) (context.Context, func(), error) {
	if err := x.sem.Acquire(ctx, 1); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to acquire git process slot")
	}

	cancel := func() {}
	if x.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
	}

	return ctx, func() {
		cancel()
		x.sem.Release(1)
	}, nil
}

// RunService spawns the service and blocks until the process has exited and
// all of its output has been written to req.Stdout. A non-zero exit is
// reported as types.ErrServiceFailure.
func (x *client) RunService(ctx context.Context, req *ServiceRequest) (*Result, error) {
	ctx, release, err := x.acquire(ctx)
	if err != nil {
		return &Result{State: StateKilled, ExitCode: -1}, err
	}
	defer release()

	args := []string{req.Service.SubCommand(), "--stateless-rpc"}
	if req.Advertise {
		args = append(args, "--advertise-refs")
	}
	args = append(args, req.RepoPath)

	stderr := newTail(stderrTailSize)
	cmd := x.command(ctx, args...)
	cmd.Stdout = req.Stdout
	cmd.Stderr = stderr

	ex := newExchange(ctx, req)

	// Stdin is fed from our own goroutine. exec's copy goroutine would keep
	// Wait blocked on a stalled reader after the process is gone.
	var stdin io.WriteCloser
	if req.Stdin != nil {
		if stdin, err = cmd.StdinPipe(); err != nil {
			ex.finish(StateExitedError, -1)
			return ex.result(stderr), goerr.Wrap(err, "failed to open git service stdin",
				goerr.V("service", req.Service),
				goerr.V("path", req.RepoPath),
			)
		}
	}

	if err := cmd.Start(); err != nil {
		ex.finish(StateExitedError, -1)
		return ex.result(stderr), goerr.Wrap(err, "failed to start git service",
			goerr.V("service", req.Service),
			goerr.V("path", req.RepoPath),
		)
	}
	ex.set(StateStreaming)

	if stdin != nil {
		go feedStdin(ctx, stdin, req.Stdin)
	}

	waitErr := cmd.Wait()
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case waitErr == nil:
		ex.finish(StateExitedOK, exitCode)
		return ex.result(stderr), nil

	case ctx.Err() != nil:
		closeReader(req.Stdin)
		ex.finish(StateKilled, exitCode)
		return ex.result(stderr), goerr.Wrap(ctx.Err(), "git service was killed",
			goerr.V("service", req.Service),
			goerr.V("path", req.RepoPath),
		)

	default:
		ex.finish(StateExitedError, exitCode)
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return ex.result(stderr), goerr.Wrap(types.ErrServiceFailure, "git service exited with error",
				goerr.V("service", req.Service),
				goerr.V("path", req.RepoPath),
				goerr.V("exit_code", exitCode),
				goerr.V("stderr", stderr.String()),
			)
		}
		return ex.result(stderr), goerr.Wrap(waitErr, "git service stream failed",
			goerr.V("service", req.Service),
			goerr.V("path", req.RepoPath),
		)
	}
}

// feedStdin copies src into the process. When ctx is done both ends are
// closed, which releases a blocked Read on src if src is an io.Closer.
func feedStdin(ctx context.Context, dst io.WriteCloser, src io.Reader) {
	stop := context.AfterFunc(ctx, func() {
		_ = dst.Close()
		closeReader(src)
	})
	defer stop()

	if _, err := io.Copy(dst, src); err != nil && ctx.Err() == nil {
		logging.From(ctx).Debug("git service stdin closed early", slog.Any("error", err))
	}
	_ = dst.Close()
}

func closeReader(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		_ = c.Close()
	}
}

// CreateBundle writes a bundle of every ref in repoPath to dst.
func (x *client) CreateBundle(ctx context.Context, repoPath, dst string) error {
	dst, err := filepath.Abs(dst)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve bundle path", goerr.V("dst", dst))
	}
	return x.run(ctx, "-C", repoPath, "bundle", "create", dst, "--all")
}

// CloneMirror creates the bare mirror dst from src and detaches it from src
// so that the result is a standalone repository.
func (x *client) CloneMirror(ctx context.Context, src, dst string) error {
	if err := x.run(ctx, "clone", "--quiet", "--mirror", src, dst); err != nil {
		return err
	}
	return x.run(ctx, "-C", dst, "remote", "remove", "origin")
}

func (x *client) Version(ctx context.Context) (string, error) {
	out, err := x.command(ctx, "--version").Output()
	if err != nil {
		return "", goerr.Wrap(err, "failed to run git", goerr.V("path", x.path))
	}
	return string(trimNewline(out)), nil
}

func (x *client) run(ctx context.Context, args ...string) error {
	ctx, release, err := x.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	stderr := newTail(stderrTailSize)
	cmd := x.command(ctx, args...)
	cmd.Stderr = stderr

	started := time.Now()
	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "git command failed",
			goerr.V("args", args),
			goerr.V("stderr", stderr.String()),
		)
	}

	logging.From(ctx).Debug("git command done",
		slog.Any("args", args),
		slog.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
