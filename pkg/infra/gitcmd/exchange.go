package gitcmd

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/degit-io/degit-riptide/pkg/utils/logging"
)

// State is the lifecycle of one service process.
type State int

const (
	StateSpawned State = iota
	StateStreaming
	StateExitedOK
	StateExitedError
	StateKilled
)

func (x State) String() string {
	switch x {
	case StateSpawned:
		return "spawned"
	case StateStreaming:
		return "streaming"
	case StateExitedOK:
		return "exited_ok"
	case StateExitedError:
		return "exited_error"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (x State) Terminal() bool {
	return x == StateExitedOK || x == StateExitedError || x == StateKilled
}

type exchange struct {
	logger   *slog.Logger
	state    State
	exitCode int
	started  time.Time
}

func newExchange(ctx context.Context, req *ServiceRequest) *exchange {
	return &exchange{
		logger: logging.From(ctx).With(
			slog.String("service", string(req.Service)),
			slog.Bool("advertise", req.Advertise),
		),
		state:    StateSpawned,
		exitCode: -1,
		started:  time.Now(),
	}
}

func (x *exchange) set(s State) {
	if x.state.Terminal() {
		return
	}
	x.logger.Debug("git service state", slog.String("from", x.state.String()), slog.String("to", s.String()))
	x.state = s
}

func (x *exchange) finish(s State, exitCode int) {
	x.set(s)
	x.exitCode = exitCode
}

func (x *exchange) result(stderr *tail) *Result {
	return &Result{
		State:    x.state,
		ExitCode: x.exitCode,
		Stderr:   stderr.String(),
		Elapsed:  time.Since(x.started),
	}
}

// tail keeps the last max bytes written to it.
type tail struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func newTail(max int) *tail {
	return &tail{max: max}
}

func (x *tail) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.buf = append(x.buf, p...)
	if over := len(x.buf) - x.max; over > 0 {
		x.buf = append(x.buf[:0], x.buf[over:]...)
	}
	return len(p), nil
}

func (x *tail) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return string(x.buf)
}
