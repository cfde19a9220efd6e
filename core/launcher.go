package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	logger "sypiv.io/sypiv-hpc/logger"
)

// Launch states
const (
	StatePending   = "pending"
	StateCompleted = "completed"
	StateFailed    = "failed"

	EventComplete = "complete"
	EventFail     = "fail"
)

// Shell conventions for processes that never ran or died on a signal
const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
	ExitSignalBase    = 128
)

type Launcher struct {
	Interpreter string
	Module      string
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	// Env is the child environment; nil inherits the launcher's own.
	Env []string
}

// Result reports one finished launch. Err is set when the child could not
// be started or exited abnormally; Code is always what the launcher should
// exit with.
type Result struct {
	RunID string `json:"run_id"`
	Code  int    `json:"code"`
	State string `json:"state"`
	Err   error  `json:"-"`
}

func NewLauncher(getenv func(string) string) *Launcher {
	return &Launcher{
		Interpreter: Getenv(getenv, PythonEnv, DefaultPython),
		Module:      BatchModule,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Command is the full argv the launcher executes for p.
func (l *Launcher) Command(p Params) []string {
	return append([]string{l.Interpreter, "-m", l.Module}, p.Args()...)
}

func newRunState(runID string) *fsm.FSM {
	return fsm.NewFSM(
		StatePending,
		fsm.Events{
			{Name: EventComplete, Src: []string{StatePending}, Dst: StateCompleted},
			{Name: EventFail, Src: []string{StatePending}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.DebugPrintf("run %s: %s -> %s", runID, e.Src, e.Dst)
			},
		},
	)
}

// Run executes batch_sypiv once and waits for it. The returned error is
// only non-nil when p is unusable; every failure of the child itself is
// reported through Result.Code. Cancelling ctx sends SIGTERM to the child.
func (l *Launcher) Run(ctx context.Context, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{Code: 1, State: StateFailed}, fmt.Errorf("run: invalid parameters: %w", err)
	}
	result := Result{RunID: uuid.New().String()}
	state := newRunState(result.RunID)

	argv := l.Command(p)
	logger.InfoObj("command", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	env := l.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(append([]string{}, env...), RunIDEnv+"="+result.RunID)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}

	result.Code, result.Err = exitCode(cmd.Run())

	event := EventComplete
	if result.Code != 0 {
		event = EventFail
	}
	// the transition is recorded even when ctx was cancelled
	if err := state.Event(context.WithoutCancel(ctx), event); err != nil {
		logger.WarningPrintf("run %s: state transition: %v", result.RunID, err)
	}
	result.State = state.Current()

	if result.Err != nil {
		logger.ErrorPrintf("run %s: %v", result.RunID, result.Err)
	}
	logger.InfoPrintf("run %s: exit %d", result.RunID, result.Code)
	return result, nil
}

func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return ExitSignalBase + int(status.Signal()), exitErr
		}
		// non-zero exit is a result, not an error
		return exitErr.ExitCode(), nil
	}
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return ExitNotFound, err
	case errors.Is(err, fs.ErrPermission):
		return ExitCannotExecute, err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// child trapped the forwarded SIGTERM and exited cleanly
		return ExitSignalBase + int(syscall.SIGTERM), err
	}
	return 1, err
}
