// Package extractor runs the external pathing map extraction tool as a
// background process whose completion is polled, never waited on.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Placeholder in configured arguments that is replaced by the dat file path
const Placeholder = "{datfile}"

// Status is the state of an extraction task
type Status int

const (
	Idle Status = iota
	Running
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrRunning is returned when a task is started twice
var ErrRunning = errors.New("extraction already running")

// Task runs one extractor process at a time
type Task struct {
	command string
	args    []string
	dir     string

	mu       sync.Mutex
	status   Status
	err      error
	output   bytes.Buffer
	started  time.Time
	finished time.Time
	done     chan struct{}
}

// NewTask creates a task for the given command. args may contain Placeholder.
func NewTask(command string, args []string) *Task {
	return &Task{
		command: command,
		args:    append([]string(nil), args...),
	}
}

// SetDir sets the working directory of the extractor process
func (t *Task) SetDir(dir string) {
	t.dir = dir
}

// Args expands the configured arguments for datPath
func (t *Task) Args(datPath string) []string {
	out := make([]string, len(t.args))
	for i, a := range t.args {
		out[i] = strings.ReplaceAll(a, Placeholder, datPath)
	}
	return out
}

// Start launches the extractor for datPath. It returns immediately; use Poll
// to observe completion.
func (t *Task) Start(datPath string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == Running {
		return ErrRunning
	}

	path, err := exec.LookPath(t.command)
	if err != nil {
		return fmt.Errorf("extractor %q not found: %w", t.command, err)
	}

	cmd := exec.Command(path, t.Args(datPath)...)
	cmd.Dir = t.dir
	t.output.Reset()
	cmd.Stdout = &lockedWriter{mu: &t.mu, buf: &t.output}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start extractor: %w", err)
	}

	t.status = Running
	t.err = nil
	t.started = time.Now()
	t.done = make(chan struct{})

	go t.wait(cmd, t.done)
	return nil
}

func (t *Task) wait(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	t.mu.Lock()
	t.finished = time.Now()
	if err != nil {
		t.status = Failed
		t.err = fmt.Errorf("extractor exited: %w", err)
	} else {
		t.status = Succeeded
	}
	t.mu.Unlock()

	close(done)
}

// Poll returns the current status without blocking
func (t *Task) Poll() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Done returns a channel closed when the running process exits, or nil if
// nothing was started
func (t *Task) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Err returns the failure of the last run
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Output returns everything the process wrote to stdout and stderr
func (t *Task) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.output.String()
}

// Elapsed returns how long the current or last run took
func (t *Task) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.started.IsZero():
		return 0
	case t.status == Running:
		return time.Since(t.started)
	default:
		return t.finished.Sub(t.started)
	}
}

type lockedWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}
