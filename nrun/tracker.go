// Package nrun tracks whether the process should keep running,
// and with which exit code it should stop.
package nrun

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Tracker is a quit flag shared by every part of the process.
// All methods are safe for concurrent use.
type Tracker struct {
	log *slog.Logger

	running  atomic.Bool
	exitCode atomic.Int32

	doneOnce sync.Once
	done     chan struct{}
}

// New returns a Tracker that is running, with exit code 0.
func New(log *slog.Logger) *Tracker {
	t := &Tracker{
		log:  log,
		done: make(chan struct{}),
	}
	t.running.Store(true)
	return t
}

// Quit stops the tracker without changing the exit code.
func (t *Tracker) Quit(reason string) {
	t.running.Store(false)
	t.doneOnce.Do(func() { close(t.done) })

	t.log.Info("Quit", "reason", reason)
}

// QuitWithCode sets the exit code and stops the tracker.
// A later call overwrites the exit code.
//
// Exit codes are 32-bit, as on every platform's process exit status.
func (t *Tracker) QuitWithCode(code int32, reason string) {
	// Store the code first so that anyone observing the quit
	// also observes the code.
	t.exitCode.Store(code)
	t.running.Store(false)
	t.doneOnce.Do(func() { close(t.done) })

	t.log.Info("Quit with code", "code", code, "reason", reason)
}

// IsRunning reports whether no quit has been requested.
func (t *Tracker) IsRunning() bool {
	return t.running.Load()
}

// ExitCode returns the most recent code passed to QuitWithCode, or 0.
// Convert it with int when passing it to [os.Exit].
func (t *Tracker) ExitCode() int32 {
	return t.exitCode.Load()
}

// Done returns a channel that is closed on the first quit.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}

var defaultTracker = sync.OnceValue(func() *Tracker {
	return New(slog.Default().With("sys", "running_tracker"))
})

// Default returns the process-wide Tracker, creating it on first use.
func Default() *Tracker {
	return defaultTracker()
}
