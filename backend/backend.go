// Package backend defines the platform capability surface the runtime needs
// from a terminal: an input device, raw/virtual-terminal mode toggles, size
// queries, and resize notification. The runtime only ever talks to this
// interface; the platform-specific implementations live behind build tags
// and tests substitute fakes.
package backend

import "io"

// Backend is the terminal capability set consumed by the program runtime.
// The runtime calls OpenInput and EnableModes during startup (a failure
// there is fatal to the run), WatchResize once the loop is up, and
// RestoreModes then Close during teardown, where failures are reported
// best-effort and never mask a successful quit.
type Backend interface {
	// OpenInput returns the stream the input reader will own for the
	// program's lifetime.
	OpenInput() (io.Reader, error)

	// EnableModes puts the terminal into raw and/or virtual-terminal mode
	// as the platform requires. It is a no-op when the input is not a
	// terminal device.
	EnableModes() error

	// RestoreModes undoes EnableModes. Safe to call more than once and
	// when EnableModes never ran.
	RestoreModes() error

	// Size returns the terminal dimensions in cells.
	Size() (width, height int, err error)

	// WatchResize starts delivering resize notifications to fn and
	// returns a function that stops them. fn may be called from an
	// arbitrary goroutine.
	WatchResize(fn func(width, height int)) (stop func(), err error)

	// Close releases any platform handles the backend opened (a pseudo
	// console, a signal watcher). The input stream handed out by
	// OpenInput is not the backend's to close when it belongs to the
	// process, such as stdin.
	Close() error
}

// New returns the default platform backend for the given streams. Raw-mode
// toggling and resize watching engage only when the respective stream is a
// real terminal, so programs can run with pipes on either end.
func New(in io.Reader, out io.Writer) Backend {
	return newDefault(in, out)
}
