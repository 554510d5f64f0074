//go:build windows

package backend

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/x/term"
	"golang.org/x/sys/windows"
)

// windowsBackend drives the Windows console API directly: virtual-terminal
// flags on both console buffers, and resize notification via the
// WINDOW_BUFFER_SIZE records the console reader observes on the input
// buffer (see conreader_windows.go).
type windowsBackend struct {
	in  io.Reader
	out io.Writer

	inFile  *os.File
	outFile *os.File

	mu          sync.Mutex
	reader      *conReader
	inModeSet   bool
	outModeSet  bool
	prevInMode  uint32
	prevOutMode uint32
	resizeFn    func(width, height int)
}

func newDefault(in io.Reader, out io.Writer) Backend {
	b := &windowsBackend{in: in, out: out}
	if f, ok := in.(*os.File); ok {
		b.inFile = f
	}
	if f, ok := out.(*os.File); ok {
		b.outFile = f
	}
	return b
}

// OpenInput returns a console-record reader when stdin is a real console,
// so cancellation and resize records work; otherwise the stream is handed
// out as-is (a pipe needs neither).
func (b *windowsBackend) OpenInput() (io.Reader, error) {
	if b.inFile == nil {
		return b.in, nil
	}
	h := windows.Handle(b.inFile.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		// Not a console; plain stream.
		return b.in, nil
	}

	r := newConReader(h, b.notifyResize)
	b.mu.Lock()
	b.reader = r
	b.mu.Unlock()
	return r, nil
}

func (b *windowsBackend) EnableModes() error {
	if err := b.enableInputMode(); err != nil {
		return err
	}
	return b.enableOutputMode()
}

func (b *windowsBackend) enableInputMode() error {
	if b.inFile == nil {
		return nil
	}
	h := windows.Handle(b.inFile.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inModeSet {
		return nil
	}
	b.prevInMode = mode

	raw := mode &^ (windows.ENABLE_ECHO_INPUT |
		windows.ENABLE_LINE_INPUT |
		windows.ENABLE_PROCESSED_INPUT |
		windows.ENABLE_MOUSE_INPUT)
	raw |= windows.ENABLE_WINDOW_INPUT | windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(h, raw); err != nil {
		return fmt.Errorf("setting console input mode: %w", err)
	}
	b.inModeSet = true
	return nil
}

func (b *windowsBackend) enableOutputMode() error {
	if b.outFile == nil {
		return nil
	}
	h := windows.Handle(b.outFile.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.outModeSet {
		return nil
	}
	b.prevOutMode = mode

	vt := mode | windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING | windows.ENABLE_PROCESSED_OUTPUT
	if err := windows.SetConsoleMode(h, vt); err != nil {
		return fmt.Errorf("setting console output mode: %w", err)
	}
	b.outModeSet = true
	return nil
}

func (b *windowsBackend) RestoreModes() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var first error
	if b.inModeSet {
		b.inModeSet = false
		h := windows.Handle(b.inFile.Fd())
		if err := windows.SetConsoleMode(h, b.prevInMode); err != nil && first == nil {
			first = fmt.Errorf("restoring console input mode: %w", err)
		}
	}
	if b.outModeSet {
		b.outModeSet = false
		h := windows.Handle(b.outFile.Fd())
		if err := windows.SetConsoleMode(h, b.prevOutMode); err != nil && first == nil {
			first = fmt.Errorf("restoring console output mode: %w", err)
		}
	}
	return first
}

func (b *windowsBackend) Size() (int, int, error) {
	f := b.outFile
	if f == nil {
		return 0, 0, fmt.Errorf("output is not a terminal")
	}
	w, h, err := term.GetSize(f.Fd())
	if err != nil {
		return 0, 0, fmt.Errorf("querying terminal size: %w", err)
	}
	return w, h, nil
}

// WatchResize registers fn with the console reader, which sees the window
// buffer size records interleaved with key records on the input buffer.
func (b *windowsBackend) WatchResize(fn func(width, height int)) (func(), error) {
	b.mu.Lock()
	b.resizeFn = fn
	b.mu.Unlock()

	stop := func() {
		b.mu.Lock()
		b.resizeFn = nil
		b.mu.Unlock()
	}
	return stop, nil
}

func (b *windowsBackend) notifyResize(width, height int) {
	b.mu.Lock()
	fn := b.resizeFn
	b.mu.Unlock()
	if fn != nil {
		fn(width, height)
	}
}

func (b *windowsBackend) Close() error {
	b.mu.Lock()
	r := b.reader
	b.reader = nil
	b.mu.Unlock()
	if r != nil {
		r.Cancel()
	}
	return nil
}
