//go:build !windows

package backend

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// unixBackend is the POSIX implementation: termios raw mode on the input
// fd and SIGWINCH for resize notification.
type unixBackend struct {
	in  io.Reader
	out io.Writer

	inFile  *os.File // nil when in is not an *os.File
	outFile *os.File

	mu    sync.Mutex
	state *term.State // saved termios, nil when raw mode is not active
}

func newDefault(in io.Reader, out io.Writer) Backend {
	b := &unixBackend{in: in, out: out}
	if f, ok := in.(*os.File); ok {
		b.inFile = f
	}
	if f, ok := out.(*os.File); ok {
		b.outFile = f
	}
	return b
}

func (b *unixBackend) OpenInput() (io.Reader, error) {
	return b.in, nil
}

func (b *unixBackend) EnableModes() error {
	if b.inFile == nil || !isatty.IsTerminal(b.inFile.Fd()) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != nil {
		return nil
	}
	state, err := term.MakeRaw(b.inFile.Fd())
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	b.state = state
	return nil
}

func (b *unixBackend) RestoreModes() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == nil {
		return nil
	}
	state := b.state
	b.state = nil
	if err := term.Restore(b.inFile.Fd(), state); err != nil {
		return fmt.Errorf("restoring terminal modes: %w", err)
	}
	return nil
}

func (b *unixBackend) Size() (int, int, error) {
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

func (b *unixBackend) WatchResize(fn func(width, height int)) (func(), error) {
	if b.outFile == nil || !isatty.IsTerminal(b.outFile.Fd()) {
		return func() {}, nil
	}

	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-sig:
				if w, h, err := b.Size(); err == nil {
					fn(w, h)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sig)
			close(done)
		})
	}
	return stop, nil
}

func (b *unixBackend) Close() error {
	return nil
}
