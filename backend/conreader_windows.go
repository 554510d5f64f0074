//go:build windows

package backend

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/erikgeiser/coninput"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/windows"
)

// conReader reads console input records and exposes the key records as a
// byte stream. With ENABLE_VIRTUAL_TERMINAL_INPUT set the console encodes
// special keys as escape sequences spread over successive key records, so
// emitting each record's character reproduces the VT byte stream the input
// decoder expects. Window-buffer-size records are routed to the resize
// callback instead of the stream.
//
// conReader implements [cancelreader.CancelReader], so the input reader
// uses it directly instead of wrapping it in the generic fallback that
// cannot interrupt a blocked console read.
type conReader struct {
	conin    windows.Handle
	onResize func(width, height int)
	canceled atomic.Bool
	leftover []byte
}

func newConReader(conin windows.Handle, onResize func(width, height int)) *conReader {
	return &conReader{conin: conin, onResize: onResize}
}

func (c *conReader) Read(p []byte) (int, error) {
	for {
		if c.canceled.Load() {
			return 0, cancelreader.ErrCanceled
		}
		if len(c.leftover) > 0 {
			n := copy(p, c.leftover)
			c.leftover = c.leftover[n:]
			return n, nil
		}

		events, err := coninput.ReadNConsoleInputs(c.conin, 16)
		if err != nil {
			if c.canceled.Load() {
				return 0, cancelreader.ErrCanceled
			}
			return 0, err
		}

		var buf []byte
		for _, event := range events {
			switch e := event.Unwrap().(type) {
			case coninput.KeyEventRecord:
				if !e.KeyDown || e.Char == 0 {
					continue
				}
				var enc [utf8.UTFMax]byte
				n := utf8.EncodeRune(enc[:], e.Char)
				repeat := int(e.RepeatCount)
				if repeat < 1 {
					repeat = 1
				}
				for i := 0; i < repeat; i++ {
					buf = append(buf, enc[:n]...)
				}
			case coninput.WindowBufferSizeEventRecord:
				c.onResize(int(e.Size.X), int(e.Size.Y))
			}
		}
		if len(buf) == 0 {
			continue
		}

		n := copy(p, buf)
		c.leftover = buf[n:]
		return n, nil
	}
}

// Cancel flags the reader as canceled and pokes the pending console read so
// a blocked Read observes the flag promptly.
func (c *conReader) Cancel() bool {
	c.canceled.Store(true)
	_ = windows.CancelIoEx(c.conin, nil)
	return true
}

func (c *conReader) Close() error {
	return nil
}
