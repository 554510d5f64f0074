// Package input provides the cancelable reader that owns a program's raw
// input stream. It turns a blocking byte stream into a pull-based sequence
// of chunks that a single consumer can wait on and that can be canceled or
// closed out from under that consumer at any time.
package input

import (
	"context"
	"errors"
	"io"
	"sync"

	localereader "github.com/mattn/go-localereader"
	"github.com/muesli/cancelreader"
)

// Reader errors. End of stream is reported as io.EOF, not as an error state:
// a stream that runs dry simply ends the sequence.
var (
	// ErrCanceled is returned by Next once the reader has been canceled,
	// including by a Cancel call that arrives while a Next is waiting. It
	// is an expected control-flow signal, not a fault.
	ErrCanceled = errors.New("input reader canceled")

	// ErrBusy is returned when a second Next call arrives while one is
	// already waiting. The reader supports exactly one consumer.
	ErrBusy = errors.New("input reader already has a pending read")
)

// State is the reader's lifecycle state. Open is the only non-terminal
// state; once a reader leaves it, no further chunks are delivered (Closed
// still drains chunks buffered before the close).
type State int

const (
	StateOpen State = iota
	StateCanceled
	StateClosed
	StateErrored
)

// Reader wraps a raw input stream in a cancelable chunk sequence. A pump
// goroutine consumes the stream and buffers chunks; the consumer pulls them
// one at a time with Next. Chunk boundaries match the underlying stream's
// read boundaries — the reader never re-chunks.
//
// The stream is wrapped in a [cancelreader.CancelReader] so cancellation can
// interrupt a read blocked on a terminal device, and in a locale-decoding
// reader so non-UTF-8 consoles still deliver UTF-8 to the decoder.
type Reader struct {
	cr cancelreader.CancelReader

	mu     sync.Mutex
	state  State
	cause  error    // terminal error, StateErrored only
	queue  [][]byte // chunks buffered ahead of the consumer
	busy   bool     // a Next call is in flight
	notify chan struct{}
}

// NewReader starts a reader over r. If r already implements
// [cancelreader.CancelReader] (platform backends provide their own), it is
// used directly; otherwise it is wrapped, which on terminal devices yields a
// reader whose blocked reads Cancel can interrupt.
func NewReader(r io.Reader) (*Reader, error) {
	cr, ok := r.(cancelreader.CancelReader)
	if !ok {
		var err error
		cr, err = cancelreader.NewReader(r)
		if err != nil {
			return nil, err
		}
	}

	rd := &Reader{
		cr:     cr,
		notify: make(chan struct{}, 1),
	}
	go rd.pump()
	return rd, nil
}

// Next returns the next chunk, waiting until one arrives, the stream ends,
// or the reader is canceled or fails — whichever happens first. It returns
// io.EOF once the sequence has ended, [ErrCanceled] if the reader was
// canceled, or the underlying stream's own error if the stream failed.
//
// Cancellation beats buffered data: after Cancel, Next reports ErrCanceled
// even if undelivered chunks remain. A graceful Close instead drains them.
//
// Only one Next may wait at a time; a concurrent call gets [ErrBusy]. The
// context covers only this call's wait — ctx expiring abandons the wait
// without changing the reader's state.
func (r *Reader) Next(ctx context.Context) ([]byte, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrBusy
	}
	r.busy = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	for {
		r.mu.Lock()
		switch r.state {
		case StateCanceled:
			r.mu.Unlock()
			return nil, ErrCanceled
		case StateErrored:
			cause := r.cause
			r.mu.Unlock()
			return nil, cause
		}
		if len(r.queue) > 0 {
			chunk := r.queue[0]
			r.queue = r.queue[1:]
			r.mu.Unlock()
			return chunk, nil
		}
		if r.state == StateClosed {
			r.mu.Unlock()
			return nil, io.EOF
		}
		r.mu.Unlock()

		select {
		case <-r.notify:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Cancel abandons the sequence. It returns true exactly once: on the call
// that transitions an open reader to StateCanceled, rejecting any waiting
// Next with [ErrCanceled]. Every later call, and any call on a reader that
// already ended naturally, returns false.
func (r *Reader) Cancel() bool {
	r.mu.Lock()
	if r.state != StateOpen {
		r.mu.Unlock()
		return false
	}
	r.state = StateCanceled
	r.signalLocked()
	r.mu.Unlock()

	r.cr.Cancel()
	return true
}

// Close ends the sequence gracefully: chunks buffered before the call are
// still delivered, chunks arriving after it are dropped, and Next returns
// io.EOF once the buffer drains. Closing twice, or after Cancel, is a no-op;
// a prior cancellation is not undone.
func (r *Reader) Close() {
	r.mu.Lock()
	if r.state != StateOpen {
		r.mu.Unlock()
		return
	}
	r.state = StateClosed
	r.signalLocked()
	r.mu.Unlock()

	r.cr.Cancel()
}

// State reports the reader's current lifecycle state.
func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Buffered reports how many chunks are queued ahead of the consumer.
func (r *Reader) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// pump moves chunks from the stream into the queue until the reader leaves
// StateOpen or the stream ends or fails.
func (r *Reader) pump() {
	src := localereader.NewReader(r.cr)
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			r.mu.Lock()
			if r.state == StateOpen {
				r.queue = append(r.queue, chunk)
				r.signalLocked()
			}
			r.mu.Unlock()
		}
		if err != nil {
			r.mu.Lock()
			switch {
			case errors.Is(err, cancelreader.ErrCanceled):
				// Cancel or Close already set the terminal state.
			case errors.Is(err, io.EOF):
				if r.state == StateOpen {
					r.state = StateClosed
				}
			default:
				if r.state == StateOpen {
					r.state = StateErrored
					// Kept verbatim so the consumer sees the
					// stream's own error, not a wrapper.
					r.cause = err
				}
			}
			r.signalLocked()
			r.mu.Unlock()
			return
		}
	}
}

// signalLocked wakes a waiting Next, if any. Callers hold r.mu; the buffered
// channel retains one wakeup so a signal sent between the consumer's state
// check and its wait is not lost.
func (r *Reader) signalLocked() {
	select {
	case r.notify <- struct{}{}:
	default:
	}
}
