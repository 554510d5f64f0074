package steep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/Iron-Ham/steep/backend"
	"github.com/Iron-Ham/steep/input"
	"github.com/Iron-Ham/steep/internal/logging"
	"github.com/Iron-Ham/steep/renderer"
)

// ErrProgramKilled is returned by Run when the program was stopped with
// [Program.Kill] instead of quitting gracefully.
var ErrProgramKilled = errors.New("program was killed")

// programState tracks the runtime lifecycle. Transitions are one-way:
// Initializing -> Running -> Quitting -> Stopped.
type programState int32

const (
	stateInitializing programState = iota
	stateRunning
	stateQuitting
	stateStopped
)

// Program is the event loop that owns a [Model]. It pumps messages from the
// input reader, completed commands, and platform signals into Update one at
// a time, renders after each step, and manages terminal setup and teardown
// around the whole run.
type Program struct {
	model Model

	in        io.Reader
	out       io.Writer
	backend   backend.Backend
	renderer  renderer.Renderer
	decoder   Decoder
	logger    *slog.Logger
	altScreen bool
	noSignals bool

	reader     *input.Reader
	stopResize func()

	msgs chan Msg
	errs chan error

	ctx    context.Context
	cancel context.CancelFunc

	state        atomic.Int32
	started      atomic.Bool
	shutdownOnce sync.Once
}

// NewProgram creates a program over the given model. The zero configuration
// reads from stdin, renders to stdout, and installs an interrupt handler;
// options adjust all of it.
func NewProgram(model Model, opts ...ProgramOption) *Program {
	p := &Program{
		model:  model,
		in:     os.Stdin,
		out:    os.Stdout,
		logger: logging.Nop(),
		msgs:   make(chan Msg),
		errs:   make(chan error, 1),
	}
	p.ctx, p.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(p)
	}

	if p.backend == nil {
		p.backend = backend.New(p.in, p.out)
	}
	if p.renderer == nil {
		var ropts []renderer.StandardOption
		if p.altScreen {
			ropts = append(ropts, renderer.WithAltScreen())
		}
		p.renderer = renderer.NewStandard(p.out, ropts...)
	}
	if p.decoder == nil {
		p.decoder = NewStandardDecoder()
	}
	return p
}

// Run drives the program until it quits and returns the final model. The
// error is nil on a graceful quit (including quit-on-interrupt), the setup
// or stream failure that aborted the run otherwise, or [ErrProgramKilled]
// after a Kill. Terminal modes are restored before Run returns, even when
// the model panics mid-update.
func (p *Program) Run() (Model, error) {
	if !p.started.CompareAndSwap(false, true) {
		return p.model, fmt.Errorf("program already started")
	}

	defer p.shutdown()

	stream, err := p.backend.OpenInput()
	if err != nil {
		return p.model, fmt.Errorf("opening input device: %w", err)
	}
	if err := p.backend.EnableModes(); err != nil {
		return p.model, fmt.Errorf("entering terminal modes: %w", err)
	}
	reader, err := input.NewReader(stream)
	if err != nil {
		return p.model, fmt.Errorf("starting input reader: %w", err)
	}
	p.reader = reader

	p.renderer.Start()

	stopResize, err := p.backend.WatchResize(func(width, height int) {
		p.Send(WindowSizeMsg{Width: width, Height: height})
	})
	if err != nil {
		return p.model, fmt.Errorf("watching for resize: %w", err)
	}
	p.stopResize = stopResize

	if !p.noSignals {
		p.watchSignals()
	}
	go p.readInput()

	p.state.Store(int32(stateRunning))

	if cmd := p.model.Init(); cmd != nil {
		p.spawn(cmd)
	}
	p.renderer.Render(p.model.View())

	if width, height, err := p.backend.Size(); err == nil {
		if p.process(WindowSizeMsg{Width: width, Height: height}) {
			return p.model, nil
		}
	}

	return p.loop()
}

// Send injects a message into the program from outside the loop, for
// example from a subsystem callback. Messages are delivered in the order
// their Send calls complete. After shutdown has begun, Send discards the
// message; a nil message is a no-op.
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	select {
	case p.msgs <- msg:
	case <-p.ctx.Done():
	}
}

// Quit asks the program to shut down gracefully, equivalent to a command
// resolving to [QuitMsg]. Calling it repeatedly, or once the program is
// already quitting, has no further effect.
func (p *Program) Quit() {
	go p.Send(QuitMsg{})
}

// Kill stops the program abruptly: the loop exits without draining pending
// messages and Run reports [ErrProgramKilled]. Terminal modes are still
// restored.
func (p *Program) Kill() {
	p.cancel()
}

// loop is the single goroutine on which every Update and View runs. Each
// iteration waits on all message sources at once and handles whichever is
// ready first; channel selection keeps any one source from starving the
// others.
func (p *Program) loop() (Model, error) {
	for {
		select {
		case <-p.ctx.Done():
			return p.model, ErrProgramKilled
		case err := <-p.errs:
			return p.model, err
		case msg := <-p.msgs:
			if p.process(msg) {
				return p.model, nil
			}
		}
	}
}

// process routes one message and reports whether the program should quit.
// BatchMsg values are unpacked and each element routed in order, so a quit
// inside a batch takes effect and later elements of that batch are dropped.
func (p *Program) process(msg Msg) bool {
	switch m := msg.(type) {
	case nil:
		return false
	case QuitMsg:
		return true
	case BatchMsg:
		for _, inner := range m {
			if p.process(inner) {
				return true
			}
		}
		return false
	case InterruptMsg:
		p.step(m)
		return true
	case WindowSizeMsg:
		p.renderer.Resize(m.Width, m.Height)
	}
	p.step(msg)
	return false
}

// step delivers one message to the model and renders the result.
func (p *Program) step(msg Msg) {
	model, cmd := p.model.Update(msg)
	if model != nil {
		p.model = model
	}
	if cmd != nil {
		p.spawn(cmd)
	}
	p.renderer.Render(p.model.View())
}

// spawn runs a command on its own goroutine and feeds its message, if any,
// back into the loop. Once shutdown has begun no new commands are accepted;
// commands started before a quit keep running, but their results are
// discarded.
func (p *Program) spawn(cmd Cmd) {
	if programState(p.state.Load()) > stateRunning {
		return
	}
	go func() {
		if msg := run(cmd); msg != nil {
			p.Send(msg)
		}
	}()
}

// readInput pumps decoded input messages into the loop until the stream
// ends, the reader is canceled, or the stream fails. A stream failure is
// fatal to the run; a graceful end just silences this source.
func (p *Program) readInput() {
	for {
		chunk, err := p.reader.Next(p.ctx)
		if err != nil {
			switch {
			case errors.Is(err, input.ErrCanceled),
				errors.Is(err, io.EOF),
				errors.Is(err, context.Canceled):
			default:
				select {
				case p.errs <- err:
				case <-p.ctx.Done():
				}
			}
			return
		}
		for _, msg := range p.decoder.Decode(chunk) {
			p.Send(msg)
		}
	}
}

// watchSignals forwards the first interrupt or termination signal into the
// loop as an [InterruptMsg].
func (p *Program) watchSignals() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sig)
		select {
		case <-sig:
			p.Send(InterruptMsg{})
		case <-p.ctx.Done():
		}
	}()
}

// shutdown tears the program down exactly once: cancel the input reader,
// stop the resize watcher, stop the renderer, and restore terminal modes.
// Teardown failures are logged rather than returned so they cannot mask a
// successful quit.
func (p *Program) shutdown() {
	p.shutdownOnce.Do(func() {
		p.state.Store(int32(stateQuitting))
		p.cancel()
		if p.reader != nil {
			p.reader.Cancel()
		}
		if p.stopResize != nil {
			p.stopResize()
		}
		p.renderer.Stop()
		if err := p.backend.RestoreModes(); err != nil {
			p.logger.Warn("failed to restore terminal modes", "error", err)
		}
		if err := p.backend.Close(); err != nil {
			p.logger.Warn("failed to close terminal backend", "error", err)
		}
		p.state.Store(int32(stateStopped))
	})
}
