package steep

import (
	"io"
	"log/slog"

	"github.com/Iron-Ham/steep/backend"
	"github.com/Iron-Ham/steep/internal/logging"
	"github.com/Iron-Ham/steep/renderer"
)

// ProgramOption configures a [Program] at construction time.
type ProgramOption func(*Program)

// WithInput sets the program's input stream. Defaults to os.Stdin. When the
// stream is not a terminal device, raw-mode toggling is skipped and the
// stream is consumed as-is.
func WithInput(r io.Reader) ProgramOption {
	return func(p *Program) { p.in = r }
}

// WithOutput sets the stream frames are rendered to. Defaults to os.Stdout.
func WithOutput(w io.Writer) ProgramOption {
	return func(p *Program) { p.out = w }
}

// WithBackend replaces the platform terminal backend. The default is chosen
// per platform by [backend.New]; tests use this to inject fakes.
func WithBackend(b backend.Backend) ProgramOption {
	return func(p *Program) { p.backend = b }
}

// WithRenderer replaces the rendering collaborator. The default is the
// standard full-frame renderer over the program's output.
func WithRenderer(r renderer.Renderer) ProgramOption {
	return func(p *Program) { p.renderer = r }
}

// WithDecoder replaces the input decoder. The default covers the common
// escape-sequence and bracketed-paste grammar.
func WithDecoder(d Decoder) ProgramOption {
	return func(p *Program) { p.decoder = d }
}

// WithLogger sets the logger for best-effort diagnostics such as teardown
// failures. By default nothing is logged.
func WithLogger(l *slog.Logger) ProgramOption {
	return func(p *Program) { p.logger = l }
}

// WithLogOutput is a convenience form of [WithLogger] that logs JSON records
// to w at the given level (one of logging's DEBUG/INFO/WARN/ERROR).
func WithLogOutput(w io.Writer, level string) ProgramOption {
	return func(p *Program) { p.logger = logging.New(w, level) }
}

// WithAltScreen makes the default renderer use the terminal's alternate
// screen buffer. It has no effect when a custom renderer is supplied.
func WithAltScreen() ProgramOption {
	return func(p *Program) { p.altScreen = true }
}

// WithoutSignalHandler disables the interrupt/termination signal handler.
// The host application then owns signal handling and can call Quit itself.
func WithoutSignalHandler() ProgramOption {
	return func(p *Program) { p.noSignals = true }
}
