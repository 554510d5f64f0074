package renderer

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Standard is a frame-at-a-time renderer. Each Render erases the previous
// frame's lines and writes the new one, truncated to the terminal width. It
// does no cell diffing; frames small enough for a terminal UI repaint faster
// than they flicker, and anything fancier belongs in an external engine.
type Standard struct {
	mu        sync.Mutex
	out       *termenv.Output
	altScreen bool
	width     int
	lines     int    // line count of the frame currently on screen
	lastFrame string // skipped if rendered again unchanged
	started   bool
}

// StandardOption configures a [Standard] renderer.
type StandardOption func(*Standard)

// WithAltScreen makes the renderer run in the terminal's alternate screen
// buffer, restoring the shell's screen contents on Stop.
func WithAltScreen() StandardOption {
	return func(s *Standard) { s.altScreen = true }
}

// NewStandard returns a Standard renderer writing to w.
func NewStandard(w io.Writer, opts ...StandardOption) *Standard {
	s := &Standard{out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Standard) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	if s.altScreen {
		s.out.AltScreen()
		s.out.MoveCursor(1, 1)
	}
	s.out.HideCursor()
}

func (s *Standard) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.out.ShowCursor()
	if s.altScreen {
		s.out.ExitAltScreen()
	} else if s.lines > 0 {
		// Leave the shell prompt below the final frame.
		_, _ = s.out.WriteString("\r\n")
	}
}

func (s *Standard) Render(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || frame == s.lastFrame {
		return
	}

	if s.altScreen {
		s.out.ClearScreen()
	} else if s.lines > 0 {
		s.out.ClearLine()
		for i := 1; i < s.lines; i++ {
			s.out.CursorUp(1)
			s.out.ClearLine()
		}
		_, _ = s.out.WriteString("\r")
	}

	lines := strings.Split(frame, "\n")
	if s.width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, s.width, "")
		}
	}
	_, _ = s.out.WriteString(strings.Join(lines, "\r\n"))

	s.lines = len(lines)
	s.lastFrame = frame
}

func (s *Standard) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	// Force a repaint even if the next frame is byte-identical; the old
	// frame may have been truncated at the previous width.
	s.lastFrame = ""
}
