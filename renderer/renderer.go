// Package renderer defines the rendering collaborator the program runtime
// hands each frame to, plus a standard implementation that repaints whole
// frames in place. Diffing engines and layout systems live above this
// package; the runtime itself never writes to the terminal.
package renderer

// Renderer consumes the frames a program's model produces. All methods are
// called from the program's loop goroutine except Resize, which may arrive
// from the resize watcher; implementations synchronize internally.
type Renderer interface {
	// Start prepares the output for frames (hide cursor, enter the alt
	// screen when configured).
	Start()

	// Stop undoes Start and leaves the terminal usable for the shell.
	// The final frame remains visible when not using the alt screen.
	Stop()

	// Render displays a frame, replacing the previous one.
	Render(frame string)

	// Resize informs the renderer of new terminal dimensions.
	Resize(width, height int)
}
