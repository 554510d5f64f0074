package steep

// Msg is an event value delivered to Model.Update. The runtime produces a
// small closed set of built-in messages (keys, pastes, window sizes, quit)
// and forwards any application-defined message value unchanged.
type Msg interface{}

// QuitMsg instructs the program to begin an orderly shutdown. Applications
// normally produce it through the [Quit] command. The runtime consumes it
// itself; it is never delivered to Update.
type QuitMsg struct{}

// InterruptMsg is delivered when the process receives an interrupt or
// termination signal. It is delivered to the model once and then the program
// quits, so the model's last Update can persist state before shutdown.
type InterruptMsg struct{}

// WindowSizeMsg reports the terminal dimensions. One is delivered shortly
// after startup and another for every resize notification from the platform
// backend, in the order the platform delivered them.
type WindowSizeMsg struct {
	Width  int
	Height int
}

// PasteMsg carries the text of a bracketed paste as a single message,
// however many chunks it arrived in.
type PasteMsg string

// BatchMsg is the aggregate result of a [Batch] command: the non-nil
// messages of its member commands, in completion order. The runtime unpacks
// a BatchMsg and delivers each element through Update individually, so a
// batched Quit still quits.
//
// Completion order is deliberate: preserving submission order would cost an
// indexed collection step for an ordering no consumer may rely on anyway.
type BatchMsg []Msg

// ErrMsg wraps an error travelling through the loop as an ordinary message.
// Commands that fail resolve to one of these (or any error value of the
// application's choosing); the runtime imposes no special handling beyond
// delivery to Update.
type ErrMsg struct {
	Err error
}

func (e ErrMsg) Error() string { return e.Err.Error() }

// Unwrap supports errors.Is/As against the wrapped error.
func (e ErrMsg) Unwrap() error { return e.Err }
