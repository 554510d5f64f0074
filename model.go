package steep

// Model is the application's state machine. The runtime owns exactly one
// Model value at a time: the one most recently returned by Update. A model
// may mutate and return itself or return a fresh value; either way the
// returned value is the one used from then on.
//
// All three methods are invoked from the program's single loop goroutine,
// never concurrently, so implementations need no internal locking.
type Model interface {
	// Init is called once, before the first message, and returns the
	// command to run at startup. Return nil for none.
	Init() Cmd

	// Update handles a message and returns the next model plus an optional
	// follow-up command. The command is scheduled immediately;
	// its eventual message re-enters the loop like any other.
	Update(Msg) (Model, Cmd)

	// View renders the model as a string. It is called after every Update
	// that leaves the program running; the result is handed to the
	// renderer untouched.
	View() string
}
