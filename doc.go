// Package steep is the runtime core of a message-driven terminal UI
// framework. It owns the program loop that turns raw terminal input, timers,
// and OS signals into typed messages, feeds them to an application-supplied
// [Model], and schedules the side effects ([Cmd] values) the model requests.
//
// # Main Types
//
//   - [Msg]: a typed event value flowing through the program loop
//   - [Cmd]: a deferred unit of asynchronous work producing at most one Msg
//   - [Model]: the application state machine (Init/Update/View)
//   - [Program]: the event loop that ties the three together
//
// # The Loop
//
// A Program pulls the next available message from whichever source produced
// one first: a decoded input chunk, a completed command's result, or an
// out-of-band platform signal such as a terminal resize. Each message is
// delivered to Model.Update exactly once, on a single goroutine, so models
// need no locking. The model returned by Update replaces the previous one,
// and the follow-up command, if any, is scheduled immediately.
//
// # Commands
//
// Commands never run on the loop goroutine. Combinators compose them:
// [Batch] runs commands concurrently and collects their results into a
// [BatchMsg]; [Sequence] runs them strictly in order and stops at the first
// command that produces a message; [Tick] and [Every] schedule timer fires;
// [Quit] asks the program to shut down.
//
// # Platform Access
//
// All terminal-mode toggling and resize notification goes through the
// [backend.Backend] capability surface, injected at construction time. The
// default backend is selected by platform at build time; tests inject fakes.
//
// # Basic Usage
//
//	type model struct{ count int }
//
//	func (m model) Init() steep.Cmd { return nil }
//
//	func (m model) Update(msg steep.Msg) (steep.Model, steep.Cmd) {
//	    switch msg := msg.(type) {
//	    case steep.KeyMsg:
//	        if msg.String() == "q" {
//	            return m, steep.Quit
//	        }
//	        m.count++
//	    }
//	    return m, nil
//	}
//
//	func (m model) View() string { return fmt.Sprintf("%d keys pressed", m.count) }
//
//	func main() {
//	    if _, err := steep.NewProgram(model{}).Run(); err != nil {
//	        fmt.Fprintln(os.Stderr, err)
//	        os.Exit(1)
//	    }
//	}
package steep
