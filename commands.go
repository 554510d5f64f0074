package steep

import (
	"fmt"
	"time"
)

// Cmd is a deferred unit of work that produces at most one message. Commands
// run on their own goroutines, never on the loop goroutine, and hold no
// reference back to the model. A nil Cmd means "no effect" and is accepted
// everywhere a Cmd can appear, including inside combinators.
type Cmd func() Msg

// Quit is the command that requests an orderly program shutdown. It resolves
// immediately to [QuitMsg], and combinators pass that value through
// unchanged.
func Quit() Msg {
	return QuitMsg{}
}

// Batch runs the given commands concurrently and resolves to a [BatchMsg]
// holding their non-nil results in completion order.
//
// Nil commands are dropped first. With nothing left Batch returns nil; with
// exactly one command left it returns that command unwrapped. If every
// remaining command resolves to nil, the batch itself resolves to nil.
func Batch(cmds ...Cmd) Cmd {
	valid := compact(cmds)
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func() Msg {
		results := make(chan Msg, len(valid))
		for _, cmd := range valid {
			go func(cmd Cmd) {
				results <- run(cmd)
			}(cmd)
		}

		var batch BatchMsg
		for range valid {
			if msg := <-results; msg != nil {
				batch = append(batch, msg)
			}
		}
		if len(batch) == 0 {
			return nil
		}
		return batch
	}
}

// Sequence runs the given commands strictly in order, one at a time, each
// started only after the previous one has fully resolved. The first command
// to resolve to a non-nil message ends the sequence and that message becomes
// the result; later commands are never started. If every command resolves to
// nil, Sequence resolves to nil.
//
// Nil filtering and the empty/single shortcuts match [Batch].
func Sequence(cmds ...Cmd) Cmd {
	valid := compact(cmds)
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func() Msg {
		for _, cmd := range valid {
			if msg := run(cmd); msg != nil {
				return msg
			}
		}
		return nil
	}
}

// Tick returns a command that waits at least d and then resolves to fn(t),
// where t is the time the timer fired. The delay is relative to when the
// command starts running, not to when Tick was called.
func Tick(d time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		timer := time.NewTimer(d)
		defer timer.Stop()
		return fn(<-timer.C)
	}
}

// Every returns a command that fires once, aligned to the next wall-clock
// multiple of d (e.g. Every(time.Minute, ...) fires at the top of the next
// minute). Reissue it from Update to tick on every boundary. Aside from the
// alignment it has the same single-fire contract as [Tick]; applications
// that want a plain relative delay should use Tick.
func Every(d time.Duration, fn func(time.Time) Msg) Cmd {
	return func() Msg {
		now := time.Now()
		timer := time.NewTimer(now.Truncate(d).Add(d).Sub(now))
		defer timer.Stop()
		return fn(<-timer.C)
	}
}

// compact returns cmds with nil entries removed.
func compact(cmds []Cmd) []Cmd {
	valid := make([]Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd != nil {
			valid = append(valid, cmd)
		}
	}
	return valid
}

// run executes a command, converting a panic into an [ErrMsg] so a failing
// command can never unwind into the scheduler or a combinator.
func run(cmd Cmd) (msg Msg) {
	defer func() {
		if r := recover(); r != nil {
			msg = ErrMsg{Err: fmt.Errorf("command panicked: %v", r)}
		}
	}()
	return cmd()
}
