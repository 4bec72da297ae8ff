package field

import "errors"

// Context carries the full containers for one mapper pass. Pipes read
// and write by key, which may address any part of these holders, so the
// whole container travels with the session rather than one field's
// slice of it.
type Context struct {
	// Data is the mapped/input representation (marshal reads from it).
	Data any

	// Obj is the native object (serialize reads from it).
	Obj any

	// Output is the destination container the current direction writes
	// into: the native object for marshal, the mapped dict for serialize.
	Output any
}

// Change reports what a marshal call found at a field's destination
// slot. A nil slot means unset: no prior value recorded (Old) or no
// change at all (both).
type Change struct {
	Old any
	New any
}

// Session threads one field's state through a single pipeline run. It
// is created per field per direction and discarded afterwards; no two
// fields' sessions interleave.
type Session struct {
	// Field is the descriptor being processed.
	Field *Field

	// Data is the working value, overwritten in place by each pipe.
	Data any

	// Ctx holds the pass's full input/output containers.
	Ctx *Context

	change Change
}

// Change returns the old/new pair recorded by the memoization stage of
// a marshal run.
func (s *Session) Change() Change {
	return s.change
}

// Pipe is a single composable processing stage. It reads s.Data,
// rewrites it, and returns FieldInvalid or FieldError on failure.
type Pipe func(s *Session) error

// errStop ends a pipeline run cleanly without surfacing an error. Used
// by the read-only guard.
var errStop = errors.New("pipeline stopped")

// Run executes pipes strictly in order, stopping at the first failure
// and returning it unchanged.
func Run(s *Session, pipes []Pipe) error {
	for _, p := range pipes {
		if err := p(s); err != nil {
			if errors.Is(err, errStop) {
				return nil
			}

			return err
		}
	}

	return nil
}
