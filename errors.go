// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package rohd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Elaboration and simulation hazards. These are returned (wrapped with
// context) by block constructors, Simulator.Register and the run/settle
// methods. Use errors.Cause to test for them.
//
var (
	// ErrWriteAfterRead is reported when a non-SSA combinational statement
	// reads a signal that an earlier statement of the same block may have
	// written in the same pass.
	ErrWriteAfterRead = errors.New("signal read after write in the same pass")

	// ErrSignalRedriven is reported when a signal resolves to more than one
	// distinct value within one evaluation pass, or when two blocks drive
	// the same signal.
	ErrSignalRedriven = errors.New("signal driven more than once")

	// ErrNonConvergence is reported when combinational settlement still
	// changes signal values after SettleLimit sweeps.
	ErrNonConvergence = errors.New("combinational loop did not converge")
)

// A ConstructionError reports a malformed statement, expression or value.
// Statement and expression constructors panic with *ConstructionError as
// soon as they are called with impossible arguments, before any block is
// built or elaborated.
//
type ConstructionError struct {
	Op  string // the constructor that failed
	Msg string
}

func (e *ConstructionError) Error() string {
	return e.Op + ": " + e.Msg
}

// cerr panics with a *ConstructionError for constructor op.
func cerr(op, format string, args ...any) {
	panic(&ConstructionError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
