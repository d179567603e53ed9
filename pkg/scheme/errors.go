// Released under an MIT license. See LICENSE.

package scheme

import (
	"fmt"
	"os"

	"github.com/joomcode/errorx"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
)

// Errors returned to host code.
//
//nolint:gochecknoglobals
var (
	Errors = errorx.NewNamespace("scheme")

	// NoMemory is returned when the heap cannot be created or is exhausted.
	NoMemory = Errors.NewType("no_memory")
	// IllegalState is returned when the interpreter is used incorrectly.
	IllegalState = Errors.NewType("illegal_state")
	// Load is returned when source cannot be loaded or parsed.
	Load = Errors.NewType("load")
)

// Raise signals a Scheme error with an optional irritant. If the
// *error-hook* is bound it is called with the message and irritant.
// Otherwise the error is reported on the error port.
func (sc *T) raise(msg string, irritant ...Cell) bool {
	if n := len(sc.loads); n > 0 {
		p := sc.loads[n-1]
		if p.Is(port.File) && p.File() != os.Stdin {
			name := p.Name()
			if name == "" {
				name = "<unknown>"
			}

			msg = fmt.Sprintf("%s (%s : %d) ", msg, name, p.Line())
		}
	}

	s := sc.mkString([]byte(msg))
	sc.heap.SetFlag(s, heap.Immutable)

	if hook := sc.envs.Find(sc.envir, sc.sym.errorHook, true); hook != Nil {
		code := Nil
		if len(irritant) > 0 {
			code = sc.list(sc.list(sc.sym.quote, irritant[0]))
		}

		sc.code = sc.cons(sc.envs.Value(hook), sc.cons(s, code))

		return sc.next(opEval)
	}

	args := Nil
	if len(irritant) > 0 {
		args = sc.list(irritant[0])
	}

	sc.args = sc.cons(s, args)

	return sc.next(opErr0)
}

// No memory is sticky. The current run stops and reports failure.
func (sc *T) noMemory() {
	sc.retcode = -1

	sc.logger.Error("No memory!", "error", NoMemory.New("heap exhausted"))
}

// Discards an error message no one retrieved before a new top level run.
func (sc *T) stale() {
	if sc.errPort == nil || sc.running > 0 {
		return
	}

	err := IllegalState.New("error message was never retrieved")
	sc.logger.Warn(string(sc.errPort.Output()), "error", err)

	sc.errPort = nil
}

// Usable reports whether the interpreter may run.
func (sc *T) usable(what string) bool {
	if !sc.closed {
		return true
	}

	sc.logger.Error(what, "error", IllegalState.New("interpreter used after Deinit"))

	return false
}
