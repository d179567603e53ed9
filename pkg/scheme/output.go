// Released under an MIT license. See LICENSE.

package scheme

import (
	"os"

	"github.com/michaelmacinnis/tiny/internal/port"
)

// OutputKind identifies text passed to an output handler.
type OutputKind int

// Output kinds.
const (
	// Normal output was written to the standard output port.
	Normal OutputKind = iota
	// Error output is the text of an error message.
	Error
)

func (sc *T) putbytes(b []byte) {
	if sc.errPort != nil {
		_, _ = sc.errPort.Write(b)

		return
	}

	p := sc.portOf(sc.outport)
	if p == nil {
		sc.logger.Warn("output port is not a port", "text", string(b))

		return
	}

	if sc.output != nil && p.File() == os.Stdout {
		sc.output(Normal, b)

		return
	}

	if _, err := p.Write(b); err != nil {
		sc.logger.Warn("output lost", "port", p.Name(), "error", err)
	}
}

func (sc *T) putstr(s string) {
	sc.putbytes([]byte(s))
}

func (sc *T) putrune(r rune) {
	if sc.errPort == nil && sc.output == nil {
		if p := sc.portOf(sc.outport); p != nil {
			if err := p.WriteRune(r); err != nil {
				sc.logger.Warn("output lost", "port", p.Name(), "error", err)
			}

			return
		}
	}

	sc.putstr(string(r))
}

// PrintAtom writes the text of an atom in write or display mode.
func (sc *T) printAtom(x Cell, write bool) {
	sc.putbytes(sc.printer.Atom(x, write, 10)) //nolint:gomnd
}

// Redirect sends all further output to the error port.
func (sc *T) redirect() {
	if sc.errPort != nil {
		sc.logger.Warn(
			"error port already open",
			"error", IllegalState.New("nested error port"),
		)

		return
	}

	sc.errPort = port.Scratch()
}

// Take returns the error text and disposes of the error port.
func (sc *T) take() (string, bool) {
	if sc.errPort == nil {
		return "", false
	}

	s := string(sc.errPort.Output())
	sc.errPort = nil

	return s, true
}

// ErrorString returns the text of the last error and disposes of the error
// port. It returns "Unknown error" if there is none.
func (sc *T) ErrorString() string {
	if s, ok := sc.take(); ok {
		return s
	}

	return "Unknown error"
}

// Reports a finished error message. Interactive sessions show it
// immediately. Other runs keep it for ErrorString.
func (sc *T) reported() {
	if sc.output != nil && sc.errPort != nil {
		sc.output(Error, sc.errPort.Output())
	}

	if !sc.interactive {
		return
	}

	s, ok := sc.take()
	if ok && sc.output == nil {
		sc.putstr(s)
	}
}
