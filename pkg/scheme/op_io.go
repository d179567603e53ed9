// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/port"
)

// Output.

// UseOutport makes x the output port until the current step's value is
// returned.
func (sc *T) useOutport(x Cell) {
	if x == sc.outport {
		return
	}

	sc.save(opSetOutPort, sc.cons(sc.outport, Nil), Nil)
	sc.setOutport(x)
}

func (sc *T) setOutport(x Cell) {
	if !sc.isOutport(x) {
		sc.logger.Warn("output port is not open for output")
	}

	sc.outport = x
}

// UseInport makes x the input port until the current step's value is
// returned.
func (sc *T) useInport(x Cell) {
	if x == sc.inport {
		return
	}

	sc.save(opSetInPort, sc.cons(sc.inport, Nil), Nil)
	sc.inport = x
}

func (sc *T) printTo(write bool) bool {
	if sc.isPair(sc.cdr(sc.args)) {
		sc.useOutport(sc.cadr(sc.args))
	}

	sc.args = sc.car(sc.args)
	sc.printFlag = write

	return sc.next(opP0List)
}

func write(sc *T) bool {
	return sc.printTo(true)
}

func display(sc *T) bool {
	return sc.printTo(false)
}

func newline(sc *T) bool {
	if sc.isPair(sc.args) {
		sc.useOutport(sc.car(sc.args))
	}

	sc.putstr("\n")

	return sc.ret(True)
}

func setInputPort(sc *T) bool {
	sc.inport = sc.car(sc.args)

	return sc.ret(sc.value)
}

func setOutputPort(sc *T) bool {
	sc.setOutport(sc.car(sc.args))

	return sc.ret(sc.value)
}

// Input.

func (sc *T) in() *port.T {
	return sc.portOf(sc.inport)
}

func read(sc *T) bool {
	if !sc.isPair(sc.args) {
		return sc.next(opReadInternal)
	}

	if !sc.isInport(sc.car(sc.args)) {
		return sc.raise("read: not an input port:", sc.car(sc.args))
	}

	sc.useInport(sc.car(sc.args))

	return sc.next(opReadInternal)
}

func readChar(sc *T) bool {
	if sc.isPair(sc.args) {
		sc.useInport(sc.car(sc.args))
	}

	r := sc.in().NextRune()
	if r == port.EOF {
		return sc.ret(EOF)
	}

	if sc.op == opPeekChar {
		sc.in().BackRune(r)
	}

	return sc.ret(sc.mkChar(r))
}

func readByte(sc *T) bool {
	if sc.isPair(sc.args) {
		sc.useInport(sc.car(sc.args))
	}

	b := sc.in().NextByte()
	if b == port.EOF {
		return sc.ret(EOF)
	}

	if sc.op == opPeekByte {
		sc.in().BackByte(b)
	}

	return sc.ret(sc.mkByte(byte(b)))
}

func ready(sc *T) bool {
	x := sc.inport
	if sc.isPair(sc.args) {
		x = sc.car(sc.args)
	}

	p := sc.portOf(x)

	return sc.retBool(p != nil && p.Ready())
}

func currentInputPort(sc *T) bool {
	return sc.ret(sc.inport)
}

func currentOutputPort(sc *T) bool {
	return sc.ret(sc.outport)
}

// Opening and closing.

func openFile(sc *T) bool {
	var kind port.Kind

	switch sc.op {
	case opOpenInFile:
		kind = port.Input
	case opOpenOutFile:
		kind = port.Output
	default:
		kind = port.Input | port.Output
	}

	name := string(sc.heap.Bytes(sc.car(sc.args)))

	p, err := port.Open(name, kind)
	if err != nil {
		sc.logger.Debug("open", "name", name, "error", err)

		return sc.ret(False)
	}

	return sc.ret(sc.mkPort(p))
}

func openInputString(sc *T) bool {
	return sc.ret(sc.mkPort(port.InputString(sc.heap.Bytes(sc.car(sc.args)))))
}

func openInOutString(sc *T) bool {
	return sc.ret(sc.mkPort(port.InOutString(sc.heap.Bytes(sc.car(sc.args)))))
}

func openOutputString(sc *T) bool {
	if sc.args == Nil {
		return sc.ret(sc.mkPort(port.Scratch()))
	}

	return sc.ret(sc.mkPort(port.OutputString(sc.heap.Bytes(sc.car(sc.args)))))
}

func getOutputString(sc *T) bool {
	p := sc.portOf(sc.car(sc.args))
	if !p.Is(port.String) {
		return sc.ret(False)
	}

	return sc.ret(sc.mkString(p.Output()))
}

func closePort(sc *T) bool {
	kind := port.Output
	if sc.op == opCloseInPort {
		kind = port.Input
	}

	sc.portOf(sc.car(sc.args)).Close(kind)

	return sc.ret(True)
}
