// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
)

// The registers type holds the state of the abstract machine.
type registers struct {
	op    op
	args  Cell
	envir Cell
	code  Cell
	value Cell
}

func (r *registers) refs(visit func(heap.Ref)) {
	visit(r.args)
	visit(r.envir)
	visit(r.code)
	visit(r.value)
}

// A frame is what remains to be done once the current step returns.
type frame struct {
	op    op
	args  Cell
	envir Cell
	code  Cell
}

// The dump is the machine's stack of pending frames.
type dump []frame

func (d dump) refs(visit func(heap.Ref)) {
	for i := range d {
		visit(d[i].args)
		visit(d[i].envir)
		visit(d[i].code)
	}
}

// A snapshot is the payload of a continuation.
type snapshot struct {
	dump dump
}

// Refs visits the cells referenced by the captured frames.
func (s *snapshot) Refs(visit func(heap.Ref)) {
	s.dump.refs(visit)
}

// A nested call saves the machine while host code calls back into it.
type nested struct {
	registers
	dump        dump
	recent      []heap.Ref
	interactive bool
	printFlag   bool
	tok         lexer.Token
}

func (n *nested) refs(visit func(heap.Ref)) {
	n.registers.refs(visit)
	n.dump.refs(visit)

	for _, x := range n.recent {
		visit(x)
	}
}

// Actions.

// An action performs a single step of the machine. It returns false when
// the machine should stop.
type action func(*T) bool

// Goto makes o the next step.
func (sc *T) next(o op) bool {
	sc.op = o

	return true
}

// Ret pops the top frame and sets the value register.
func (sc *T) ret(v Cell) bool {
	sc.value = v

	n := len(sc.dump)
	if n == 0 {
		return false
	}

	f := sc.dump[n-1]
	sc.dump = sc.dump[:n-1]

	sc.op = f.op
	sc.args = f.args
	sc.envir = f.envir
	sc.code = f.code

	return true
}

func (sc *T) retBool(b bool) bool {
	if b {
		return sc.ret(True)
	}

	return sc.ret(False)
}

// Save pushes a frame that will resume at o.
func (sc *T) save(o op, args, code Cell) {
	sc.dump = append(sc.dump, frame{op: o, args: args, envir: sc.envir, code: code})
}

// Push saves the machine before a nested call.
func (sc *T) push() {
	sc.nests = append(sc.nests, &nested{
		registers:   sc.registers,
		dump:        sc.dump,
		recent:      sc.heap.SaveRecent(),
		interactive: sc.interactive,
		printFlag:   sc.printFlag,
		tok:         sc.tok,
	})

	sc.dump = nil
}

// Pop restores the machine saved by the matching push.
func (sc *T) pop() {
	n := sc.nests[len(sc.nests)-1]
	sc.nests = sc.nests[:len(sc.nests)-1]

	sc.registers = n.registers
	sc.dump = n.dump
	sc.interactive = n.interactive
	sc.printFlag = n.printFlag
	sc.tok = n.tok

	sc.heap.RestoreRecent(n.recent)
}
