// Released under an MIT license. See LICENSE.

package scheme

import (
	"strconv"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

func (sc *T) cons(a, b Cell) Cell {
	return sc.heap.Cons(a, b)
}

func (sc *T) car(x Cell) Cell {
	return sc.heap.Car(x)
}

func (sc *T) cdr(x Cell) Cell {
	return sc.heap.Cdr(x)
}

func (sc *T) cadr(x Cell) Cell {
	return sc.heap.Car(sc.heap.Cdr(x))
}

func (sc *T) caar(x Cell) Cell {
	return sc.heap.Car(sc.heap.Car(x))
}

func (sc *T) cdar(x Cell) Cell {
	return sc.heap.Cdr(sc.heap.Car(x))
}

func (sc *T) cddr(x Cell) Cell {
	return sc.heap.Cdr(sc.heap.Cdr(x))
}

func (sc *T) list(xs ...Cell) Cell {
	l := Nil
	for i := len(xs) - 1; i >= 0; i-- {
		l = sc.cons(xs[i], l)
	}

	return l
}

// Allocates an atom of type t.
func (sc *T) atom(t heap.Type, word uint64, obj any) Cell {
	x := sc.heap.Get(Nil, Nil)
	if x == heap.Sentinel {
		return x
	}

	sc.heap.SetType(x, t)
	sc.heap.SetFlag(x, heap.Atom)
	sc.heap.SetWord(x, word)
	sc.heap.SetObj(x, obj)

	return x
}

func (sc *T) mkNumber(n num.T) Cell {
	x := sc.heap.Get(Nil, Nil)
	if x == heap.Sentinel {
		return x
	}

	sc.heap.SetNum(x, n)

	return x
}

func (sc *T) mkInteger(i int64) Cell {
	return sc.mkNumber(num.Int(i))
}

func (sc *T) mkReal(f float64) Cell {
	return sc.mkNumber(num.Real(f))
}

func (sc *T) mkString(b []byte) Cell {
	return sc.heap.MakeString(b)
}

func (sc *T) mkChar(r rune) Cell {
	return sc.atom(heap.Character, uint64(r), nil)
}

func (sc *T) mkByte(b byte) Cell {
	return sc.atom(heap.Byte, uint64(b), nil)
}

func (sc *T) mkProc(o op) Cell {
	return sc.atom(heap.Proc, uint64(o), nil)
}

func (sc *T) mkPort(p *port.T) Cell {
	return sc.atom(heap.Port, 0, p)
}

func (sc *T) mkForeign(f Foreign) Cell {
	sc.foreigns++

	return sc.atom(heap.Foreign, sc.foreigns, f)
}

func (sc *T) mkClosure(code, envir Cell) Cell {
	x := sc.cons(code, envir)
	if x != heap.Sentinel {
		sc.heap.SetType(x, heap.Closure)
	}

	return x
}

func (sc *T) mkContinuation() Cell {
	return sc.atom(heap.Continuation, 0, &snapshot{dump: append(dump(nil), sc.dump...)})
}

func (sc *T) mkVector(n int, fill Cell) Cell {
	return sc.heap.MakeVector(n, fill)
}

// Type predicates.

func (sc *T) is(x Cell, t heap.Type) bool {
	return sc.heap.Is(x, t)
}

func (sc *T) isPair(x Cell) bool {
	return sc.is(x, heap.Pair)
}

func (sc *T) isNumber(x Cell) bool {
	return sc.is(x, heap.Number)
}

func (sc *T) isInteger(x Cell) bool {
	return sc.isNumber(x) && sc.heap.Num(x).Integral()
}

func (sc *T) isString(x Cell) bool {
	return sc.is(x, heap.String)
}

func (sc *T) isSymbol(x Cell) bool {
	return sc.is(x, heap.Symbol)
}

func (sc *T) isPort(x Cell) bool {
	return sc.is(x, heap.Port)
}

func (sc *T) isInport(x Cell) bool {
	return sc.isPort(x) && sc.portOf(x).Is(port.Input)
}

func (sc *T) isOutport(x Cell) bool {
	return sc.isPort(x) && sc.portOf(x).Is(port.Output)
}

func (sc *T) isProcedure(x Cell) bool {
	switch {
	case sc.is(x, heap.Proc), sc.is(x, heap.Closure),
		sc.is(x, heap.Continuation), sc.is(x, heap.Foreign):
		return true
	}

	return false
}

func (sc *T) portOf(x Cell) *port.T {
	p, _ := sc.heap.Obj(x).(*port.T)

	return p
}

func (sc *T) number(x Cell) num.T {
	return sc.heap.Num(x)
}

func (sc *T) ivalue(x Cell) int64 {
	return sc.heap.Num(x).Int()
}

func (sc *T) char(x Cell) rune {
	return rune(sc.heap.Word(x))
}

func (sc *T) symbolName(x Cell) string {
	return sc.symbols.Name(x)
}

// Length returns the length of a proper list, -1 for a circular list and
// -2-n for a list whose n-th tail is not a pair.
func (sc *T) length(x Cell) int {
	slow := x
	n := 0

	for {
		if x == Nil {
			return n
		}

		if !sc.isPair(x) {
			return -2 - n
		}

		x = sc.cdr(x)
		n++

		if x == Nil {
			return n
		}

		if !sc.isPair(x) {
			return -2 - n
		}

		x = sc.cdr(x)
		n++

		slow = sc.cdr(slow)
		if x == slow {
			return -1
		}
	}
}

// Reverse returns a fresh list with the elements of l in reverse order.
func (sc *T) reverse(l Cell) Cell {
	r := Nil
	for ; sc.isPair(l); l = sc.cdr(l) {
		r = sc.cons(sc.car(l), r)
	}

	return r
}

// ReverseInPlace reverses l destructively, ending it with term.
func (sc *T) reverseInPlace(term, l Cell) Cell {
	r := term

	for l != Nil && l != heap.Sentinel {
		next := sc.cdr(l)
		sc.heap.SetCdr(l, r)
		r = l
		l = next
	}

	return r
}

// RevAppend returns the elements of l in reverse order followed by a. It
// returns False if l is not a proper list.
func (sc *T) revAppend(a, l Cell) Cell {
	for ; sc.isPair(l); l = sc.cdr(l) {
		a = sc.cons(sc.car(l), a)
	}

	if l == Nil {
		return a
	}

	return False
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}
