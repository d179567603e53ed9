// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Abbreviable returns true if x is the one element tail of a quote form.
func (sc *T) abbreviable(x Cell) bool {
	return sc.isPair(x) && sc.cdr(x) == Nil
}

func (sc *T) abbreviation(x Cell) string {
	switch x {
	case sc.sym.quote:
		return "'"
	case sc.sym.quasiquote:
		return "`"
	case sc.sym.unquote:
		return ","
	case sc.sym.unquoteSplicing:
		return ",@"
	}

	return ""
}

func p0list(sc *T) bool {
	x := sc.args

	switch {
	case sc.is(x, heap.Vector):
		sc.putstr("#(")
		sc.args = sc.cons(x, sc.mkInteger(0))

		return sc.next(opPVecFrom)

	case sc.is(x, heap.Environment):
		sc.putstr("#<ENVIRONMENT>")

		return sc.ret(True)

	case !sc.isPair(x):
		sc.printAtom(x, sc.printFlag)

		return sc.ret(True)
	}

	if a := sc.abbreviation(sc.car(x)); a != "" && sc.abbreviable(sc.cdr(x)) {
		sc.putstr(a)
		sc.args = sc.cadr(x)

		return sc.next(opP0List)
	}

	sc.putstr("(")
	sc.save(opP1List, sc.cdr(x), Nil)
	sc.args = sc.car(x)

	return sc.next(opP0List)
}

func p1list(sc *T) bool {
	x := sc.args

	switch {
	case sc.isPair(x):
		sc.save(opP1List, sc.cdr(x), Nil)
		sc.putstr(" ")
		sc.args = sc.car(x)

		return sc.next(opP0List)

	case sc.is(x, heap.Vector):
		sc.save(opP1List, Nil, Nil)
		sc.putstr(" . ")

		return sc.next(opP0List)
	}

	if x != Nil {
		sc.putstr(" . ")
		sc.printAtom(x, sc.printFlag)
	}

	sc.putstr(")")

	return sc.ret(True)
}

func pvecfrom(sc *T) bool {
	v := sc.car(sc.args)
	i := int(sc.ivalue(sc.cdr(sc.args)))

	if i == sc.heap.Len(v) {
		sc.putstr(")")

		return sc.ret(True)
	}

	sc.save(opPVecFrom, sc.cons(v, sc.mkInteger(int64(i+1))), Nil)

	if i > 0 {
		sc.putstr(" ")
	}

	sc.args = sc.heap.Elem(v, i)

	return sc.next(opP0List)
}
