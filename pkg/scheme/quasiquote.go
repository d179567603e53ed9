// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Quasiquote expands a template into an expression that builds it and
// evaluates that expression. Nested quasiquotes raise the level at which
// unquote takes effect.
func quasiquote(sc *T) bool {
	x, constant := sc.qq(sc.car(sc.code), 1)
	if constant {
		return sc.ret(x)
	}

	sc.code = x

	return sc.next(opEval)
}

// Qq returns an expression that builds x. When x contains nothing to
// substitute at this depth it returns x itself and true.
func (sc *T) qq(x Cell, depth int) (Cell, bool) {
	switch {
	case sc.is(x, heap.Vector):
		l, constant := sc.qq(sc.vectorToList(x), depth)
		if constant {
			return x, true
		}

		return sc.list(sc.mkProc(opPApply), sc.mkProc(opVector), l), false

	case !sc.isPair(x):
		return x, true
	}

	head := sc.car(x)

	switch head {
	case sc.sym.unquote:
		if depth == 1 {
			return sc.cadr(x), false
		}

		return sc.qqWrap(head, sc.cdr(x), depth-1)

	case sc.sym.quasiquote:
		return sc.qqWrap(head, sc.cdr(x), depth+1)
	}

	// The spine is walked in a loop so long lists do not nest calls. It
	// stops early at a dotted unquote or quasiquote form.
	var spine []Cell
	for tail := x; sc.isPair(tail) && !sc.qqForm(tail); tail = sc.cdr(tail) {
		spine = append(spine, tail)
	}

	rest, constant := sc.qq(sc.cdr(spine[len(spine)-1]), depth)

	for i := len(spine) - 1; i >= 0; i-- {
		rest, constant = sc.qqElem(spine[i], rest, constant, depth)
	}

	return rest, constant
}

// QqElem expands the element in the pair cell given rest, the expansion of
// the pair's cdr.
func (sc *T) qqElem(cell, rest Cell, constant bool, depth int) (Cell, bool) {
	head := sc.car(cell)

	if sc.isPair(head) && sc.car(head) == sc.sym.unquoteSplicing {
		if depth == 1 {
			return sc.list(sc.mkProc(opAppend), sc.cadr(head), sc.quotedIf(rest, constant)), false
		}

		inner, ok := sc.qqWrap(sc.car(head), sc.cdr(head), depth-1)
		if ok && constant {
			return cell, true
		}

		return sc.list(sc.mkProc(opCons), sc.quotedIf(inner, ok), sc.quotedIf(rest, constant)), false
	}

	a, ok := sc.qq(head, depth)
	if ok && constant {
		return cell, true
	}

	return sc.list(sc.mkProc(opCons), sc.quotedIf(a, ok), sc.quotedIf(rest, constant)), false
}

func (sc *T) qqForm(x Cell) bool {
	head := sc.car(x)

	return head == sc.sym.unquote || head == sc.sym.quasiquote
}

// QqWrap builds (sym . rest) where rest is expanded at depth.
func (sc *T) qqWrap(sym, rest Cell, depth int) (Cell, bool) {
	d, ok := sc.qq(rest, depth)
	if ok {
		return sc.cons(sym, rest), true
	}

	return sc.list(sc.mkProc(opCons), sc.quoted(sym), d), false
}

func (sc *T) quoted(x Cell) Cell {
	return sc.list(sc.sym.quote, x)
}

func (sc *T) quotedIf(x Cell, constant bool) Cell {
	if constant {
		return sc.quoted(x)
	}

	return x
}

func (sc *T) vectorToList(v Cell) Cell {
	l := Nil
	for i := sc.heap.Len(v) - 1; i >= 0; i-- {
		l = sc.cons(sc.heap.Elem(v, i), l)
	}

	return l
}
