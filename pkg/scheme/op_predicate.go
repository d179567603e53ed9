// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

func predicate(f func(sc *T, x Cell) bool) action {
	return func(sc *T) bool {
		return sc.retBool(f(sc, sc.car(sc.args)))
	}
}

func eq(sc *T) bool {
	return sc.retBool(sc.car(sc.args) == sc.cadr(sc.args))
}

func eqv(sc *T) bool {
	return sc.retBool(sc.eqv(sc.car(sc.args), sc.cadr(sc.args)))
}

// Eqv compares numbers, characters, bytes and builtin procedures by
// value and everything else by identity.
func (sc *T) eqv(a, b Cell) bool {
	if a == b {
		return true
	}

	h := sc.heap

	t := h.Type(a)
	if t != h.Type(b) {
		return false
	}

	switch t {
	case heap.Number:
		x, y := h.Num(a), h.Num(b)

		return x.Fixnum() == y.Fixnum() && num.Compare(x, y) == 0
	case heap.Character, heap.Byte, heap.Proc:
		return h.Word(a) == h.Word(b)
	}

	return false
}
