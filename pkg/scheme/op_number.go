// Released under an MIT license. See LICENSE.

package scheme

import (
	"math"

	"github.com/michaelmacinnis/tiny/internal/type/num"
)

func inexactToExact(sc *T) bool {
	x := sc.car(sc.args)
	n := sc.number(x)

	switch {
	case n.Fixnum():
		return sc.ret(x)
	case n.Integral():
		return sc.ret(sc.mkInteger(n.Int()))
	}

	return sc.raise("inexact->exact: not integral:", x)
}

func math1(f func(float64) float64) action {
	return func(sc *T) bool {
		return sc.ret(sc.mkReal(f(sc.number(sc.car(sc.args)).Float())))
	}
}

func atan(sc *T) bool {
	x := sc.number(sc.car(sc.args)).Float()

	if sc.cdr(sc.args) == Nil {
		return sc.ret(sc.mkReal(math.Atan(x)))
	}

	y := sc.number(sc.cadr(sc.args)).Float()

	return sc.ret(sc.mkReal(math.Atan2(x, y)))
}

func expt(sc *T) bool {
	return sc.ret(sc.mkNumber(num.Expt(sc.number(sc.car(sc.args)), sc.number(sc.cadr(sc.args)))))
}

func round(sc *T) bool {
	return sc.ret(sc.mkNumber(num.Round(sc.number(sc.car(sc.args)))))
}

func add(sc *T) bool {
	v := num.Int(0)
	for x := sc.args; x != Nil; x = sc.cdr(x) {
		v = num.Add(v, sc.number(sc.car(x)))
	}

	return sc.ret(sc.mkNumber(v))
}

func mul(sc *T) bool {
	v := num.Int(1)
	for x := sc.args; x != Nil; x = sc.cdr(x) {
		v = num.Mul(v, sc.number(sc.car(x)))
	}

	return sc.ret(sc.mkNumber(v))
}

// Returns the first operand and the rest of the arguments. A single
// argument is applied to the identity.
func (sc *T) operands(identity num.T) (num.T, Cell) {
	if sc.cdr(sc.args) == Nil {
		return identity, sc.args
	}

	return sc.number(sc.car(sc.args)), sc.cdr(sc.args)
}

func sub(sc *T) bool {
	v, x := sc.operands(num.Int(0))
	for ; x != Nil; x = sc.cdr(x) {
		v = num.Sub(v, sc.number(sc.car(x)))
	}

	return sc.ret(sc.mkNumber(v))
}

func div(sc *T) bool {
	v, x := sc.operands(num.Int(1))
	for ; x != Nil; x = sc.cdr(x) {
		d := sc.number(sc.car(x))
		if d.Zero() {
			return sc.raise("/: division by zero")
		}

		v = num.Div(v, d)
	}

	return sc.ret(sc.mkNumber(v))
}

func quotient(sc *T) bool {
	v, x := sc.operands(num.Int(1))
	for ; x != Nil; x = sc.cdr(x) {
		d := sc.number(sc.car(x))
		if d.Int() == 0 {
			return sc.raise("quotient: division by zero")
		}

		v = num.Quotient(v, d)
	}

	return sc.ret(sc.mkNumber(v))
}

func remainder(sc *T) bool {
	d := sc.number(sc.cadr(sc.args))
	if d.Int() == 0 {
		return sc.raise("remainder: division by zero")
	}

	return sc.ret(sc.mkNumber(num.Rem(sc.number(sc.car(sc.args)), d)))
}

func modulo(sc *T) bool {
	d := sc.number(sc.cadr(sc.args))
	if d.Int() == 0 {
		return sc.raise("modulo: division by zero")
	}

	return sc.ret(sc.mkNumber(num.Mod(sc.number(sc.car(sc.args)), d)))
}

// Compare chains a comparison over all arguments.
func compare(ok func(c int) bool) action {
	return func(sc *T) bool {
		v := sc.number(sc.car(sc.args))

		for x := sc.cdr(sc.args); x != Nil; x = sc.cdr(x) {
			n := sc.number(sc.car(x))
			if !ok(num.Compare(v, n)) {
				return sc.ret(False)
			}

			v = n
		}

		return sc.ret(True)
	}
}
