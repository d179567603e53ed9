// Released under an MIT license. See LICENSE.

package scheme

import (
	"strconv"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Promises.

func force(sc *T) bool {
	sc.code = sc.car(sc.args)
	if !sc.is(sc.code, heap.Promise) {
		return sc.ret(sc.code)
	}

	sc.save(opSaveForced, Nil, sc.code)
	sc.args = Nil

	return sc.next(opApply)
}

// SaveForced replaces the promise with its value. Numbers, characters and
// bytes have no identity and are copied into the promise's cell. Anything
// else is kept by turning the promise's body into a quoted constant, so
// forcing again returns the same object.
func saveForced(sc *T) bool {
	switch {
	case sc.value > heap.Sentinel &&
		(sc.isNumber(sc.value) || sc.is(sc.value, heap.Character) || sc.is(sc.value, heap.Byte)):
		sc.heap.Copy(sc.code, sc.value)
	default:
		body := sc.list(sc.list(sc.sym.quote, sc.value))
		sc.heap.SetCar(sc.code, sc.cons(Nil, body))
	}

	return sc.ret(sc.value)
}

// Errors.

func err0(sc *T) bool {
	sc.retcode = -1

	sc.redirect()

	if !sc.isString(sc.car(sc.args)) {
		s := sc.mkString([]byte(" -- "))
		sc.heap.SetFlag(s, heap.Immutable)
		sc.args = sc.cons(s, sc.args)
	}

	sc.putstr("Error: ")
	sc.putbytes(sc.heap.Bytes(sc.car(sc.args)))

	sc.args = sc.cdr(sc.args)

	return sc.next(opErr1)
}

func err1(sc *T) bool {
	sc.putstr(" ")

	if sc.args != Nil {
		sc.save(opErr1, sc.cdr(sc.args), Nil)
		sc.args = sc.car(sc.args)
		sc.printFlag = true

		return sc.next(opP0List)
	}

	sc.reported()

	if sc.interactive {
		return sc.next(opT0Lvl)
	}

	return false
}

func quit(sc *T) bool {
	sc.quitting = true

	if sc.isPair(sc.args) {
		code := sc.ivalue(sc.car(sc.args))

		sc.retcode = int(code)

		if code != 0 {
			sc.putstr("script quit with code: " + strconv.FormatInt(code, 10))
		}
	}

	return false
}

// Memory.

func gc(sc *T) bool {
	sc.heap.Collect(Nil, Nil)

	return sc.ret(True)
}

func gcVerbose(sc *T) bool {
	was := sc.gcVerbose
	sc.gcVerbose = sc.car(sc.args) != False

	return sc.retBool(was)
}

func newSegment(sc *T) bool {
	if !sc.isPair(sc.args) || !sc.isNumber(sc.car(sc.args)) {
		return sc.raise("new-segment: argument must be a number")
	}

	sc.heap.Grow(int(sc.ivalue(sc.car(sc.args))))

	return sc.ret(True)
}

// Symbols.

func oblist(sc *T) bool {
	var syms []Cell

	sc.symbols.Each(func(x heap.Ref) bool {
		syms = append(syms, x)

		return true
	})

	return sc.ret(sc.list(syms...))
}

func apropos(sc *T) bool {
	pattern := sc.car(sc.args)

	syms, err := sc.symbols.Match(string(sc.heap.Bytes(pattern)))
	if err != nil {
		return sc.raise("apropos: bad pattern:", pattern)
	}

	return sc.ret(sc.list(syms...))
}

// Closures and environments.

func getClosureCode(sc *T) bool {
	x := sc.car(sc.args)
	if sc.is(x, heap.Closure) || sc.is(x, heap.Macro) {
		return sc.ret(sc.cons(sc.sym.lambda, sc.car(x)))
	}

	return sc.ret(False)
}

func interactionEnvironment(sc *T) bool {
	return sc.ret(sc.global)
}

func currentEnvironment(sc *T) bool {
	return sc.ret(sc.envir)
}
