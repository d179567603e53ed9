// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Let.

func let0(sc *T) bool {
	sc.args = Nil
	sc.value = sc.code

	if sc.isSymbol(sc.car(sc.code)) {
		sc.code = sc.cadr(sc.code)
	} else {
		sc.code = sc.car(sc.code)
	}

	return sc.next(opLet1)
}

func let1(sc *T) bool {
	sc.args = sc.cons(sc.value, sc.args)

	if sc.isPair(sc.code) {
		if !sc.isPair(sc.car(sc.code)) || !sc.isPair(sc.cdar(sc.code)) {
			return sc.raise("Bad syntax of binding spec in let :", sc.car(sc.code))
		}

		sc.save(opLet1, sc.args, sc.cdr(sc.code))
		sc.code = sc.car(sc.cdar(sc.code))
		sc.args = Nil

		return sc.next(opEval)
	}

	sc.args = sc.reverseInPlace(Nil, sc.args)
	sc.code = sc.car(sc.args)
	sc.args = sc.cdr(sc.args)

	return sc.next(opLet2)
}

func let2(sc *T) bool {
	named := sc.isSymbol(sc.car(sc.code))

	bindings := sc.car(sc.code)
	if named {
		bindings = sc.cadr(sc.code)
	}

	sc.envir = sc.envs.Frame(sc.envir)

	for x, y := bindings, sc.args; y != Nil; x, y = sc.cdr(x), sc.cdr(y) {
		sc.envs.Bind(sc.envir, sc.caar(x), sc.car(y))
	}

	if !named {
		sc.code = sc.cdr(sc.code)
		sc.args = Nil

		return sc.next(opBegin)
	}

	sc.args = Nil

	for x := bindings; x != Nil; x = sc.cdr(x) {
		if !sc.isPair(x) {
			return sc.raise("Bad syntax of binding in let :", x)
		}

		if sc.length(sc.car(x)) < 0 {
			return sc.raise("Bad syntax of binding in let :", sc.car(x))
		}

		sc.args = sc.cons(sc.caar(x), sc.args)
	}

	formals := sc.reverseInPlace(Nil, sc.args)
	f := sc.mkClosure(sc.cons(formals, sc.cddr(sc.code)), sc.envir)
	sc.envs.Bind(sc.envir, sc.car(sc.code), f)

	sc.code = sc.cddr(sc.code)
	sc.args = Nil

	return sc.next(opBegin)
}

// Let*.

func let0ast(sc *T) bool {
	if sc.car(sc.code) == Nil {
		sc.envir = sc.envs.Frame(sc.envir)
		sc.code = sc.cdr(sc.code)

		return sc.next(opBegin)
	}

	bindings := sc.car(sc.code)
	if !sc.isPair(bindings) || !sc.isPair(sc.car(bindings)) || !sc.isPair(sc.cdar(bindings)) {
		return sc.raise("Bad syntax of binding spec in let* :", bindings)
	}

	sc.save(opLet1Ast, sc.cdr(sc.code), bindings)
	sc.code = sc.car(sc.cdar(bindings))

	return sc.next(opEval)
}

func let1ast(sc *T) bool {
	sc.envir = sc.envs.Frame(sc.envir)

	return sc.next(opLet2Ast)
}

func let2ast(sc *T) bool {
	sc.envs.Bind(sc.envir, sc.caar(sc.code), sc.value)

	sc.code = sc.cdr(sc.code)
	if sc.isPair(sc.code) {
		if !sc.isPair(sc.car(sc.code)) || !sc.isPair(sc.cdar(sc.code)) {
			return sc.raise("Bad syntax of binding spec in let* :", sc.car(sc.code))
		}

		sc.save(opLet2Ast, sc.args, sc.code)
		sc.code = sc.car(sc.cdar(sc.code))
		sc.args = Nil

		return sc.next(opEval)
	}

	sc.code = sc.args
	sc.args = Nil

	return sc.next(opBegin)
}

// Letrec.

func let0rec(sc *T) bool {
	sc.envir = sc.envs.Frame(sc.envir)
	sc.args = Nil
	sc.value = sc.code
	sc.code = sc.car(sc.code)

	return sc.next(opLet1Rec)
}

func let1rec(sc *T) bool {
	sc.args = sc.cons(sc.value, sc.args)

	if sc.isPair(sc.code) {
		if !sc.isPair(sc.car(sc.code)) || !sc.isPair(sc.cdar(sc.code)) {
			return sc.raise("Bad syntax of binding spec in letrec :", sc.car(sc.code))
		}

		sc.save(opLet1Rec, sc.args, sc.cdr(sc.code))
		sc.code = sc.car(sc.cdar(sc.code))
		sc.args = Nil

		return sc.next(opEval)
	}

	sc.args = sc.reverseInPlace(Nil, sc.args)
	sc.code = sc.car(sc.args)
	sc.args = sc.cdr(sc.args)

	return sc.next(opLet2Rec)
}

func let2rec(sc *T) bool {
	for x, y := sc.car(sc.code), sc.args; y != Nil; x, y = sc.cdr(x), sc.cdr(y) {
		sc.envs.Bind(sc.envir, sc.caar(x), sc.car(y))
	}

	sc.code = sc.cdr(sc.code)
	sc.args = Nil

	return sc.next(opBegin)
}

// Cond.

func cond0(sc *T) bool {
	if !sc.isPair(sc.code) {
		return sc.raise("syntax error in cond")
	}

	sc.save(opCond1, Nil, sc.code)
	sc.code = sc.caar(sc.code)

	return sc.next(opEval)
}

func cond1(sc *T) bool {
	if sc.value != False {
		sc.code = sc.cdar(sc.code)
		if sc.code == Nil {
			return sc.ret(sc.value)
		}

		if sc.car(sc.code) == sc.sym.feedTo {
			if !sc.isPair(sc.cdr(sc.code)) {
				return sc.raise("syntax error in cond")
			}

			x := sc.list(sc.sym.quote, sc.value)
			sc.code = sc.list(sc.cadr(sc.code), x)

			return sc.next(opEval)
		}

		return sc.next(opBegin)
	}

	sc.code = sc.cdr(sc.code)
	if sc.code == Nil {
		return sc.ret(Nil)
	}

	sc.save(opCond1, Nil, sc.code)
	sc.code = sc.caar(sc.code)

	return sc.next(opEval)
}

// Promises and streams.

func (sc *T) mkPromise(body Cell) Cell {
	x := sc.mkClosure(sc.cons(Nil, body), sc.envir)
	if x != heap.Sentinel {
		sc.heap.SetType(x, heap.Promise)
	}

	return x
}

func delay(sc *T) bool {
	return sc.ret(sc.mkPromise(sc.code))
}

func c0stream(sc *T) bool {
	sc.save(opC1Stream, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func c1stream(sc *T) bool {
	// Args keeps the head reachable while the promise is allocated.
	sc.args = sc.value

	return sc.ret(sc.cons(sc.args, sc.mkPromise(sc.code)))
}

// And and or.

func and0(sc *T) bool {
	if sc.code == Nil {
		return sc.ret(True)
	}

	sc.save(opAnd1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func and1(sc *T) bool {
	if sc.value == False || sc.code == Nil {
		return sc.ret(sc.value)
	}

	sc.save(opAnd1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func or0(sc *T) bool {
	if sc.code == Nil {
		return sc.ret(False)
	}

	sc.save(opOr1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func or1(sc *T) bool {
	if sc.value != False || sc.code == Nil {
		return sc.ret(sc.value)
	}

	sc.save(opOr1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

// Macros.

func macro0(sc *T) bool {
	var x Cell

	if sc.isPair(sc.car(sc.code)) {
		x = sc.caar(sc.code)
		sc.code = sc.cons(sc.sym.lambda, sc.cons(sc.cdar(sc.code), sc.cdr(sc.code)))
	} else {
		x = sc.car(sc.code)
		sc.code = sc.cadr(sc.code)
	}

	if !sc.isSymbol(x) {
		return sc.raise("variable is not a symbol")
	}

	sc.save(opMacro1, Nil, x)

	return sc.next(opEval)
}

func macro1(sc *T) bool {
	if !sc.is(sc.value, heap.Closure) && !sc.is(sc.value, heap.Macro) {
		return sc.raise("macro: not a procedure:", sc.value)
	}

	sc.heap.SetType(sc.value, heap.Macro)
	sc.envs.Define(sc.envir, sc.code, sc.value)

	return sc.ret(sc.code)
}

// Case.

func case0(sc *T) bool {
	sc.save(opCase1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func case1(sc *T) bool {
	x := sc.code

	for ; x != Nil; x = sc.cdr(x) {
		y := sc.caar(x)
		if !sc.isPair(y) {
			break
		}

		for ; y != Nil; y = sc.cdr(y) {
			if sc.eqv(sc.car(y), sc.value) {
				break
			}
		}

		if y != Nil {
			break
		}
	}

	if x == Nil {
		return sc.ret(Nil)
	}

	if sc.isPair(sc.caar(x)) {
		sc.code = sc.cdar(x)

		return sc.next(opBegin)
	}

	sc.save(opCase2, Nil, sc.cdar(x))
	sc.code = sc.caar(x)

	return sc.next(opEval)
}

func case2(sc *T) bool {
	if sc.value != False {
		return sc.next(opBegin)
	}

	return sc.ret(Nil)
}
