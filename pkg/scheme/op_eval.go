// Released under an MIT license. See LICENSE.

package scheme

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
)

const (
	maxLoads = 64
	prompt   = "ts> "
)

// Loading.

func load(sc *T) bool {
	name := string(sc.heap.Bytes(sc.car(sc.args)))

	if sc.fileInteractive() {
		sc.putstr("Loading " + name + "\n")
	}

	if !sc.filePush(name) {
		return sc.raise("unable to open", sc.car(sc.args))
	}

	sc.args = sc.mkInteger(int64(len(sc.loads) - 1))

	return sc.next(opT0Lvl)
}

func (sc *T) filePush(name string) bool {
	if len(sc.loads) >= maxLoads {
		return false
	}

	p, err := port.Open(name, port.Input)
	if err != nil {
		sc.logger.Debug("load", "name", name, "error", err)

		return false
	}

	sc.loads = append(sc.loads, p)
	sc.nesting = append(sc.nesting, 0)
	sc.heap.SetObj(sc.loadport, p)

	return true
}

func (sc *T) filePop() {
	n := len(sc.loads)
	if n <= 1 {
		return
	}

	sc.unmatched = sc.nesting[n-1]
	sc.loads[n-1].Close(port.Input)

	sc.loads = sc.loads[:n-1]
	sc.nesting = sc.nesting[:n-1]

	sc.heap.SetObj(sc.loadport, sc.loads[n-2])
}

// Nest adjusts the open list count of the file being loaded.
func (sc *T) nest(delta int) {
	if n := len(sc.nesting); n > 0 {
		sc.nesting[n-1] += delta
	}
}

func (sc *T) fileInteractive() bool {
	if !sc.interactive || len(sc.loads) != 1 || !sc.loads[0].Is(port.File) {
		return false
	}

	return sc.isPort(sc.inport) && sc.portOf(sc.inport).Is(port.File)
}

func (sc *T) loadEOF() bool {
	p := sc.portOf(sc.loadport)

	return p == nil || p.Is(port.SawEOF)
}

// Top level.

func t0lvl(sc *T) bool {
	if sc.loadEOF() {
		if len(sc.loads) <= 1 {
			sc.args = Nil

			if len(sc.nesting) > 0 {
				sc.unmatched = sc.nesting[0]
			}

			return false
		}

		sc.filePop()

		return sc.ret(sc.value)
	}

	if sc.fileInteractive() {
		sc.envir = sc.global
		sc.dump = sc.dump[:0]

		sc.putstr("\n" + prompt)
	}

	sc.unmatched = 0
	sc.saveInport = sc.inport
	sc.inport = sc.loadport

	sc.save(opT0Lvl, Nil, Nil)
	sc.save(opValuePrint, Nil, Nil)
	sc.save(opT1Lvl, Nil, Nil)

	return sc.next(opReadInternal)
}

func t1lvl(sc *T) bool {
	sc.code = sc.value
	sc.inport = sc.saveInport

	return sc.next(opEval)
}

func readInternal(sc *T) bool {
	sc.tok = sc.token()
	if sc.tok == lexer.EOFToken {
		return sc.ret(EOF)
	}

	return sc.next(opRdSexpr)
}

func gensym(sc *T) bool {
	return sc.ret(sc.symbols.Gensym())
}

func valuePrint(sc *T) bool {
	if sc.value == EOF && sc.loadEOF() {
		return sc.ret(sc.value)
	}

	sc.result = sc.value

	if sc.tracing != 0 {
		sc.putstr("\nGives: ")
	}

	if sc.fileInteractive() || sc.printOutput {
		sc.printFlag = true
		sc.args = sc.value

		return sc.next(opP0List)
	}

	return sc.ret(sc.value)
}

// Evaluation.

func eval(sc *T) bool {
	if sc.tracing != 0 {
		sc.save(opRealEval, sc.args, sc.code)
		sc.args = sc.code
		sc.putstr("\nEval: ")

		return sc.next(opP0List)
	}

	return realEval(sc)
}

func realEval(sc *T) bool {
	switch {
	case sc.isSymbol(sc.code):
		if slot := sc.envs.Find(sc.envir, sc.code, true); slot != Nil {
			return sc.ret(sc.envs.Value(slot))
		}

		return sc.raise("eval: unbound variable:", sc.code)
	case sc.isPair(sc.code):
		x := sc.car(sc.code)
		if o, ok := sc.syntax[x]; ok {
			sc.code = sc.cdr(sc.code)

			return sc.next(o)
		}

		sc.save(opE0Args, Nil, sc.code)
		sc.code = x

		return sc.next(opEval)
	}

	return sc.ret(sc.code)
}

func e0args(sc *T) bool {
	if sc.is(sc.value, heap.Macro) {
		sc.save(opDoMacro, Nil, Nil)
		sc.args = sc.cons(sc.code, Nil)
		sc.code = sc.value

		return sc.next(opApply)
	}

	sc.code = sc.cdr(sc.code)

	return sc.next(opE1Args)
}

func e1args(sc *T) bool {
	sc.args = sc.cons(sc.value, sc.args)

	if sc.isPair(sc.code) {
		sc.save(opE1Args, sc.args, sc.cdr(sc.code))
		sc.code = sc.car(sc.code)
		sc.args = Nil

		return sc.next(opEval)
	}

	sc.args = sc.reverseInPlace(Nil, sc.args)
	sc.code = sc.car(sc.args)
	sc.args = sc.cdr(sc.args)

	return sc.next(opApply)
}

func tracing(sc *T) bool {
	was := sc.tracing
	sc.tracing = int(sc.ivalue(sc.car(sc.args)))

	return sc.ret(sc.mkInteger(int64(was)))
}

// Application.

func apply(sc *T) bool {
	if sc.tracing != 0 {
		sc.save(opRealApply, sc.args, sc.code)
		sc.printFlag = true
		sc.putstr("\nApply to: ")

		return sc.next(opP0List)
	}

	return realApply(sc)
}

func realApply(sc *T) bool {
	h := sc.heap

	switch h.Type(sc.code) {
	case heap.Proc:
		return sc.next(op(h.Word(sc.code)))

	case heap.Foreign:
		h.Protect(sc.args)

		sc.foreignError = Nil

		f, _ := h.Obj(sc.code).(Foreign)
		x := f(sc, sc.args)

		if fe := sc.foreignError; fe != Nil {
			sc.foreignError = Nil

			return sc.raise(string(h.Bytes(sc.car(fe))), sc.cdr(fe))
		}

		return sc.ret(x)

	case heap.Closure, heap.Macro, heap.Promise:
		return sc.applyClosure()

	case heap.Continuation:
		s, _ := h.Obj(sc.code).(*snapshot)
		sc.dump = append(dump(nil), s.dump...)

		if sc.args != Nil {
			return sc.ret(sc.car(sc.args))
		}

		return sc.ret(Nil)
	}

	return sc.raise("illegal function")
}

func (sc *T) applyClosure() bool {
	code := sc.car(sc.code)

	sc.envir = sc.envs.Frame(sc.cdr(sc.code))

	x, y := sc.car(code), sc.args
	for ; sc.isPair(x); x, y = sc.cdr(x), sc.cdr(y) {
		if y == Nil {
			return sc.raise("not enough arguments")
		}

		sc.envs.Bind(sc.envir, sc.car(x), sc.car(y))
	}

	switch {
	case x == Nil:
		if y != Nil && sc.arity == Strict {
			return sc.raise("too many arguments")
		}
	case sc.isSymbol(x):
		sc.envs.Bind(sc.envir, x, y)
	default:
		return sc.raise("syntax error in closure: not a symbol:", x)
	}

	sc.code = sc.cdr(code)
	sc.args = Nil

	return sc.next(opBegin)
}

func doMacro(sc *T) bool {
	sc.code = sc.value

	return sc.next(opEval)
}

func lambda(sc *T) bool {
	hook := sc.envs.Find(sc.envir, sc.sym.compileHook, true)
	if hook == Nil {
		sc.value = sc.code

		return lambda1(sc)
	}

	sc.save(opLambda1, sc.args, sc.code)
	sc.args = sc.cons(sc.code, Nil)
	sc.code = sc.envs.Value(hook)

	return sc.next(opApply)
}

func lambda1(sc *T) bool {
	return sc.ret(sc.mkClosure(sc.value, sc.envir))
}

func mkClosure(sc *T) bool {
	x := sc.car(sc.args)
	if sc.car(x) == sc.sym.lambda {
		x = sc.cdr(x)
	}

	e := sc.envir
	if sc.cdr(sc.args) != Nil {
		e = sc.cadr(sc.args)
	}

	return sc.ret(sc.mkClosure(x, e))
}

func quote(sc *T) bool {
	return sc.ret(sc.car(sc.code))
}

// Definition and assignment.

func def0(sc *T) bool {
	if sc.heap.Immutable(sc.car(sc.code)) {
		return sc.raise("define: unable to alter immutable", sc.car(sc.code))
	}

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

	sc.save(opDef1, Nil, x)

	return sc.next(opEval)
}

func def1(sc *T) bool {
	sc.envs.Define(sc.envir, sc.code, sc.value)

	return sc.ret(sc.code)
}

func defP(sc *T) bool {
	e := sc.envir
	if sc.cdr(sc.args) != Nil {
		e = sc.cadr(sc.args)
	}

	return sc.retBool(sc.envs.Find(e, sc.car(sc.args), true) != Nil)
}

func set0(sc *T) bool {
	if sc.heap.Immutable(sc.car(sc.code)) {
		return sc.raise("set!: unable to alter immutable variable", sc.car(sc.code))
	}

	sc.save(opSet1, Nil, sc.car(sc.code))
	sc.code = sc.cadr(sc.code)

	return sc.next(opEval)
}

func set1(sc *T) bool {
	slot := sc.envs.Find(sc.envir, sc.code, true)
	if slot == Nil {
		return sc.raise("set!: unbound variable:", sc.code)
	}

	sc.envs.Set(slot, sc.value)

	return sc.ret(sc.value)
}

// Sequencing and conditionals.

func begin(sc *T) bool {
	if !sc.isPair(sc.code) {
		return sc.ret(sc.code)
	}

	if sc.cdr(sc.code) != Nil {
		sc.save(opBegin, Nil, sc.cdr(sc.code))
	}

	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func if0(sc *T) bool {
	sc.save(opIf1, Nil, sc.cdr(sc.code))
	sc.code = sc.car(sc.code)

	return sc.next(opEval)
}

func if1(sc *T) bool {
	if sc.value != False {
		sc.code = sc.car(sc.code)
	} else {
		sc.code = sc.cadr(sc.code)
	}

	return sc.next(opEval)
}

// Eval and apply as procedures.

func peval(sc *T) bool {
	if sc.cdr(sc.args) != Nil {
		sc.envir = sc.cadr(sc.args)
	}

	sc.code = sc.car(sc.args)

	return sc.next(opEval)
}

func papply(sc *T) bool {
	sc.code = sc.car(sc.args)
	sc.args = sc.listStar(sc.cdr(sc.args))

	return sc.next(opApply)
}

func callcc(sc *T) bool {
	sc.code = sc.car(sc.args)
	sc.args = sc.cons(sc.mkContinuation(), Nil)

	return sc.next(opApply)
}
