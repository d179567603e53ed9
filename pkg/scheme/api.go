// Released under an MIT license. See LICENSE.

package scheme

import (
	"os"
	"sort"

	"github.com/mattn/go-isatty"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
)

// Loading.

// LoadString evaluates every expression in src. It returns 0 on success,
// the code passed to quit, -1 after an error or 1 if a list was left open.
func (sc *T) LoadString(src string) int {
	return sc.load(port.InputString([]byte(src)), false)
}

// LoadFile evaluates every expression read from f. The session is
// interactive if f is a terminal on standard input or Interactive(true)
// was called.
func (sc *T) LoadFile(f *os.File, name string) int {
	interactive := sc.forceRepl

	if f == os.Stdin {
		fd := f.Fd()
		interactive = interactive || isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	return sc.load(port.FromFile(f, port.Input, name), interactive)
}

func (sc *T) load(p *port.T, interactive bool) int {
	if !sc.usable("load") {
		return -1
	}

	if sc.heap.NoMemory() {
		sc.noMemory()

		return sc.retcode
	}

	if sc.running > 0 {
		return sc.nestedLoad(p)
	}

	sc.stale()

	sc.dump = nil
	sc.envir = sc.global
	sc.interactive = interactive

	sc.start(p)
	sc.finish()

	return sc.retcode
}

// Start makes p the only file being loaded and enters the top level.
func (sc *T) start(p *port.T) {
	inport := sc.inport

	sc.loads = append(sc.loads[:0], p)
	sc.nesting = append(sc.nesting[:0], 0)
	sc.unmatched = 0
	sc.retcode = 0
	sc.quitting = false

	sc.heap.SetObj(sc.loadport, p)

	sc.inport = sc.loadport
	sc.args = sc.mkInteger(0)

	sc.cycle(opT0Lvl)

	sc.inport = inport
}

// Finish closes files left open by a load that stopped early.
func (sc *T) finish() {
	for len(sc.loads) > 1 {
		sc.filePop()
	}

	sc.loads = sc.loads[:0]
	sc.nesting = sc.nesting[:0]

	sc.heap.SetObj(sc.loadport, port.InputString(nil))

	if sc.retcode == 0 && sc.unmatched != 0 {
		sc.retcode = 1
	}
}

// A load started by a foreign function runs on its own top level and then
// puts back the load it interrupted.
func (sc *T) nestedLoad(p *port.T) int {
	loads := append([]*port.T(nil), sc.loads...)
	nesting := append([]int(nil), sc.nesting...)
	unmatched := sc.unmatched
	loading := sc.heap.Obj(sc.loadport)

	sc.push()

	sc.envir = sc.global
	sc.interactive = false

	sc.start(p)
	sc.finish()

	code := sc.retcode

	sc.pop()

	sc.quitting = false

	sc.loads = loads
	sc.nesting = nesting
	sc.unmatched = unmatched
	sc.heap.SetObj(sc.loadport, loading)

	return code
}

// Evaluation.

// Eval evaluates x in the current environment and returns its value. It
// may be called by foreign functions.
func (sc *T) Eval(x Cell) Cell {
	return sc.enter(opEval, x, Nil)
}

// Call applies proc to the list args and returns the result. It may be
// called by foreign functions.
func (sc *T) Call(proc, args Cell) Cell {
	return sc.enter(opApply, proc, args)
}

// Apply0 calls the global procedure name with no arguments.
func (sc *T) Apply0(name string) Cell {
	return sc.Eval(sc.cons(sc.symbols.Intern(name), Nil))
}

func (sc *T) enter(o op, code, args Cell) Cell {
	if !sc.usable("eval") {
		return Nil
	}

	if sc.running == 0 {
		sc.stale()

		sc.envir = sc.global
	}

	sc.push()

	sc.interactive = false
	sc.retcode = 0
	sc.code = code
	sc.args = args

	sc.cycle(o)

	v := sc.value

	sc.pop()

	sc.heap.Protect(v)

	return v
}

// Registration.

// Register binds name to fn in the global environment.
func (sc *T) Register(name string, fn Foreign) {
	sc.Define(sc.global, sc.symbols.Intern(name), sc.mkForeign(fn))
}

// RegisterAll registers every function in fns.
func (sc *T) RegisterAll(fns map[string]Foreign) {
	names := make([]string, 0, len(fns))
	for name := range fns {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		sc.Register(name, fns[name])
	}
}

// ForeignError makes the running foreign function fail with msg. The
// irritants are reported with the message. The result should be returned
// by the foreign function.
func (sc *T) ForeignError(msg string, irritants Cell) Cell {
	s := sc.mkString([]byte(msg))

	sc.foreignError = sc.cons(s, irritants)

	return True
}

// Define binds sym to value in env, replacing a binding already there.
func (sc *T) Define(env, sym, value Cell) {
	sc.envs.Define(env, sym, value)
}

// GlobalEnv returns the global environment.
func (sc *T) GlobalEnv() Cell {
	return sc.global
}

// Ports and modes.

// SetInputPort makes f the current input port.
func (sc *T) SetInputPort(f *os.File) {
	sc.inport = sc.mkPort(port.FromFile(f, port.Input, f.Name()))
}

// SetOutputPort makes f the current output port.
func (sc *T) SetOutputPort(f *os.File) {
	sc.outport = sc.mkPort(port.FromFile(f, port.Output, f.Name()))
}

// SetPrintOutput prints the value of every top level expression.
func (sc *T) SetPrintOutput(on bool) {
	sc.printOutput = on
}

// Interactive forces loads from files to behave like a terminal session.
func (sc *T) Interactive(on bool) {
	sc.forceRepl = on
}

// Results.

// Retcode returns the status of the last load or evaluation.
func (sc *T) Retcode() int {
	return sc.retcode
}

// Quitting reports whether the last load was ended by quit.
func (sc *T) Quitting() bool {
	return sc.quitting
}

// Value returns the value of the last top level expression.
func (sc *T) Value() Cell {
	return sc.result
}

// Cells for host code. Cells made outside a foreign function survive until
// the interpreter next runs unless they are reachable from a binding.

// Cons returns a new pair.
func (sc *T) Cons(a, b Cell) Cell {
	return sc.cons(a, b)
}

// Integer returns a new fixnum.
func (sc *T) Integer(i int64) Cell {
	return sc.mkInteger(i)
}

// Real returns a new flonum.
func (sc *T) Real(f float64) Cell {
	return sc.mkReal(f)
}

// Str returns a new mutable string.
func (sc *T) Str(s string) Cell {
	return sc.mkString([]byte(s))
}

// Symbol returns the interned symbol name.
func (sc *T) Symbol(name string) Cell {
	return sc.symbols.Intern(name)
}

// Character returns a new character.
func (sc *T) Character(r rune) Cell {
	return sc.mkChar(r)
}

// Vector returns a new vector holding xs.
func (sc *T) Vector(xs ...Cell) Cell {
	for _, x := range xs {
		sc.heap.Protect(x)
	}

	v := sc.mkVector(len(xs), Nil)
	if v == heap.Sentinel {
		return v
	}

	for i, x := range xs {
		sc.heap.SetElem(v, i, x)
	}

	return v
}

// Car returns the car of a pair.
func (sc *T) Car(x Cell) Cell {
	return sc.car(x)
}

// Cdr returns the cdr of a pair.
func (sc *T) Cdr(x Cell) Cell {
	return sc.cdr(x)
}

// IsPair reports whether x is a pair.
func (sc *T) IsPair(x Cell) bool {
	return sc.isPair(x)
}

// IsNumber reports whether x is a fixnum or flonum.
func (sc *T) IsNumber(x Cell) bool {
	return sc.isNumber(x)
}

// IsString reports whether x is a string.
func (sc *T) IsString(x Cell) bool {
	return sc.isString(x)
}

// IsSymbol reports whether x is a symbol.
func (sc *T) IsSymbol(x Cell) bool {
	return sc.isSymbol(x)
}

// IntValue returns the value of a number truncated to an integer.
func (sc *T) IntValue(x Cell) int64 {
	return sc.ivalue(x)
}

// RealValue returns the value of a number as a float64.
func (sc *T) RealValue(x Cell) float64 {
	return sc.number(x).Float()
}

// StringValue returns a copy of the text of a string.
func (sc *T) StringValue(x Cell) string {
	return string(sc.heap.Bytes(x))
}

// SymbolName returns the name of a symbol.
func (sc *T) SymbolName(x Cell) string {
	return sc.symbolName(x)
}

// Sprint renders x the way write would.
func (sc *T) Sprint(x Cell) string {
	if !sc.usable("sprint") {
		return ""
	}

	errPort, outport, unmatched := sc.errPort, sc.outport, sc.unmatched

	scratch := port.Scratch()

	sc.errPort = nil
	sc.unmatched = 0

	sc.push()

	sc.outport = sc.mkPort(scratch)
	sc.args = x
	sc.printFlag = true

	sc.cycle(opP0List)

	sc.pop()

	sc.errPort, sc.outport, sc.unmatched = errPort, outport, unmatched

	return string(scratch.Output())
}

// Parse reads one datum from src. It returns EOF if src holds no datum.
func (sc *T) Parse(src string) (Cell, error) {
	if !sc.usable("parse") {
		return Nil, IllegalState.New("interpreter used after Deinit")
	}

	if sc.running == 0 {
		sc.stale()

		sc.envir = sc.global
	}

	inport := sc.inport

	sc.push()

	sc.interactive = false
	sc.retcode = 0
	sc.inport = sc.mkPort(port.InputString([]byte(src)))

	sc.cycle(opReadInternal)

	v, code := sc.value, sc.retcode

	sc.pop()

	sc.inport = inport

	if code != 0 {
		return Nil, Load.New("%s", sc.ErrorString())
	}

	sc.heap.Protect(v)

	return v, nil
}

// Completions returns the names of interned symbols that start with prefix.
func (sc *T) Completions(prefix string) []string {
	if !sc.usable("completions") {
		return nil
	}

	return sc.symbols.Prefix(prefix)
}

// Incomplete reports whether src ends inside a list or string literal and
// so needs more input before it can be loaded.
func Incomplete(src string) bool {
	return lexer.Incomplete(port.InputString([]byte(src)))
}
