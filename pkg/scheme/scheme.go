// Released under an MIT license. See LICENSE.

// Package scheme provides an embeddable Scheme interpreter.
//
// An interpreter is a register machine. Evaluation, reading and printing
// are performed as small steps that save what remains to be done on an
// explicit dump stack, so deeply nested programs and data never grow the
// Go stack. All state, including the output handler and the error port,
// belongs to the interpreter context, and separate contexts share nothing.
//
// A context is not safe for concurrent use.
package scheme

import (
	"log/slog"
	"os"

	"github.com/michaelmacinnis/tiny/internal/boot"
	"github.com/michaelmacinnis/tiny/internal/env"
	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
	"github.com/michaelmacinnis/tiny/internal/printer"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
	"github.com/michaelmacinnis/tiny/internal/symbol"
)

// Cell is a reference to a Scheme value owned by an interpreter.
type Cell = heap.Ref

// Constant cells shared by every interpreter.
const (
	Nil   Cell = heap.Nil
	True  Cell = heap.True
	False Cell = heap.False
	EOF   Cell = heap.EOF
)

// Foreign is a host function callable from Scheme. Args is the list of
// evaluated arguments.
type Foreign func(sc *T, args Cell) Cell

// Symbols the machine refers to directly.
type specials struct {
	lambda          Cell
	quote           Cell
	quasiquote      Cell
	unquote         Cell
	unquoteSplicing Cell
	feedTo          Cell
	colonHook       Cell
	errorHook       Cell
	sharpHook       Cell
	compileHook     Cell
}

// T (interpreter) is a Scheme interpreter context.
type T struct {
	registers
	dump dump

	heap    *heap.Heap
	envs    *env.T
	symbols *symbol.T
	printer *printer.T

	global Cell
	sym    specials
	syntax map[Cell]op

	inport     Cell
	outport    Cell
	saveInport Cell
	loadport   Cell

	// Files being loaded, innermost last, and their open list counts.
	loads     []*port.T
	nesting   []int
	unmatched int

	errPort      *port.T
	foreignError Cell
	foreigns     uint64

	nests   []*nested
	running int
	result  Cell

	closed      bool
	gcVerbose   bool
	interactive bool
	forceRepl   bool
	printFlag   bool
	printOutput bool
	quitting    bool
	retcode     int
	tok         lexer.Token
	tracing     int

	arity     ArityPolicy
	logger    *slog.Logger
	output    func(OutputKind, []byte)
	translate func(string) string
}

// New creates an interpreter and loads the bootstrap library.
func New(opts ...Option) (*T, error) {
	cfg := defaults()
	for _, o := range opts {
		o(cfg)
	}

	sc := &T{
		arity:        cfg.arity,
		foreignError: Nil,
		logger:       cfg.logger,
		output:       cfg.output,
		result:       Nil,
		syntax:       map[Cell]op{},
		translate:    cfg.translate,
	}

	cfg.heap.Notify = sc.collected

	sc.heap = heap.New(cfg.heap, sc.roots)
	if sc.heap == nil {
		return nil, NoMemory.New(
			"unable to allocate %d segments of %d cells",
			cfg.heap.FirstSegments, cfg.heap.SegmentSize,
		)
	}

	sc.envs = env.New(sc.heap)
	sc.symbols = symbol.New(sc.heap)
	sc.printer = printer.New(sc.heap, procName)

	sc.global = sc.envs.Global()
	sc.envir = sc.global

	sc.envs.Bind(sc.global, sc.symbols.Intern("else"), True)

	for name, o := range syntaxOps {
		x := sc.symbols.Intern(name)
		sc.heap.SetFlag(x, heap.Syntax)
		sc.syntax[x] = o
	}

	for o := range table {
		if name := table[o].name; name != "" {
			sc.envs.Bind(sc.global, sc.symbols.Intern(name), sc.mkProc(op(o)))
		}
	}

	sc.sym = specials{
		lambda:          sc.symbols.Intern("lambda"),
		quote:           sc.symbols.Intern("quote"),
		quasiquote:      sc.symbols.Intern("quasiquote"),
		unquote:         sc.symbols.Intern("unquote"),
		unquoteSplicing: sc.symbols.Intern("unquote-splicing"),
		feedTo:          sc.symbols.Intern("=>"),
		colonHook:       sc.symbols.Intern("*colon-hook*"),
		errorHook:       sc.symbols.Intern("*error-hook*"),
		sharpHook:       sc.symbols.Intern("*sharp-hook*"),
		compileHook:     sc.symbols.Intern("*compile-hook*"),
	}

	sc.inport = sc.mkPort(port.FromFile(os.Stdin, port.Input, "stdin"))
	sc.outport = sc.mkPort(port.FromFile(os.Stdout, port.Output, "stdout"))
	sc.loadport = sc.mkPort(port.InputString(nil))
	sc.saveInport = sc.inport

	if sc.heap.NoMemory() {
		sc.heap.Free()

		return nil, NoMemory.New("unable to initialize the global environment")
	}

	if cfg.boot {
		if sc.LoadString(boot.Script()) != 0 {
			msg := sc.ErrorString()
			sc.Deinit()

			return nil, Load.New("bootstrap library failed: %s", msg)
		}
	}

	return sc, nil
}

// Deinit releases the interpreter's heap. Ports the interpreter opened are
// closed. The interpreter cannot be used afterwards.
func (sc *T) Deinit() {
	if sc.closed {
		return
	}

	sc.closed = true

	sc.registers = registers{}
	sc.dump = nil
	sc.nests = nil
	sc.loads = nil
	sc.nesting = nil

	sc.global = Nil
	sc.inport = Nil
	sc.outport = Nil
	sc.saveInport = Nil
	sc.loadport = Nil
	sc.errPort = nil

	sc.heap.Free()
}

// The interpreter's roots. Everything else on the heap is garbage.
func (sc *T) roots(visit func(heap.Ref)) {
	sc.registers.refs(visit)
	sc.dump.refs(visit)

	for _, x := range [...]Cell{
		sc.global,
		sc.inport,
		sc.outport,
		sc.saveInport,
		sc.loadport,
		sc.foreignError,
		sc.result,
	} {
		visit(x)
	}

	if sc.symbols != nil {
		sc.symbols.Refs(visit)
	}

	for _, n := range sc.nests {
		n.refs(visit)
	}
}

func (sc *T) collected(s heap.Stats) {
	sc.logger.Debug("gc", "collections", s.Collections, "free", s.Free, "segments", s.Segments)

	if sc.gcVerbose {
		sc.putstr("gc...done: ")
		sc.putstr(itoa(int64(s.Free)))
		sc.putstr(" cells were recovered.\n")
	}
}
