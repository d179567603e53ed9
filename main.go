// Released under an MIT license. See LICENSE.

/*
Tiny is a small, embeddable Scheme interpreter.

	tiny                     Read expressions from stdin.
	tiny a.scm b.scm         Load files in order. Use - for stdin.
	tiny -1 run.scm x y      Load run.scm with *args* bound to ("x" "y").
	tiny -c '(display 1)'    Evaluate an expression.

Tiny exits with the code passed to quit, or a non-zero code if loading
failed.
*/
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/dc0d/onexit"

	"github.com/michaelmacinnis/tiny/internal/system/options"
	"github.com/michaelmacinnis/tiny/internal/ui"
	"github.com/michaelmacinnis/tiny/pkg/scheme"
)

type repl struct {
	*scheme.T
	code int
}

func (r *repl) Evaluate(src string) bool {
	code := r.LoadString(src)
	if r.Quitting() {
		r.code = code

		return false
	}

	if code != 0 {
		report(r.T)
	}

	return true
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := options.Parse(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		return 2
	}

	opts := []scheme.Option{
		scheme.WithSegmentSize(options.Segment()),
		scheme.WithMaxSegments(options.Segments()),
	}

	if options.Strict() {
		opts = append(opts, scheme.WithArityPolicy(scheme.Strict))
	}

	sc, err := scheme.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		return 2
	}

	shutdown := sync.OnceFunc(sc.Deinit)
	onexit.Register(shutdown)

	defer shutdown()

	switch {
	case options.Command() != "":
		return load(sc, func() int { return sc.LoadString(options.Command()) })

	case options.Script() != "":
		args := scheme.Nil

		for a := options.Args(); len(a) > 0; a = a[:len(a)-1] {
			args = sc.Cons(sc.Str(a[len(a)-1]), args)
		}

		sc.Define(sc.GlobalEnv(), sc.Symbol("*args*"), args)

		return file(sc, options.Script())

	case len(options.Files()) > 0:
		for _, name := range options.Files() {
			if code := file(sc, name); code != 0 {
				return code
			}
		}

		return 0
	}

	if !options.Interactive() || !options.Terminal() {
		sc.Interactive(options.Interactive())

		return load(sc, func() int { return sc.LoadFile(os.Stdin, "stdin") })
	}

	sc.SetPrintOutput(!options.Quiet())

	r := &repl{T: sc}

	if err := ui.Run(r); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())

		return 1
	}

	return r.code
}

func file(sc *scheme.T, name string) int {
	if name == "-" {
		sc.Interactive(options.Interactive())

		return load(sc, func() int { return sc.LoadFile(os.Stdin, "stdin") })
	}

	f, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open file %s\n", name)

		return 2
	}
	defer f.Close()

	return load(sc, func() int { return sc.LoadFile(f, name) })
}

func load(sc *scheme.T, f func() int) int {
	code := f()
	if code != 0 && !sc.Quitting() {
		report(sc)
	}

	return code
}

func report(sc *scheme.T) {
	if msg := sc.ErrorString(); msg != "Unknown error" {
		fmt.Fprintln(os.Stderr, msg)
	}
}
