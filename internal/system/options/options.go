// Released under an MIT license. See LICENSE.

// Package options parses the tiny command line.
package options

import (
	"os"
	"strconv"

	"github.com/docker/go-units"
	"github.com/docopt/docopt-go"
	"github.com/joomcode/errorx"
	"github.com/mattn/go-isatty"
)

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	files       []string
	interactive bool
	quiet       bool
	script      string
	segment     int
	segments    int
	strict      bool
	terminal    bool
	usage       = `tiny

Usage:
  tiny [options] [FILES...]
  tiny [options] -1 SCRIPT [ARGUMENTS...]
  tiny [options] -c EXPRESSION
  tiny -h
  tiny -v

Arguments:
  FILES      Files loaded in order. Use - for stdin.
  SCRIPT     File loaded with *args* bound to its path and ARGUMENTS.
  ARGUMENTS  Strings passed to SCRIPT.

Options:
  -1, --script              Load SCRIPT with ARGUMENTS.
  -c, --command=EXPRESSION  Evaluate EXPRESSION.
  -i, --interactive         Show results and errors as they happen.
  -q, --quiet               Do not print the values of expressions.
  --segment=CELLS           Cells in each heap segment [default: 5k].
  --segments=N              Maximum number of heap segments [default: 1000].
  --strict                  Reject closure calls with too many arguments.
  -h, --help                Display this help.
  -v, --version             Print tiny version.

With no FILES, SCRIPT or EXPRESSION, expressions are read from stdin. If
stdin is a TTY, a line editor with history and completion is used.
`
)

// Version is printed by -v.
const Version = "tiny 1.0.0"

var (
	// Errors is the namespace for command line errors.
	Errors = errorx.NewNamespace("options") //nolint:gochecknoglobals

	// Invalid is returned for malformed option values.
	Invalid = Errors.NewType("invalid") //nolint:gochecknoglobals
)

// Args returns the strings passed to SCRIPT.
func Args() []string {
	return args
}

// Command returns the expression passed with -c.
func Command() string {
	return command
}

// Files returns the files to load in order.
func Files() []string {
	return files
}

// Interactive is true when stdin is a TTY and nothing else was given to
// load, or when -i was passed.
func Interactive() bool {
	return interactive
}

// Parse reads the command line. It returns an error for malformed values.
func Parse() error {
	return parse(os.Args[1:])
}

// Quiet is true when values should not be printed.
func Quiet() bool {
	return quiet
}

// Script returns the path passed with -1.
func Script() string {
	return script
}

// Segment returns the number of cells in each heap segment.
func Segment() int {
	return segment
}

// Segments returns the maximum number of heap segments.
func Segments() int {
	return segments
}

// Strict is true when closures reject surplus arguments.
func Strict() bool {
	return strict
}

// Terminal is true when stdin is a TTY.
func Terminal() bool {
	return terminal
}

func parse(argv []string) error {
	opts, err := docopt.ParseArgs(usage, argv, Version)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")
	files, _ = opts["FILES"].([]string)
	args, _ = opts["ARGUMENTS"].([]string)

	if s, _ := opts.Bool("--script"); s && script == "" && len(files) > 0 {
		script, args, files = files[0], files[1:], nil
	}

	quiet, _ = opts.Bool("--quiet")
	strict, _ = opts.Bool("--strict")

	s, _ := opts.String("--segment")

	n, err := units.FromHumanSize(s)
	if err != nil || n <= 0 {
		return Invalid.New("--segment: %q is not a cell count", s)
	}

	segment = int(n)

	s, _ = opts.String("--segments")

	segments, err = strconv.Atoi(s)
	if err != nil || segments <= 0 {
		return Invalid.New("--segments: %q is not a positive integer", s)
	}

	forced, _ := opts.Bool("--interactive")

	fd := os.Stdin.Fd()
	terminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	interactive = forced || terminal && command == "" && script == "" && len(files) == 0

	return nil
}
