// Released under an MIT license. See LICENSE.

// Package port provides the interpreter's file and string ports.
//
// A port reads and writes bytes. Characters are layered on top as UTF-8
// sequences. Bytes can be pushed back any number of times; pushed back
// bytes are returned last in, first out.
package port

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Kind describes what a port is and what it can still do.
type Kind uint8

// Port kinds.
const (
	File Kind = 1 << iota
	String
	Input
	Output
	SawEOF
)

// EOF is returned by the read methods at the end of input.
const EOF = -1

// ErrClosed is returned when writing to a port that is not open for output.
var ErrClosed = errors.New("port is not open for output") //nolint:gochecknoglobals

// T (port) is a file or string port.
type T struct {
	kind Kind
	back []byte
	line int
	name string

	f       *os.File
	r       *bufio.Reader
	w       io.Writer
	closeit bool

	buf   []byte
	pos   int
	fixed bool
}

// Open opens the file name for input, output or both.
func Open(name string, kind Kind) (*T, error) {
	var (
		f   *os.File
		err error
	)

	switch kind & (Input | Output) {
	case Input:
		f, err = os.Open(name)
	case Output:
		f, err = os.Create(name)
	default:
		f, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o666) //nolint:gomnd
	}

	if err != nil {
		return nil, err
	}

	p := FromFile(f, kind, name)
	p.closeit = true

	return p, nil
}

// FromFile wraps an open file. The file is not closed with the port.
func FromFile(f *os.File, kind Kind, name string) *T {
	p := &T{
		kind: File | kind&(Input|Output),
		line: 1,
		name: name,
		f:    f,
	}

	if kind&Input != 0 {
		p.r = bufio.NewReader(f)
	}

	if kind&Output != 0 {
		p.w = f
	}

	return p
}

// FromWriter creates an output file port that writes to w.
func FromWriter(w io.Writer, name string) *T {
	return &T{
		kind: File | Output,
		line: 1,
		name: name,
		w:    w,
	}
}

// Close stops the port from reading, writing or both. A file port that
// owns its file closes it when both directions are closed.
func (p *T) Close(kind Kind) {
	p.kind &^= kind & (Input | Output)

	if p.kind&(Input|Output) != 0 {
		return
	}

	if p.f != nil && p.closeit {
		_ = p.f.Close()
		p.closeit = false
	}
}

// Finalize closes the port when its cell is collected.
func (p *T) Finalize() {
	p.Close(Input | Output)
}

// File returns the underlying file, if any.
func (p *T) File() *os.File {
	return p.f
}

// Is returns true if the port has every bit in kind.
func (p *T) Is(kind Kind) bool {
	return p.kind&kind == kind
}

// Line returns the current line number.
func (p *T) Line() int {
	return p.line
}

// Name returns the name the port was opened with.
func (p *T) Name() string {
	return p.name
}

// NextByte returns the next byte or EOF.
func (p *T) NextByte() int {
	if n := len(p.back); n > 0 {
		b := p.back[n-1]
		p.back = p.back[:n-1]

		return p.count(int(b))
	}

	if p.kind&Input == 0 {
		return EOF
	}

	if p.kind&String != 0 {
		if p.pos >= len(p.buf) {
			p.kind |= SawEOF

			return EOF
		}

		b := p.buf[p.pos]
		p.pos++

		return p.count(int(b))
	}

	b, err := p.r.ReadByte()
	if err != nil {
		p.kind |= SawEOF

		return EOF
	}

	return p.count(int(b))
}

// BackByte pushes b back onto the port. EOF is ignored.
func (p *T) BackByte(b int) {
	if b == EOF {
		return
	}

	if b == '\n' {
		p.line--
	}

	p.back = append(p.back, byte(b))
}

// PeekByte returns the next byte without consuming it.
func (p *T) PeekByte() int {
	b := p.NextByte()
	p.BackByte(b)

	return b
}

// Write implements io.Writer.
func (p *T) Write(b []byte) (int, error) {
	if p.kind&Output == 0 {
		return 0, ErrClosed
	}

	if p.kind&String != 0 {
		return p.writeString(b), nil
	}

	return p.w.Write(b)
}

// Ready returns true if a read would not block.
func (p *T) Ready() bool {
	if len(p.back) > 0 || p.kind&String != 0 {
		return true
	}

	if p.kind&Input == 0 || p.r == nil {
		return false
	}

	if p.r.Buffered() > 0 {
		return true
	}

	return ready(p.f)
}

func (p *T) count(b int) int {
	if b == '\n' {
		p.line++
	}

	return b
}
