// Released under an MIT license. See LICENSE.

// Package printer renders atoms as text.
//
// Lists and vectors are walked by the evaluator's printing opcodes, which
// call Atom for each leaf. Write mode produces text the reader accepts.
// Display mode produces strings and characters as their raw text.
package printer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/reader/atom"
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

// T (printer) renders atoms stored on a heap.
type T struct {
	heap *heap.Heap
	proc func(op int) string
}

// New creates a printer. Proc names builtin procedures by opcode.
func New(h *heap.Heap, proc func(op int) string) *T {
	return &T{heap: h, proc: proc}
}

// Atom renders x. Base selects the radix for fixnums and is ignored for
// everything else.
func (p *T) Atom(x heap.Ref, write bool, base int) []byte {
	h := p.heap

	switch x {
	case heap.Nil:
		return []byte("()")
	case heap.True:
		return []byte("#t")
	case heap.False:
		return []byte("#f")
	case heap.EOF:
		return []byte("#<EOF>")
	}

	switch h.Type(x) {
	case heap.Port:
		return []byte("#<PORT>")
	case heap.Number:
		return []byte(Number(h.Num(x), base))
	case heap.String:
		if write {
			return Slash(h.Bytes(x))
		}

		return h.Bytes(x)
	case heap.Byte:
		if write {
			return strconv.AppendUint(nil, h.Word(x), 10)
		}

		return []byte{byte(h.Word(x))}
	case heap.Character:
		return Char(rune(h.Word(x)), write)
	case heap.Symbol:
		return h.Bytes(h.Car(x))
	case heap.Proc:
		op := int(h.Word(x))

		return []byte(fmt.Sprintf("#<%s PROCEDURE %d>", p.proc(op), op))
	case heap.Macro:
		return []byte("#<MACRO>")
	case heap.Closure:
		return []byte("#<CLOSURE>")
	case heap.Promise:
		return []byte("#<PROMISE>")
	case heap.Foreign:
		return []byte(fmt.Sprintf("#<FOREIGN PROCEDURE %d>", h.Word(x)))
	case heap.Continuation:
		return []byte("#<CONTINUATION>")
	case heap.Environment:
		return []byte("#<ENVIRONMENT>")
	}

	return []byte("#<ERROR>")
}

// Number renders n. Flonums use the shortest text that reads back as the
// same value and always include a decimal point or exponent.
func Number(n num.T, base int) string {
	if !n.Fixnum() {
		s := strconv.FormatFloat(n.Float(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}

		return s
	}

	switch base {
	case 2, 8, 16:
		return strconv.FormatInt(n.Int(), base)
	}

	return strconv.FormatInt(n.Int(), 10)
}

// Char renders a character as a sharp constant or as its UTF-8 encoding.
// Control characters use their ASCII names and other unprintable
// characters use hex.
func Char(r rune, write bool) []byte {
	if !write {
		return utf8.AppendRune(nil, r)
	}

	switch r {
	case ' ':
		return []byte(`#\space`)
	case '\n':
		return []byte(`#\newline`)
	case '\r':
		return []byte(`#\return`)
	case '\t':
		return []byte(`#\tab`)
	}

	if name, ok := atom.ASCIIName(r); ok {
		return []byte(`#\` + name)
	}

	if !unicode.IsPrint(r) {
		return strconv.AppendInt([]byte(`#\x`), int64(r), 16)
	}

	return utf8.AppendRune([]byte(`#\`), r)
}

// Slash renders a string in double quotes with escapes for quotes,
// backslashes and control characters.
func Slash(s []byte) []byte {
	const digits = "0123456789ABCDEF"

	b := make([]byte, 0, len(s)+2) //nolint:gomnd
	b = append(b, '"')

	for len(s) > 0 {
		r, n := utf8.DecodeRune(s)

		switch {
		case r == '"':
			b = append(b, '\\', '"')
		case r == '\\':
			b = append(b, '\\', '\\')
		case r == '\n':
			b = append(b, '\\', 'n')
		case r == '\t':
			b = append(b, '\\', 't')
		case r == '\r':
			b = append(b, '\\', 'r')
		case r < ' ':
			b = append(b, '\\', 'x', digits[r/16], digits[r%16])
		case r == utf8.RuneError && n == 1:
			b = append(b, '\\', 'x', digits[s[0]/16], digits[s[0]%16])
		default:
			b = append(b, s[:n]...)
		}

		s = s[n:]
	}

	return append(b, '"')
}
