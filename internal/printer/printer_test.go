package printer

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/port"
	"github.com/michaelmacinnis/tiny/internal/reader/atom"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

func TestNumbers(t *testing.T) {
	for _, tc := range []struct {
		n    num.T
		base int
		out  string
	}{
		{num.Int(42), 10, "42"},
		{num.Int(-42), 10, "-42"},
		{num.Int(255), 16, "ff"},
		{num.Int(-255), 16, "-ff"},
		{num.Int(8), 8, "10"},
		{num.Int(-5), 2, "-101"},
		{num.Real(3.5), 10, "3.5"},
		{num.Real(2), 10, "2.0"},
		{num.Real(1e21), 10, "1e+21"},
		{num.Real(0.1), 10, "0.1"},
		{num.Real(1.0 / 3), 10, "0.3333333333333333"},
		{num.Real(0.1234567890123), 10, "0.1234567890123"},
		{num.Real(-1e-7), 10, "-1e-07"},
	} {
		assert.Equal(t, tc.out, Number(tc.n, tc.base))
	}
}

func TestChars(t *testing.T) {
	assert.Equal(t, `#\space`, string(Char(' ', true)))
	assert.Equal(t, `#\newline`, string(Char('\n', true)))
	assert.Equal(t, `#\a`, string(Char('a', true)))
	assert.Equal(t, `#\€`, string(Char('€', true)))
	assert.Equal(t, "€", string(Char('€', false)))
	assert.Equal(t, `#\nul`, string(Char(0, true)))
	assert.Equal(t, `#\esc`, string(Char(27, true)))
	assert.Equal(t, `#\del`, string(Char(127, true)))
	assert.Equal(t, `#\xa0`, string(Char(0xa0, true)))
}

func TestWrittenAtomsReadBack(t *testing.T) {
	for _, n := range []num.T{
		num.Int(0), num.Int(-17), num.Int(math.MaxInt64), num.Int(math.MinInt64 + 1),
		num.Real(0.1), num.Real(2), num.Real(-3.25), num.Real(1.0 / 3),
		num.Real(0.1234567890123), num.Real(6.02214076e23), num.Real(5e-324),
	} {
		text := Number(n, 10)
		a := atom.Parse(text)

		if n.Fixnum() {
			require.Equal(t, atom.Integer, a.Kind, text)
			assert.Equal(t, n.Int(), a.Int, text)
		} else {
			require.Equal(t, atom.Real, a.Kind, text)
			assert.Equal(t, n.Float(), a.Real, text)
		}
	}

	for _, r := range []rune{'a', ' ', '\n', '\r', '\t', 0, 7, 27, 31, 127, 0xa0, 'λ', '€', '('} {
		text := string(Char(r, true))
		require.True(t, strings.HasPrefix(text, "#"), text)

		a := atom.ParseSharp(text[1:])
		require.Equal(t, atom.Character, a.Kind, text)
		assert.Equal(t, r, a.Char, text)
	}

	for _, s := range []string{"", "plain", "a\"b\\c", "line\nbreak\ttab\r", "\x01\x1b\x7f", "é€λ"} {
		text := Slash([]byte(s))
		require.Equal(t, byte('"'), text[0])

		b, ok := lexer.String(port.InputString(text[1:]))
		require.True(t, ok, string(text))
		assert.Equal(t, s, string(b))
	}

	for _, s := range []string{"car", "list->vector", "string-app", "+", "..."} {
		a := atom.Parse(s)
		assert.Equal(t, atom.Symbol, a.Kind, s)
		assert.Equal(t, s, a.Text, s)
	}
}

func TestSlash(t *testing.T) {
	assert.Equal(t, `"a\"b\\c\nd\te\rf"`, string(Slash([]byte("a\"b\\c\nd\te\rf"))))
	assert.Equal(t, `"\x01\x1B"`, string(Slash([]byte{1, 27})))
	assert.Equal(t, `"é€"`, string(Slash([]byte("é€"))))
}

func TestAtoms(t *testing.T) {
	h := heap.New(heap.Config{SegmentSize: 64, FirstSegments: 1}, nil)
	require.NotNil(t, h)

	p := New(h, func(op int) string { return "car" })

	assert.Equal(t, "()", string(p.Atom(heap.Nil, true, 10)))
	assert.Equal(t, "#t", string(p.Atom(heap.True, true, 10)))
	assert.Equal(t, "#<EOF>", string(p.Atom(heap.EOF, true, 10)))

	s := h.MakeString([]byte("hi \"x\""))
	assert.Equal(t, `"hi \"x\""`, string(p.Atom(s, true, 10)))
	assert.Equal(t, `hi "x"`, string(p.Atom(s, false, 10)))

	proc := h.Get(heap.Nil, heap.Nil)
	h.SetType(proc, heap.Proc)
	h.SetFlag(proc, heap.Atom)
	h.SetWord(proc, 12)
	assert.Equal(t, "#<car PROCEDURE 12>", string(p.Atom(proc, true, 10)))

	b := h.Get(heap.Nil, heap.Nil)
	h.SetType(b, heap.Byte)
	h.SetWord(b, 65)
	assert.Equal(t, "65", string(p.Atom(b, true, 10)))
	assert.Equal(t, "A", string(p.Atom(b, false, 10)))
}
