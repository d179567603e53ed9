package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/tiny/internal/port"
)

type harness struct {
	*testing.T
	src *port.T
}

func setup(t *testing.T, text string) *harness {
	t.Helper()

	return &harness{T: t, src: port.InputString([]byte(text))}
}

func (h *harness) tokens(expected ...Token) {
	h.Helper()

	for i, e := range expected {
		assert.Equal(h, e, Next(h.src), "token %d", i)
	}
}

func (h *harness) atom(expected string) {
	h.Helper()

	require.Equal(h, Atom, Next(h.src))
	assert.Equal(h, expected, Upto(h.src, Delimiters))
}

func TestPunctuation(t *testing.T) {
	h := setup(t, "( ) ' ` , ,@ #( \"")

	h.tokens(LParen, RParen, Quote, BQuote, Comma, AtMark, Vec, DQuote, EOFToken)
}

func TestDotIsAtomUnlessSpaced(t *testing.T) {
	h := setup(t, "(a . b) .5 ...")

	h.tokens(LParen)
	h.atom("a")
	h.tokens(Dot)
	h.atom("b")
	h.tokens(RParen)
	h.atom(".5")
	h.atom("...")
	h.tokens(EOFToken)
}

func TestCommentsAreSkipped(t *testing.T) {
	h := setup(t, "; comment\n#! shebang\nfoo ; trailing")

	h.atom("foo")
	h.tokens(EOFToken)
}

func TestSharpTokens(t *testing.T) {
	h := setup(t, "#t #\\a #<foo> _\"hi\" _x")

	h.tokens(SharpConst)
	assert.Equal(t, "t", Upto(h.src, Delimiters))

	h.tokens(SharpConst)
	assert.Equal(t, "\\a", Upto(h.src, Delimiters))

	h.tokens(Sharp)
	assert.Equal(t, "<foo>", Upto(h.src, Delimiters))

	h.tokens(UScore)
	s, ok := String(h.src)
	require.True(t, ok)
	assert.Equal(t, "hi", string(s))

	h.atom("_x")
}

func TestDelimiterCharacter(t *testing.T) {
	h := setup(t, "#\\( #\\)")

	h.tokens(SharpConst)
	assert.Equal(t, "\\(", Upto(h.src, Delimiters))

	h.tokens(SharpConst)
	assert.Equal(t, "\\)", Upto(h.src, Delimiters))
}

func TestStringEscapes(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out string
	}{
		{`plain"`, "plain"},
		{`a\nb\tc\rd"`, "a\nb\tc\rd"},
		{`q\"q\\"`, `q"q\`},
		{`\x41\x7a"`, "Az"},
		{`\101\60x"`, "A0x"},
		{`\q"`, "q"},
		{`é€"`, "é€"},
	} {
		s, ok := String(port.InputString([]byte(tc.in)))
		require.True(t, ok, tc.in)
		assert.Equal(t, tc.out, string(s), tc.in)
	}
}

func TestMalformedStrings(t *testing.T) {
	for _, in := range []string{`unterminated`, `\xZZ"`, `\777"`} {
		_, ok := String(port.InputString([]byte(in)))
		assert.False(t, ok, in)
	}
}

func TestTokenNames(t *testing.T) {
	assert.Equal(t, ",@", AtMark.String())
	assert.Equal(t, "unknown", Token(99).String())
}

func TestIncomplete(t *testing.T) {
	for src, want := range map[string]bool{
		"":                 false,
		"(+ 1 2)":          false,
		"(define (f x)":    true,
		"#(1 2":            true,
		`(display "a)`:     true,
		`(display "a)")`:   false,
		"(car '(1 2)) ; (": false,
		`(list #\( 1)`:     false,
		"(list #\\( 1":     true,
		"))":               false,
		"(a (b\n c)\n":     true,
		"(a . (b))":        false,
	} {
		assert.Equal(t, want, Incomplete(port.InputString([]byte(src))), src)
	}
}
