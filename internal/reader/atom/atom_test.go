package atom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumbers(t *testing.T) {
	for _, tc := range []struct {
		in   string
		kind Kind
		i    int64
		r    float64
	}{
		{"42", Integer, 42, 0},
		{"-7", Integer, -7, 0},
		{"+5", Integer, 5, 0},
		{"3.5", Real, 0, 3.5},
		{".5", Real, 0, 0.5},
		{"-.25", Real, 0, -0.25},
		{"1e3", Real, 0, 1000},
		{"2E-1", Real, 0, 0.2},
		{"99999999999999999999", Integer, math.MaxInt64, 0},
	} {
		a := Parse(tc.in)
		assert.Equal(t, tc.kind, a.Kind, tc.in)
		assert.Equal(t, tc.i, a.Int, tc.in)
		assert.InDelta(t, tc.r, a.Real, 1e-12, tc.in)
	}
}

func TestSymbols(t *testing.T) {
	for _, in := range []string{"+", "-", "...", "1+", "a1", "1e", "1.2.3", "-x", "list->vector"} {
		a := Parse(in)
		assert.Equal(t, Symbol, a.Kind, in)
		assert.Equal(t, in, a.Text, in)
	}
}

func TestColon(t *testing.T) {
	a := Parse("pkg::name")
	assert.Equal(t, Colon, a.Kind)
	assert.Equal(t, "pkg", a.Text)
	assert.Equal(t, "name", a.Rest)
}

func TestSharpConstants(t *testing.T) {
	assert.Equal(t, True, ParseSharp("t").Kind)
	assert.Equal(t, False, ParseSharp("f").Kind)
	assert.Equal(t, int64(255), ParseSharp("xff").Int)
	assert.Equal(t, int64(8), ParseSharp("o10").Int)
	assert.Equal(t, int64(5), ParseSharp("b101").Int)
	assert.Equal(t, int64(-12), ParseSharp("d-12").Int)
	assert.Equal(t, Invalid, ParseSharp("q").Kind)
	assert.Equal(t, Invalid, ParseSharp("").Kind)
}

func TestCharacters(t *testing.T) {
	for _, tc := range []struct {
		in string
		r  rune
	}{
		{"\\a", 'a'},
		{"\\space", ' '},
		{"\\NEWLINE", '\n'},
		{"\\tab", '\t'},
		{"\\return", '\r'},
		{"\\x41", 'A'},
		{"\\x", 'x'},
		{"\\(", '('},
		{"\\λ", 'λ'},
		{"\\nul", 0},
		{"\\del", 127},
		{"\\ab", 'a'},
	} {
		c := ParseSharp(tc.in)
		assert.Equal(t, Character, c.Kind, tc.in)
		assert.Equal(t, tc.r, c.Char, tc.in)
	}
}

func TestInvalidCharacters(t *testing.T) {
	for _, in := range []string{"\\x123456789", "\\xzz", "\\xd800", "\\\xff"} {
		assert.Equal(t, Invalid, ParseSharp(in).Kind, in)
	}
}

func TestASCIINames(t *testing.T) {
	name, ok := ASCIIName(10)
	assert.True(t, ok)
	assert.Equal(t, "lf", name)

	_, ok = ASCIIName('a')
	assert.False(t, ok)
}
