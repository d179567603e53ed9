// Released under an MIT license. See LICENSE.

// Package atom decodes the text of atoms and sharp constants.
package atom

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the kind of value an atom's text denotes.
type Kind int

// Atom kinds.
const (
	Symbol Kind = iota
	Integer
	Real
	Colon
	Invalid
	True
	False
	Character
)

// T (atom) is a decoded atom.
type T struct {
	Kind Kind
	Int  int64
	Real float64
	Char rune
	Text string // Symbol name, or the qualifier of a Colon atom.
	Rest string // Text after "::" in a Colon atom.
}

// Parse decodes an atom. Text that does not look like a number is a
// symbol. Text containing "::" is a qualified reference.
func Parse(s string) T {
	if i := strings.Index(s, "::"); i >= 0 {
		return T{Kind: Colon, Text: s[:i], Rest: s[i+2:]}
	}

	if !numeric(s) {
		return T{Kind: Symbol, Text: s}
	}

	if strings.ContainsAny(s, ".eE") {
		return T{Kind: Real, Real: float(s)}
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Out of range values saturate.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return T{Kind: Integer, Int: i}
		}

		return T{Kind: Symbol, Text: s}
	}

	return T{Kind: Integer, Int: i}
}

// A numeral is an optional sign, digits with at most one decimal point,
// and an optional exponent.
func numeric(s string) bool {
	p := 0
	dot := false

	next := func() byte {
		if p < len(s) {
			c := s[p]
			p++

			return c
		}

		p++

		return 0
	}

	c := next()
	if c == '+' || c == '-' {
		c = next()
	}

	if c == '.' {
		dot = true
		c = next()
	}

	if !digit(c) {
		return false
	}

	exp := false

	for ; p < len(s); p++ {
		c = s[p]
		if digit(c) {
			continue
		}

		switch {
		case c == '.' && !dot:
			dot = true

			continue
		case (c == 'e' || c == 'E') && !exp:
			exp = true
			dot = true

			if p+1 < len(s) && (s[p+1] == '-' || s[p+1] == '+' || digit(s[p+1])) {
				p++

				continue
			}
		}

		return false
	}

	return true
}

// Parses the longest prefix of s that is a valid float.
func float(s string) float64 {
	for n := len(s); n > 0; n-- {
		if f, err := strconv.ParseFloat(s[:n], 64); err == nil {
			return f
		}
	}

	return 0
}

func digit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ParseSharp decodes the text of a sharp constant, without the leading #.
func ParseSharp(name string) T {
	if name == "" {
		return T{Kind: Invalid}
	}

	switch name {
	case "t":
		return T{Kind: True}
	case "f":
		return T{Kind: False}
	}

	switch name[0] {
	case 'o':
		return T{Kind: Integer, Int: prefix(name[1:], 8)}
	case 'd':
		return T{Kind: Integer, Int: prefix(name[1:], 10)}
	case 'x':
		return T{Kind: Integer, Int: prefix(name[1:], 16)}
	case 'b':
		return T{Kind: Integer, Int: prefix(name[1:], 2)}
	case '\\':
		return character(name[1:])
	}

	return T{Kind: Invalid}
}

func character(s string) T {
	var r rune

	switch {
	case strings.EqualFold(s, "space"):
		r = ' '
	case strings.EqualFold(s, "newline"):
		r = '\n'
	case strings.EqualFold(s, "return"):
		r = '\r'
	case strings.EqualFold(s, "tab"):
		r = '\t'
	case len(s) > 1 && s[0] == 'x':
		// Longer than \xffffffff cannot be a code point.
		if len(s) > 9 {
			return T{Kind: Invalid}
		}

		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return T{Kind: Invalid}
		}

		r = rune(v)
	default:
		if c, ok := ASCII(s); ok {
			r = c

			break
		}

		c, _ := utf8.DecodeRuneInString(s)
		if c == utf8.RuneError {
			return T{Kind: Invalid}
		}

		r = c
	}

	if !utf8.ValidRune(r) {
		return T{Kind: Invalid}
	}

	return T{Kind: Character, Char: r}
}

// Scans an optionally signed integer in base from the start of s and
// ignores anything after it.
func prefix(s string, base int) int64 {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var v int64

	for _, c := range s {
		d := int64(-1)

		switch {
		case c >= '0' && c <= '9':
			d = int64(c - '0')
		case c >= 'a' && c <= 'z':
			d = int64(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			d = int64(c-'A') + 10
		}

		if d < 0 || d >= int64(base) {
			break
		}

		v = v*int64(base) + d
	}

	if neg {
		return -v
	}

	return v
}

//nolint:gochecknoglobals
var ascii = [...]string{
	"nul", "soh", "stx", "etx", "eot", "enq", "ack", "bel",
	"bs", "ht", "lf", "vt", "ff", "cr", "so", "si",
	"dle", "dc1", "dc2", "dc3", "dc4", "nak", "syn", "etb",
	"can", "em", "sub", "esc", "fs", "gs", "rs", "us",
}

// ASCII returns the control character with the given name.
func ASCII(name string) (rune, bool) {
	if strings.EqualFold(name, "del") {
		return 127, true
	}

	for i, s := range ascii {
		if strings.EqualFold(name, s) {
			return rune(i), true
		}
	}

	return 0, false
}

// ASCIIName returns the name of a control character.
func ASCIIName(r rune) (string, bool) {
	switch {
	case r == 127:
		return "del", true
	case r >= 0 && int(r) < len(ascii):
		return ascii[r], true
	}

	return "", false
}
