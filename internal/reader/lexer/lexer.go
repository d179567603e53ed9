// Released under an MIT license. See LICENSE.

// Package lexer provides the tokenizer used by the reader opcodes.
//
// The lexer does not build objects. It classifies the next token and
// leaves the port positioned so that the caller can scan the token's text
// with Upto or String.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters end an atom.
const Delimiters = "()\";\f\t\v\n\r "

// EOF is returned by Source at the end of input.
const EOF = -1

// Source is the character source being scanned, usually a port.
type Source interface {
	NextRune() rune
	BackRune(r rune)
}

// Token is a token class.
type Token int

// Token classes.
const (
	EOFToken Token = iota
	LParen
	RParen
	Dot
	Atom
	Quote
	DQuote
	BQuote
	Comma
	AtMark
	Sharp
	SharpConst
	Vec
	UScore
)

//nolint:gochecknoglobals
var names = [...]string{
	EOFToken:   "EOF",
	LParen:     "(",
	RParen:     ")",
	Dot:        ".",
	Atom:       "atom",
	Quote:      "'",
	DQuote:     "\"",
	BQuote:     "`",
	Comma:      ",",
	AtMark:     ",@",
	Sharp:      "#",
	SharpConst: "#const",
	Vec:        "#(",
	UScore:     "_\"",
}

func (t Token) String() string {
	if t < 0 || int(t) >= len(names) {
		return "unknown"
	}

	return names[t]
}

// Next skips whitespace and comments and classifies the next token.
func Next(s Source) Token {
	for {
		c := SkipSpace(s)
		if c == EOF {
			return EOFToken
		}

		switch c = s.NextRune(); c {
		case EOF:
			return EOFToken
		case '(':
			return LParen
		case ')':
			return RParen
		case '.':
			c = s.NextRune()
			if c == ' ' || c == '\n' || c == '\t' {
				return Dot
			}

			s.BackRune(c)
			s.BackRune('.')

			return Atom
		case '\'':
			return Quote
		case ';':
			if !skipLine(s) {
				return EOFToken
			}
		case '"':
			return DQuote
		case '_':
			c = s.NextRune()
			if c == '"' {
				return UScore
			}

			s.BackRune(c)
			s.BackRune('_')

			return Atom
		case '`':
			return BQuote
		case ',':
			c = s.NextRune()
			if c == '@' {
				return AtMark
			}

			s.BackRune(c)

			return Comma
		case '#':
			c = s.NextRune()

			switch {
			case c == '(':
				return Vec
			case c == '!':
				if !skipLine(s) {
					return EOFToken
				}
			case c != EOF && strings.ContainsRune(" tfodxb\\", c):
				s.BackRune(c)

				return SharpConst
			default:
				s.BackRune(c)

				return Sharp
			}
		default:
			s.BackRune(c)

			return Atom
		}
	}
}

// SkipSpace consumes whitespace and returns the next character without
// consuming it.
func SkipSpace(s Source) rune {
	for {
		c := s.NextRune()
		if c == EOF {
			return EOF
		}

		if !unicode.IsSpace(c) {
			s.BackRune(c)

			return c
		}
	}
}

// Upto reads characters until one of delims, which is left unread. A
// backslash followed by a delimiter is kept so that #\( names a character.
func Upto(s Source, delims string) string {
	var b strings.Builder

	for {
		c := s.NextRune()
		if c == EOF {
			break
		}

		if strings.ContainsRune(delims, c) {
			if b.Len() == 1 && b.String() == "\\" {
				b.WriteRune(c)

				break
			}

			s.BackRune(c)

			break
		}

		b.WriteRune(c)
	}

	return b.String()
}

// String reads the body of a string literal after its opening quote. It
// returns false at end of input or on a malformed hex escape.
func String(s Source) ([]byte, bool) {
	const (
		ok = iota
		bsl
		x1
		x2
		oct1
		oct2
	)

	var (
		b     []byte
		code  int
		state = ok
	)

	for {
		c := s.NextRune()
		if c == EOF {
			return nil, false
		}

		switch state {
		case ok:
			switch c {
			case '\\':
				state = bsl
			case '"':
				return b, true
			default:
				b = utf8.AppendRune(b, c)
			}
		case bsl:
			state = ok

			switch c {
			case '0', '1', '2', '3', '4', '5', '6', '7':
				state = oct1
				code = int(c - '0')
			case 'x', 'X':
				state = x1
				code = 0
			case 'n':
				b = append(b, '\n')
			case 't':
				b = append(b, '\t')
			case 'r':
				b = append(b, '\r')
			default:
				b = utf8.AppendRune(b, c)
			}
		case x1, x2:
			v := hex(c)
			if v < 0 {
				return nil, false
			}

			code = code<<4 | v

			if state == x1 {
				state = x2
			} else {
				b = append(b, byte(code))
				state = ok
			}
		case oct1, oct2:
			if c < '0' || c > '7' {
				b = append(b, byte(code))
				s.BackRune(c)
				state = ok

				continue
			}

			if state == oct2 && code >= 32 {
				return nil, false
			}

			code = code<<3 | int(c-'0')

			if state == oct1 {
				state = oct2
			} else {
				b = append(b, byte(code))
				state = ok
			}
		}
	}
}

func hex(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}

func skipLine(s Source) bool {
	for {
		c := s.NextRune()
		if c == EOF {
			return false
		}

		if c == '\n' {
			return true
		}
	}
}

// Incomplete reports whether s ends inside a list or a string literal.
func Incomplete(s Source) bool {
	depth := 0

	for {
		switch Next(s) {
		case EOFToken:
			return depth > 0
		case LParen, Vec:
			depth++
		case RParen:
			if depth > 0 {
				depth--
			}
		case DQuote, UScore:
			if _, ok := String(s); !ok {
				c := s.NextRune()
				if c == EOF {
					return true
				}

				s.BackRune(c)
			}
		case Atom, SharpConst:
			Upto(s, Delimiters)
		}
	}
}
