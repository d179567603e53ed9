// Released under an MIT license. See LICENSE.

package scheme

import (
	"strings"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/reader/atom"
	"github.com/michaelmacinnis/tiny/internal/reader/lexer"
)

// Balanced wraps the reading and printing steps. A load that ended inside
// an open list is reported by the next one to run.
func balanced(a action) action {
	return func(sc *T) bool {
		if n := sc.unmatched; n != 0 {
			sc.unmatched = 0
			sc.retcode = -1

			return sc.raise("unmatched parentheses:", sc.mkInteger(int64(n)))
		}

		return a(sc)
	}
}

func (sc *T) token() lexer.Token {
	return lexer.Next(sc.in())
}

// MkAtom makes the value denoted by the text of an atom.
func (sc *T) mkAtom(s string) Cell {
	a := atom.Parse(s)

	switch a.Kind {
	case atom.Integer:
		return sc.mkInteger(a.Int)
	case atom.Real:
		return sc.mkReal(a.Real)
	case atom.Colon:
		rest := sc.list(sc.sym.quote, sc.mkAtom(a.Rest))

		return sc.list(sc.sym.colonHook, rest, sc.symbols.Intern(strings.ToLower(a.Text)))
	}

	return sc.symbols.Intern(a.Text)
}

// MkSharpConst makes the value of #name. It returns Nil if name is not a
// valid constant.
func (sc *T) mkSharpConst(name string) Cell {
	a := atom.ParseSharp(name)

	switch a.Kind {
	case atom.True:
		return True
	case atom.False:
		return False
	case atom.Integer:
		return sc.mkInteger(a.Int)
	case atom.Character:
		return sc.mkChar(a.Char)
	}

	return Nil
}

func (sc *T) readString() (Cell, bool) {
	b, ok := lexer.String(sc.in())
	if !ok {
		return Nil, false
	}

	return sc.mkString(b), true
}

func rdSexpr(sc *T) bool {
	switch sc.tok {
	case lexer.EOFToken:
		return sc.ret(EOF)

	case lexer.Vec:
		sc.save(opRdVec, Nil, Nil)

		return sc.rdList()

	case lexer.LParen:
		return sc.rdList()

	case lexer.Quote:
		return sc.rdPrefixed(opRdQuote)

	case lexer.BQuote:
		sc.tok = sc.token()
		if sc.tok == lexer.Vec {
			sc.save(opRdQQuoteVec, Nil, Nil)
			sc.tok = lexer.LParen
		} else {
			sc.save(opRdQQuote, Nil, Nil)
		}

		return sc.next(opRdSexpr)

	case lexer.Comma:
		return sc.rdPrefixed(opRdUnquote)

	case lexer.AtMark:
		return sc.rdPrefixed(opRdUqtsp)

	case lexer.Atom:
		return sc.ret(sc.mkAtom(lexer.Upto(sc.in(), lexer.Delimiters)))

	case lexer.DQuote:
		x, ok := sc.readString()
		if !ok {
			return sc.raise("Error reading string")
		}

		sc.heap.SetFlag(x, heap.Immutable)

		return sc.ret(x)

	case lexer.UScore:
		x, ok := sc.readString()
		if !ok {
			return sc.raise("Error reading string")
		}

		s := string(sc.heap.Bytes(x))
		if t := sc.translate(s); t != s {
			sc.heap.SetBytes(x, []byte(t))
		}

		sc.heap.SetFlag(x, heap.Immutable)

		return sc.ret(x)

	case lexer.Sharp:
		hook := sc.envs.Find(sc.envir, sc.sym.sharpHook, true)
		if hook == Nil {
			return sc.raise("syntax: illegal sharp expression")
		}

		sc.code = sc.cons(sc.envs.Value(hook), Nil)

		return sc.next(opEval)

	case lexer.SharpConst:
		x := sc.mkSharpConst(lexer.Upto(sc.in(), lexer.Delimiters))
		if x == Nil {
			return sc.raise("syntax: illegal sharp constant expression")
		}

		return sc.ret(x)

	case lexer.RParen:
		return sc.raise("syntax error: unexpected right parenthesis")

	case lexer.Dot:
		return sc.raise("syntax error: unexpected dot")
	}

	sc.logger.Warn("unhandled token", "token", sc.tok.String())

	return sc.ret(Nil)
}

func (sc *T) rdPrefixed(o op) bool {
	sc.save(o, Nil, Nil)
	sc.tok = sc.token()

	return sc.next(opRdSexpr)
}

// RdList starts reading a list after its opening parenthesis.
func (sc *T) rdList() bool {
	sc.tok = sc.token()

	switch sc.tok {
	case lexer.RParen:
		return sc.ret(Nil)
	case lexer.Dot:
		return sc.raise("syntax error: illegal dot expression")
	}

	sc.nest(1)
	sc.save(opRdList, Nil, Nil)

	return sc.next(opRdSexpr)
}

func rdList(sc *T) bool {
	sc.args = sc.cons(sc.value, sc.args)
	sc.tok = sc.token()

	switch sc.tok {
	case lexer.EOFToken:
		return sc.raise("syntax error: expected right paren, found EOF")

	case lexer.RParen:
		if c := sc.in().NextRune(); c != '\n' {
			sc.in().BackRune(c)
		}

		sc.nest(-1)

		return sc.ret(sc.reverseInPlace(Nil, sc.args))

	case lexer.Dot:
		sc.save(opRdDot, sc.args, Nil)
		sc.tok = sc.token()

		return sc.next(opRdSexpr)
	}

	sc.save(opRdList, sc.args, Nil)

	return sc.next(opRdSexpr)
}

func rdDot(sc *T) bool {
	if sc.token() != lexer.RParen {
		return sc.raise("syntax error: illegal dot expression")
	}

	sc.nest(-1)

	return sc.ret(sc.reverseInPlace(sc.value, sc.args))
}

func rdWrap(sym func(sc *T) Cell) action {
	return func(sc *T) bool {
		return sc.ret(sc.list(sym(sc), sc.value))
	}
}

func rdQQuoteVec(sc *T) bool {
	qq := sc.list(sc.sym.quasiquote, sc.value)

	return sc.ret(sc.list(sc.mkProc(opPApply), sc.mkProc(opVector), qq))
}

func rdVec(sc *T) bool {
	sc.args = sc.value

	return sc.next(opVector)
}
