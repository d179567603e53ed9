// Released under an MIT license. See LICENSE.

package scheme

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Characters and bytes.

func charToInteger(sc *T) bool {
	return sc.ret(sc.mkInteger(int64(sc.char(sc.car(sc.args)))))
}

func integerToChar(sc *T) bool {
	r := rune(sc.ivalue(sc.car(sc.args)))
	if !utf8.ValidRune(r) {
		sc.logger.Warn("integer->char: invalid code point", "value", sc.ivalue(sc.car(sc.args)))
	}

	return sc.ret(sc.mkChar(r))
}

func charMap(f func(rune) rune) action {
	return func(sc *T) bool {
		return sc.ret(sc.mkChar(f(sc.char(sc.car(sc.args)))))
	}
}

func charTest(f func(rune) bool) action {
	return func(sc *T) bool {
		return sc.retBool(f(sc.char(sc.car(sc.args))))
	}
}

func byteToInteger(sc *T) bool {
	return sc.ret(sc.mkInteger(int64(sc.heap.Word(sc.car(sc.args)))))
}

func integerToByte(sc *T) bool {
	return sc.ret(sc.mkByte(byte(sc.ivalue(sc.car(sc.args)))))
}

// Symbols and atoms.

func symbolToString(sc *T) bool {
	x := sc.mkString([]byte(sc.symbolName(sc.car(sc.args))))
	sc.heap.SetFlag(x, heap.Immutable)

	return sc.ret(x)
}

func stringToSymbol(sc *T) bool {
	return sc.ret(sc.symbols.Intern(string(sc.heap.Bytes(sc.car(sc.args)))))
}

func validBase(b int64) bool {
	switch b {
	case 2, 8, 10, 16:
		return true
	}

	return false
}

func atomToString(sc *T) bool {
	x, y := sc.car(sc.args), sc.cadr(sc.args)

	base := int64(0)
	if y != Nil {
		base = sc.ivalue(y)
		if !sc.isNumber(x) || !validBase(base) {
			return sc.raise("atom->string: bad base:", y)
		}
	}

	switch sc.heap.Type(x) {
	case heap.Number, heap.Byte, heap.Character, heap.String, heap.Symbol:
		return sc.ret(sc.mkString(bytes.Clone(sc.printer.Atom(x, false, int(base)))))
	}

	return sc.raise("atom->string: not an atom:", x)
}

func stringToAtom(sc *T) bool {
	s := string(sc.heap.Bytes(sc.car(sc.args)))

	base := int64(0)
	if y := sc.cadr(sc.args); y != Nil {
		base = sc.ivalue(y)
		if !validBase(base) {
			return sc.raise("string->atom: bad base:", y)
		}
	}

	switch {
	case s != "" && s[0] == '#':
		return sc.ret(sc.mkSharpConst(s[1:]))
	case base == 0 || base == 10:
		return sc.ret(sc.mkAtom(s))
	}

	i, err := strconv.ParseInt(s, int(base), 64)
	if err != nil {
		return sc.ret(False)
	}

	return sc.ret(sc.mkInteger(i))
}

// Strings are indexed by character.

func (sc *T) runes(x Cell) int {
	return utf8.RuneCount(sc.heap.Bytes(x))
}

// Offset returns the byte offset of the i-th character of b.
func offset(b []byte, i int) int {
	o := 0
	for ; i > 0 && o < len(b); i-- {
		_, n := utf8.DecodeRune(b[o:])
		o += n
	}

	return o
}

// Strings are allocated outside the cell arena. This bounds a single one.
const maxStringBytes = 1 << 30

func makeString(sc *T) bool {
	n := int(sc.ivalue(sc.car(sc.args)))

	fill := ' '
	if sc.cdr(sc.args) != Nil {
		fill = sc.char(sc.cadr(sc.args))
	}

	enc := utf8.AppendRune(nil, fill)
	if n > maxStringBytes/len(enc) {
		return sc.raise("make-string: too long:", sc.car(sc.args))
	}

	b := bytes.Repeat(enc, n)

	return sc.ret(sc.mkString(b))
}

func stringLength(sc *T) bool {
	return sc.ret(sc.mkInteger(int64(sc.runes(sc.car(sc.args)))))
}

func stringRef(sc *T) bool {
	s, x := sc.car(sc.args), sc.cadr(sc.args)

	if !sc.isInteger(x) {
		return sc.raise("string-ref: index must be exact:", x)
	}

	i := int(sc.ivalue(x))
	if i >= sc.runes(s) {
		return sc.raise("string-ref: out of bounds:", x)
	}

	b := sc.heap.Bytes(s)
	r, _ := utf8.DecodeRune(b[offset(b, i):])

	return sc.ret(sc.mkChar(r))
}

func stringSet(sc *T) bool {
	s, x := sc.car(sc.args), sc.cadr(sc.args)

	if sc.heap.Immutable(s) {
		return sc.raise("string-set!: unable to alter immutable string:", s)
	}

	if !sc.isInteger(x) {
		return sc.raise("string-set!: index must be exact:", x)
	}

	i := int(sc.ivalue(x))
	if i >= sc.runes(s) {
		return sc.raise("string-set!: out of bounds:", x)
	}

	b := sc.heap.Bytes(s)
	p1 := offset(b, i)
	_, n := utf8.DecodeRune(b[p1:])

	r := make([]byte, 0, len(b)+utf8.UTFMax)
	r = append(r, b[:p1]...)
	r = utf8.AppendRune(r, sc.char(sc.car(sc.cddr(sc.args))))
	r = append(r, b[p1+n:]...)

	sc.heap.SetBytes(s, r)

	return sc.ret(s)
}

func stringAppend(sc *T) bool {
	var b []byte
	for x := sc.args; x != Nil; x = sc.cdr(x) {
		b = append(b, sc.heap.Bytes(sc.car(x))...)
	}

	return sc.ret(sc.mkString(b))
}

func substring(sc *T) bool {
	s := sc.car(sc.args)
	n := sc.runes(s)

	start := sc.cadr(sc.args)
	i0 := int(sc.ivalue(start))

	if i0 > n {
		return sc.raise("substring: start out of bounds:", start)
	}

	i1 := n

	if rest := sc.cddr(sc.args); rest != Nil {
		end := sc.car(rest)

		i1 = int(sc.ivalue(end))
		if i1 > n || i1 < i0 {
			return sc.raise("substring: end out of bounds:", end)
		}
	}

	b := sc.heap.Bytes(s)
	beg := offset(b, i0)
	end := beg + offset(b[beg:], i1-i0)

	return sc.ret(sc.mkString(append([]byte(nil), b[beg:end]...)))
}

// Vectors.

func vector(sc *T) bool {
	n := sc.length(sc.args)
	if n < 0 {
		return sc.raise("vector: not a proper list:", sc.args)
	}

	v := sc.mkVector(n, Nil)
	if v == heap.Sentinel {
		return sc.ret(v)
	}

	i := 0
	for x := sc.args; sc.isPair(x); x = sc.cdr(x) {
		sc.heap.SetElem(v, i, sc.car(x))
		i++
	}

	return sc.ret(v)
}

func makeVector(sc *T) bool {
	fill := Nil
	if sc.cdr(sc.args) != Nil {
		fill = sc.cadr(sc.args)
	}

	return sc.ret(sc.mkVector(int(sc.ivalue(sc.car(sc.args))), fill))
}

func vectorLength(sc *T) bool {
	return sc.ret(sc.mkInteger(int64(sc.heap.Len(sc.car(sc.args)))))
}

func vectorRef(sc *T) bool {
	v, x := sc.car(sc.args), sc.cadr(sc.args)

	if !sc.isInteger(x) {
		return sc.raise("vector-ref: index must be exact:", x)
	}

	i := int(sc.ivalue(x))
	if i >= sc.heap.Len(v) {
		return sc.raise("vector-ref: out of bounds:", x)
	}

	return sc.ret(sc.heap.Elem(v, i))
}

func vectorSet(sc *T) bool {
	v, x := sc.car(sc.args), sc.cadr(sc.args)

	if sc.heap.Immutable(v) {
		return sc.raise("vector-set!: unable to alter immutable vector:", v)
	}

	if !sc.isInteger(x) {
		return sc.raise("vector-set!: index must be exact:", x)
	}

	i := int(sc.ivalue(x))
	if i >= sc.heap.Len(v) {
		return sc.raise("vector-set!: out of bounds:", x)
	}

	sc.heap.SetElem(v, i, sc.car(sc.cddr(sc.args)))

	return sc.ret(v)
}
