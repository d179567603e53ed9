// Released under an MIT license. See LICENSE.

package scheme

import (
	"fmt"
	"math"
	"unicode"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

// An op is a step of the machine. Ops with a name are also builtin
// procedures.
type op uint16

// Ops.
const (
	opLoad op = iota
	opT0Lvl
	opT1Lvl
	opReadInternal
	opGensym
	opValuePrint
	opEval
	opRealEval
	opE0Args
	opE1Args
	opApply
	opRealApply
	opDoMacro
	opLambda
	opLambda1
	opMkClosure
	opQuote
	opQuasiquote
	opDef0
	opDef1
	opDefP
	opBegin
	opIf0
	opIf1
	opSet0
	opSet1
	opLet0
	opLet1
	opLet2
	opLet0Ast
	opLet1Ast
	opLet2Ast
	opLet0Rec
	opLet1Rec
	opLet2Rec
	opCond0
	opCond1
	opDelay
	opAnd0
	opAnd1
	opOr0
	opOr1
	opC0Stream
	opC1Stream
	opMacro0
	opMacro1
	opCase0
	opCase1
	opCase2
	opPEval
	opPApply
	opContinuation
	opTracing

	opInex2Ex
	opExp
	opLog
	opSin
	opCos
	opTan
	opAsin
	opAcos
	opAtan
	opSqrt
	opExpt
	opFloor
	opCeiling
	opTruncate
	opRound
	opAdd
	opSub
	opMul
	opDiv
	opQuotient
	opRem
	opMod
	opNumEq
	opLess
	opGre
	opLeq
	opGeq

	opCar
	opCdr
	opCons
	opSetCar
	opSetCdr
	opReverse
	opListStar
	opAppend
	opListLength
	opAssq

	opChar2Int
	opInt2Char
	opCharUpcase
	opCharDowncase
	opByte2Int
	opInt2Byte
	opCharAlphaP
	opCharNumP
	opCharSpaceP
	opCharUpperP
	opCharLowerP

	opSym2Str
	opStr2Sym
	opAtom2Str
	opStr2Atom
	opMkString
	opStrLen
	opStrRef
	opStrSet
	opStrAppend
	opSubstr

	opVector
	opMkVector
	opVecLen
	opVecRef
	opVecSet

	opNot
	opBoolP
	opEOFObjP
	opNullP
	opSymbolP
	opNumberP
	opStringP
	opIntegerP
	opRealP
	opByteP
	opCharP
	opPortP
	opInPortP
	opOutPortP
	opProcP
	opPairP
	opListP
	opEnvP
	opVectorP
	opEq
	opEqv
	opClosureP
	opMacroP

	opForce
	opSaveForced
	opErr0
	opErr1
	opQuit
	opGC
	opGCVerbose
	opNewSegment
	opOblist
	opApropos
	opGetClosure
	opPut
	opGet
	opIntEnv
	opCurrEnv

	opWrite
	opDisplay
	opWriteChar
	opWriteByte
	opNewline
	opRead
	opReadChar
	opPeekChar
	opReadByte
	opPeekByte
	opCharReady
	opByteReady
	opCurrInPort
	opCurrOutPort
	opSetInPort
	opSetOutPort
	opOpenInFile
	opOpenOutFile
	opOpenInOutFile
	opOpenInString
	opOpenInOutString
	opOpenOutString
	opGetOutString
	opCloseInPort
	opCloseOutPort

	opRdSexpr
	opRdList
	opRdDot
	opRdQuote
	opRdQQuote
	opRdQQuoteVec
	opRdUnquote
	opRdUqtsp
	opRdVec
	opP0List
	opP1List
	opPVecFrom

	ops
)

// Many is the maximum arity of a procedure taking any number of arguments.
const many = 0xffff

// A test checks one argument of a builtin procedure.
type test struct {
	kind string
	ok   func(sc *T, x Cell) bool
}

//nolint:gochecknoglobals
var (
	tAny = test{"", func(*T, Cell) bool { return true }}

	tString  = test{"string", (*T).isString}
	tSymbol  = test{"symbol", (*T).isSymbol}
	tPort    = test{"port", (*T).isPort}
	tInport  = test{"input port", (*T).isInport}
	tOutport = test{"output port", (*T).isOutport}
	tEnv     = test{"environment", func(sc *T, x Cell) bool { return sc.is(x, heap.Environment) }}
	tPair    = test{"pair", (*T).isPair}
	tList    = test{"pair or '()", func(sc *T, x Cell) bool { return x == Nil || sc.isPair(x) }}
	tChar    = test{"character", func(sc *T, x Cell) bool { return sc.is(x, heap.Character) }}
	tVector  = test{"vector", func(sc *T, x Cell) bool { return sc.is(x, heap.Vector) }}
	tNumber  = test{"number", (*T).isNumber}
	tInteger = test{"integer", (*T).isInteger}
	tNatural = test{"non-negative integer", func(sc *T, x Cell) bool {
		return sc.isInteger(x) && sc.ivalue(x) >= 0
	}}
	tByte = test{"byte", func(sc *T, x Cell) bool { return sc.is(x, heap.Byte) }}
)

// A signature describes an op. Ops without a name are internal steps and
// their arguments are not checked. The last test applies to any remaining
// arguments.
type signature struct {
	name   string
	min    int
	max    int
	tests  []test
	action action
}

func tests(ts ...test) []test {
	return ts
}

//nolint:gochecknoglobals
var (
	table [ops]signature

	syntaxOps = map[string]op{
		"lambda":      opLambda,
		"quote":       opQuote,
		"quasiquote":  opQuasiquote,
		"define":      opDef0,
		"if":          opIf0,
		"begin":       opBegin,
		"set!":        opSet0,
		"let":         opLet0,
		"let*":        opLet0Ast,
		"letrec":      opLet0Rec,
		"cond":        opCond0,
		"delay":       opDelay,
		"and":         opAnd0,
		"or":          opOr0,
		"cons-stream": opC0Stream,
		"macro":       opMacro0,
		"case":        opCase0,
	}
)

func procName(o int) string {
	if o < 0 || o >= len(table) || table[o].name == "" {
		return "ILLEGAL!"
	}

	return table[o].name
}

// Check returns an error message if the arguments in the args register
// do not satisfy the signature s.
func (sc *T) check(s *signature) string {
	n := sc.length(sc.args)

	switch {
	case n < s.min:
		qualifier := " at least"
		if s.min == s.max {
			qualifier = ""
		}

		return fmt.Sprintf("%s: needs%s %d argument(s)", s.name, qualifier, s.min)
	case n > s.max:
		qualifier := " at most"
		if s.min == s.max {
			qualifier = ""
		}

		return fmt.Sprintf("%s: needs%s %d argument(s)", s.name, qualifier, s.max)
	}

	t := s.tests
	if len(t) == 0 {
		return ""
	}

	x := sc.args
	for i := 0; i < n; i++ {
		if !t[0].ok(sc, sc.car(x)) {
			return fmt.Sprintf("%s: argument %d must be: %s", s.name, i+1, t[0].kind)
		}

		if len(t) > 1 {
			t = t[1:]
		}

		x = sc.cdr(x)
	}

	return ""
}

func init() { //nolint:gochecknoinits
	def := func(o op, name string, minArgs, maxArgs int, ts []test, a action) {
		table[o] = signature{name: name, min: minArgs, max: maxArgs, tests: ts, action: a}
	}

	step := func(o op, a action) {
		table[o] = signature{action: a}
	}

	// Evaluation.
	def(opLoad, "load", 1, 1, tests(tString), load)
	step(opT0Lvl, t0lvl)
	step(opT1Lvl, t1lvl)
	step(opReadInternal, readInternal)
	def(opGensym, "gensym", 0, 0, nil, gensym)
	step(opValuePrint, valuePrint)
	step(opEval, eval)
	step(opRealEval, realEval)
	step(opE0Args, e0args)
	step(opE1Args, e1args)
	step(opApply, apply)
	step(opRealApply, realApply)
	step(opDoMacro, doMacro)
	step(opLambda, lambda)
	step(opLambda1, lambda1)
	def(opMkClosure, "make-closure", 1, 2, tests(tPair, tEnv), mkClosure)
	step(opQuote, quote)
	step(opQuasiquote, quasiquote)
	step(opDef0, def0)
	step(opDef1, def1)
	def(opDefP, "defined?", 1, 2, tests(tSymbol, tEnv), defP)
	step(opBegin, begin)
	step(opIf0, if0)
	step(opIf1, if1)
	step(opSet0, set0)
	step(opSet1, set1)
	step(opLet0, let0)
	step(opLet1, let1)
	step(opLet2, let2)
	step(opLet0Ast, let0ast)
	step(opLet1Ast, let1ast)
	step(opLet2Ast, let2ast)
	step(opLet0Rec, let0rec)
	step(opLet1Rec, let1rec)
	step(opLet2Rec, let2rec)
	step(opCond0, cond0)
	step(opCond1, cond1)
	step(opDelay, delay)
	step(opAnd0, and0)
	step(opAnd1, and1)
	step(opOr0, or0)
	step(opOr1, or1)
	step(opC0Stream, c0stream)
	step(opC1Stream, c1stream)
	step(opMacro0, macro0)
	step(opMacro1, macro1)
	step(opCase0, case0)
	step(opCase1, case1)
	step(opCase2, case2)
	def(opPEval, "eval", 1, 2, tests(tAny, tEnv), peval)
	def(opPApply, "apply", 1, many, nil, papply)
	def(opContinuation, "call-with-current-continuation", 1, 1, nil, callcc)
	def(opTracing, "tracing", 1, 1, tests(tNatural), tracing)

	// Numbers.
	def(opInex2Ex, "inexact->exact", 1, 1, tests(tNumber), inexactToExact)
	def(opExp, "exp", 1, 1, tests(tNumber), math1(math.Exp))
	def(opLog, "log", 1, 1, tests(tNumber), math1(math.Log))
	def(opSin, "sin", 1, 1, tests(tNumber), math1(math.Sin))
	def(opCos, "cos", 1, 1, tests(tNumber), math1(math.Cos))
	def(opTan, "tan", 1, 1, tests(tNumber), math1(math.Tan))
	def(opAsin, "asin", 1, 1, tests(tNumber), math1(math.Asin))
	def(opAcos, "acos", 1, 1, tests(tNumber), math1(math.Acos))
	def(opAtan, "atan", 1, 2, tests(tNumber), atan)
	def(opSqrt, "sqrt", 1, 1, tests(tNumber), math1(math.Sqrt))
	def(opExpt, "expt", 2, 2, tests(tNumber), expt)
	def(opFloor, "floor", 1, 1, tests(tNumber), math1(math.Floor))
	def(opCeiling, "ceiling", 1, 1, tests(tNumber), math1(math.Ceil))
	def(opTruncate, "truncate", 1, 1, tests(tNumber), math1(math.Trunc))
	def(opRound, "round", 1, 1, tests(tNumber), round)
	def(opAdd, "+", 0, many, tests(tNumber), add)
	def(opSub, "-", 1, many, tests(tNumber), sub)
	def(opMul, "*", 0, many, tests(tNumber), mul)
	def(opDiv, "/", 1, many, tests(tNumber), div)
	def(opQuotient, "quotient", 1, many, tests(tInteger), quotient)
	def(opRem, "remainder", 2, 2, tests(tInteger), remainder)
	def(opMod, "modulo", 2, 2, tests(tInteger), modulo)
	def(opNumEq, "=", 2, many, tests(tNumber), compare(func(c int) bool { return c == 0 }))
	def(opLess, "<", 2, many, tests(tNumber), compare(func(c int) bool { return c < 0 }))
	def(opGre, ">", 2, many, tests(tNumber), compare(func(c int) bool { return c > 0 }))
	def(opLeq, "<=", 2, many, tests(tNumber), compare(func(c int) bool { return c <= 0 }))
	def(opGeq, ">=", 2, many, tests(tNumber), compare(func(c int) bool { return c >= 0 }))

	// Pairs and lists.
	def(opCar, "car", 1, 1, tests(tPair), car)
	def(opCdr, "cdr", 1, 1, tests(tPair), cdr)
	def(opCons, "cons", 2, 2, nil, cons)
	def(opSetCar, "set-car!", 2, 2, tests(tPair, tAny), setCar)
	def(opSetCdr, "set-cdr!", 2, 2, tests(tPair, tAny), setCdr)
	def(opReverse, "reverse", 1, 1, tests(tList), reverse)
	def(opListStar, "list*", 1, many, nil, listStar)
	def(opAppend, "append", 0, many, nil, appendLists)
	def(opListLength, "length", 1, 1, tests(tList), length)
	def(opAssq, "assq", 2, 2, nil, assq)

	// Characters and bytes.
	def(opChar2Int, "char->integer", 1, 1, tests(tChar), charToInteger)
	def(opInt2Char, "integer->char", 1, 1, tests(tNatural), integerToChar)
	def(opCharUpcase, "char-upcase", 1, 1, tests(tChar), charMap(unicode.ToUpper))
	def(opCharDowncase, "char-downcase", 1, 1, tests(tChar), charMap(unicode.ToLower))
	def(opByte2Int, "byte->integer", 1, 1, tests(tByte), byteToInteger)
	def(opInt2Byte, "integer->byte", 1, 1, tests(tNatural), integerToByte)
	def(opCharAlphaP, "char-alphabetic?", 1, 1, tests(tChar), charTest(unicode.IsLetter))
	def(opCharNumP, "char-numeric?", 1, 1, tests(tChar), charTest(unicode.IsDigit))
	def(opCharSpaceP, "char-whitespace?", 1, 1, tests(tChar), charTest(unicode.IsSpace))
	def(opCharUpperP, "char-upper-case?", 1, 1, tests(tChar), charTest(unicode.IsUpper))
	def(opCharLowerP, "char-lower-case?", 1, 1, tests(tChar), charTest(unicode.IsLower))

	// Strings and symbols.
	def(opSym2Str, "symbol->string", 1, 1, tests(tSymbol), symbolToString)
	def(opStr2Sym, "string->symbol", 1, 1, tests(tString), stringToSymbol)
	def(opAtom2Str, "atom->string", 1, 2, tests(tAny, tNatural), atomToString)
	def(opStr2Atom, "string->atom", 1, 2, tests(tString, tNatural), stringToAtom)
	def(opMkString, "make-string", 1, 2, tests(tNatural, tChar), makeString)
	def(opStrLen, "string-length", 1, 1, tests(tString), stringLength)
	def(opStrRef, "string-ref", 2, 2, tests(tString, tNatural), stringRef)
	def(opStrSet, "string-set!", 3, 3, tests(tString, tNatural, tChar), stringSet)
	def(opStrAppend, "string-append", 0, many, tests(tString), stringAppend)
	def(opSubstr, "substring", 2, 3, tests(tString, tNatural), substring)

	// Vectors.
	def(opVector, "vector", 0, many, nil, vector)
	def(opMkVector, "make-vector", 1, 2, tests(tNatural, tAny), makeVector)
	def(opVecLen, "vector-length", 1, 1, tests(tVector), vectorLength)
	def(opVecRef, "vector-ref", 2, 2, tests(tVector, tNatural), vectorRef)
	def(opVecSet, "vector-set!", 3, 3, tests(tVector, tNatural, tAny), vectorSet)

	// Predicates.
	def(opNot, "not", 1, 1, nil, predicate(func(_ *T, x Cell) bool { return x == False }))
	def(opBoolP, "boolean?", 1, 1, nil, predicate(func(_ *T, x Cell) bool { return x == False || x == True }))
	def(opEOFObjP, "eof-object?", 1, 1, nil, predicate(func(_ *T, x Cell) bool { return x == EOF }))
	def(opNullP, "null?", 1, 1, nil, predicate(func(_ *T, x Cell) bool { return x == Nil }))
	def(opSymbolP, "symbol?", 1, 1, nil, predicate(tSymbol.ok))
	def(opNumberP, "number?", 1, 1, nil, predicate(tNumber.ok))
	def(opStringP, "string?", 1, 1, nil, predicate(tString.ok))
	def(opIntegerP, "integer?", 1, 1, nil, predicate(tInteger.ok))
	def(opRealP, "real?", 1, 1, nil, predicate(tNumber.ok))
	def(opByteP, "byte?", 1, 1, nil, predicate(tByte.ok))
	def(opCharP, "char?", 1, 1, nil, predicate(tChar.ok))
	def(opPortP, "port?", 1, 1, nil, predicate(tPort.ok))
	def(opInPortP, "input-port?", 1, 1, nil, predicate(tInport.ok))
	def(opOutPortP, "output-port?", 1, 1, nil, predicate(tOutport.ok))
	def(opProcP, "procedure?", 1, 1, nil, predicate((*T).isProcedure))
	def(opPairP, "pair?", 1, 1, nil, predicate(tPair.ok))
	def(opListP, "list?", 1, 1, nil, predicate(func(sc *T, x Cell) bool { return sc.length(x) >= 0 }))
	def(opEnvP, "environment?", 1, 1, nil, predicate(tEnv.ok))
	def(opVectorP, "vector?", 1, 1, nil, predicate(tVector.ok))
	def(opEq, "eq?", 2, 2, nil, eq)
	def(opEqv, "eqv?", 2, 2, nil, eqv)
	def(opClosureP, "closure?", 1, 1, nil, predicate(func(sc *T, x Cell) bool { return sc.is(x, heap.Closure) }))
	def(opMacroP, "macro?", 1, 1, nil, predicate(func(sc *T, x Cell) bool { return sc.is(x, heap.Macro) }))

	// Control.
	def(opForce, "force", 1, 1, nil, force)
	step(opSaveForced, saveForced)
	def(opErr0, "error", 1, many, nil, err0)
	step(opErr1, err1)
	def(opQuit, "quit", 0, 1, tests(tNumber), quit)
	def(opGC, "gc", 0, 0, nil, gc)
	def(opGCVerbose, "gc-verbose", 0, 1, nil, gcVerbose)
	def(opNewSegment, "new-segment", 0, 1, tests(tNumber), newSegment)
	def(opOblist, "oblist", 0, 0, nil, oblist)
	def(opApropos, "apropos", 1, 1, tests(tString), apropos)
	def(opGetClosure, "get-closure-code", 1, 1, nil, getClosureCode)
	def(opPut, "put", 3, 3, nil, put)
	def(opGet, "get", 2, 2, nil, get)
	def(opIntEnv, "interaction-environment", 0, 0, nil, interactionEnvironment)
	def(opCurrEnv, "current-environment", 0, 0, nil, currentEnvironment)

	// Input and output.
	def(opWrite, "write", 1, 2, tests(tAny, tOutport), write)
	def(opDisplay, "display", 1, 2, tests(tAny, tOutport), display)
	def(opWriteChar, "write-char", 1, 2, tests(tChar, tOutport), display)
	def(opWriteByte, "write-byte", 1, 2, tests(tByte, tOutport), display)
	def(opNewline, "newline", 0, 1, tests(tOutport), newline)
	def(opRead, "read", 0, 1, tests(tInport), balanced(read))
	def(opReadChar, "read-char", 0, 1, tests(tInport), balanced(readChar))
	def(opPeekChar, "peek-char", 0, 1, tests(tInport), balanced(readChar))
	def(opReadByte, "read-byte", 0, 1, tests(tInport), balanced(readByte))
	def(opPeekByte, "peek-byte", 0, 1, tests(tInport), balanced(readByte))
	def(opCharReady, "char-ready?", 0, 1, tests(tInport), balanced(ready))
	def(opByteReady, "byte-ready?", 0, 1, tests(tInport), balanced(ready))
	def(opCurrInPort, "current-input-port", 0, 0, nil, currentInputPort)
	def(opCurrOutPort, "current-output-port", 0, 0, nil, currentOutputPort)
	step(opSetInPort, balanced(setInputPort))
	step(opSetOutPort, balanced(setOutputPort))
	def(opOpenInFile, "open-input-file", 1, 1, tests(tString), openFile)
	def(opOpenOutFile, "open-output-file", 1, 1, tests(tString), openFile)
	def(opOpenInOutFile, "open-input-output-file", 1, 1, tests(tString), openFile)
	def(opOpenInString, "open-input-string", 1, 1, tests(tString), openInputString)
	def(opOpenInOutString, "open-input-output-string", 1, 1, tests(tString), openInOutString)
	def(opOpenOutString, "open-output-string", 0, 1, tests(tString), openOutputString)
	def(opGetOutString, "get-output-string", 1, 1, tests(tOutport), getOutputString)
	def(opCloseInPort, "close-input-port", 1, 1, tests(tInport), closePort)
	def(opCloseOutPort, "close-output-port", 1, 1, tests(tOutport), closePort)

	// Reading.
	step(opRdSexpr, balanced(rdSexpr))
	step(opRdList, balanced(rdList))
	step(opRdDot, balanced(rdDot))
	step(opRdQuote, balanced(rdWrap(func(sc *T) Cell { return sc.sym.quote })))
	step(opRdQQuote, balanced(rdWrap(func(sc *T) Cell { return sc.sym.quasiquote })))
	step(opRdQQuoteVec, balanced(rdQQuoteVec))
	step(opRdUnquote, balanced(rdWrap(func(sc *T) Cell { return sc.sym.unquote })))
	step(opRdUqtsp, balanced(rdWrap(func(sc *T) Cell { return sc.sym.unquoteSplicing })))
	step(opRdVec, balanced(rdVec))

	// Printing.
	step(opP0List, balanced(p0list))
	step(opP1List, balanced(p1list))
	step(opPVecFrom, balanced(pvecfrom))
}
