// Released under an MIT license. See LICENSE.

// Package num provides the interpreter's two level numeric tower.
//
// A number is either a fixnum (a 64-bit integer) or a flonum (a 64-bit
// float). Mixed arithmetic produces a flonum. Integer arithmetic stays exact
// for addition, subtraction and multiplication.
package num

import (
	"math"
)

// T (number) is a fixnum or a flonum.
type T struct {
	fixnum bool
	i      int64
	r      float64
}

// Int creates a fixnum.
func Int(i int64) T {
	return T{fixnum: true, i: i}
}

// Real creates a flonum.
func Real(r float64) T {
	return T{r: r}
}

// Fixnum returns true if n is exact.
func (n T) Fixnum() bool {
	return n.fixnum
}

// Int returns the value of n truncated to an integer.
func (n T) Int() int64 {
	if n.fixnum {
		return n.i
	}

	return int64(n.r)
}

// Float returns the value of n as a float64.
func (n T) Float() float64 {
	if n.fixnum {
		return float64(n.i)
	}

	return n.r
}

// Integral returns true if n has no fractional part.
func (n T) Integral() bool {
	return n.fixnum || n.r == math.Trunc(n.r)
}

// Zero returns true if n is zero.
func (n T) Zero() bool {
	if n.fixnum {
		return n.i == 0
	}

	return n.r == 0
}

// Add returns a + b.
func Add(a, b T) T {
	if a.fixnum && b.fixnum {
		return Int(a.i + b.i)
	}

	return Real(a.Float() + b.Float())
}

// Sub returns a - b.
func Sub(a, b T) T {
	if a.fixnum && b.fixnum {
		return Int(a.i - b.i)
	}

	return Real(a.Float() - b.Float())
}

// Mul returns a * b.
func Mul(a, b T) T {
	if a.fixnum && b.fixnum {
		return Int(a.i * b.i)
	}

	return Real(a.Float() * b.Float())
}

// Div returns a / b. The result is a fixnum only when both operands are
// fixnums and the division is exact. The caller checks for a zero divisor.
func Div(a, b T) T {
	if a.fixnum && b.fixnum && b.i != 0 && a.i%b.i == 0 {
		return Int(a.i / b.i)
	}

	return Real(a.Float() / b.Float())
}

// Quotient truncates a / b toward zero.
func Quotient(a, b T) T {
	if a.fixnum && b.fixnum {
		return Int(a.i / b.i)
	}

	return Real(math.Trunc(a.Float() / b.Float()))
}

// Rem returns the remainder of a / b with the sign of a. Flonum operands
// are truncated to integers first.
func Rem(a, b T) T {
	x, y := a.Int(), b.Int()

	r := x % y

	switch {
	case r > 0 && x < 0:
		r -= abs(y)
	case r < 0 && x > 0:
		r += abs(y)
	}

	if a.fixnum && b.fixnum {
		return Int(r)
	}

	return Real(float64(r))
}

// Mod returns the remainder of a / b with the sign of b. Flonum operands
// are truncated to integers first.
func Mod(a, b T) T {
	x, y := a.Int(), b.Int()

	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}

	if a.fixnum && b.fixnum {
		return Int(r)
	}

	return Real(float64(r))
}

func abs(i int64) int64 {
	if i < 0 {
		return -i
	}

	return i
}

// Expt returns a raised to the power b. When both are fixnums and the
// result is integral and fits, the result is exact. Zero raised to a
// negative power is zero.
func Expt(a, b T) T {
	exact := a.fixnum && b.fixnum

	if exact && b.i >= 0 {
		if r, ok := ipow(a.i, b.i); ok {
			return Int(r)
		}
	}

	var r float64
	if a.Float() == 0 && b.Float() < 0 {
		r = 0
	} else {
		r = math.Pow(a.Float(), b.Float())
	}

	if exact && r == math.Trunc(r) && math.Abs(r) < 1<<63 {
		return Int(int64(r))
	}

	return Real(r)
}

func ipow(base, exp int64) (int64, bool) {
	result := int64(1)

	for exp > 0 {
		if exp&1 == 1 {
			if !mulOK(result, base) {
				return 0, false
			}

			result *= base
		}

		exp >>= 1
		if exp > 0 {
			if !mulOK(base, base) {
				return 0, false
			}

			base *= base
		}
	}

	return result, true
}

func mulOK(a, b int64) bool {
	if a == 0 || b == 0 {
		return true
	}

	c := a * b

	return c/b == a && !(a == -1 && b == math.MinInt64) && !(b == -1 && a == math.MinInt64)
}

// Round rounds to the nearest integer, ties to even.
func Round(n T) T {
	if n.fixnum {
		return n
	}

	return Real(math.RoundToEven(n.r))
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func Compare(a, b T) int {
	if a.fixnum && b.fixnum {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		}

		return 0
	}

	x, y := a.Float(), b.Float()

	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}

	return 0
}

// Eqv returns true if a and b have the same exactness and value.
func Eqv(a, b T) bool {
	if a.fixnum != b.fixnum {
		return false
	}

	if a.fixnum {
		return a.i == b.i
	}

	return a.r == b.r
}

// Bits encodes n for storage in a cell's numeric word.
func (n T) Bits() uint64 {
	if n.fixnum {
		return uint64(n.i)
	}

	return math.Float64bits(n.r)
}

// FromBits decodes a number stored by Bits.
func FromBits(fixnum bool, bits uint64) T {
	if fixnum {
		return Int(int64(bits))
	}

	return Real(math.Float64frombits(bits))
}
