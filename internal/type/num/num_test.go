package num

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmeticStaysExact(t *testing.T) {
	assert.Equal(t, Int(5), Add(Int(2), Int(3)))
	assert.Equal(t, Int(-1), Sub(Int(2), Int(3)))
	assert.Equal(t, Int(6), Mul(Int(2), Int(3)))
	assert.Equal(t, Int(2), Div(Int(6), Int(3)))
}

func TestMixedArithmeticIsInexact(t *testing.T) {
	assert.Equal(t, Real(5.5), Add(Int(2), Real(3.5)))
	assert.Equal(t, Real(1.5), Div(Int(3), Int(2)))
	assert.False(t, Div(Int(3), Int(2)).Fixnum())
}

func TestRemainderAndModulo(t *testing.T) {
	assert.Equal(t, Int(-1), Rem(Int(-7), Int(2)))
	assert.Equal(t, Int(1), Mod(Int(-7), Int(2)))
	assert.Equal(t, Int(-1), Mod(Int(7), Int(-2)))
	assert.Equal(t, Int(-3), Quotient(Int(-7), Int(2)))
}

func TestExpt(t *testing.T) {
	assert.Equal(t, Int(1024), Expt(Int(2), Int(10)))
	assert.Equal(t, Real(0.5), Expt(Int(2), Int(-1)))
	assert.Equal(t, Int(1), Expt(Int(1), Int(-3)))
	assert.Equal(t, Int(0), Expt(Int(0), Int(-1)))
	assert.Equal(t, Real(0), Expt(Real(0), Int(-2)))
	assert.Equal(t, Real(8), Expt(Real(2), Int(3)))

	big := Expt(Int(10), Int(30))
	assert.False(t, big.Fixnum())
	assert.InDelta(t, 1e30, big.Float(), 1e16)
}

func TestRoundTiesToEven(t *testing.T) {
	assert.Equal(t, Real(2), Round(Real(2.5)))
	assert.Equal(t, Real(4), Round(Real(3.5)))
	assert.Equal(t, Int(7), Round(Int(7)))
}

func TestCompareAndEqv(t *testing.T) {
	assert.Equal(t, 0, Compare(Int(2), Real(2)))
	assert.Equal(t, -1, Compare(Int(1), Real(1.5)))
	assert.False(t, Eqv(Int(2), Real(2)))
	assert.True(t, Eqv(Real(2), Real(2)))
}

func TestBitsRoundTrip(t *testing.T) {
	for _, n := range []T{Int(0), Int(-42), Int(math.MaxInt64), Real(3.25), Real(-0.5)} {
		assert.Equal(t, n, FromBits(n.Fixnum(), n.Bits()))
	}
}
