package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/tiny/internal/heap"
	"github.com/michaelmacinnis/tiny/internal/symbol"
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

type fixture struct {
	*T
	h       *heap.Heap
	symbols *symbol.T
	global  heap.Ref
}

func setup(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{}

	f.h = heap.New(heap.Config{SegmentSize: 1024, FirstSegments: 2}, func(visit func(heap.Ref)) {
		f.symbols.Refs(visit)
		visit(f.global)
	})
	require.NotNil(t, f.h)

	f.symbols = symbol.New(f.h)
	f.T = New(f.h)
	f.global = f.Global()

	return f
}

func (f *fixture) number(i int64) heap.Ref {
	x := f.h.Get(heap.Nil, heap.Nil)
	f.h.SetNum(x, num.Int(i))

	return x
}

func (f *fixture) lookup(fr heap.Ref, name string) int64 {
	slot := f.Find(fr, f.symbols.Intern(name), true)
	if slot == heap.Nil {
		return -1
	}

	return f.h.Num(f.Value(slot)).Int()
}

func TestGlobalBindings(t *testing.T) {
	f := setup(t)

	f.Define(f.global, f.symbols.Intern("x"), f.number(1))
	f.Define(f.global, f.symbols.Intern("X"), f.number(2))

	assert.Equal(t, int64(2), f.lookup(f.global, "x"))
	assert.Equal(t, int64(-1), f.lookup(f.global, "y"))
}

func TestShadowing(t *testing.T) {
	f := setup(t)
	x := f.symbols.Intern("x")

	f.Define(f.global, x, f.number(1))

	inner := f.Frame(f.global)
	f.Bind(inner, x, f.number(2))

	assert.Equal(t, int64(2), f.lookup(inner, "x"))
	assert.Equal(t, int64(1), f.lookup(f.global, "x"))
	assert.Equal(t, heap.Nil, f.Find(inner, f.symbols.Intern("y"), true))
}

func TestFindInFrameOnly(t *testing.T) {
	f := setup(t)
	x := f.symbols.Intern("x")

	f.Define(f.global, x, f.number(1))

	inner := f.Frame(f.global)
	assert.Equal(t, heap.Nil, f.Find(inner, x, false))
	assert.NotEqual(t, heap.Nil, f.Find(inner, x, true))
}

func TestDefineReusesSlot(t *testing.T) {
	f := setup(t)
	x := f.symbols.Intern("x")

	f.Define(f.global, x, f.number(1))
	slot := f.Find(f.global, x, false)

	f.Define(f.global, x, f.number(3))
	assert.Equal(t, slot, f.Find(f.global, x, false))
	assert.Equal(t, int64(3), f.lookup(f.global, "x"))
}

func TestBindingsSurviveCollection(t *testing.T) {
	f := setup(t)

	for i := int64(0); i < 200; i++ {
		f.Define(f.global, f.symbols.Gensym(), f.number(i))
	}

	f.Define(f.global, f.symbols.Intern("last"), f.number(42))

	f.h.ClearRecent()
	f.h.Collect(heap.Nil, heap.Nil)

	for i := 0; i < 3000; i++ {
		f.number(int64(i))
	}

	assert.Equal(t, int64(42), f.lookup(f.global, "last"))

	n := 0
	f.Each(f.global, func(_, _ heap.Ref) { n++ })
	assert.Equal(t, 201, n)
}

func TestHashIsStable(t *testing.T) {
	assert.Equal(t, hash([]byte("car")), hash([]byte("car")))
	assert.Less(t, hash([]byte("a-very-long-symbol-name-indeed")), Buckets)
}
