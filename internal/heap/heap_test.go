package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/tiny/internal/type/num"
)

type budget struct {
	left int
}

func (b *budget) Reserve(n int) bool {
	if n > b.left {
		return false
	}

	b.left -= n

	return true
}

func (b *budget) Release(n int) {
	b.left += n
}

type closer struct {
	closed *bool
}

func (c closer) Finalize() {
	*c.closed = true
}

func small(t *testing.T, roots *[]Ref) *Heap {
	t.Helper()

	h := New(Config{SegmentSize: 64, MaxSegments: 4, FirstSegments: 1}, func(visit func(Ref)) {
		for _, r := range *roots {
			visit(r)
		}
	})
	require.NotNil(t, h)

	return h
}

func list(h *Heap, n int) Ref {
	l := Nil
	for i := 0; i < n; i++ {
		x := h.Get(Nil, Nil)
		h.SetNum(x, num.Int(int64(i)))
		l = h.Cons(x, l)
	}

	return l
}

func length(h *Heap, l Ref) int {
	n := 0
	for ; l != Nil; l = h.Cdr(l) {
		n++
	}

	return n
}

func TestCollectFreesUnreachable(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)
	before := h.Stats().Free

	list(h, 10)
	assert.Equal(t, before-20, h.Stats().Free)

	h.ClearRecent()
	h.Collect(Nil, Nil)
	assert.Equal(t, before, h.Stats().Free)
}

func TestRootsAndRecentSurvive(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)

	kept := list(h, 5)
	roots = append(roots, kept)
	h.ClearRecent()

	pending := list(h, 3)
	h.Collect(Nil, Nil)

	assert.Equal(t, 5, length(h, kept))
	assert.Equal(t, 3, length(h, pending))
	assert.Equal(t, int64(2), h.Num(h.Car(pending)).Int())
}

func TestFreeListAscending(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)
	list(h, 20)
	h.ClearRecent()
	h.Collect(Nil, Nil)

	prev := Nil
	for p := h.free; p != Nil; p = h.Cdr(p) {
		assert.Greater(t, p, prev)
		prev = p
	}
}

func TestVectorSurvivesCollection(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)

	v := h.MakeVector(7, False)
	roots = append(roots, v)

	for i := 0; i < 7; i++ {
		x := h.Get(Nil, Nil)
		h.SetNum(x, num.Int(int64(i*i)))
		h.SetElem(v, i, x)
	}

	h.ClearRecent()
	h.Collect(Nil, Nil)

	list(h, 40)

	require.Equal(t, 7, h.Len(v))
	for i := 0; i < 7; i++ {
		assert.Equal(t, int64(i*i), h.Num(h.Elem(v, i)).Int())
	}
}

func TestVectorSpanningSegments(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)

	v := h.MakeVector(150, True)
	require.NotEqual(t, Sentinel, v)
	assert.Equal(t, True, h.Elem(v, 149))
	assert.GreaterOrEqual(t, h.Stats().Segments, 2)
}

func TestNoMemoryIsSticky(t *testing.T) {
	var roots []Ref

	b := &budget{left: 64}
	h := New(Config{SegmentSize: 64, MaxSegments: 10, FirstSegments: 1, Allocator: b}, func(visit func(Ref)) {
		for _, r := range roots {
			visit(r)
		}
	})
	require.NotNil(t, h)

	l := Nil
	for i := 0; i < 100; i++ {
		l = h.Cons(Nil, l)
		if l == Sentinel {
			break
		}
	}

	assert.True(t, h.NoMemory())
	assert.Equal(t, Sentinel, h.Get(Nil, Nil))

	h.Free()
	assert.Equal(t, 64, b.left)
}

func TestFinalizerRunsOnSweep(t *testing.T) {
	var roots []Ref

	h := small(t, &roots)

	closed := false
	x := h.Get(Nil, Nil)
	h.SetType(x, Port)
	h.SetFlag(x, Atom)
	h.SetObj(x, closer{&closed})

	h.ClearRecent()
	h.Collect(Nil, Nil)

	assert.True(t, closed)
}
