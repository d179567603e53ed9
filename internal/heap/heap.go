// Released under an MIT license. See LICENSE.

// Package heap provides the cell arena and its mark-and-sweep collector.
//
// Cells live in fixed size segments and are addressed by index. Free cells
// are kept on a singly linked list threaded through their cdr fields in
// ascending index order so that runs of adjacent free cells can be found
// for vectors.
package heap

// Allocator decides whether a new segment may be added. Release is called
// for every segment when the heap is freed.
type Allocator interface {
	Reserve(cells int) bool
	Release(cells int)
}

// Unlimited is an Allocator that never refuses.
type Unlimited struct{}

// Reserve always succeeds.
func (Unlimited) Reserve(int) bool { return true }

// Release does nothing.
func (Unlimited) Release(int) {}

// Config holds the heap's sizing parameters.
type Config struct {
	SegmentSize   int
	MaxSegments   int
	FirstSegments int
	Allocator     Allocator

	// Notify, if set, is called after every collection.
	Notify func(Stats)
}

// Defaults for Config fields left at zero.
const (
	DefaultSegmentSize   = 5000
	DefaultMaxSegments   = 1000
	DefaultFirstSegments = 3
)

// Stats describes the heap after the most recent collection.
type Stats struct {
	Collections int
	Free        int
	Segments    int
	Size        int
}

// Heap is the cell arena.
type Heap struct {
	alloc Allocator
	segs  [][]Cell
	size  int
	max   int

	free   Ref
	fcells int

	recent []Ref
	roots  func(visit func(Ref))
	work   []Ref
	notify func(Stats)

	collections int
	noMemory    bool
}

// New creates a heap and allocates its first segments. Roots is called at
// the start of every collection to enumerate the interpreter's roots.
func New(cfg Config, roots func(visit func(Ref))) *Heap {
	if cfg.SegmentSize <= int(reserved) {
		cfg.SegmentSize = DefaultSegmentSize
	}

	if cfg.MaxSegments <= 0 {
		cfg.MaxSegments = DefaultMaxSegments
	}

	if cfg.FirstSegments <= 0 {
		cfg.FirstSegments = DefaultFirstSegments
	}

	if cfg.Allocator == nil {
		cfg.Allocator = Unlimited{}
	}

	if roots == nil {
		roots = func(func(Ref)) {}
	}

	h := &Heap{
		alloc:  cfg.Allocator,
		size:   cfg.SegmentSize,
		max:    cfg.MaxSegments,
		free:   Nil,
		roots:  roots,
		notify: cfg.Notify,
	}

	if h.Grow(cfg.FirstSegments) == 0 {
		return nil
	}

	h.cell(Nil).flag = Atom | Immutable
	h.cell(True).flag = Atom | Immutable
	h.cell(False).flag = Atom | Immutable
	h.cell(EOF).flag = Atom | Immutable
	h.cell(Sentinel).flag = uint16(Pair) | Immutable

	return h
}

// Free releases every segment, finalizing cells that own resources.
func (h *Heap) Free() {
	for _, seg := range h.segs {
		for i := range seg {
			finalize(&seg[i])
		}

		h.alloc.Release(len(seg))
	}

	h.segs = nil
	h.free = Nil
	h.fcells = 0
	h.recent = nil
}

// Grow adds up to n segments and returns how many were added.
func (h *Heap) Grow(n int) int {
	added := 0

	for ; added < n && len(h.segs) < h.max; added++ {
		if !h.alloc.Reserve(h.size) {
			break
		}

		base := Ref(len(h.segs) * h.size)
		seg := make([]Cell, h.size)

		first := 0
		if base == 0 {
			first = int(reserved)
		}

		for i := first; i < len(seg); i++ {
			seg[i].cdr = base + Ref(i) + 1
		}

		seg[len(seg)-1].cdr = Nil

		h.segs = append(h.segs, seg)
		h.append(base+Ref(first), len(seg)-first)
	}

	return added
}

// Links a run of new cells onto the tail of the free list. New segments
// always have the highest indices so the list stays ascending.
func (h *Heap) append(first Ref, n int) {
	h.fcells += n

	if h.free == Nil {
		h.free = first

		return
	}

	p := h.free
	for h.cell(p).cdr != Nil {
		p = h.cell(p).cdr
	}

	h.cell(p).cdr = first
}

// Get returns a fresh pair shaped cell. The hints a and b are protected if
// a collection is needed. When no cell can be found the heap enters the
// no-memory state and Sentinel is returned from then on.
func (h *Heap) Get(a, b Ref) Ref {
	if h.noMemory {
		return Sentinel
	}

	if h.free == Nil {
		least := len(h.segs) * 8

		h.Collect(a, b)

		if h.fcells < least || h.free == Nil {
			if h.Grow(1) == 0 && h.free == Nil {
				h.noMemory = true

				return Sentinel
			}
		}
	}

	x := h.free
	c := h.cell(x)

	h.free = c.cdr
	h.fcells--

	*c = Cell{flag: uint16(Pair), car: Nil, cdr: Nil}

	h.recent = append(h.recent, x)

	return x
}

// Cons allocates a pair.
func (h *Heap) Cons(a, b Ref) Ref {
	x := h.Get(a, b)
	if x == Sentinel {
		return x
	}

	c := h.cell(x)
	c.car = a
	c.cdr = b

	return x
}

// NoMemory returns true once an allocation has failed.
func (h *Heap) NoMemory() bool {
	return h.noMemory
}

// Protect adds x to the recent allocations.
func (h *Heap) Protect(x Ref) {
	h.recent = append(h.recent, x)
}

// ClearRecent forgets the recent allocations. Cells allocated before this
// call must be reachable from a root to survive the next collection.
func (h *Heap) ClearRecent() {
	h.recent = h.recent[:0]
}

// SaveRecent returns the recent allocations and starts a new list. The
// caller must keep the saved refs visible to the roots function.
func (h *Heap) SaveRecent() []Ref {
	saved := h.recent
	h.recent = nil

	return saved
}

// RestoreRecent reinstates a list returned by SaveRecent.
func (h *Heap) RestoreRecent(saved []Ref) {
	h.recent = saved
}

// Stats returns the current heap statistics.
func (h *Heap) Stats() Stats {
	return Stats{
		Collections: h.collections,
		Free:        h.fcells,
		Segments:    len(h.segs),
		Size:        h.size,
	}
}
