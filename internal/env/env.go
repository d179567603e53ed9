// Released under an MIT license. See LICENSE.

// Package env provides environment frames.
//
// A frame is an environment cell whose car holds the frame's bindings and
// whose cdr is the enclosing frame. The global frame's bindings are a
// vector of hash buckets. All other frames hold a list of bindings. Each
// binding, or slot, is an immutable pair of a symbol and its value.
package env

import (
	"github.com/michaelmacinnis/tiny/internal/heap"
)

// Buckets is the size of the global frame's hash table.
const Buckets = 461

// T (environment model) creates and searches frames on a heap.
type T struct {
	heap *heap.Heap
}

// New creates an environment model for frames on h.
func New(h *heap.Heap) *T {
	return &T{heap: h}
}

// Global creates a hashed frame with no parent.
func (e *T) Global() heap.Ref {
	v := e.heap.MakeVector(Buckets, heap.Nil)
	if v == heap.Sentinel {
		return v
	}

	return e.frame(v, heap.Nil)
}

// Frame creates an empty frame inside parent.
func (e *T) Frame(parent heap.Ref) heap.Ref {
	return e.frame(heap.Nil, parent)
}

// Parent returns the frame enclosing f.
func (e *T) Parent(f heap.Ref) heap.Ref {
	return e.heap.Cdr(f)
}

// Bind adds a new binding for sym to frame f. An existing binding in f is
// shadowed, not replaced.
func (e *T) Bind(f, sym, value heap.Ref) {
	h := e.heap

	slot := h.Cons(sym, value)
	if slot == heap.Sentinel {
		return
	}

	h.SetFlag(slot, heap.Immutable)

	bindings := h.Car(f)
	if h.Is(bindings, heap.Vector) {
		i := hash(h.Bytes(h.Car(sym)))

		l := h.Cons(slot, h.Elem(bindings, i))
		if l != heap.Sentinel {
			h.SetElem(bindings, i, l)
		}

		return
	}

	l := h.Cons(slot, bindings)
	if l != heap.Sentinel {
		h.SetCar(f, l)
	}
}

// Find returns the slot binding sym in f, or in f and its ancestors when
// all is true. It returns heap.Nil if there is no such slot.
func (e *T) Find(f, sym heap.Ref, all bool) heap.Ref {
	h := e.heap

	for ; f != heap.Nil; f = h.Cdr(f) {
		bindings := h.Car(f)

		var l heap.Ref
		if h.Is(bindings, heap.Vector) {
			l = h.Elem(bindings, hash(h.Bytes(h.Car(sym))))
		} else {
			l = bindings
		}

		for ; l != heap.Nil; l = h.Cdr(l) {
			if h.Car(h.Car(l)) == sym {
				return h.Car(l)
			}
		}

		if !all {
			break
		}
	}

	return heap.Nil
}

// Define binds sym in f, reusing a slot already in f.
func (e *T) Define(f, sym, value heap.Ref) {
	if slot := e.Find(f, sym, false); slot != heap.Nil {
		e.Set(slot, value)

		return
	}

	e.Bind(f, sym, value)
}

// Value returns the value held by slot.
func (e *T) Value(slot heap.Ref) heap.Ref {
	return e.heap.Cdr(slot)
}

// Set replaces the value held by slot.
func (e *T) Set(slot, value heap.Ref) {
	e.heap.SetCdr(slot, value)
}

// Each calls f for every binding visible in frame fr, innermost first.
func (e *T) Each(fr heap.Ref, f func(sym, value heap.Ref)) {
	h := e.heap

	visit := func(l heap.Ref) {
		for ; l != heap.Nil; l = h.Cdr(l) {
			slot := h.Car(l)
			f(h.Car(slot), h.Cdr(slot))
		}
	}

	for ; fr != heap.Nil; fr = h.Cdr(fr) {
		bindings := h.Car(fr)
		if !h.Is(bindings, heap.Vector) {
			visit(bindings)

			continue
		}

		for i := 0; i < h.Len(bindings); i++ {
			visit(h.Elem(bindings, i))
		}
	}
}

func (e *T) frame(bindings, parent heap.Ref) heap.Ref {
	x := e.heap.Cons(bindings, parent)
	if x == heap.Sentinel {
		return x
	}

	e.heap.SetType(x, heap.Environment)
	e.heap.SetFlag(x, heap.Immutable)

	return x
}

func hash(key []byte) int {
	var hashed uint32

	for _, c := range key {
		hashed = hashed<<5 | hashed>>27
		hashed ^= uint32(c)
	}

	return int(hashed % Buckets)
}
