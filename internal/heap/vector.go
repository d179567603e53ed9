// Released under an MIT license. See LICENSE.

package heap

// A vector is a header cell followed by adjacent element cells, each
// holding two slots in its car and cdr.
func elements(length int) int {
	return length/2 + length%2
}

// MakeVector allocates a vector of length slots, each set to fill.
func (h *Heap) MakeVector(length int, fill Ref) Ref {
	x := h.consecutive(1+elements(length), fill)
	if x == Sentinel {
		return x
	}

	c := h.cell(x)
	c.flag = uint16(Vector) | Atom
	c.word = uint64(length)

	for i := 1; i <= elements(length); i++ {
		e := h.cell(x + Ref(i))
		*e = Cell{car: fill, cdr: fill}
	}

	h.recent = append(h.recent, x)

	return x
}

// Len returns the number of slots in the vector x.
func (h *Heap) Len(x Ref) int {
	return int(h.cell(x).word)
}

// Elem returns slot i of the vector x.
func (h *Heap) Elem(x Ref, i int) Ref {
	e := h.cell(x + 1 + Ref(i/2))
	if i%2 == 0 {
		return e.car
	}

	return e.cdr
}

// SetElem replaces slot i of the vector x.
func (h *Heap) SetElem(x Ref, i int, v Ref) {
	e := h.cell(x + 1 + Ref(i/2))
	if i%2 == 0 {
		e.car = v
	} else {
		e.cdr = v
	}
}

// Finds n adjacent free cells. Collects and then grows the heap when no
// run is long enough.
func (h *Heap) consecutive(n int, hint Ref) Ref {
	if h.noMemory {
		return Sentinel
	}

	x := h.findConsecutive(n)
	if x != Nil {
		return x
	}

	h.Collect(hint, Nil)

	x = h.findConsecutive(n)
	if x != Nil {
		return x
	}

	if h.Grow(n/h.size+1) > 0 {
		x = h.findConsecutive(n)
		if x != Nil {
			return x
		}
	}

	h.noMemory = true

	return Sentinel
}

func (h *Heap) findConsecutive(n int) Ref {
	before := Nil // Cell preceding the current run.
	start := Nil
	last := Nil
	prev := Nil
	count := 0

	for p := h.free; p != Nil; p = h.cell(p).cdr {
		if count > 0 && p == last+1 {
			count++
		} else {
			before = prev
			start = p
			count = 1
		}

		if count == n {
			next := h.cell(p).cdr
			if before == Nil {
				h.free = next
			} else {
				h.cell(before).cdr = next
			}

			h.fcells -= n

			return start
		}

		last = p
		prev = p
	}

	return Nil
}
