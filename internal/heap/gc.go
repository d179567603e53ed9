// Released under an MIT license. See LICENSE.

package heap

// Collect marks everything reachable from the roots, the recent
// allocations and the hints a and b, then sweeps the rest onto the free
// list.
func (h *Heap) Collect(a, b Ref) {
	h.work = h.work[:0]

	h.roots(h.push)

	for _, x := range h.recent {
		h.push(x)
	}

	h.push(a)
	h.push(b)

	h.drain()
	h.sweep()

	h.collections++

	if h.notify != nil {
		h.notify(h.Stats())
	}
}

func (h *Heap) push(x Ref) {
	if x < reserved {
		return
	}

	c := h.cell(x)
	if c.flag&Mark != 0 {
		return
	}

	c.flag |= Mark

	h.work = append(h.work, x)
}

// Marks the children of every cell on the worklist until it is empty.
func (h *Heap) drain() {
	for len(h.work) > 0 {
		x := h.work[len(h.work)-1]
		h.work = h.work[:len(h.work)-1]

		c := h.cell(x)

		if r, ok := c.obj.(Referrer); ok {
			r.Refs(h.push)
		}

		if Type(c.flag&typeMask) == Vector {
			n := elements(int(c.word))
			for i := 1; i <= n; i++ {
				e := h.cell(x + Ref(i))
				e.flag |= Mark

				h.push(e.car)
				h.push(e.cdr)
			}

			continue
		}

		if c.flag&Atom != 0 {
			continue
		}

		h.push(c.car)
		h.push(c.cdr)
	}
}

// Sweeps from the highest index down so that prepending each free cell
// leaves the free list in ascending order.
func (h *Heap) sweep() {
	h.free = Nil
	h.fcells = 0

	for s := len(h.segs) - 1; s >= 0; s-- {
		seg := h.segs[s]
		base := Ref(s * h.size)

		for i := len(seg) - 1; i >= 0; i-- {
			x := base + Ref(i)
			c := &seg[i]

			if x < reserved {
				c.flag &^= Mark

				continue
			}

			if c.flag&Mark != 0 {
				c.flag &^= Mark

				continue
			}

			finalize(c)

			*c = Cell{cdr: h.free}

			h.free = x
			h.fcells++
		}
	}
}

func finalize(c *Cell) {
	if f, ok := c.obj.(Finalizer); ok {
		f.Finalize()
	}

	c.obj = nil
}
