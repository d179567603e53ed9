// Released under an MIT license. See LICENSE.

package scheme

// Cycle runs the machine from o until an action stops it.
func (sc *T) cycle(o op) {
	sc.op = o

	sc.running++
	defer func() { sc.running-- }()

	for {
		s := &table[sc.op]

		if s.name != "" {
			if msg := sc.check(s); msg != "" {
				sc.raise(msg)

				// The error step runs unchecked.
				s = &table[sc.op]
			}
		}

		sc.heap.ClearRecent()

		if !s.action(sc) {
			return
		}

		if sc.heap.NoMemory() {
			sc.noMemory()

			return
		}
	}
}
