// Released under an MIT license. See LICENSE.

package port

// Scratch ports grow in blocks of this many bytes.
const block = 256

// InputString creates an input port reading a copy of s.
func InputString(s []byte) *T {
	return &T{
		kind: String | Input,
		line: 1,
		buf:  append([]byte(nil), s...),
	}
}

// OutputString creates an output port over a buffer with room for exactly
// len(initial) bytes. Writes past the end are dropped.
func OutputString(initial []byte) *T {
	return &T{
		kind:  String | Output,
		line:  1,
		buf:   append([]byte(nil), initial...),
		fixed: true,
	}
}

// InOutString creates a port that reads and overwrites a copy of s. Reads
// and writes share one position and writes past the end are dropped.
func InOutString(s []byte) *T {
	return &T{
		kind:  String | Input | Output,
		line:  1,
		buf:   append([]byte(nil), s...),
		fixed: true,
	}
}

// Scratch creates a growable output string port.
func Scratch() *T {
	return &T{
		kind: String | Output,
		line: 1,
		buf:  make([]byte, 0, block),
	}
}

// Output returns a copy of the bytes written so far.
func (p *T) Output() []byte {
	if p.fixed {
		return append([]byte(nil), p.buf[:p.pos]...)
	}

	return append([]byte(nil), p.buf...)
}

func (p *T) writeString(b []byte) int {
	if p.fixed {
		n := copy(p.buf[p.pos:], b)
		p.pos += n

		return len(b)
	}

	if need := len(p.buf) + len(b); need > cap(p.buf) {
		size := cap(p.buf) + (need-cap(p.buf)+block-1)/block*block
		grown := make([]byte, len(p.buf), size)
		copy(grown, p.buf)
		p.buf = grown
	}

	p.buf = append(p.buf, b...)

	return len(b)
}
