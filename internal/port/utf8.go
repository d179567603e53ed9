// Released under an MIT license. See LICENSE.

package port

import (
	"unicode/utf8"
)

// NextRune returns the next character or EOF. Bytes that cannot start a
// UTF-8 sequence and sequences cut short are skipped.
func (p *T) NextRune() rune {
	for {
		b := p.NextByte()
		if b == EOF {
			return EOF
		}

		if b < utf8.RuneSelf {
			return rune(b)
		}

		n := width(b)
		if n == 0 {
			continue
		}

		var seq [utf8.UTFMax]byte

		seq[0] = byte(b)

		complete := true

		for i := 1; i < n; i++ {
			c := p.NextByte()
			if c == EOF || c&0xc0 != 0x80 {
				p.BackByte(c)

				complete = false

				break
			}

			seq[i] = byte(c)
		}

		if !complete {
			continue
		}

		// A well-formed U+FFFD decodes with its full width.
		r, size := utf8.DecodeRune(seq[:n])
		if size == n {
			return r
		}
	}
}

// BackRune pushes the encoding of r back onto the port.
func (p *T) BackRune(r rune) {
	if r == EOF {
		return
	}

	var seq [utf8.UTFMax]byte

	n := utf8.EncodeRune(seq[:], r)
	for i := n - 1; i >= 0; i-- {
		p.BackByte(int(seq[i]))
	}
}

// PeekRune returns the next character without consuming it.
func (p *T) PeekRune() rune {
	r := p.NextRune()
	p.BackRune(r)

	return r
}

// WriteRune writes the UTF-8 encoding of r.
func (p *T) WriteRune(r rune) error {
	var seq [utf8.UTFMax]byte

	n := utf8.EncodeRune(seq[:], r)
	_, err := p.Write(seq[:n])

	return err
}

func width(lead int) int {
	switch {
	case lead >= 0xc2 && lead <= 0xdf:
		return 2
	case lead >= 0xe0 && lead <= 0xef:
		return 3
	case lead >= 0xf0 && lead <= 0xf4:
		return 4
	}

	return 0
}
