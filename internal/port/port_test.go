package port

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStringRunes(t *testing.T) {
	p := InputString([]byte("é€x"))

	assert.Equal(t, 'é', p.NextRune())
	assert.Equal(t, '€', p.PeekRune())
	assert.Equal(t, '€', p.NextRune())

	p.BackRune('€')
	assert.Equal(t, '€', p.NextRune())
	assert.Equal(t, 'x', p.NextRune())
	assert.Equal(t, rune(EOF), p.NextRune())
	assert.True(t, p.Is(SawEOF))
}

func TestInvalidUTF8IsSkipped(t *testing.T) {
	p := InputString([]byte{0xff, 'a', 0xe2, 0x82, 'b', 0xc0, 0x80, 'c'})

	assert.Equal(t, 'a', p.NextRune())
	assert.Equal(t, 'b', p.NextRune())
	assert.Equal(t, 'c', p.NextRune())
	assert.Equal(t, rune(EOF), p.NextRune())
}

func TestReplacementCharacterIsKept(t *testing.T) {
	p := InputString([]byte("a\uFFFDb"))

	assert.Equal(t, 'a', p.NextRune())
	assert.Equal(t, '\uFFFD', p.NextRune())
	assert.Equal(t, 'b', p.NextRune())
}

func TestInOutStringSharesPosition(t *testing.T) {
	p := InOutString([]byte("abc"))

	assert.True(t, p.Is(Input|Output|String))
	assert.Equal(t, int('a'), p.NextByte())

	_, err := p.Write([]byte("XYZ"))
	require.NoError(t, err)

	assert.Equal(t, "aXY", string(p.Output()))
	assert.Equal(t, EOF, p.NextByte())
}

func TestInputStringCopiesText(t *testing.T) {
	s := []byte("ab")
	p := InputString(s)
	s[0] = 'z'

	assert.Equal(t, int('a'), p.NextByte())
}

func TestPushbackIsLastInFirstOut(t *testing.T) {
	p := InputString([]byte("z"))

	p.BackByte('b')
	p.BackByte('a')

	assert.Equal(t, int('a'), p.NextByte())
	assert.Equal(t, int('b'), p.NextByte())
	assert.Equal(t, int('z'), p.NextByte())
}

func TestLineCounting(t *testing.T) {
	p := InputString([]byte("a\nb\n"))

	for p.NextByte() != 'b' {
	}

	assert.Equal(t, 2, p.Line())

	nl := p.NextByte()
	assert.Equal(t, 3, p.Line())

	p.BackByte(nl)
	assert.Equal(t, 2, p.Line())
}

func TestScratchGrows(t *testing.T) {
	p := Scratch()

	chunk := make([]byte, 100)
	for i := range chunk {
		chunk[i] = 'x'
	}

	for i := 0; i < 10; i++ {
		_, err := p.Write(chunk)
		require.NoError(t, err)
	}

	assert.Len(t, p.Output(), 1000)
	assert.Equal(t, 0, cap(p.buf)%block)
}

func TestFixedOutputTruncates(t *testing.T) {
	p := OutputString([]byte("....."))

	n, err := p.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello", string(p.Output()))
}

func TestClosedPortRefusesWrites(t *testing.T) {
	p := Scratch()
	p.Close(Output)

	_, err := p.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, EOF, p.NextByte())
}

func TestFilePorts(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")

	out, err := Open(name, Output)
	require.NoError(t, err)

	require.NoError(t, out.WriteRune('λ'))
	_, err = out.Write([]byte("\n"))
	require.NoError(t, err)
	out.Close(Output)

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "λ\n", string(b))

	in, err := Open(name, Input)
	require.NoError(t, err)

	defer in.Finalize()

	assert.True(t, in.Ready())
	assert.Equal(t, 'λ', in.NextRune())
}
