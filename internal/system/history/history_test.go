package history

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	require.NoError(t, Save(func(w io.Writer) (int, error) {
		return io.WriteString(w, "(+ 1 2)\n")
	}))

	_, err := os.Stat(filepath.Join(home, ".tiny_history"))
	require.NoError(t, err)

	var b strings.Builder

	require.NoError(t, Load(func(r io.Reader) (int, error) {
		n, err := io.Copy(&b, r)

		return int(n), err
	}))

	assert.Equal(t, "(+ 1 2)\n", b.String())
}

func TestLoadWithoutHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Error(t, Load(func(io.Reader) (int, error) { return 0, nil }))
}
