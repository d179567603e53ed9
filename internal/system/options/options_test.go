package options

import (
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	require.NoError(t, parse([]string{"a.scm", "b.scm"}))

	assert.Equal(t, []string{"a.scm", "b.scm"}, Files())
	assert.Equal(t, 5000, Segment())
	assert.Equal(t, 1000, Segments())
	assert.False(t, Strict())
	assert.False(t, Quiet())
	assert.False(t, Interactive())
	assert.Empty(t, Command())
	assert.Empty(t, Script())
}

func TestScriptArguments(t *testing.T) {
	require.NoError(t, parse([]string{"--strict", "-1", "run.scm", "x", "y"}))

	assert.Equal(t, "run.scm", Script())
	assert.Equal(t, []string{"x", "y"}, Args())
	assert.True(t, Strict())
}

func TestCommand(t *testing.T) {
	require.NoError(t, parse([]string{"-q", "-c", "(display 1)"}))

	assert.Equal(t, "(display 1)", Command())
	assert.True(t, Quiet())
	assert.False(t, Interactive())
}

func TestHumanSizes(t *testing.T) {
	require.NoError(t, parse([]string{"--segment=20k", "--segments=4", "-i"}))

	assert.Equal(t, 20000, Segment())
	assert.Equal(t, 4, Segments())
	assert.True(t, Interactive())
}

func TestInvalidSizes(t *testing.T) {
	err := parse([]string{"--segment=lots"})
	assert.True(t, errorx.IsOfType(err, Invalid))

	err = parse([]string{"--segments=0"})
	assert.True(t, errorx.IsOfType(err, Invalid))
}
