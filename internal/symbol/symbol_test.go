package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

func setup(t *testing.T) *T {
	t.Helper()

	var table *T

	h := heap.New(heap.Config{SegmentSize: 128, FirstSegments: 1}, func(visit func(heap.Ref)) {
		table.Refs(visit)
	})
	require.NotNil(t, h)

	table = New(h)

	return table
}

func TestInternIgnoresCase(t *testing.T) {
	table := setup(t)

	a := table.Intern("Hello")
	b := table.Intern("hELLO")

	assert.Equal(t, a, b)
	assert.Equal(t, "Hello", table.Name(b))
	assert.Equal(t, 1, table.Len())
}

func TestInternFoldsUnicode(t *testing.T) {
	table := setup(t)

	assert.Equal(t, table.Intern("STRASSE"), table.Intern("strasse"))
	assert.Equal(t, table.Intern("ÉTÉ"), table.Intern("été"))
}

func TestSymbolsSurviveCollection(t *testing.T) {
	table := setup(t)

	x := table.Intern("kept")
	table.heap.ClearRecent()
	table.heap.Collect(heap.Nil, heap.Nil)

	for i := 0; i < 500; i++ {
		table.heap.Cons(heap.Nil, heap.Nil)
	}

	assert.Equal(t, "kept", table.Name(x))
	assert.True(t, table.heap.Is(x, heap.Symbol))
}

func TestGensymAvoidsExistingNames(t *testing.T) {
	table := setup(t)

	table.Intern("gensym-1")

	g := table.Gensym()
	assert.Equal(t, "gensym-2", table.Name(g))
}

func TestEachIsOrdered(t *testing.T) {
	table := setup(t)

	for _, s := range []string{"cdr", "apply", "car"} {
		table.Intern(s)
	}

	var names []string

	table.Each(func(x heap.Ref) bool {
		names = append(names, table.Name(x))

		return true
	})

	assert.Equal(t, []string{"apply", "car", "cdr"}, names)
}

func TestPrefixAndMatch(t *testing.T) {
	table := setup(t)

	for _, s := range []string{"string-length", "string-ref", "substring", "strange"} {
		table.Intern(s)
	}

	assert.Equal(t, []string{"string-length", "string-ref"}, table.Prefix("string-"))

	refs, err := table.Match("*string*")
	require.NoError(t, err)
	assert.Len(t, refs, 3)
}
