// Released under an MIT license. See LICENSE.

// Package symbol provides the interpreter's table of interned symbols.
//
// Symbols are interned without regard to case. The first spelling seen is
// the one a symbol keeps. A symbol cell's car is its immutable name string
// and its cdr is its property list.
package symbol

import (
	"strconv"
	"strings"

	"github.com/google/btree"
	"github.com/michaelmacinnis/adapted"
	"golang.org/x/text/cases"

	"github.com/michaelmacinnis/tiny/internal/heap"
)

const degree = 16

type entry struct {
	key string
	ref heap.Ref
}

// T (symbol table) is the oblist.
type T struct {
	fold    cases.Caser
	gensyms int64
	heap    *heap.Heap
	tree    *btree.BTreeG[entry]
}

// New creates an empty symbol table backed by h.
func New(h *heap.Heap) *T {
	return &T{
		fold: cases.Fold(),
		heap: h,
		tree: btree.NewG[entry](degree, func(a, b entry) bool {
			return a.key < b.key
		}),
	}
}

// Find returns the symbol named name, if it exists.
func (t *T) Find(name string) (heap.Ref, bool) {
	e, ok := t.tree.Get(entry{key: t.key(name)})

	return e.ref, ok
}

// Intern returns the symbol named name, creating it if necessary.
func (t *T) Intern(name string) heap.Ref {
	key := t.key(name)

	if e, ok := t.tree.Get(entry{key: key}); ok {
		return e.ref
	}

	s := t.heap.MakeString([]byte(name))
	if s == heap.Sentinel {
		return s
	}

	t.heap.SetFlag(s, heap.Immutable)

	x := t.heap.Cons(s, heap.Nil)
	if x == heap.Sentinel {
		return x
	}

	t.heap.SetType(x, heap.Symbol)

	t.tree.ReplaceOrInsert(entry{key: key, ref: x})

	return x
}

// Name returns the name of the symbol x.
func (t *T) Name(x heap.Ref) string {
	return string(t.heap.Bytes(t.heap.Car(x)))
}

// Gensym creates a symbol whose name is not yet in use.
func (t *T) Gensym() heap.Ref {
	for {
		t.gensyms++

		name := "gensym-" + strconv.FormatInt(t.gensyms, 10)
		if _, ok := t.Find(name); !ok {
			return t.Intern(name)
		}
	}
}

// Each calls f for every symbol in name order until f returns false.
func (t *T) Each(f func(heap.Ref) bool) {
	t.tree.Ascend(func(e entry) bool {
		return f(e.ref)
	})
}

// Len returns the number of symbols.
func (t *T) Len() int {
	return t.tree.Len()
}

// Prefix returns the names of symbols starting with p.
func (t *T) Prefix(p string) []string {
	key := t.key(p)

	var names []string

	t.tree.AscendGreaterOrEqual(entry{key: key}, func(e entry) bool {
		if !strings.HasPrefix(e.key, key) {
			return false
		}

		names = append(names, t.Name(e.ref))

		return true
	})

	return names
}

// Match returns the symbols whose names match the shell pattern.
func (t *T) Match(pattern string) ([]heap.Ref, error) {
	var (
		err  error
		refs []heap.Ref
	)

	t.tree.Ascend(func(e entry) bool {
		var ok bool

		ok, err = adapted.Match(pattern, t.Name(e.ref))
		if err != nil {
			return false
		}

		if ok {
			refs = append(refs, e.ref)
		}

		return true
	})

	return refs, err
}

// Refs visits every symbol. The table is a root of every collection.
func (t *T) Refs(visit func(heap.Ref)) {
	t.tree.Ascend(func(e entry) bool {
		visit(e.ref)

		return true
	})
}

func (t *T) key(name string) string {
	return t.fold.String(name)
}
