// Released under an MIT license. See LICENSE.

package heap

import (
	"github.com/michaelmacinnis/tiny/internal/type/num"
)

// Ref is the index of a cell in the arena.
type Ref uint32

// Type is the type tag stored in the low bits of a cell's flag word.
type Type uint16

// Cell types.
const (
	Free Type = iota
	String
	Number
	Symbol
	Proc
	Pair
	Closure
	Continuation
	Foreign
	Character
	Port
	Vector
	Macro
	Promise
	Environment
	Byte
)

// Flag bits above the type tag.
const (
	typeMask uint16 = 0x1f

	Fixnum    uint16 = 0x0800
	Syntax    uint16 = 0x1000
	Immutable uint16 = 0x2000
	Atom      uint16 = 0x4000
	Mark      uint16 = 0x8000
)

// Reserved cells. They live at the start of the first segment and are
// never swept.
const (
	Nil Ref = iota
	True
	False
	EOF
	Sentinel

	reserved
)

// Cell is a tagged heap object. Pair shaped types use car and cdr. Atoms
// use word for their scalar value and obj for any owned payload.
type Cell struct {
	flag uint16
	car  Ref
	cdr  Ref
	word uint64
	obj  any
}

// Finalizer is implemented by payloads that release a resource when their
// cell is swept.
type Finalizer interface {
	Finalize()
}

// Referrer is implemented by payloads that hold refs the collector must
// trace.
type Referrer interface {
	Refs(visit func(Ref))
}

// Accessors.

func (h *Heap) cell(x Ref) *Cell {
	return &h.segs[int(x)/h.size][int(x)%h.size]
}

// Type returns the type tag of x.
func (h *Heap) Type(x Ref) Type {
	return Type(h.cell(x).flag & typeMask)
}

// Is returns true if x has type t.
func (h *Heap) Is(x Ref, t Type) bool {
	return h.Type(x) == t
}

// Flag returns the flag word of x.
func (h *Heap) Flag(x Ref) uint16 {
	return h.cell(x).flag
}

// SetFlag ors bits into the flag word of x.
func (h *Heap) SetFlag(x Ref, bits uint16) {
	h.cell(x).flag |= bits
}

// SetType replaces the type tag of x, keeping its other flags.
func (h *Heap) SetType(x Ref, t Type) {
	c := h.cell(x)
	c.flag = c.flag&^typeMask | uint16(t)
}

// Immutable returns true if x may not be modified.
func (h *Heap) Immutable(x Ref) bool {
	return h.cell(x).flag&Immutable != 0
}

// Car returns the first field of x.
func (h *Heap) Car(x Ref) Ref {
	return h.cell(x).car
}

// Cdr returns the second field of x.
func (h *Heap) Cdr(x Ref) Ref {
	return h.cell(x).cdr
}

// SetCar replaces the first field of x.
func (h *Heap) SetCar(x, v Ref) {
	h.cell(x).car = v
}

// SetCdr replaces the second field of x.
func (h *Heap) SetCdr(x, v Ref) {
	h.cell(x).cdr = v
}

// Word returns the numeric word of x.
func (h *Heap) Word(x Ref) uint64 {
	return h.cell(x).word
}

// SetWord replaces the numeric word of x.
func (h *Heap) SetWord(x Ref, w uint64) {
	h.cell(x).word = w
}

// Obj returns the payload of x.
func (h *Heap) Obj(x Ref) any {
	return h.cell(x).obj
}

// SetObj replaces the payload of x.
func (h *Heap) SetObj(x Ref, o any) {
	h.cell(x).obj = o
}

// Num returns the number stored in x.
func (h *Heap) Num(x Ref) num.T {
	c := h.cell(x)

	return num.FromBits(c.flag&Fixnum != 0, c.word)
}

// SetNum stores n in x and marks x as a number.
func (h *Heap) SetNum(x Ref, n num.T) {
	c := h.cell(x)

	c.flag = uint16(Number) | Atom
	if n.Fixnum() {
		c.flag |= Fixnum
	}

	c.word = n.Bits()
}

// Bytes returns the buffer of a string cell.
func (h *Heap) Bytes(x Ref) []byte {
	b, _ := h.cell(x).obj.([]byte)

	return b
}

// MakeString allocates a string cell that owns b.
func (h *Heap) MakeString(b []byte) Ref {
	x := h.Get(Nil, Nil)
	if x == Sentinel {
		return x
	}

	c := h.cell(x)
	c.flag = uint16(String) | Atom
	c.obj = b

	return x
}

// SetBytes replaces the buffer of a string cell.
func (h *Heap) SetBytes(x Ref, b []byte) {
	h.cell(x).obj = b
}

// Copy overwrites dst with the contents of src.
func (h *Heap) Copy(dst, src Ref) {
	*h.cell(dst) = *h.cell(src)
}
