// Released under an MIT license. See LICENSE.

package scheme

func car(sc *T) bool {
	return sc.ret(sc.caar(sc.args))
}

func cdr(sc *T) bool {
	return sc.ret(sc.cdar(sc.args))
}

// Cons reuses the argument list as the new pair.
func cons(sc *T) bool {
	sc.heap.SetCdr(sc.args, sc.cadr(sc.args))

	return sc.ret(sc.args)
}

func setCar(sc *T) bool {
	x := sc.car(sc.args)
	if sc.heap.Immutable(x) {
		return sc.raise("set-car!: unable to alter immutable pair")
	}

	sc.heap.SetCar(x, sc.cadr(sc.args))

	return sc.ret(x)
}

func setCdr(sc *T) bool {
	x := sc.car(sc.args)
	if sc.heap.Immutable(x) {
		return sc.raise("set-cdr!: unable to alter immutable pair")
	}

	sc.heap.SetCdr(x, sc.cadr(sc.args))

	return sc.ret(x)
}

func reverse(sc *T) bool {
	return sc.ret(sc.reverse(sc.car(sc.args)))
}

func listStar(sc *T) bool {
	return sc.ret(sc.listStar(sc.args))
}

// ListStar returns the elements of d with the last element as the tail.
func (sc *T) listStar(d Cell) Cell {
	if sc.cdr(d) == Nil {
		return sc.car(d)
	}

	r := Nil
	for ; sc.cdr(d) != Nil; d = sc.cdr(d) {
		r = sc.cons(sc.car(d), r)
	}

	return sc.reverseInPlace(sc.car(d), r)
}

// Append copies every argument but the last, which becomes the tail.
func appendLists(sc *T) bool {
	y := sc.args
	if y == Nil {
		return sc.ret(Nil)
	}

	x := Nil
	for ; sc.cdr(y) != Nil; y = sc.cdr(y) {
		x = sc.revAppend(x, sc.car(y))
		if x == False {
			return sc.raise("non-list argument to append")
		}
	}

	return sc.ret(sc.reverseInPlace(sc.car(y), x))
}

func length(sc *T) bool {
	n := sc.length(sc.car(sc.args))
	if n < 0 {
		return sc.raise("length: not a list:", sc.car(sc.args))
	}

	return sc.ret(sc.mkInteger(int64(n)))
}

func assq(sc *T) bool {
	x := sc.car(sc.args)

	for y := sc.cadr(sc.args); sc.isPair(y); y = sc.cdr(y) {
		if !sc.isPair(sc.car(y)) {
			return sc.raise("unable to handle non pair element")
		}

		if x == sc.caar(y) {
			return sc.ret(sc.car(y))
		}
	}

	return sc.ret(False)
}

// Property lists are kept in the cdr of a symbol.

func (sc *T) property(s, key Cell) Cell {
	for x := sc.cdr(s); x != Nil; x = sc.cdr(x) {
		if sc.caar(x) == key {
			return x
		}
	}

	return Nil
}

func put(sc *T) bool {
	s, key, value := sc.car(sc.args), sc.cadr(sc.args), sc.car(sc.cddr(sc.args))
	if !sc.isSymbol(s) || !sc.isSymbol(key) {
		return sc.raise("illegal use of put")
	}

	if x := sc.property(s, key); x != Nil {
		sc.heap.SetCdr(sc.car(x), value)
	} else {
		sc.heap.SetCdr(s, sc.cons(sc.cons(key, value), sc.cdr(s)))
	}

	return sc.ret(True)
}

func get(sc *T) bool {
	s, key := sc.car(sc.args), sc.cadr(sc.args)
	if !sc.isSymbol(s) || !sc.isSymbol(key) {
		return sc.raise("illegal use of get")
	}

	if x := sc.property(s, key); x != Nil {
		return sc.ret(sc.cdar(x))
	}

	return sc.ret(Nil)
}
