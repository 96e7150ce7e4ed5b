package value

import (
	"strings"

	"github.com/samber/lo"
)

// A Cell is a proper-list node: either Nil (the empty list) or a Cons of a
// head Value and a tail Cell. The tail is always a Cell, never a general
// Value, so lists built through this package are always proper — there
// are no dotted pairs.
type Cell interface {
	isCell()
}

// Nil is the empty list. The zero value of Nil is the only inhabitant.
type Nil struct{}

func (Nil) isCell() {}

// Cons is a single list node: a head value and the rest of the list.
type Cons struct {
	Head Value
	Tail Cell
}

func (Cons) isCell() {}

// List is the Value variant wrapping a Cell, i.e. Value::List(ListCell).
type List struct {
	Cell Cell
}

// Kind implements Value.
func (List) Kind() Kind { return ListKind }

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	first := true
	for cell := l.Cell; ; {
		cons, ok := cell.(Cons)
		if !ok {
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(cons.Head.String())
		cell = cons.Tail
	}
	b.WriteByte(')')
	return b.String()
}

// Empty is the canonical empty list value, bound as nil in the built-ins
// frame.
var Empty = List{Cell: Nil{}}

// Build right-folds a slice of values into a Cell, the canonical way to
// construct a proper list from already-evaluated values. It is built on
// lo.Reduce/lo.Reverse the way the example pack's Tangerg/lynx/pkg module
// reaches for samber/lo to fold and reshape slices instead of hand-rolling
// the loop. lo.Reverse works in place, so it is given a copy and vals is
// left untouched.
func Build(vals []Value) Cell {
	return lo.Reduce(lo.Reverse(append([]Value(nil), vals...)), func(tail Cell, v Value, _ int) Cell {
		return Cons{Head: v, Tail: tail}
	}, Cell(Nil{}))
}

// Slice flattens a Cell back into a slice of values, in list order. It is
// the inverse of Build for proper lists.
func Slice(c Cell) []Value {
	var out []Value
	for {
		cons, ok := c.(Cons)
		if !ok {
			return out
		}
		out = append(out, cons.Head)
		c = cons.Tail
	}
}

// Head returns the head of a non-empty list (car). ok is false for Nil.
func Head(c Cell) (v Value, ok bool) {
	cons, ok := c.(Cons)
	if !ok {
		return nil, false
	}
	return cons.Head, true
}

// Tail returns the tail of a non-empty list (cdr). ok is false for Nil.
func Tail(c Cell) (tail Cell, ok bool) {
	cons, ok := c.(Cons)
	if !ok {
		return nil, false
	}
	return cons.Tail, true
}

// Length counts the elements of c in O(n) time. Nil has length 0.
func Length(c Cell) int {
	n := 0
	for {
		cons, ok := c.(Cons)
		if !ok {
			return n
		}
		n++
		c = cons.Tail
	}
}

// Index returns the element at position i (0-based). ok is false when i
// is out of bounds.
func Index(c Cell, i int) (v Value, ok bool) {
	if i < 0 {
		return nil, false
	}
	for {
		cons, isCons := c.(Cons)
		if !isCons {
			return nil, false
		}
		if i == 0 {
			return cons.Head, true
		}
		i--
		c = cons.Tail
	}
}

// Append concatenates lists in order, producing fresh structure; none of
// the input lists are mutated. An empty argument sequence yields Nil.
func Append(lists ...Cell) Cell {
	var flat []Value
	for _, c := range lists {
		flat = append(flat, Slice(c)...)
	}
	return Build(flat)
}
