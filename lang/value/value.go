// Package value implements the runtime value model of minilisp: the closed
// sum type of every value an expression can evaluate to (§3 of the spec),
// list cells (§4.3), and function objects (§4.5). It mirrors the shape the
// teacher repo cbarrick-ripl uses for its own Prolog values and terms — a
// closed interface with a Kind/Type discriminator — generalized to this
// language's five-variant value set instead of Prolog's functor/number/
// variable/list terms.
package value

import (
	"fmt"
	"strconv"
)

// A Kind discriminates the variants of Value. Every call site that
// inspects a Value switches on Kind (or type-switches on the concrete
// type) and must handle every variant or fail with a TypeMismatch — there
// is no open polymorphism here by design (spec §9, "Variant dispatch over
// values").
type Kind int

// The kinds of runtime value.
const (
	VoidKind Kind = iota
	IntegerKind
	BoolKind
	FunctionKind
	ListKind
)

func (k Kind) String() string {
	switch k {
	case VoidKind:
		return "void"
	case IntegerKind:
		return "integer"
	case BoolKind:
		return "bool"
	case FunctionKind:
		return "function"
	case ListKind:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the common interface for every runtime value. Expressions are
// program text; Values are what evaluating an Expression produces.
type Value interface {
	Kind() Kind
	String() string
}

// Void is the result of a side-effect-only form. There is exactly one Void
// value.
type Void struct{}

// Kind implements Value.
func (Void) Kind() Kind { return VoidKind }

func (Void) String() string { return "#<void>" }

// Integer is a signed 64-bit integer value.
type Integer int64

// Kind implements Value.
func (Integer) Kind() Kind { return IntegerKind }

func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Bool has exactly two inhabitants, True and False.
type Bool bool

// True and False are the only two Bool values, matching #t and #f.
const (
	True  Bool = true
	False Bool = false
)

// Kind implements Value.
func (Bool) Kind() Kind { return BoolKind }

func (b Bool) String() string {
	if b {
		return "#t"
	}
	return "#f"
}

// Equal reports whether a and b are structurally equal: equal-kind
// integers/bools compare by underlying value, lists compare element-wise
// (Nil equals only Nil), and functions compare per their own equality
// rule (see Function.Equal in function.go). Values of different kinds are
// never equal.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case Void:
		return true
	case Integer:
		return a == b.(Integer)
	case Bool:
		return a == b.(Bool)
	case List:
		return equalCells(a.Cell, b.(List).Cell)
	case Function:
		return a.Equal(b.(Function))
	default:
		panic(fmt.Sprintf("value: Equal: unhandled kind %v", a.Kind()))
	}
}

func equalCells(a, b Cell) bool {
	for {
		aCons, aOk := a.(Cons)
		bCons, bOk := b.(Cons)
		switch {
		case !aOk && !bOk:
			return true // both Nil
		case aOk != bOk:
			return false
		case !Equal(aCons.Head, bCons.Head):
			return false
		default:
			a, b = aCons.Tail, bCons.Tail
		}
	}
}
