// Package env implements the lexically scoped environment chain (spec
// §4.4): a Frame is a name→value mapping with an optional parent link.
// Frames form a tree rooted at a shared built-ins frame.
//
// This simplifies the teacher repo's namespace machinery
// (cbarrick-ripl/lang/scope, lang/value.Namespace) down to a direct
// map[string]value.Value — Lisp symbols, unlike Prolog's unification
// variables, need no interned totally-ordered address space, just a name.
package env

import (
	"github.com/pkg/errors"

	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang/value"
)

// A Frame is a single node in the environment chain. The zero value is
// not usable; construct one with New or NewRoot.
type Frame struct {
	bindings map[string]value.Value
	parent   *Frame
}

// NewRoot returns a new frame with no parent, typically used for the
// built-ins frame (spec §4.4: "a built-ins frame that is shared across
// the program").
func NewRoot() *Frame {
	return &Frame{bindings: make(map[string]value.Value)}
}

// New returns a new frame parented on parent, with no initial bindings.
func New(parent *Frame) *Frame {
	return &Frame{bindings: make(map[string]value.Value), parent: parent}
}

// NewChild implements value.Frame: a fresh frame parented on f, seeded
// with bindings. Used by value.Closure.Invoke to build the call frame and
// by the eval package to build let/let* frames.
func (f *Frame) NewChild(bindings map[string]value.Value) value.Frame {
	child := New(f)
	for k, v := range bindings {
		child.bindings[k] = v
	}
	return child
}

// Identity implements value.Frame: the frame's own pointer, used only to
// compare captured frames for closure equality.
func (f *Frame) Identity() any { return f }

// Lookup resolves name in this frame, walking parent links. It fails with
// errs.UnboundSymbol if name is bound nowhere in the chain (spec §4.4,
// §3 invariant 1: "unresolved lookup is a failure, never a silent Void").
func (f *Frame) Lookup(name string) (value.Value, error) {
	for fr := f; fr != nil; fr = fr.parent {
		if v, ok := fr.bindings[name]; ok {
			return v, nil
		}
	}
	return nil, errors.WithStack(errs.New(errs.UnboundSymbol, "unbound symbol %q", name))
}

// Define inserts or overwrites name in this frame only; it never touches
// parents.
func (f *Frame) Define(name string, v value.Value) {
	f.bindings[name] = v
}

// Assign (set!) walks the chain to find the first frame where name is
// already present and overwrites it there, returning the new value. It
// fails with errs.UnboundSymbol if name is bound nowhere in the chain.
func (f *Frame) Assign(name string, v value.Value) (value.Value, error) {
	for fr := f; fr != nil; fr = fr.parent {
		if _, ok := fr.bindings[name]; ok {
			fr.bindings[name] = v
			return v, nil
		}
	}
	return nil, errors.WithStack(errs.New(errs.UnboundSymbol, "unbound symbol %q", name))
}

// Remove (del) deletes name from this frame only — it does not consult
// parents — returning the removed value. It fails with errs.UnboundSymbol
// if name is not present in this frame.
func (f *Frame) Remove(name string) (value.Value, error) {
	v, ok := f.bindings[name]
	if !ok {
		return nil, errors.WithStack(errs.New(errs.UnboundSymbol, "unbound symbol %q in this frame", name))
	}
	delete(f.bindings, name)
	return v, nil
}
