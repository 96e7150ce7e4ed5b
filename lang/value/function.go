package value

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang"
)

// Frame is the slice of lang/env.Frame that this package depends on. It is
// declared here, not imported from lang/env, so that lang/env can depend
// on lang/value (to store Values) without creating an import cycle;
// *env.Frame satisfies this interface structurally. This is the same
// "one call contract, many implementations" idiom the teacher repo uses
// for its Term sum type (lang.Term), applied to the environment instead.
type Frame interface {
	Lookup(name string) (Value, error)
	Define(name string, v Value)
	Assign(name string, v Value) (Value, error)
	Remove(name string) (Value, error)

	// NewChild returns a fresh frame parented on this one, seeded with
	// bindings — used by Closure.Invoke to build the call frame.
	NewChild(bindings map[string]Value) Frame

	// Identity returns a comparable token unique to this frame, used only
	// to compare captured frames for closure equality (§4.5).
	Identity() any
}

// Evaluator evaluates an expression against a frame. It is the shape of
// lang/eval.Eval, injected into closures at construction time (by the
// eval package, which is the only thing that both constructs closures and
// knows how to evaluate their bodies) so that lang/value need not import
// lang/eval — which itself must import lang/value for the Value type.
type Evaluator func(expr lang.Expression, fr Frame) (Value, error)

// Function is the uniform call contract shared by built-ins and user
// closures (spec §4.5, §9 "Function values as a sum type"): one Invoke
// operation regardless of which flavor of function is underneath.
type Function interface {
	Value
	Invoke(args []Value) (Value, error)

	// Equal reports function equality per spec §4.5: closures are equal
	// iff same parameter names, structurally identical body, and the
	// same captured frame; built-ins are equal iff they wrap the same
	// underlying callable (identity, not value).
	Equal(other Function) bool
}

// Builtin is an implementation-provided callable exposed under a name in
// the built-ins frame. It validates its own argument count and types,
// failing with errs.ArityMismatch/errs.TypeMismatch as appropriate.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// NewBuiltin wraps fn as a named Builtin.
func NewBuiltin(name string, fn func(args []Value) (Value, error)) *Builtin {
	return &Builtin{Name: name, Fn: fn}
}

// Kind implements Value.
func (*Builtin) Kind() Kind { return FunctionKind }

func (b *Builtin) String() string { return fmt.Sprintf("#<builtin %s>", b.Name) }

// Invoke implements Function.
func (b *Builtin) Invoke(args []Value) (Value, error) { return b.Fn(args) }

// Equal implements Function: two built-ins are equal iff they are the
// same wrapper, i.e. the same underlying callable by identity.
func (b *Builtin) Equal(other Function) bool {
	o, ok := other.(*Builtin)
	return ok && o == b
}

// Closure is a user-defined function: parameters, a body expression, and
// the frame in effect where the lambda was evaluated (lexical capture).
type Closure struct {
	Params []string
	Body   lang.Expression
	Env    Frame

	eval Evaluator
}

// NewClosure builds a Closure. params must be distinct symbols; this
// constructor enforces that, failing with errs.BadSpecialForm on a
// repeated name (the lambda special form in lang/eval passes the names
// through unchecked).
func NewClosure(params []string, body lang.Expression, capturedFrame Frame, eval Evaluator) (*Closure, error) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return nil, errs.New(errs.BadSpecialForm, "duplicate parameter name %q in lambda", p)
		}
		seen[p] = true
	}
	return &Closure{Params: params, Body: body, Env: capturedFrame, eval: eval}, nil
}

// Kind implements Value.
func (*Closure) Kind() Kind { return FunctionKind }

func (c *Closure) String() string {
	return fmt.Sprintf("#<closure (%s)>", strings.Join(c.Params, " "))
}

// Invoke implements Function: binds args to Params positionally in a
// fresh frame parented on the captured frame (not the caller's frame —
// this is lexical, not dynamic, scope), then evaluates Body there.
func (c *Closure) Invoke(args []Value) (Value, error) {
	if len(args) != len(c.Params) {
		return nil, errs.New(errs.ArityMismatch,
			"closure expects %d argument(s), got %d", len(c.Params), len(args))
	}
	bindings := make(map[string]Value, len(args))
	for i, p := range c.Params {
		bindings[p] = args[i]
	}
	child := c.Env.NewChild(bindings)
	return c.eval(c.Body, child)
}

// Equal implements Function.
func (c *Closure) Equal(other Function) bool {
	o, ok := other.(*Closure)
	if !ok {
		return false
	}
	if len(c.Params) != len(o.Params) {
		return false
	}
	for i := range c.Params {
		if c.Params[i] != o.Params[i] {
			return false
		}
	}
	return reflect.DeepEqual(c.Body, o.Body) && c.Env.Identity() == o.Env.Identity()
}
