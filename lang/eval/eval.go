// Package eval implements the tree-walking evaluator of minilisp (spec
// §4.6): the single Eval entry point, the special-form dispatch table,
// and application ordering. It is the one package that imports both
// lang/value and lang/env, wiring a concrete value.Evaluator callback
// into every closure it constructs.
package eval

import (
	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang"
	"github.com/cbarrick/minilisp/lang/env"
	"github.com/cbarrick/minilisp/lang/value"
)

// DefaultMaxDepth is the recursion-depth cap applied by Eval when the
// driver does not configure one (spec §5, "Implementations may impose a
// recursion-depth cap"). It turns a runaway recursion into a recoverable
// RecursionLimit error rather than a crashed process.
const DefaultMaxDepth = 10000

// A special form's operand expressions are not uniformly evaluated; the
// table below dispatches on the head symbol exactly as spec.md §4.6
// describes, in the same table-driven spirit as the teacher repo's
// operator-precedence tables (a map consulted by name, not a chain of
// string comparisons).
type specialForm func(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error)

var specialForms = map[string]specialForm{
	"define": evalDefine,
	"lambda": evalLambda,
	"if":     evalIf,
	"and":    evalAnd,
	"or":     evalOr,
	"del":    evalDel,
	"let":    evalLet,
	"let*":   evalLetStar,
	"set!":   evalSet,
	"begin":  evalBegin,
}

// evaluator threads the recursion-depth cap through a single top-level
// Eval call without making Eval itself stateful between calls.
type evaluator struct {
	maxDepth int
	depth    int
}

// Eval is the evaluator's single entry point (spec §4.6): dispatch by
// expression shape, special forms first, then ordinary application. fr
// is typically the program's global frame, a child of the built-ins
// frame built by NewGlobalFrame.
func Eval(expr lang.Expression, fr *env.Frame) (value.Value, error) {
	ev := &evaluator{maxDepth: DefaultMaxDepth}
	return ev.eval(expr, fr)
}

// EvalWithDepth is Eval with an explicit recursion-depth cap, used by the
// driver when a config file or environment variable overrides the default.
func EvalWithDepth(expr lang.Expression, fr *env.Frame, maxDepth int) (value.Value, error) {
	ev := &evaluator{maxDepth: maxDepth}
	return ev.eval(expr, fr)
}

func (ev *evaluator) eval(expr lang.Expression, fr value.Frame) (value.Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.maxDepth > 0 && ev.depth > ev.maxDepth {
		return nil, errs.New(errs.RecursionLimit, "recursion depth exceeded %d", ev.maxDepth)
	}

	switch expr.Kind {
	case lang.IntegerExpr:
		return value.Integer(expr.Int), nil

	case lang.SymbolExpr:
		return fr.Lookup(expr.Symbol)

	case lang.ListExpr:
		return ev.evalList(expr, fr)

	default:
		return nil, errs.New(errs.BadSpecialForm, "unrecognized expression kind %v", expr.Kind)
	}
}

func (ev *evaluator) evalList(expr lang.Expression, fr value.Frame) (value.Value, error) {
	if len(expr.List) == 0 {
		return nil, errs.New(errs.EmptyApplication, "cannot apply an empty list")
	}

	head, _ := expr.Head() // non-empty ListExpr, ok is always true here
	if head.Kind == lang.SymbolExpr {
		if form, ok := specialForms[head.Symbol]; ok {
			return form(ev, expr.List, fr)
		}
	}

	fn, err := ev.eval(head, fr)
	if err != nil {
		return nil, err
	}
	callee, ok := fn.(value.Function)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "cannot apply a value of kind %v", fn.Kind())
	}

	args := make([]value.Value, len(expr.List)-1)
	for i, operand := range expr.List[1:] {
		v, err := ev.eval(operand, fr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return callee.Invoke(args)
}

// asEvaluator adapts ev into a value.Evaluator callback for NewClosure, so
// value.Closure.Invoke can call back into this package's eval without
// lang/value importing lang/eval.
func (ev *evaluator) asEvaluator() value.Evaluator {
	return func(expr lang.Expression, fr value.Frame) (value.Value, error) {
		return ev.eval(expr, fr)
	}
}

func requireArity(operands []lang.Expression, n int, form string) error {
	if len(operands) != n {
		return errs.New(errs.BadSpecialForm, "%s expects %d operand(s) (excluding head), got %d", form, n-1, len(operands)-1)
	}
	return nil
}

func requireSymbol(expr lang.Expression, form, role string) (string, error) {
	if expr.Kind != lang.SymbolExpr {
		return "", errs.New(errs.BadSpecialForm, "%s: %s must be a symbol, got %v", form, role, expr.Kind)
	}
	return expr.Symbol, nil
}

func evalDefine(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 3, "define"); err != nil {
		return nil, err
	}
	name, err := requireSymbol(operands[1], "define", "2nd operand")
	if err != nil {
		return nil, err
	}
	v, err := ev.eval(operands[2], fr)
	if err != nil {
		return nil, err
	}
	fr.Define(name, v)
	return v, nil
}

func evalLambda(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 3, "lambda"); err != nil {
		return nil, err
	}
	paramList := operands[1]
	if paramList.Kind != lang.ListExpr {
		return nil, errs.New(errs.BadSpecialForm, "lambda: 2nd operand must be a list of parameter symbols")
	}
	params := make([]string, len(paramList.List))
	for i, p := range paramList.List {
		name, err := requireSymbol(p, "lambda", "parameter")
		if err != nil {
			return nil, err
		}
		params[i] = name
	}
	body := operands[2]
	return value.NewClosure(params, body, fr, ev.asEvaluator())
}

func evalIf(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 4, "if"); err != nil {
		return nil, err
	}
	cond, err := ev.eval(operands[1], fr)
	if err != nil {
		return nil, err
	}
	if isTrue(cond) {
		return ev.eval(operands[2], fr)
	}
	return ev.eval(operands[3], fr)
}

// isTrue implements the truthiness Open Question decision (spec §9,
// SPEC_FULL.md §4.6): only the exact value Bool(true) is true; every
// other value, including Integer(0) and the empty list, is false.
func isTrue(v value.Value) bool {
	b, ok := v.(value.Bool)
	return ok && bool(b)
}

// isFalse reports whether v is the exact value Bool(false), the only
// thing that makes and short-circuit (spec §4.6; original_source's
// evaluate.rs "and" arm checks == Bool(false), not != Bool(true), so a
// non-Bool operand like an integer does not trigger the short circuit).
func isFalse(v value.Value) bool {
	b, ok := v.(value.Bool)
	return ok && !bool(b)
}

func evalAnd(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if len(operands) < 1 {
		return nil, errs.New(errs.BadSpecialForm, "and expects at least 1 operand")
	}
	for _, operand := range operands[1:] {
		v, err := ev.eval(operand, fr)
		if err != nil {
			return nil, err
		}
		if isFalse(v) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func evalOr(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if len(operands) < 1 {
		return nil, errs.New(errs.BadSpecialForm, "or expects at least 1 operand")
	}
	for _, operand := range operands[1:] {
		v, err := ev.eval(operand, fr)
		if err != nil {
			return nil, err
		}
		if isTrue(v) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func evalDel(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 2, "del"); err != nil {
		return nil, err
	}
	name, err := requireSymbol(operands[1], "del", "2nd operand")
	if err != nil {
		return nil, err
	}
	return fr.Remove(name)
}

// evalLet implements the parallel-binding Open Question decision: each
// binding's initializer evaluates in the current frame, so bindings
// cannot see one another.
func evalLet(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 3, "let"); err != nil {
		return nil, err
	}
	bindingsExpr := operands[1]
	if bindingsExpr.Kind != lang.ListExpr {
		return nil, errs.New(errs.BadSpecialForm, "let: 2nd operand must be a list of bindings")
	}

	bindings := make(map[string]value.Value, len(bindingsExpr.List))
	for _, b := range bindingsExpr.List {
		name, initExpr, err := letBinding(b)
		if err != nil {
			return nil, err
		}
		v, err := ev.eval(initExpr, fr)
		if err != nil {
			return nil, err
		}
		bindings[name] = v
	}

	child := fr.NewChild(bindings)
	return ev.eval(operands[2], child)
}

// evalLetStar is the new sequential-binding sibling to let (SPEC_FULL.md
// §4.6): each binding's initializer evaluates in a frame that already
// contains every binding before it, so later clauses may refer to
// earlier ones.
func evalLetStar(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 3, "let*"); err != nil {
		return nil, err
	}
	bindingsExpr := operands[1]
	if bindingsExpr.Kind != lang.ListExpr {
		return nil, errs.New(errs.BadSpecialForm, "let*: 2nd operand must be a list of bindings")
	}

	child := fr.NewChild(nil)
	for _, b := range bindingsExpr.List {
		name, initExpr, err := letBinding(b)
		if err != nil {
			return nil, err
		}
		v, err := ev.eval(initExpr, child)
		if err != nil {
			return nil, err
		}
		child.Define(name, v)
	}

	return ev.eval(operands[2], child)
}

func letBinding(b lang.Expression) (name string, init lang.Expression, err error) {
	if b.Kind != lang.ListExpr || len(b.List) != 2 {
		return "", lang.Expression{}, errs.New(errs.BadSpecialForm, "let binding must be a 2-element list of (symbol expression)")
	}
	name, err = requireSymbol(b.List[0], "let", "binding name")
	if err != nil {
		return "", lang.Expression{}, err
	}
	return name, b.List[1], nil
}

func evalSet(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if err := requireArity(operands, 3, "set!"); err != nil {
		return nil, err
	}
	name, err := requireSymbol(operands[1], "set!", "2nd operand")
	if err != nil {
		return nil, err
	}
	v, err := ev.eval(operands[2], fr)
	if err != nil {
		return nil, err
	}
	return fr.Assign(name, v)
}

// evalBegin is the new special form resolving the begin Open Question
// (SPEC_FULL.md §4.6): evaluate every operand in the current frame in
// order, returning the last one's value. A failure anywhere aborts the
// whole form.
func evalBegin(ev *evaluator, operands []lang.Expression, fr value.Frame) (value.Value, error) {
	if len(operands) < 2 {
		return nil, errs.New(errs.BadSpecialForm, "begin expects at least 1 operand")
	}
	var result value.Value
	for _, operand := range operands[1:] {
		v, err := ev.eval(operand, fr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
