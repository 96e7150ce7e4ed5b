package eval

import (
	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang/env"
	"github.com/cbarrick/minilisp/lang/value"
)

// NewGlobalFrame builds the root built-ins frame (spec §4.4, §4.7) and
// returns a child of it for the program's top-level definitions to land
// in, so user code never mutates the built-ins frame itself (spec §3
// invariant 2).
func NewGlobalFrame() *env.Frame {
	root := env.NewRoot()
	registerBuiltins(root)
	return env.New(root)
}

func registerBuiltins(fr *env.Frame) {
	fr.Define("#t", value.True)
	fr.Define("#f", value.False)
	fr.Define("nil", value.Empty)

	for name, fn := range map[string]func(args []value.Value) (value.Value, error){
		"+":        builtinAdd,
		"-":        builtinSub,
		"*":        builtinMul,
		"/":        builtinDiv,
		"equal?":   builtinEqual,
		"<":        builtinLt,
		"<=":       builtinLe,
		">":        builtinGt,
		">=":       builtinGe,
		"list":     builtinList,
		"car":      builtinCar,
		"cdr":      builtinCdr,
		"list?":    builtinIsList,
		"length":   builtinLength,
		"list-ref": builtinListRef,
		"append":   builtinAppend,
		"map":      builtinMap,
		"filter":   builtinFilter,
	} {
		fr.Define(name, value.NewBuiltin(name, fn))
	}
}

func asInteger(v value.Value, context string) (int64, error) {
	i, ok := v.(value.Integer)
	if !ok {
		return 0, errs.New(errs.TypeMismatch, "%s: expected an integer, got %v", context, v.Kind())
	}
	return int64(i), nil
}

func asIntegers(args []value.Value, context string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		n, err := asInteger(a, context)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func asList(v value.Value, context string) (value.Cell, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "%s: expected a list, got %v", context, v.Kind())
	}
	return l.Cell, nil
}

func asFunction(v value.Value, context string) (value.Function, error) {
	f, ok := v.(value.Function)
	if !ok {
		return nil, errs.New(errs.TypeMismatch, "%s: expected a function, got %v", context, v.Kind())
	}
	return f, nil
}

func builtinAdd(args []value.Value) (value.Value, error) {
	ns, err := asIntegers(args, "+")
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range ns {
		sum += n
	}
	return value.Integer(sum), nil
}

func builtinSub(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, errs.New(errs.ArityMismatch, "-: expects at least 1 argument, got 0")
	}
	ns, err := asIntegers(args, "-")
	if err != nil {
		return nil, err
	}
	if len(ns) == 1 {
		return value.Integer(-ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return value.Integer(result), nil
}

func builtinMul(args []value.Value) (value.Value, error) {
	ns, err := asIntegers(args, "*")
	if err != nil {
		return nil, err
	}
	result := int64(1)
	for _, n := range ns {
		result *= n
	}
	return value.Integer(result), nil
}

func builtinDiv(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, errs.New(errs.ArityMismatch, "/: expects at least 2 arguments, got %d", len(args))
	}
	ns, err := asIntegers(args, "/")
	if err != nil {
		return nil, err
	}
	denom := int64(1)
	for _, n := range ns[1:] {
		denom *= n
	}
	if denom == 0 {
		return nil, errs.New(errs.DivisionByZero, "/: division by zero")
	}
	return value.Integer(ns[0] / denom), nil
}

// pairwiseIntegerPredicate implements spec §4.7's "pairwise-adjacent
// predicate over the integer sequence": true iff rel holds between every
// consecutive pair.
func pairwiseIntegerPredicate(name string, args []value.Value, rel func(a, b int64) bool) (value.Value, error) {
	if len(args) < 2 {
		return nil, errs.New(errs.ArityMismatch, "%s: expects at least 2 arguments, got %d", name, len(args))
	}
	ns, err := asIntegers(args, name)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(ns); i++ {
		if !rel(ns[i-1], ns[i]) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func builtinEqual(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, errs.New(errs.ArityMismatch, "equal?: expects at least 2 arguments, got %d", len(args))
	}
	for i := 1; i < len(args); i++ {
		if !value.Equal(args[i-1], args[i]) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func builtinLt(args []value.Value) (value.Value, error) {
	return pairwiseIntegerPredicate("<", args, func(a, b int64) bool { return a < b })
}

func builtinLe(args []value.Value) (value.Value, error) {
	return pairwiseIntegerPredicate("<=", args, func(a, b int64) bool { return a <= b })
}

func builtinGt(args []value.Value) (value.Value, error) {
	return pairwiseIntegerPredicate(">", args, func(a, b int64) bool { return a > b })
}

func builtinGe(args []value.Value) (value.Value, error) {
	return pairwiseIntegerPredicate(">=", args, func(a, b int64) bool { return a >= b })
}

func builtinList(args []value.Value) (value.Value, error) {
	return value.List{Cell: value.Build(args)}, nil
}

func builtinCar(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errs.New(errs.ArityMismatch, "car: expects 1 argument, got %d", len(args))
	}
	cell, err := asList(args[0], "car")
	if err != nil {
		return nil, err
	}
	v, ok := value.Head(cell)
	if !ok {
		return nil, errs.New(errs.IndexOutOfBounds, "car: empty list")
	}
	return v, nil
}

func builtinCdr(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errs.New(errs.ArityMismatch, "cdr: expects 1 argument, got %d", len(args))
	}
	cell, err := asList(args[0], "cdr")
	if err != nil {
		return nil, err
	}
	tail, ok := value.Tail(cell)
	if !ok {
		return nil, errs.New(errs.IndexOutOfBounds, "cdr: empty list")
	}
	return value.List{Cell: tail}, nil
}

func builtinIsList(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errs.New(errs.ArityMismatch, "list?: expects 1 argument, got %d", len(args))
	}
	_, ok := args[0].(value.List)
	return value.Bool(ok), nil
}

func builtinLength(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errs.New(errs.ArityMismatch, "length: expects 1 argument, got %d", len(args))
	}
	cell, err := asList(args[0], "length")
	if err != nil {
		return nil, err
	}
	return value.Integer(value.Length(cell)), nil
}

func builtinListRef(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errs.New(errs.ArityMismatch, "list-ref: expects 2 arguments, got %d", len(args))
	}
	cell, err := asList(args[0], "list-ref")
	if err != nil {
		return nil, err
	}
	idx, err := asInteger(args[1], "list-ref")
	if err != nil {
		return nil, err
	}
	v, ok := value.Index(cell, int(idx))
	if !ok {
		return nil, errs.New(errs.IndexOutOfBounds, "list-ref: index %d out of bounds", idx)
	}
	return v, nil
}

func builtinAppend(args []value.Value) (value.Value, error) {
	cells := make([]value.Cell, len(args))
	for i, a := range args {
		cell, err := asList(a, "append")
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return value.List{Cell: value.Append(cells...)}, nil
}

func builtinMap(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errs.New(errs.ArityMismatch, "map: expects 2 arguments, got %d", len(args))
	}
	cell, err := asList(args[0], "map")
	if err != nil {
		return nil, err
	}
	fn, err := asFunction(args[1], "map")
	if err != nil {
		return nil, err
	}
	items := value.Slice(cell)
	out := make([]value.Value, len(items))
	for i, item := range items {
		v, err := fn.Invoke([]value.Value{item})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.List{Cell: value.Build(out)}, nil
}

func builtinFilter(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, errs.New(errs.ArityMismatch, "filter: expects 2 arguments, got %d", len(args))
	}
	cell, err := asList(args[0], "filter")
	if err != nil {
		return nil, err
	}
	fn, err := asFunction(args[1], "filter")
	if err != nil {
		return nil, err
	}
	items := value.Slice(cell)
	var out []value.Value
	for _, item := range items {
		v, err := fn.Invoke([]value.Value{item})
		if err != nil {
			return nil, err
		}
		b, ok := v.(value.Bool)
		if !ok {
			return nil, errs.New(errs.TypeMismatch, "filter: predicate must return a bool, got %v", v.Kind())
		}
		if bool(b) {
			out = append(out, item)
		}
	}
	return value.List{Cell: value.Build(out)}, nil
}
