// Package errs implements the error taxonomy of spec §7: a closed set of
// failure kinds shared by the lexer/parser, the environment, and the
// evaluator, so that a caller can switch on Kind without caring which
// layer raised the failure. Every Error is constructed through
// github.com/pkg/errors so it carries a stack trace for diagnostics (the
// example pack's Tangerg-lynx/core module uses the same library for the
// same reason), without changing what a type switch on Kind observes.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// A Kind identifies one of the failure modes of spec §7. Tests assert on
// Kind, never on message text.
type Kind int

// The kinds of interpreter failure.
const (
	_ Kind = iota
	LexError         // malformed input; reserved, the lexer never actually fails
	ParseError       // unbalanced parens, empty input, trailing tokens
	UnboundSymbol    // lookup/assign/remove found no binding
	EmptyApplication // application of a zero-element list
	BadSpecialForm   // wrong arity/shape for define, lambda, let, ...
	TypeMismatch     // a value of the wrong kind reached an operation
	ArityMismatch    // built-in or closure called with the wrong arg count
	DivisionByZero
	IndexOutOfBounds // list-ref, or car/cdr on Nil
	RecursionLimit   // the evaluator's recursion-depth cap was exceeded
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case UnboundSymbol:
		return "UnboundSymbol"
	case EmptyApplication:
		return "EmptyApplication"
	case BadSpecialForm:
		return "BadSpecialForm"
	case TypeMismatch:
		return "TypeMismatch"
	case ArityMismatch:
		return "ArityMismatch"
	case DivisionByZero:
		return "DivisionByZero"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case RecursionLimit:
		return "RecursionLimit"
	default:
		return "UnknownError"
	}
}

// An Error is a single interpreter failure: a Kind for programmatic
// dispatch plus a human-readable message for diagnostics.
type Error struct {
	Kind Kind
	Msg  string
	err  error // the pkg/errors-wrapped cause, carrying a stack trace
}

// New constructs an Error of the given kind, wrapped with a stack trace.
func New(kind Kind, format string, args ...interface{}) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind: kind,
		Msg:  msg,
		err:  errors.WithStack(fmt.Errorf("%s: %s", kind, msg)),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the pkg/errors-wrapped cause so errors.Is/As and stack
// trace printing (via %+v) work against the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, errs.New(errs.UnboundSymbol, "")) style checks, but
// callers more commonly use errors.As to recover the Kind directly.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}
