// Package lang implements the surface syntax of minilisp: the lexer and
// parser that turn source text into an Expression tree. These stages are
// intentionally simple — the interesting parts of the interpreter live in
// lang/value, lang/env, and lang/eval.
package lang

import "fmt"

// A Kind classifies a Lexeme.
type Kind int

// The kinds of lexeme produced by Lex.
const (
	LexErr Kind = iota // malformed input; reserved, Lex never actually emits this
	LeftParen
	RightParen
	Integer
	Symbol
	EOF
)

func (k Kind) String() string {
	switch k {
	case LexErr:
		return "error"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Integer:
		return "integer"
	case Symbol:
		return "symbol"
	case EOF:
		return "eof"
	default:
		return "unknown"
	}
}

// A Lexeme is a single token of source text.
type Lexeme struct {
	Kind Kind
	Text string // the raw token text
	Int  int64  // valid when Kind == Integer
	Line int    // zero-based line of the token's first rune
	Col  int    // zero-based column of the token's first rune
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%v %q (%d:%d)", l.Kind, l.Text, l.Line, l.Col)
}
