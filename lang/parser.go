package lang

import (
	"io"

	"go.uber.org/multierr"

	"github.com/cbarrick/minilisp/errs"
)

// A Parser turns a token stream into a single Expression. It is a direct
// transliteration of the recursive-descent shape of cbarrick-ripl's Prolog
// parser (lang.Parser.read/readGroup), stripped of the operator-precedence
// table that Prolog's infix operators require and that this prefix-only
// grammar has no use for. Every failure is an *errs.Error of kind
// errs.ParseError, per spec §7.
type Parser struct {
	toks <-chan Lexeme
	buf  Lexeme
}

// NewParser returns a Parser reading tokens lexed from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{toks: Lex(r)}
}

// Parse lexes and parses r in one step.
func Parse(r io.Reader) (Expression, error) {
	return NewParser(r).Parse()
}

// Parse consumes the parser's entire token stream and returns the single
// expression it denotes. Per spec, a program is exactly one top-level
// expression: multi-form programs must be wrapped in a begin.
func (p *Parser) Parse() (expr Expression, err error) {
	defer func() {
		for range p.toks {
		}
	}()
	p.advance()
	if p.buf.Kind == EOF {
		return Expression{}, errs.New(errs.ParseError, "empty input")
	}

	expr, err = p.readExpr()
	if err != nil {
		return expr, err
	}

	if p.buf.Kind != EOF {
		err = multierr.Append(err, errs.New(errs.ParseError,
			"trailing tokens after expression, starting at %d:%d: %q", p.buf.Line, p.buf.Col, p.buf.Text))
	}
	return expr, err
}

func (p *Parser) advance() Lexeme {
	p.buf = <-p.toks
	return p.buf
}

func (p *Parser) readExpr() (Expression, error) {
	switch p.buf.Kind {
	case Integer:
		e := NewInteger(p.buf.Int)
		p.advance()
		return e, nil

	case Symbol:
		e := NewSymbol(p.buf.Text)
		p.advance()
		return e, nil

	case LeftParen:
		return p.readList()

	case RightParen:
		err := errs.New(errs.ParseError, "unmatched right parenthesis at %d:%d", p.buf.Line, p.buf.Col)
		p.advance()
		return Expression{}, err

	default: // EOF
		return Expression{}, errs.New(errs.ParseError, "empty input")
	}
}

// readList parses the children of a parenthesized list. Unlike a single
// first error aborting the whole parse, it keeps reading past a bad child
// so that an input with more than one structural problem (e.g. two
// unmatched opens at different depths) reports all of them, combined with
// multierr, rather than only the first.
func (p *Parser) readList() (Expression, error) {
	openLine, openCol := p.buf.Line, p.buf.Col
	p.advance() // consume '('

	var children []Expression
	var combined error
	for p.buf.Kind != RightParen {
		if p.buf.Kind == EOF {
			combined = multierr.Append(combined, errs.New(errs.ParseError,
				"unmatched left parenthesis opened at %d:%d", openLine, openCol))
			return NewList(children...), combined
		}
		child, err := p.readExpr()
		if err != nil {
			combined = multierr.Append(combined, err)
			continue
		}
		children = append(children, child)
	}
	p.advance() // consume ')'
	return NewList(children...), combined
}
