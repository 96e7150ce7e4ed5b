package lang_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang"
)

// parseErrKind extracts the errs.Kind of a parse failure.
func parseErrKind(t *testing.T, err error) errs.Kind {
	t.Helper()
	var e *errs.Error
	require.True(t, errors.As(err, &e), "expected an *errs.Error, got %T: %v", err, err)
	return e.Kind
}

func TestParseAtoms(t *testing.T) {
	e, err := lang.Parse(strings.NewReader("42"))
	require.NoError(t, err)
	assert.Equal(t, lang.NewInteger(42), e)

	e, err = lang.Parse(strings.NewReader("foo"))
	require.NoError(t, err)
	assert.Equal(t, lang.NewSymbol("foo"), e)
}

func TestParseNestedList(t *testing.T) {
	e, err := lang.Parse(strings.NewReader("(+ 1 (* 2 3))"))
	require.NoError(t, err)

	want := lang.NewList(
		lang.NewSymbol("+"),
		lang.NewInteger(1),
		lang.NewList(lang.NewSymbol("*"), lang.NewInteger(2), lang.NewInteger(3)),
	)
	assert.Equal(t, want, e)
}

func TestParseEmptyList(t *testing.T) {
	e, err := lang.Parse(strings.NewReader("()"))
	require.NoError(t, err)
	assert.Equal(t, lang.ListExpr, e.Kind)
	assert.Empty(t, e.List)
}

func TestParseEmptyInputFails(t *testing.T) {
	_, err := lang.Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Equal(t, errs.ParseError, parseErrKind(t, err))
}

func TestParseStrayRightParenFails(t *testing.T) {
	_, err := lang.Parse(strings.NewReader(")"))
	require.Error(t, err)
	assert.Equal(t, errs.ParseError, parseErrKind(t, err))
}

func TestParseUnmatchedLeftParenFails(t *testing.T) {
	_, err := lang.Parse(strings.NewReader("(a (b"))
	require.Error(t, err)
	assert.Equal(t, errs.ParseError, parseErrKind(t, err))
	// Both the inner and outer unclosed lists are reported.
	assert.Equal(t, 2, len(multierrErrors(err)))
}

func TestParseTrailingTokensFails(t *testing.T) {
	_, err := lang.Parse(strings.NewReader("(a) (b)"))
	require.Error(t, err)
	assert.Equal(t, errs.ParseError, parseErrKind(t, err))
}

func TestParseHeadOfList(t *testing.T) {
	e, err := lang.Parse(strings.NewReader("(define x 1)"))
	require.NoError(t, err)
	head, ok := e.Head()
	require.True(t, ok)
	assert.Equal(t, lang.NewSymbol("define"), head)

	_, ok = lang.NewInteger(1).Head()
	assert.False(t, ok)
}

// multierrErrors unwraps a combined multierr error into its constituents.
func multierrErrors(err error) []error {
	type unwrapper interface{ Errors() []error }
	if u, ok := err.(unwrapper); ok {
		return u.Errors()
	}
	return []error{err}
}
