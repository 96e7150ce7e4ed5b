package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	minilisperrs "github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang/value"
)

func TestBuiltinArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{"(+ )", value.Integer(0)},
		{"(+ 1 2 3)", value.Integer(6)},
		{"(- 5)", value.Integer(-5)},
		{"(- 10 3 2)", value.Integer(5)},
		{"(* )", value.Integer(1)},
		{"(* 2 3 4)", value.Integer(24)},
		{"(/ 20 2 2)", value.Integer(5)},
		{"(/ 7 2)", value.Integer(3)},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			v, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, v)
		})
	}
}

func TestBuiltinDivisionByZero(t *testing.T) {
	_, err := run(t, "(/ 1 0)")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.DivisionByZero, kindOf(t, err))
}

func TestBuiltinArithmeticTypeMismatch(t *testing.T) {
	_, err := run(t, `(+ 1 (list 2))`)
	require.Error(t, err)
	assert.Equal(t, minilisperrs.TypeMismatch, kindOf(t, err))
}

func TestBuiltinComparisons(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{"(< 1 2 3)", value.True},
		{"(< 1 3 2)", value.False},
		{"(<= 1 1 2)", value.True},
		{"(> 3 2 1)", value.True},
		{"(>= 3 3 2)", value.True},
		{"(equal? 1 1 1)", value.True},
		{"(equal? 1 2)", value.False},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			v, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, v)
		})
	}
}

func TestBuiltinListPredicate(t *testing.T) {
	v, err := run(t, "(list? (list 1 2))")
	require.NoError(t, err)
	assert.Equal(t, value.True, v)

	v, err = run(t, "(list? 1)")
	require.NoError(t, err)
	assert.Equal(t, value.False, v)

	v, err = run(t, "(list? nil)")
	require.NoError(t, err)
	assert.Equal(t, value.True, v, "Nil is still a List value")
}

func TestBuiltinCarCdrOnEmptyListFails(t *testing.T) {
	_, err := run(t, "(car nil)")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.IndexOutOfBounds, kindOf(t, err))

	_, err = run(t, "(cdr nil)")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.IndexOutOfBounds, kindOf(t, err))
}

func TestBuiltinFilterRejectsNonBoolPredicateResult(t *testing.T) {
	_, err := run(t, "(filter (list 1 2) (lambda (x) x))")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.TypeMismatch, kindOf(t, err))
}

func TestBuiltinAppendZeroArgsYieldsNil(t *testing.T) {
	v, err := run(t, "(equal? (append) nil)")
	require.NoError(t, err)
	assert.Equal(t, value.True, v)
}
