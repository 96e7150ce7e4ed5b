package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbarrick/minilisp/lang/value"
)

func TestEqualAcrossKindsIsFalse(t *testing.T) {
	assert.False(t, value.Equal(value.Integer(1), value.True))
	assert.False(t, value.Equal(value.Integer(0), value.Empty))
}

func TestEqualIntegerAndBool(t *testing.T) {
	assert.True(t, value.Equal(value.Integer(5), value.Integer(5)))
	assert.False(t, value.Equal(value.Integer(5), value.Integer(6)))
	assert.True(t, value.Equal(value.True, value.True))
	assert.False(t, value.Equal(value.True, value.False))
}

func TestEqualVoid(t *testing.T) {
	assert.True(t, value.Equal(value.Void{}, value.Void{}))
}

func TestEqualLists(t *testing.T) {
	a := value.List{Cell: value.Build([]value.Value{value.Integer(1), value.Integer(2)})}
	b := value.List{Cell: value.Build([]value.Value{value.Integer(1), value.Integer(2)})}
	c := value.List{Cell: value.Build([]value.Value{value.Integer(1), value.Integer(3)})}

	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
	assert.True(t, value.Equal(value.Empty, value.List{Cell: value.Nil{}}))
	assert.False(t, value.Equal(a, value.Empty))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "integer", value.IntegerKind.String())
	assert.Equal(t, "bool", value.BoolKind.String())
	assert.Equal(t, "list", value.ListKind.String())
	assert.Equal(t, "function", value.FunctionKind.String())
	assert.Equal(t, "void", value.VoidKind.String())
}

func TestBoolString(t *testing.T) {
	assert.Equal(t, "#t", value.True.String())
	assert.Equal(t, "#f", value.False.String())
}
