package env_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	minilisperrs "github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang/env"
	"github.com/cbarrick/minilisp/lang/value"
)

func kindOf(t *testing.T, err error) minilisperrs.Kind {
	t.Helper()
	var e *minilisperrs.Error
	require.True(t, errors.As(err, &e))
	return e.Kind
}

func TestFrameDefineAndLookup(t *testing.T) {
	fr := env.NewRoot()
	fr.Define("x", value.Integer(1))

	v, err := fr.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestFrameLookupWalksParent(t *testing.T) {
	root := env.NewRoot()
	root.Define("x", value.Integer(1))
	child := env.New(root)

	v, err := child.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestFrameLookupUnbound(t *testing.T) {
	fr := env.NewRoot()
	_, err := fr.Lookup("nope")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.UnboundSymbol, kindOf(t, err))
}

func TestFrameDefineShadowsWithoutTouchingParent(t *testing.T) {
	root := env.NewRoot()
	root.Define("x", value.Integer(1))
	child := env.New(root)
	child.Define("x", value.Integer(2))

	v, err := child.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(2), v)

	v, err = root.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestFrameAssignFindsDefiningFrame(t *testing.T) {
	root := env.NewRoot()
	root.Define("x", value.Integer(1))
	child := env.New(root)

	_, err := child.Assign("x", value.Integer(99))
	require.NoError(t, err)

	v, err := root.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(99), v)
}

func TestFrameAssignUnbound(t *testing.T) {
	fr := env.NewRoot()
	_, err := fr.Assign("nope", value.Integer(1))
	require.Error(t, err)
	assert.Equal(t, minilisperrs.UnboundSymbol, kindOf(t, err))
}

func TestFrameRemoveDoesNotConsultParent(t *testing.T) {
	root := env.NewRoot()
	root.Define("x", value.Integer(1))
	child := env.New(root)

	_, err := child.Remove("x")
	require.Error(t, err)
	assert.Equal(t, minilisperrs.UnboundSymbol, kindOf(t, err))

	v, err := root.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(1), v)
}

func TestFrameRemoveReturnsValue(t *testing.T) {
	fr := env.NewRoot()
	fr.Define("x", value.Integer(7))

	v, err := fr.Remove("x")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(7), v)

	_, err = fr.Lookup("x")
	require.Error(t, err)
}

func TestFrameNewChildSeedsBindings(t *testing.T) {
	root := env.NewRoot()
	child := root.NewChild(map[string]value.Value{"y": value.Integer(5)})

	v, err := child.Lookup("y")
	require.NoError(t, err)
	assert.Equal(t, value.Integer(5), v)
}

func TestFrameIdentityDistinguishesFrames(t *testing.T) {
	a := env.NewRoot()
	b := env.NewRoot()
	assert.False(t, a.Identity() == b.Identity())
	assert.True(t, a.Identity() == a.Identity())
}
