package symgeo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/njchilds90/symgeo"
	"github.com/njchilds90/symgeo/algebra"
)

func TestSession_AssignGet(t *testing.T) {
	s := symgeo.NewSession(symgeo.WithSessionName("S"))
	p := point(t, 1, 2)
	require.NoError(t, s.Assign("A", p))

	got, err := s.Get("A")
	require.NoError(t, err)
	assert.Same(t, p, got)
	assert.Same(t, s, p.Session())
	assert.Equal(t, 1, s.Len())
}

func TestSession_Errors(t *testing.T) {
	s := symgeo.NewSession()
	_, err := s.Get("missing")
	assert.ErrorIs(t, err, symgeo.ErrNotFound)
	assert.ErrorIs(t, s.Delete("missing"), symgeo.ErrNotFound)
	assert.ErrorIs(t, s.Assign("", point(t, 0, 0)), symgeo.ErrName)
	assert.ErrorIs(t, s.Assign("nil", nil), symgeo.ErrType)
}

func TestSession_GeneratedNames(t *testing.T) {
	s := symgeo.NewSession()
	assert.True(t, strings.HasPrefix(s.Name(), "session_"), s.Name())

	p := point(t, nil, nil, symgeo.InSession(s))
	q := point(t, nil, nil, symgeo.InSession(s))
	assert.NotEqual(t, p.Name(), q.Name())
	assert.Equal(t, 2, s.Len())

	got, err := s.Get(q.Name())
	require.NoError(t, err)
	assert.Same(t, q, got)
}

func TestSession_Delete(t *testing.T) {
	s := symgeo.NewSession()
	p := point(t, 1, 2)
	require.NoError(t, s.Assign("A", p))
	require.NoError(t, s.Assign("B", p))

	require.NoError(t, s.Delete("A"))
	assert.Same(t, s, p.Session())
	require.NoError(t, s.Delete("B"))
	assert.Same(t, symgeo.DefaultSession(), p.Session())
	assert.Equal(t, 0, s.Len())
}

func TestSession_OverwriteReleasesReplaced(t *testing.T) {
	s := symgeo.NewSession()
	a := point(t, 1, 2)
	b := point(t, 3, 4)
	require.NoError(t, s.Assign("A", a))
	require.NoError(t, s.Assign("B", a))
	require.NoError(t, s.Assign("A", b))

	// still held under B
	assert.Same(t, s, a.Session())

	require.NoError(t, s.Assign("B", b))
	assert.Same(t, symgeo.DefaultSession(), a.Session())
	assert.Same(t, s, b.Session())
	assert.Equal(t, []string{"A", "B"}, s.Names())

	// reassigning the same entity keeps it
	require.NoError(t, s.Assign("A", b))
	assert.Same(t, s, b.Session())
}

func TestSession_LastAssignmentWins(t *testing.T) {
	s1 := symgeo.NewSession(symgeo.WithSessionName("one"))
	s2 := symgeo.NewSession(symgeo.WithSessionName("two"))
	p := point(t, 1, 2)
	require.NoError(t, s1.Assign("P", p))
	require.NoError(t, s2.Assign("P", p))

	assert.Same(t, s2, p.Session())
	_, err := s1.Get("P")
	assert.ErrorIs(t, err, symgeo.ErrNotFound)
}

func TestSession_Names(t *testing.T) {
	s := symgeo.NewSession()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, s.Assign(name, point(t, 0, 0)))
	}
	assert.Equal(t, []string{"a", "b", "c"}, s.Names())
}

func TestSession_Lookup(t *testing.T) {
	s := symgeo.NewSession()
	p := point(t, 1, 2, symgeo.WithName("P"), symgeo.InSession(s))

	got, err := symgeo.Lookup[*symgeo.FinitePoint](s, "P")
	require.NoError(t, err)
	assert.Same(t, p, got)

	_, err = symgeo.Lookup[*symgeo.Conic](s, "P")
	assert.ErrorIs(t, err, symgeo.ErrType)
}

func TestSession_Assume(t *testing.T) {
	s := symgeo.NewSession()
	k := algebra.S("k")
	release := s.Assume("k", algebra.Positive)
	assert.Equal(t, algebra.True, algebra.IsPositive(k, s.Assumptions()))
	release()
	assert.Equal(t, algebra.Unknown, algebra.IsPositive(k, s.Assumptions()))
}

func TestSession_ScopeInheritsParent(t *testing.T) {
	parent := algebra.NewAssumptions()
	defer parent.Assume("k", algebra.Negative)()
	s := symgeo.NewSession(symgeo.WithScope(parent))
	assert.Equal(t, algebra.False, algebra.IsPositive(algebra.S("k"), s.Assumptions()))
}

func TestSession_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := symgeo.NewSession(symgeo.WithSessionName("S"), symgeo.WithLogger(zap.New(core)))
	p := point(t, 0, 0, symgeo.WithName("P"), symgeo.InSession(s))
	require.NoError(t, s.Delete(p.Name()))

	entries := logs.FilterField(zap.String("name", "P")).All()
	require.Len(t, entries, 2)
	assert.Equal(t, "entity assigned", entries[0].Message)
	assert.Equal(t, "entity deleted", entries[1].Message)
}

func TestDefaultSession(t *testing.T) {
	p := point(t, 0, 0)
	assert.Same(t, symgeo.DefaultSession(), p.Session())
	assert.Equal(t, "default", symgeo.DefaultSession().Name())
}
