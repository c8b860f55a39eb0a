package symgeo_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symgeo"
	"github.com/njchilds90/symgeo/algebra"
)

func line(t *testing.T, p0 *symgeo.FinitePoint, p1 symgeo.Point, opts ...symgeo.Option) *symgeo.Line {
	t.Helper()
	l, err := symgeo.NewLine(p0, p1, opts...)
	require.NoError(t, err)
	return l
}

func TestLine_PointAtInfinityComputed(t *testing.T) {
	p0, p1 := point(t, 0, 0), point(t, 1, 2)
	l := line(t, p0, p1)
	pai := l.PointAtInfinity()
	isTrue(t, algebra.ScalarMultiple(pai.Direction().Coordinates(), p1.Subtract(p0).Coordinates(), nil))
	assert.Same(t, pai, l.PointAtInfinity())
}

func TestLine_PointAtInfinityGiven(t *testing.T) {
	pai, err := symgeo.NewPointAtInfinity(point(t, 1, 1))
	require.NoError(t, err)
	l := line(t, point(t, 2, 3), pai)
	assert.Same(t, pai, l.PointAtInfinity())
	assert.Same(t, pai.Direction(), l.Direction())
	isTrue(t, l.Contains(point(t, 5, 6)))
}

func TestNewLine_Errors(t *testing.T) {
	_, err := symgeo.NewLine(nil, point(t, 1, 1))
	assert.ErrorIs(t, err, symgeo.ErrType)

	_, err = symgeo.NewLine(point(t, 1, 1), nil)
	assert.ErrorIs(t, err, symgeo.ErrType)

	_, err = symgeo.NewLine(point(t, 1, 1), point(t, 1, 1))
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)

	p3, err := symgeo.NewPoint3(1, 2, 3)
	require.NoError(t, err)
	_, err = symgeo.NewLine(point(t, 0, 0), p3)
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)
}

func TestLine_ParallelAndPerpendicular(t *testing.T) {
	l := line(t, point(t, 0, 0), point(t, 1, 2))

	par, err := l.ParallelLine(point(t, 0, 1))
	require.NoError(t, err)
	isTrue(t, algebra.ScalarMultiple(par.Direction().Coordinates(), l.Direction().Coordinates(), nil))
	assert.False(t, l.Equals(par))
	isTrue(t, par.Contains(point(t, 1, 3)))

	perp, err := l.PerpendicularLine(point(t, 0, 0))
	require.NoError(t, err)
	equalExpr(t, algebra.N(0), perp.Direction().Dot(l.Direction()))
	if diff := cmp.Diff([]string{"-2", "1"}, coords(perp.Direction())); diff != "" {
		t.Errorf("perpendicular direction (-want +got):\n%s", diff)
	}
}

func TestLine_PerpendicularNeedsPlane(t *testing.T) {
	a, err := symgeo.NewPoint3(0, 0, 0)
	require.NoError(t, err)
	b, err := symgeo.NewPoint3(1, 0, 0)
	require.NoError(t, err)
	l := line(t, a, b)
	_, err = l.PerpendicularLine(a)
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)
	_, err = l.Equation()
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)

	par, err := l.ParallelLine(b)
	require.NoError(t, err)
	assert.Equal(t, 3, par.Dim())
}

func TestLine_Projection(t *testing.T) {
	l := line(t, point(t, 0, 0), point(t, 1, 2))
	foot, err := l.PerpendicularProjectionOfPoint(point(t, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, coords(foot))

	_, err = l.PerpendicularProjectionOfPoint(nil)
	assert.ErrorIs(t, err, symgeo.ErrType)
}

func TestLine_Equation(t *testing.T) {
	l := line(t, point(t, 0, 0), point(t, 1, 2))
	eq, err := l.Equation()
	require.NoError(t, err)
	x, y := algebra.S("x"), algebra.S("y")
	equalExpr(t, algebra.SubOf(y, algebra.MulOf(algebra.N(2), x)), eq.Residual())

	isTrue(t, l.Contains(point(t, 2, 4)))
	assert.Equal(t, algebra.False, l.Contains(point(t, 1, 1)))
}

func TestLine_Equals(t *testing.T) {
	a := line(t, point(t, 0, 0), point(t, 1, 2))
	b := line(t, point(t, 2, 4), point(t, 3, 6))
	assert.True(t, a.Equals(b))
	far, err := symgeo.NewLineAtInfinity(point(t, 1, 0))
	require.NoError(t, err)
	assert.False(t, a.Equals(far))
}

func TestLine_Normal(t *testing.T) {
	l := line(t, point(t, 0, 0), point(t, 1, 2))
	n, err := l.Normal()
	require.NoError(t, err)
	equalExpr(t, algebra.N(0), n.Dot(l.Direction()))
}

func TestRay_Contains(t *testing.T) {
	r, err := symgeo.NewRay(point(t, 0, 0), point(t, 1, 2))
	require.NoError(t, err)
	isTrue(t, r.Contains(point(t, 2, 4)))
	isTrue(t, r.Contains(point(t, 0, 0)))
	assert.Equal(t, algebra.False, r.Contains(point(t, -1, -2)))
	assert.Equal(t, algebra.False, r.Contains(point(t, 1, 1)))
}

func TestSegment(t *testing.T) {
	s, err := symgeo.NewSegment(point(t, 0, 0), point(t, 2, 0))
	require.NoError(t, err)
	assert.Equal(t, "2", s.Length().String())
	assert.Equal(t, []string{"1", "0"}, coords(s.Midpoint()))
	isTrue(t, s.Contains(point(t, 1, 0)))
	assert.Equal(t, algebra.False, s.Contains(point(t, 3, 0)))
	assert.Equal(t, algebra.False, s.Contains(point(t, -1, 0)))

	_, err = symgeo.NewSegment(point(t, 1, 1), point(t, 1, 1))
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)
	_, err = symgeo.NewSegment(point(t, 1, 1), nil)
	assert.ErrorIs(t, err, symgeo.ErrType)
}

func TestLineAtInfinity(t *testing.T) {
	a, err := symgeo.NewLineAtInfinity(point(t, 1, 2))
	require.NoError(t, err)
	b, err := symgeo.NewLineAtInfinity(point(t, -2, -4))
	require.NoError(t, err)
	c, err := symgeo.NewLineAtInfinity(point(t, 1, 0))
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, a.AtInfinity())

	par, err := a.ParallelLine(point(t, 0, 0))
	require.NoError(t, err)
	equalExpr(t, algebra.N(0), par.Direction().Dot(a.Normal()))

	perp, err := a.PerpendicularLine(point(t, 0, 0))
	require.NoError(t, err)
	isTrue(t, algebra.ScalarMultiple(perp.Direction().Coordinates(), a.Normal().Coordinates(), nil))

	_, err = symgeo.NewLineAtInfinity(point(t, 0, 0))
	assert.ErrorIs(t, err, symgeo.ErrPrecondition)
}

func TestLinear_Capabilities(t *testing.T) {
	var entities []symgeo.Linear
	l := line(t, point(t, 0, 0), point(t, 1, 0))
	r, err := symgeo.NewRay(point(t, 0, 0), point(t, 1, 0))
	require.NoError(t, err)
	s, err := symgeo.NewSegment(point(t, 0, 0), point(t, 1, 0))
	require.NoError(t, err)
	entities = append(entities, l, r, s)

	var perpendicular int
	for _, e := range entities {
		if _, ok := e.(symgeo.SupportsPerpendicular); ok {
			perpendicular++
		}
	}
	assert.Equal(t, 1, perpendicular)
	var _ symgeo.HasEquation = l
}
