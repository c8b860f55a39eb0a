package symgeo

import (
	"github.com/njchilds90/symgeo/algebra"
)

// Linear is implemented by every linear entity: *Line, *Ray, *Segment and
// *LineAtInfinity.
type Linear interface {
	Entity
	Dim() int
	AtInfinity() bool
	linear()
}

// SupportsPerpendicular is implemented by the unbounded linear entities.
type SupportsPerpendicular interface {
	ParallelLine(through *FinitePoint, opts ...Option) (*Line, error)
	PerpendicularLine(through *FinitePoint, opts ...Option) (*Line, error)
}

// LineEntity is a *Line or a *LineAtInfinity.
type LineEntity interface {
	Linear
	SupportsPerpendicular
	EqualTo(other LineEntity, scope *algebra.Assumptions) algebra.Truth
}

// HasEquation is implemented by entities with an implicit equation in the
// plane coordinates x and y.
type HasEquation interface {
	Equation() (*algebra.Equation, error)
}

var (
	xSym = algebra.S("x")
	ySym = algebra.S("y")
)

// ============================================================
// Two-point construction
// ============================================================

type twoPoint struct {
	meta
	p0   *FinitePoint
	p1   Point
	impl *FinitePoint
	dirv []algebra.Expr
	dir  *FinitePoint
}

func (t *twoPoint) setup(op, kind string, p0 *FinitePoint, p1 Point, o options) error {
	if p0 == nil {
		return opErr(op, ErrType, "point0 must be a finite point")
	}
	if p1 == nil {
		return opErr(op, ErrType, "point1 must not be nil")
	}
	switch q := p1.(type) {
	case *FinitePoint:
		if q == nil {
			return opErr(op, ErrType, "point1 must not be nil")
		}
		if p0.Dim() != q.Dim() {
			return opErr(op, ErrPrecondition, "dimension mismatch: %d vs %d", p0.Dim(), q.Dim())
		}
		if p0.EqualTo(q, o.scopeFor(p0, q)) == algebra.True {
			return opErr(op, ErrPrecondition, "points %s and %s coincide", p0.Format(), q.Format())
		}
		t.impl = q
		t.dirv = canonicalVec(subVec(q.Coordinates(), p0.Coordinates()))
	case *PointAtInfinity:
		if q == nil {
			return opErr(op, ErrType, "point1 must not be nil")
		}
		if p0.Dim() != q.Dim() {
			return opErr(op, ErrPrecondition, "dimension mismatch: %d vs %d", p0.Dim(), q.Dim())
		}
		t.dir = q.Direction()
		t.dirv = q.Direction().Coordinates()
		t.impl = derivedPoint(addVec(p0.Coordinates(), t.dirv), options{}, p0, q)
	default:
		return opErr(op, ErrType, "unsupported point %T", p1)
	}
	t.p0, t.p1 = p0, p1
	return t.init(op, kind, o, p0, p1)
}

func (t *twoPoint) linear()          {}
func (t *twoPoint) Dim() int         { return t.p0.Dim() }
func (t *twoPoint) AtInfinity() bool { return false }
func (t *twoPoint) P0() *FinitePoint { return t.p0 }
func (t *twoPoint) P1() Point        { return t.p1 }

// Direction is point1 - point0, or point1's direction when point1 is at
// infinity.
func (t *twoPoint) Direction() *FinitePoint {
	if t.dir == nil {
		t.dir = derivedPoint(t.dirv, options{nameFn: func() string { return t.Name() + ".direction" }}, t.p0, t.p1)
	}
	return t.dir
}

// along returns whether p lies on the carrier line and the projection
// numerator dot(p - p0, d).
func (t *twoPoint) along(p *FinitePoint, scope *algebra.Assumptions) (algebra.Truth, algebra.Expr) {
	if p == nil || p.Dim() != t.Dim() {
		return algebra.False, nil
	}
	rel := subVec(p.Coordinates(), t.p0.Coordinates())
	n := len(rel)
	entries := append(append([]algebra.Expr{}, rel...), t.dirv...)
	m := algebra.MatrixFromSlice(2, n, entries)
	ts := make([]algebra.Truth, 0, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ts = append(ts, algebra.IsZero(m.Columns(i, j).Det(), scope))
		}
	}
	return algebra.And(ts...), algebra.Canonicalize(dotVec(rel, t.dirv))
}

func (t *twoPoint) planarEquation(op string) (*algebra.Equation, error) {
	if t.Dim() != 2 {
		return nil, opErr(op, ErrPrecondition, "equation needs a planar entity, got dimension %d", t.Dim())
	}
	a, b := t.p0.Coordinates(), t.impl.Coordinates()
	one := algebra.N(1)
	m := algebra.MatrixFromSlice(3, 3, []algebra.Expr{
		xSym, ySym, one,
		a[0], a[1], one,
		b[0], b[1], one,
	})
	return algebra.Eq(m.Det(), algebra.N(0)), nil
}

// ============================================================
// Line
// ============================================================

// Line is the infinite line through point0 and point1.
type Line struct {
	twoPoint
	atInf *PointAtInfinity
}

// NewLine builds a line through p0 and p1. When p1 is at infinity it gives
// the direction to follow from p0.
func NewLine(p0 *FinitePoint, p1 Point, opts ...Option) (*Line, error) {
	const op = "NewLine"
	o := buildOptions(opts)
	l := &Line{}
	if err := l.setup(op, "Line", p0, p1, o); err != nil {
		return nil, err
	}
	if q, ok := p1.(*PointAtInfinity); ok {
		l.atInf = q
	}
	if err := register(l, o); err != nil {
		return nil, err
	}
	return l, nil
}

// PointAtInfinity returns the supplied ideal point, or one computed from the
// direction on first use.
func (l *Line) PointAtInfinity() *PointAtInfinity {
	if l.atInf == nil {
		l.atInf = must(NewPointAtInfinity(l.Direction(), childName(l, "point_at_infinity")))
	}
	return l.atInf
}

func (l *Line) ParallelLine(through *FinitePoint, opts ...Option) (*Line, error) {
	if through == nil {
		return nil, opErr("Line.ParallelLine", ErrType, "through must be a finite point")
	}
	return NewLine(through, l.PointAtInfinity(), opts...)
}

// PerpendicularLine is only defined in the plane.
func (l *Line) PerpendicularLine(through *FinitePoint, opts ...Option) (*Line, error) {
	const op = "Line.PerpendicularLine"
	if through == nil {
		return nil, opErr(op, ErrType, "through must be a finite point")
	}
	if l.Dim() != 2 || through.Dim() != 2 {
		return nil, opErr(op, ErrPrecondition, "perpendicular lines need planar entities")
	}
	n := derivedPoint(perpVec(l.dirv), options{}, l)
	pai, err := NewPointAtInfinity(n)
	if err != nil {
		return nil, err
	}
	return NewLine(through, pai, opts...)
}

// Normal is the direction rotated a quarter turn. Planar lines only.
func (l *Line) Normal(opts ...Option) (*FinitePoint, error) {
	if l.Dim() != 2 {
		return nil, opErr("Line.Normal", ErrPrecondition, "normal needs a planar line")
	}
	return derivedPoint(perpVec(l.dirv), buildOptions(opts), l), nil
}

// PerpendicularProjectionOfPoint returns the foot of the perpendicular from p.
func (l *Line) PerpendicularProjectionOfPoint(p *FinitePoint, opts ...Option) (*FinitePoint, error) {
	const op = "Line.PerpendicularProjectionOfPoint"
	if p == nil {
		return nil, opErr(op, ErrType, "point must be a finite point")
	}
	if p.Dim() != l.Dim() {
		return nil, opErr(op, ErrPrecondition, "dimension mismatch: %d vs %d", p.Dim(), l.Dim())
	}
	rel := subVec(p.Coordinates(), l.p0.Coordinates())
	k := algebra.DivOf(dotVec(rel, l.dirv), dotVec(l.dirv, l.dirv))
	return derivedPoint(addVec(l.p0.Coordinates(), scaleVec(k, l.dirv)), buildOptions(opts), l, p), nil
}

func (l *Line) Contains(p *FinitePoint) algebra.Truth {
	on, _ := l.along(p, l.Session().Assumptions())
	return on
}

func (l *Line) Equation() (*algebra.Equation, error) { return l.planarEquation("Line.Equation") }

// EqualTo holds when the directions are parallel and other's point0 lies on l.
func (l *Line) EqualTo(other LineEntity, scope *algebra.Assumptions) algebra.Truth {
	m, ok := other.(*Line)
	if !ok || m == nil || m.Dim() != l.Dim() {
		return algebra.False
	}
	on, _ := l.along(m.p0, scope)
	return algebra.And(algebra.ScalarMultiple(l.dirv, m.dirv, scope), on)
}

func (l *Line) Equals(other LineEntity) bool {
	return l.EqualTo(other, l.Session().Assumptions()) == algebra.True
}

// ============================================================
// Ray and Segment
// ============================================================

// Ray starts at point0 and runs through point1.
type Ray struct {
	twoPoint
}

func NewRay(p0 *FinitePoint, p1 Point, opts ...Option) (*Ray, error) {
	o := buildOptions(opts)
	r := &Ray{}
	if err := r.setup("NewRay", "Ray", p0, p1, o); err != nil {
		return nil, err
	}
	if err := register(r, o); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Ray) Source() *FinitePoint { return r.p0 }

func (r *Ray) Contains(p *FinitePoint) algebra.Truth {
	scope := r.Session().Assumptions()
	on, proj := r.along(p, scope)
	if on == algebra.False {
		return on
	}
	return algebra.And(on, algebra.IsNonNegative(proj, scope))
}

// Segment is the bounded piece between two finite points.
type Segment struct {
	twoPoint
}

func NewSegment(p0, p1 *FinitePoint, opts ...Option) (*Segment, error) {
	if p1 == nil {
		return nil, opErr("NewSegment", ErrType, "point1 must be a finite point")
	}
	o := buildOptions(opts)
	s := &Segment{}
	if err := s.setup("NewSegment", "Segment", p0, p1, o); err != nil {
		return nil, err
	}
	if err := register(s, o); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Segment) Length() algebra.Expr {
	return algebra.SqrtOf(algebra.Canonicalize(dotVec(s.dirv, s.dirv)))
}

func (s *Segment) Midpoint(opts ...Option) *FinitePoint {
	half := scaleVec(algebra.F(1, 2), addVec(s.p0.Coordinates(), s.impl.Coordinates()))
	return derivedPoint(half, buildOptions(opts), s)
}

func (s *Segment) Contains(p *FinitePoint) algebra.Truth {
	scope := s.Session().Assumptions()
	on, proj := s.along(p, scope)
	if on == algebra.False {
		return on
	}
	upper := algebra.SubOf(dotVec(s.dirv, s.dirv), proj)
	return algebra.And(on, algebra.IsNonNegative(proj, scope), algebra.IsNonNegative(upper, scope))
}

// ============================================================
// LineAtInfinity
// ============================================================

// LineAtInfinity is the ideal line of the plane, recorded by a normal
// direction. Parallel and perpendicular derivations swap the roles of
// direction and normal.
type LineAtInfinity struct {
	meta
	normal *FinitePoint
}

func NewLineAtInfinity(normal *FinitePoint, opts ...Option) (*LineAtInfinity, error) {
	const op = "NewLineAtInfinity"
	if normal == nil {
		return nil, opErr(op, ErrType, "normal must be a finite point")
	}
	o := buildOptions(opts)
	if algebra.IsZeroVector(normal.Coordinates(), o.scopeFor(normal)) == algebra.True {
		return nil, opErr(op, ErrPrecondition, "normal %s is the zero vector", normal.Format())
	}
	l := &LineAtInfinity{normal: normal}
	if err := l.init(op, "LineAtInfinity", o, normal); err != nil {
		return nil, err
	}
	if err := register(l, o); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *LineAtInfinity) linear()              {}
func (l *LineAtInfinity) Dim() int             { return l.normal.Dim() }
func (l *LineAtInfinity) AtInfinity() bool     { return true }
func (l *LineAtInfinity) Normal() *FinitePoint { return l.normal }

// ParallelLine runs through through perpendicular to the normal. Planar only.
func (l *LineAtInfinity) ParallelLine(through *FinitePoint, opts ...Option) (*Line, error) {
	const op = "LineAtInfinity.ParallelLine"
	if through == nil {
		return nil, opErr(op, ErrType, "through must be a finite point")
	}
	if l.Dim() != 2 || through.Dim() != 2 {
		return nil, opErr(op, ErrPrecondition, "parallel lines need planar entities")
	}
	d := derivedPoint(perpVec(l.normal.Coordinates()), options{}, l)
	pai, err := NewPointAtInfinity(d)
	if err != nil {
		return nil, err
	}
	return NewLine(through, pai, opts...)
}

// PerpendicularLine runs through through along the normal.
func (l *LineAtInfinity) PerpendicularLine(through *FinitePoint, opts ...Option) (*Line, error) {
	if through == nil {
		return nil, opErr("LineAtInfinity.PerpendicularLine", ErrType, "through must be a finite point")
	}
	pai, err := NewPointAtInfinity(l.normal)
	if err != nil {
		return nil, err
	}
	return NewLine(through, pai, opts...)
}

// EqualTo compares normals up to scale.
func (l *LineAtInfinity) EqualTo(other LineEntity, scope *algebra.Assumptions) algebra.Truth {
	m, ok := other.(*LineAtInfinity)
	if !ok || m == nil {
		return algebra.False
	}
	return algebra.ScalarMultiple(l.normal.Coordinates(), m.normal.Coordinates(), scope)
}

func (l *LineAtInfinity) Equals(other LineEntity) bool {
	return l.EqualTo(other, l.Session().Assumptions()) == algebra.True
}

var (
	_ LineEntity  = (*Line)(nil)
	_ LineEntity  = (*LineAtInfinity)(nil)
	_ Linear      = (*Ray)(nil)
	_ Linear      = (*Segment)(nil)
	_ HasEquation = (*Line)(nil)
	_ Point       = (*FinitePoint)(nil)
	_ Point       = (*PointAtInfinity)(nil)
)
