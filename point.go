package symgeo

import (
	"fmt"
	"strings"

	"github.com/njchilds90/symgeo/algebra"
)

// Point is either a *FinitePoint or a *PointAtInfinity.
type Point interface {
	Entity
	Dim() int
	AtInfinity() bool
	EqualTo(other Point, scope *algebra.Assumptions) algebra.Truth
	point()
}

var axisNames = [...]string{"x", "y", "z"}

type coord struct {
	v     *Variable
	e     algebra.Expr
	owned bool
}

func (c coord) expr() algebra.Expr {
	if c.v != nil {
		return c.v.Expr()
	}
	return c.e
}

// ============================================================
// FinitePoint
// ============================================================

// FinitePoint is a located point in the plane or in space.
type FinitePoint struct {
	meta
	coords []coord
	distSq algebra.Expr
}

// NewPoint builds a 2D or 3D point. Each coordinate is nil (a fresh variable
// named "<point>.<axis>"), a *Variable, an integer, a *big.Rat or an
// algebra.Expr.
func NewPoint(coords []any, opts ...Option) (*FinitePoint, error) {
	const op = "NewPoint"
	if n := len(coords); n != 2 && n != 3 {
		return nil, opErr(op, ErrPrecondition, "need 2 or 3 coordinates, got %d", n)
	}
	o := buildOptions(opts)
	p := &FinitePoint{coords: make([]coord, len(coords))}
	var deps []Entity
	for i, c := range coords {
		if c == nil {
			p.coords[i] = coord{owned: true}
			continue
		}
		e, v, err := scalarExpr(op, c)
		if err != nil {
			return nil, err
		}
		if v != nil {
			p.coords[i] = coord{v: v}
			deps = append(deps, v)
			continue
		}
		p.coords[i] = coord{e: e}
	}
	if err := p.init(op, "FinitePoint", o, deps...); err != nil {
		return nil, err
	}
	for i := range p.coords {
		if !p.coords[i].owned {
			continue
		}
		axis := axisNames[i]
		p.coords[i].v = must(NewVariable(WithNameFunc(func() string {
			return p.Name() + "." + axis
		})))
	}
	if err := register(p, o); err != nil {
		return nil, err
	}
	return p, nil
}

func NewPoint2(x, y any, opts ...Option) (*FinitePoint, error) {
	return NewPoint([]any{x, y}, opts...)
}

func NewPoint3(x, y, z any, opts ...Option) (*FinitePoint, error) {
	return NewPoint([]any{x, y, z}, opts...)
}

// derivedPoint wraps already-computed coordinates.
func derivedPoint(coords []algebra.Expr, o options, deps ...Entity) *FinitePoint {
	p := &FinitePoint{coords: make([]coord, len(coords))}
	for i, c := range canonicalVec(coords) {
		p.coords[i] = coord{e: c}
	}
	if err := p.init("derivedPoint", "FinitePoint", o, deps...); err != nil {
		panic("symgeo: " + err.Error())
	}
	if err := register(p, o); err != nil {
		panic("symgeo: " + err.Error())
	}
	return p
}

func (p *FinitePoint) point()           {}
func (p *FinitePoint) Dim() int         { return len(p.coords) }
func (p *FinitePoint) AtInfinity() bool { return false }

// SetName renames p and any coordinate variables p created for itself.
func (p *FinitePoint) SetName(name string) error {
	if err := p.meta.SetName(name); err != nil {
		return err
	}
	for i, c := range p.coords {
		if c.owned {
			if err := c.v.SetName(name + "." + axisNames[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *FinitePoint) Coordinates() []algebra.Expr {
	out := make([]algebra.Expr, len(p.coords))
	for i, c := range p.coords {
		out[i] = c.expr()
	}
	return out
}

func (p *FinitePoint) Coordinate(i int) algebra.Expr { return p.coords[i].expr() }
func (p *FinitePoint) X() algebra.Expr               { return p.Coordinate(0) }
func (p *FinitePoint) Y() algebra.Expr               { return p.Coordinate(1) }

// Variable returns the variable behind coordinate i, or nil for a literal.
func (p *FinitePoint) Variable(i int) *Variable { return p.coords[i].v }

// Add, Subtract, Negate and Scale treat points as position vectors. Mixing
// dimensions panics.
func (p *FinitePoint) Add(q *FinitePoint, opts ...Option) *FinitePoint {
	return derivedPoint(addVec(p.Coordinates(), q.Coordinates()), buildOptions(opts), p, q)
}

func (p *FinitePoint) Subtract(q *FinitePoint, opts ...Option) *FinitePoint {
	return derivedPoint(subVec(p.Coordinates(), q.Coordinates()), buildOptions(opts), p, q)
}

func (p *FinitePoint) Negate(opts ...Option) *FinitePoint {
	return derivedPoint(negVec(p.Coordinates()), buildOptions(opts), p)
}

func (p *FinitePoint) Scale(k algebra.Expr, opts ...Option) *FinitePoint {
	return derivedPoint(scaleVec(k, p.Coordinates()), buildOptions(opts), p)
}

func (p *FinitePoint) Dot(q *FinitePoint) algebra.Expr {
	return algebra.Canonicalize(dotVec(p.Coordinates(), q.Coordinates()))
}

// DistanceFromOrigin is the squared Euclidean norm, left without a square
// root so it stays exact.
func (p *FinitePoint) DistanceFromOrigin() algebra.Expr {
	if p.distSq == nil {
		c := p.Coordinates()
		p.distSq = algebra.Canonicalize(dotVec(c, c))
	}
	return p.distSq
}

// Same returns an independently named copy that shares p's coordinate values.
func (p *FinitePoint) Same(opts ...Option) *FinitePoint {
	o := buildOptions(opts)
	q := &FinitePoint{coords: make([]coord, len(p.coords))}
	for i, c := range p.coords {
		q.coords[i] = coord{v: c.v, e: c.e}
	}
	if err := q.init("FinitePoint.Same", "FinitePoint", o, p); err != nil {
		panic("symgeo: " + err.Error())
	}
	if err := register(q, o); err != nil {
		panic("symgeo: " + err.Error())
	}
	return q
}

func (p *FinitePoint) EqualTo(other Point, scope *algebra.Assumptions) algebra.Truth {
	q, ok := other.(*FinitePoint)
	if !ok || q == nil || q.Dim() != p.Dim() {
		return algebra.False
	}
	return algebra.IsZeroVector(subVec(p.Coordinates(), q.Coordinates()), scope)
}

// Equals reports provable equality under p's session assumptions.
func (p *FinitePoint) Equals(other Point) bool {
	return p.EqualTo(other, p.Session().Assumptions()) == algebra.True
}

// Format renders the coordinates, e.g. "(1, y)".
func (p *FinitePoint) Format() string {
	parts := make([]string, len(p.coords))
	for i, c := range p.Coordinates() {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ============================================================
// PointAtInfinity
// ============================================================

// PointAtInfinity is an ideal point: a direction with no position.
type PointAtInfinity struct {
	meta
	direction *FinitePoint
}

func NewPointAtInfinity(direction *FinitePoint, opts ...Option) (*PointAtInfinity, error) {
	const op = "NewPointAtInfinity"
	if direction == nil {
		return nil, opErr(op, ErrType, "direction must be a finite point")
	}
	o := buildOptions(opts)
	if algebra.IsZeroVector(direction.Coordinates(), o.scopeFor(direction)) == algebra.True {
		return nil, opErr(op, ErrPrecondition, "direction %s is the zero vector", direction.Format())
	}
	p := &PointAtInfinity{direction: direction}
	if err := p.init(op, "PointAtInfinity", o, direction); err != nil {
		return nil, err
	}
	if err := register(p, o); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PointAtInfinity) point()                  {}
func (p *PointAtInfinity) Dim() int                { return p.direction.Dim() }
func (p *PointAtInfinity) AtInfinity() bool        { return true }
func (p *PointAtInfinity) Direction() *FinitePoint { return p.direction }

func (p *PointAtInfinity) Same(opts ...Option) *PointAtInfinity {
	return must(NewPointAtInfinity(p.direction, opts...))
}

// EqualTo treats ideal points with parallel directions as the same point.
func (p *PointAtInfinity) EqualTo(other Point, scope *algebra.Assumptions) algebra.Truth {
	q, ok := other.(*PointAtInfinity)
	if !ok || q == nil {
		return algebra.False
	}
	return algebra.ScalarMultiple(p.direction.Coordinates(), q.direction.Coordinates(), scope)
}

func (p *PointAtInfinity) Equals(other Point) bool {
	return p.EqualTo(other, p.Session().Assumptions()) == algebra.True
}

func (p *PointAtInfinity) Format() string { return "oo" + p.direction.Format() }

// ============================================================
// Free functions
// ============================================================

// Same copies any point under a new name.
func Same(p Point, opts ...Option) Point {
	switch v := p.(type) {
	case *FinitePoint:
		return v.Same(opts...)
	case *PointAtInfinity:
		return v.Same(opts...)
	}
	panic(fmt.Sprintf("symgeo: Same: unsupported point %T", p))
}

// Distance is the Euclidean distance between two points. It is infinite when
// exactly one of them is at infinity and undefined when both are.
func Distance(p, q Point) (algebra.Expr, error) {
	const op = "Distance"
	if p == nil || q == nil {
		return nil, opErr(op, ErrType, "points must not be nil")
	}
	if p.Dim() != q.Dim() {
		return nil, opErr(op, ErrPrecondition, "dimension mismatch: %d vs %d", p.Dim(), q.Dim())
	}
	fp, pFinite := p.(*FinitePoint)
	fq, qFinite := q.(*FinitePoint)
	switch {
	case pFinite && qFinite:
		d := subVec(fp.Coordinates(), fq.Coordinates())
		return algebra.SqrtOf(algebra.Canonicalize(dotVec(d, d))), nil
	case pFinite != qFinite:
		return algebra.Inf(), nil
	}
	return nil, opErr(op, ErrUndefined, "distance between two points at infinity")
}
