package symgeo

import (
	"go.uber.org/zap"

	"github.com/njchilds90/symgeo/algebra"
)

// ConicKind classifies a conic by eccentricity.
type ConicKind int

const (
	KindCircle    ConicKind = iota // e = 0
	KindEllipse                    // 0 < e < 1
	KindParabola                   // e = 1
	KindHyperbola                  // 1 < e < oo
	KindLine                       // e = oo
)

func (k ConicKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindEllipse:
		return "ellipse"
	case KindParabola:
		return "parabola"
	case KindHyperbola:
		return "hyperbola"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Conic is a planar conic given by a focus, the vertex nearest it, an
// eccentricity and a parameterization direction sign. Every other attribute
// is derived on first access and cached.
type Conic struct {
	meta
	focus, vertex *FinitePoint
	ecc, sign     algebra.Expr
	kind          ConicKind
	decided       bool

	// shared quantities
	fv   []algebra.Expr
	vf   []algebra.Expr
	dist algebra.Expr

	fvDir          *FinitePoint
	center         Point
	otherFocus     Point
	otherVertex    Point
	majorAxis      *Line
	minorAxis      LineEntity
	directrix      LineEntity
	otherDirectrix LineEntity
	parametric     *ParametricEquations
	equation       *algebra.Equation
}

// NewConic validates its inputs and resolves the kind once. Kind predicates
// are tried in the order circle, ellipse, parabola, hyperbola, line; when none
// is provable the first one that is not disproved wins and a warning is
// logged on the session logger.
func NewConic(focus, vertex Point, eccentricity any, opts ...Option) (*Conic, error) {
	const op = "NewConic"
	o := buildOptions(opts)

	f, ok := focus.(*FinitePoint)
	if !ok || f == nil {
		return nil, opErr(op, ErrType, "focus must be a finite point, got %T", focus)
	}
	v, ok := vertex.(*FinitePoint)
	if !ok || v == nil {
		return nil, opErr(op, ErrType, "vertex must be a finite point, got %T", vertex)
	}
	if f.Dim() != 2 || v.Dim() != 2 {
		return nil, opErr(op, ErrPrecondition, "conics are planar, got dimensions %d and %d", f.Dim(), v.Dim())
	}
	e, eVar, err := scalarExpr(op, eccentricity)
	if err != nil {
		return nil, err
	}
	scope := o.scopeFor(f, v)
	if algebra.IsNonNegative(e, scope) != algebra.True {
		return nil, opErr(op, ErrPrecondition, "eccentricity %s is not provably non-negative", e)
	}

	sign := algebra.Expr(algebra.N(1))
	var signVar *Variable
	if o.directionSign != nil {
		if sign, signVar, err = scalarExpr(op, o.directionSign); err != nil {
			return nil, err
		}
		if n, ok := algebra.Canonicalize(sign).(*algebra.Num); ok && !n.IsOne() && !n.IsNegOne() {
			return nil, opErr(op, ErrPrecondition, "direction sign must be +1 or -1, got %s", n)
		}
	}

	fv := canonicalVec(subVec(v.Coordinates(), f.Coordinates()))
	if algebra.IsZeroVector(fv, scope) == algebra.True {
		return nil, opErr(op, ErrPrecondition, "focus and vertex coincide at %s", f.Format())
	}

	c := &Conic{
		focus:  f,
		vertex: v,
		ecc:    e,
		sign:   sign,
		fv:     fv,
		vf:     negVec(fv),
		dist:   algebra.SqrtOf(algebra.Canonicalize(dotVec(fv, fv))),
	}
	c.kind, c.decided = classify(e, scope)

	deps := []Entity{f, v}
	if eVar != nil {
		deps = append(deps, eVar)
	}
	if signVar != nil {
		deps = append(deps, signVar)
	}
	if err := c.init(op, "Conic", o, deps...); err != nil {
		return nil, err
	}
	if !c.decided {
		logger := c.Session().Logger()
		if o.session != nil {
			logger = o.session.Logger()
		}
		logger.Warn("conic kind undecidable, using precedence order",
			zap.String("conic", c.Name()),
			zap.String("eccentricity", e.String()),
			zap.Stringer("kind", c.kind))
	}
	if err := register(c, o); err != nil {
		return nil, err
	}
	return c, nil
}

func classify(e algebra.Expr, scope *algebra.Assumptions) (ConicKind, bool) {
	one := algebra.N(1)
	finite := algebra.IsFinite(e, scope)
	preds := [...]algebra.Truth{
		KindCircle:    algebra.IsZero(e, scope),
		KindEllipse:   algebra.And(algebra.IsPositive(e, scope), algebra.IsPositive(algebra.SubOf(one, e), scope)),
		KindParabola:  algebra.Equal(e, one, scope),
		KindHyperbola: algebra.And(algebra.IsPositive(algebra.SubOf(e, one), scope), finite),
		KindLine:      algebra.Not(finite),
	}
	for k, t := range preds {
		if t == algebra.True {
			return ConicKind(k), true
		}
	}
	for k, t := range preds {
		if t != algebra.False {
			return ConicKind(k), false
		}
	}
	return KindCircle, false
}

func (c *Conic) Focus() *FinitePoint         { return c.focus }
func (c *Conic) Vertex() *FinitePoint        { return c.vertex }
func (c *Conic) Eccentricity() algebra.Expr  { return c.ecc }
func (c *Conic) DirectionSign() algebra.Expr { return c.sign }
func (c *Conic) Kind() ConicKind             { return c.kind }

// KindDecided is false when the kind came from the precedence fallback.
func (c *Conic) KindDecided() bool { return c.decided }

func (c *Conic) IsCircle() bool    { return c.kind == KindCircle }
func (c *Conic) IsEllipse() bool   { return c.kind == KindEllipse }
func (c *Conic) IsParabola() bool  { return c.kind == KindParabola }
func (c *Conic) IsHyperbola() bool { return c.kind == KindHyperbola }
func (c *Conic) IsLine() bool      { return c.kind == KindLine }

// FocusToVertexDirection is vertex - focus.
func (c *Conic) FocusToVertexDirection() *FinitePoint {
	if c.fvDir == nil {
		c.fvDir = derivedPoint(c.fv, options{nameFn: c.childNameFn("focus_to_vertex")}, c.focus, c.vertex)
	}
	return c.fvDir
}

func (c *Conic) FocusToVertexDistance() algebra.Expr { return c.dist }

// MajorAxisAngle is the angle of the vertex-to-focus direction.
func (c *Conic) MajorAxisAngle() algebra.Expr { return algebra.Atan2Of(c.vf[1], c.vf[0]) }

func (c *Conic) childNameFn(label string) func() string {
	return func() string { return c.Name() + "." + label }
}

func (c *Conic) child(label string) options {
	return options{nameFn: c.childNameFn(label)}
}

func (c *Conic) atInfinity(label string) *PointAtInfinity {
	return must(NewPointAtInfinity(c.FocusToVertexDirection(), childName(c, label)))
}

// general is vertex + k*(vertex->focus).
func (c *Conic) general(k algebra.Expr) []algebra.Expr {
	return addVec(c.vertex.Coordinates(), scaleVec(k, c.vf))
}

func (c *Conic) oneMinusE() algebra.Expr { return algebra.SubOf(algebra.N(1), c.ecc) }

func (c *Conic) Center() Point {
	if c.center != nil {
		return c.center
	}
	switch c.kind {
	case KindCircle:
		c.center = c.focus.Same(childName(c, "center"))
	case KindParabola:
		c.center = c.atInfinity("center")
	case KindLine:
		c.center = c.vertex.Same(childName(c, "center"))
	default:
		k := algebra.DivOf(algebra.N(1), c.oneMinusE())
		c.center = derivedPoint(c.general(k), c.child("center"), c)
	}
	return c.center
}

func (c *Conic) OtherFocus() Point {
	if c.otherFocus != nil {
		return c.otherFocus
	}
	switch c.kind {
	case KindCircle:
		c.otherFocus = c.focus.Same(childName(c, "other_focus"))
	case KindParabola:
		c.otherFocus = c.atInfinity("other_focus")
	case KindLine:
		c.otherFocus = derivedPoint(addVec(c.vertex.Coordinates(), c.fv), c.child("other_focus"), c)
	default:
		k := algebra.DivOf(algebra.AddOf(algebra.N(1), c.ecc), c.oneMinusE())
		c.otherFocus = derivedPoint(c.general(k), c.child("other_focus"), c)
	}
	return c.otherFocus
}

func (c *Conic) OtherVertex() Point {
	if c.otherVertex != nil {
		return c.otherVertex
	}
	switch c.kind {
	case KindCircle:
		c.otherVertex = derivedPoint(addVec(c.focus.Coordinates(), c.vf), c.child("other_vertex"), c)
	case KindParabola:
		c.otherVertex = c.atInfinity("other_vertex")
	case KindLine:
		c.otherVertex = c.vertex.Same(childName(c, "other_vertex"))
	default:
		k := algebra.DivOf(algebra.N(2), c.oneMinusE())
		c.otherVertex = derivedPoint(c.general(k), c.child("other_vertex"), c)
	}
	return c.otherVertex
}

// MajorAxisLine runs through the focus and the vertex.
func (c *Conic) MajorAxisLine() *Line {
	if c.majorAxis == nil {
		c.majorAxis = must(NewLine(c.focus, c.vertex, childName(c, "major_axis")))
	}
	return c.majorAxis
}

func (c *Conic) perpendicularAt(coords []algebra.Expr, label string) *Line {
	through := derivedPoint(coords, c.child(label+".point"), c)
	return must(c.MajorAxisLine().PerpendicularLine(through, childName(c, label)))
}

func (c *Conic) lineAtInfinity(label string) *LineAtInfinity {
	return must(NewLineAtInfinity(c.FocusToVertexDirection(), childName(c, label)))
}

// MinorAxisLine is perpendicular to the major axis through the center. A
// parabola's center is at infinity, so its minor axis is the line at infinity.
func (c *Conic) MinorAxisLine() LineEntity {
	if c.minorAxis != nil {
		return c.minorAxis
	}
	switch c.kind {
	case KindParabola:
		c.minorAxis = c.lineAtInfinity("minor_axis")
	case KindLine:
		c.minorAxis = c.perpendicularAt(c.vertex.Coordinates(), "minor_axis")
	default:
		center := c.Center().(*FinitePoint)
		c.minorAxis = c.perpendicularAt(center.Coordinates(), "minor_axis")
	}
	return c.minorAxis
}

// directrixPoint is where the directrix meets the major axis: vertex + fv/e.
func (c *Conic) directrixPoint() []algebra.Expr {
	return addVec(c.vertex.Coordinates(), scaleVec(algebra.DivOf(algebra.N(1), c.ecc), c.fv))
}

func (c *Conic) Directrix() LineEntity {
	if c.directrix != nil {
		return c.directrix
	}
	switch c.kind {
	case KindCircle:
		c.directrix = c.lineAtInfinity("directrix")
	case KindParabola:
		c.directrix = c.perpendicularAt(addVec(c.vertex.Coordinates(), c.fv), "directrix")
	case KindLine:
		c.directrix = c.perpendicularAt(c.vertex.Coordinates(), "directrix")
	default:
		c.directrix = c.perpendicularAt(c.directrixPoint(), "directrix")
	}
	return c.directrix
}

// OtherDirectrix is the directrix paired with OtherFocus.
func (c *Conic) OtherDirectrix() LineEntity {
	if c.otherDirectrix != nil {
		return c.otherDirectrix
	}
	switch c.kind {
	case KindCircle, KindLine:
		c.otherDirectrix = c.Directrix()
	case KindParabola:
		c.otherDirectrix = c.lineAtInfinity("other_directrix")
	default:
		center := c.Center().(*FinitePoint)
		q := subVec(scaleVec(algebra.N(2), center.Coordinates()), c.directrixPoint())
		c.otherDirectrix = c.perpendicularAt(q, "other_directrix")
	}
	return c.otherDirectrix
}

// SemiLatusRectum is undefined for the degenerate line.
func (c *Conic) SemiLatusRectum() (algebra.Expr, error) {
	switch c.kind {
	case KindCircle:
		return c.dist, nil
	case KindParabola:
		return algebra.MulOf(algebra.N(2), c.dist), nil
	case KindLine:
		return nil, opErr("Conic.SemiLatusRectum", ErrUndefined, "%s has no semi-latus rectum", c.kind)
	}
	return algebra.Canonicalize(algebra.MulOf(algebra.AddOf(algebra.N(1), c.ecc), c.dist)), nil
}

// MajorSemiAxisLength is the focus-vertex distance for a circle and infinite
// for a parabola.
func (c *Conic) MajorSemiAxisLength() (algebra.Expr, error) {
	switch c.kind {
	case KindCircle:
		return c.dist, nil
	case KindParabola:
		return algebra.Inf(), nil
	case KindLine:
		return nil, opErr("Conic.MajorSemiAxisLength", ErrUndefined, "%s has no major semi-axis", c.kind)
	}
	return algebra.DivOf(c.dist, c.oneMinusE()), nil
}

// ParametricEquations gives x and y as functions of one parameter.
type ParametricEquations struct {
	Parameter *algebra.Sym
	X, Y      algebra.Expr
}

// At substitutes value for the parameter.
func (p *ParametricEquations) At(value algebra.Expr) (x, y algebra.Expr) {
	name := p.Parameter.Name()
	return algebra.Sub(p.X, name, value), algebra.Sub(p.Y, name, value)
}

// ParametricEquations uses the polar form about the focus,
// r = l / (1 - e*cos(d*theta - phi)), with phi the major axis angle. The
// degenerate line is parameterized along its tangent at the vertex.
func (c *Conic) ParametricEquations() *ParametricEquations {
	if c.parametric != nil {
		return c.parametric
	}
	if c.kind == KindLine {
		t := algebra.S("t")
		step := scaleVec(algebra.MulOf(t, c.sign), perpVec(c.fv))
		pt := canonicalVec(addVec(c.vertex.Coordinates(), step))
		c.parametric = &ParametricEquations{Parameter: t, X: pt[0], Y: pt[1]}
		return c.parametric
	}
	theta := algebra.S("theta")
	l, _ := c.SemiLatusRectum()
	angle := algebra.MulOf(c.sign, theta)
	denom := algebra.SubOf(algebra.N(1),
		algebra.MulOf(c.ecc, algebra.CosOf(algebra.SubOf(angle, c.MajorAxisAngle()))))
	r := algebra.DivOf(l, denom)
	c.parametric = &ParametricEquations{
		Parameter: theta,
		X:         algebra.AddOf(c.focus.X(), algebra.MulOf(r, algebra.CosOf(angle))),
		Y:         algebra.AddOf(c.focus.Y(), algebra.MulOf(r, algebra.SinOf(angle))),
	}
	return c.parametric
}

// Equation is the implicit equation in x and y. Points P on the conic satisfy
// |P-F|^2 |n|^2 = e^2 ((P-Q).n)^2 for the directrix through Q with normal n.
func (c *Conic) Equation() (*algebra.Equation, error) {
	if c.equation != nil {
		return c.equation, nil
	}
	p := []algebra.Expr{xSym, ySym}
	pf := subVec(p, c.focus.Coordinates())
	var lhs algebra.Expr
	switch c.kind {
	case KindCircle:
		lhs = algebra.SubOf(dotVec(pf, pf), dotVec(c.fv, c.fv))
	case KindLine:
		lhs = dotVec(subVec(p, c.vertex.Coordinates()), c.fv)
	default:
		n2 := dotVec(c.fv, c.fv)
		along := dotVec(subVec(p, c.directrixPoint()), c.fv)
		lhs = algebra.SubOf(
			algebra.MulOf(dotVec(pf, pf), n2),
			algebra.MulOf(algebra.PowOf(c.ecc, algebra.N(2)), algebra.PowOf(along, algebra.N(2))))
	}
	c.equation = algebra.Eq(algebra.Canonicalize(lhs), algebra.N(0))
	return c.equation, nil
}

// Contains reports whether p satisfies the conic's equation.
func (c *Conic) Contains(p *FinitePoint) algebra.Truth {
	if p == nil || p.Dim() != 2 {
		return algebra.False
	}
	eq, _ := c.Equation()
	return eq.SatisfiedBy(map[string]algebra.Expr{"x": p.X(), "y": p.Y()}, c.Session().Assumptions())
}

var _ HasEquation = (*Conic)(nil)
