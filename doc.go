// Package symgeo provides exact, symbolic plane and space geometry: points,
// lines, rays, segments and focus/directrix conic sections whose coordinates
// may be numbers, free variables or arbitrary expressions.
//
// All arithmetic is carried out by the [algebra] sub-package, which keeps
// rationals exact and answers geometric questions with a three-valued
// [algebra.Truth]. A question such as "is this conic an ellipse?" is True,
// False or Unknown depending on what is known about the symbols involved.
//
// # Entities and sessions
//
// Every geometric object implements [Entity]. Entities carry a name, the
// entities they were built from, and a back-reference to the [Session] they
// live in. Names are generated when none is given, and derived attributes
// get descriptive lazy names such as "E.center":
//
//	s := symgeo.NewSession(symgeo.WithSessionName("S"))
//	f, _ := symgeo.NewPoint2(0, 0, symgeo.InSession(s))
//	v, _ := symgeo.NewPoint2(1, 0, symgeo.InSession(s))
//	e, _ := symgeo.NewConic(f, v, algebra.F(1, 2), symgeo.WithName("E"), symgeo.InSession(s))
//	fmt.Println(e.Center()) // symgeo.FinitePoint E.center <- (...)
//
// A session also owns an [algebra.Assumptions] scope. Facts declared with
// [Session.Assume] are visible to every predicate evaluated for entities in
// that session.
//
// # Points at infinity
//
// Lines are built from a finite point and a second point that may be a
// [PointAtInfinity], a pure direction. Parallel lines share their point at
// infinity, and the [LineAtInfinity] appears as the directrix of a circle and
// the minor axis of a parabola.
//
// # Conics
//
// A [Conic] is given by a focus, the vertex closest to it, an eccentricity
// and an optional direction sign for its parametrization. Its kind is
// resolved once, at construction, in the order circle, ellipse, parabola,
// hyperbola, line. Center, other focus, directrices, axes, semi-latus
// rectum, parametric form and implicit equation all follow from these
// quantities and are computed on first use.
//
// # Errors
//
// Failing operations return an [*OpError] wrapping one of [ErrType],
// [ErrPrecondition], [ErrName], [ErrNotFound] or [ErrUndefined], so callers
// classify them with [errors.Is].
package symgeo
