package symgeo

import "github.com/njchilds90/symgeo/algebra"

// Raw coordinate arithmetic. Queries use these so they do not mint entities.

func checkDims(op string, a, b []algebra.Expr) {
	if len(a) != len(b) {
		panic("symgeo: " + op + ": dimension mismatch")
	}
}

func addVec(a, b []algebra.Expr) []algebra.Expr {
	checkDims("add", a, b)
	out := make([]algebra.Expr, len(a))
	for i := range a {
		out[i] = algebra.AddOf(a[i], b[i])
	}
	return out
}

func subVec(a, b []algebra.Expr) []algebra.Expr {
	checkDims("subtract", a, b)
	out := make([]algebra.Expr, len(a))
	for i := range a {
		out[i] = algebra.SubOf(a[i], b[i])
	}
	return out
}

func scaleVec(k algebra.Expr, a []algebra.Expr) []algebra.Expr {
	out := make([]algebra.Expr, len(a))
	for i := range a {
		out[i] = algebra.MulOf(k, a[i])
	}
	return out
}

func negVec(a []algebra.Expr) []algebra.Expr { return scaleVec(algebra.N(-1), a) }

func dotVec(a, b []algebra.Expr) algebra.Expr {
	checkDims("dot", a, b)
	terms := make([]algebra.Expr, len(a))
	for i := range a {
		terms[i] = algebra.MulOf(a[i], b[i])
	}
	return algebra.AddOf(terms...)
}

// perpVec rotates a planar vector a quarter turn counter-clockwise.
func perpVec(a []algebra.Expr) []algebra.Expr {
	return []algebra.Expr{algebra.NegOf(a[1]), a[0]}
}

func canonicalVec(a []algebra.Expr) []algebra.Expr {
	out := make([]algebra.Expr, len(a))
	for i, c := range a {
		out[i] = algebra.Canonicalize(c)
	}
	return out
}
