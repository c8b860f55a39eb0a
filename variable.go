package symgeo

import (
	"math/big"

	"github.com/njchilds90/symgeo/algebra"
)

// Variable is a named scalar unknown that may later be bound to an expression.
type Variable struct {
	meta
	bound algebra.Expr
	sym   *algebra.Sym
}

// NewVariable creates a free variable. Without WithName a unique name is
// generated.
func NewVariable(opts ...Option) (*Variable, error) {
	o := buildOptions(opts)
	v := &Variable{}
	if err := v.init("NewVariable", "Variable", o); err != nil {
		return nil, err
	}
	if err := register(v, o); err != nil {
		return nil, err
	}
	return v, nil
}

// Bind fixes the variable's value. Bind(nil) is rejected; use Unbind.
func (v *Variable) Bind(e algebra.Expr) error {
	if e == nil {
		return opErr("Variable.Bind", ErrType, "cannot bind %s to nil", v.Name())
	}
	v.bound = e
	return nil
}

func (v *Variable) Unbind()             { v.bound = nil }
func (v *Variable) Free() bool          { return v.bound == nil }
func (v *Variable) Bound() algebra.Expr { return v.bound }

// Symbol is the variable's symbol. It tracks renames, so expressions built
// before a SetName print and compare under the new name.
func (v *Variable) Symbol() *algebra.Sym {
	if v.sym == nil {
		v.Name()
		v.sym = algebra.SymRef(&v.name)
	}
	return v.sym
}

// Expr is the bound expression, or the variable's symbol while it is free.
func (v *Variable) Expr() algebra.Expr {
	if v.bound != nil {
		return v.bound
	}
	return v.Symbol()
}

// scalarExpr converts a client-supplied scalar: a *Variable, an integer, a
// *big.Rat or an algebra.Expr. Floating point is rejected to keep results exact.
func scalarExpr(op string, x any) (algebra.Expr, *Variable, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil, opErr(op, ErrType, "scalar must not be nil")
	case *Variable:
		if v == nil {
			return nil, nil, opErr(op, ErrType, "scalar must not be a nil variable")
		}
		return v.Expr(), v, nil
	case int:
		return algebra.N(int64(v)), nil, nil
	case int32:
		return algebra.N(int64(v)), nil, nil
	case int64:
		return algebra.N(v), nil, nil
	case *big.Rat:
		if v == nil {
			return nil, nil, opErr(op, ErrType, "scalar must not be a nil rational")
		}
		return algebra.NRat(v), nil, nil
	case algebra.Expr:
		return v, nil, nil
	}
	return nil, nil, opErr(op, ErrType, "unsupported scalar type %T", x)
}
