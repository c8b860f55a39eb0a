package algebra

import (
	"math"
	"math/big"
	"strings"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	args []Expr
}

func funcOf(name string, args ...Expr) *Func { return &Func{name: name, args: args} }

func SinOf(arg Expr) Expr { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr { return funcOf("cos", arg).Simplify() }
func AbsOf(arg Expr) Expr { return funcOf("abs", arg).Simplify() }

// Atan2Of returns the angle of the vector (x, y), in (-pi, pi].
func Atan2Of(y, x Expr) Expr { return funcOf("atan2", y, x).Simplify() }

// Simplify folds applications only where the result is exact: trig functions
// at multiples of pi/2, atan2 on the axes and diagonals, abs and sign of
// rationals, and exp/ln inverses. Other numeric arguments stay symbolic.
func (f *Func) Simplify() Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Simplify()
	}
	if len(args) == 0 {
		return &Func{name: f.name}
	}
	arg := args[0]
	switch f.name {
	case "sin":
		if k, ok := piMultiple(arg); ok {
			if v, ok := sinAtPiMultiple(k); ok {
				return v
			}
		}
	case "cos":
		if k, ok := piMultiple(arg); ok {
			if v, ok := sinAtPiMultiple(new(big.Rat).Add(k, big.NewRat(1, 2))); ok {
				return v
			}
		}
	case "tan":
		if k, ok := piMultiple(arg); ok && k.IsInt() {
			return N(0)
		}
	case "ln":
		if n2, ok := arg.(*Num); ok && n2.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.args[0]
		}
	case "exp":
		if n2, ok := arg.(*Num); ok && n2.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.args[0]
		}
	case "abs":
		switch v := arg.(type) {
		case *Num:
			return numAbs(v)
		case *Const, *Infinity:
			return v
		case *Mul:
			if coeff, ok2 := v.factors[0].(*Num); ok2 && coeff.IsNegative() {
				inner := v.factors[1:]
				return MulOf(numAbs(coeff), AbsOf(MulOf(inner...)))
			}
		}
	case "sign":
		if n2, ok := arg.(*Num); ok {
			return N(int64(n2.val.Sign()))
		}
	case "atan2":
		if len(args) == 2 {
			if v, ok := atan2Exact(args[0], args[1]); ok {
				return v
			}
		}
	}
	return &Func{name: f.name, args: args}
}

// piMultiple recognises 0, pi and k*pi for rational k.
func piMultiple(e Expr) (*big.Rat, bool) {
	switch v := e.(type) {
	case *Num:
		if v.IsZero() {
			return new(big.Rat), true
		}
	case *Const:
		if v == pi {
			return big.NewRat(1, 1), true
		}
	case *Mul:
		if len(v.factors) == 2 {
			if k, ok := v.factors[0].(*Num); ok {
				if c, ok := v.factors[1].(*Const); ok && c == pi {
					return k.Rat(), true
				}
			}
		}
	}
	return nil, false
}

// sinAtPiMultiple evaluates sin(k*pi) exactly when 2k is an integer.
func sinAtPiMultiple(k *big.Rat) (Expr, bool) {
	twice := new(big.Rat).Mul(k, big.NewRat(2, 1))
	if !twice.IsInt() {
		return nil, false
	}
	q := new(big.Int).Mod(twice.Num(), big.NewInt(4)).Int64()
	switch q {
	case 0, 2:
		return N(0), true
	case 1:
		return N(1), true
	default:
		return N(-1), true
	}
}

func atan2Exact(y, x Expr) (Expr, bool) {
	yn, ok1 := y.(*Num)
	xn, ok2 := x.(*Num)
	if !ok1 || !ok2 {
		return nil, false
	}
	ys, xs := yn.val.Sign(), xn.val.Sign()
	piTimes := func(p, q int64) Expr { return MulOf(F(p, q), pi) }
	switch {
	case ys == 0 && xs > 0:
		return N(0), true
	case ys == 0 && xs < 0:
		return pi, true
	case xs == 0 && ys > 0:
		return piTimes(1, 2), true
	case xs == 0 && ys < 0:
		return piTimes(-1, 2), true
	case ys != 0 && numCmp(numAbs(yn), numAbs(xn)) == 0:
		switch {
		case ys > 0 && xs > 0:
			return piTimes(1, 4), true
		case ys > 0:
			return piTimes(3, 4), true
		case xs > 0:
			return piTimes(-1, 4), true
		default:
			return piTimes(-3, 4), true
		}
	}
	return nil, false
}

func (f *Func) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Func) LaTeX() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.LaTeX()
	}
	inner := strings.Join(parts, ", ")
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln":
		return "\\" + f.name + "\\left(" + inner + "\\right)"
	case "abs":
		return "\\left|" + inner + "\\right|"
	case "sign":
		return "\\operatorname{sign}\\left(" + inner + "\\right)"
	}
	return "\\operatorname{" + f.name + "}\\left(" + inner + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	args := make([]Expr, len(f.args))
	for i, a := range f.args {
		args[i] = a.Sub(varName, value)
	}
	return funcOf(f.name, args...).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	vals := make([]float64, len(f.args))
	for i, a := range f.args {
		n, ok := a.Eval()
		if !ok {
			return nil, false
		}
		vals[i], _ = n.val.Float64()
	}
	if len(vals) == 0 {
		return nil, false
	}
	v := vals[0]
	var out float64
	switch f.name {
	case "sin":
		out = math.Sin(v)
	case "cos":
		out = math.Cos(v)
	case "tan":
		out = math.Tan(v)
	case "exp":
		out = math.Exp(v)
	case "ln":
		if v <= 0 {
			return nil, false
		}
		out = math.Log(v)
	case "abs":
		out = math.Abs(v)
	case "sign":
		switch {
		case v > 0:
			return N(1), true
		case v < 0:
			return N(-1), true
		}
		return N(0), true
	case "atan2":
		if len(vals) != 2 {
			return nil, false
		}
		out = math.Atan2(v, vals[1])
	default:
		return nil, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, false
	}
	return NFloat(out), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	if !ok || f.name != o.name || len(f.args) != len(o.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	args := make([]map[string]interface{}, len(f.args))
	for i, a := range f.args {
		args[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "func", "name": f.name, "args": args}
}
func (f *Func) Args() []Expr { return f.args }
