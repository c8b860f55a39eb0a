// Package algebra is the exact symbolic kernel behind symgeo.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat), never silent floating point
//   - Deterministic simplification and stable output
//   - Three-valued queries (True/False/Unknown) under an explicit assumption scope
//   - Small surface: only what the geometry layer consumes
package algebra

import (
	"fmt"
	"math"
	"math/big"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Eval() (*Num, bool)
	Equal(other Expr) bool
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("algebra: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func NRat(r *big.Rat) *Num  { return &Num{val: new(big.Rat).Set(r)} }
func NFloat(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(new(big.Rat).SetInt64(1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(new(big.Rat).SetInt64(-1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("algebra: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numAbs(a *Num) *Num {
	r := new(big.Rat).Set(a.val)
	if r.Sign() < 0 {
		r.Neg(r)
	}
	return &Num{val: r}
}
func numCmp(a, b *Num) int { return a.val.Cmp(b.val) }

// numSqrt returns the exact square root of a non-negative rational whose
// numerator and denominator are both perfect squares.
func numSqrt(a *Num) (*Num, bool) {
	if a.IsNegative() {
		return nil, false
	}
	num, den := a.val.Num(), a.val.Denom()
	rn, rd := new(big.Int).Sqrt(num), new(big.Int).Sqrt(den)
	if new(big.Int).Mul(rn, rn).Cmp(num) != 0 || new(big.Int).Mul(rd, rd).Cmp(den) != 0 {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFrac(rn, rd)}, true
}

// ============================================================
// Sym: symbolic variable
// ============================================================

// Sym is a named unknown. A symbol made by SymRef reads its name through a
// reference, so every expression holding it follows a rename of the owner.
type Sym struct {
	name string
	ref  *string
}

func S(name string) *Sym { return &Sym{name: name} }

// SymRef returns a symbol whose name is *ref at the time it is read.
func SymRef(ref *string) *Sym { return &Sym{ref: ref} }

func (s *Sym) Name() string {
	if s.ref != nil {
		return *s.ref
	}
	return s.name
}

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.Name() }
func (s *Sym) LaTeX() string  { return s.Name() }
func (s *Sym) Eval() (*Num, bool) {
	return nil, false
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.Name() == o.Name() }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.Name()}
}
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.Name() == varName {
		return value
	}
	return s
}

// ============================================================
// Const: named transcendental constant
// ============================================================

type Const struct {
	name  string
	latex string
	value float64
}

var pi = &Const{name: "pi", latex: `\pi`, value: math.Pi}

// Pi returns the exact constant pi.
func Pi() Expr { return pi }

func (c *Const) Simplify() Expr        { return c }
func (c *Const) String() string        { return c.name }
func (c *Const) LaTeX() string         { return c.latex }
func (c *Const) Sub(string, Expr) Expr { return c }
func (c *Const) Eval() (*Num, bool)    { return NFloat(c.value), true }
func (c *Const) Equal(other Expr) bool { o, ok := other.(*Const); return ok && c.name == o.name }
func (c *Const) exprType() string      { return "const" }
func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}

// ============================================================
// Infinity: unsigned positive infinity
// ============================================================

type Infinity struct{}

var oo = &Infinity{}

// Inf returns positive infinity. Negative infinity is -1*oo.
func Inf() Expr { return oo }

func (i *Infinity) Simplify() Expr        { return i }
func (i *Infinity) String() string        { return "oo" }
func (i *Infinity) LaTeX() string         { return `\infty` }
func (i *Infinity) Sub(string, Expr) Expr { return i }
func (i *Infinity) Eval() (*Num, bool)    { return nil, false }
func (i *Infinity) Equal(other Expr) bool { _, ok := other.(*Infinity); return ok }
func (i *Infinity) exprType() string      { return "inf" }
func (i *Infinity) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "inf"}
}

// IsInfinite reports whether e is +oo or -oo after simplification.
func IsInfinite(e Expr) bool {
	switch v := e.Simplify().(type) {
	case *Infinity:
		return true
	case *Mul:
		if len(v.factors) == 2 {
			_, isNum := v.factors[0].(*Num)
			_, isInf := v.factors[1].(*Infinity)
			return isNum && isInf
		}
	}
	return false
}

func negInf() Expr { return &Mul{factors: []Expr{N(-1), oo}} }
