package algebra

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Three-valued logic
// ============================================================

// Truth is the result of a query the kernel may be unable to decide.
type Truth int8

const (
	Unknown Truth = iota
	True
	False
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// TruthOf lifts a decided boolean.
func TruthOf(b bool) Truth {
	if b {
		return True
	}
	return False
}

// And is False if any operand is False, True if all are True, Unknown otherwise.
func And(ts ...Truth) Truth {
	out := True
	for _, t := range ts {
		switch t {
		case False:
			return False
		case Unknown:
			out = Unknown
		}
	}
	return out
}

func Not(t Truth) Truth {
	switch t {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

// ============================================================
// Assumptions: per-symbol facts
// ============================================================

// Fact is a bit set of properties declared for a symbol.
type Fact uint8

const (
	Positive Fact = 1 << iota
	NonNegative
	Negative
	NonPositive
	NonZero
	Finite
)

var factNames = map[string]Fact{
	"positive":    Positive,
	"nonnegative": NonNegative,
	"negative":    Negative,
	"nonpositive": NonPositive,
	"nonzero":     NonZero,
	"finite":      Finite,
}

// ParseFact maps a lower-case fact name such as "positive" to its Fact.
func ParseFact(name string) (Fact, error) {
	f, ok := factNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("algebra: unknown fact %q", name)
	}
	return f, nil
}

// Assumptions holds symbol facts. A nil *Assumptions is an empty scope.
// Scopes are not safe for concurrent mutation.
type Assumptions struct {
	parent *Assumptions
	facts  map[string]Fact
}

func NewAssumptions() *Assumptions {
	return &Assumptions{facts: map[string]Fact{}}
}

// Fork returns a child scope that sees every fact of a and can add its own.
func (a *Assumptions) Fork() *Assumptions {
	return &Assumptions{parent: a, facts: map[string]Fact{}}
}

// Assume adds facts for name and returns a func that restores the previous
// state. Releases are expected in LIFO order.
func (a *Assumptions) Assume(name string, facts ...Fact) (release func()) {
	prev, had := a.facts[name]
	next := prev
	for _, f := range facts {
		next |= f
	}
	a.facts[name] = next
	return func() {
		if had {
			a.facts[name] = prev
		} else {
			delete(a.facts, name)
		}
	}
}

// Lookup returns the union of facts declared for name in a and its parents.
func (a *Assumptions) Lookup(name string) Fact {
	var out Fact
	for s := a; s != nil; s = s.parent {
		out |= s.facts[name]
	}
	return out
}

// ============================================================
// Sign analysis
// ============================================================

type signSet uint8

const (
	sNeg signSet = 1 << iota
	sZero
	sPos
	sAll = sNeg | sZero | sPos
)

func factSigns(f Fact) signSet {
	s := sAll
	if f&Positive != 0 {
		s &= sPos
	}
	if f&NonNegative != 0 {
		s &= sZero | sPos
	}
	if f&Negative != 0 {
		s &= sNeg
	}
	if f&NonPositive != 0 {
		s &= sNeg | sZero
	}
	if f&NonZero != 0 {
		s &^= sZero
	}
	if s == 0 {
		// contradictory facts decide nothing
		return sAll
	}
	return s
}

func signOfNum(n *Num) signSet {
	switch n.val.Sign() {
	case -1:
		return sNeg
	case 0:
		return sZero
	}
	return sPos
}

func mulSigns(a, b signSet) signSet {
	var out signSet
	for _, x := range []signSet{sNeg, sZero, sPos} {
		if a&x == 0 {
			continue
		}
		for _, y := range []signSet{sNeg, sZero, sPos} {
			if b&y == 0 {
				continue
			}
			switch {
			case x == sZero || y == sZero:
				out |= sZero
			case x == y:
				out |= sPos
			default:
				out |= sNeg
			}
		}
	}
	return out
}

func signsOf(e Expr, a *Assumptions) signSet {
	switch v := e.(type) {
	case *Num:
		return signOfNum(v)
	case *Const, *Infinity:
		return sPos
	case *Sym:
		return factSigns(a.Lookup(v.Name()))
	case *Add:
		nonNeg, nonPos := true, true
		strictPos, strictNeg := false, false
		for _, t := range v.terms {
			s := signsOf(t, a)
			if s&sNeg != 0 {
				nonNeg = false
			}
			if s&sPos != 0 {
				nonPos = false
			}
			if s == sPos {
				strictPos = true
			}
			if s == sNeg {
				strictNeg = true
			}
		}
		switch {
		case nonNeg && nonPos:
			return sZero
		case nonNeg && strictPos:
			return sPos
		case nonNeg:
			return sZero | sPos
		case nonPos && strictNeg:
			return sNeg
		case nonPos:
			return sNeg | sZero
		}
		return sAll
	case *Mul:
		out := sPos
		for _, f := range v.factors {
			out = mulSigns(out, signsOf(f, a))
		}
		return out
	case *Pow:
		b := signsOf(v.base, a)
		en, ok := v.exp.(*Num)
		if !ok {
			if b == sPos {
				return sPos
			}
			return sAll
		}
		if en.IsInteger() {
			if en.val.Num().Bit(0) == 0 {
				var out signSet
				if b&(sNeg|sPos) != 0 {
					out |= sPos
				}
				if b&sZero != 0 {
					out |= sZero
				}
				return out
			}
			return b
		}
		if b&sNeg == 0 {
			return b
		}
		return sAll
	case *Func:
		switch v.name {
		case "abs":
			s := signsOf(v.args[0], a)
			var out signSet
			if s&(sNeg|sPos) != 0 {
				out |= sPos
			}
			if s&sZero != 0 {
				out |= sZero
			}
			return out
		case "exp":
			return sPos
		case "sign":
			return signsOf(v.args[0], a)
		}
	}
	return sAll
}

const numericTolerance = 1e-9

// numericSign evaluates e in floating point. It only reports a sign when the
// magnitude is well clear of rounding noise.
func numericSign(e Expr) (int, bool) {
	n, ok := e.Eval()
	if !ok {
		return 0, false
	}
	f := n.Float64()
	if math.IsNaN(f) || math.Abs(f) < numericTolerance {
		return 0, false
	}
	if f > 0 {
		return 1, true
	}
	return -1, true
}

// ============================================================
// Queries
// ============================================================

func IsZero(e Expr, a *Assumptions) Truth {
	c := DeepSimplify(e)
	s := signsOf(c, a)
	switch {
	case s == sZero:
		return True
	case s&sZero == 0:
		return False
	}
	if _, ok := numericSign(c); ok {
		return False
	}
	return Unknown
}

func IsPositive(e Expr, a *Assumptions) Truth {
	c := DeepSimplify(e)
	s := signsOf(c, a)
	switch {
	case s == sPos:
		return True
	case s&sPos == 0:
		return False
	}
	if sign, ok := numericSign(c); ok {
		return TruthOf(sign > 0)
	}
	return Unknown
}

func IsNonNegative(e Expr, a *Assumptions) Truth {
	c := DeepSimplify(e)
	s := signsOf(c, a)
	switch {
	case s&sNeg == 0:
		return True
	case s == sNeg:
		return False
	}
	if sign, ok := numericSign(c); ok {
		return TruthOf(sign > 0)
	}
	return Unknown
}

func IsFinite(e Expr, a *Assumptions) Truth {
	switch v := e.Simplify().(type) {
	case *Num, *Const:
		return True
	case *Infinity:
		return False
	case *Sym:
		if a.Lookup(v.Name())&Finite != 0 {
			return True
		}
		return Unknown
	case *Add:
		ts := make([]Truth, len(v.terms))
		for i, t := range v.terms {
			ts[i] = IsFinite(t, a)
		}
		return And(ts...)
	case *Mul:
		ts := make([]Truth, len(v.factors))
		for i, f := range v.factors {
			ts[i] = IsFinite(f, a)
		}
		return And(ts...)
	case *Pow:
		base := IsFinite(v.base, a)
		if en, ok := v.exp.(*Num); ok {
			if !en.IsNegative() {
				return base
			}
			return And(base, Not(IsZero(v.base, a)))
		}
		return Unknown
	case *Func:
		switch v.name {
		case "sin", "cos", "atan2", "sign":
			return True
		case "abs", "exp":
			return IsFinite(v.args[0], a)
		}
	}
	return Unknown
}

// Equal decides a == b under scope.
func Equal(x, y Expr, a *Assumptions) Truth {
	return IsZero(SubOf(x, y), a)
}

// ScalarMultiple reports whether u and v are non-zero vectors with u = k*v
// for some scalar k.
func ScalarMultiple(u, v []Expr, a *Assumptions) Truth {
	if len(u) != len(v) || len(u) == 0 {
		return False
	}
	n := len(u)
	entries := make([]Expr, 0, 2*n)
	entries = append(entries, u...)
	entries = append(entries, v...)
	m := MatrixFromSlice(2, n, entries)
	ts := []Truth{Not(IsZeroVector(u, a)), Not(IsZeroVector(v, a))}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ts = append(ts, IsZero(m.Columns(i, j).Det(), a))
		}
	}
	return And(ts...)
}

// IsZeroVector reports whether every component vanishes.
func IsZeroVector(u []Expr, a *Assumptions) Truth {
	ts := make([]Truth, len(u))
	for i, c := range u {
		ts[i] = IsZero(c, a)
	}
	return And(ts...)
}
