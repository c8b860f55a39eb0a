package algebra_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/njchilds90/symgeo/algebra"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := algebra.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := algebra.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := algebra.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Eval(t *testing.T) {
	n, ok := algebra.N(7).Eval()
	if !ok || n.String() != "7" {
		t.Errorf("Num.Eval() should succeed with same value")
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_Sub_Match(t *testing.T) {
	result := algebra.Sub(algebra.S("x"), "x", algebra.N(3))
	if algebra.String(result) != "3" {
		t.Errorf("want 3, got %s", algebra.String(result))
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	result := algebra.Sub(algebra.S("x"), "y", algebra.N(3))
	if algebra.String(result) != "x" {
		t.Errorf("want x, got %s", algebra.String(result))
	}
}

func TestSymRef_FollowsRename(t *testing.T) {
	name := "p.x"
	x := algebra.SymRef(&name)
	e := algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.N(1))
	name = "q.x"
	if got := e.String(); got != "q.x^2 + 1" {
		t.Errorf("want q.x^2 + 1, got %s", got)
	}
	if !x.Equal(algebra.S("q.x")) {
		t.Error("renamed symbol must equal a plain symbol of the new name")
	}
	if _, ok := algebra.FreeSymbols(e)["q.x"]; !ok {
		t.Error("free symbols must use the current name")
	}
}

func TestSym_Eval_Fails(t *testing.T) {
	if _, ok := algebra.S("x").Eval(); ok {
		t.Error("a free symbol has no numeric value")
	}
}

// ============================================================
// Add / Mul simplification
// ============================================================

func TestAdd_NumericFold(t *testing.T) {
	result := algebra.AddOf(algebra.N(2), algebra.N(3))
	if result.String() != "5" {
		t.Errorf("want 5, got %s", result)
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	x := algebra.S("x")
	result := algebra.AddOf(algebra.MulOf(algebra.N(2), x), algebra.MulOf(algebra.N(3), x))
	if result.String() != "5*x" {
		t.Errorf("want 5*x, got %s", result)
	}
}

func TestAdd_Cancel(t *testing.T) {
	x := algebra.S("x")
	result := algebra.SubOf(x, x)
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result)
	}
}

func TestAdd_ConstantLast(t *testing.T) {
	result := algebra.AddOf(algebra.N(2), algebra.S("x"))
	if result.String() != "x + 2" {
		t.Errorf("want x + 2, got %s", result)
	}
}

func TestMul_LikeFactors(t *testing.T) {
	x := algebra.S("x")
	result := algebra.MulOf(x, x)
	if result.String() != "x^2" {
		t.Errorf("want x^2, got %s", result)
	}
}

func TestMul_Inverse(t *testing.T) {
	x := algebra.S("x")
	result := algebra.DivOf(x, x)
	if result.String() != "1" {
		t.Errorf("want 1, got %s", result)
	}
}

func TestMul_Coefficient(t *testing.T) {
	result := algebra.MulOf(algebra.N(2), algebra.S("x"), algebra.N(3))
	if result.String() != "6*x" {
		t.Errorf("want 6*x, got %s", result)
	}
}

func TestMul_ZeroAbsorbs(t *testing.T) {
	result := algebra.MulOf(algebra.N(0), algebra.S("x"))
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result)
	}
}

// ============================================================
// Pow and square roots
// ============================================================

func TestPow_IntegerPower(t *testing.T) {
	result := algebra.PowOf(algebra.N(2), algebra.N(10))
	if result.String() != "1024" {
		t.Errorf("want 1024, got %s", result)
	}
}

func TestPow_NegativePower(t *testing.T) {
	result := algebra.PowOf(algebra.N(2), algebra.N(-2))
	if result.String() != "1/4" {
		t.Errorf("want 1/4, got %s", result)
	}
}

func TestSqrt_PerfectSquares(t *testing.T) {
	cases := []struct {
		in   algebra.Expr
		want string
	}{
		{algebra.N(4), "2"},
		{algebra.F(9, 4), "3/2"},
		{algebra.N(0), "0"},
		{algebra.N(1), "1"},
	}
	for _, c := range cases {
		if got := algebra.SqrtOf(c.in).String(); got != c.want {
			t.Errorf("sqrt(%s): want %s, got %s", c.in, c.want, got)
		}
	}
}

func TestSqrt_StaysExact(t *testing.T) {
	result := algebra.SqrtOf(algebra.N(2))
	if result.String() != "2^(1/2)" {
		t.Errorf("want 2^(1/2), got %s", result)
	}
	if !strings.Contains(result.LaTeX(), `\sqrt`) {
		t.Errorf("LaTeX should use \\sqrt, got %s", result.LaTeX())
	}
}

// ============================================================
// Infinity
// ============================================================

func TestInfinity_AbsorbsFinite(t *testing.T) {
	result := algebra.AddOf(algebra.Inf(), algebra.N(1))
	if result.String() != "oo" {
		t.Errorf("want oo, got %s", result)
	}
}

func TestInfinity_Negative(t *testing.T) {
	result := algebra.NegOf(algebra.Inf())
	if !algebra.IsInfinite(result) {
		t.Errorf("-oo should be infinite, got %s", result)
	}
	if algebra.IsPositive(result, nil) != algebra.False {
		t.Errorf("-oo is not positive")
	}
}

func TestInfinity_Reciprocal(t *testing.T) {
	result := algebra.DivOf(algebra.N(1), algebra.Inf())
	if result.String() != "0" {
		t.Errorf("want 0, got %s", result)
	}
}

// ============================================================
// Functions
// ============================================================

func TestTrig_ExactValues(t *testing.T) {
	half := algebra.MulOf(algebra.F(1, 2), algebra.Pi())
	cases := []struct {
		name string
		got  algebra.Expr
		want string
	}{
		{"sin(pi)", algebra.SinOf(algebra.Pi()), "0"},
		{"cos(pi)", algebra.CosOf(algebra.Pi()), "-1"},
		{"sin(pi/2)", algebra.SinOf(half), "1"},
		{"cos(pi/2)", algebra.CosOf(half), "0"},
		{"cos(0)", algebra.CosOf(algebra.N(0)), "1"},
	}
	for _, c := range cases {
		if c.got.String() != c.want {
			t.Errorf("%s: want %s, got %s", c.name, c.want, c.got)
		}
	}
}

func TestTrig_NonExactStaysSymbolic(t *testing.T) {
	result := algebra.SinOf(algebra.N(1))
	if result.String() != "sin(1)" {
		t.Errorf("want sin(1), got %s", result)
	}
}

func TestAtan2_Axes(t *testing.T) {
	cases := []struct {
		y, x int64
		want string
	}{
		{0, 1, "0"},
		{0, -3, "pi"},
		{1, 0, "1/2*pi"},
		{2, 2, "1/4*pi"},
	}
	for _, c := range cases {
		got := algebra.Atan2Of(algebra.N(c.y), algebra.N(c.x)).String()
		if got != c.want {
			t.Errorf("atan2(%d, %d): want %s, got %s", c.y, c.x, c.want, got)
		}
	}
}

func TestAbs_Num(t *testing.T) {
	if got := algebra.AbsOf(algebra.N(-3)).String(); got != "3" {
		t.Errorf("want 3, got %s", got)
	}
}

func TestFunc_Eval(t *testing.T) {
	n, ok := algebra.CosOf(algebra.N(1)).Eval()
	if !ok {
		t.Fatal("cos(1) should evaluate")
	}
	if f := n.Float64(); f < 0.54 || f > 0.541 {
		t.Errorf("cos(1) = %f", f)
	}
}

// ============================================================
// Expand / trig identities
// ============================================================

func TestExpand_Square(t *testing.T) {
	x := algebra.S("x")
	lhs := algebra.Expand(algebra.PowOf(algebra.AddOf(x, algebra.N(1)), algebra.N(2)))
	rhs := algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.MulOf(algebra.N(2), x), algebra.N(1))
	if algebra.Equal(lhs, rhs, nil) != algebra.True {
		t.Errorf("(x+1)^2 expanded to %s", lhs)
	}
}

func TestExpand_SymbolicSquareTerminates(t *testing.T) {
	a := algebra.S("a")
	if got := algebra.Canonicalize(algebra.PowOf(a, algebra.N(2))).String(); got != "a^2" {
		t.Errorf("want a^2, got %s", got)
	}
	if got := algebra.Canonicalize(algebra.MulOf(a, a, a)).String(); got != "a^3" {
		t.Errorf("want a^3, got %s", got)
	}
}

func TestExpand_ProductWithSquaredSum(t *testing.T) {
	a := algebra.S("a")
	e := algebra.MulOf(a, algebra.PowOf(algebra.AddOf(a, algebra.N(1)), algebra.N(2)))
	want := algebra.AddOf(
		algebra.PowOf(a, algebra.N(3)),
		algebra.MulOf(algebra.N(2), algebra.PowOf(a, algebra.N(2))),
		a,
	)
	if got := algebra.Expand(e); algebra.Equal(got, want, nil) != algebra.True {
		t.Errorf("a*(a+1)^2 expanded to %s, want %s", got, want)
	}
}

func TestTrigSimplify_Pythagorean(t *testing.T) {
	x := algebra.S("x")
	e := algebra.AddOf(
		algebra.PowOf(algebra.SinOf(x), algebra.N(2)),
		algebra.PowOf(algebra.CosOf(x), algebra.N(2)),
	)
	if got := algebra.TrigSimplify(e).String(); got != "1" {
		t.Errorf("want 1, got %s", got)
	}
}

func TestFreeSymbols(t *testing.T) {
	e := algebra.AddOf(algebra.S("a"), algebra.MulOf(algebra.S("b"), algebra.CosOf(algebra.S("t"))))
	syms := algebra.FreeSymbols(e)
	for _, name := range []string{"a", "b", "t"} {
		if _, ok := syms[name]; !ok {
			t.Errorf("missing free symbol %s", name)
		}
	}
	if len(syms) != 3 {
		t.Errorf("want 3 free symbols, got %d", len(syms))
	}
}

// ============================================================
// Assumptions and three-valued queries
// ============================================================

func TestAssume_AcquireRelease(t *testing.T) {
	scope := algebra.NewAssumptions()
	x := algebra.S("x")
	if algebra.IsPositive(x, scope) != algebra.Unknown {
		t.Fatal("x is undecided without facts")
	}
	release := scope.Assume("x", algebra.Positive)
	if algebra.IsPositive(x, scope) != algebra.True {
		t.Error("x should be positive under the assumption")
	}
	release()
	if algebra.IsPositive(x, scope) != algebra.Unknown {
		t.Error("release should drop the fact")
	}
}

func TestAssume_ForkSeesParent(t *testing.T) {
	parent := algebra.NewAssumptions()
	defer parent.Assume("e", algebra.NonNegative)()
	child := parent.Fork()
	if algebra.IsNonNegative(algebra.S("e"), child) != algebra.True {
		t.Error("child scope should inherit parent facts")
	}
	child.Assume("e", algebra.NonZero)
	if algebra.IsPositive(algebra.S("e"), child) != algebra.True {
		t.Error("nonnegative and nonzero should be positive")
	}
	if algebra.IsPositive(algebra.S("e"), parent) != algebra.Unknown {
		t.Error("child facts must not leak into the parent")
	}
}

func TestIsNonNegative_EvenPower(t *testing.T) {
	e := algebra.AddOf(algebra.PowOf(algebra.S("a"), algebra.N(2)), algebra.PowOf(algebra.S("b"), algebra.N(2)))
	if algebra.IsNonNegative(e, nil) != algebra.True {
		t.Errorf("a^2 + b^2 should be non-negative")
	}
}

func TestIsFinite(t *testing.T) {
	if algebra.IsFinite(algebra.Inf(), nil) != algebra.False {
		t.Error("oo is not finite")
	}
	if algebra.IsFinite(algebra.F(1, 2), nil) != algebra.True {
		t.Error("1/2 is finite")
	}
	scope := algebra.NewAssumptions()
	if algebra.IsFinite(algebra.S("e"), scope) != algebra.Unknown {
		t.Error("e is undecided")
	}
	scope.Assume("e", algebra.Finite)
	if algebra.IsFinite(algebra.S("e"), scope) != algebra.True {
		t.Error("e was assumed finite")
	}
}

func TestEqual(t *testing.T) {
	if algebra.Equal(algebra.Inf(), algebra.N(1), nil) != algebra.False {
		t.Error("oo != 1")
	}
	if algebra.Equal(algebra.F(2, 2), algebra.N(1), nil) != algebra.True {
		t.Error("2/2 == 1")
	}
	if algebra.Equal(algebra.S("e"), algebra.N(1), nil) != algebra.Unknown {
		t.Error("e == 1 is undecided")
	}
}

func TestScalarMultiple(t *testing.T) {
	vec := func(xs ...int64) []algebra.Expr {
		out := make([]algebra.Expr, len(xs))
		for i, x := range xs {
			out[i] = algebra.N(x)
		}
		return out
	}
	if algebra.ScalarMultiple(vec(1, 2), vec(2, 4), nil) != algebra.True {
		t.Error("(1,2) and (2,4) are parallel")
	}
	if algebra.ScalarMultiple(vec(1, 2, 3), vec(-2, -4, -6), nil) != algebra.True {
		t.Error("(1,2,3) and (-2,-4,-6) are parallel")
	}
	if algebra.ScalarMultiple(vec(1, 2), vec(2, 3), nil) != algebra.False {
		t.Error("(1,2) and (2,3) are not parallel")
	}
	if algebra.ScalarMultiple(vec(0, 0), vec(1, 1), nil) != algebra.False {
		t.Error("the zero vector has no direction")
	}
}

func TestScalarMultiple_Symbolic(t *testing.T) {
	a := algebra.S("a")
	u := []algebra.Expr{a, algebra.MulOf(algebra.N(2), a)}
	v := []algebra.Expr{algebra.N(1), algebra.N(2)}
	scope := algebra.NewAssumptions()
	if algebra.ScalarMultiple(u, v, scope) != algebra.Unknown {
		t.Error("a could be zero")
	}
	scope.Assume("a", algebra.Positive)
	if algebra.ScalarMultiple(u, v, scope) != algebra.True {
		t.Error("(a, 2a) is parallel to (1, 2) for positive a")
	}
}

// ============================================================
// Matrix and Equation
// ============================================================

func TestMatrix_Det(t *testing.T) {
	m := algebra.MatrixFromSlice(2, 2, []algebra.Expr{
		algebra.N(1), algebra.N(2),
		algebra.N(3), algebra.N(4),
	})
	if got := m.Det().String(); got != "-2" {
		t.Errorf("want -2, got %s", got)
	}
}

func TestMatrix_Columns(t *testing.T) {
	m := algebra.MatrixFromSlice(2, 3, []algebra.Expr{
		algebra.N(1), algebra.N(2), algebra.N(3),
		algebra.N(4), algebra.N(5), algebra.N(6),
	})
	if got := m.Columns(0, 2).Det().String(); got != "-6" {
		t.Errorf("want -6, got %s", got)
	}
}

func TestEquation_SatisfiedBy(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	eq := algebra.Eq(algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.PowOf(y, algebra.N(2))), algebra.N(25))
	on := map[string]algebra.Expr{"x": algebra.N(3), "y": algebra.N(4)}
	off := map[string]algebra.Expr{"x": algebra.N(3), "y": algebra.N(3)}
	if eq.SatisfiedBy(on, nil) != algebra.True {
		t.Error("(3,4) lies on the circle")
	}
	if eq.SatisfiedBy(off, nil) != algebra.False {
		t.Error("(3,3) does not lie on the circle")
	}
}

func TestParseFact(t *testing.T) {
	f, err := algebra.ParseFact(" Positive ")
	if err != nil {
		t.Fatalf("ParseFact: %v", err)
	}
	if f != algebra.Positive {
		t.Errorf("want Positive, got %d", f)
	}
	if _, err := algebra.ParseFact("prime"); err == nil {
		t.Error("unknown fact names must be rejected")
	}
}

// ============================================================
// JSON
// ============================================================

func TestJSON_RoundTrip(t *testing.T) {
	x := algebra.S("x")
	orig := algebra.AddOf(algebra.MulOf(algebra.F(1, 2), x), algebra.Atan2Of(x, algebra.N(1)), algebra.Pi())
	s, err := algebra.ToJSON(orig)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	var tree map[string]interface{}
	if err := json.Unmarshal([]byte(s), &tree); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	back, err := algebra.FromJSON(tree)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if back.String() != orig.String() {
		t.Errorf("round trip: want %s, got %s", orig, back)
	}
}

func TestJSON_FuncNodesFold(t *testing.T) {
	tests := []struct {
		tree string
		want string
	}{
		{`{"type":"func","name":"exp","args":[{"type":"num","value":"0"}]}`, "1"},
		{`{"type":"func","name":"ln","args":[{"type":"func","name":"exp","args":[{"type":"sym","name":"x"}]}]}`, "x"},
		{`{"type":"func","name":"tan","args":[{"type":"const","name":"pi"}]}`, "0"},
		{`{"type":"func","name":"sign","args":[{"type":"num","value":"-3/4"}]}`, "-1"},
	}
	for _, tt := range tests {
		var tree map[string]interface{}
		if err := json.Unmarshal([]byte(tt.tree), &tree); err != nil {
			t.Fatalf("json.Unmarshal: %v", err)
		}
		e, err := algebra.FromJSON(tree)
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", tt.tree, err)
		}
		if got := e.String(); got != tt.want {
			t.Errorf("FromJSON(%s) = %s, want %s", tt.tree, got, tt.want)
		}
	}
}

func TestJSON_UnknownType(t *testing.T) {
	if _, err := algebra.FromJSON(map[string]interface{}{"type": "matrix"}); err == nil {
		t.Error("unknown node types must be rejected")
	}
}
