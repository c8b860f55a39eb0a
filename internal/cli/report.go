package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/njchilds90/symgeo"
	"github.com/njchilds90/symgeo/algebra"
	"github.com/njchilds90/symgeo/internal/config"
)

// Value is one rendered result in all three output forms.
type Value struct {
	String string      `json:"string"`
	LaTeX  string      `json:"latex,omitempty"`
	Tree   interface{} `json:"tree,omitempty"`
}

// Field is a named Value.
type Field struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}

// Report is the ordered list of results a command produced.
type Report struct {
	Entity string  `json:"entity"`
	Fields []Field `json:"fields"`
}

func (r *Report) add(name string, v Value) {
	r.Fields = append(r.Fields, Field{Name: name, Value: v})
}

func exprValue(e algebra.Expr) Value {
	e = algebra.Canonicalize(e)
	return Value{String: e.String(), LaTeX: e.LaTeX(), Tree: algebra.Tree(e)}
}

func textValue(s string) Value { return Value{String: s} }

func coordsValue(cs []algebra.Expr, prefix string) Value {
	strs := make([]string, len(cs))
	texs := make([]string, len(cs))
	trees := make([]interface{}, len(cs))
	for i, c := range cs {
		c = algebra.Canonicalize(c)
		strs[i], texs[i], trees[i] = c.String(), c.LaTeX(), algebra.Tree(c)
	}
	latex := `\left(` + strings.Join(texs, ", ") + `\right)`
	if prefix != "" {
		latex = `\infty` + latex
	}
	return Value{
		String: prefix + "(" + strings.Join(strs, ", ") + ")",
		LaTeX:  latex,
		Tree:   map[string]interface{}{"type": "point", "at_infinity": prefix != "", "coords": trees},
	}
}

func pointValue(p symgeo.Point) Value {
	switch v := p.(type) {
	case *symgeo.FinitePoint:
		return coordsValue(v.Coordinates(), "")
	case *symgeo.PointAtInfinity:
		return coordsValue(v.Direction().Coordinates(), "oo")
	}
	return textValue("<nil>")
}

func equationValue(eq *algebra.Equation) Value {
	lhs, rhs := algebra.Canonicalize(eq.LHS), algebra.Canonicalize(eq.RHS)
	return Value{
		String: lhs.String() + " = " + rhs.String(),
		LaTeX:  lhs.LaTeX() + " = " + rhs.LaTeX(),
		Tree:   map[string]interface{}{"type": "eq", "lhs": algebra.Tree(lhs), "rhs": algebra.Tree(rhs)},
	}
}

// lineValue renders a planar line by its equation and the line at infinity
// by its normal.
func lineValue(l symgeo.LineEntity) Value {
	switch v := l.(type) {
	case *symgeo.Line:
		if eq, err := v.Equation(); err == nil {
			return equationValue(eq)
		}
		p0, p1 := pointValue(v.P0()), pointValue(v.P1())
		return textValue("line through " + p0.String + " and " + p1.String)
	case *symgeo.LineAtInfinity:
		n := pointValue(v.Normal())
		n.String = "line at infinity, normal " + n.String
		n.LaTeX = `\ell_\infty`
		return n
	}
	return textValue("<nil>")
}

func truthValue(t algebra.Truth) Value { return textValue(t.String()) }

// Write renders r in the given format.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.FormatLaTeX:
		for _, f := range r.Fields {
			tex := f.Value.LaTeX
			if tex == "" {
				tex = `\text{` + f.Value.String + `}`
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", f.Name, tex); err != nil {
				return err
			}
		}
		return nil
	case config.FormatText, "":
		if _, err := fmt.Fprintln(w, r.Entity); err != nil {
			return err
		}
		for _, f := range r.Fields {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", f.Name, f.Value.String); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
