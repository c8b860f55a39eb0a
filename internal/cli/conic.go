package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symgeo"
)

// ConicRequest describes a conic by focus, vertex and eccentricity.
type ConicRequest struct {
	Name          string   `json:"name,omitempty"`
	Focus         string   `json:"focus"`
	Vertex        string   `json:"vertex"`
	Eccentricity  Scalar   `json:"eccentricity"`
	DirectionSign Scalar   `json:"direction_sign,omitempty"`
	Assume        []string `json:"assume,omitempty"`
}

// conicReport builds the conic in s and reports every derived attribute.
func conicReport(s *symgeo.Session, req ConicRequest) (*Report, error) {
	release, err := assume(s, req.Assume)
	if err != nil {
		return nil, err
	}
	defer release()

	focus, err := parsePoint(s, req.Focus, symgeo.WithName("F"), symgeo.InSession(s))
	if err != nil {
		return nil, fmt.Errorf("focus: %w", err)
	}
	vertex, err := parsePoint(s, req.Vertex, symgeo.WithName("V"), symgeo.InSession(s))
	if err != nil {
		return nil, fmt.Errorf("vertex: %w", err)
	}
	e, err := resolveScalar(s, req.Eccentricity)
	if err != nil {
		return nil, fmt.Errorf("eccentricity: %w", err)
	}

	name := req.Name
	if name == "" {
		name = "C"
	}
	opts := []symgeo.Option{symgeo.WithName(name), symgeo.InSession(s)}
	if !req.DirectionSign.empty() {
		sign, err := resolveScalar(s, req.DirectionSign)
		if err != nil {
			return nil, fmt.Errorf("direction sign: %w", err)
		}
		opts = append(opts, symgeo.WithDirectionSign(sign))
	}
	c, err := symgeo.NewConic(focus, vertex, e, opts...)
	if err != nil {
		return nil, err
	}

	r := &Report{Entity: c.String()}
	kind := c.Kind().String()
	if !c.KindDecided() {
		kind += " (undecided)"
	}
	r.add("kind", textValue(kind))
	r.add("eccentricity", exprValue(c.Eccentricity()))
	r.add("focus", pointValue(c.Focus()))
	r.add("vertex", pointValue(c.Vertex()))
	r.add("center", pointValue(c.Center()))
	r.add("other_focus", pointValue(c.OtherFocus()))
	r.add("other_vertex", pointValue(c.OtherVertex()))
	r.add("focus_to_vertex_distance", exprValue(c.FocusToVertexDistance()))
	r.add("major_axis_angle", exprValue(c.MajorAxisAngle()))
	r.add("major_axis", lineValue(c.MajorAxisLine()))
	r.add("minor_axis", lineValue(c.MinorAxisLine()))
	r.add("directrix", lineValue(c.Directrix()))
	r.add("other_directrix", lineValue(c.OtherDirectrix()))
	if l, err := c.SemiLatusRectum(); err == nil {
		r.add("semi_latus_rectum", exprValue(l))
	}
	if a, err := c.MajorSemiAxisLength(); err == nil {
		r.add("major_semi_axis", exprValue(a))
	}
	pe := c.ParametricEquations()
	r.add("parameter", textValue(pe.Parameter.Name()))
	r.add("x", exprValue(pe.X))
	r.add("y", exprValue(pe.Y))
	eq, err := c.Equation()
	if err != nil {
		return nil, err
	}
	r.add("equation", equationValue(eq))
	return r, nil
}

func conicCmd(a *app) *cobra.Command {
	var req ConicRequest

	c := &cobra.Command{
		Use:   "conic",
		Short: "Derive the attributes of a conic given by focus, vertex and eccentricity",
		Example: `  symgeo conic --focus 0,0 --vertex 1,0 --eccentricity 1/2
  symgeo conic --focus 0,0 --vertex 1,0 --eccentricity e --assume e:positive,finite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := conicReport(a.session, req)
			if err != nil {
				return err
			}
			return r.Write(cmd.OutOrStdout(), a.cfg.Output.Format)
		},
	}

	c.Flags().StringVar(&req.Name, "name", "C", "Conic name")
	c.Flags().StringVar(&req.Focus, "focus", "", "Focus coordinates, e.g. 0,0 (required)")
	c.Flags().StringVar(&req.Vertex, "vertex", "", "Vertex coordinates, e.g. 1,0 (required)")
	c.Flags().StringVar(&req.Eccentricity.Text, "eccentricity", "", "Eccentricity: rational, oo, or a variable name (required)")
	c.Flags().StringVar(&req.DirectionSign.Text, "direction-sign", "", "Parameterization direction, 1 or -1")
	c.Flags().StringArrayVar(&req.Assume, "assume", nil, "Symbol facts, e.g. e:positive,finite (repeatable)")

	_ = c.MarkFlagRequired("focus")
	_ = c.MarkFlagRequired("vertex")
	_ = c.MarkFlagRequired("eccentricity")
	return c
}
