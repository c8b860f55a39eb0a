package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symgeo"
)

// LineRequest describes a line through two points, optionally with a point
// to project and a point to draw a perpendicular through.
type LineRequest struct {
	Name                 string   `json:"name,omitempty"`
	Through              string   `json:"through"`
	To                   string   `json:"to"`
	Project              string   `json:"project,omitempty"`
	PerpendicularThrough string   `json:"perpendicular_through,omitempty"`
	Assume               []string `json:"assume,omitempty"`
}

func lineReport(s *symgeo.Session, req LineRequest) (*Report, error) {
	release, err := assume(s, req.Assume)
	if err != nil {
		return nil, err
	}
	defer release()

	p0, err := parsePoint(s, req.Through, symgeo.WithName("P0"), symgeo.InSession(s))
	if err != nil {
		return nil, fmt.Errorf("through: %w", err)
	}
	p1, err := parsePoint(s, req.To, symgeo.WithName("P1"), symgeo.InSession(s))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	name := req.Name
	if name == "" {
		name = "L"
	}
	l, err := symgeo.NewLine(p0, p1, symgeo.WithName(name), symgeo.InSession(s))
	if err != nil {
		return nil, err
	}

	r := &Report{Entity: l.String()}
	r.add("direction", pointValue(l.Direction()))
	r.add("point_at_infinity", pointValue(l.PointAtInfinity()))
	if l.Dim() == 2 {
		r.add("equation", lineValue(l))
		n, err := l.Normal()
		if err != nil {
			return nil, err
		}
		r.add("normal", pointValue(n))
	}
	d, err := symgeo.Distance(p0, p1)
	if err != nil {
		return nil, err
	}
	r.add("distance_p0_p1", exprValue(d))

	if req.Project != "" {
		p, err := parsePoint(s, req.Project, symgeo.WithName("Q"), symgeo.InSession(s))
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		foot, err := l.PerpendicularProjectionOfPoint(p)
		if err != nil {
			return nil, err
		}
		r.add("projection", pointValue(foot))
		d, err := symgeo.Distance(p, foot)
		if err != nil {
			return nil, err
		}
		r.add("distance", exprValue(d))
	}
	if req.PerpendicularThrough != "" {
		p, err := parsePoint(s, req.PerpendicularThrough, symgeo.WithName("R"), symgeo.InSession(s))
		if err != nil {
			return nil, fmt.Errorf("perpendicular-through: %w", err)
		}
		perp, err := l.PerpendicularLine(p)
		if err != nil {
			return nil, err
		}
		r.add("perpendicular", lineValue(perp))
		par, err := l.ParallelLine(p)
		if err != nil {
			return nil, err
		}
		r.add("parallel", lineValue(par))
	}
	return r, nil
}

func lineCmd(a *app) *cobra.Command {
	var req LineRequest

	c := &cobra.Command{
		Use:     "line",
		Short:   "Derive the attributes of a line through two points",
		Example: `  symgeo line --through 0,0 --to 1,2 --project 3,1 --perpendicular-through 0,1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := lineReport(a.session, req)
			if err != nil {
				return err
			}
			return r.Write(cmd.OutOrStdout(), a.cfg.Output.Format)
		},
	}

	c.Flags().StringVar(&req.Name, "name", "L", "Line name")
	c.Flags().StringVar(&req.Through, "through", "", "First point, e.g. 0,0 (required)")
	c.Flags().StringVar(&req.To, "to", "", "Second point, e.g. 1,2 (required)")
	c.Flags().StringVar(&req.Project, "project", "", "Point to project perpendicularly onto the line")
	c.Flags().StringVar(&req.PerpendicularThrough, "perpendicular-through", "", "Point for the perpendicular and parallel lines")
	c.Flags().StringArrayVar(&req.Assume, "assume", nil, "Symbol facts, e.g. a:positive (repeatable)")

	_ = c.MarkFlagRequired("through")
	_ = c.MarkFlagRequired("to")
	return c
}
