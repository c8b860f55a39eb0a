package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/njchilds90/symgeo"
	"github.com/njchilds90/symgeo/algebra"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseScalar reads an exact rational ("3", "-1/2", "0.25"), infinity ("oo",
// "inf") or an identifier. Identifiers resolve to the session variable of
// that name, created on first use.
func parseScalar(s *symgeo.Session, text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty scalar")
	}
	if r, ok := new(big.Rat).SetString(text); ok {
		return r, nil
	}
	switch strings.ToLower(text) {
	case "oo", "inf", "+inf", "infinity":
		return algebra.Inf(), nil
	}
	if !identRe.MatchString(text) {
		return nil, fmt.Errorf("invalid scalar %q", text)
	}
	v, err := symgeo.Lookup[*symgeo.Variable](s, text)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, symgeo.ErrNotFound) {
		return nil, err
	}
	return symgeo.NewVariable(symgeo.WithName(text), symgeo.InSession(s))
}

// Scalar is a scalar argument given either as text (see parseScalar) or, in
// tool calls, as an expression tree.
type Scalar struct {
	Text string
	Tree map[string]interface{}
}

func (sc *Scalar) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		sc.Text = text
		return nil
	}
	var tree map[string]interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("scalar must be a string or an expression tree: %w", err)
	}
	sc.Tree = tree
	return nil
}

func (sc Scalar) MarshalJSON() ([]byte, error) {
	if sc.Tree != nil {
		return json.Marshal(sc.Tree)
	}
	return json.Marshal(sc.Text)
}

func (sc Scalar) empty() bool { return sc.Text == "" && sc.Tree == nil }

// resolveScalar decodes an expression tree, or parses the text form.
func resolveScalar(s *symgeo.Session, sc Scalar) (any, error) {
	if sc.Tree != nil {
		return algebra.FromJSON(sc.Tree)
	}
	return parseScalar(s, sc.Text)
}

// parsePoint reads a comma separated coordinate list such as "1,a".
func parsePoint(s *symgeo.Session, text string, opts ...symgeo.Option) (*symgeo.FinitePoint, error) {
	parts := strings.Split(text, ",")
	coords := make([]any, len(parts))
	for i, part := range parts {
		c, err := parseScalar(s, part)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", text, err)
		}
		coords[i] = c
	}
	return symgeo.NewPoint(coords, opts...)
}

// parseAssumption reads "name:fact,fact".
func parseAssumption(text string) (string, []algebra.Fact, error) {
	name, list, ok := strings.Cut(text, ":")
	name = strings.TrimSpace(name)
	if !ok || !identRe.MatchString(name) {
		return "", nil, fmt.Errorf("invalid assumption %q (want name:fact[,fact])", text)
	}
	var facts []algebra.Fact
	for _, f := range strings.Split(list, ",") {
		fact, err := algebra.ParseFact(f)
		if err != nil {
			return "", nil, err
		}
		facts = append(facts, fact)
	}
	return name, facts, nil
}

// assume applies every assumption to s and returns a func undoing them.
func assume(s *symgeo.Session, items []string) (func(), error) {
	var releases []func()
	undo := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}
	for _, item := range items {
		name, facts, err := parseAssumption(item)
		if err != nil {
			undo()
			return nil, err
		}
		releases = append(releases, s.Assume(name, facts...))
	}
	return undo, nil
}
