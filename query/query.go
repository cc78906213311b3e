// Package query provides read-only, govaluate-backed boolean filtering over
// a net's transitions and places by structural metadata. It never
// participates in matching or rewriting: selection expressions only ever
// see counts and names, never term structure, so they cannot influence the
// syntactic-equality semantics the core engine relies on.
package query

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/gopetri/apn/petri"
)

// TransitionParams builds the govaluate parameter set exposed for a
// transition: Name, InboundCount, OutboundCount, Fireable.
func TransitionParams(t *petri.Transition) map[string]interface{} {
	ok, _ := t.Enabled()
	return map[string]interface{}{
		"Name":          t.Name(),
		"InboundCount":  float64(len(t.InboundArcs())),
		"OutboundCount": float64(len(t.OutboundArcs())),
		"Fireable":      ok,
	}
}

// PlaceParams builds the govaluate parameter set exposed for a place: Name,
// Sort, TokenCount.
func PlaceParams(p *petri.Place) map[string]interface{} {
	return map[string]interface{}{
		"Name":       p.Name(),
		"Sort":       p.Sort().Name(),
		"TokenCount": float64(len(p.Marking())),
	}
}

// SelectTransitions returns the sub-list of net's transitions, in
// declaration order, for which expr evaluates truthy. expr is a govaluate
// boolean expression over the fields documented by TransitionParams, e.g.
// `InboundCount > 1 && Fireable`.
func SelectTransitions(net *petri.Net, expr string) ([]*petri.Transition, error) {
	compiled, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("query: parsing transition expression %q: %w", expr, err)
	}
	var out []*petri.Transition
	for _, t := range net.Transitions() {
		result, err := compiled.Evaluate(TransitionParams(t))
		if err != nil {
			return nil, fmt.Errorf("query: evaluating expression for transition %s: %w", t.Name(), err)
		}
		truthy, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("query: expression %q did not evaluate to a boolean (got %T)", expr, result)
		}
		if truthy {
			out = append(out, t)
		}
	}
	return out, nil
}

// SelectPlaces returns the sub-list of net's places, in declaration order,
// for which expr evaluates truthy, over the fields documented by
// PlaceParams, e.g. `TokenCount == 0`.
func SelectPlaces(net *petri.Net, expr string) ([]*petri.Place, error) {
	compiled, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("query: parsing place expression %q: %w", expr, err)
	}
	var out []*petri.Place
	for _, p := range net.Places() {
		result, err := compiled.Evaluate(PlaceParams(p))
		if err != nil {
			return nil, fmt.Errorf("query: evaluating expression for place %s: %w", p.Name(), err)
		}
		truthy, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("query: expression %q did not evaluate to a boolean (got %T)", expr, result)
		}
		if truthy {
			out = append(out, p)
		}
	}
	return out, nil
}
