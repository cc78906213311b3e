// Package petri implements the net model (places, transitions, arcs) and
// the transition firing engine described by the algebraic Petri net
// specification, built on top of the term algebra in package adt.
package petri

import (
	"fmt"
	"math/rand"

	"github.com/gopetri/apn/adt"
)

// Net is a named collection of places, transitions, and the global rewrite
// rule set used during firing. Sorts, operations, variables, rules, places,
// transitions, and arcs are created during setup and are otherwise
// immutable; only place markings mutate, through transition firing or direct
// Place.Consume and Place.Produce calls.
type Net struct {
	name string

	places     map[string]*Place
	placeOrder []string

	transitions     map[string]*Transition
	transitionOrder []string

	rules []*adt.RewriteRule

	// Logger receives one line per successful firing when non-nil. It is
	// never required: the engine itself never writes to stdout.
	Logger func(format string, args ...interface{})
}

// NewNet creates an empty net named name.
func NewNet(name string) *Net {
	return &Net{
		name:        name,
		places:      map[string]*Place{},
		transitions: map[string]*Transition{},
	}
}

// Name returns the net's name.
func (n *Net) Name() string { return n.name }

// AddRule appends a rewrite rule to the net's global rule set, used by
// every transition fired on this net.
func (n *Net) AddRule(r *adt.RewriteRule) {
	n.rules = append(n.rules, r)
}

// Rules returns the net's global rewrite rule set.
func (n *Net) Rules() []*adt.RewriteRule { return append([]*adt.RewriteRule(nil), n.rules...) }

// AddPlace creates a place and registers it in the net.
func (n *Net) AddPlace(name string, sort *adt.Sort, initial ...*adt.Term) (*Place, error) {
	if _, exists := n.places[name]; exists {
		return nil, &ArcEndpointError{Reason: fmt.Sprintf("place %q already exists in net %q", name, n.name)}
	}
	p, err := NewPlace(name, sort, initial...)
	if err != nil {
		return nil, err
	}
	n.places[name] = p
	n.placeOrder = append(n.placeOrder, name)
	return p, nil
}

// Place looks up a registered place by name.
func (n *Net) Place(name string) (*Place, bool) {
	p, ok := n.places[name]
	return p, ok
}

// Places returns the net's places in declaration order.
func (n *Net) Places() []*Place {
	out := make([]*Place, len(n.placeOrder))
	for i, name := range n.placeOrder {
		out[i] = n.places[name]
	}
	return out
}

// AddTransition creates a transition and registers it in the net.
func (n *Net) AddTransition(name string) (*Transition, error) {
	if _, exists := n.transitions[name]; exists {
		return nil, &ArcEndpointError{Reason: fmt.Sprintf("transition %q already exists in net %q", name, n.name)}
	}
	t := NewTransition(name)
	n.transitions[name] = t
	n.transitionOrder = append(n.transitionOrder, name)
	return t, nil
}

// Transition looks up a registered transition by name.
func (n *Net) Transition(name string) (*Transition, bool) {
	t, ok := n.transitions[name]
	return t, ok
}

// Transitions returns the net's transitions in declaration order.
func (n *Net) Transitions() []*Transition {
	out := make([]*Transition, len(n.transitionOrder))
	for i, name := range n.transitionOrder {
		out[i] = n.transitions[name]
	}
	return out
}

// AddArc connects source and target, exactly one of which must be a *Place
// and the other a *Transition, both already registered in n. label may be
// empty.
func (n *Net) AddArc(source, target interface{}, label ...*adt.Term) (*Arc, error) {
	if place, ok := source.(*Place); ok {
		transition, ok := target.(*Transition)
		if !ok {
			return nil, &ArcEndpointError{Reason: "source is a place, so target must be a transition"}
		}
		if !n.hasPlace(place) {
			return nil, &ArcEndpointError{Reason: fmt.Sprintf("place %q is not registered in net %q", place.name, n.name)}
		}
		if !n.hasTransition(transition) {
			return nil, &ArcEndpointError{Reason: fmt.Sprintf("transition %q is not registered in net %q", transition.name, n.name)}
		}
		return transition.addInboundArc(place, label), nil
	}

	if transition, ok := source.(*Transition); ok {
		place, ok := target.(*Place)
		if !ok {
			return nil, &ArcEndpointError{Reason: "source is a transition, so target must be a place"}
		}
		if !n.hasTransition(transition) {
			return nil, &ArcEndpointError{Reason: fmt.Sprintf("transition %q is not registered in net %q", transition.name, n.name)}
		}
		if !n.hasPlace(place) {
			return nil, &ArcEndpointError{Reason: fmt.Sprintf("place %q is not registered in net %q", place.name, n.name)}
		}
		return transition.addOutboundArc(place, label), nil
	}

	return nil, &ArcEndpointError{Reason: "source must be a *Place or a *Transition"}
}

func (n *Net) hasPlace(p *Place) bool {
	existing, ok := n.places[p.name]
	return ok && existing == p
}

func (n *Net) hasTransition(t *Transition) bool {
	existing, ok := n.transitions[t.name]
	return ok && existing == t
}

// Marking returns a snapshot of every place's marking, keyed by place name.
func (n *Net) Marking() map[string][]*adt.Term {
	out := make(map[string][]*adt.Term, len(n.places))
	for name, p := range n.places {
		out[name] = p.Marking()
	}
	return out
}

// Fireables returns the sub-list of transitions, in declaration order, for
// which Enabled currently holds.
func (n *Net) Fireables() []*Transition {
	var out []*Transition
	for _, t := range n.Transitions() {
		if ok, _ := t.Enabled(); ok {
			out = append(out, t)
		}
	}
	return out
}

// Fire fires t using the net's global rule set.
func (n *Net) Fire(t *Transition) error {
	if !n.hasTransition(t) {
		return &ArcEndpointError{Reason: fmt.Sprintf("transition %q is not registered in net %q", t.name, n.name)}
	}
	if err := t.Fire(n.rules); err != nil {
		return err
	}
	if n.Logger != nil {
		consumed, produced := 0, 0
		for _, arc := range t.InboundArcs() {
			consumed += len(arc.Label)
		}
		for _, arc := range t.OutboundArcs() {
			produced += len(arc.Label)
		}
		n.Logger("net %s: fired %s (consumed %d, produced %d token(s))", n.name, t.name, consumed, produced)
	}
	return nil
}

// FireRandom fires one transition chosen uniformly at random from
// Fireables. It fails with *NotFireableError if no transition is fireable.
func (n *Net) FireRandom() error {
	fireables := n.Fireables()
	if len(fireables) == 0 {
		return &NotFireableError{}
	}
	t := fireables[rand.Intn(len(fireables))]
	return n.Fire(t)
}

// Validate checks every arc's endpoints and every place's marking against
// the net's invariants and returns every problem found, aggregated, rather
// than stopping at the first one (a supplement over the original's
// assert-on-every-call style, useful for whole-net editing tools).
func (n *Net) Validate() error {
	errs := &adt.MultiError{}
	for _, t := range n.Transitions() {
		for _, arc := range t.InboundArcs() {
			if !n.hasPlace(arc.Place) {
				errs.Append(&ArcEndpointError{Reason: fmt.Sprintf("transition %q: inbound arc source %q is not registered in net %q", t.name, arc.Place.name, n.name)})
			}
		}
		for _, arc := range t.OutboundArcs() {
			if !n.hasPlace(arc.Place) {
				errs.Append(&ArcEndpointError{Reason: fmt.Sprintf("transition %q: outbound arc target %q is not registered in net %q", t.name, arc.Place.name, n.name)})
			}
		}
	}
	for _, p := range n.Places() {
		for _, tok := range p.Marking() {
			if !tok.IsGround() {
				errs.Append(&NotGroundError{Place: p.name, Term: tok})
			}
		}
	}
	return errs.OrNil()
}
