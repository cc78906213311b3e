package petri

import "github.com/gopetri/apn/adt"

// Transition has an ordered list of inbound and outbound arcs. Arc order is
// observable: it defines traversal order during matching.
type Transition struct {
	name     string
	inbound  []*Arc
	outbound []*Arc
}

// NewTransition creates an empty, unconnected transition.
func NewTransition(name string) *Transition {
	return &Transition{name: name}
}

// Name returns the transition's name.
func (t *Transition) Name() string { return t.name }

// InboundArcs returns the transition's inbound arcs, in declaration order.
func (t *Transition) InboundArcs() []*Arc { return append([]*Arc(nil), t.inbound...) }

// OutboundArcs returns the transition's outbound arcs, in declaration
// order.
func (t *Transition) OutboundArcs() []*Arc { return append([]*Arc(nil), t.outbound...) }

func (t *Transition) addInboundArc(source *Place, label []*adt.Term) *Arc {
	arc := &Arc{Place: source, Transition: t, Label: label, inbound: true}
	t.inbound = append(t.inbound, arc)
	return arc
}

func (t *Transition) addOutboundArc(target *Place, label []*adt.Term) *Arc {
	arc := &Arc{Place: target, Transition: t, Label: label, inbound: false}
	t.outbound = append(t.outbound, arc)
	return arc
}

// Enabled searches for a single variable binding that is simultaneously
// consistent with every label term on every inbound arc, against the
// current markings. It does not mutate any marking.
//
// Matching is greedy: for each label term, in declaration order, the first
// unclaimed token in the arc's source place that matches and agrees with
// the bindings accumulated so far is taken, with no backtracking across
// token choices. A token already claimed for an earlier label term on *any*
// inbound arc reading from the same place cannot be claimed again — sharing
// the claim set across arcs (rather than scoping it per arc) is what makes
// firing sound when two arcs draw from the same place, and matches the
// reference implementation's single shared claim list.
func (t *Transition) Enabled() (bool, adt.Binding) {
	bindings := adt.Binding{}
	claimed := map[*Place]map[int]bool{}

	for _, arc := range t.inbound {
		if claimed[arc.Place] == nil {
			claimed[arc.Place] = map[int]bool{}
		}
		marking := arc.Place.marking

		for _, label := range arc.Label {
			found := -1
			var foundBinding adt.Binding

			for i, tok := range marking {
				if claimed[arc.Place][i] {
					continue
				}
				ok, b := adt.Match(label, tok)
				if !ok || !compatible(bindings, b) {
					continue
				}
				found = i
				foundBinding = b
				break
			}

			if found < 0 {
				return false, adt.Binding{}
			}
			for k, v := range foundBinding {
				bindings[k] = v
			}
			claimed[arc.Place][found] = true
		}
	}

	return true, bindings
}

// compatible reports whether every key shared between existing and fresh
// maps to the same term, i.e. merging fresh into existing cannot change any
// already-committed binding.
func compatible(existing, fresh adt.Binding) bool {
	for k, v := range fresh {
		if prior, ok := existing[k]; ok && !adt.Equal(prior, v) {
			return false
		}
	}
	return true
}

// Fire consumes the bound, reduced inbound labels and produces the bound,
// reduced outbound labels, using rules as the global rewrite rule set. It
// fails with *NotFireableError if the transition is not currently enabled,
// and otherwise either fully succeeds or — since Enabled already validated
// every consume will succeed — leaves every marking untouched.
func (t *Transition) Fire(rules []*adt.RewriteRule) error {
	ok, bindings := t.Enabled()
	if !ok {
		return &NotFireableError{Transition: t.name}
	}

	for _, arc := range t.inbound {
		tokens := reduceLabel(arc.Label, bindings, rules)
		if err := arc.Place.Consume(tokens); err != nil {
			return err
		}
	}
	for _, arc := range t.outbound {
		tokens := reduceLabel(arc.Label, bindings, rules)
		if err := arc.Place.Produce(tokens); err != nil {
			return err
		}
	}
	return nil
}

func reduceLabel(label []*adt.Term, bindings adt.Binding, rules []*adt.RewriteRule) []*adt.Term {
	tokens := make([]*adt.Term, len(label))
	for i, term := range label {
		tokens[i] = adt.Reduce(adt.ApplyBinding(term, bindings), rules)
	}
	return tokens
}
