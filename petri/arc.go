package petri

import "github.com/gopetri/apn/adt"

// Arc connects a place and a transition in one direction. Exactly one of
// the two roles below describes any given arc: an inbound arc has Place as
// its source and Transition as its target; an outbound arc has Transition
// as its source and Place as its target. The Label is a possibly-empty,
// possibly-open sequence of terms.
type Arc struct {
	Place      *Place
	Transition *Transition
	Label      []*adt.Term
	inbound    bool
}

// Inbound reports whether this is an inbound arc (place -> transition).
func (a *Arc) Inbound() bool { return a.inbound }

func (a *Arc) String() string {
	if a.inbound {
		return "arc " + a.Place.name + " -> " + a.Transition.name
	}
	return "arc " + a.Transition.name + " -> " + a.Place.name
}
