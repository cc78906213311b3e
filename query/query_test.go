package query

import (
	"testing"

	"github.com/gopetri/apn/adt"
	"github.com/gopetri/apn/petri"
)

func buildQueryFixture(t *testing.T) *petri.Net {
	t.Helper()
	sort := adt.NewSort("bool")
	tru, _ := sort.DeclareOperation("true", nil)
	truTerm, _ := tru.New()

	n := petri.NewNet("q")
	p1, _ := n.AddPlace("full", sort, truTerm)
	p2, _ := n.AddPlace("empty", sort)

	solo, _ := n.AddTransition("solo")
	if _, err := n.AddArc(p1, solo, truTerm); err != nil {
		t.Fatalf("AddArc: %v", err)
	}

	shared, _ := n.AddTransition("shared")
	if _, err := n.AddArc(p1, shared, truTerm); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	if _, err := n.AddArc(shared, p2, truTerm); err != nil {
		t.Fatalf("AddArc: %v", err)
	}

	return n
}

func TestSelectTransitionsByFireability(t *testing.T) {
	n := buildQueryFixture(t)

	fireable, err := SelectTransitions(n, "Fireable == true")
	if err != nil {
		t.Fatalf("SelectTransitions: %v", err)
	}
	if len(fireable) != 2 {
		t.Fatalf("len(fireable) = %d, want 2", len(fireable))
	}
}

func TestSelectTransitionsByArcCount(t *testing.T) {
	n := buildQueryFixture(t)

	withOutbound, err := SelectTransitions(n, "OutboundCount > 0")
	if err != nil {
		t.Fatalf("SelectTransitions: %v", err)
	}
	if len(withOutbound) != 1 || withOutbound[0].Name() != "shared" {
		t.Errorf("withOutbound = %v, want just [shared]", withOutbound)
	}
}

func TestSelectPlacesByTokenCount(t *testing.T) {
	n := buildQueryFixture(t)

	empty, err := SelectPlaces(n, "TokenCount == 0")
	if err != nil {
		t.Fatalf("SelectPlaces: %v", err)
	}
	if len(empty) != 1 || empty[0].Name() != "empty" {
		t.Errorf("empty = %v, want just [empty]", empty)
	}
}

func TestSelectTransitionsRejectsNonBooleanExpression(t *testing.T) {
	n := buildQueryFixture(t)
	if _, err := SelectTransitions(n, "InboundCount + 1"); err == nil {
		t.Error("expected an error for a non-boolean expression")
	}
}
