package adt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func boolSortFixture(t *testing.T) (sort *Sort, tru, fls *Operation, not *Operation) {
	t.Helper()
	sort = NewSort("bool")
	tru, _ = sort.DeclareOperation("true", nil)
	fls, _ = sort.DeclareOperation("false", nil)
	not, _ = sort.DeclareOperation("not", []*Sort{sort})
	return
}

func TestEqualStructural(t *testing.T) {
	_, tru, _, not := boolSortFixture(t)

	truTerm1, _ := tru.New()
	truTerm2, _ := tru.New()
	notTrue1, _ := not.New(truTerm1)
	notTrue2, _ := not.New(truTerm2)

	if !Equal(notTrue1, notTrue2) {
		t.Error("two separately-constructed not(true()) terms should be structurally equal")
	}
	if diff := cmp.Diff(notTrue1, notTrue2); diff != "" {
		t.Errorf("cmp.Diff found a difference despite structural equality:\n%s", diff)
	}
}

func TestEqualDistinguishesOperations(t *testing.T) {
	_, tru, fls, _ := boolSortFixture(t)
	truTerm, _ := tru.New()
	flsTerm, _ := fls.New()
	if Equal(truTerm, flsTerm) {
		t.Error("true() and false() should not be equal")
	}
}

func TestIsGround(t *testing.T) {
	sort, tru, _, not := boolSortFixture(t)
	x, _ := sort.DeclareVariable("x")

	truTerm, _ := tru.New()
	if !truTerm.IsGround() {
		t.Error("true() should be ground")
	}

	xTerm := x.New()
	if xTerm.IsGround() {
		t.Error("a bare variable occurrence should not be ground")
	}

	notX, _ := not.New(xTerm)
	if notX.IsGround() {
		t.Error("not(x) should not be ground since x is a variable")
	}
}

func TestTermString(t *testing.T) {
	sort, tru, _, not := boolSortFixture(t)
	truTerm, _ := tru.New()
	notTrue, _ := not.New(truTerm)

	want := "bool.not(bool.true())"
	if got := notTrue.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	x, _ := sort.DeclareVariable("x")
	if got, want := x.New().String(), "bool.x"; got != want {
		t.Errorf("variable String() = %q, want %q", got, want)
	}
}
