package adt

import "testing"

func mustSort(t *testing.T, name string) *Sort {
	t.Helper()
	return NewSort(name)
}

func TestDeclareOperation(t *testing.T) {
	nat := mustSort(t, "nat")

	zero, err := nat.DeclareOperation("zero", nil)
	if err != nil {
		t.Fatalf("declaring zero: %v", err)
	}
	if zero.Arity() != 0 {
		t.Errorf("zero arity = %d, want 0", zero.Arity())
	}
	if !SortsEqual(zero.ResultSort(), nat) {
		t.Errorf("zero result sort = %v, want nat", zero.ResultSort())
	}

	succ, err := nat.DeclareOperation("succ", []*Sort{nat})
	if err != nil {
		t.Fatalf("declaring succ: %v", err)
	}
	if succ.Arity() != 1 {
		t.Errorf("succ arity = %d, want 1", succ.Arity())
	}

	if _, err := nat.DeclareOperation("succ", []*Sort{nat}); err == nil {
		t.Error("redeclaring succ: expected error, got nil")
	}
}

func TestDeclareOperationOnGenericSortFails(t *testing.T) {
	if _, err := GenericSort().DeclareOperation("anything", nil); err == nil {
		t.Error("declaring an operation on the generic sort: expected error, got nil")
	}
}

func TestDeclareVariableIdentity(t *testing.T) {
	nat := mustSort(t, "nat")
	x1, err := nat.DeclareVariable("x")
	if err != nil {
		t.Fatalf("declaring x: %v", err)
	}
	if _, err := nat.DeclareVariable("x"); err == nil {
		t.Error("redeclaring x on the same sort: expected error, got nil")
	}

	other := mustSort(t, "other")
	x2, err := other.DeclareVariable("x")
	if err != nil {
		t.Fatalf("declaring x on other: %v", err)
	}
	if x1 == x2 {
		t.Error("variables declared on different sorts with the same name should be distinct identities")
	}
}

func TestOperationNewArityAndSortChecking(t *testing.T) {
	nat := mustSort(t, "nat")
	boolSort := mustSort(t, "bool")

	zero, _ := nat.DeclareOperation("zero", nil)
	succ, _ := nat.DeclareOperation("succ", []*Sort{nat})
	tru, _ := boolSort.DeclareOperation("true", nil)

	zeroTerm, err := zero.New()
	if err != nil {
		t.Fatalf("zero.New(): %v", err)
	}

	if _, err := succ.New(); err == nil {
		t.Error("succ.New() with no args: expected arity error, got nil")
	}

	truTerm, _ := tru.New()
	if _, err := succ.New(truTerm); err == nil {
		t.Error("succ.New(true()): expected sort mismatch error, got nil")
	}

	if _, err := succ.New(zeroTerm); err != nil {
		t.Errorf("succ.New(zero()): unexpected error: %v", err)
	}
}

func TestGenericSortRelaxesArgumentChecking(t *testing.T) {
	container := mustSort(t, "container")
	boolSort := mustSort(t, "bool")
	tru, _ := boolSort.DeclareOperation("true", nil)

	box, err := container.DeclareOperation("box", []*Sort{GenericSort()})
	if err != nil {
		t.Fatalf("declaring box: %v", err)
	}

	truTerm, _ := tru.New()
	if _, err := box.New(truTerm); err != nil {
		t.Errorf("box(true()) with a generic argument slot: unexpected error: %v", err)
	}
}

func TestIsGeneric(t *testing.T) {
	if !IsGeneric(GenericSort()) {
		t.Error("IsGeneric(GenericSort()) = false, want true")
	}
	named := mustSort(t, "anysort") // same name as the generic sort, but not the singleton
	if IsGeneric(named) {
		t.Error("a distinct sort named \"anysort\" should not satisfy IsGeneric")
	}
}
