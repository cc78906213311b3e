package petri

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gopetri/apn/adt"
)

// fibonacciFixture builds a two-place net with a single transition that
// advances a Fibonacci-style pair (a, b) -> (b, a+b), mirroring the
// original's bundled fibonacci example net.
type fibonacciFixture struct {
	natSort         *adt.Sort
	zero, succ, add *adt.Operation
	x, y            *adt.Variable
	net             *Net
	a, b            *Place
	step            *Transition
}

func newFibonacciFixture(t *testing.T) *fibonacciFixture {
	t.Helper()
	nat := adt.NewSort("nat")
	zero, _ := nat.DeclareOperation("zero", nil)
	succ, _ := nat.DeclareOperation("succ", []*adt.Sort{nat})
	add, _ := nat.DeclareOperation("add", []*adt.Sort{nat, nat})
	x, _ := nat.DeclareVariable("x")
	y, _ := nat.DeclareVariable("y")

	zeroTerm, _ := zero.New()
	base, err := nat.DeclareRewriteRule(mustApplyTerm(t, add, zeroTerm, y.New()), y.New())
	if err != nil {
		t.Fatalf("declaring base addition rule: %v", err)
	}
	succX, _ := succ.New(x.New())
	addXY := mustApplyTerm(t, add, x.New(), y.New())
	succAddXY, _ := succ.New(addXY)
	step, err := nat.DeclareRewriteRule(mustApplyTerm(t, add, succX, y.New()), succAddXY)
	if err != nil {
		t.Fatalf("declaring step addition rule: %v", err)
	}

	n := NewNet("fibonacci")
	n.AddRule(base)
	n.AddRule(step)

	nat0, _ := zero.New()
	nat1, _ := succ.New(nat0)

	placeA, err := n.AddPlace("a", nat, nat0)
	if err != nil {
		t.Fatalf("AddPlace a: %v", err)
	}
	placeB, err := n.AddPlace("b", nat, nat1)
	if err != nil {
		t.Fatalf("AddPlace b: %v", err)
	}

	advance, err := n.AddTransition("advance")
	if err != nil {
		t.Fatalf("AddTransition: %v", err)
	}

	if _, err := n.AddArc(placeA, advance, x.New()); err != nil {
		t.Fatalf("AddArc a->advance: %v", err)
	}
	if _, err := n.AddArc(placeB, advance, y.New()); err != nil {
		t.Fatalf("AddArc b->advance: %v", err)
	}
	if _, err := n.AddArc(advance, placeA, y.New()); err != nil {
		t.Fatalf("AddArc advance->a: %v", err)
	}
	addXYTerm := mustApplyTerm(t, add, x.New(), y.New())
	if _, err := n.AddArc(advance, placeB, addXYTerm); err != nil {
		t.Fatalf("AddArc advance->b: %v", err)
	}

	return &fibonacciFixture{
		natSort: nat, zero: zero, succ: succ, add: add, x: x, y: y,
		net: n, a: placeA, b: placeB, step: advance,
	}
}

func mustApplyTerm(t *testing.T, op *adt.Operation, args ...*adt.Term) *adt.Term {
	t.Helper()
	term, err := op.New(args...)
	if err != nil {
		t.Fatalf("%s.New(): %v", op.Name(), err)
	}
	return term
}

func (f *fibonacciFixture) nat(t *testing.T, n int) *adt.Term {
	t.Helper()
	term := mustApplyTerm(t, f.zero)
	for i := 0; i < n; i++ {
		term = mustApplyTerm(t, f.succ, term)
	}
	return term
}

func TestFibonacciNetFiringTwice(t *testing.T) {
	Convey("a two-place Fibonacci advance net", t, func() {
		f := newFibonacciFixture(t)

		Convey("starts enabled with (0, 1)", func() {
			So(f.net.Fireables(), ShouldHaveLength, 1)
		})

		Convey("firing once advances to (1, 1)", func() {
			err := f.net.Fire(f.step)
			So(err, ShouldBeNil)

			marking := f.net.Marking()
			So(len(marking["a"]), ShouldEqual, 1)
			So(adt.Equal(marking["a"][0], f.nat(t, 1)), ShouldBeTrue)
			So(adt.Equal(marking["b"][0], f.nat(t, 1)), ShouldBeTrue)

			Convey("firing again advances to (1, 2)", func() {
				err := f.net.Fire(f.step)
				So(err, ShouldBeNil)

				marking := f.net.Marking()
				So(adt.Equal(marking["a"][0], f.nat(t, 1)), ShouldBeTrue)
				So(adt.Equal(marking["b"][0], f.nat(t, 2)), ShouldBeTrue)
			})
		})
	})
}

func TestFireOnDisabledTransitionFails(t *testing.T) {
	Convey("a transition with an inbound arc reading an empty place", t, func() {
		sort := adt.NewSort("bool")
		tru, _ := sort.DeclareOperation("true", nil)

		n := NewNet("disabled")
		p, _ := n.AddPlace("p", sort)
		tr, _ := n.AddTransition("t")
		truTerm, _ := tru.New()
		_, err := n.AddArc(p, tr, truTerm)
		So(err, ShouldBeNil)

		Convey("Fireables is empty and Fire fails", func() {
			So(n.Fireables(), ShouldHaveLength, 0)

			err := n.Fire(tr)
			So(err, ShouldNotBeNil)
			_, ok := err.(*NotFireableError)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestFireSharesClaimsAcrossArcsReadingSamePlace(t *testing.T) {
	Convey("two inbound arcs from the same place both requiring a distinct token", t, func() {
		sort := adt.NewSort("bool")
		tru, _ := sort.DeclareOperation("true", nil)
		truTerm, _ := tru.New()

		n := NewNet("shared")
		p, _ := n.AddPlace("p", sort, truTerm) // only one token available
		t1, _ := n.AddTransition("needs-two")

		x, _ := sort.DeclareVariable("x")
		yy, _ := sort.DeclareVariable("y")
		if _, err := n.AddArc(p, t1, x.New()); err != nil {
			t.Fatalf("AddArc: %v", err)
		}
		if _, err := n.AddArc(p, t1, yy.New()); err != nil {
			t.Fatalf("AddArc: %v", err)
		}

		Convey("the transition is not enabled since only one token is available", func() {
			So(n.Fireables(), ShouldHaveLength, 0)
		})
	})
}

func TestValidateCatchesNonGroundMarking(t *testing.T) {
	Convey("Validate", t, func() {
		sort := adt.NewSort("bool")
		n := NewNet("n")
		p, err := n.AddPlace("p", sort)
		So(err, ShouldBeNil)

		Convey("a well-formed net validates cleanly", func() {
			So(n.Validate(), ShouldBeNil)
		})

		Convey("a marking that was mutated to hold a non-ground term is reported", func() {
			x, _ := sort.DeclareVariable("x")
			p.marking = append(p.marking, x.New())

			err := n.Validate()
			So(err, ShouldNotBeNil)
		})
	})
}
