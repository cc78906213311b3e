package petri

import (
	"fmt"

	"github.com/gopetri/apn/adt"
)

// Place holds a multiset of ground tokens of one sort. Duplicates are
// significant: consuming removes a single occurrence, and markings are
// scanned in insertion order.
type Place struct {
	name    string
	sort    *adt.Sort
	marking []*adt.Term
}

// NewPlace creates a place named name with the given sort and initial
// marking. Every initial token must be ground (no variable occurrences) and
// of the declared sort.
func NewPlace(name string, sort *adt.Sort, initial ...*adt.Term) (*Place, error) {
	p := &Place{name: name, sort: sort}
	for _, tok := range initial {
		if err := p.checkToken(tok); err != nil {
			return nil, err
		}
		p.marking = append(p.marking, tok)
	}
	return p, nil
}

// Name returns the place's name.
func (p *Place) Name() string { return p.name }

// Sort returns the place's declared sort.
func (p *Place) Sort() *adt.Sort { return p.sort }

// Marking returns a defensive copy of the current marking, in insertion
// order.
func (p *Place) Marking() []*adt.Term {
	return append([]*adt.Term(nil), p.marking...)
}

// NotGroundError reports that a term with variable occurrences was offered
// as a token, violating the requirement that tokens be ground.
type NotGroundError struct {
	Place string
	Term  *adt.Term
}

func (e *NotGroundError) Error() string {
	return fmt.Sprintf("place %s: token %s is not ground", e.Place, e.Term)
}

func (p *Place) checkToken(tok *adt.Term) error {
	if !tok.IsGround() {
		return &NotGroundError{Place: p.name, Term: tok}
	}
	if !adt.SortsEqual(tok.Sort(), p.sort) {
		return &TokenSortError{Place: p.name, Want: p.sort, Got: tok.Sort()}
	}
	return nil
}

// Consume removes one occurrence of each token in tokens, in order. It is
// not transactional: if a later token is absent, earlier removals in the
// same call are not undone. The firing engine relies on verifying that a
// transition is enabled before calling Consume, so in practice a
// well-behaved firing never observes a partial consume.
func (p *Place) Consume(tokens []*adt.Term) error {
	for _, tok := range tokens {
		idx := -1
		for i, held := range p.marking {
			if adt.Equal(held, tok) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &TokenAbsentError{Place: p.name, Token: tok}
		}
		p.marking = append(p.marking[:idx], p.marking[idx+1:]...)
	}
	return nil
}

// Produce appends each token in tokens to the marking, in order. Every
// token's sort must match the place's declared sort.
func (p *Place) Produce(tokens []*adt.Term) error {
	for _, tok := range tokens {
		if !adt.SortsEqual(tok.Sort(), p.sort) {
			return &TokenSortError{Place: p.name, Want: p.sort, Got: tok.Sort()}
		}
	}
	p.marking = append(p.marking, tokens...)
	return nil
}
