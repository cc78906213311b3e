// Package adt implements the algebraic core of an algebraic Petri net: sorts,
// operations, variables, terms, syntactic matching, and conditional term
// rewriting. See the petri package for the net model built on top of it.
package adt

import "fmt"

// Sort is a named carrier in a many-sorted algebra. Two sorts are equal iff
// their names are equal; use SortsEqual rather than comparing pointers,
// except for the distinguished Generic sort, which is a process-wide
// singleton recognised by identity (see IsGeneric).
type Sort struct {
	name string

	ops     map[string]*Operation
	opOrder []string

	vars     map[string]*Variable
	varOrder []string

	rules []*RewriteRule
}

// NewSort creates a new, empty sort with the given name.
func NewSort(name string) *Sort {
	return &Sort{
		name: name,
		ops:  map[string]*Operation{},
		vars: map[string]*Variable{},
	}
}

// Name returns the sort's name.
func (s *Sort) Name() string { return s.name }

func (s *Sort) String() string { return s.name }

// SortsEqual reports whether a and b have the same name. A nil sort is only
// equal to another nil sort.
func SortsEqual(a, b *Sort) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.name == b.name
}

// generic is the process-wide singleton for the "anysort" wildcard sort.
var generic = &Sort{name: "anysort", ops: map[string]*Operation{}, vars: map[string]*Variable{}}

// GenericSort returns the singleton generic sort. Its presence in a
// signature slot disables sort-equality checks for that slot.
func GenericSort() *Sort { return generic }

// IsGeneric reports whether s is the generic sort singleton. This is an
// identity check, not a name check, per the sort's reserved-value status.
func IsGeneric(s *Sort) bool { return s == generic }

// DeclareOperation creates a new operation named name on s. resultSort
// defaults to s when omitted. It fails if name is already declared on s.
func (s *Sort) DeclareOperation(name string, signature []*Sort, resultSort ...*Sort) (*Operation, error) {
	if s == generic {
		return nil, malformed(fmt.Sprintf("%s.%s", s.name, name), "operations cannot be declared on the generic sort")
	}
	if _, exists := s.ops[name]; exists {
		return nil, malformed(fmt.Sprintf("%s.%s", s.name, name), "operation already declared on this sort")
	}
	result := s
	if len(resultSort) > 0 && resultSort[0] != nil {
		result = resultSort[0]
	}
	sig := append([]*Sort(nil), signature...)
	for i, arg := range sig {
		if arg == nil {
			return nil, malformed(fmt.Sprintf("%s.%s", s.name, name), "signature position %d is not a sort", i)
		}
	}
	op := &Operation{name: name, host: s, signature: sig, result: result}
	s.ops[name] = op
	s.opOrder = append(s.opOrder, name)
	return op, nil
}

// Operation looks up an operation declared on s by name.
func (s *Sort) Operation(name string) (*Operation, bool) {
	op, ok := s.ops[name]
	return op, ok
}

// Operations returns the operations declared on s, in declaration order.
func (s *Sort) Operations() []*Operation {
	out := make([]*Operation, len(s.opOrder))
	for i, name := range s.opOrder {
		out[i] = s.ops[name]
	}
	return out
}

// DeclareVariable creates and returns a fresh variable of sort s bound to
// name. It fails if a variable named name is already declared on s; use
// Variable to look up an existing declaration.
func (s *Sort) DeclareVariable(name string) (*Variable, error) {
	if _, exists := s.vars[name]; exists {
		return nil, malformed(fmt.Sprintf("%s.%s", s.name, name), "variable already declared on this sort")
	}
	v := &Variable{name: name, sort: s}
	s.vars[name] = v
	s.varOrder = append(s.varOrder, name)
	return v, nil
}

// Variable looks up a variable declared on s by name.
func (s *Sort) Variable(name string) (*Variable, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Variables returns the variables declared on s, in declaration order.
func (s *Sort) Variables() []*Variable {
	out := make([]*Variable, len(s.varOrder))
	for i, name := range s.varOrder {
		out[i] = s.vars[name]
	}
	return out
}

// DeclareRewriteRule appends a rewrite rule to s's rule list. No sort
// checking is performed beyond the basic well-formedness already enforced
// by term construction.
func (s *Sort) DeclareRewriteRule(lhs, rhs *Term, conditions ...[2]*Term) (*RewriteRule, error) {
	if lhs == nil || rhs == nil {
		return nil, malformed(s.name, "rewrite rule lhs and rhs must both be terms")
	}
	rule := &RewriteRule{LHS: lhs, RHS: rhs, Conditions: append([][2]*Term(nil), conditions...)}
	s.rules = append(s.rules, rule)
	return rule, nil
}

// RewriteRules returns the rewrite rules declared on s, in declaration
// order.
func (s *Sort) RewriteRules() []*RewriteRule {
	return append([]*RewriteRule(nil), s.rules...)
}

// Operation is a named constructor/function symbol: a signature (argument
// sorts, possibly containing the generic sort) and a result sort.
type Operation struct {
	name      string
	host      *Sort
	signature []*Sort
	result    *Sort
}

func (o *Operation) Name() string       { return o.name }
func (o *Operation) Signature() []*Sort { return append([]*Sort(nil), o.signature...) }
func (o *Operation) ResultSort() *Sort  { return o.result }
func (o *Operation) Arity() int         { return len(o.signature) }
func (o *Operation) HostSort() *Sort    { return o.host }

// OperationsEqual is structural equality on name, signature, and result
// sort, as required by the data model's Operation equality rule.
func OperationsEqual(a, b *Operation) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || !SortsEqual(a.result, b.result) || len(a.signature) != len(b.signature) {
		return false
	}
	for i := range a.signature {
		if !SortsEqual(a.signature[i], b.signature[i]) {
			return false
		}
	}
	return true
}

func (o *Operation) String() string {
	s := o.host.name + "." + o.name + "("
	for i, arg := range o.signature {
		if i > 0 {
			s += ", "
		}
		s += arg.name
	}
	return s + ") -> " + o.result.name
}

// New constructs an application term op(args...), checking arity and sort
// consistency against the signature, with the generic-sort relaxation.
func (o *Operation) New(args ...*Term) (*Term, error) {
	if len(args) != len(o.signature) {
		return nil, malformed(o.name, "expected %d argument(s), got %d", len(o.signature), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			return nil, malformed(o.name, "argument %d is nil", i)
		}
		slot := o.signature[i]
		if !IsGeneric(slot) && !SortsEqual(slot, arg.Sort()) {
			return nil, malformed(o.name, "argument %d has sort %s, expected %s", i, arg.Sort(), slot)
		}
	}
	return &Term{op: o, args: append([]*Term(nil), args...), sort: o.result}, nil
}

// Variable is a named, sort-tagged bindable slot. Variable identity is the
// pointer itself: two variables with equal name and sort but distinct
// declarations are distinct bindable entities, which is why Variable has no
// exported constructor outside Sort.DeclareVariable.
type Variable struct {
	name string
	sort *Sort
}

func (v *Variable) Name() string { return v.name }
func (v *Variable) Sort() *Sort  { return v.sort }

func (v *Variable) String() string { return v.sort.name + "." + v.name }

// New constructs a variable-occurrence term for v.
func (v *Variable) New() *Term {
	return &Term{v: v, sort: v.sort}
}
