package adt

import "strings"

// Term is a tree built from operation applications and variable occurrences.
// It is a tagged variant rather than an interface hierarchy, so head-kind
// dispatch never needs a runtime type assertion: exactly one of op or v is
// set, never both.
type Term struct {
	op   *Operation // set iff this node is an application
	args []*Term    // arguments of an application node, empty for a variable

	v *Variable // set iff this node is a variable occurrence

	sort *Sort
}

// IsVariable reports whether t's head is a variable occurrence.
func (t *Term) IsVariable() bool { return t.v != nil }

// Operation returns the term's head operation, or nil if t is a variable
// occurrence.
func (t *Term) Operation() *Operation { return t.op }

// Variable returns the term's head variable, or nil if t is an application.
func (t *Term) Variable() *Variable { return t.v }

// Args returns the term's arguments. Empty for both constants and variable
// occurrences.
func (t *Term) Args() []*Term { return t.args }

// Sort returns the sort of the term: the result sort of its head operation,
// or the sort of its head variable.
func (t *Term) Sort() *Sort { return t.sort }

// IsGround reports whether t contains no variable occurrences, the
// condition every token deposited in a place must satisfy.
func (t *Term) IsGround() bool {
	if t.v != nil {
		return false
	}
	for _, a := range t.args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

// Equal is structural equality: same head, same arguments in order. Two
// distinct constructions satisfying this are interchangeable.
func Equal(a, b *Term) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.v != nil || b.v != nil {
		return a.v == b.v
	}
	if !OperationsEqual(a.op, b.op) || len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !Equal(a.args[i], b.args[i]) {
			return false
		}
	}
	return true
}

// Equal is the method form of the package-level Equal, letting go-cmp
// compare terms without needing cmpopts.IgnoreUnexported: cmp detects and
// calls an Equal(T) bool method automatically.
func (t *Term) Equal(other *Term) bool { return Equal(t, other) }

// String renders t in the canonical term-string form used by the
// visualisation adapter and by rule/debug output:
//
//	variable occurrence:        <sort-name>.<variable-name>
//	application, no args:       <result-sort-name>.<op-name>()
//	application, with args:     <result-sort-name>.<op-name>(<arg1>, <arg2>, …)
func (t *Term) String() string {
	if t.v != nil {
		return t.v.String()
	}
	var b strings.Builder
	b.WriteString(t.sort.name)
	b.WriteByte('.')
	b.WriteString(t.op.name)
	b.WriteByte('(')
	for i, arg := range t.args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// rebuild constructs a new application node with the same head as t but
// different arguments. t must be an application.
func (t *Term) rebuild(args []*Term) *Term {
	return &Term{op: t.op, args: args, sort: t.sort}
}
