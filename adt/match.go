package adt

// Binding maps a Variable to the Term it is bound to during a match. Per the
// open question on symmetric variable binding, a Binding produced by Match
// is meant to drive single-sided substitution (ApplyBinding on one of the
// two matched terms) — it is not a bijective unifier and callers should not
// rely on it being one.
type Binding map[*Variable]*Term

// Clone returns a shallow copy of b.
func (b Binding) Clone() Binding {
	out := make(Binding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Match decides whether a and b match, returning the variable binding that
// witnesses the match. On failure the returned binding is empty.
//
// Top-level filtering rejects obvious sort mismatches before the recursive
// descent: a non-generic sort mismatch fails immediately, and a
// generic-sorted application head must name an operation the other side's
// sort actually declares.
func Match(a, b *Term) (bool, Binding) {
	if !IsGeneric(a.sort) && !IsGeneric(b.sort) && !SortsEqual(a.sort, b.sort) {
		return false, Binding{}
	}
	if IsGeneric(a.sort) && a.op != nil {
		if b.op == nil {
			return false, Binding{}
		}
		if _, ok := b.sort.Operation(a.op.name); !ok {
			return false, Binding{}
		}
	}
	if IsGeneric(b.sort) && b.op != nil {
		if a.op == nil {
			return false, Binding{}
		}
		if _, ok := a.sort.Operation(b.op.name); !ok {
			return false, Binding{}
		}
	}

	bindings := Binding{}
	if !compare(a, b, bindings) {
		return false, Binding{}
	}
	return true, bindings
}

func compare(lhs, rhs *Term, bindings Binding) bool {
	switch {
	case lhs.v != nil && rhs.v != nil:
		if existing, ok := bindings[lhs.v]; ok && !Equal(existing, rhs) {
			return false
		}
		if existing, ok := bindings[rhs.v]; ok && !Equal(existing, lhs) {
			return false
		}
		bindings[lhs.v] = rhs
		bindings[rhs.v] = lhs
		return true

	case lhs.v != nil && rhs.v == nil:
		if existing, ok := bindings[lhs.v]; ok && !Equal(existing, rhs) {
			return false
		}
		bindings[lhs.v] = rhs
		return true

	case lhs.v == nil && rhs.v != nil:
		if existing, ok := bindings[rhs.v]; ok && !Equal(existing, lhs) {
			return false
		}
		bindings[rhs.v] = lhs
		return true

	default: // both applications
		if !OperationsEqual(lhs.op, rhs.op) {
			return false
		}
		for i := range lhs.args {
			if !compare(lhs.args[i], rhs.args[i], bindings) {
				return false
			}
		}
		return true
	}
}
