package adt

import "fmt"

// RewriteRule is an oriented equation lhs -> rhs, guarded by optional
// equational conditions. Conditions are term pairs interpreted as equality
// obligations: both sides must reduce to structurally equal normal forms
// for the rule to apply.
type RewriteRule struct {
	LHS        *Term
	RHS        *Term
	Conditions [][2]*Term
}

// String renders the rule in the canonical form used for debugging:
//
//	(<c10> == <c11>), (<c20> == <c21>), … => <lhs> -> <rhs>
//
// The condition prefix is omitted entirely when there are no conditions.
func (r *RewriteRule) String() string {
	s := ""
	for _, c := range r.Conditions {
		s += "(" + c[0].String() + " == " + c[1].String() + "), "
	}
	if len(r.Conditions) > 0 {
		s += "=> "
	}
	return s + r.LHS.String() + " -> " + r.RHS.String()
}

// ApplyBinding substitutes every variable occurrence in t with its bound
// term from bindings. A variable absent from bindings is left untouched
// (the open question on unbound right-hand-side variables is resolved in
// favor of the permissive behavior, not a strict error).
func ApplyBinding(t *Term, bindings Binding) *Term {
	if t.v != nil {
		if bound, ok := bindings[t.v]; ok {
			return bound
		}
		return t
	}
	if len(t.args) == 0 {
		return t
	}
	args := make([]*Term, len(t.args))
	changed := false
	for i, a := range t.args {
		args[i] = ApplyBinding(a, bindings)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return t.rebuild(args)
}

// Tracer receives one notification per successful rewrite-rule application,
// letting a caller observe rule firing while debugging a rule set. A nil
// Tracer disables tracing entirely; Reduce and Apply never write to stdout
// on their own.
type Tracer interface {
	Applied(rule *RewriteRule, before, after *Term)
}

// Apply applies r to term once, using the leftmost-innermost strategy:
// arguments are rewritten first, then the rule is matched against the
// rebuilt node. rules is the rule set used to reduce r's conditions to
// normal form; tracer may be nil.
func (r *RewriteRule) Apply(term *Term, rules []*RewriteRule, tracer Tracer) *Term {
	var rebuilt *Term
	if term.v != nil || len(term.args) == 0 {
		rebuilt = term
	} else {
		args := make([]*Term, len(term.args))
		for i, a := range term.args {
			args[i] = r.Apply(a, rules, tracer)
		}
		rebuilt = term.rebuild(args)
	}

	ok, bindings := Match(rebuilt, r.LHS)
	if !ok {
		return rebuilt
	}
	for _, cond := range r.Conditions {
		left := Reduce(ApplyBinding(cond[0], bindings), rules, WithTracer(tracer))
		right := Reduce(ApplyBinding(cond[1], bindings), rules, WithTracer(tracer))
		if !Equal(left, right) {
			return rebuilt
		}
	}
	result := ApplyBinding(r.RHS, bindings)
	if tracer != nil {
		tracer.Applied(r, rebuilt, result)
	}
	return result
}

// ReduceCache is the memoization hook Reduce consults when present. A
// *rewritecache.Cache satisfies this interface structurally; adt does not
// import that package to avoid an import cycle (rewritecache's key helpers
// would otherwise need adt's term types).
type ReduceCache interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{})
}

// reduceConfig holds the options set by ReduceOption values.
type reduceConfig struct {
	maxIterations int // 0 means unbounded
	tracer        Tracer
	cache         ReduceCache
}

// ReduceOption configures Reduce. The zero value of Reduce's behavior (no
// options) is unbounded fixpoint iteration with no tracing, matching the
// spec's default: termination is the rule set's responsibility.
type ReduceOption func(*reduceConfig)

// WithIterationCap bounds the number of fixpoint rounds Reduce will run
// before giving up and returning the term reached so far. The spec permits
// but does not mandate this; n <= 0 means unbounded.
func WithIterationCap(n int) ReduceOption {
	return func(c *reduceConfig) { c.maxIterations = n }
}

// WithTracer attaches a Tracer that observes every rule application made
// while reducing.
func WithTracer(t Tracer) ReduceOption {
	return func(c *reduceConfig) { c.tracer = t }
}

// WithCache attaches a memoization cache (see package rewritecache). Reduce
// is a pure function of (term, rules), so a cache hit on an earlier call
// with an equal term and the same rule set is returned verbatim.
func WithCache(c ReduceCache) ReduceOption {
	return func(cfg *reduceConfig) { cfg.cache = c }
}

func reduceCacheKey(term *Term, rules []*RewriteRule) string {
	var rulesetID *RewriteRule
	if len(rules) > 0 {
		rulesetID = rules[0]
	}
	return fmt.Sprintf("%p:%d:%s", rulesetID, len(rules), term.String())
}

// Reduce applies every rule in rules, in order, to term, repeating until two
// successive rounds produce a structurally equal term (a fixpoint, i.e. a
// normal form with respect to rules).
func Reduce(term *Term, rules []*RewriteRule, opts ...ReduceOption) *Term {
	cfg := reduceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var key string
	if cfg.cache != nil {
		key = reduceCacheKey(term, rules)
		if cached, ok := cfg.cache.Get(key); ok {
			return cached.(*Term)
		}
	}

	current := term
	for round := 0; cfg.maxIterations <= 0 || round < cfg.maxIterations; round++ {
		next := current
		for _, rule := range rules {
			next = rule.Apply(next, rules, cfg.tracer)
		}
		if Equal(next, current) {
			if cfg.cache != nil {
				cfg.cache.Put(key, next)
			}
			return next
		}
		current = next
	}
	if cfg.cache != nil {
		cfg.cache.Put(key, current)
	}
	return current
}
