// Package rewritecache memoizes adt.Reduce results. Reduce is a pure
// function of (term, rule set): the same term reduced against the same
// rules always yields the same normal form, so repeated reductions of
// shared condition subterms during a long firing sequence can be served
// from a cache instead of re-run. This mirrors, at a fraction of the size,
// the teacher's tiered hit/miss-tracked cache in
// internal/cache/hierarchical_cache.go.
//
// Cache implements adt.ReduceCache structurally; pass it to adt.Reduce via
// adt.WithCache.
package rewritecache

// Cache memoizes Reduce results keyed by the opaque string adt.Reduce
// derives from the term and rule set. It is not safe for concurrent use,
// matching the single-threaded firing model the rest of the library
// assumes.
type Cache struct {
	entries      map[string]interface{}
	hits, misses int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: map[string]interface{}{}}
}

// Get returns the cached value for key, if present, and records a hit or a
// miss for Stats. The caller (adt.Reduce) is responsible for the concrete
// type stored under value; Cache itself is type-agnostic so it can sit
// behind adt.ReduceCache without importing adt.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Put records value for key.
func (c *Cache) Put(key string, value interface{}) {
	c.entries[key] = value
}

// Stats reports cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Len reports the number of memoized entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
