package cache

// Policy is the uniform replacement-policy interface every variant
// implements. The generic access algorithm in cache.go is a free function
// parameterized by Policy rather than a base class; Policy is the sum type
// spec.md §9 calls for.
type Policy interface {
	// Name identifies the policy for diagnostics. PrintStats does not
	// print it.
	Name() string

	// CheckTag looks up addr, returning the way it was found at and
	// whether it was a hit. Some policies (Hawkeye) perform bookkeeping
	// side effects here beyond the plain lookup.
	CheckTag(c *Cache, addr uint64) (way int, hit bool)

	// Victimize selects a way to evict for addr, installs a clean VALID
	// tag for the new line in that way, and returns the way index plus
	// the tag word that occupied it beforehand (0 if it was empty).
	Victimize(c *Cache, addr uint64) (way int, evicted uint64)
}

// baseCheckTag performs the plain linear scan of a set's ways looking for
// a tag match. Comparison masks out the DIRTY bit per spec.md §3.
func baseCheckTag(c *Cache, addr uint64) (way int, hit bool) {
	setIdx := c.index(addr)
	want := c.tagValue(addr) | validBit
	for w := 0; w < c.ways; w++ {
		word := c.tags.get(setIdx, w)
		if word&^dirtyBit == want {
			return w, true
		}
	}
	return -1, false
}

// randomPolicy evicts a uniformly random way within the addressed set,
// chosen via the cache's LFSR.
type randomPolicy struct{}

func (randomPolicy) Name() string { return "random" }

func (randomPolicy) CheckTag(c *Cache, addr uint64) (int, bool) {
	return baseCheckTag(c, addr)
}

func (randomPolicy) Victimize(c *Cache, addr uint64) (int, uint64) {
	setIdx := c.index(addr)
	way := int(c.lfsr.next() % uint32(c.ways))
	evicted := c.tags.get(setIdx, way)
	c.tags.set(setIdx, way, c.tagValue(addr)|validBit)
	return way, evicted
}
