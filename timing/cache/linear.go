package cache

// linearPolicy evicts ways in round-robin order per set (spec.md §4.7).
type linearPolicy struct {
	cursor []int // per-set next way to evict
}

func newLinearPolicy(sets int) *linearPolicy {
	return &linearPolicy{cursor: make([]int, sets)}
}

func (*linearPolicy) Name() string { return "linear" }

func (*linearPolicy) CheckTag(c *Cache, addr uint64) (int, bool) {
	return baseCheckTag(c, addr)
}

func (p *linearPolicy) Victimize(c *Cache, addr uint64) (int, uint64) {
	setIdx := c.index(addr)
	way := p.cursor[setIdx]
	p.cursor[setIdx] = (way + 1) % c.ways

	evicted := c.tags.get(setIdx, way)
	c.tags.set(setIdx, way, c.tagValue(addr)|validBit)
	return way, evicted
}
