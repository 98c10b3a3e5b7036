package cache

import "github.com/hashicorp/golang-lru/v2/simplelru"

// lruPolicy implements the classic LRU variant that spec.md §9 declares
// but leaves unconstructed ("a stub to be filled by the implementer").
// Each set gets its own move-to-front queue, keyed by tag payload and
// valued by way index, backed by hashicorp/golang-lru's simplelru.
type lruPolicy struct {
	perSet []*simplelru.LRU[uint64, int]
	ways   int
}

func newLRUPolicy(sets, ways int) *lruPolicy {
	p := &lruPolicy{perSet: make([]*simplelru.LRU[uint64, int], sets), ways: ways}
	for i := range p.perSet {
		l, _ := simplelru.NewLRU[uint64, int](ways, nil)
		p.perSet[i] = l
	}
	return p
}

func (*lruPolicy) Name() string { return "lru" }

func (p *lruPolicy) CheckTag(c *Cache, addr uint64) (int, bool) {
	setIdx := c.index(addr)
	tag := c.tagValue(addr)
	way, ok := p.perSet[setIdx].Get(tag)
	if !ok {
		return -1, false
	}
	return way, true
}

func (p *lruPolicy) Victimize(c *Cache, addr uint64) (int, uint64) {
	setIdx := c.index(addr)
	q := p.perSet[setIdx]
	newTag := c.tagValue(addr)

	var way int
	var evicted uint64
	if q.Len() < p.ways {
		way = q.Len()
		evicted = 0
	} else {
		oldTag, oldWay, _ := q.RemoveOldest()
		_ = oldTag
		way = oldWay
		evicted = c.tags.get(setIdx, way)
	}

	q.Add(newTag, way)
	c.tags.set(setIdx, way, newTag|validBit)
	return way, evicted
}
