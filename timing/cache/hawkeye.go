package cache

// addrInfo is the sampler's per-address bookkeeping entry (spec.md §3,
// ADDR_INFO).
type addrInfo struct {
	lastQuanta int // raw perset timer value (mod timerSize) at last sighting
	pc         uint64
	prediction bool
	lru        int
}

// hawkeyeState holds all per-cache Hawkeye bookkeeping (spec.md §3).
type hawkeyeState struct {
	rrpv        [][]uint8
	signatures  [][]uint64
	persetTimer []int
	persetOpt   []*optgen
	sampler     []map[uint64]*addrInfo
	predictor   *pcPredictor
}

func newHawkeyeState(sets, ways int) *hawkeyeState {
	st := &hawkeyeState{
		rrpv:        make([][]uint8, sets),
		signatures:  make([][]uint64, sets),
		persetTimer: make([]int, sets),
		persetOpt:   make([]*optgen, sets),
		sampler:     make([]map[uint64]*addrInfo, sets),
		predictor:   newPCPredictor(),
	}
	for s := 0; s < sets; s++ {
		st.rrpv[s] = make([]uint8, ways)
		for w := range st.rrpv[s] {
			st.rrpv[s][w] = maxRRPV
		}
		st.signatures[s] = make([]uint64, ways)
		st.persetOpt[s] = newOptgen(ways)
		st.sampler[s] = make(map[uint64]*addrInfo, ways)
	}
	return st
}

// touch performs the sampler's move-to-front update: every other entry
// still ahead of oldLRU is aged by one, then the caller sets the touched
// entry's own lru to 0. Used identically for a resampled hit and for a
// brand new entry (whose placeholder oldLRU is ways-1, the back of the
// queue, per spec.md §4.6 step 3) — in both cases the same generic
// move-to-front rule applies.
func (st *hawkeyeState) touch(setIdx int, tag uint64, oldLRU int) {
	for t, info := range st.sampler[setIdx] {
		if t == tag {
			continue
		}
		if info.lru < oldLRU {
			info.lru++
		}
	}
}

func (st *hawkeyeState) evictLRUMost(setIdx int) {
	var victimTag uint64
	maxLRU := -1
	for t, info := range st.sampler[setIdx] {
		if info.lru > maxLRU {
			maxLRU = info.lru
			victimTag = t
		}
	}
	delete(st.sampler[setIdx], victimTag)
}

// wrapAdjust reports whether the delta between lastRaw and currRaw
// (adjusting for the raw per-set timer's mod-timerSize wraparound) is too
// large for the OPTgen ring buffer to represent, per spec.md §4.4's
// wrap-detection rule. The delta itself is not returned.
func wrapAdjust(currRaw, lastRaw int) (wrapped bool) {
	adjustedCurr := currRaw
	if currRaw < lastRaw {
		adjustedCurr += timerSize
	}
	return adjustedCurr-lastRaw > optgenVectorSize
}

// hawkeyePolicy implements spec.md §4.6.
type hawkeyePolicy struct {
	state *hawkeyeState
}

func newHawkeyePolicy(sets, ways int) *hawkeyePolicy {
	return &hawkeyePolicy{state: newHawkeyeState(sets, ways)}
}

func (*hawkeyePolicy) Name() string { return "hawkeye" }

func (p *hawkeyePolicy) CheckTag(c *Cache, addr uint64) (int, bool) {
	st := p.state
	setIdx := c.index(addr)
	samplerTag := c.tagValue(addr) | validBit
	currRaw := st.persetTimer[setIdx]
	currQuanta := currRaw % optgenVectorSize
	pc := c.currentPC()

	if info, ok := st.sampler[setIdx][samplerTag]; ok {
		if !wrapAdjust(currRaw, info.lastQuanta) {
			lastQuantaMod := info.lastQuanta % optgenVectorSize
			if st.persetOpt[setIdx].shouldCache(currQuanta, lastQuantaMod) {
				st.predictor.increment(info.pc)
			} else {
				st.predictor.decrement(info.pc)
			}
		} else {
			st.predictor.decrement(info.pc)
		}
		st.persetOpt[setIdx].addAccess(currQuanta)

		st.touch(setIdx, samplerTag, info.lru)
		info.lru = 0
		info.lastQuanta = currRaw
		info.pc = pc
	} else {
		if len(st.sampler[setIdx]) >= c.ways {
			st.evictLRUMost(setIdx)
		}
		st.persetOpt[setIdx].addAccess(currQuanta)

		st.touch(setIdx, samplerTag, c.ways-1)
		st.sampler[setIdx][samplerTag] = &addrInfo{
			lastQuanta: currRaw,
			pc:         pc,
			lru:        0,
		}
	}

	newPrediction := st.predictor.getPrediction(pc)
	st.sampler[setIdx][samplerTag].prediction = newPrediction

	st.persetTimer[setIdx] = (currRaw + 1) % timerSize

	way, hit := baseCheckTag(c, addr)
	if hit {
		st.signatures[setIdx][way] = pc
		if newPrediction {
			st.rrpv[setIdx][way] = 0
		} else {
			st.rrpv[setIdx][way] = maxRRPV
		}
	}
	return way, hit
}

func (p *hawkeyePolicy) Victimize(c *Cache, addr uint64) (int, uint64) {
	st := p.state
	setIdx := c.index(addr)
	pc := c.currentPC()

	victimWay := -1
	for w := 0; w < c.ways; w++ {
		if st.rrpv[setIdx][w] == maxRRPV {
			victimWay = w
			break
		}
	}

	averseVictim := victimWay >= 0
	if !averseVictim {
		victimWay = 0
		best := st.rrpv[setIdx][0]
		for w := 1; w < c.ways; w++ {
			if st.rrpv[setIdx][w] >= best {
				best = st.rrpv[setIdx][w]
				victimWay = w
			}
		}
	}

	evicted := c.tags.get(setIdx, victimWay)
	preSignature := st.signatures[setIdx][victimWay]

	c.tags.set(setIdx, victimWay, c.tagValue(addr)|validBit)

	newPrediction := st.predictor.getPrediction(pc)
	st.signatures[setIdx][victimWay] = pc

	if newPrediction {
		st.rrpv[setIdx][victimWay] = 0
		if !st.anyWayAt(setIdx, c.ways, maxRRPV-1) {
			st.ageFriendly(setIdx, c.ways)
		}
		st.rrpv[setIdx][victimWay] = 0
	} else {
		st.rrpv[setIdx][victimWay] = maxRRPV
	}

	// Only evicting a friendly line trains the predictor negatively; taking
	// an already-averse way does not.
	if !averseVictim {
		st.predictor.decrement(preSignature)
	}

	return victimWay, evicted
}

// anyWayAt reports whether any way in the set currently holds the given
// RRPV value (cachesim.cc:266-269's saturation check, which scans every
// way unconditionally).
func (st *hawkeyeState) anyWayAt(setIdx, ways int, value uint8) bool {
	for w := 0; w < ways; w++ {
		if st.rrpv[setIdx][w] == value {
			return true
		}
	}
	return false
}

// ageFriendly increments every way not yet at the saturation threshold
// (cachesim.cc:271-276: "age all the cache-friendly lines" is every way
// with rrpv < MAX_RRPV-1, not just the ways sitting at exactly 0 — a way
// aged once from 0 must still be able to climb through 1..6 on later
// evictions).
func (st *hawkeyeState) ageFriendly(setIdx, ways int) {
	for w := 0; w < ways; w++ {
		if st.rrpv[setIdx][w] < maxRRPV-1 {
			st.rrpv[setIdx][w]++
		}
	}
}
