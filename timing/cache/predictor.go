package cache

// predictorSize is the number of 3-bit saturating counters in the
// PC-indexed demand predictor table (spec.md §4.5, "e.g. 8K entries").
const (
	predictorSize    = 8192
	predictorMax     = 7
	predictorThresh  = 4 // get_prediction returns true iff counter >= this
	predictorHashLen = 13
)

// pcPredictor is a small table of 3-bit saturating counters indexed by a
// hash of the PC, used by Hawkeye to label a PC's future accesses as
// cache-friendly (likely to be reused) or cache-averse.
type pcPredictor struct {
	counters [predictorSize]uint8
}

func newPCPredictor() *pcPredictor {
	p := &pcPredictor{}
	for i := range p.counters {
		p.counters[i] = predictorThresh
	}
	return p
}

func (p *pcPredictor) hash(pc uint64) uint64 {
	h := pc ^ (pc >> predictorHashLen) ^ (pc >> (2 * predictorHashLen))
	return h % predictorSize
}

func (p *pcPredictor) increment(pc uint64) {
	i := p.hash(pc)
	if p.counters[i] < predictorMax {
		p.counters[i]++
	}
}

func (p *pcPredictor) decrement(pc uint64) {
	i := p.hash(pc)
	if p.counters[i] > 0 {
		p.counters[i]--
	}
}

func (p *pcPredictor) getPrediction(pc uint64) bool {
	return p.counters[p.hash(pc)] >= predictorThresh
}
