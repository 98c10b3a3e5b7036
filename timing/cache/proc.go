package cache

// Proc is the read-only CPU hook Hawkeye consults for the program counter
// responsible for the current access (spec.md §6 "CPU hook", §9
// "back-reference to the CPU: pass a read-only capability ... do not model
// this as shared ownership"). The CPU model itself is an external
// collaborator and out of scope; Proc is the minimal surface this package
// needs from it.
type Proc interface {
	PC() uint64
}

// StaticProc always reports the same PC. Useful for single-PC traces and
// the Hawkeye end-to-end scenario in spec.md §8 (S6), which runs under a
// constant PC.
type StaticProc uint64

// PC implements Proc.
func (p StaticProc) PC() uint64 { return uint64(p) }

// RecordingProc replays a fixed sequence of PCs, one per call to PC,
// holding on the last value once the sequence is exhausted. Hawkeye calls
// PC once in CheckTag and again in Victimize on a miss, so a miss consumes
// two entries; the other policies never call it.
type RecordingProc struct {
	pcs []uint64
	pos int
}

// NewRecordingProc returns a RecordingProc that will yield pcs in order.
func NewRecordingProc(pcs []uint64) *RecordingProc {
	return &RecordingProc{pcs: pcs}
}

// PC implements Proc.
func (p *RecordingProc) PC() uint64 {
	if len(p.pcs) == 0 {
		return 0
	}
	if p.pos >= len(p.pcs) {
		return p.pcs[len(p.pcs)-1]
	}
	v := p.pcs[p.pos]
	p.pos++
	return v
}
