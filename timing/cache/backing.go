package cache

// MissHandler is the downstream interface a cache forwards writebacks and
// fills to (spec.md §2 "Cache Chain Driver", §6 "Downstream interface
// produced"). *Cache itself satisfies MissHandler, which is how an L1→L2
// chain is wired; FlatMemory below is a terminal stand-in for real memory
// when a test or the CLI needs the chain to bottom out in something that
// observably counts the traffic it receives.
type MissHandler interface {
	Access(addr uint64, bytes uint32, isStore bool) bool
}

// FlatMemory is a terminal MissHandler: an idealized memory that never
// misses and never forwards further. It exists purely to give the bottom
// of a cache chain somewhere to land and to let tests assert on the
// traffic a chain produces, the same role the teacher's MemoryBacking
// played for its emu.Memory-backed caches.
type FlatMemory struct {
	Reads      uint64
	Writes     uint64
	BytesRead  uint64
	BytesWrite uint64
}

// NewFlatMemory returns an empty FlatMemory.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Access implements MissHandler.
func (m *FlatMemory) Access(addr uint64, bytes uint32, isStore bool) bool {
	_ = addr
	if isStore {
		m.Writes++
		m.BytesWrite += uint64(bytes)
	} else {
		m.Reads++
		m.BytesRead += uint64(bytes)
	}
	return true
}
