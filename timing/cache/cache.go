// Package cache implements a set-associative cache simulator driven by a
// stream of memory-access events, supporting a family of pluggable
// replacement policies (random, linear, fully-associative, LRU, Hawkeye).
package cache

import (
	"fmt"
	"io"
	"os"
)

// Statistics holds the counters spec.md §6 requires PrintStats to emit.
type Statistics struct {
	BytesRead     uint64
	BytesWritten  uint64
	ReadAccesses  uint64
	WriteAccesses uint64
	ReadMisses    uint64
	WriteMisses   uint64
	Writebacks    uint64
}

// TotalAccesses is read_accesses + write_accesses (spec.md §8 invariant 1).
func (s Statistics) TotalAccesses() uint64 { return s.ReadAccesses + s.WriteAccesses }

// TotalMisses is read_misses + write_misses.
func (s Statistics) TotalMisses() uint64 { return s.ReadMisses + s.WriteMisses }

// Cache is a single level of the simulated hierarchy: a tag array, a
// pluggable replacement Policy, an LFSR, statistics counters, and an
// optional downstream MissHandler (spec.md §2-§5).
type Cache struct {
	geometry

	tags       *tagArray
	policy     Policy
	lfsr       *lfsr
	stats      Statistics
	downstream MissHandler
	proc       Proc
	log        bool
	name       string
}

// New builds a Cache from an already-validated Config.
func New(cfg Config) (*Cache, error) {
	if !isPowerOfTwo(cfg.Sets) {
		return nil, &ConfigError{Input: fmt.Sprint(cfg.Sets), Msg: "sets must be a power of two"}
	}
	if !isPowerOfTwo(cfg.LineSize) || cfg.LineSize < 8 {
		return nil, &ConfigError{Input: fmt.Sprint(cfg.LineSize), Msg: "linesz must be a power of two >= 8"}
	}
	if cfg.Ways <= 0 {
		return nil, &ConfigError{Input: fmt.Sprint(cfg.Ways), Msg: "ways must be positive"}
	}

	g := newGeometry(cfg.Sets, cfg.Ways, cfg.LineSize)
	policy, err := newPolicy(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "cache"
	}

	return &Cache{
		geometry: g,
		tags:     newTagArray(g),
		policy:   policy,
		lfsr:     newLFSR(),
		name:     name,
	}, nil
}

// NewFromString parses spec per spec.md §4.2's "sets:ways:linesz[:policy]"
// grammar and builds a Cache from it.
func NewFromString(spec string) (*Cache, error) {
	cfg, err := ParseConfig(spec)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// Clone deep-copies the tag array and preserves the LFSR register (so the
// clone reproduces the same future eviction sequence as the original),
// with statistics counters and logging reset, per spec.md §4.1 ("copy
// construction must preserve the register") and §4.2 ("copy-construction
// deep-copies the tag array; counters reset to zero"). The policy is
// shared rather than deep-copied, matching the original cache_sim_t's own
// subclasses, which never override copy-construction either.
func (c *Cache) Clone() *Cache {
	return &Cache{
		geometry:   c.geometry,
		tags:       c.tags.clone(),
		policy:     c.policy,
		lfsr:       c.lfsr.cloneState(),
		downstream: c.downstream,
		proc:       c.proc,
		log:        false,
		name:       c.name,
	}
}

// SetMissHandler wires a downstream cache (or any MissHandler) that
// receives synthetic writeback/fill accesses on miss.
func (c *Cache) SetMissHandler(h MissHandler) { c.downstream = h }

// SetLog toggles diagnostic logging (spec.md §4.2 set_log).
func (c *Cache) SetLog(on bool) { c.log = on }

// SetProc wires the read-only CPU hook used by Hawkeye to fetch the PC
// responsible for the current access.
func (c *Cache) SetProc(p Proc) { c.proc = p }

// SetName sets the prefix PrintStats uses for each output line.
func (c *Cache) SetName(name string) { c.name = name }

// Name returns the cache's configured name.
func (c *Cache) Name() string { return c.name }

// Stats returns a copy of the current statistics.
func (c *Cache) Stats() Statistics { return c.stats }

// currentPC returns the PC reported by the wired Proc, or 0 if none is
// wired. Spec.md §7 leaves a missing PC source undefined; callers that
// need Hawkeye semantics are expected to wire a Proc first.
func (c *Cache) currentPC() uint64 {
	if c.proc == nil {
		return 0
	}
	return c.proc.PC()
}

// Access simulates one memory access, returning true on a cache hit
// (spec.md §2, §4.2).
func (c *Cache) Access(addr uint64, bytes uint32, isStore bool) bool {
	way, hit := c.policy.CheckTag(c, addr)

	if isStore {
		c.stats.WriteAccesses++
		c.stats.BytesWritten += uint64(bytes)
	} else {
		c.stats.ReadAccesses++
		c.stats.BytesRead += uint64(bytes)
	}

	if hit {
		if isStore {
			c.markDirty(addr, way)
		}
		return true
	}

	if isStore {
		c.stats.WriteMisses++
	} else {
		c.stats.ReadMisses++
	}
	if c.log {
		kind := "read"
		if isStore {
			kind = "write"
		}
		fmt.Fprintf(os.Stderr, "%s %s miss 0x%x\n", c.name, kind, addr)
	}

	victimWay, evicted := c.policy.Victimize(c, addr)

	if isValid(evicted) && isDirty(evicted) {
		dirtyLineAddr := payload(evicted) << c.offsetBits
		if c.downstream != nil {
			c.downstream.Access(dirtyLineAddr, uint32(c.lineSize), true)
		}
		c.stats.Writebacks++
	}

	if c.downstream != nil {
		c.downstream.Access(c.lineAddr(addr), uint32(c.lineSize), false)
	}

	if isStore {
		c.markDirty(addr, victimWay)
	}

	return false
}

// markDirty sets the DIRTY bit on the tag word occupying way in addr's set.
func (c *Cache) markDirty(addr uint64, way int) {
	setIdx := c.index(addr)
	word := c.tags.get(setIdx, way)
	c.tags.set(setIdx, way, word|dirtyBit)
}

// PrintStats writes the cache's statistics to w, one "<name> <label>:
// <value>" line per spec.md §6, suppressed entirely when the cache saw
// zero accesses.
func (c *Cache) PrintStats(w io.Writer) {
	total := c.stats.TotalAccesses()
	if total == 0 {
		return
	}

	fmt.Fprintf(w, "%s Bytes Read: %d\n", c.name, c.stats.BytesRead)
	fmt.Fprintf(w, "%s Bytes Written: %d\n", c.name, c.stats.BytesWritten)
	fmt.Fprintf(w, "%s Read Accesses: %d\n", c.name, c.stats.ReadAccesses)
	fmt.Fprintf(w, "%s Write Accesses: %d\n", c.name, c.stats.WriteAccesses)
	fmt.Fprintf(w, "%s Read Misses: %d\n", c.name, c.stats.ReadMisses)
	fmt.Fprintf(w, "%s Write Misses: %d\n", c.name, c.stats.WriteMisses)
	fmt.Fprintf(w, "%s Writebacks: %d\n", c.name, c.stats.Writebacks)

	missRate := 100 * float64(c.stats.TotalMisses()) / float64(total)
	fmt.Fprintf(w, "%s Miss Rate: %.3f%%\n", c.name, missRate)
}

// PrintChainStats calls PrintStats on every level of a wired chain, in
// order, so a multi-level run produces one combined report.
func PrintChainStats(w io.Writer, levels []*Cache) {
	for _, c := range levels {
		c.PrintStats(w)
	}
}
