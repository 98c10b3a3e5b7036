// Package trace provides a minimal stand-in for the out-of-scope
// memory-tracer dispatch layer: just enough to parse a text trace file and
// drive the cache simulator from it.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Event is one memory access read from a trace (spec.md §6 "Event
// interface consumed from the memory-tracer").
type Event struct {
	Addr    uint64
	Bytes   uint32
	IsStore bool
	PC      uint64
}

// Reader parses a whitespace-delimited text trace, one event per line:
//
//	<addr> <bytes> R|W [pc]
//
// Addr, bytes, and pc accept either decimal or 0x-prefixed hex. Blank
// lines and lines starting with # are skipped.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader wraps r in a trace Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next event in the trace. ok is false once the trace is
// exhausted; err is non-nil if a line could not be parsed or the
// underlying reader failed.
func (r *Reader) Next() (ev Event, ok bool, err error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 3 {
			return Event{}, false, fmt.Errorf("trace line %d: expected at least 3 fields, got %d", r.line, len(fields))
		}

		addr, err := strconv.ParseUint(fields[0], 0, 64)
		if err != nil {
			return Event{}, false, fmt.Errorf("trace line %d: bad address %q: %w", r.line, fields[0], err)
		}
		bytes, err := strconv.ParseUint(fields[1], 0, 32)
		if err != nil {
			return Event{}, false, fmt.Errorf("trace line %d: bad byte count %q: %w", r.line, fields[1], err)
		}

		var isStore bool
		switch strings.ToUpper(fields[2]) {
		case "R":
			isStore = false
		case "W":
			isStore = true
		default:
			return Event{}, false, fmt.Errorf("trace line %d: expected R or W, got %q", r.line, fields[2])
		}

		var pc uint64
		if len(fields) >= 4 {
			pc, err = strconv.ParseUint(fields[3], 0, 64)
			if err != nil {
				return Event{}, false, fmt.Errorf("trace line %d: bad pc %q: %w", r.line, fields[3], err)
			}
		}

		return Event{Addr: addr, Bytes: uint32(bytes), IsStore: isStore, PC: pc}, true, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, false, err
	}
	return Event{}, false, nil
}
