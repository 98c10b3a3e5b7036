// Command cachesim drives the cache package against a text trace, printing
// statistics for each configured level.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/cachesim/timing/cache"
	"github.com/sarchlab/cachesim/trace"
)

// levelFlags collects repeated -level flags in the order given on the
// command line; the first is closest to the CPU.
type levelFlags []string

func (l *levelFlags) String() string { return fmt.Sprint([]string(*l)) }

func (l *levelFlags) Set(value string) error {
	*l = append(*l, value)
	return nil
}

var (
	levels    levelFlags
	tracePath = flag.String("trace", "", "trace file to read (default: stdin)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: cachesim -level sets:ways:linesz[:policy] [-level ...] [-trace FILE]\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Var(&levels, "level", "cache level spec sets:ways:linesz[:policy], repeatable, first is closest to the CPU")
	flag.Parse()

	if len(levels) == 0 {
		usage()
		os.Exit(1)
	}

	caches := make([]*cache.Cache, len(levels))
	for i, spec := range levels {
		c, err := cache.NewFromString(spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			usage()
			os.Exit(1)
		}
		c.SetName(fmt.Sprintf("L%d", i+1))
		caches[i] = c
	}
	for i := 0; i < len(caches)-1; i++ {
		caches[i].SetMissHandler(caches[i+1])
	}

	proc := &currentProc{}
	for _, c := range caches {
		c.SetProc(proc)
	}

	in := os.Stdin
	if *tracePath != "" {
		f, err := os.Open(*tracePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening trace: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	reader := trace.NewReader(in)
	for {
		ev, ok, err := reader.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading trace: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			break
		}
		proc.pc = ev.PC
		caches[0].Access(ev.Addr, ev.Bytes, ev.IsStore)
	}

	cache.PrintChainStats(os.Stdout, caches)
}

// currentProc is the cache.Proc wired into every level; its PC field is
// updated to the trace event's PC before each access.
type currentProc struct {
	pc uint64
}

func (p *currentProc) PC() uint64 { return p.pc }
