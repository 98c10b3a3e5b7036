package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Config holds a cache's geometry and policy selection, the parsed form of
// the config string grammar in spec.md §4.2/§6.
type Config struct {
	Sets     int
	Ways     int
	LineSize int
	Policy   string // "", "random", "linear", "fully-associative", "lru", "hawkeye"
	Name     string // used as the line prefix in PrintStats
}

// ConfigError reports a config string that failed to parse or validate.
// The CLI front end turns this into the fixed usage banner + exit(1)
// described in spec.md §4.2 ("Invalid config is a fatal error with a
// usage message") and §7.
type ConfigError struct {
	Input string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid cache config %q: %s", e.Input, e.Msg)
}

// usagePolicies enumerates the config string's explicit policy choices.
const usagePolicies = "linear, hawkeye"

// ParseConfig parses "sets:ways:linesz[:policy]" per spec.md §4.2 and
// picks a concrete policy name when none is given: fully-associative when
// ways > 4 && sets == 1, else random.
func ParseConfig(spec string) (Config, error) {
	fields := strings.Split(spec, ":")
	if len(fields) < 3 || len(fields) > 4 {
		return Config{}, &ConfigError{Input: spec, Msg: "expected sets:ways:linesz[:policy]"}
	}

	sets, err := strconv.Atoi(fields[0])
	if err != nil || sets <= 0 {
		return Config{}, &ConfigError{Input: spec, Msg: "sets must be a positive integer"}
	}
	ways, err := strconv.Atoi(fields[1])
	if err != nil || ways <= 0 {
		return Config{}, &ConfigError{Input: spec, Msg: "ways must be a positive integer"}
	}
	lineSize, err := strconv.Atoi(fields[2])
	if err != nil || lineSize <= 0 {
		return Config{}, &ConfigError{Input: spec, Msg: "linesz must be a positive integer"}
	}

	if !isPowerOfTwo(sets) {
		return Config{}, &ConfigError{Input: spec, Msg: "sets must be a power of two"}
	}
	if !isPowerOfTwo(lineSize) || lineSize < 8 {
		return Config{}, &ConfigError{Input: spec, Msg: "linesz must be a power of two >= 8"}
	}

	policy := ""
	if len(fields) == 4 {
		policy = fields[3]
		switch policy {
		case "linear", "hawkeye":
		default:
			return Config{}, &ConfigError{Input: spec, Msg: "policy must be one of: " + usagePolicies}
		}
	}

	if policy == "" {
		if ways > 4 && sets == 1 {
			policy = "fully-associative"
		} else {
			policy = "random"
		}
	}

	return Config{Sets: sets, Ways: ways, LineSize: lineSize, Policy: policy}, nil
}

// newPolicy builds the Policy implementation named by cfg.Policy.
func newPolicy(cfg Config) (Policy, error) {
	switch cfg.Policy {
	case "", "random":
		return randomPolicy{}, nil
	case "linear":
		return newLinearPolicy(cfg.Sets), nil
	case "fully-associative":
		return newFullyAssocPolicy(), nil
	case "lru":
		return newLRUPolicy(cfg.Sets, cfg.Ways), nil
	case "hawkeye":
		return newHawkeyePolicy(cfg.Sets, cfg.Ways), nil
	default:
		return nil, &ConfigError{Input: cfg.Policy, Msg: "unknown policy"}
	}
}
