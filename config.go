package treegex

import (
	"github.com/coregx/treegex/prefilter"
)

// Config controls compilation and search behavior.
//
// Users customize a copy of DefaultConfig and pass it to
// CompileWithConfig.
type Config struct {
	// MaxSteps bounds the number of VM instructions a single match
	// attempt may execute. A pathological pattern (deep alternation over
	// a large sequence) fails the whole search with ErrTooComplex once
	// the budget is exhausted, instead of running away. Zero disables
	// the bound. Default: 1 << 20.
	MaxSteps int

	// EnablePrefilter turns on required-literal extraction. When the
	// pattern pins down string literals, Search scans the tree's string
	// scalars with an Aho-Corasick automaton and skips the VM entirely
	// for trees that cannot match. Default: true.
	EnablePrefilter bool

	// Prefilter bounds literal extraction. See prefilter.Config.
	Prefilter prefilter.Config
}

// DefaultConfig returns the default configuration for compilation.
//
// Example:
//
//	config := treegex.DefaultConfig()
//	config.MaxSteps = 0 // unbounded backtracking
//	p, err := treegex.CompileWithConfig(config, 1, treegex.Whatever(), 2)
func DefaultConfig() Config {
	return Config{
		MaxSteps:        1 << 20,
		EnablePrefilter: true,
		Prefilter:       prefilter.DefaultConfig(),
	}
}
