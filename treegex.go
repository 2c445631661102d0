// Package treegex provides regular-expression style pattern matching over
// heterogeneous trees.
//
// A tree is a nested ordered sequence (see the tree package): elements
// are scalars of arbitrary type or sequences of further elements.
// Patterns are built from a small combinator algebra — literals,
// alternation, optional and repeated sub-patterns with greedy and
// non-greedy variants, grouping, naming, back-references, predicates,
// wildcards and an end anchor — compiled to a linear bytecode and
// executed by a backtracking virtual machine against every subtree.
//
// Basic usage:
//
//	// find the run 3, 4, 5 anywhere in the tree
//	p := treegex.MustCompile(3, 4, 5)
//	root := tree.NewSeq(1, 2, 3, 4, 5, 6)
//	p.Search(root, func(m *treegex.Match) int {
//	    fmt.Println(m.Start(), m.End()) // 2 5
//	    return -1
//	})
//
// Named groups and structural edits:
//
//	// collapse every doubled element to a single one
//	p := treegex.MustCompile(treegex.Named("x"), treegex.Ref("x"))
//	p.Search(root, func(m *treegex.Match) int {
//	    m.Replace(m.Group("x").Content())
//	    return m.Start() // rescan the spliced position
//	})
//
// The matched tree is the single mutable resource: the callback may edit
// it through Match.Replace and Match.Swap, and the search driver re-reads
// the current contents when it continues. Match objects are invalidated
// by mutation of their backing sequence and must not be retained past the
// callback.
package treegex

import (
	"github.com/coregx/treegex/expr"
	"github.com/coregx/treegex/prefilter"
	"github.com/coregx/treegex/tree"
	"github.com/coregx/treegex/vm"
)

// Pattern is a compiled tree pattern.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines; each search builds its own machine state.
type Pattern struct {
	prog   *vm.Program
	filter *prefilter.Filter
	config Config
	names  []string // group id -> name
}

// Compile compiles a pattern from the given elements. The arguments form
// an implicit group: they must match in order. Raw scalars are literals,
// a []any is a sub-sequence pattern, and combinator values (Or, Maybe,
// Named, ...) describe structure.
//
// Example:
//
//	p, err := treegex.Compile(2, treegex.Whatever(), 4)
func Compile(pattern ...any) (*Pattern, error) {
	return CompileWithConfig(DefaultConfig(), pattern...)
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := treegex.DefaultConfig()
//	config.MaxSteps = 1 << 16
//	p, err := treegex.CompileWithConfig(config, treegex.More("a"))
func CompileWithConfig(config Config, pattern ...any) (*Pattern, error) {
	nodes := expr.LiftAll(pattern)
	prog, err := vm.Compile(nodes...)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		prog:   prog,
		config: config,
		names:  prog.GroupNames(),
	}
	if config.EnablePrefilter {
		p.filter = prefilter.FromPattern(nodes, config.Prefilter)
	}
	return p, nil
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var doubled = treegex.MustCompile(treegex.Named("x"), treegex.Ref("x"))
func MustCompile(pattern ...any) *Pattern {
	p, err := Compile(pattern...)
	if err != nil {
		panic("treegex: Compile: " + err.Error())
	}
	return p
}

// Program returns the compiled instruction stream. Useful for
// diagnostics via Program.Disassemble.
func (p *Pattern) Program() *vm.Program {
	return p.prog
}

// IsMatch reports whether the pattern matches anywhere in the tree.
// It stops at the first hit.
func (p *Pattern) IsMatch(root *tree.Seq) bool {
	found := false
	_ = p.search(root, func(*Match) (int, bool) {
		found = true
		return 0, true
	})
	return found
}

// Find returns the first match in pre-order, or nil if there is none.
func (p *Pattern) Find(root *tree.Seq) *Match {
	var first *Match
	_ = p.search(root, func(m *Match) (int, bool) {
		first = m
		return 0, true
	})
	return first
}

// FindAll returns all matches in search order. If n > 0 it returns at
// most n matches; if n == 0 it returns nil; if n < 0 it returns all of
// them.
func (p *Pattern) FindAll(root *tree.Seq, n int) []*Match {
	if n == 0 {
		return nil
	}
	var matches []*Match
	_ = p.search(root, func(m *Match) (int, bool) {
		matches = append(matches, m)
		return -1, n > 0 && len(matches) >= n
	})
	return matches
}

// Count returns the number of non-overlapping matches in the tree.
// If n > 0 it counts at most n matches; if n == 0 it returns 0; if n < 0
// it counts all of them.
func (p *Pattern) Count(root *tree.Seq, n int) int {
	if n == 0 {
		return 0
	}
	count := 0
	_ = p.search(root, func(*Match) (int, bool) {
		count++
		return -1, n > 0 && count >= n
	})
	return count
}
