// Package prefilter provides fast rejection of trees that cannot match a
// pattern.
//
// The extractor walks an expression tree and collects a set of required
// string literals: for any match to exist, at least one member of the set
// must occur among the tree's string scalars. The set is compiled into an
// Aho-Corasick automaton; before running the full engine over a tree, a
// single scan of its string scalars decides whether a match is possible
// at all.
//
// Prefilters are approximate in one direction only: a filter may pass a
// tree that turns out not to match, but it never rejects a tree that
// would. Patterns without required string literals get no filter.
package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/treegex/expr"
	"github.com/coregx/treegex/tree"
)

// Config bounds literal extraction.
//
// The limits prevent excessive extraction from wide alternations and keep
// automaton construction cheap:
//   - MaxLiterals: caps the size of the required set, so an alternation
//     like Or(a, b, c, ...) with many string alternatives stays bounded.
//   - MaxLiteralLen: skips very long literals that would bloat the
//     automaton without improving selectivity.
type Config struct {
	// MaxLiterals limits the number of literals in the required set.
	// An alternation whose union would exceed it contributes no literals.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each extracted literal.
	// Longer string literals are treated as unusable. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Filter is a compiled rejection test for one pattern.
type Filter struct {
	auto     *ahocorasick.Automaton
	literals []string
}

// New builds a filter from a required-literal set. At least one literal
// is required; building can fail if the automaton rejects the input.
func New(literals []string) (*Filter, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(literals))
	copy(out, literals)
	return &Filter{auto: auto, literals: out}, nil
}

// FromPattern extracts a required-literal set from the pattern and builds
// a filter for it. It returns nil when the pattern has no usable required
// literals or the automaton cannot be built; a nil *Filter is a valid
// always-pass filter.
func FromPattern(nodes []*expr.Node, cfg Config) *Filter {
	lits := Extract(nodes, cfg)
	if len(lits) == 0 {
		return nil
	}
	f, err := New(lits)
	if err != nil {
		return nil
	}
	return f
}

// Literals returns the required-literal set. The returned slice is a copy.
func (f *Filter) Literals() []string {
	out := make([]string, len(f.literals))
	copy(out, f.literals)
	return out
}

// Possible reports whether root could contain a match. It scans every
// string scalar in the tree against the automaton; no hit anywhere means
// no match is possible. A nil filter always reports true.
func (f *Filter) Possible(root *tree.Seq) bool {
	if f == nil {
		return true
	}
	return f.scan(root)
}

func (f *Filter) scan(node *tree.Seq) bool {
	for i := 0; i < node.Len(); i++ {
		switch el := node.At(i).(type) {
		case string:
			if f.auto.IsMatch([]byte(el)) {
				return true
			}
		case *tree.Seq:
			if f.scan(el) {
				return true
			}
		}
	}
	return false
}

// Extract returns a required-literal set for the pattern, or nil when no
// mandatory position yields one. The first mandatory position (in pattern
// order) that produces a complete set wins; alternations contribute the
// union of their alternatives' sets and produce nothing unless every
// alternative has one.
func Extract(nodes []*expr.Node, cfg Config) []string {
	for _, n := range nodes {
		if set := requiredSet(n, cfg); set != nil {
			return set
		}
	}
	return nil
}

// requiredSet computes the literal set required by a single node, or nil
// if the node does not pin down any string literal.
func requiredSet(n *expr.Node, cfg Config) []string {
	switch n.Kind() {
	case expr.KindLiteral:
		s, ok := n.Value().(string)
		if !ok || s == "" || len(s) > cfg.MaxLiteralLen {
			return nil
		}
		return []string{s}

	case expr.KindGroup, expr.KindNamed, expr.KindSubseq, expr.KindMore:
		// Every child of a group or sub-sequence is mandatory; a More
		// body runs at least once.
		return Extract(n.Children(), cfg)

	case expr.KindOr:
		var union []string
		for _, alt := range n.Children() {
			set := requiredSet(alt, cfg)
			if set == nil {
				return nil
			}
			union = append(union, set...)
			if len(union) > cfg.MaxLiterals {
				return nil
			}
		}
		return union

	default:
		// Maybe, Many, Anything, End, Check and Ref pin nothing down.
		return nil
	}
}
