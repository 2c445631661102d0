package treegex

import (
	"fmt"

	"github.com/coregx/treegex/tree"
)

// Match is a handle to one matched span: the sequence it points into,
// the half-open element interval [Start, End), and a sub-Match per named
// group captured on the winning execution path.
//
// A Match stays valid until its backing sequence is mutated. After a
// Replace or Swap, sibling Match objects into the same sequence whose
// interval lies at or after the splice point have undefined bounds;
// issue mutations from within the active callback and do not retain
// Match objects past its return.
type Match struct {
	node   *tree.Seq
	start  int
	end    int
	groups map[string]*Match
}

// Node returns the sequence the match points into.
func (m *Match) Node() *tree.Seq { return m.node }

// Start returns the index of the first matched element.
func (m *Match) Start() int { return m.start }

// End returns the index one past the last matched element.
func (m *Match) End() int { return m.end }

// Len returns the number of matched elements.
func (m *Match) Len() int { return m.end - m.start }

// Content returns a fresh copy of the matched elements. Mutating the
// returned slice does not affect the tree.
func (m *Match) Content() []any {
	return m.node.Slice(m.start, m.end)
}

// First returns the first matched element, or nil for an empty match.
func (m *Match) First() any {
	if m.end > m.start {
		return m.node.At(m.start)
	}
	return nil
}

// Group returns the sub-Match captured by the named group, or nil when
// the group did not participate in the match.
func (m *Match) Group(name string) *Match {
	return m.groups[name]
}

// Groups returns all captured groups by name. The returned map is a copy.
func (m *Match) Groups() map[string]*Match {
	out := make(map[string]*Match, len(m.groups))
	for name, g := range m.groups {
		out[name] = g
	}
	return out
}

// Replace splices c over the matched interval, in place. c may be a
// []any, a *tree.Seq, another *Match (its Content is used), or a single
// non-nil element; a nil c deletes the interval. The match's End is
// updated to cover the inserted elements;
// sibling matches into the same sequence are not maintained.
func (m *Match) Replace(c any) {
	repl := contentOf(c)
	m.node.Splice(m.start, m.end, repl)
	m.end = m.start + len(repl)
}

// Swap atomically exchanges the contents of two matched intervals. When
// both matches share a sequence, the higher interval is spliced first so
// the lower interval's indices stay valid.
func (m *Match) Swap(other *Match) {
	a, b := m.Content(), other.Content()
	if m.node == other.node && m.start < other.start {
		other.Replace(a)
		m.Replace(b)
	} else {
		m.Replace(b)
		other.Replace(a)
	}
}

// String returns a compact rendering of the match span and its content.
func (m *Match) String() string {
	return fmt.Sprintf("Match(%d:%d %v)", m.start, m.end, tree.From(m.Content()))
}

func contentOf(c any) []any {
	switch v := c.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case *Match:
		return v.Content()
	case *tree.Seq:
		return v.Elems()
	default:
		return []any{v}
	}
}
