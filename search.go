package treegex

import (
	"github.com/coregx/treegex/tree"
	"github.com/coregx/treegex/vm"
)

// OnMatch is the callback invoked for every match found by Search.
//
// The return value controls where scanning resumes in the matched
// sequence: a non-negative index resumes there (the idiom after a
// mutating Replace is to return m.Start() and rescan the spliced
// position), any negative value continues after the match.
type OnMatch func(m *Match) int

// Search walks root in pre-order and invokes fn for every match.
//
// At each sequence encountered, the pattern is tried at every element
// index in order; after the sequence is exhausted, the driver recurses
// into each element that is itself a sequence. The recursion reads the
// current contents of the sequence, so children spliced in by the
// callback are visited and children spliced out are not.
//
// Callbacks that mutate the tree must return a sensible resume index or
// risk skipping or re-visiting material. Search returns an error only
// when a match attempt exhausts the configured step budget
// (vm.ErrTooComplex); match failure is silent.
func (p *Pattern) Search(root *tree.Seq, fn OnMatch) error {
	return p.search(root, func(m *Match) (int, bool) {
		return fn(m), false
	})
}

// search is the driver shared by Search, Find, FindAll, IsMatch and
// Count. fn returns the resume index plus a stop flag for early exit.
func (p *Pattern) search(root *tree.Seq, fn func(*Match) (int, bool)) error {
	if !p.filter.Possible(root) {
		return nil
	}
	mach := vm.NewMachine(p.prog)
	mach.SetMaxSteps(p.config.MaxSteps)
	_, err := p.searchSeq(mach, root, fn)
	return err
}

func (p *Pattern) searchSeq(mach *vm.Machine, node *tree.Seq, fn func(*Match) (int, bool)) (stop bool, err error) {
	for i := 0; i <= node.Len(); {
		end, ok := mach.Run(node, i)
		if err := mach.Err(); err != nil {
			return true, err
		}
		if !ok {
			i++
			continue
		}

		next, stop := fn(p.newMatch(node, i, end, mach.Captures()))
		if stop {
			return true, nil
		}
		switch {
		case next >= 0:
			i = next
		case end > i:
			i = end
		default:
			// empty match: advance one element to make progress
			i = end + 1
		}
	}

	for j := 0; j < node.Len(); j++ {
		child, ok := tree.AsSeq(node.At(j))
		if !ok {
			continue
		}
		stop, err := p.searchSeq(mach, child, fn)
		if stop || err != nil {
			return stop, err
		}
	}
	return false, nil
}

func (p *Pattern) newMatch(node *tree.Seq, start, end int, caps []vm.Capture) *Match {
	m := &Match{node: node, start: start, end: end}
	for gid, c := range caps {
		if !c.Set() {
			continue
		}
		if m.groups == nil {
			m.groups = make(map[string]*Match, len(caps))
		}
		m.groups[p.names[gid]] = &Match{node: c.Node, start: c.Start, end: c.End}
	}
	return m
}
