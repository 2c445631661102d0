package vm

import (
	"github.com/coregx/treegex/tree"
)

// Machine is a recursive backtracking interpreter for compiled programs.
//
// Its state at any point is (pc, node, idx, captures). On a Split the
// machine snapshots the capture slots, recurses into the preferred branch
// and, if that branch ultimately fails, restores the slots and continues
// at the fallback target. Only the winning path's captures survive.
//
// A Machine is stateful across a single Run and must not be shared
// between goroutines; the Program it executes may be.
type Machine struct {
	prog     *Program
	maxSteps int
	steps    int
	caps     []Capture
	err      error
}

// Capture is one named group's recorded span: the sequence it points
// into and the half-open element interval [Start, End).
type Capture struct {
	Node       *tree.Seq
	Start, End int
	HasStart   bool
	HasEnd     bool
}

// Set reports whether both halves of the slot were recorded.
func (c Capture) Set() bool {
	return c.HasStart && c.HasEnd
}

// NewMachine creates a machine for the given program.
func NewMachine(p *Program) *Machine {
	return &Machine{
		prog: p,
		caps: make([]Capture, p.GroupCount()),
	}
}

// SetMaxSteps bounds the number of instructions a single Run may execute.
// Zero means unbounded. When the budget is exhausted the Run fails and
// Err reports ErrTooComplex.
func (m *Machine) SetMaxSteps(n int) {
	m.maxSteps = n
}

// Run matches the program against node starting at element index start.
// It returns the end index of the match and true on success, or -1 and
// false on failure. Match failure is not an error; after a failed Run,
// Err distinguishes an exhausted step budget from an ordinary miss.
//
// On success the machine's capture slots hold the winning path's groups.
func (m *Machine) Run(node *tree.Seq, start int) (int, bool) {
	for i := range m.caps {
		m.caps[i] = Capture{}
	}
	m.steps = 0
	m.err = nil

	end := m.backtrack(0, node, start)
	if end < 0 {
		return -1, false
	}
	return end, true
}

// Err returns the error that aborted the last Run, if any.
func (m *Machine) Err() error {
	return m.err
}

// Captures returns the capture slots populated by the last successful
// Run. The returned slice is a copy.
func (m *Machine) Captures() []Capture {
	out := make([]Capture, len(m.caps))
	copy(out, m.caps)
	return out
}

// backtrack executes instructions from pc against node at element index
// idx. It returns the index reached at the segment's Halt, or -1 on
// failure. Control flow within a segment is a loop; Split branches and
// Descend sub-programs recurse.
func (m *Machine) backtrack(pc int, node *tree.Seq, idx int) int {
	for {
		if m.maxSteps > 0 {
			m.steps++
			if m.steps > m.maxSteps {
				m.err = ErrTooComplex
				return -1
			}
		}

		in := m.prog.insts[pc]
		switch in.Op {
		case OpMatch:
			if idx < node.Len() && tree.Equal(node.At(idx), in.Val) {
				pc++
				idx++
				continue
			}
			return -1

		case OpAny:
			if idx < node.Len() {
				pc++
				idx++
				continue
			}
			return -1

		case OpPred:
			if idx < node.Len() && m.prog.preds[in.X](node.At(idx)) {
				pc++
				idx++
				continue
			}
			return -1

		case OpDescend:
			if idx >= node.Len() {
				return -1
			}
			child, ok := tree.AsSeq(node.At(idx))
			if !ok {
				return -1
			}
			if m.backtrack(in.X, child, 0) < 0 {
				return -1
			}
			pc++
			idx++
			continue

		case OpEnd:
			if idx == node.Len() {
				pc++
				continue
			}
			return -1

		case OpSplit:
			saved := m.snapshot()
			if end := m.backtrack(in.X, node, idx); end >= 0 {
				return end
			}
			if m.err != nil {
				return -1
			}
			m.restore(saved)
			pc = in.Y
			continue

		case OpJump:
			pc = in.X
			continue

		case OpSave:
			slot := &m.caps[in.X]
			if in.Y == 0 {
				slot.Node, slot.Start, slot.HasStart = node, idx, true
			} else {
				slot.End, slot.HasEnd = idx, true
			}
			pc++
			continue

		case OpBackref:
			slot := m.caps[in.X]
			if !slot.Set() {
				return -1
			}
			n := slot.End - slot.Start
			if idx+n > node.Len() {
				return -1
			}
			for i := 0; i < n; i++ {
				if !tree.Equal(node.At(idx+i), slot.Node.At(slot.Start+i)) {
					return -1
				}
			}
			pc++
			idx += n
			continue

		case OpHalt:
			return idx

		default:
			return -1
		}
	}
}

// snapshot copies the capture slots before entering a Split branch so a
// failed branch's writes can be rolled back.
func (m *Machine) snapshot() []Capture {
	saved := make([]Capture, len(m.caps))
	copy(saved, m.caps)
	return saved
}

func (m *Machine) restore(saved []Capture) {
	copy(m.caps, saved)
}
