// Package vm provides the bytecode representation and execution engine for
// tree patterns.
//
// This package implements the compiler from expression trees to a linear
// instruction stream along with a recursive backtracking Machine that runs
// the stream against a sequence. Greedy and non-greedy repetition are
// encoded purely by Split operand order; captures are recorded in slots
// that are snapshotted and restored around choice points.
package vm

import (
	"fmt"
	"strings"

	"github.com/coregx/treegex/expr"
)

// Op identifies an instruction kind.
type Op uint8

const (
	// OpMatch consumes one element equal to the instruction's value.
	OpMatch Op = iota

	// OpAny consumes any one element.
	OpAny

	// OpPred consumes one element satisfying the predicate at index X.
	OpPred

	// OpDescend requires the current element to be a sequence and runs the
	// sub-program at offset X (length Y) against it. The sub-program must
	// consume the child entirely. Consumes one element on success.
	OpDescend

	// OpEnd succeeds only at the end of the current sequence.
	OpEnd

	// OpSplit tries the branch at X first and falls back to Y on failure.
	// Operand order encodes greedy vs non-greedy repetition.
	OpSplit

	// OpJump transfers control to X unconditionally.
	OpJump

	// OpSave records the cursor into capture slot X; Y selects the start
	// (0) or end (1) half of the slot.
	OpSave

	// OpBackref consumes the exact element run previously captured by
	// group X.
	OpBackref

	// OpHalt terminates the current program segment with success.
	OpHalt
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpMatch:
		return "Match"
	case OpAny:
		return "Any"
	case OpPred:
		return "Pred"
	case OpDescend:
		return "Descend"
	case OpEnd:
		return "End"
	case OpSplit:
		return "Split"
	case OpJump:
		return "Jump"
	case OpSave:
		return "Save"
	case OpBackref:
		return "Backref"
	case OpHalt:
		return "Halt"
	default:
		return fmt.Sprintf("Unknown(%d)", op)
	}
}

// Inst is a single instruction. The operand meaning depends on the Op:
//
//	Match	Val = literal value
//	Pred	X = predicate id
//	Descend	X = sub-program offset, Y = sub-program length
//	Split	X = preferred target, Y = fallback target
//	Jump	X = target
//	Save	X = group id, Y = 0 (start) or 1 (end)
//	Backref	X = group id
type Inst struct {
	Op   Op
	X, Y int
	Val  any
}

// String returns a human-readable representation of the instruction.
func (in Inst) String() string {
	switch in.Op {
	case OpMatch:
		return fmt.Sprintf("Match %v", in.Val)
	case OpPred:
		return fmt.Sprintf("Pred %d", in.X)
	case OpDescend:
		return fmt.Sprintf("Descend %d,%d", in.X, in.Y)
	case OpSplit:
		return fmt.Sprintf("Split %d,%d", in.X, in.Y)
	case OpJump:
		return fmt.Sprintf("Jump %d", in.X)
	case OpSave:
		return fmt.Sprintf("Save %d,%d", in.X, in.Y)
	case OpBackref:
		return fmt.Sprintf("Backref %d", in.X)
	default:
		return in.Op.String()
	}
}

// Program is a compiled pattern: a linear instruction stream plus the
// group name table and predicate table referenced by its instructions.
// Programs are immutable after compilation and safe for concurrent use.
type Program struct {
	insts  []Inst
	groups map[string]int // group name -> id, in declaration order
	names  []string       // group id -> name
	preds  []expr.Predicate
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at pc.
func (p *Program) Inst(pc int) Inst {
	return p.insts[pc]
}

// GroupCount returns the number of named groups in the program.
func (p *Program) GroupCount() int {
	return len(p.names)
}

// GroupID returns the id allocated to the named group, or -1 if the name
// is not declared in this program.
func (p *Program) GroupID(name string) int {
	if id, ok := p.groups[name]; ok {
		return id
	}
	return -1
}

// GroupNames returns the declared group names indexed by group id.
// The returned slice is a copy.
func (p *Program) GroupNames() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Pred returns the predicate stored at id.
func (p *Program) Pred(id int) expr.Predicate {
	return p.preds[id]
}

// Disassemble returns a printable listing of the instruction stream, one
// instruction per line, prefixed with its pc.
func (p *Program) Disassemble() string {
	var b strings.Builder
	for pc, in := range p.insts {
		fmt.Fprintf(&b, "%4d  %s\n", pc, in)
	}
	return b.String()
}

// String returns a summary of the program.
func (p *Program) String() string {
	return fmt.Sprintf("Program{insts: %d, groups: %d, preds: %d}",
		len(p.insts), len(p.names), len(p.preds))
}
