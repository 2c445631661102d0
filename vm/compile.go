package vm

import (
	"github.com/coregx/treegex/expr"
)

// Compile translates expression nodes into a Program. The nodes form an
// implicit group: they must match in order.
//
// Compilation is recursive over the expression tree. Forward targets of
// Split and Jump instructions are patched after the bodies they skip are
// emitted. Sub-sequence patterns are lifted into sub-programs appended
// after the main segment and invoked through Descend; each sub-program is
// right-anchored so that it must consume its target sequence entirely.
// The top-level segment is never implicitly anchored.
//
// Group ids are allocated in pattern order, and a Ref may only name a
// group declared before it.
func Compile(nodes ...*expr.Node) (*Program, error) {
	c := &compiler{groups: make(map[string]int)}
	if err := c.collect(nodes); err != nil {
		return nil, err
	}

	c.emitAll(nodes)
	c.emit(Inst{Op: OpHalt})

	// Lift queued sub-sequence bodies into sub-programs. Emitting a body
	// may queue further bodies, so this walks pending by index.
	for i := 0; i < len(c.pending); i++ {
		sub := c.pending[i]
		start := len(c.insts)
		c.emitAll(sub.children)
		if !endsWithAnchor(sub.children) {
			c.emit(Inst{Op: OpEnd})
		}
		c.emit(Inst{Op: OpHalt})
		c.insts[sub.at].X = start
		c.insts[sub.at].Y = len(c.insts) - start
	}

	return &Program{
		insts:  c.insts,
		groups: c.groups,
		names:  c.names,
		preds:  c.preds,
	}, nil
}

// pendingSub is a sub-sequence body waiting to be emitted as a
// sub-program once the segment that referenced it is complete.
type pendingSub struct {
	at       int // pc of the Descend instruction to patch
	children []*expr.Node
}

type compiler struct {
	insts   []Inst
	groups  map[string]int
	names   []string
	preds   []expr.Predicate
	pending []pendingSub
}

// collect walks the expression in pattern order, allocating group ids and
// validating names, references, alternations and predicates before any
// code is emitted.
func (c *compiler) collect(nodes []*expr.Node) error {
	for _, n := range nodes {
		switch n.Kind() {
		case expr.KindNamed:
			name := n.Name()
			if name == "" {
				return buildErr(ErrEmptyName, "Named group with empty name")
			}
			if _, ok := c.groups[name]; ok {
				return buildErr(ErrDuplicateName, "%q", name)
			}
			c.groups[name] = len(c.names)
			c.names = append(c.names, name)
			if err := c.collect(n.Children()); err != nil {
				return err
			}
		case expr.KindRef:
			if _, ok := c.groups[n.Name()]; !ok {
				return buildErr(ErrUnknownRef, "%q", n.Name())
			}
		case expr.KindCheck:
			if n.Pred() == nil {
				return buildErr(ErrNilPredicate, "Check(nil)")
			}
		case expr.KindOr:
			if len(n.Children()) == 0 {
				return buildErr(ErrNoAlternatives, "Or()")
			}
			if err := c.collect(n.Children()); err != nil {
				return err
			}
		default:
			if err := c.collect(n.Children()); err != nil {
				return err
			}
		}
	}
	return nil
}

// emit appends an instruction and returns its pc.
func (c *compiler) emit(in Inst) int {
	c.insts = append(c.insts, in)
	return len(c.insts) - 1
}

func (c *compiler) emitAll(nodes []*expr.Node) {
	for _, n := range nodes {
		c.emitNode(n)
	}
}

func (c *compiler) emitNode(n *expr.Node) {
	switch n.Kind() {
	case expr.KindLiteral:
		c.emit(Inst{Op: OpMatch, Val: n.Value()})

	case expr.KindAnything:
		c.emit(Inst{Op: OpAny})

	case expr.KindEnd:
		c.emit(Inst{Op: OpEnd})

	case expr.KindCheck:
		c.preds = append(c.preds, n.Pred())
		c.emit(Inst{Op: OpPred, X: len(c.preds) - 1})

	case expr.KindSubseq:
		at := c.emit(Inst{Op: OpDescend})
		c.pending = append(c.pending, pendingSub{at: at, children: n.Children()})

	case expr.KindGroup:
		c.emitAll(n.Children())

	case expr.KindNamed:
		gid := c.groups[n.Name()]
		c.emit(Inst{Op: OpSave, X: gid, Y: 0})
		c.emitAll(n.Children())
		c.emit(Inst{Op: OpSave, X: gid, Y: 1})

	case expr.KindRef:
		c.emit(Inst{Op: OpBackref, X: c.groups[n.Name()]})

	case expr.KindOr:
		c.emitOr(n)

	case expr.KindMaybe:
		c.emitMaybe(n)

	case expr.KindMany:
		c.emitMany(n.Children(), n.Greedy())

	case expr.KindMore:
		c.emitAll(n.Children())
		c.emitMany(n.Children(), n.Greedy())
	}
}

// emitOr emits a left-to-right alternation chain:
//
//	Split L1, L2; L1: a; Jump End; L2: Split L3, L4; L3: b; ...; Lz: z; End:
func (c *compiler) emitOr(n *expr.Node) {
	alts := n.Children()
	var jumps []int
	for i, alt := range alts {
		if i == len(alts)-1 {
			c.emitNode(alt)
			break
		}
		sp := c.emit(Inst{Op: OpSplit})
		c.insts[sp].X = len(c.insts)
		c.emitNode(alt)
		jumps = append(jumps, c.emit(Inst{Op: OpJump}))
		c.insts[sp].Y = len(c.insts)
	}
	end := len(c.insts)
	for _, j := range jumps {
		c.insts[j].X = end
	}
}

// emitMaybe emits Split L_body, L_skip; L_body: body; L_skip:
// with the split targets swapped for non-greedy nodes.
func (c *compiler) emitMaybe(n *expr.Node) {
	sp := c.emit(Inst{Op: OpSplit})
	body := len(c.insts)
	c.emitAll(n.Children())
	skip := len(c.insts)
	if n.Greedy() {
		c.insts[sp].X, c.insts[sp].Y = body, skip
	} else {
		c.insts[sp].X, c.insts[sp].Y = skip, body
	}
}

// emitMany emits L_start: Split L_body, L_exit; L_body: body; Jump L_start; L_exit:
// with the split targets swapped for non-greedy repetition.
func (c *compiler) emitMany(body []*expr.Node, greedy bool) {
	start := len(c.insts)
	sp := c.emit(Inst{Op: OpSplit})
	bodyPC := len(c.insts)
	c.emitAll(body)
	c.emit(Inst{Op: OpJump, X: start})
	exit := len(c.insts)
	if greedy {
		c.insts[sp].X, c.insts[sp].Y = bodyPC, exit
	} else {
		c.insts[sp].X, c.insts[sp].Y = exit, bodyPC
	}
}

// endsWithAnchor reports whether the final element of a sub-sequence body
// is already an explicit End, in which case the compiler elides its own.
func endsWithAnchor(nodes []*expr.Node) bool {
	if len(nodes) == 0 {
		return false
	}
	return nodes[len(nodes)-1].Kind() == expr.KindEnd
}
