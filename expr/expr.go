// Package expr provides the combinator algebra from which tree patterns
// are built.
//
// Each constructor is a pure value constructor: it returns an immutable
// expression Node tagged with its kind and children, and no compilation
// happens here. Raw values passed where an expression is expected are
// lifted automatically: a scalar becomes a literal, a []any becomes a
// sub-sequence pattern.
//
// Example:
//
//	// match a 2, then anything (lazily), then a 4
//	nodes := expr.LiftAll([]any{2, expr.WhateverNG(), 4})
//
//	// a named group back-referenced by the rest of the pattern
//	expr.Group(expr.Named("a", expr.Anything()), expr.More(expr.Ref("a")))
package expr

import (
	"github.com/zostay/go-std/slices"
)

// Kind identifies the type of an expression node.
type Kind uint8

const (
	// KindLiteral matches one element equal to a value.
	KindLiteral Kind = iota

	// KindSubseq matches one element that is a sequence conforming to the
	// child pattern. Sub-sequence patterns are implicitly right-anchored.
	KindSubseq

	// KindAnything matches any one element.
	KindAnything

	// KindEnd matches at the end of the current sequence, consuming nothing.
	KindEnd

	// KindOr matches the first of its alternatives that succeeds,
	// in source order.
	KindOr

	// KindGroup matches its children in order.
	KindGroup

	// KindNamed is a group whose span is captured under a name.
	KindNamed

	// KindRef matches the exact element run previously captured by a
	// named group.
	KindRef

	// KindCheck matches one element satisfying a predicate.
	KindCheck

	// KindMaybe matches its body zero or one times.
	KindMaybe

	// KindMany matches its body zero or more times.
	KindMany

	// KindMore matches its body one or more times.
	KindMore
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindSubseq:
		return "Subseq"
	case KindAnything:
		return "Anything"
	case KindEnd:
		return "End"
	case KindOr:
		return "Or"
	case KindGroup:
		return "Group"
	case KindNamed:
		return "Named"
	case KindRef:
		return "Ref"
	case KindCheck:
		return "Check"
	case KindMaybe:
		return "Maybe"
	case KindMany:
		return "Many"
	case KindMore:
		return "More"
	default:
		return "Unknown"
	}
}

// Predicate tests a single tree element. Used by Check.
type Predicate func(v any) bool

// Node is one node of an expression tree. Nodes are immutable after
// construction; the kind determines which accessors are meaningful.
type Node struct {
	kind     Kind
	value    any       // Literal
	name     string    // Named, Ref
	pred     Predicate // Check
	greedy   bool      // Maybe, Many, More
	children []*Node
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the literal value for Literal nodes.
func (n *Node) Value() any { return n.value }

// Name returns the group name for Named and Ref nodes.
func (n *Node) Name() string { return n.name }

// Pred returns the predicate for Check nodes.
func (n *Node) Pred() Predicate { return n.pred }

// Greedy reports repetition preference for Maybe, Many and More nodes.
func (n *Node) Greedy() bool { return n.greedy }

// Children returns the node's sub-expressions. The returned slice is
// shared and must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Lift converts a raw value into an expression node. Expression nodes
// pass through unchanged, a []any becomes a sub-sequence pattern, and
// anything else becomes a literal.
func Lift(v any) *Node {
	switch x := v.(type) {
	case *Node:
		return x
	case []any:
		return Subseq(x...)
	default:
		return Literal(v)
	}
}

// LiftAll lifts each value in vs.
func LiftAll(vs []any) []*Node {
	return slices.Map(vs, Lift)
}

// Literal returns a pattern matching one element equal to v.
// Equality is structural (see tree.Equal), so a *tree.Seq literal matches
// a sequence element with the same shape.
func Literal(v any) *Node {
	return &Node{kind: KindLiteral, value: v}
}

// Subseq returns a pattern matching one element that is itself a sequence
// conforming to the given items. Raw values among items are lifted.
//
// A sub-sequence pattern must match its target exactly to the end: the
// compiler right-anchors it. The top-level pattern is never implicitly
// anchored; use End for that.
func Subseq(items ...any) *Node {
	return &Node{kind: KindSubseq, children: LiftAll(items)}
}

// Anything returns a pattern matching any one element.
func Anything() *Node {
	return &Node{kind: KindAnything}
}

// End returns a pattern that succeeds only at the end of the current
// sequence. It consumes nothing.
func End() *Node {
	return &Node{kind: KindEnd}
}

// Or returns a pattern matching the first alternative that succeeds,
// preferring earlier alternatives.
func Or(alts ...any) *Node {
	return &Node{kind: KindOr, children: LiftAll(alts)}
}

// Group returns a pattern matching its items in order.
func Group(items ...any) *Node {
	return &Node{kind: KindGroup, children: LiftAll(items)}
}

// Named returns a capturing group. The span matched by the body is
// recorded under name and is visible on the resulting match and to Ref.
// Named(name) with no body is shorthand for Named(name, Anything()).
func Named(name string, items ...any) *Node {
	children := LiftAll(items)
	if len(children) == 0 {
		children = []*Node{Anything()}
	}
	return &Node{kind: KindNamed, name: name, children: children}
}

// Ref returns a pattern matching the exact element run previously
// captured by the named group. The group must be declared before the
// reference; forward references fail at compile time.
func Ref(name string) *Node {
	return &Node{kind: KindRef, name: name}
}

// Check returns a pattern matching one element for which pred returns
// true.
func Check(pred Predicate) *Node {
	return &Node{kind: KindCheck, pred: pred}
}

// Maybe matches its body zero or one times, preferring one.
func Maybe(items ...any) *Node {
	return &Node{kind: KindMaybe, greedy: true, children: LiftAll(items)}
}

// MaybeNG matches its body zero or one times, preferring zero.
func MaybeNG(items ...any) *Node {
	return &Node{kind: KindMaybe, children: LiftAll(items)}
}

// Many matches its body zero or more times, preferring more.
func Many(items ...any) *Node {
	return &Node{kind: KindMany, greedy: true, children: LiftAll(items)}
}

// ManyNG matches its body zero or more times, preferring fewer.
func ManyNG(items ...any) *Node {
	return &Node{kind: KindMany, children: LiftAll(items)}
}

// More matches its body one or more times, preferring more.
func More(items ...any) *Node {
	return &Node{kind: KindMore, greedy: true, children: LiftAll(items)}
}

// MoreNG matches its body one or more times, preferring fewer.
func MoreNG(items ...any) *Node {
	return &Node{kind: KindMore, children: LiftAll(items)}
}

// Whatever matches any run of elements, preferring longer runs.
// It is shorthand for Many(Anything()).
func Whatever() *Node {
	return &Node{kind: KindMany, greedy: true, children: []*Node{Anything()}}
}

// WhateverNG matches any run of elements, preferring shorter runs.
func WhateverNG() *Node {
	return &Node{kind: KindMany, children: []*Node{Anything()}}
}
