package treegex

import (
	"github.com/coregx/treegex/expr"
)

// Predicate tests a single tree element. Used by Check.
type Predicate = expr.Predicate

// The combinator constructors below are thin re-exports of the expr
// package so that patterns read naturally at the call site:
//
//	treegex.Compile(2, treegex.Whatever(), 4)
//
// They carry no behavior of their own; see the expr package for the
// algebra's semantics.

// Or matches the first alternative that succeeds, preferring earlier
// alternatives.
func Or(alts ...any) *expr.Node { return expr.Or(alts...) }

// Group matches its items in order.
func Group(items ...any) *expr.Node { return expr.Group(items...) }

// Named is a capturing group: the span matched by the body is recorded
// under name, visible on the Match and to Ref. Named(name) with no body
// captures any single element.
func Named(name string, items ...any) *expr.Node { return expr.Named(name, items...) }

// Ref matches the exact element run previously captured by the named
// group.
func Ref(name string) *expr.Node { return expr.Ref(name) }

// Check matches one element for which pred returns true.
func Check(pred Predicate) *expr.Node { return expr.Check(pred) }

// Anything matches any one element.
func Anything() *expr.Node { return expr.Anything() }

// End succeeds only at the end of the current sequence, consuming
// nothing. Sub-sequence patterns are right-anchored implicitly; the top
// level is anchored only by an explicit End.
func End() *expr.Node { return expr.End() }

// Maybe matches its body zero or one times, preferring one.
func Maybe(items ...any) *expr.Node { return expr.Maybe(items...) }

// MaybeNG matches its body zero or one times, preferring zero.
func MaybeNG(items ...any) *expr.Node { return expr.MaybeNG(items...) }

// Many matches its body zero or more times, preferring more.
func Many(items ...any) *expr.Node { return expr.Many(items...) }

// ManyNG matches its body zero or more times, preferring fewer.
func ManyNG(items ...any) *expr.Node { return expr.ManyNG(items...) }

// More matches its body one or more times, preferring more.
func More(items ...any) *expr.Node { return expr.More(items...) }

// MoreNG matches its body one or more times, preferring fewer.
func MoreNG(items ...any) *expr.Node { return expr.MoreNG(items...) }

// Whatever matches any run of elements, preferring longer runs.
func Whatever() *expr.Node { return expr.Whatever() }

// WhateverNG matches any run of elements, preferring shorter runs.
func WhateverNG() *expr.Node { return expr.WhateverNG() }
