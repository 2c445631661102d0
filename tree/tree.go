// Package tree defines the data model matched by treegex: heterogeneous
// trees represented as nested ordered sequences.
//
// A tree element is either a scalar of any comparable type or a *Seq, an
// ordered mutable sequence whose elements may themselves be scalars or
// sequences. Sequences have pointer identity: two distinct *Seq values with
// the same elements are structurally equal (see Equal) but not identical.
//
// Example:
//
//	// the tree [1, 2, ["a", ["b", "c"]]]
//	root := tree.NewSeq(1, 2, tree.NewSeq("a", tree.NewSeq("b", "c")))
//	root.Len()   // 3
//	root.At(2)   // *Seq ["a" ["b" "c"]]
package tree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zostay/go-std/slices"
)

// Seq is an ordered, mutable sequence of tree elements.
//
// The zero value is an empty sequence ready for use. All mutation happens
// in place through Splice; a Seq keeps its identity across mutations, which
// is what allows match objects to edit the tree they point into.
type Seq struct {
	elems []any
}

// NewSeq returns a sequence holding the given elements.
func NewSeq(elems ...any) *Seq {
	return &Seq{elems: elems}
}

// From wraps a copy of elems in a new sequence.
func From(elems []any) *Seq {
	out := make([]any, len(elems))
	copy(out, elems)
	return &Seq{elems: out}
}

// Len returns the number of elements in the sequence.
func (s *Seq) Len() int {
	return len(s.elems)
}

// At returns the element at index i.
func (s *Seq) At(i int) any {
	return s.elems[i]
}

// Slice returns a fresh copy of the elements in [i, j).
// Mutating the returned slice does not affect the sequence.
func (s *Seq) Slice(i, j int) []any {
	out := make([]any, j-i)
	copy(out, s.elems[i:j])
	return out
}

// Elems returns a fresh copy of all elements.
func (s *Seq) Elems() []any {
	return s.Slice(0, len(s.elems))
}

// Splice replaces the elements in [i, j) with repl, in place.
// The sequence's length changes by len(repl) - (j - i).
func (s *Seq) Splice(i, j int, repl []any) {
	out := make([]any, 0, len(s.elems)-(j-i)+len(repl))
	out = append(out, s.elems[:i]...)
	out = append(out, repl...)
	out = append(out, s.elems[j:]...)
	s.elems = out
}

// AsSeq reports whether v is a sequence, returning it if so.
func AsSeq(v any) (*Seq, bool) {
	s, ok := v.(*Seq)
	return s, ok
}

// Equal reports structural equality between two tree elements.
//
// Two sequences are equal if they have the same length and pairwise equal
// elements. Scalars compare with the host's == where the dynamic type is
// comparable; uncomparable scalar types fall back to reflect.DeepEqual.
// A sequence never equals a scalar.
func Equal(a, b any) bool {
	as, aok := AsSeq(a)
	bs, bok := AsSeq(b)
	if aok != bok {
		return false
	}
	if aok {
		if as.Len() != bs.Len() {
			return false
		}
		for i := range as.elems {
			if !Equal(as.elems[i], bs.elems[i]) {
				return false
			}
		}
		return true
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// String returns a bracketed rendering of the sequence, e.g. [1 2 [a b]].
func (s *Seq) String() string {
	parts := slices.Map(s.elems, func(e any) string {
		if es, ok := AsSeq(e); ok {
			return es.String()
		}
		return fmt.Sprint(e)
	})
	return "[" + strings.Join(parts, " ") + "]"
}
