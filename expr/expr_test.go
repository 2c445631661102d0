package expr

import (
	"testing"
)

func TestLift(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"int scalar", 3, KindLiteral},
		{"string scalar", "a", KindLiteral},
		{"nil scalar", nil, KindLiteral},
		{"raw sequence", []any{1, 2}, KindSubseq},
		{"node passthrough", Or(1, 2), KindOr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Lift(tt.in)
			if n.Kind() != tt.want {
				t.Errorf("Lift(%v).Kind() = %v, want %v", tt.in, n.Kind(), tt.want)
			}
		})
	}

	// lifting a node must not wrap it
	or := Or(1, 2)
	if Lift(or) != or {
		t.Errorf("Lift(*Node) wrapped the node")
	}
}

func TestLiftNestedSequence(t *testing.T) {
	// ["a", ["b", Or("c","d")]] lifts to Subseq with a nested Subseq child
	n := Lift([]any{"a", []any{"b", Or("c", "d")}})
	if n.Kind() != KindSubseq {
		t.Fatalf("outer kind = %v, want Subseq", n.Kind())
	}
	kids := n.Children()
	if len(kids) != 2 {
		t.Fatalf("outer children = %d, want 2", len(kids))
	}
	if kids[0].Kind() != KindLiteral || kids[0].Value() != "a" {
		t.Errorf("first child = %v(%v), want Literal(a)", kids[0].Kind(), kids[0].Value())
	}
	inner := kids[1]
	if inner.Kind() != KindSubseq {
		t.Fatalf("inner kind = %v, want Subseq", inner.Kind())
	}
	if inner.Children()[1].Kind() != KindOr {
		t.Errorf("inner second child = %v, want Or", inner.Children()[1].Kind())
	}
}

func TestNamedDefaultsToAnything(t *testing.T) {
	n := Named("x")
	kids := n.Children()
	if len(kids) != 1 || kids[0].Kind() != KindAnything {
		t.Errorf("Named(\"x\").Children() = %v, want a single Anything", kids)
	}
	if n.Name() != "x" {
		t.Errorf("Name() = %q, want %q", n.Name(), "x")
	}
}

func TestGreedyFlags(t *testing.T) {
	tests := []struct {
		name   string
		node   *Node
		kind   Kind
		greedy bool
	}{
		{"Maybe", Maybe("a"), KindMaybe, true},
		{"MaybeNG", MaybeNG("a"), KindMaybe, false},
		{"Many", Many("a"), KindMany, true},
		{"ManyNG", ManyNG("a"), KindMany, false},
		{"More", More("a"), KindMore, true},
		{"MoreNG", MoreNG("a"), KindMore, false},
		{"Whatever", Whatever(), KindMany, true},
		{"WhateverNG", WhateverNG(), KindMany, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.node.Kind(), tt.kind)
			}
			if tt.node.Greedy() != tt.greedy {
				t.Errorf("Greedy() = %v, want %v", tt.node.Greedy(), tt.greedy)
			}
		})
	}
}

func TestWhateverDesugarsToManyAnything(t *testing.T) {
	n := Whatever()
	kids := n.Children()
	if len(kids) != 1 || kids[0].Kind() != KindAnything {
		t.Errorf("Whatever() body = %v, want a single Anything", kids)
	}
}

func TestCheckHoldsPredicate(t *testing.T) {
	called := false
	n := Check(func(v any) bool {
		called = true
		return v == 42
	})
	if n.Kind() != KindCheck {
		t.Fatalf("Kind() = %v, want Check", n.Kind())
	}
	if !n.Pred()(42) || !called {
		t.Errorf("predicate not stored or not invoked")
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindLiteral:  "Literal",
		KindSubseq:   "Subseq",
		KindAnything: "Anything",
		KindEnd:      "End",
		KindOr:       "Or",
		KindGroup:    "Group",
		KindNamed:    "Named",
		KindRef:      "Ref",
		KindCheck:    "Check",
		KindMaybe:    "Maybe",
		KindMany:     "Many",
		KindMore:     "More",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
