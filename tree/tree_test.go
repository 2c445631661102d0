package tree

import (
	"testing"
)

func TestSeqBasics(t *testing.T) {
	s := NewSeq(1, "a", NewSeq(2, 3))

	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := s.At(1); got != "a" {
		t.Errorf("At(1) = %v, want \"a\"", got)
	}
	child, ok := AsSeq(s.At(2))
	if !ok {
		t.Fatalf("At(2) is not a sequence")
	}
	if child.Len() != 2 {
		t.Errorf("child.Len() = %d, want 2", child.Len())
	}
	if _, ok := AsSeq(s.At(0)); ok {
		t.Errorf("AsSeq(scalar) reported a sequence")
	}
}

func TestSliceIsACopy(t *testing.T) {
	s := NewSeq(1, 2, 3, 4)
	view := s.Slice(1, 3)

	if len(view) != 2 || view[0] != 2 || view[1] != 3 {
		t.Fatalf("Slice(1,3) = %v, want [2 3]", view)
	}

	view[0] = 99
	if s.At(1) != 2 {
		t.Errorf("mutating the slice leaked into the sequence: %v", s)
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name string
		i, j int
		repl []any
		want []any
	}{
		{"replace middle", 1, 4, []any{"cut"}, []any{1, "cut", 5}},
		{"grow", 2, 3, []any{"x", "y", "z"}, []any{1, 2, "x", "y", "z", 4, 5}},
		{"delete", 0, 2, nil, []any{3, 4, 5}},
		{"insert at end", 5, 5, []any{6}, []any{1, 2, 3, 4, 5, 6}},
		{"empty replacement", 1, 3, []any{}, []any{1, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeq(1, 2, 3, 4, 5)
			s.Splice(tt.i, tt.j, tt.repl)
			if !Equal(s, From(tt.want)) {
				t.Errorf("Splice(%d, %d, %v) = %v, want %v", tt.i, tt.j, tt.repl, s, tt.want)
			}
		})
	}
}

func TestSpliceKeepsIdentity(t *testing.T) {
	inner := NewSeq("a", "b")
	outer := NewSeq(1, inner, 3)

	inner.Splice(0, 1, []any{"z"})

	got, _ := AsSeq(outer.At(1))
	if got != inner {
		t.Fatalf("child identity lost after splice")
	}
	if got.At(0) != "z" {
		t.Errorf("splice not visible through the parent: %v", outer)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 3, 3, true},
		{"unequal ints", 3, 4, false},
		{"different scalar types", 3, "3", false},
		{"int vs int64", 3, int64(3), false},
		{"equal strings", "a", "a", true},
		{"nil vs nil", nil, nil, true},
		{"nil vs scalar", nil, 0, false},
		{"seq vs scalar", NewSeq(1), 1, false},
		{"equal seqs", NewSeq(1, "a"), NewSeq(1, "a"), true},
		{"unequal length", NewSeq(1), NewSeq(1, 2), false},
		{"nested equal", NewSeq(1, NewSeq("a", NewSeq(2))), NewSeq(1, NewSeq("a", NewSeq(2))), true},
		{"nested unequal", NewSeq(1, NewSeq("a")), NewSeq(1, NewSeq("b")), false},
		{"empty seqs", NewSeq(), NewSeq(), true},
		{"uncomparable scalars", []byte("ab"), []byte("ab"), true},
		{"uncomparable unequal", []byte("ab"), []byte("ac"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := NewSeq(1, "a", NewSeq(2, NewSeq()))
	if got, want := s.String(), "[1 a [2 []]]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
