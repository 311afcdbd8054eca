package visitor

import (
	"testing"

	"github.com/regexkit/regexkit/syntax"
)

func TestWalkVisitsEveryNode(t *testing.T) {
	n, err := syntax.Parse(`a(b|c)+`)
	if err != nil {
		t.Fatal(err)
	}
	var kinds []syntax.Kind
	Walk(n, func(node *syntax.Node, ancestors []*syntax.Node) bool {
		kinds = append(kinds, node.Kind)
		return true
	})
	if len(kinds) == 0 {
		t.Fatal("Walk visited nothing")
	}
	// root is a Sequence: literal 'a' followed by a Quantifier over a
	// capturing Group containing an Alternation of two literals.
	want := []syntax.Kind{
		syntax.KindSequence, syntax.KindLiteral, syntax.KindQuantifier,
		syntax.KindGroup, syntax.KindAlternation, syntax.KindLiteral, syntax.KindLiteral,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestWalkSkipsChildrenWhenVisitReturnsFalse(t *testing.T) {
	n, err := syntax.Parse(`a(b|c)`)
	if err != nil {
		t.Fatal(err)
	}
	var count int
	Walk(n, func(node *syntax.Node, ancestors []*syntax.Node) bool {
		count++
		return node.Kind != syntax.KindGroup
	})
	// Sequence, Literal 'a', Group — stops before descending into the
	// alternation.
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestWalkAncestorsThreaded(t *testing.T) {
	n, err := syntax.Parse(`(a)`)
	if err != nil {
		t.Fatal(err)
	}
	var sawLiteralWithGroupAncestor bool
	Walk(n, func(node *syntax.Node, ancestors []*syntax.Node) bool {
		if node.Kind == syntax.KindLiteral {
			for _, a := range ancestors {
				if a.Kind == syntax.KindGroup {
					sawLiteralWithGroupAncestor = true
				}
			}
		}
		return true
	})
	if !sawLiteralWithGroupAncestor {
		t.Fatal("literal node did not see its Group ancestor")
	}
}

func TestRewriteReplacesLeaves(t *testing.T) {
	n, err := syntax.Parse(`abc`)
	if err != nil {
		t.Fatal(err)
	}
	out := Rewrite(n, func(node *syntax.Node) *syntax.Node {
		if node.Kind == syntax.KindLiteral && node.Value == 'b' {
			clone := *node
			clone.Value = 'X'
			clone.Raw = "X"
			return &clone
		}
		return node
	})
	if Compile(out) != "aXc" {
		t.Fatalf("Compile(out) = %q, want %q", Compile(out), "aXc")
	}
	// the original tree is untouched
	if Compile(n) != "abc" {
		t.Fatalf("original tree mutated: Compile(n) = %q", Compile(n))
	}
}

func TestCompileRoundTrip(t *testing.T) {
	tests := []string{
		`abc`,
		`a|b|c`,
		`(a)(b)`,
		`(?:a)`,
		`a*`,
		`a+?`,
		`a{2,4}`,
		`[a-z0-9_]`,
		`[^abc]`,
		`.`,
		`\d\w\s`,
		`^a$`,
		`(?=a)(?!b)`,
	}
	for _, body := range tests {
		n, err := syntax.Parse(body)
		if err != nil {
			t.Fatalf("Parse(%q): %v", body, err)
		}
		got := Compile(n)
		n2, err := syntax.Parse(got)
		if err != nil {
			t.Fatalf("Parse(%q) re-parse of compiled %q: %v", body, got, err)
		}
		got2 := Compile(n2)
		if got != got2 {
			t.Errorf("Compile not stable for %q: first %q, second %q", body, got, got2)
		}
	}
}
