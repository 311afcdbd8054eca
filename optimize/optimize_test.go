package optimize

import (
	"testing"

	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

func mustParse(t *testing.T, body string) *syntax.Node {
	t.Helper()
	n, err := syntax.Parse(body)
	if err != nil {
		t.Fatalf("Parse(%q): %v", body, err)
	}
	return n
}

func noFlags(t *testing.T) syntax.FlagSet {
	t.Helper()
	p, err := syntax.Split("/x/")
	if err != nil {
		t.Fatal(err)
	}
	return p.Flags
}

func withUnicodeFlag(t *testing.T) syntax.FlagSet {
	t.Helper()
	p, err := syntax.Split("/x/u")
	if err != nil {
		t.Fatal(err)
	}
	return p.Flags
}

func hasCode(suggestions []Suggestion, code string) bool {
	for _, s := range suggestions {
		if s.Code == code {
			return true
		}
	}
	return false
}

func TestRunFoldsWordClassPermutation(t *testing.T) {
	n := mustParse(t, `[_a-zA-Z0-9]`)
	suggestions := Run(n, noFlags(t))
	if !hasCode(suggestions, "fold-word-shorthand") {
		t.Fatalf("expected fold-word-shorthand, got %v", suggestions)
	}
}

func TestRunSkipsWordFoldUnderUnicodeFlag(t *testing.T) {
	n := mustParse(t, `[a-zA-Z0-9_]`)
	suggestions := Run(n, withUnicodeFlag(t))
	if hasCode(suggestions, "fold-word-shorthand") {
		t.Fatalf("/u should suppress the \\w fold, got %v", suggestions)
	}
}

func TestRunIgnoresIncompleteWordPermutation(t *testing.T) {
	n := mustParse(t, `[a-zA-Z0-9]`)
	suggestions := Run(n, noFlags(t))
	if hasCode(suggestions, "fold-word-shorthand") {
		t.Fatalf("missing the underscore element should not fold, got %v", suggestions)
	}
}

func TestRunFoldsDigitClass(t *testing.T) {
	n := mustParse(t, `[0-9]`)
	suggestions := Run(n, noFlags(t))
	if !hasCode(suggestions, "fold-digit-shorthand") {
		t.Fatalf("expected fold-digit-shorthand, got %v", suggestions)
	}
}

func TestRunIgnoresNegatedDigitClass(t *testing.T) {
	n := mustParse(t, `[^0-9]`)
	suggestions := Run(n, noFlags(t))
	if hasCode(suggestions, "fold-digit-shorthand") {
		t.Fatalf("negated class should not fold, got %v", suggestions)
	}
}

func TestRunCoalescesAdjacentRanges(t *testing.T) {
	n := mustParse(t, `[a-mn-z]`)
	suggestions := Run(n, noFlags(t))
	if !hasCode(suggestions, "coalesce-ranges") {
		t.Fatalf("expected coalesce-ranges, got %v", suggestions)
	}
}

func TestRunIgnoresAlreadyMinimalClass(t *testing.T) {
	n := mustParse(t, `[a-z0-9]`)
	suggestions := Run(n, noFlags(t))
	if hasCode(suggestions, "coalesce-ranges") {
		t.Fatalf("disjoint ranges should not be flagged as coalescible, got %v", suggestions)
	}
}

func TestApplyFoldsDigitClassAndRoundTrips(t *testing.T) {
	n := mustParse(t, `[0-9]+`)
	rewritten := Apply(n, noFlags(t))
	got := visitor.Compile(rewritten)
	if got != `\d+` {
		t.Fatalf("Apply(...) compiled to %q, want %q", got, `\d+`)
	}
}

func TestApplyLeavesOriginalTreeUntouched(t *testing.T) {
	n := mustParse(t, `[0-9]+`)
	before := visitor.Compile(n)
	Apply(n, noFlags(t))
	after := visitor.Compile(n)
	if before != after {
		t.Fatalf("Apply mutated the input tree: before %q, after %q", before, after)
	}
}

func TestApplyCoalescesRangesAndRoundTrips(t *testing.T) {
	n := mustParse(t, `[a-mn-z]`)
	rewritten := Apply(n, noFlags(t))
	got := visitor.Compile(rewritten)
	reparsed := mustParse(t, got)
	if reparsed.Kind != syntax.KindCharClass || len(reparsed.Parts) != 1 {
		t.Fatalf("coalesced class %q did not reduce to a single range", got)
	}
}
