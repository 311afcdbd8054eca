package solver

import (
	"testing"

	"github.com/regexkit/regexkit/syntax"
)

func mustParse(t *testing.T, body string) *syntax.Node {
	t.Helper()
	n, err := syntax.Parse(body)
	if err != nil {
		t.Fatalf("Parse(%q): %v", body, err)
	}
	return n
}

func TestIntersectionEmptyDetectsDisjointAnchoredPatterns(t *testing.T) {
	a := mustParse(t, `^abc$`)
	b := mustParse(t, `^abd$`)
	res, err := IntersectionEmpty(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("IntersectionEmpty: %v", err)
	}
	if !res.Empty {
		t.Fatalf("expected ^abc$ and ^abd$ to have empty intersection, got witness %q", res.Witness)
	}
}

func TestIntersectionEmptyFindsSharedString(t *testing.T) {
	a := mustParse(t, `a+b`)
	b := mustParse(t, `ab+`)
	res, err := IntersectionEmpty(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("IntersectionEmpty: %v", err)
	}
	if res.Empty {
		t.Fatalf("expected a+b and ab+ to share \"ab\"")
	}
	if res.Witness != "ab" {
		t.Fatalf("Witness = %q, want the shortest shared string \"ab\"", res.Witness)
	}
}

func TestSubsetOfHoldsForStrictSubsetPattern(t *testing.T) {
	a := mustParse(t, `a`)
	b := mustParse(t, `a|b`)
	res, err := SubsetOf(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("SubsetOf: %v", err)
	}
	if !res.Holds {
		t.Fatalf("expected /a/ to be a subset of /a|b/")
	}
}

func TestSubsetOfFailsWithCounterExample(t *testing.T) {
	a := mustParse(t, `a|b`)
	b := mustParse(t, `a`)
	res, err := SubsetOf(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("SubsetOf: %v", err)
	}
	if res.Holds {
		t.Fatalf("expected /a|b/ not to be a subset of /a/")
	}
	if res.CounterExample != "b" {
		t.Fatalf("CounterExample = %q, want %q", res.CounterExample, "b")
	}
}

func TestEquivalentHoldsForReorderedAlternation(t *testing.T) {
	a := mustParse(t, `cat|dog`)
	b := mustParse(t, `dog|cat`)
	res, err := Equivalent(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("Equivalent: %v", err)
	}
	if !res.Equivalent {
		t.Fatalf("expected /cat|dog/ and /dog|cat/ to be equivalent")
	}
}

func TestEquivalentReportsBothWitnessesWhenDifferent(t *testing.T) {
	a := mustParse(t, `a|b`)
	b := mustParse(t, `a|c`)
	res, err := Equivalent(a, b, DefaultLimits())
	if err != nil {
		t.Fatalf("Equivalent: %v", err)
	}
	if res.Equivalent {
		t.Fatalf("expected /a|b/ and /a|c/ not to be equivalent")
	}
	if res.OnlyInA != "b" {
		t.Fatalf("OnlyInA = %q, want %q", res.OnlyInA, "b")
	}
	if res.OnlyInB != "c" {
		t.Fatalf("OnlyInB = %q, want %q", res.OnlyInB, "c")
	}
}

func TestIntersectionEmptyRejectsBackreference(t *testing.T) {
	a := mustParse(t, `(a)\1`)
	b := mustParse(t, `a`)
	if _, err := IntersectionEmpty(a, b, DefaultLimits()); err == nil {
		t.Fatalf("expected an error for a backreference pattern")
	}
}
