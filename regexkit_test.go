package regexkit

import (
	"strings"
	"testing"

	"github.com/regexkit/regexkit/solver"
)

func issueMessages(r AnalyzeReport) []string {
	out := make([]string, len(r.LintIssues))
	for i, issue := range r.LintIssues {
		out[i] = issue.Message
	}
	return out
}

func containsSubstring(messages []string, want string) bool {
	for _, m := range messages {
		if strings.Contains(m, want) {
			return true
		}
	}
	return false
}

func TestAnalyzeFlagsNestedQuantifiers(t *testing.T) {
	report, err := Analyze(`/(a+)+/`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := "Nested quantifiers can cause catastrophic backtracking."
	if !containsSubstring(issueMessages(report), want) {
		t.Fatalf("Analyze(%q) issues = %v, want %q", `/(a+)+/`, issueMessages(report), want)
	}
}

func TestAnalyzeFlagsUselessCaseInsensitiveFlag(t *testing.T) {
	report, err := Analyze(`/[0-9]+/i`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := "Flag 'i' is useless: the pattern contains no case-sensitive characters."
	if !containsSubstring(issueMessages(report), want) {
		t.Fatalf("Analyze(%q) issues = %v, want %q", `/[0-9]+/i`, issueMessages(report), want)
	}
}

func TestAnalyzeFlagsOverlappingAlternationBranches(t *testing.T) {
	report, err := Analyze(`/^(http|https|ftp):.+/i`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	want := `Alternation branches "http" and "https" overlap.`
	if !containsSubstring(issueMessages(report), want) {
		t.Fatalf("Analyze(%q) issues = %v, want %q", `/^(http|https|ftp):.+/i`, issueMessages(report), want)
	}
}

func TestAnalyzeStatsCountBySeverity(t *testing.T) {
	report, err := Analyze(`/(a+)+/`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Stats.Warnings == 0 {
		t.Fatalf("Stats.Warnings = 0, want at least one for a nested-quantifier pattern")
	}
}

func TestOptimizeFoldsCharClassToWordShorthand(t *testing.T) {
	got, err := Optimize(`/[a-zA-Z0-9_]+/`)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if got != `/\w+/` {
		t.Fatalf("Optimize(%q) = %q, want %q", `/[a-zA-Z0-9_]+/`, got, `/\w+/`)
	}
}

func TestEquivalentHoldsForReorderedAlternation(t *testing.T) {
	result, err := Equivalent(`/a|b/`, `/b|a/`, solver.DefaultLimits())
	if err != nil {
		t.Fatalf("Equivalent: %v", err)
	}
	if !result.Equivalent {
		t.Fatalf("Equivalent(a|b, b|a) = %+v, want Equivalent=true", result)
	}
}

func TestSubsetOfHoldsForStrictSubsetPattern(t *testing.T) {
	result, err := SubsetOf(`/a/`, `/a|b/`, solver.DefaultLimits())
	if err != nil {
		t.Fatalf("SubsetOf: %v", err)
	}
	if !result.Holds {
		t.Fatalf("SubsetOf(a, a|b) = %+v, want Holds=true", result)
	}
}

func TestIntersectionEmptyDetectsDisjointAnchoredPatterns(t *testing.T) {
	result, err := IntersectionEmpty(`/^abc$/`, `/^abd$/`, solver.DefaultLimits())
	if err != nil {
		t.Fatalf("IntersectionEmpty: %v", err)
	}
	if !result.Empty {
		t.Fatalf("IntersectionEmpty(^abc$, ^abd$) = %+v, want Empty=true", result)
	}
}

func TestParseRoundTripsThroughEmit(t *testing.T) {
	source := `/[a-z]+\d*/im`
	pattern, root, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	reemitted := Emit(pattern, root)

	_, root2, err := Parse(reemitted)
	if err != nil {
		t.Fatalf("Parse(%q) (round trip): %v", reemitted, err)
	}
	if root.Kind != root2.Kind {
		t.Fatalf("round trip changed root kind: %v != %v", root.Kind, root2.Kind)
	}
}

func TestKitParseCachesAST(t *testing.T) {
	kit := NewKit(DefaultCache())
	_, root1, err := kit.Parse(`/abc/`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, root2, err := kit.Parse(`/abc/`)
	if err != nil {
		t.Fatalf("Parse (cached): %v", err)
	}
	if root1 != root2 {
		t.Fatalf("Kit.Parse should return the identical cached *syntax.Node on a repeat call")
	}
}

func TestKitAnalyzeWorksWithNilCache(t *testing.T) {
	kit := NewKit(nil)
	report, err := kit.Analyze(`/(a+)+/`)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.LintIssues) == 0 {
		t.Fatalf("expected lint issues for a nested-quantifier pattern")
	}
}
