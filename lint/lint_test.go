package lint

import (
	"testing"

	"github.com/regexkit/regexkit/syntax"
)

func mustCompile(t *testing.T, source string) (*syntax.Pattern, *syntax.Node) {
	t.Helper()
	p, err := syntax.Split(source)
	if err != nil {
		t.Fatalf("Split(%q): %v", source, err)
	}
	root, err := syntax.Parse(p.Body)
	if err != nil {
		t.Fatalf("Parse(%q): %v", p.Body, err)
	}
	return &p, root
}

func codes(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Code
	}
	return out
}

func containsCode(issues []Issue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func messageFor(issues []Issue, code string) (string, bool) {
	for _, issue := range issues {
		if issue.Code == code {
			return issue.Message, true
		}
	}
	return "", false
}

func TestNestedQuantifierRuleFlags(t *testing.T) {
	_, root := mustCompile(t, `/(a+)+/`)
	issues := NestedQuantifierRule{}.Check(nil, root)
	msg, ok := messageFor(issues, "nested-quantifier")
	if !ok {
		t.Fatalf("expected nested-quantifier issue, got %v", codes(issues))
	}
	if want := "Nested quantifiers can cause catastrophic backtracking."; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
}

func TestNestedQuantifierRuleIgnoresAtomicGroup(t *testing.T) {
	_, root := mustCompile(t, `/(?>a+)+/`)
	issues := NestedQuantifierRule{}.Check(nil, root)
	if containsCode(issues, "nested-quantifier") {
		t.Fatalf("atomic group should suppress the finding, got %v", codes(issues))
	}
}

func TestNestedQuantifierRuleIgnoresPossessiveOuter(t *testing.T) {
	_, root := mustCompile(t, `/(a+)++/`)
	issues := NestedQuantifierRule{}.Check(nil, root)
	if containsCode(issues, "nested-quantifier") {
		t.Fatalf("possessive outer quantifier should suppress the finding, got %v", codes(issues))
	}
}

func TestAlternationOverlapRuleFlagsSharedFirstChar(t *testing.T) {
	_, root := mustCompile(t, `/cat|car/`)
	issues := AlternationOverlapRule{}.Check(nil, root)
	if !containsCode(issues, "alternation-overlap") {
		t.Fatalf("expected alternation-overlap issue, got %v", codes(issues))
	}
}

func TestAlternationOverlapRuleFlagsLiteralPrefixOverlap(t *testing.T) {
	_, root := mustCompile(t, `/^(http|https|ftp):.+/i`)
	issues := AlternationOverlapRule{}.Check(nil, root)
	msg, ok := messageFor(issues, "alternation-overlap")
	if !ok {
		t.Fatalf("expected alternation-overlap issue, got %v", codes(issues))
	}
	if want := `Alternation branches "http" and "https" overlap.`; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
}

func TestAlternationOverlapRuleIgnoresDisjointBranches(t *testing.T) {
	_, root := mustCompile(t, `/cat|dog/`)
	issues := AlternationOverlapRule{}.Check(nil, root)
	if containsCode(issues, "alternation-overlap") {
		t.Fatalf("disjoint branches should not be flagged, got %v", codes(issues))
	}
}

func TestAlternationOverlapRuleIgnoresBackreferenceBranch(t *testing.T) {
	// \1 is consumed before any literal in the branch, so its FIRST set
	// can't be determined structurally; the branch is excluded rather
	// than compared, leaving only one exact branch and so no overlap.
	_, root := mustCompile(t, `/\1(a)|a/`)
	issues := AlternationOverlapRule{}.Check(nil, root)
	if containsCode(issues, "alternation-overlap") {
		t.Fatalf("an inexact branch should be excluded rather than guessed at, got %v", codes(issues))
	}
}

func TestUselessFlagsRuleFlagsCaseInsensitiveOnDigitsOnly(t *testing.T) {
	pattern, root := mustCompile(t, `/[0-9]+/i`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	msg, ok := messageFor(issues, "useless-flag")
	if !ok {
		t.Fatalf("expected useless-flag issue for /i with no cased literal, got %v", codes(issues))
	}
	if want := "Flag 'i' is useless: the pattern contains no case-sensitive characters."; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
}

func TestUselessFlagsRuleAcceptsUsefulCaseInsensitive(t *testing.T) {
	pattern, root := mustCompile(t, `/abc/i`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if containsCode(issues, "useless-flag") {
		t.Fatalf("/i over a cased literal should not be flagged, got %v", codes(issues))
	}
}

func TestUselessFlagsRuleFlagsDotAllWithoutDot(t *testing.T) {
	pattern, root := mustCompile(t, `/abc/s`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if !containsCode(issues, "useless-flag") {
		t.Fatalf("expected useless-flag issue for /s with no '.', got %v", codes(issues))
	}
}

func TestUselessFlagsRuleFlagsMultilineWithoutAnchor(t *testing.T) {
	pattern, root := mustCompile(t, `/abc/m`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if !containsCode(issues, "useless-flag") {
		t.Fatalf("expected useless-flag issue for /m with no ^/$, got %v", codes(issues))
	}
}

func TestUselessFlagsRuleAcceptsMultilineWithAnchor(t *testing.T) {
	pattern, root := mustCompile(t, `/^abc$/m`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if containsCode(issues, "useless-flag") {
		t.Fatalf("/m with ^ and $ present should not be flagged, got %v", codes(issues))
	}
}

func TestUselessFlagsRuleFlagsAnchoredOnAlreadyAnchoredPattern(t *testing.T) {
	pattern, root := mustCompile(t, `/^abc/A`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if !containsCode(issues, "useless-flag") {
		t.Fatalf("expected useless-flag issue for /A over an already-anchored pattern, got %v", codes(issues))
	}
}

func TestUselessFlagsRuleAcceptsAnchoredOnUnanchoredPattern(t *testing.T) {
	pattern, root := mustCompile(t, `/abc/A`)
	issues := UselessFlagsRule{}.Check(pattern, root)
	if containsCode(issues, "useless-flag") {
		t.Fatalf("/A over an unanchored pattern should not be flagged, got %v", codes(issues))
	}
}

func TestRedundantClassElementRuleFlagsLiteralInRange(t *testing.T) {
	_, root := mustCompile(t, `/[0-95]/`)
	issues := RedundantClassElementRule{}.Check(nil, root)
	msg, ok := messageFor(issues, "redundant-class-element")
	if !ok {
		t.Fatalf("expected redundant-class-element issue, got %v", codes(issues))
	}
	if want := "Redundant elements detected in character class."; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
}

func TestRedundantClassElementRuleFlagsDuplicateRange(t *testing.T) {
	_, root := mustCompile(t, `/[a-za-z]/`)
	issues := RedundantClassElementRule{}.Check(nil, root)
	if !containsCode(issues, "redundant-class-element") {
		t.Fatalf("expected redundant-class-element issue, got %v", codes(issues))
	}
}

func TestRedundantClassElementRuleIgnoresDistinctRanges(t *testing.T) {
	_, root := mustCompile(t, `/[a-z0-9]/`)
	issues := RedundantClassElementRule{}.Check(nil, root)
	if containsCode(issues, "redundant-class-element") {
		t.Fatalf("distinct ranges should not be flagged, got %v", codes(issues))
	}
}

func TestRunDeduplicatesByCodeAndSpan(t *testing.T) {
	_, root := mustCompile(t, `/cat|car/`)
	rules := []Rule{AlternationOverlapRule{}, AlternationOverlapRule{}}
	report := Run(nil, root, rules)
	count := 0
	for _, issue := range report.Issues {
		if issue.Code == "alternation-overlap" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("want exactly one deduplicated alternation-overlap issue, got %d", count)
	}
}

func TestRunOrdersIssuesBySpan(t *testing.T) {
	_, root := mustCompile(t, `/(a+)+|(b+)+/`)
	report := Run(nil, root, []Rule{NestedQuantifierRule{}})
	if len(report.Issues) < 2 {
		t.Fatalf("expected at least two nested-quantifier issues, got %d", len(report.Issues))
	}
	for i := 1; i < len(report.Issues); i++ {
		if report.Issues[i-1].Span.Begin > report.Issues[i].Span.Begin {
			t.Fatalf("issues not ordered by span: %v", report.Issues)
		}
	}
}

func TestDefaultRulesCoversAllFourFamilies(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != 4 {
		t.Fatalf("DefaultRules() returned %d rules, want 4", len(rules))
	}
	want := map[string]bool{
		"nested-quantifier":       false,
		"alternation-overlap":     false,
		"useless-flags":           false,
		"redundant-class-element": false,
	}
	for _, r := range rules {
		if _, ok := want[r.Name()]; !ok {
			t.Fatalf("unexpected rule name %q", r.Name())
		}
		want[r.Name()] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("DefaultRules() missing %q", name)
		}
	}
}
