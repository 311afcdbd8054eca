package lint

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// UselessFlagsRule flags a set flag that provably has no effect on
// how pattern.Body matches: /i/ with no case-sensitive literal, /s/
// with no `.`, /m/ with no `^`/`$`, /x/ with no whitespace or `#` to
// strip, /U/ with no plain greedy quantifier to invert, /J/ with no
// duplicate capture names, and /A/ when the pattern is already
// anchored at the start. FlagUnicode isn't checked — whether Unicode
// mode changes matching can't be determined from the AST alone.
type UselessFlagsRule struct{}

func (UselessFlagsRule) Name() string { return "useless-flags" }

func (UselessFlagsRule) Check(pattern *syntax.Pattern, root *syntax.Node) []Issue {
	var issues []Issue

	var hasCasedLiteral, hasDot, hasLineAnchor, hasGreedyQuantifier bool
	names := map[string]int{}

	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		switch n.Kind {
		case syntax.KindLiteral:
			if unicode.IsLetter(n.Value) {
				hasCasedLiteral = true
			}
		case syntax.KindCharClass:
			if n.Negated && len(n.Parts) == 0 {
				hasDot = true
			}
		case syntax.KindAnchor:
			if n.AnchorKind == syntax.AnchorCaret || n.AnchorKind == syntax.AnchorDollar {
				hasLineAnchor = true
			}
		case syntax.KindQuantifier:
			if n.Greediness == syntax.Greedy {
				hasGreedyQuantifier = true
			}
		case syntax.KindGroup:
			if n.Name != "" {
				names[n.Name]++
			}
		}
		return true
	})

	flagOrigin := func(f syntax.Flag) (syntax.Position, bool) {
		off, ok := pattern.Flags.Origin(f)
		if !ok {
			return syntax.Position{}, false
		}
		return syntax.Position{Begin: off, End: off + 1}, true
	}

	report := func(f syntax.Flag, why string) {
		span, ok := flagOrigin(f)
		if !ok {
			return
		}
		issues = append(issues, Issue{
			Code:       "useless-flag",
			Severity:   SeverityInfo,
			Message:    fmt.Sprintf("Flag '%c' is useless: %s.", f, why),
			Span:       span,
			Suggestion: "remove the " + string(f) + " flag",
		})
	}

	if pattern.Flags.Has(syntax.FlagCaseInsensitive) && !hasCasedLiteral {
		report(syntax.FlagCaseInsensitive, "the pattern contains no case-sensitive characters")
	}
	if pattern.Flags.Has(syntax.FlagDotAll) && !hasDot {
		report(syntax.FlagDotAll, "the pattern contains no '.' for it to affect")
	}
	if pattern.Flags.Has(syntax.FlagMultiline) && !hasLineAnchor {
		report(syntax.FlagMultiline, "the pattern contains no '^' or '$' for it to affect")
	}
	if pattern.Flags.Has(syntax.FlagExtended) && !strings.ContainsAny(pattern.Body, " \t\n\r\v\f#") {
		report(syntax.FlagExtended, "the pattern contains no whitespace or '#' comment for it to strip")
	}
	if pattern.Flags.Has(syntax.FlagUngreedy) && !hasGreedyQuantifier {
		report(syntax.FlagUngreedy, "the pattern has no plain greedy quantifier for it to invert")
	}
	if pattern.Flags.Has(syntax.FlagDupNames) && !hasDuplicate(names) {
		report(syntax.FlagDupNames, "the pattern has no duplicate named groups")
	}
	if pattern.Flags.Has(syntax.FlagAnchored) && startsWithAnchor(root) {
		report(syntax.FlagAnchored, "the pattern already starts with an explicit anchor")
	}

	return issues
}

func hasDuplicate(names map[string]int) bool {
	for _, count := range names {
		if count > 1 {
			return true
		}
	}
	return false
}

// startsWithAnchor reports whether n's leftmost atom, found by
// unwrapping Sequence/Group/one-or-more-required-Quantifier wrappers
// that don't themselves consume input before it, is a start-of-text
// anchor. Alternation isn't unwrapped: every branch would have to
// agree, which is a much rarer and more fragile thing to assert.
func startsWithAnchor(n *syntax.Node) bool {
	for n != nil {
		switch n.Kind {
		case syntax.KindAnchor:
			return n.AnchorKind == syntax.AnchorCaret || n.AnchorKind == syntax.AnchorStartText
		case syntax.KindSequence:
			if len(n.Children) == 0 {
				return false
			}
			n = n.Children[0]
		case syntax.KindGroup:
			n = n.Child
		case syntax.KindQuantifier:
			if n.Min == 0 {
				return false
			}
			n = n.Child
		default:
			return false
		}
	}
	return false
}
