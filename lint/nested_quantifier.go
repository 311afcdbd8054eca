package lint

import (
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// NestedQuantifierRule flags a quantified group whose body contains
// its own unbounded quantifier — the classic catastrophic-
// backtracking shape, `(a+)+`. An atomic group or a possessive
// quantifier (inner or outer) suppresses the finding, since neither
// can re-explore the choice points that cause the blowup.
type NestedQuantifierRule struct{}

func (NestedQuantifierRule) Name() string { return "nested-quantifier" }

func (NestedQuantifierRule) Check(_ *syntax.Pattern, root *syntax.Node) []Issue {
	var issues []Issue
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if n.Kind != syntax.KindQuantifier {
			return true
		}
		if n.Greediness == syntax.Possessive {
			return true
		}
		group := n.Child
		if group == nil || group.Kind != syntax.KindGroup || group.GroupKind == syntax.GroupAtomic {
			return true
		}
		if hasUnboundedQuantifier(group.Child) {
			issues = append(issues, Issue{
				Code:     "nested-quantifier",
				Severity: SeverityWarning,
				Message:  "Nested quantifiers can cause catastrophic backtracking.",
				Span:     n.Span,
				Suggestion: "make the group atomic ((?>...)) or the inner quantifier " +
					"possessive (e.g. a++) to rule out exponential backtracking",
			})
		}
		return true
	})
	return issues
}

// hasUnboundedQuantifier reports whether n's body (without crossing
// into a nested Group or Assertion, which is a separate backtracking
// scope) contains an unbounded, non-possessive quantifier.
func hasUnboundedQuantifier(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case syntax.KindQuantifier:
		if n.Max == -1 && n.Greediness != syntax.Possessive {
			return true
		}
		return hasUnboundedQuantifier(n.Child)
	case syntax.KindSequence, syntax.KindAlternation:
		for _, child := range n.Children {
			if hasUnboundedQuantifier(child) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
