package lint

import (
	"fmt"
	"strings"

	"github.com/regexkit/regexkit/charset"
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// AlternationOverlapRule flags alternation branches whose FIRST sets
// (the codepoints each branch could start matching with) overlap —
// a strong signal that one branch can never be reached because an
// earlier, overlapping branch always wins, or that the branches were
// meant to be mutually exclusive and aren't.
//
// A branch whose FIRST set can't be computed exactly (it reaches a
// backreference or recursion point before consuming a character) is
// excluded from the comparison rather than guessed at, to avoid false
// positives.
type AlternationOverlapRule struct{}

func (AlternationOverlapRule) Name() string { return "alternation-overlap" }

func (AlternationOverlapRule) Check(_ *syntax.Pattern, root *syntax.Node) []Issue {
	var issues []Issue
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if n.Kind != syntax.KindAlternation {
			return true
		}

		type branchFirst struct {
			index int
			set   charset.Set
		}
		var firsts []branchFirst
		for i, branch := range n.Children {
			set, _, exact := firstSet(branch)
			if !exact || set.IsEmpty() {
				continue
			}
			firsts = append(firsts, branchFirst{index: i, set: set})
		}

		for a := 0; a < len(firsts); a++ {
			for b := a + 1; b < len(firsts); b++ {
				overlap := charset.Intersect(firsts[a].set, firsts[b].set)
				if overlap.IsEmpty() {
					continue
				}
				left := n.Children[firsts[a].index]
				right := n.Children[firsts[b].index]

				message := fmt.Sprintf("alternation branches %d and %d can both start with the same character",
					firsts[a].index+1, firsts[b].index+1)
				if leftLit, ok := literalString(left); ok {
					if rightLit, ok := literalString(right); ok && leftLit != rightLit {
						if strings.HasPrefix(rightLit, leftLit) || strings.HasPrefix(leftLit, rightLit) {
							message = fmt.Sprintf("Alternation branches %q and %q overlap.", leftLit, rightLit)
						}
					}
				}

				issues = append(issues, Issue{
					Code:       "alternation-overlap",
					Severity:   SeverityWarning,
					Message:    message,
					Span:       syntax.Cover(left.Span, right.Span),
					Suggestion: "reorder or merge the overlapping branches, or make them mutually exclusive",
				})
			}
		}
		return true
	})
	return issues
}

// literalString returns the exact string n matches when n is built
// entirely out of literal characters (a bare Literal, or a Sequence of
// them), and false otherwise. This is what lets the overlap rule tell
// a true literal-prefix case ("http" vs "https") apart from a FIRST-set
// overlap that isn't reducible to two concrete strings.
func literalString(n *syntax.Node) (string, bool) {
	switch n.Kind {
	case syntax.KindLiteral:
		return string(n.Value), true
	case syntax.KindSequence:
		var b strings.Builder
		for _, child := range n.Children {
			s, ok := literalString(child)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	default:
		return "", false
	}
}

// firstSet computes the FIRST set of n: the codepoints a match of n
// could begin with. nullable reports whether n can match the empty
// string. exact is false once the computation crosses a construct
// (backreference, recursion) whose possible leading characters can't
// be determined structurally.
func firstSet(n *syntax.Node) (set charset.Set, nullable bool, exact bool) {
	if n == nil {
		return nil, true, true
	}

	switch n.Kind {
	case syntax.KindLiteral:
		return charset.Single(n.Value), false, true

	case syntax.KindCharClass:
		s, err := charset.FromCharClass(n)
		if err != nil {
			return nil, false, false
		}
		return s, false, true

	case syntax.KindAnchor:
		return nil, true, true

	case syntax.KindAssertion:
		return nil, true, true

	case syntax.KindBackref, syntax.KindRecursion:
		return nil, false, false

	case syntax.KindGroup:
		return firstSet(n.Child)

	case syntax.KindQuantifier:
		childSet, _, childExact := firstSet(n.Child)
		return childSet, n.Min == 0, childExact

	case syntax.KindAlternation:
		var out charset.Set
		anyNullable := false
		for _, branch := range n.Children {
			s, null, ok := firstSet(branch)
			if !ok {
				return nil, false, false
			}
			out = charset.Union(out, s)
			if null {
				anyNullable = true
			}
		}
		return out, anyNullable, true

	case syntax.KindSequence:
		var out charset.Set
		for _, child := range n.Children {
			s, null, ok := firstSet(child)
			if !ok {
				return nil, false, false
			}
			out = charset.Union(out, s)
			if !null {
				return out, false, true
			}
		}
		return out, true, true

	default:
		return nil, false, false
	}
}
