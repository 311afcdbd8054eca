package lint

import (
	"fmt"

	"github.com/regexkit/regexkit/charset"
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// RedundantClassElementRule flags a character-class element whose
// codepoints are entirely covered by an earlier element in the same
// class — a literal `5` after a `0-9` range, a `0-9` range repeated
// twice, a `\d` made redundant by an earlier `0-9`. It compares each
// part's own interval set rather than the class's fully-resolved set,
// so the finding can point at the specific redundant span instead of
// the class as a whole.
type RedundantClassElementRule struct{}

func (RedundantClassElementRule) Name() string { return "redundant-class-element" }

func (RedundantClassElementRule) Check(_ *syntax.Pattern, root *syntax.Node) []Issue {
	var issues []Issue
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if n.Kind != syntax.KindCharClass || len(n.Parts) < 2 {
			return true
		}

		var covered charset.Set
		for _, part := range n.Parts {
			set, err := partSet(part)
			if err != nil {
				continue
			}
			if !set.IsEmpty() && isSubset(set, covered) {
				issues = append(issues, Issue{
					Code:       "redundant-class-element",
					Severity:   SeverityInfo,
					Message:    "Redundant elements detected in character class.",
					Span:       part.Span,
					Suggestion: "remove the redundant element",
				})
			}
			covered = charset.Union(covered, set)
		}
		return true
	})
	return issues
}

// isSubset reports whether every codepoint in a is also in b, compared
// by total codepoint count rather than interval-by-interval since an
// equal-coverage intersection can land on different interval
// boundaries than a itself.
func isSubset(a, b charset.Set) bool {
	return setSize(charset.Intersect(a, b)) == setSize(a)
}

func setSize(s charset.Set) int64 {
	var total int64
	for _, iv := range s {
		total += int64(iv.Hi-iv.Lo) + 1
	}
	return total
}

func partSet(part syntax.ClassPart) (charset.Set, error) {
	switch part.Kind {
	case syntax.PartLiteral:
		return charset.Single(part.Value), nil
	case syntax.PartRange:
		return charset.New(charset.Interval{Lo: part.Start, Hi: part.End}), nil
	case syntax.PartShorthand:
		return charset.FromShorthand(part.Shorthand, part.PropertyName, part.PropertyNegated)
	default:
		return nil, fmt.Errorf("unknown class part kind %d", part.Kind)
	}
}
