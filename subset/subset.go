// Package subset validates that a parsed pattern lies in the regular
// fragment regexkit's automaton package can build an NFA from: no
// backreferences, no recursion, and no lookaround assertions (which
// require recording or searching end-of-match context an NFA/DFA
// can't express). A lookbehind whose body has an unbounded quantifier
// gets its own, more specific error, since that's the shape most
// likely to show up by accident (a lookbehind needs a bounded match
// length to run right-to-left in the first place).
package subset

import (
	"github.com/regexkit/regexkit/rxerr"
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// Validate walks root and returns an *rxerr.UnsupportedFeature
// describing the first construct found that falls outside the regular
// fragment, or nil if root is entirely regular.
func Validate(root *syntax.Node) error {
	var err error
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if err != nil {
			return false
		}
		switch n.Kind {
		case syntax.KindBackref:
			err = unsupported("backreference", n.Span)
		case syntax.KindRecursion:
			err = unsupported("recursion", n.Span)
		case syntax.KindAssertion:
			if isLookbehind(n.AssertionKind) && hasUnboundedQuantifier(n.Child) {
				err = unsupported("unbounded quantifier inside a lookbehind", n.Span)
			} else {
				err = unsupported(n.AssertionKind.String()+" assertion", n.Span)
			}
		}
		return err == nil
	})
	return err
}

func isLookbehind(kind syntax.AssertionKind) bool {
	return kind == syntax.Lookbehind || kind == syntax.NegativeLookbehind
}

// hasUnboundedQuantifier reports whether n's body, without crossing
// into a nested Group or Assertion (each a separate match-length
// scope), contains an unbounded quantifier.
func hasUnboundedQuantifier(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case syntax.KindQuantifier:
		if n.Max == -1 {
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

func unsupported(reason string, span syntax.Position) error {
	return &rxerr.UnsupportedFeature{Reason: reason, Span: [2]int{span.Begin, span.End}}
}
