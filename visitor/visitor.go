// Package visitor implements the generic traversal and rewriting
// framework shared by the lint, optimize, and subset packages: a pure
// Walk over a syntax.Node tree, and a node-replacing Rewrite. Both
// dispatch on syntax.Kind with an explicit switch rather than through
// per-node-type methods, and thread an ancestor stack instead of
// giving nodes back-pointers.
package visitor

import "github.com/regexkit/regexkit/syntax"

// VisitFunc is called once per node in pre-order. ancestors holds the
// chain from the root down to n's parent (both inclusive), closest
// ancestor last; it is empty when n is the root itself. Returning false skips descending into n's
// children, but sibling traversal continues.
type VisitFunc func(n *syntax.Node, ancestors []*syntax.Node) bool

// Walk traverses n and its descendants in pre-order, calling visit for
// every node reached.
func Walk(n *syntax.Node, visit VisitFunc) {
	walk(n, nil, visit)
}

func walk(n *syntax.Node, ancestors []*syntax.Node, visit VisitFunc) {
	if n == nil {
		return
	}
	if !visit(n, ancestors) {
		return
	}
	next := append(ancestors, n)

	switch n.Kind {
	case syntax.KindGroup, syntax.KindAssertion, syntax.KindQuantifier:
		walk(n.Child, next, visit)
	case syntax.KindAlternation, syntax.KindSequence:
		for _, child := range n.Children {
			walk(child, next, visit)
		}
	}
}

// Children returns n's direct children in traversal order (empty for
// leaves). Useful for callers that want the list without re-deriving
// the Kind-specific field names.
func Children(n *syntax.Node) []*syntax.Node {
	switch n.Kind {
	case syntax.KindGroup, syntax.KindAssertion, syntax.KindQuantifier:
		if n.Child == nil {
			return nil
		}
		return []*syntax.Node{n.Child}
	case syntax.KindAlternation, syntax.KindSequence:
		return n.Children
	default:
		return nil
	}
}

// RewriteFunc is called once per node in post-order (children already
// rewritten). It returns the node to keep in n's place — itself, a
// modified copy, or a different node entirely.
type RewriteFunc func(n *syntax.Node) *syntax.Node

// Rewrite applies fn bottom-up over n's tree and returns the
// (possibly replaced) root. fn is never called with a nil node.
func Rewrite(n *syntax.Node, fn RewriteFunc) *syntax.Node {
	if n == nil {
		return nil
	}

	out := *n
	switch n.Kind {
	case syntax.KindGroup, syntax.KindAssertion, syntax.KindQuantifier:
		out.Child = Rewrite(n.Child, fn)
	case syntax.KindAlternation, syntax.KindSequence:
		if n.Children != nil {
			children := make([]*syntax.Node, len(n.Children))
			for i, child := range n.Children {
				children[i] = Rewrite(child, fn)
			}
			out.Children = children
		}
	}
	return fn(&out)
}
