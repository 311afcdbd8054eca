package visitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/regexkit/regexkit/syntax"
)

// Compile re-emits n as PCRE-style pattern body text. It is the
// identity operation when applied straight to a freshly parsed tree
// (compile(parse(body)) reproduces a pattern equivalent to body, spec
// §8's round-trip property) and is also what the optimizer and the
// root package's Emit call after rewriting a tree, mirroring
// quasilyte-regex/syntax/ast.go's formatExprSyntax recursive
// re-emission from its tagged Expr tree.
func Compile(n *syntax.Node) string {
	var b strings.Builder
	compile(&b, n)
	return b.String()
}

func compile(b *strings.Builder, n *syntax.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case syntax.KindLiteral:
		b.WriteString(escapeLiteral(n.Value))

	case syntax.KindCharClass:
		compileCharClass(b, n)

	case syntax.KindSequence:
		for _, child := range n.Children {
			compile(b, child)
		}

	case syntax.KindAlternation:
		for i, child := range n.Children {
			if i > 0 {
				b.WriteByte('|')
			}
			compile(b, child)
		}

	case syntax.KindGroup:
		compileGroup(b, n)

	case syntax.KindQuantifier:
		compile(b, n.Child)
		compileQuantifierSuffix(b, n)

	case syntax.KindAnchor:
		b.WriteString(n.AnchorKind.String())

	case syntax.KindAssertion:
		b.WriteString(assertionOpen(n.AssertionKind))
		compile(b, n.Child)
		b.WriteByte(')')

	case syntax.KindBackref:
		compileBackref(b, n)

	case syntax.KindRecursion:
		compileRecursion(b, n)
	}
}

func escapeLiteral(r rune) string {
	switch r {
	case '.', '^', '$', '|', '(', ')', '[', ']', '{', '}', '*', '+', '?', '\\':
		return "\\" + string(r)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	default:
		return string(r)
	}
}

func compileCharClass(b *strings.Builder, n *syntax.Node) {
	if len(n.Parts) == 0 {
		if n.Negated {
			b.WriteByte('.')
			return
		}
		b.WriteString("[]")
		return
	}

	// A bare \d, \w, \s, or \p{...} — not a bracketed class at all —
	// round-trips to itself rather than a needlessly bracketed [\d].
	if !n.Negated && len(n.Parts) == 1 && n.Parts[0].Kind == syntax.PartShorthand {
		part := n.Parts[0]
		b.WriteString(compileShorthand(part.Shorthand, part.PropertyName, part.PropertyNegated))
		return
	}

	b.WriteByte('[')
	if n.Negated {
		b.WriteByte('^')
	}
	for _, part := range n.Parts {
		switch part.Kind {
		case syntax.PartLiteral:
			b.WriteString(escapeClassLiteral(part.Value))
		case syntax.PartRange:
			b.WriteString(escapeClassLiteral(part.Start))
			b.WriteByte('-')
			b.WriteString(escapeClassLiteral(part.End))
		case syntax.PartShorthand:
			b.WriteString(compileShorthand(part.Shorthand, part.PropertyName, part.PropertyNegated))
		}
	}
	b.WriteByte(']')
}

func escapeClassLiteral(r rune) string {
	switch r {
	case ']', '\\', '^', '-':
		return "\\" + string(r)
	default:
		return string(r)
	}
}

func compileShorthand(kind syntax.ShorthandKind, propName string, propNegated bool) string {
	if kind == syntax.ShorthandUnicodeProperty {
		letter := "p"
		if propNegated {
			letter = "P"
		}
		if len(propName) == 1 {
			return `\` + letter + propName
		}
		return `\` + letter + "{" + propName + "}"
	}
	return kind.String()
}

func compileGroup(b *strings.Builder, n *syntax.Node) {
	switch n.GroupKind {
	case syntax.GroupCapturing:
		b.WriteByte('(')
	case syntax.GroupNonCapturing:
		b.WriteString("(?:")
	case syntax.GroupAtomic:
		b.WriteString("(?>")
	case syntax.GroupBranchReset:
		b.WriteString("(?|")
	case syntax.GroupNamed:
		b.WriteString("(?<")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
	compile(b, n.Child)
	b.WriteByte(')')
}

func compileQuantifierSuffix(b *strings.Builder, n *syntax.Node) {
	switch {
	case n.Min == 0 && n.Max == -1:
		b.WriteByte('*')
	case n.Min == 1 && n.Max == -1:
		b.WriteByte('+')
	case n.Min == 0 && n.Max == 1:
		b.WriteByte('?')
	case n.Max == -1:
		fmt.Fprintf(b, "{%d,}", n.Min)
	case n.Min == n.Max:
		fmt.Fprintf(b, "{%d}", n.Min)
	default:
		fmt.Fprintf(b, "{%d,%d}", n.Min, n.Max)
	}
	switch n.Greediness {
	case syntax.Lazy:
		b.WriteByte('?')
	case syntax.Possessive:
		b.WriteByte('+')
	}
}

func assertionOpen(kind syntax.AssertionKind) string {
	switch kind {
	case syntax.Lookahead:
		return "(?="
	case syntax.NegativeLookahead:
		return "(?!"
	case syntax.Lookbehind:
		return "(?<="
	case syntax.NegativeLookbehind:
		return "(?<!"
	default:
		return "(?="
	}
}

func compileBackref(b *strings.Builder, n *syntax.Node) {
	if n.TargetName != "" {
		b.WriteString(`\k<`)
		b.WriteString(n.TargetName)
		b.WriteByte('>')
		return
	}
	b.WriteByte('\\')
	b.WriteString(strconv.Itoa(n.TargetIndex))
}

func compileRecursion(b *strings.Builder, n *syntax.Node) {
	switch {
	case n.IsRoot:
		b.WriteString("(?R)")
	case n.TargetName != "":
		b.WriteString("(?&")
		b.WriteString(n.TargetName)
		b.WriteByte(')')
	default:
		b.WriteString("(?")
		b.WriteString(strconv.Itoa(n.TargetIndex))
		b.WriteByte(')')
	}
}
