// Package optimize rewrites a parsed pattern into an equivalent but
// shorter form: a character class reduced to its shorthand escape,
// adjacent ranges coalesced. Every rewrite is guarded by a
// precondition that must hold before it fires, so the result always
// matches the same language as the input (see each Rewrite's doc
// comment for its guard).
package optimize

import (
	"fmt"

	"github.com/regexkit/regexkit/charset"
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// Suggestion records one rewrite optimize.Run found: the span it
// applies to and the replacement text (via visitor.Compile) it would
// produce there.
type Suggestion struct {
	Code        string
	Span        syntax.Position
	Replacement string
}

// Run walks root looking for applicable rewrites and returns them
// without modifying the tree — callers decide whether to apply a
// Suggestion via Apply. flags is the pattern's FlagSet, since some
// rewrites (the \w fold) are only safe under certain flags.
func Run(root *syntax.Node, flags syntax.FlagSet) []Suggestion {
	var out []Suggestion
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if n.Kind != syntax.KindCharClass {
			return true
		}
		if s, ok := foldToWordShorthand(n, flags); ok {
			out = append(out, s)
			return true
		}
		if s, ok := foldToDigitShorthand(n); ok {
			out = append(out, s)
		}
		if s, ok := coalesceRanges(n); ok {
			out = append(out, s)
		}
		return true
	})
	return out
}

// Apply rewrites every node in root that matches one of optimize's
// guarded rewrites and returns the rewritten tree; root is left
// untouched (visitor.Rewrite copies on write).
func Apply(root *syntax.Node, flags syntax.FlagSet) *syntax.Node {
	return visitor.Rewrite(root, func(n *syntax.Node) *syntax.Node {
		if n.Kind != syntax.KindCharClass {
			return n
		}
		if isWordShorthand(n, flags) {
			return shorthandNode(n.Span, syntax.ShorthandWord)
		}
		if isDigitShorthand(n) {
			return shorthandNode(n.Span, syntax.ShorthandDigit)
		}
		if coalesced, ok := coalesceRangesNode(n); ok {
			return coalesced
		}
		return n
	})
}

func shorthandNode(span syntax.Position, kind syntax.ShorthandKind) *syntax.Node {
	return &syntax.Node{
		Kind: syntax.KindCharClass,
		Span: span,
		Parts: []syntax.ClassPart{
			{Kind: syntax.PartShorthand, Span: span, Shorthand: kind},
		},
	}
}

func foldToWordShorthand(n *syntax.Node, flags syntax.FlagSet) (Suggestion, bool) {
	if !isWordShorthand(n, flags) {
		return Suggestion{}, false
	}
	return Suggestion{Code: "fold-word-shorthand", Span: n.Span, Replacement: `\w`}, true
}

// isWordShorthand matches `[a-zA-Z0-9_]` (any permutation of exactly
// those four elements, no more and no fewer), gated on the Unicode
// flag being absent — regexkit doesn't model Unicode word-char
// semantics for \w, so the fold would change behavior once /u widens
// what \w matches.
func isWordShorthand(n *syntax.Node, flags syntax.FlagSet) bool {
	if n.Negated || flags.Has(syntax.FlagUnicode) || len(n.Parts) != 4 {
		return false
	}
	want := map[string]bool{"a-z": false, "A-Z": false, "0-9": false, "_": false}
	for _, part := range n.Parts {
		key, ok := classify(part)
		if !ok {
			return false
		}
		seen, known := want[key]
		if !known || seen {
			return false
		}
		want[key] = true
	}
	for _, seen := range want {
		if !seen {
			return false
		}
	}
	return true
}

func foldToDigitShorthand(n *syntax.Node) (Suggestion, bool) {
	if !isDigitShorthand(n) {
		return Suggestion{}, false
	}
	return Suggestion{Code: "fold-digit-shorthand", Span: n.Span, Replacement: `\d`}, true
}

// isDigitShorthand matches `[0-9]` exactly (one range, no negation).
// Unconditional: regexkit's \d is always the ASCII digit range,
// matching [0-9] exactly.
func isDigitShorthand(n *syntax.Node) bool {
	if n.Negated || len(n.Parts) != 1 {
		return false
	}
	part := n.Parts[0]
	return part.Kind == syntax.PartRange && part.Start == '0' && part.End == '9'
}

func classify(part syntax.ClassPart) (string, bool) {
	switch part.Kind {
	case syntax.PartRange:
		return fmt.Sprintf("%c-%c", part.Start, part.End), true
	case syntax.PartLiteral:
		return string(part.Value), true
	default:
		return "", false
	}
}

// coalesceRanges reports a Suggestion when two or more of n's parts
// describe adjacent or overlapping ranges/literals that collapse into
// fewer elements (e.g. `[a-mn-z]` → `[a-z]`).
func coalesceRanges(n *syntax.Node) (Suggestion, bool) {
	result, ok := coalesceRangesNode(n)
	if !ok {
		return Suggestion{}, false
	}
	return Suggestion{
		Code:        "coalesce-ranges",
		Span:        n.Span,
		Replacement: visitor.Compile(result),
	}, true
}

func coalesceRangesNode(n *syntax.Node) (*syntax.Node, bool) {
	var intervals []charset.Interval
	var other []syntax.ClassPart
	for _, part := range n.Parts {
		switch part.Kind {
		case syntax.PartLiteral:
			intervals = append(intervals, charset.Interval{Lo: part.Value, Hi: part.Value})
		case syntax.PartRange:
			intervals = append(intervals, charset.Interval{Lo: part.Start, Hi: part.End})
		default:
			other = append(other, part)
		}
	}
	if len(intervals) < 2 {
		return nil, false
	}
	merged := charset.New(intervals...)
	if len(merged)+len(other) >= len(n.Parts) {
		return nil, false
	}

	parts := make([]syntax.ClassPart, 0, len(merged)+len(other))
	for _, iv := range merged {
		if iv.Lo == iv.Hi {
			parts = append(parts, syntax.ClassPart{Kind: syntax.PartLiteral, Span: n.Span, Value: iv.Lo})
		} else {
			parts = append(parts, syntax.ClassPart{Kind: syntax.PartRange, Span: n.Span, Start: iv.Lo, End: iv.Hi})
		}
	}
	parts = append(parts, other...)

	out := *n
	out.Parts = parts
	return &out, true
}
