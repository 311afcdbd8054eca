package charset

import (
	"github.com/regexkit/regexkit/rxerr"
	"github.com/regexkit/regexkit/syntax"
)

var (
	digitSet = New(Interval{'0', '9'})
	wordSet  = New(Interval{'a', 'z'}, Interval{'A', 'Z'}, Interval{'0', '9'}, Interval{'_', '_'})
	spaceSet = New(Interval{'\t', '\r'}, Interval{' ', ' '})
)

// unicodeProperties covers the handful of \p{...} categories common
// enough to appear in real patterns; anything else is reported as
// UnsupportedFeature rather than silently approximated, since the
// full Unicode category tables are out of scope (DESIGN.md).
var unicodeProperties = map[string]Set{
	"L":  New(Interval{'a', 'z'}, Interval{'A', 'Z'}, Interval{0x00C0, 0x024F}),
	"Lu": New(Interval{'A', 'Z'}, Interval{0x00C0, 0x00DE}),
	"Ll": New(Interval{'a', 'z'}, Interval{0x00DF, 0x00FF}),
	"N":  digitSet,
	"Nd": digitSet,
	"Zs": New(Interval{' ', ' '}, Interval{0x00A0, 0x00A0}),
}

// FromShorthand resolves a shorthand escape (\d \D \w \W \s \S or
// \p{Name}/\P{Name}) to its codepoint Set.
func FromShorthand(kind syntax.ShorthandKind, propName string, propNegated bool) (Set, error) {
	switch kind {
	case syntax.ShorthandDigit:
		return digitSet, nil
	case syntax.ShorthandNonDigit:
		return Negate(digitSet), nil
	case syntax.ShorthandWord:
		return wordSet, nil
	case syntax.ShorthandNonWord:
		return Negate(wordSet), nil
	case syntax.ShorthandSpace:
		return spaceSet, nil
	case syntax.ShorthandNonSpace:
		return Negate(spaceSet), nil
	case syntax.ShorthandUnicodeProperty:
		base, ok := unicodeProperties[propName]
		if !ok {
			return nil, &rxerr.UnsupportedFeature{Reason: "unicode property \\p{" + propName + "}"}
		}
		if propNegated {
			return Negate(base), nil
		}
		return base, nil
	default:
		return nil, &rxerr.UnsupportedFeature{Reason: "unknown shorthand class"}
	}
}

// FromCharClass resolves a KindCharClass node to its codepoint Set,
// applying class-level negation last.
func FromCharClass(n *syntax.Node) (Set, error) {
	var parts []Interval
	var out Set
	for _, part := range n.Parts {
		switch part.Kind {
		case syntax.PartLiteral:
			parts = append(parts, Interval{Lo: part.Value, Hi: part.Value})
		case syntax.PartRange:
			parts = append(parts, Interval{Lo: part.Start, Hi: part.End})
		case syntax.PartShorthand:
			s, err := FromShorthand(part.Shorthand, part.PropertyName, part.PropertyNegated)
			if err != nil {
				return nil, err
			}
			out = Union(out, s)
		}
	}
	out = Union(out, New(parts...))
	if n.Negated {
		out = Negate(out)
	}
	return out, nil
}
