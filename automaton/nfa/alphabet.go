package nfa

import (
	"sort"

	"github.com/regexkit/regexkit/charset"
	"github.com/regexkit/regexkit/syntax"
	"github.com/regexkit/regexkit/visitor"
)

// SentinelStart and SentinelEnd are synthetic symbols for the
// zero-width start-of-text/end-of-text boundary. They never enter
// Alphabet.Intervals: an anchor (^, $, \A, \z, \Z) compiles to a
// transition on one of them, NFA.Anchored records that the pattern has
// one, and the DFA builder consumes SentinelStart once before the input
// and SentinelEnd once after it. They sit past charset.MaxRune so they
// can never collide with a real codepoint.
const (
	SentinelStart rune = charset.MaxRune + 1
	SentinelEnd   rune = charset.MaxRune + 2
)

// Alphabet is the codepoint-interval partition every transition in an
// NFA is expressed over: the codepoint domain split at each interval
// boundary the pattern actually uses, so any two codepoints inside the
// same partition interval always take the same transition everywhere
// in the automaton (spec.md §4.7).
type Alphabet struct {
	Intervals []charset.Interval
}

// intervalsFor returns the alphabet intervals that exactly cover s. s
// must be expressible as a union of Alphabet intervals, which holds
// for any Set built from the same boundaries buildAlphabet collected —
// every CharClass/shorthand resolved during compilation already went
// into the boundary set that produced a.
func (a Alphabet) intervalsFor(s charset.Set) []Range {
	var out []Range
	for _, iv := range a.Intervals {
		if s.Contains(iv.Lo) {
			out = append(out, Range{Lo: iv.Lo, Hi: iv.Hi})
		}
	}
	return out
}

// boundaries accumulates interval boundary points while walking the
// AST. Rather than a fixed [256]byte bitmap sized for a byte alphabet,
// this is keyed by the actual boundary rune: the codepoint domain (up to
// 0x10FFFF) is both too large and, for any real pattern, far too
// sparsely used to justify a dense per-codepoint array.
type boundaries struct {
	points map[rune]bool
}

func newBoundaries() *boundaries {
	return &boundaries{points: make(map[rune]bool)}
}

func (b *boundaries) markRange(lo, hi rune) {
	if lo > 0 {
		b.points[lo-1] = true
	}
	b.points[hi] = true
}

func (b *boundaries) markSet(s charset.Set) {
	for _, iv := range s {
		b.markRange(iv.Lo, iv.Hi)
	}
}

// partition splits [0, charset.MaxRune] at every recorded boundary,
// producing a sorted, disjoint, contiguous covering of the domain.
func (b *boundaries) partition() []charset.Interval {
	points := make([]rune, 0, len(b.points))
	for r := range b.points {
		points = append(points, r)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	var out []charset.Interval
	lo := rune(0)
	for _, hi := range points {
		if hi < lo {
			continue
		}
		out = append(out, charset.Interval{Lo: lo, Hi: hi})
		lo = hi + 1
	}
	if lo <= charset.MaxRune {
		out = append(out, charset.Interval{Lo: lo, Hi: charset.MaxRune})
	}
	return out
}

// buildAlphabet walks root collecting every interval boundary used by
// a Literal or CharClass node and reports whether a start/end anchor
// is present (the other boundary assertions, \b \B \G, are treated as
// always-satisfied zero-width steps rather than alphabet symbols — see
// compile.go).
func buildAlphabet(root *syntax.Node) (Alphabet, bool, error) {
	b := newBoundaries()
	anchored := false
	var err error
	visitor.Walk(root, func(n *syntax.Node, _ []*syntax.Node) bool {
		if err != nil {
			return false
		}
		switch n.Kind {
		case syntax.KindLiteral:
			b.markRange(n.Value, n.Value)
		case syntax.KindCharClass:
			set, e := charset.FromCharClass(n)
			if e != nil {
				err = e
				return false
			}
			b.markSet(set)
		case syntax.KindAnchor:
			if isBoundaryAnchor(n.AnchorKind) {
				anchored = true
			}
		}
		return true
	})
	if err != nil {
		return Alphabet{}, false, err
	}
	intervals := b.partition()
	if len(intervals) == 0 {
		intervals = []charset.Interval{{Lo: 0, Hi: charset.MaxRune}}
	}
	return Alphabet{Intervals: intervals}, anchored, nil
}

// MergeAlphabets returns the common refinement of a and b: the
// partition obtained by cutting the domain at every boundary either
// one uses. Comparing two patterns (intersection/subset/equivalence)
// requires stepping both patterns' automata over the same symbol
// sequence, so the DFA builder determinizes both NFAs against this
// shared, finer alphabet rather than each one's own.
func MergeAlphabets(a, b Alphabet) Alphabet {
	bounds := newBoundaries()
	for _, iv := range a.Intervals {
		bounds.markRange(iv.Lo, iv.Hi)
	}
	for _, iv := range b.Intervals {
		bounds.markRange(iv.Lo, iv.Hi)
	}
	intervals := bounds.partition()
	if len(intervals) == 0 {
		intervals = []charset.Interval{{Lo: 0, Hi: charset.MaxRune}}
	}
	return Alphabet{Intervals: intervals}
}

func isBoundaryAnchor(k syntax.AnchorKind) bool {
	switch k {
	case syntax.AnchorCaret, syntax.AnchorDollar, syntax.AnchorStartText,
		syntax.AnchorEndText, syntax.AnchorEndTextNL:
		return true
	default:
		return false
	}
}

