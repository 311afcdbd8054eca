package nfa

import (
	"github.com/regexkit/regexkit/charset"
	"github.com/regexkit/regexkit/rxerr"
	"github.com/regexkit/regexkit/syntax"
)

// frag is a partially built sub-machine: start is its entry state, and
// join is a state (always StateRange or StateEpsilon, so it has a
// single patchable Next) representing "after this construct" — every
// internal loose end is already routed to join, so composing two frags
// is a single Patch call.
type frag struct {
	start StateID
	join  StateID
}

// Compile builds the Thompson construction NFA for root. root must
// already satisfy subset.Validate — Compile rejects backreferences,
// recursion, and lookaround assertions defensively, but doesn't
// re-derive subset's more specific diagnostics.
//
// Group kind (capturing, atomic, ...) and quantifier greediness are
// both dropped during compilation: neither affects the language an
// NFA accepts, only how a backtracking engine would search it, and
// the only queries built on top of this automaton (emptiness, subset,
// equivalence) are purely about language.
func Compile(root *syntax.Node) (*NFA, error) {
	alphabet, anchored, err := buildAlphabet(root)
	if err != nil {
		return nil, err
	}
	b := NewBuilder()
	f, err := compile(b, root, alphabet)
	if err != nil {
		return nil, err
	}
	match := b.AddMatch()
	if err := b.Patch(f.join, match); err != nil {
		return nil, err
	}
	return b.Build(f.start, alphabet, anchored)
}

func compile(b *Builder, n *syntax.Node, alphabet Alphabet) (frag, error) {
	switch n.Kind {
	case syntax.KindLiteral:
		s := b.AddRange([]Range{{Lo: n.Value, Hi: n.Value}}, InvalidState)
		return frag{s, s}, nil

	case syntax.KindCharClass:
		set, err := charset.FromCharClass(n)
		if err != nil {
			return frag{}, err
		}
		s := b.AddRange(alphabet.intervalsFor(set), InvalidState)
		return frag{s, s}, nil

	case syntax.KindAnchor:
		return compileAnchor(b, n), nil

	case syntax.KindGroup:
		return compile(b, n.Child, alphabet)

	case syntax.KindSequence:
		return compileSequence(b, n, alphabet)

	case syntax.KindAlternation:
		return compileAlternation(b, n, alphabet)

	case syntax.KindQuantifier:
		return compileQuantifier(b, n, alphabet)

	case syntax.KindAssertion:
		return frag{}, unsupported(n.AssertionKind.String()+" assertion", n)
	case syntax.KindBackref:
		return frag{}, unsupported("backreference", n)
	case syntax.KindRecursion:
		return frag{}, unsupported("recursion", n)
	default:
		return frag{}, unsupported(n.Kind.String(), n)
	}
}

func unsupported(reason string, n *syntax.Node) error {
	return &rxerr.UnsupportedFeature{Reason: reason, Span: [2]int{n.Span.Begin, n.Span.End}}
}

// compileAnchor lowers a boundary anchor (^, $, \A, \z, \Z) to a
// transition on its sentinel symbol, and every other anchor (\b, \B,
// \G) to an unconditional epsilon step: this automaton has no notion
// of "the surrounding characters", so those are approximated as always
// satisfied. Patterns relying on that distinction for correctness
// aren't the audience for an emptiness/subset/equivalence query.
func compileAnchor(b *Builder, n *syntax.Node) frag {
	if !isBoundaryAnchor(n.AnchorKind) {
		s := b.AddEpsilon(InvalidState)
		return frag{s, s}
	}
	symbol := SentinelStart
	if n.AnchorKind == syntax.AnchorDollar || n.AnchorKind == syntax.AnchorEndText || n.AnchorKind == syntax.AnchorEndTextNL {
		symbol = SentinelEnd
	}
	s := b.AddRange([]Range{{Lo: symbol, Hi: symbol}}, InvalidState)
	return frag{s, s}
}

func compileSequence(b *Builder, n *syntax.Node, alphabet Alphabet) (frag, error) {
	if len(n.Children) == 0 {
		s := b.AddEpsilon(InvalidState)
		return frag{s, s}, nil
	}
	head, err := compile(b, n.Children[0], alphabet)
	if err != nil {
		return frag{}, err
	}
	for _, child := range n.Children[1:] {
		next, err := compile(b, child, alphabet)
		if err != nil {
			return frag{}, err
		}
		if err := b.Patch(head.join, next.start); err != nil {
			return frag{}, err
		}
		head.join = next.join
	}
	return head, nil
}

func compileAlternation(b *Builder, n *syntax.Node, alphabet Alphabet) (frag, error) {
	join := b.AddEpsilon(InvalidState)
	starts := make([]StateID, len(n.Children))
	for i, child := range n.Children {
		f, err := compile(b, child, alphabet)
		if err != nil {
			return frag{}, err
		}
		if err := b.Patch(f.join, join); err != nil {
			return frag{}, err
		}
		starts[i] = f.start
	}
	start := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		start = b.AddSplit(starts[i], start)
	}
	return frag{start, join}, nil
}

// compileQuantifier unrolls {min,max} into min mandatory copies
// followed by either (max-min) optional copies, each a bypassable
// split, or — when max is unbounded — a classic Kleene star over one
// more copy (spec.md §4.7).
func compileQuantifier(b *Builder, n *syntax.Node, alphabet Alphabet) (frag, error) {
	if n.Min == 0 && n.Max == 0 {
		s := b.AddEpsilon(InvalidState)
		return frag{s, s}, nil
	}

	var head *frag
	for i := 0; i < n.Min; i++ {
		f, err := compile(b, n.Child, alphabet)
		if err != nil {
			return frag{}, err
		}
		if head == nil {
			head = &f
		} else {
			if err := b.Patch(head.join, f.start); err != nil {
				return frag{}, err
			}
			head.join = f.join
		}
	}

	tail, err := compileQuantifierTail(b, n, alphabet)
	if err != nil {
		return frag{}, err
	}
	if head == nil {
		return tail, nil
	}
	if err := b.Patch(head.join, tail.start); err != nil {
		return frag{}, err
	}
	return frag{head.start, tail.join}, nil
}

func compileQuantifierTail(b *Builder, n *syntax.Node, alphabet Alphabet) (frag, error) {
	switch {
	case n.Max == -1:
		loop, err := compile(b, n.Child, alphabet)
		if err != nil {
			return frag{}, err
		}
		join := b.AddEpsilon(InvalidState)
		split := b.AddSplit(loop.start, join)
		if err := b.Patch(loop.join, split); err != nil {
			return frag{}, err
		}
		return frag{split, join}, nil

	case n.Max > n.Min:
		join := b.AddEpsilon(InvalidState)
		next := join
		for i := 0; i < n.Max-n.Min; i++ {
			f, err := compile(b, n.Child, alphabet)
			if err != nil {
				return frag{}, err
			}
			if err := b.Patch(f.join, next); err != nil {
				return frag{}, err
			}
			next = b.AddSplit(f.start, join)
		}
		return frag{next, join}, nil

	default: // n.Max == n.Min: purely mandatory, already compiled above.
		s := b.AddEpsilon(InvalidState)
		return frag{s, s}, nil
	}
}
