package solver

import (
	"github.com/regexkit/regexkit/automaton/dfa"
	"github.com/regexkit/regexkit/automaton/nfa"
	"github.com/regexkit/regexkit/rxerr"
	"github.com/regexkit/regexkit/subset"
	"github.com/regexkit/regexkit/syntax"
)

// IntersectionResult is IntersectionEmpty's outcome.
type IntersectionResult struct {
	Empty   bool
	Witness string
}

// SubsetResult is SubsetOf's outcome.
type SubsetResult struct {
	Holds          bool
	CounterExample string
}

// EquivalenceResult is Equivalent's outcome.
type EquivalenceResult struct {
	Equivalent bool
	OnlyInA    string
	OnlyInB    string
}

// IntersectionEmpty reports whether the languages of a and b share any
// string, returning the shortest shared string (ties broken by
// lexicographic order of symbol intervals) as a witness when they do.
func IntersectionEmpty(a, b *syntax.Node, limits Limits) (IntersectionResult, error) {
	da, db, err := buildPair(a, b, limits)
	if err != nil {
		return IntersectionResult{}, err
	}
	empty, witness := search(da, db, func(am, bm bool) bool { return am && bm })
	if empty {
		return IntersectionResult{Empty: true}, nil
	}
	return IntersectionResult{Empty: false, Witness: string(witness)}, nil
}

// SubsetOf reports whether a's language is a subset of b's: a ⊆ b iff
// a ∩ ¬b is empty. A non-empty intersection's witness is a string a
// accepts that b doesn't — a counterexample to the subset claim.
func SubsetOf(a, b *syntax.Node, limits Limits) (SubsetResult, error) {
	da, db, err := buildPair(a, b, limits)
	if err != nil {
		return SubsetResult{}, err
	}
	notB := negate(db)
	empty, witness := search(da, notB, func(am, nbm bool) bool { return am && nbm })
	return SubsetResult{Holds: empty, CounterExample: ternaryString(!empty, string(witness))}, nil
}

// Equivalent reports whether a and b accept exactly the same language:
// a ≡ b iff a ⊆ b ∧ b ⊆ a (spec.md §8's quantified invariant). When
// they differ, both asymmetric witnesses are returned where present.
func Equivalent(a, b *syntax.Node, limits Limits) (EquivalenceResult, error) {
	aSubB, err := SubsetOf(a, b, limits)
	if err != nil {
		return EquivalenceResult{}, err
	}
	bSubA, err := SubsetOf(b, a, limits)
	if err != nil {
		return EquivalenceResult{}, err
	}
	return EquivalenceResult{
		Equivalent: aSubB.Holds && bSubA.Holds,
		OnlyInA:    aSubB.CounterExample,
		OnlyInB:    bSubA.CounterExample,
	}, nil
}

func ternaryString(cond bool, s string) string {
	if cond {
		return s
	}
	return ""
}

// buildPair validates, compiles, and determinizes a and b against a
// shared alphabet (nfa.MergeAlphabets), so the product construction in
// search steps both machines through identical symbol partitions.
func buildPair(a, b *syntax.Node, limits Limits) (*dfa.DFA, *dfa.DFA, error) {
	if err := subset.Validate(a); err != nil {
		return nil, nil, err
	}
	if err := subset.Validate(b); err != nil {
		return nil, nil, err
	}
	nfaA, err := nfa.Compile(a)
	if err != nil {
		return nil, nil, err
	}
	nfaB, err := nfa.Compile(b)
	if err != nil {
		return nil, nil, err
	}
	merged := nfa.MergeAlphabets(nfaA.Alphabet, nfaB.Alphabet)
	if len(merged.Intervals) > limits.MaxAlphabetIntervals {
		return nil, nil, &rxerr.ComplexityError{
			Kind:  rxerr.TooManyAlphabetIntervals,
			Limit: limits.MaxAlphabetIntervals,
			Got:   len(merged.Intervals),
		}
	}
	da, err := dfa.Build(nfaA, merged, limits.MaxStates)
	if err != nil {
		return nil, nil, err
	}
	db, err := dfa.Build(nfaB, merged, limits.MaxStates)
	if err != nil {
		return nil, nil, err
	}
	return da, db, nil
}

// negate returns a DFA for the complement language of d: since d is
// total, flipping every state's Match bit (the dead-state sink
// included — a string that can never reach a Match state in d is, by
// definition, in the complement) is exact.
func negate(d *dfa.DFA) *dfa.DFA {
	states := make([]dfa.State, len(d.States))
	for i, s := range d.States {
		states[i] = dfa.State{Transitions: s.Transitions, Match: !s.Match}
	}
	return &dfa.DFA{States: states, Start: d.Start, Alphabet: d.Alphabet}
}

type pair struct {
	a, b dfa.StateID
}

// search runs BFS over the product automaton of a and b (which must
// share an alphabet), returning the shortest string reaching a pair
// accept considers a match — ties broken by lexicographic order of
// symbol intervals, which falls out of always expanding a queued pair
// over alphabet symbols in ascending index order and marking a pair
// visited the first (and therefore shortest, earliest-lexicographic)
// time it's reached.
func search(a, b *dfa.DFA, accept func(aMatch, bMatch bool) bool) (empty bool, witness []rune) {
	start := pair{a.Start, b.Start}
	if accept(a.States[start.a].Match, b.States[start.b].Match) {
		return false, nil
	}
	visited := map[pair]bool{start: true}
	type queued struct {
		p    pair
		path []rune
	}
	queue := []queued{{start, nil}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i, sym := range a.Alphabet.Intervals {
			next := pair{a.States[cur.p.a].Transitions[i], b.States[cur.p.b].Transitions[i]}
			if visited[next] {
				continue
			}
			visited[next] = true
			path := append(append([]rune(nil), cur.path...), sym.Lo)
			if accept(a.States[next.a].Match, b.States[next.b].Match) {
				return false, path
			}
			queue = append(queue, queued{next, path})
		}
	}
	return true, nil
}
