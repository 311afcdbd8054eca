package dfa

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/regexkit/regexkit/automaton/nfa"
	"github.com/regexkit/regexkit/rxerr"
)

// Build determinizes n via subset construction against alphabet (which
// may be finer than n.Alphabet — see nfa.MergeAlphabets, used when two
// patterns must be compared symbol-for-symbol). maxStates caps the
// number of DFA states constructed; exceeding it aborts with a
// *rxerr.ComplexityError rather than continuing to blow up memory on a
// pathological pattern (spec.md §4.9).
func Build(n *nfa.NFA, alphabet nfa.Alphabet, maxStates int) (*DFA, error) {
	b := &builder{nfa: n, alphabet: alphabet, maxStates: maxStates, cache: make(map[uint64]StateID)}
	return b.build()
}

type builder struct {
	nfa       *nfa.NFA
	alphabet  nfa.Alphabet
	maxStates int

	states []State
	sets   []*bitset.BitSet // sets[id] is the NFA state set DFA state id represents
	cache  map[uint64]StateID
}

func (b *builder) build() (*DFA, error) {
	dead := bitset.New(uint(len(b.nfa.States)))
	if _, err := b.intern(dead); err != nil {
		return nil, err
	}

	start := b.closure(bitset.New(uint(len(b.nfa.States))).Set(uint(b.nfa.Start)))
	if b.nfa.Anchored {
		start = b.closure(b.stepRune(start, nfa.SentinelStart))
	}
	startID, err := b.intern(start)
	if err != nil {
		return nil, err
	}

	visited := map[StateID]bool{DeadState: true}
	queue := []StateID{DeadState}
	if !visited[startID] {
		visited[startID] = true
		queue = append(queue, startID)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		live := b.sets[id]
		transitions := make([]StateID, len(b.alphabet.Intervals))
		for i, sym := range b.alphabet.Intervals {
			raw := b.step(live, sym.Lo, sym.Hi)
			next := b.closure(raw)
			nextID, err := b.intern(next)
			if err != nil {
				return nil, err
			}
			transitions[i] = nextID
			if !visited[nextID] {
				visited[nextID] = true
				queue = append(queue, nextID)
			}
		}
		b.states[id].Transitions = transitions
		b.states[id].Match = b.accepts(live)
	}

	return &DFA{States: b.states, Start: startID, Alphabet: b.alphabet}, nil
}

// intern returns the StateID for live, allocating a fresh one (and
// recording it in the cache) if this exact NFA state set hasn't been
// seen before.
func (b *builder) intern(live *bitset.BitSet) (StateID, error) {
	key := stateKey(live)
	if id, ok := b.cache[key]; ok {
		return id, nil
	}
	if len(b.states) >= b.maxStates {
		return 0, &rxerr.ComplexityError{Kind: rxerr.TooManyStates, Limit: b.maxStates, Got: len(b.states) + 1}
	}
	id := StateID(len(b.states))
	b.states = append(b.states, State{})
	b.sets = append(b.sets, live)
	b.cache[key] = id
	return id, nil
}

// closure extends live in place to its epsilon closure (following
// StateSplit and StateEpsilon transitions) and returns it.
func (b *builder) closure(live *bitset.BitSet) *bitset.BitSet {
	stack := sortedMembers(live)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := b.nfa.States[id]
		switch s.Kind {
		case nfa.StateEpsilon:
			if s.Next != nfa.InvalidState && !live.Test(uint(s.Next)) {
				live.Set(uint(s.Next))
				stack = append(stack, s.Next)
			}
		case nfa.StateSplit:
			for _, next := range []nfa.StateID{s.Left, s.Right} {
				if next != nfa.InvalidState && !live.Test(uint(next)) {
					live.Set(uint(next))
					stack = append(stack, next)
				}
			}
		}
	}
	return live
}

// step returns the raw (pre-closure) set of states reached from live
// by consuming any codepoint in [lo, hi] — a symbol interval that's
// always either fully contained in or fully disjoint from every
// StateRange's Ranges, since alphabet was cut at every boundary any
// NFA involved in the comparison uses.
func (b *builder) step(live *bitset.BitSet, lo, hi rune) *bitset.BitSet {
	out := bitset.New(uint(len(b.nfa.States)))
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		s := b.nfa.States[i]
		if s.Kind != nfa.StateRange {
			continue
		}
		for _, rg := range s.Ranges {
			if rg.Lo <= hi && rg.Hi >= lo {
				out.Set(uint(s.Next))
				break
			}
		}
	}
	return out
}

func (b *builder) stepRune(live *bitset.BitSet, r rune) *bitset.BitSet {
	return b.step(live, r, r)
}

// accepts reports whether live, read as a final position, is
// accepting: for an anchored pattern that means stepping over
// SentinelEnd first (the boundary is checked once, at the very end of
// input, not per-symbol — see automaton/nfa's doc comment on anchors).
func (b *builder) accepts(live *bitset.BitSet) bool {
	if b.nfa.Anchored {
		final := b.closure(b.stepRune(live, nfa.SentinelEnd))
		return b.matchReachable(final)
	}
	return b.matchReachable(live)
}

func (b *builder) matchReachable(live *bitset.BitSet) bool {
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		if b.nfa.States[i].Kind == nfa.StateMatch {
			return true
		}
	}
	return false
}
