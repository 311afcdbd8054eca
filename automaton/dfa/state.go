// Package dfa determinizes an automaton/nfa.NFA into a total DFA over
// a (possibly shared, possibly merged) automaton/nfa.Alphabet: subset
// construction with a dead-state sink, so every state has exactly one
// transition per alphabet symbol and every DFA answers "does this
// string match" by table lookup alone.
package dfa

import (
	"hash/fnv"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/regexkit/regexkit/automaton/nfa"
)

// StateID identifies a state within a DFA's state slice.
type StateID int

// DeadState is state 0 in a freshly Build'd DFA: a sink with every
// transition looping back to itself and Match false, so every DFA has
// a total transition function without a special-cased nil/absent case
// at the call site. Minimize may fold it into a different id (its
// class could merge with — or get renumbered relative to — others);
// callers that need the sink after minimizing should look up whichever
// state IsEmptyLanguage's reachability walk never finds a Match
// through, not assume id 0.
const DeadState StateID = 0

// State is one DFA state: one outgoing transition per alphabet symbol
// index, parallel to the owning DFA's Alphabet.Intervals.
type State struct {
	Transitions []StateID
	Match       bool
}

// stateKey canonically identifies a subset-construction state by its
// live NFA state set: sort the member ids, then FNV-1a hash them, so
// two identical sets always collide to the same cache key regardless
// of the order they were discovered in.
func stateKey(live *bitset.BitSet) uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		buf[0] = byte(i)
		buf[1] = byte(i >> 8)
		buf[2] = byte(i >> 16)
		buf[3] = byte(i >> 24)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// sortedMembers returns live's set bits as a sorted slice of
// nfa.StateID, used to seed closure's work stack.
func sortedMembers(live *bitset.BitSet) []nfa.StateID {
	out := make([]nfa.StateID, 0, live.Count())
	for i, ok := live.NextSet(0); ok; i, ok = live.NextSet(i + 1) {
		out = append(out, nfa.StateID(i))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
