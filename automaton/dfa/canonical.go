package dfa

import (
	"hash/fnv"
	"strconv"
)

// Canonicalize renumbers d's states by BFS discovery order from Start
// (dropping any state unreachable from it), so two isomorphic DFAs —
// differing only in how subset construction happened to number their
// states — end up with identical State slices. Minimize should
// normally be called first; Canonicalize on an unminimized DFA is
// well-defined but won't collapse equivalent states.
func Canonicalize(d *DFA) *DFA {
	order := make([]StateID, 0, len(d.States))
	renumber := make(map[StateID]StateID)
	queue := []StateID{d.Start}
	renumber[d.Start] = 0
	order = append(order, d.Start)
	for i := 0; i < len(queue); i++ {
		id := queue[i]
		for _, next := range d.States[id].Transitions {
			if _, ok := renumber[next]; !ok {
				renumber[next] = StateID(len(order))
				order = append(order, next)
				queue = append(queue, next)
			}
		}
	}

	states := make([]State, len(order))
	for newID, oldID := range order {
		old := d.States[oldID]
		transitions := make([]StateID, len(old.Transitions))
		for i, t := range old.Transitions {
			transitions[i] = renumber[t]
		}
		states[newID] = State{Transitions: transitions, Match: old.Match}
	}
	return &DFA{States: states, Start: 0, Alphabet: d.Alphabet}
}

// StructuralHash hashes d's canonical form: two DFAs with identical
// language and identical alphabet (as built by the same Build call, or
// by Build against the same nfa.Alphabet) hash equal after
// Canonicalize(Minimize(d)) regardless of subset-construction discovery
// order. No cache in this module keys on it.
func StructuralHash(d *DFA) uint64 {
	c := Canonicalize(d)
	h := fnv.New64a()
	for _, s := range c.States {
		if s.Match {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
		for _, t := range s.Transitions {
			_, _ = h.Write([]byte(strconv.Itoa(int(t))))
			_, _ = h.Write([]byte{','})
		}
		_, _ = h.Write([]byte{';'})
	}
	return h.Sum64()
}
