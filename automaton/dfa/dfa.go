package dfa

import (
	"sort"

	"github.com/regexkit/regexkit/automaton/nfa"
)

// DFA is a total deterministic automaton over Alphabet's symbol
// partition: every state has exactly len(Alphabet.Intervals)
// transitions, so Step never needs to special-case "no transition".
type DFA struct {
	States   []State
	Start    StateID
	Alphabet nfa.Alphabet
}

// Step returns the state reached from id on codepoint r, or DeadState
// if r falls outside every alphabet interval (shouldn't happen: the
// alphabet always partitions the full codepoint domain).
func (d *DFA) Step(id StateID, r rune) StateID {
	idx := sort.Search(len(d.Alphabet.Intervals), func(i int) bool {
		return d.Alphabet.Intervals[i].Hi >= r
	})
	if idx == len(d.Alphabet.Intervals) || d.Alphabet.Intervals[idx].Lo > r {
		return DeadState
	}
	return d.States[id].Transitions[idx]
}

// Accepts reports whether input, read start to end, lands on a Match
// state.
func (d *DFA) Accepts(input []rune) bool {
	cur := d.Start
	for _, r := range input {
		cur = d.Step(cur, r)
		if cur == DeadState {
			return false
		}
	}
	return d.States[cur].Match
}

// IsEmptyLanguage reports whether d accepts no string at all: true
// iff no Match state is reachable from Start.
func (d *DFA) IsEmptyLanguage() bool {
	seen := make(map[StateID]bool)
	queue := []StateID{d.Start}
	seen[d.Start] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if d.States[id].Match {
			return false
		}
		for _, next := range d.States[id].Transitions {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return true
}
