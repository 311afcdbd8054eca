package dfa

import "fmt"

// Minimize reduces d to the unique (up to isomorphism) smallest DFA
// accepting the same language, by partition refinement: states start
// split only by acceptance, then get split further whenever two
// states in the same class disagree on which class a given symbol
// moves them into, until the partition stops changing (spec.md §4.8).
//
// This is Moore's fixed-point formulation of the refinement rather
// than Hopcroft's O(n·k·log n) worklist — DESIGN.md records why: the
// spec's invariants (idempotence, canonical BFS numbering) are about
// the refinement's *result*, not its asymptotic cost, and this package
// is never asked to minimize at a scale where that matters.
func Minimize(d *DFA) *DFA {
	class := initialPartition(d)
	for {
		next, numClasses := refine(d, class)
		if samePartition(class, next) {
			class = next
			return build(d, class, numClasses)
		}
		class = next
	}
}

func initialPartition(d *DFA) []int {
	class := make([]int, len(d.States))
	for i, s := range d.States {
		if s.Match {
			class[i] = 1
		}
	}
	return class
}

func refine(d *DFA, class []int) ([]int, int) {
	seen := make(map[string]int)
	next := make([]int, len(d.States))
	for i, s := range d.States {
		key := signature(class[i], s.Transitions, class)
		id, ok := seen[key]
		if !ok {
			id = len(seen)
			seen[key] = id
		}
		next[i] = id
	}
	return next, len(seen)
}

func signature(selfClass int, transitions []StateID, class []int) string {
	key := fmt.Sprintf("%d", selfClass)
	for _, t := range transitions {
		key += fmt.Sprintf(",%d", class[t])
	}
	return key
}

func samePartition(a, b []int) bool {
	// Two partitions are the same partition (not necessarily the same
	// labels) iff they induce the same equivalence classes.
	seen := make(map[int]int)
	for i := range a {
		if la, ok := seen[a[i]]; ok {
			if la != b[i] {
				return false
			}
		} else {
			seen[a[i]] = b[i]
		}
	}
	return len(a) == len(b)
}

func build(d *DFA, class []int, numClasses int) *DFA {
	states := make([]State, numClasses)
	built := make([]bool, numClasses)
	for i, s := range d.States {
		c := class[i]
		if built[c] {
			continue
		}
		built[c] = true
		transitions := make([]StateID, len(s.Transitions))
		for sym, t := range s.Transitions {
			transitions[sym] = StateID(class[t])
		}
		states[c] = State{Transitions: transitions, Match: s.Match}
	}
	return &DFA{States: states, Start: StateID(class[d.Start]), Alphabet: d.Alphabet}
}
