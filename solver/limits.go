// Package solver answers the three language-theoretic comparisons
// regexkit exposes between two regular patterns — intersection
// emptiness, subset, and equivalence — by building DFAs over a shared
// alphabet and running BFS over the product automaton (spec.md §4.9).
package solver

// Limits bounds the work a solver query may do before it gives up and
// reports a *rxerr.ComplexityError rather than continuing to build an
// ever-larger automaton.
type Limits struct {
	MaxStates            int
	MaxAlphabetIntervals int
}

// DefaultLimits returns spec.md §4.9's defaults: 10,000 DFA states,
// 4,096 alphabet intervals.
func DefaultLimits() Limits {
	return Limits{MaxStates: 10000, MaxAlphabetIntervals: 4096}
}
