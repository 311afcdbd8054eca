package nfa

// Builder assembles an NFA state by state. Every Add* method returns
// the id of the new state; states with a dangling Next/Left/Right are
// patched later via Patch/PatchSplit once the target is known, the
// a deferred-patch construction style.
type Builder struct {
	states []State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddMatch appends an accepting state.
func (b *Builder) AddMatch() StateID {
	return b.add(State{Kind: StateMatch})
}

// AddRange appends a state that consumes one codepoint in any of
// ranges and moves to next (InvalidState if not yet known).
func (b *Builder) AddRange(ranges []Range, next StateID) StateID {
	return b.add(State{Kind: StateRange, Ranges: ranges, Next: next})
}

// AddSplit appends an unconditional epsilon branch to left and right,
// either of which may be InvalidState to be patched later.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{Kind: StateSplit, Left: left, Right: right})
}

// AddEpsilon appends a single epsilon transition to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{Kind: StateEpsilon, Next: next})
}

func (b *Builder) add(s State) StateID {
	b.states = append(b.states, s)
	return StateID(len(b.states) - 1)
}

// Patch sets the Next field of a StateRange or StateEpsilon state.
func (b *Builder) Patch(id, next StateID) error {
	if err := b.checkID(id); err != nil {
		return err
	}
	switch b.states[id].Kind {
	case StateRange, StateEpsilon:
		b.states[id].Next = next
		return nil
	default:
		return &BuildError{Message: "cannot patch Next on " + b.states[id].Kind.String() + " state", State: id}
	}
}

// PatchSplit sets the Left and Right fields of a StateSplit state.
// Either may be left as InvalidState by passing it unchanged.
func (b *Builder) PatchSplit(id StateID, left, right StateID) error {
	if err := b.checkID(id); err != nil {
		return err
	}
	if b.states[id].Kind != StateSplit {
		return &BuildError{Message: "cannot patch Left/Right on " + b.states[id].Kind.String() + " state", State: id}
	}
	b.states[id].Left = left
	b.states[id].Right = right
	return nil
}

func (b *Builder) checkID(id StateID) error {
	if id < 0 || int(id) >= len(b.states) {
		return &BuildError{Message: "state out of range", State: id}
	}
	return nil
}

// States reports how many states have been added so far.
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that every transition in the builder's states
// targets an in-range state. A transition still at InvalidState
// (the caller forgot to patch it) or past the last state is an error.
func (b *Builder) Validate() error {
	for id, s := range b.states {
		switch s.Kind {
		case StateRange, StateEpsilon:
			if err := b.checkTarget(StateID(id), s.Next); err != nil {
				return err
			}
		case StateSplit:
			if err := b.checkTarget(StateID(id), s.Left); err != nil {
				return err
			}
			if err := b.checkTarget(StateID(id), s.Right); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) checkTarget(from, to StateID) error {
	if to == InvalidState {
		return &BuildError{Message: "unpatched transition", State: from}
	}
	if int(to) >= len(b.states) {
		return &BuildError{Message: "transition targets out-of-range state", State: from}
	}
	return nil
}

// Build finalizes the NFA with the given start state and alphabet.
func (b *Builder) Build(start StateID, alphabet Alphabet, anchored bool) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := b.checkID(start); err != nil {
		return nil, err
	}
	return &NFA{
		States:   b.states,
		Start:    start,
		Alphabet: alphabet,
		Anchored: anchored,
	}, nil
}
