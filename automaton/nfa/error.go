package nfa

import "fmt"

// BuildError reports a problem constructing or patching an NFA: an
// out-of-range state reference, or an attempt to patch a state whose
// kind has no Next/Left/Right to patch.
type BuildError struct {
	Message string
	State   StateID
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("nfa: %s (state %d)", e.Message, int(e.State))
}
