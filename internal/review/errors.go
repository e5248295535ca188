package review

import (
	"errors"
	"fmt"
)

// StateTransitionError reports an operation requested against an invalid
// session state: deciding with no current candidate, finalizing a candidate
// that is not on hold, finalizing before the deck is exhausted. It indicates
// a caller bug, distinct from soft operational failures like an empty model
// response, and never leaves the session mutated.
type StateTransitionError struct {
	Op     string
	Reason string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Op, e.Reason)
}

// IsStateTransition reports whether err is a StateTransitionError.
func IsStateTransition(err error) bool {
	var target *StateTransitionError
	return errors.As(err, &target)
}
