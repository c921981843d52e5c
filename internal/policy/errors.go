package policy

import (
	"fmt"
	"strings"
)

// OverlapError is returned when an action appears in more than one policy set.
type OverlapError struct {
	Actions []string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("policy: actions in both safe and approval sets: %s", strings.Join(e.Actions, ", "))
}

func (e *OverlapError) InvalidInput() bool {
	return true
}

// EmptyActionError is returned when a policy set contains an empty action name.
type EmptyActionError struct {
	Set string // "safe" or "approval"
}

func (e *EmptyActionError) Error() string {
	return fmt.Sprintf("policy: empty action name in %s set", e.Set)
}

func (e *EmptyActionError) InvalidInput() bool {
	return true
}
