package session

import "github.com/Cyclone1070/jarvis/internal/intent"

// State is the approval state of one session.
type State int

const (
	StateIdle State = iota
	StateAwaitingApproval
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingApproval:
		return "awaiting_approval"
	default:
		return "unknown"
	}
}

// PendingAction is an approval-gated intent held until the operator answers.
// It exists only while the session is in StateAwaitingApproval.
type PendingAction struct {
	Intent intent.Intent
	Impact string
}

// Status is the outcome class of one dispatched intent.
type Status string

const (
	StatusDone             Status = "done"
	StatusBlocked          Status = "blocked"
	StatusApprovalRequired Status = "approval_required"
)

// ExecutionResult is what one dispatched intent produced. It renders to
// exactly one reply. Impact is set only for StatusApprovalRequired.
type ExecutionResult struct {
	Status  Status
	Message string
	Action  string
	Impact  string

	succeeded bool // executor returned without error
	approved  bool // ran after an explicit approval
}
