package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/jarvis/internal/session"
)

// ApprovalPrefix starts every reply that asks the operator for approval.
const ApprovalPrefix = "APPROVAL REQUIRED:"

// IsApprovalRequest reports whether an agent reply is asking for a yes/no.
func IsApprovalRequest(msg string) bool {
	return strings.HasPrefix(msg, ApprovalPrefix)
}

// KeepsApprovalPending reports whether an agent reply leaves an earlier
// approval request open: a restatement of the pending action, or a throttled
// answer the agent never saw.
func KeepsApprovalPending(msg string) bool {
	return msg == session.SlowDownReply || strings.Contains(msg, session.StillAwaitingText)
}

// ApprovalPrompt extracts the impact statement from an approval request.
func ApprovalPrompt(msg string) string {
	prompt := strings.TrimSpace(strings.TrimPrefix(msg, ApprovalPrefix))
	if i := strings.Index(prompt, "\n"); i >= 0 {
		prompt = prompt[:i]
	}
	return prompt
}

// FormatRate renders a bytes-per-second figure.
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1<<20:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/(1<<20))
	case bytesPerSec >= 1<<10:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/(1<<10))
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}
