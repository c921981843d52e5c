package intent

import (
	"context"
	"strings"
)

// StandbyReply is the reply for input that maps to no action.
const StandbyReply = "I am standing by. How can I assist with your system today?"

// GPGRepairKeyID is the key the fallback classifier proposes to repair.
const GPGRepairKeyID = "EDA3E22630349F1C"

type rule struct {
	match func(q string) bool
	build func() Intent
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// rules is evaluated top to bottom. Multi-keyword rules sit above the
// single-keyword rules they would otherwise be shadowed by, and the
// inspection-only rules come last so they never mask a repair or update.
var rules = []rule{
	{
		match: func(q string) bool { return containsAny(q, "cpu", "status") },
		build: func() Intent {
			return Intent{
				Thought: "User wants system status. Using system_monitor skill.",
				Action:  "system_monitor",
				Reply:   "System status coming right up.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "simulate") && containsAny(q, "attack") },
		build: func() Intent {
			return Intent{
				Thought: "User wants to test security alerts. This is a restricted action.",
				Action:  "simulate_attack",
				Reply:   "Initiating Security Drill Protocol...",
			}
		},
	},
	{
		match: func(q string) bool {
			return containsAny(q, "resolve", "neutralize") && containsAny(q, "threat", "alert")
		},
		build: func() Intent {
			return Intent{
				Thought: "User wants to clear active security alerts.",
				Action:  "resolve_threat",
				Reply:   "Neutralizing the active threat...",
			}
		},
	},
	{
		match: func(q string) bool {
			return containsAny(q, "update", "upgrade") && containsAny(q, "apt", "system")
		},
		build: func() Intent {
			return Intent{
				Thought: "User wants to update system packages. High impact action.",
				Action:  "update_system",
				Reply:   "Preparing system update sequence...",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "scan") && containsAny(q, "port") },
		build: func() Intent {
			return Intent{
				Thought:    "User requested port scan. This is a security action.",
				Action:     "security_scan_ports",
				Parameters: map[string]any{"target": "localhost"},
				Reply:      "Initiating port scan sequence.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "clean") },
		build: func() Intent {
			return Intent{
				Thought: "User wants quick clean. Initiating cleanup protocol.",
				Action:  "quick_clean",
				Reply:   "Cleaning up temporary files and caches.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "update") },
		build: func() Intent {
			return Intent{
				Thought: "User wants to update something. Assuming system packages.",
				Action:  "update_system",
				Reply:   "Checking for system updates.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "fix", "repair") },
		build: func() Intent {
			return Intent{
				Thought:    "User wants to fix a system error. Detected missing GPG key from logs.",
				Action:     "fix_system_issue",
				Parameters: map[string]any{"target": "gpg", "key_id": GPGRepairKeyID},
				Reply:      "Diagnosing error... Found improperly configured GPG Key. Attempting repair.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "firewall") },
		build: func() Intent {
			return Intent{
				Thought: "User wants the firewall rules.",
				Action:  "check_firewall",
				Reply:   "Reading firewall configuration.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "process") },
		build: func() Intent {
			return Intent{
				Thought: "User wants to see running processes.",
				Action:  "list_processes",
				Reply:   "Listing the busiest processes.",
			}
		},
	},
	{
		match: func(q string) bool { return containsAny(q, "logs") },
		build: func() Intent {
			return Intent{
				Thought: "User wants recent system logs.",
				Action:  "read_logs",
				Reply:   "Fetching recent system logs.",
			}
		},
	},
}

// Fallback is the deterministic keyword classifier. It never fails.
type Fallback struct{}

// Classify matches text against the ordered keyword rules.
func (Fallback) Classify(userText string) Intent {
	q := strings.ToLower(userText)
	for _, r := range rules {
		if r.match(q) {
			return r.build()
		}
	}
	return Intent{
		Thought: "Query not recognized as a system command. Treating as chat.",
		Reply:   StandbyReply,
	}
}

// Resolve implements Resolver. The context summary is not used.
func (f Fallback) Resolve(_ context.Context, _ string, userText string) (Intent, error) {
	return f.Classify(userText), nil
}
