// Package policy classifies action names into safe, approval-gated and blocked.
// Classification is default-deny: anything not explicitly listed is blocked.
package policy

import (
	"slices"

	"github.com/Cyclone1070/jarvis/internal/config"
	"go.uber.org/zap"
)

// Decision is the outcome of classifying an action name.
type Decision string

const (
	DecisionSafe           Decision = "safe"
	DecisionApprovalNeeded Decision = "approval_needed"
	DecisionBlocked        Decision = "blocked"
)

// UnknownImpact is returned by Impact for actions without a documented impact.
const UnknownImpact = "Unknown action. Proceed with extreme caution."

// Sets are the configured policy sets. Approval maps an action name to its
// human-readable impact statement.
type Sets struct {
	Safe     []string
	Approval map[string]string
}

// SetsFromConfig converts the policy config section into Sets.
func SetsFromConfig(cfg config.PolicyConfig) Sets {
	return Sets{Safe: cfg.Safe, Approval: cfg.Approval}
}

// DefaultSets returns the built-in policy sets.
func DefaultSets() Sets {
	return SetsFromConfig(config.DefaultConfig().Policy)
}

// Gate classifies action names. It is immutable after construction and safe
// for concurrent use without locking.
type Gate struct {
	safe     map[string]struct{}
	approval map[string]string
	logger   *zap.Logger
}

// NewGate copies sets into a Gate. An action listed in both sets
// (OverlapError) or an empty action name (EmptyActionError) is a
// configuration error.
func NewGate(sets Sets, logger *zap.Logger) (*Gate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gate{
		safe:     make(map[string]struct{}, len(sets.Safe)),
		approval: make(map[string]string, len(sets.Approval)),
		logger:   logger.Named("policy"),
	}

	var overlap []string
	for _, name := range sets.Safe {
		if name == "" {
			return nil, &EmptyActionError{Set: "safe"}
		}
		if _, ok := sets.Approval[name]; ok {
			overlap = append(overlap, name)
		}
		g.safe[name] = struct{}{}
	}
	if len(overlap) > 0 {
		slices.Sort(overlap)
		return nil, &OverlapError{Actions: overlap}
	}

	for name, impact := range sets.Approval {
		if name == "" {
			return nil, &EmptyActionError{Set: "approval"}
		}
		g.approval[name] = impact
	}

	return g, nil
}

// Classify returns the decision for action. SAFE is checked before
// APPROVAL_NEEDED; everything else is BLOCKED.
func (g *Gate) Classify(action string) Decision {
	if _, ok := g.safe[action]; ok {
		return DecisionSafe
	}
	if _, ok := g.approval[action]; ok {
		g.logger.Warn("action requires user approval", zap.String("action", action))
		return DecisionApprovalNeeded
	}
	g.logger.Error("action blocked: not in allow-list", zap.String("action", action))
	return DecisionBlocked
}

// Impact returns the impact statement for an approval-gated action, or
// UnknownImpact for anything not documented.
func (g *Gate) Impact(action string) string {
	if impact, ok := g.approval[action]; ok && impact != "" {
		return impact
	}
	return UnknownImpact
}
