// Package session owns one connected client: the approval state machine,
// the heartbeat loop and the ordering of everything written to the channel.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/Cyclone1070/jarvis/internal/intent"
	"github.com/Cyclone1070/jarvis/internal/platform"
	"github.com/Cyclone1070/jarvis/internal/policy"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fixed replies.
const (
	UnknownProtocolReply = "Unknown Command Protocol"
	CancelledReply       = "Action cancelled by user."
	SlowDownReply        = "Too many requests. Please slow down."
	DrillReply           = "SECURITY DRILL INITIATED."
	DefaultChatReply     = "I heard you."

	// StillAwaitingText marks a reply restating an action that still awaits approval.
	StillAwaitingText = "is still awaiting approval"

	DrillAlertText    = "SYN Flood Attack Detected from 192.168.0.44"
	ResolvedAlertText = "Threat Neutralized."
)

// Gate classifies actions. *policy.Gate implements it.
type Gate interface {
	Classify(action string) policy.Decision
	Impact(action string) string
}

// Executor runs actions on the host. *platform.Executor implements it.
type Executor interface {
	Execute(ctx context.Context, action string, params map[string]any) (string, error)
}

// Dependencies holds the collaborators a Controller needs.
type Dependencies struct {
	Resolver intent.Resolver
	Gate     Gate
	Executor Executor
	Logger   *zap.Logger
}

// Controller is the per-session approval state machine. It is driven by a
// single goroutine and is not safe for concurrent use.
type Controller struct {
	resolver intent.Resolver
	gate     Gate
	executor Executor
	logger   *zap.Logger

	approveWords map[string]struct{}
	denyWords    map[string]struct{}
	limiter      *rate.Limiter
	history      *History

	state   State
	pending *PendingAction
	mode    string
}

// NewController creates a Controller in StateIdle.
func NewController(deps Dependencies, cfg config.SessionConfig) *Controller {
	if deps.Resolver == nil || deps.Gate == nil || deps.Executor == nil {
		panic("resolver, gate and executor are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		resolver:     deps.Resolver,
		gate:         deps.Gate,
		executor:     deps.Executor,
		logger:       logger,
		approveWords: wordSet(cfg.ApproveWords),
		denyWords:    wordSet(cfg.DenyWords),
		limiter:      rate.NewLimiter(rate.Limit(cfg.ChatRatePerSec), cfg.ChatBurst),
		history:      NewHistory(cfg.HistoryMaxChars),
		state:        StateIdle,
	}
}

// State returns the current approval state.
func (c *Controller) State() State {
	return c.state
}

// Pending returns the action awaiting approval, or nil.
func (c *Controller) Pending() *PendingAction {
	return c.pending
}

// Mode returns the last mode set by a control message.
func (c *Controller) Mode() string {
	return c.mode
}

// Handle processes one raw inbound frame and returns the messages to send,
// in order. An error is returned only when ctx is done; the session is over
// at that point.
func (c *Controller) Handle(ctx context.Context, frame []byte) ([]Message, error) {
	var in Inbound
	if err := json.Unmarshal(frame, &in); err != nil {
		c.logger.Debug("malformed frame", zap.Error(err))
		return reply(UnknownProtocolReply), nil
	}

	switch in.Type {
	case TypeControl:
		return c.handleControl(in.Mode), nil
	case TypeChat:
		return c.handleChat(ctx, in.Msg)
	default:
		c.logger.Debug("unknown message type", zap.String("type", in.Type))
		return reply(UnknownProtocolReply), nil
	}
}

func (c *Controller) handleControl(mode string) []Message {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		return reply(UnknownProtocolReply)
	}
	c.mode = strings.ToUpper(mode)
	c.logger.Info("mode switched", zap.String("mode", c.mode))
	return reply("System Mode Switched to: " + c.mode)
}

func (c *Controller) handleChat(ctx context.Context, text string) ([]Message, error) {
	if !c.limiter.Allow() {
		c.logger.Warn("chat rate limit exceeded")
		return reply(SlowDownReply), nil
	}

	if c.state == StateAwaitingApproval {
		return c.answerPending(ctx, text)
	}

	c.history.Add("User: "+text, false)
	got, err := c.resolver.Resolve(ctx, c.history.Context(), text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("intent resolution failed", zap.Error(err))
		return c.replyAndRecord(DefaultChatReply, false), nil
	}

	if !got.HasAction() {
		answer := got.Reply
		if answer == "" {
			answer = DefaultChatReply
		}
		return c.replyAndRecord(answer, false), nil
	}

	result, err := c.dispatch(ctx, got)
	if err != nil {
		return nil, err
	}
	return c.render(result), nil
}

// dispatch runs an intent through the gate. Only SAFE actions execute here.
func (c *Controller) dispatch(ctx context.Context, it intent.Intent) (ExecutionResult, error) {
	switch c.gate.Classify(it.Action) {
	case policy.DecisionSafe:
		return c.execute(ctx, it)

	case policy.DecisionApprovalNeeded:
		impact := c.gate.Impact(it.Action)
		c.pending = &PendingAction{Intent: it, Impact: impact}
		c.state = StateAwaitingApproval
		c.logger.Info("approval requested", zap.String("action", it.Action))
		return ExecutionResult{
			Status:  StatusApprovalRequired,
			Message: fmt.Sprintf("APPROVAL REQUIRED: %s\nType 'yes' to proceed.", impact),
			Action:  it.Action,
			Impact:  impact,
		}, nil

	default:
		return ExecutionResult{
			Status:  StatusBlocked,
			Message: fmt.Sprintf("Security Shield Blocked Action: '%s' is not in the allow-list.", it.Action),
			Action:  it.Action,
		}, nil
	}
}

// answerPending handles input while an action awaits approval. Only an
// approve or deny word leaves the state; anything else restates the request.
func (c *Controller) answerPending(ctx context.Context, text string) ([]Message, error) {
	word := strings.ToLower(strings.TrimSpace(text))
	pending := c.pending

	if _, ok := c.approveWords[word]; ok {
		c.pending = nil
		c.state = StateIdle
		c.logger.Info("action approved", zap.String("action", pending.Intent.Action))
		result, err := c.execute(ctx, pending.Intent)
		if err != nil {
			return nil, err
		}
		result.approved = true
		result.Message = fmt.Sprintf("Action '%s' Result:\n%s", pending.Intent.Action, result.Message)
		return c.render(result), nil
	}

	if _, ok := c.denyWords[word]; ok {
		c.pending = nil
		c.state = StateIdle
		c.logger.Info("action cancelled", zap.String("action", pending.Intent.Action))
		return c.replyAndRecord(CancelledReply, true), nil
	}

	return reply(fmt.Sprintf(
		"Action '%s' %s (%s)\nType 'yes' to proceed or 'no' to cancel.",
		pending.Intent.Action, StillAwaitingText, pending.Impact,
	)), nil
}

func (c *Controller) execute(ctx context.Context, it intent.Intent) (ExecutionResult, error) {
	result := ExecutionResult{Status: StatusDone, Action: it.Action}

	out, err := c.executor.Execute(ctx, it.Action, it.Parameters)
	if err == nil {
		result.Message = out
		result.succeeded = true
		return result, nil
	}
	if ctx.Err() != nil {
		return ExecutionResult{}, ctx.Err()
	}

	var paramErr *platform.InvalidParamError
	if errors.As(err, &paramErr) {
		c.logger.Warn("action rejected", zap.String("action", it.Action), zap.Error(err))
		result.Message = fmt.Sprintf("Action '%s' rejected: %v", it.Action, err)
		return result, nil
	}
	c.logger.Error("action failed", zap.String("action", it.Action), zap.Error(err))
	result.Message = fmt.Sprintf("Action '%s' failed: %v", it.Action, err)
	return result, nil
}

// render turns a result into exactly one reply, preceded by a threat alert
// when a drill or resolution executed successfully.
func (c *Controller) render(result ExecutionResult) []Message {
	critical := result.Status != StatusDone || result.approved
	if result.Status != StatusDone || !result.succeeded {
		return c.replyAndRecord(result.Message, critical)
	}

	switch result.Action {
	case "simulate_attack":
		return append([]Message{NewAlert(AlertCritical, DrillAlertText)}, c.replyAndRecord(DrillReply, true)...)
	case "resolve_threat":
		return append([]Message{NewAlert(AlertSafe, ResolvedAlertText)}, c.replyAndRecord(result.Message, critical)...)
	}
	return c.replyAndRecord(result.Message, critical)
}

func (c *Controller) replyAndRecord(text string, critical bool) []Message {
	c.history.Add("System: "+text, critical)
	return reply(text)
}

func reply(text string) []Message {
	return []Message{NewLog(text)}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}
