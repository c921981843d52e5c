// Package platform maps abstract action names onto concrete command lines
// for the host platform and runs them through the command runner.
package platform

import (
	"context"
	"fmt"
	"net/netip"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/Cyclone1070/jarvis/internal/runner"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Platform identifiers.
const (
	Linux   = "linux"
	Windows = "windows"
	Unknown = "unknown"
)

// Fixed replies for actions that run no command.
const (
	DiagnosticsMessage   = "Running full system diagnostics..."
	ThreatTriggerMessage = "TRIGGERING_THREAT"
	ThreatResolveMessage = "RESOLVING_THREAT"
	UnknownRepairMessage = "Unknown repair target."
)

var (
	keyIDPattern   = regexp.MustCompile(`^[0-9A-Fa-f]{8,40}$`)
	servicePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9@._-]{0,127}$`)
)

// CommandRunner runs one bounded shell command. *runner.Runner implements it.
type CommandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (*runner.Outcome, error)
}

// Detect reports the host platform identifier.
func Detect() string {
	switch runtime.GOOS {
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Unknown
	}
}

// Executor turns actions into commands for one platform.
type Executor struct {
	platform       string
	commands       commandSet
	runner         CommandRunner
	defaultTimeout time.Duration
	longTimeout    time.Duration
	logger         *zap.Logger
}

// New selects the variant for platformID. Unknown platforms fail here, not per call.
func New(platformID string, r CommandRunner, cfg config.RunnerConfig, logger *zap.Logger) (*Executor, error) {
	if r == nil {
		panic("runner is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var cmds commandSet
	switch platformID {
	case Linux:
		cmds = linuxCommands()
	case Windows:
		cmds = windowsCommands()
	default:
		return nil, &UnsupportedPlatformError{Platform: platformID}
	}

	return &Executor{
		platform:       platformID,
		commands:       cmds,
		runner:         r,
		defaultTimeout: time.Duration(cfg.DefaultTimeoutSeconds) * time.Second,
		longTimeout:    time.Duration(cfg.LongTimeoutSeconds) * time.Second,
		logger:         logger.Named("platform").With(zap.String("platform", platformID)),
	}, nil
}

// Platform returns the identifier the executor was built for.
func (e *Executor) Platform() string {
	return e.platform
}

type repairParams struct {
	Target string `mapstructure:"target"`
	KeyID  string `mapstructure:"key_id"`
}

type blockIPParams struct {
	IP string `mapstructure:"ip"`
}

type serviceParams struct {
	Service string `mapstructure:"service"`
}

// Execute runs action and returns the result message shown to the user.
//
// Command failures and timeouts are part of the message. An error is returned
// only for invalid parameters (*InvalidParamError) or when ctx is cancelled.
func (e *Executor) Execute(ctx context.Context, action string, params map[string]any) (string, error) {
	e.logger.Info("executing action", zap.String("action", action))

	switch action {
	case "system_monitor":
		return DiagnosticsMessage, nil
	case "simulate_attack":
		return ThreatTriggerMessage, nil
	case "resolve_threat":
		return ThreatResolveMessage, nil
	case "security_scan_ports", "check_firewall":
		return e.run(ctx, action, e.commands.firewallStatus, e.defaultTimeout)
	case "update_system":
		return e.run(ctx, action, e.commands.updatePackages, e.longTimeout)
	case "list_processes":
		return e.run(ctx, action, e.commands.listProcesses, e.defaultTimeout)
	case "read_logs":
		return e.run(ctx, action, e.commands.readLogs, e.defaultTimeout)
	case "quick_clean":
		return e.run(ctx, action, e.commands.quickClean, e.defaultTimeout)
	case "fix_system_issue":
		return e.fixSystemIssue(ctx, action, params)
	case "block_ip":
		return e.blockIP(ctx, action, params)
	case "stop_service":
		return e.stopService(ctx, action, params)
	default:
		return unsupported(action), nil
	}
}

func (e *Executor) fixSystemIssue(ctx context.Context, action string, params map[string]any) (string, error) {
	var p repairParams
	if err := decodeParams(action, params, &p); err != nil {
		return "", err
	}
	if p.Target != "gpg" {
		return UnknownRepairMessage, nil
	}
	if e.commands.repairKey == nil {
		return e.commands.keyRepairUnsupported, nil
	}
	if !keyIDPattern.MatchString(p.KeyID) {
		return "", &InvalidParamError{Action: action, Param: "key_id", Reason: "must be 8 to 40 hex digits"}
	}
	return e.run(ctx, action, e.commands.repairKey(strings.ToUpper(p.KeyID)), e.defaultTimeout)
}

func (e *Executor) blockIP(ctx context.Context, action string, params map[string]any) (string, error) {
	var p blockIPParams
	if err := decodeParams(action, params, &p); err != nil {
		return "", err
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(p.IP))
	if err != nil {
		return "", &InvalidParamError{Action: action, Param: "ip", Reason: "not an IP address", Cause: err}
	}
	addr = addr.Unmap()
	if addr.Zone() != "" {
		return "", &InvalidParamError{Action: action, Param: "ip", Reason: "zoned addresses are not accepted"}
	}
	if addr.IsLoopback() || addr.IsUnspecified() {
		return "", &InvalidParamError{Action: action, Param: "ip", Reason: "refusing to block a local address"}
	}
	if e.commands.blockIP == nil {
		return unsupported(action), nil
	}
	return e.run(ctx, action, e.commands.blockIP(addr), e.defaultTimeout)
}

func (e *Executor) stopService(ctx context.Context, action string, params map[string]any) (string, error) {
	var p serviceParams
	if err := decodeParams(action, params, &p); err != nil {
		return "", err
	}
	if !servicePattern.MatchString(p.Service) {
		return "", &InvalidParamError{Action: action, Param: "service", Reason: "not a valid service name"}
	}
	if e.commands.stopService == nil {
		return unsupported(action), nil
	}
	return e.run(ctx, action, e.commands.stopService(p.Service), e.defaultTimeout)
}

// run executes command and formats the outcome.
func (e *Executor) run(ctx context.Context, action, command string, timeout time.Duration) (string, error) {
	if command == "" {
		return unsupported(action), nil
	}
	outcome, err := e.runner.Run(ctx, command, timeout)
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	if !outcome.Succeeded {
		e.logger.Warn("action failed", zap.String("action", action), zap.Error(outcome.Err))
	}
	return formatOutcome(outcome), nil
}

func formatOutcome(o *runner.Outcome) string {
	switch {
	case o.Succeeded:
		return "SUCCESS:\n" + o.Output
	case o.TimedOut:
		return "ERROR: " + o.Output
	case o.ExitCode != nil:
		return fmt.Sprintf("FAILED (Code %d):\n%s", *o.ExitCode, o.Output)
	default:
		return "ERROR: " + o.Output
	}
}

func unsupported(action string) string {
	return fmt.Sprintf("'%s' is not supported on this platform.", action)
}

func decodeParams(action string, params map[string]any, out any) error {
	if params == nil {
		return nil
	}
	if err := mapstructure.Decode(params, out); err != nil {
		return &InvalidParamError{Action: action, Reason: "malformed parameters", Cause: err}
	}
	return nil
}
