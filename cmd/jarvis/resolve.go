package main

import (
	"encoding/json"
	"strings"

	"github.com/Cyclone1070/jarvis/internal/intent"
	"github.com/Cyclone1070/jarvis/internal/policy"
	"github.com/spf13/cobra"
)

// resolution is the output of the resolve command.
type resolution struct {
	Intent   intent.Intent   `json:"intent"`
	Decision policy.Decision `json:"decision,omitempty"`
	Impact   string          `json:"impact,omitempty"`
	Backend  string          `json:"backend"`
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TEXT...",
		Short: "Resolve text to an intent and classify it without executing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			gate, err := policy.NewGate(policy.SetsFromConfig(cfg.Policy), a.logger)
			if err != nil {
				return err
			}
			chain := intent.NewChainFromConfig(cmd.Context(), cfg.Resolver, a.deps.Getenv, a.logger)

			got, err := chain.Resolve(cmd.Context(), "", strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := resolution{Intent: got, Backend: "fallback"}
			if chain.HasBackend() {
				out.Backend = cfg.Resolver.Model
			}
			if got.HasAction() {
				out.Decision = gate.Classify(got.Action)
				if out.Decision == policy.DecisionApprovalNeeded {
					out.Impact = gate.Impact(got.Action)
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
