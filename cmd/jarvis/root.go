package main

import (
	"fmt"
	"os"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/Cyclone1070/jarvis/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Dependencies holds the host-facing pieces the commands need.
type Dependencies struct {
	Getenv   func(string) string
	Sampler  telemetry.Sampler
	Elevated func() bool
	Logger   func(debug bool) (*zap.Logger, error)
}

func defaultDependencies() Dependencies {
	return Dependencies{
		Getenv:   os.Getenv,
		Sampler:  telemetry.NewHostSampler(),
		Elevated: func() bool { return os.Geteuid() == 0 },
		Logger:   newProductionLogger,
	}
}

func newProductionLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// app carries flag values and the logger shared by subcommands.
type app struct {
	deps       Dependencies
	configPath string
	debug      bool
	logger     *zap.Logger
}

func newRootCmd(deps Dependencies) *cobra.Command {
	a := &app{deps: deps}

	root := &cobra.Command{
		Use:   "jarvis",
		Short: "Safety-gated system administration agent",
		Long: `jarvis turns natural-language requests into host actions.

Every action is classified before it runs: safe actions execute at once,
high-impact actions wait for an explicit operator "yes", and anything not
on the allow list is refused.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.deps.Logger(a.debug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/jarvis/config.json)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newServeCmd(a), newResolveCmd(a), newTokenCmd(a))
	return root
}

// loadConfig reads --config when given, otherwise the dotfile with defaults.
func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		cfg, err := config.NewLoader().LoadFile(a.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", a.configPath, err)
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
