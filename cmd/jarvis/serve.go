package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/Cyclone1070/jarvis/internal/intent"
	"github.com/Cyclone1070/jarvis/internal/platform"
	"github.com/Cyclone1070/jarvis/internal/policy"
	"github.com/Cyclone1070/jarvis/internal/runner"
	"github.com/Cyclone1070/jarvis/internal/server"
	"github.com/Cyclone1070/jarvis/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve operator sessions over WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// buildServer wires the pipeline for the detected platform. An unsupported
// platform is fatal here, before any session can start.
func (a *app) buildServer(ctx context.Context, cfg *config.Config, platformID string) (*server.Server, error) {
	logger := a.logger

	gate, err := policy.NewGate(policy.SetsFromConfig(cfg.Policy), logger)
	if err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	r := runner.New(cfg.Runner, logger, runner.WithElevationCheck(a.deps.Elevated))
	executor, err := platform.New(platformID, r, cfg.Runner, logger)
	if err != nil {
		return nil, err
	}

	deps := session.Dependencies{
		Resolver: intent.NewChainFromConfig(ctx, cfg.Resolver, a.deps.Getenv, logger),
		Gate:     gate,
		Executor: executor,
		Logger:   logger,
	}
	return server.New(cfg, deps, a.deps.Sampler, platformID, logger), nil
}

func (a *app) serve(ctx context.Context, cfg *config.Config) error {
	platformID := platform.Detect()
	a.logger.Info("initializing", zap.String("platform", platformID))

	srv, err := a.buildServer(ctx, cfg, platformID)
	if err != nil {
		return err
	}

	if platformID == platform.Linux {
		if a.deps.Elevated() {
			a.logger.Info("running with root privileges")
		} else {
			a.logger.Warn("not running as root: apt and iptables actions may fail or prompt for a password")
		}
		if err := lowerPriority(); err != nil {
			a.logger.Warn("could not lower process priority", zap.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", zap.NamedError("cause", context.Cause(gctx)))
		return nil
	})
	return g.Wait()
}
