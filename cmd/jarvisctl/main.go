// Package main is the operator console for a running jarvis agent.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Cyclone1070/jarvis/internal/client"
	"github.com/Cyclone1070/jarvis/internal/ui"
	"github.com/Cyclone1070/jarvis/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
)

const tokenEnv = "JARVIS_TOKEN"

func main() {
	if err := newRootCmd(os.Getenv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	var (
		url         string
		token       string
		dialTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "jarvisctl",
		Short:        "Interactive console for a jarvis agent",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = getenv(tokenEnv)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), dialTimeout)
			defer cancel()
			conn, err := client.Dial(ctx, url, token)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer conn.Close()

			return runConsole(conn, url)
		},
	}

	cmd.Flags().StringVar(&url, "url", "ws://127.0.0.1:8888/ws", "agent WebSocket endpoint")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (default $"+tokenEnv+")")
	cmd.Flags().DurationVar(&dialTimeout, "dial-timeout", 10*time.Second, "connection timeout")
	return cmd
}

func runConsole(conn ui.Connection, endpoint string) error {
	renderer := services.NewGlamourRenderer()
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(conn, endpoint, renderer, spinnerFactory).Start()
}
