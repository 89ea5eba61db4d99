package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"monitoring-demo/internal/app"
	"monitoring-demo/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashboards",
		Short:         "Demo dashboards exposing Prometheus metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, p := range config.Profiles {
		root.AddCommand(newAppCommand(p))
	}
	return root
}

func newAppCommand(p config.Profile) *cobra.Command {
	cmd := &cobra.Command{
		Use:   p.Name,
		Short: fmt.Sprintf("Run the %s dashboard (port %d)", p.Service, p.Port),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(p, cmd.Flags())
			if err != nil {
				return err
			}
			app.SetupLogging(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				log.Error().Err(err).Str("app", p.Name).Msg("startup failed")
				return err
			}
			if err := a.Run(ctx); err != nil {
				log.Error().Err(err).Msg("server stopped")
				return err
			}
			return nil
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}
