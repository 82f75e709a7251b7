package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "force development mode")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the API server",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = loadConfigAndLogger(); err != nil {
				return err
			}

			if devMode {
				cfg.Env = config.ModeDevelopment.String()
				cfg.Mode = config.ModeDevelopment
			}

			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run(ctx)
		},
	}
)

func run(ctx context.Context) {
	d, err := daemon.New(ctx, &cfg)
	if err != nil {
		// without storage the server must not listen
		log.Fatal().Err(err).Msg("failed to start")
	}

	if err = d.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}
