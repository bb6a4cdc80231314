package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"student-relief/internal/config"
	"student-relief/internal/logging"
)

var (
	envFile string
	cfg     config.Config
	logger  zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "relief",
		Short:         "Let a worry float away and get a few kind words back",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
			logger = logging.Setup(cfg.LogLevel, cfg.LogFormat)
			if cfg.EnvFileErr != nil {
				logger.Debug().Err(cfg.EnvFileErr).Str("path", envFile).Msg("could not read .env")
			}
			for _, id := range cfg.SkippedUserIDs {
				logger.Warn().Str("id", id).Msg("skipping telegram user id")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", ".env", "path to a .env file")

	root.AddCommand(serveCmd(), releaseCmd(), askCmd())
	return root.Execute()
}
