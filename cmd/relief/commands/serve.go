package commands

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"student-relief/internal/adapter/errlog"
	"student-relief/internal/adapter/httpapi"
	"student-relief/internal/adapter/openai"
	"student-relief/internal/adapter/telegram"
	"student-relief/internal/usecase/comfort"
)

// serve: the comfort endpoint, the web frontend and, with a token, the
// Telegram bot.
func serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comfort endpoint and the web frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Port = port
			}
			gin.SetMode(gin.ReleaseMode)

			errs := errlog.Open(cfg.ErrorLogPath, cfg.ErrorLogMaxSizeMB, cfg.ErrorLogMaxBackups)
			defer errs.Close()

			client := openai.NewClient(cfg.ProviderKey, openai.Options{
				BaseURL: cfg.ProviderBaseURL,
				Referer: cfg.Referer,
				Title:   cfg.AppTitle,
				Timeout: cfg.ProviderTimeout,
			})
			svc := comfort.NewService(client, cfg)
			if !cfg.Configured() {
				logger.Warn().Msg("OPENROUTER_API_KEY is not set, every comfort request will get the fallback")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if cfg.TelegramToken != "" {
				bot, err := telegram.NewBot(cfg.TelegramToken, cfg.AllowedUserIDs, svc, errs, logger)
				if err != nil {
					logger.Error().Err(err).Msg("failed to init telegram bot, continuing without it")
				} else {
					go func() {
						if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
							logger.Error().Err(err).Msg("telegram bot stopped")
						}
					}()
				}
			}

			srv := httpapi.NewServer(svc, errs, logger)
			if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
				if ctx.Err() != nil {
					logger.Info().Msg("shutdown complete")
					return nil
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}
