package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"student-relief/internal/adapter/tui"
	"student-relief/internal/submission"
)

// release: the balloon animation in the terminal, talking to a running server.
func releaseCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Type a worry, watch it float away and read a kind reply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = cfg.ServerURL
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return tui.Run(ctx, submission.NewHTTPFetcher(server, nil), submission.DefaultTimings())
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "server base URL (default RELIEF_SERVER_URL)")
	return cmd
}
