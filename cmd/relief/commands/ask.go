package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"student-relief/internal/submission"
)

var errEmptyMessage = errors.New("message is empty")

// ask <message>: one submission without animation.
func askCmd() *cobra.Command {
	var server string
	cmd := &cobra.Command{
		Use:          "ask <message>",
		Short:        "Send one message and print the comfort reply",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = cfg.ServerURL
			}
			ctrl := submission.NewController(
				submission.NewHTTPFetcher(server, nil),
				printUI{out: cmd.OutOrStdout()},
				submission.Timings{},
			)
			out := ctrl.Submit(cmd.Context(), strings.Join(args, " "))
			if out.Kind == submission.Rejected {
				return errEmptyMessage
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&server, "server", "", "server base URL (default RELIEF_SERVER_URL)")
	return cmd
}

// printUI shows only the reply; the animation stages have nothing to draw.
type printUI struct {
	out io.Writer
}

func (printUI) Shake()         {}
func (printUI) SetBusy(bool)   {}
func (printUI) Release(string) {}
func (printUI) ClearInput()    {}
func (printUI) HideInput()     {}
func (printUI) ShowLoading()   {}
func (printUI) HideLoading()   {}
func (u printUI) ShowReply(text string) {
	fmt.Fprintln(u.out, text)
}
