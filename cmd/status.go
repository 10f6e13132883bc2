package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mblarsen/toast-bridge/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the toast session.",
	Long:  `Show the state of the toast session held by the daemon.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp ipc.StatusResponse
		if err := newClient().Send(ipc.StatusRequest{Command: "status"}, &resp); err != nil {
			handleClientError(err)
		}
		return printStatus(cmd.OutOrStdout(), resp, time.Now())
	},
}

func printStatus(out io.Writer, s ipc.StatusResponse, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "STATE\t%s\n", s.State)
	fmt.Fprintf(w, "BACKEND\t%s\n", s.Backend)
	if s.AppID != "" {
		fmt.Fprintf(w, "APP ID\t%s\n", s.AppID)
	}
	fmt.Fprintf(w, "UP SINCE\t%s\n", humanize.RelTime(s.StartedAt, now, "ago", "from now"))
	if s.Tag != "" {
		fmt.Fprintf(w, "TOAST\t%s\n", s.Tag)
		fmt.Fprintf(w, "TITLE\t%s / %s\n", s.Title, s.Subtitle)
		fmt.Fprintf(w, "PROGRESS\t%d%% %s\n", s.Progress, s.Status)
		fmt.Fprintf(w, "SHOWN\t%s\n", humanize.RelTime(s.ShownAt, now, "ago", "from now"))
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
