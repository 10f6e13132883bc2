package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "toast-bridge",
	Short: "Show progress toast notifications on behalf of an application.",
	Long: `toast-bridge runs a small daemon that owns a single progress toast
notification. Applications drive it over a local socket with the
initialize, showProgressToast, updateProgress, hideToast and
showCompletionToast methods; the subcommands here do the same from a shell.`,
	SilenceUsage: true,
}

func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config.toml or config.yaml file.")
}
