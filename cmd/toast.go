package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/mblarsen/toast-bridge/internal/dispatch"
	"github.com/mblarsen/toast-bridge/internal/toast"
)

func callMethod(method string, arguments map[string]any) error {
	var raw json.RawMessage
	if arguments != nil {
		b, err := json.Marshal(arguments)
		if err != nil {
			return err
		}
		raw = b
	}
	if _, err := newClient().Call(method, raw); err != nil {
		return callError(err)
	}
	return nil
}

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Acquire the toast notifier in the daemon.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callMethod(dispatch.MethodInitialize, nil)
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a progress toast, replacing any current one.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		subtitle, _ := cmd.Flags().GetString("subtitle")
		progress, _ := cmd.Flags().GetInt("progress")
		status, _ := cmd.Flags().GetString("status")
		label, _ := cmd.Flags().GetString("label")
		return callMethod(dispatch.MethodShowProgressToast, map[string]any{
			"title":         title,
			"subtitle":      subtitle,
			"progress":      progress,
			"status":        status,
			"progressLabel": label,
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the progress of the current toast.",
	Long: `Update the progress of the current toast. Does nothing if no progress
toast is showing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, _ := cmd.Flags().GetInt("progress")
		status, _ := cmd.Flags().GetString("status")
		return callMethod(dispatch.MethodUpdateProgress, map[string]any{
			"progress": progress,
			"status":   status,
		})
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the current progress toast.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callMethod(dispatch.MethodHideToast, nil)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Replace the progress toast with a completion toast.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		subtitle, _ := cmd.Flags().GetString("subtitle")
		message, _ := cmd.Flags().GetString("message")
		return callMethod(dispatch.MethodShowCompletionToast, map[string]any{
			"title":    title,
			"subtitle": subtitle,
			"message":  message,
		})
	},
}

var callCmd = &cobra.Command{
	Use:   "call <method> [arguments]",
	Short: "Send a raw method call with JSON arguments.",
	Long: `Send a raw method call to the daemon, exactly as an application would.
Arguments are given as a JSON document, for example:

  toast-bridge call updateProgress '{"progress": 55, "status": "Halfway"}'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw json.RawMessage
		if len(args) == 2 {
			if !gjson.Valid(args[1]) {
				return fmt.Errorf("arguments are not valid JSON: %s", args[1])
			}
			raw = json.RawMessage(args[1])
		}

		result, err := newClient().Call(args[0], raw)
		if err != nil {
			return callError(err)
		}
		out, err := json.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	showCmd.Flags().String("title", "", "First line of the toast.")
	showCmd.Flags().String("subtitle", "", "Second line of the toast.")
	showCmd.Flags().Int("progress", 0, "Progress in percent (0-100).")
	showCmd.Flags().String("status", "", "Status line shown under the progress bar.")
	showCmd.Flags().String("label", toast.DefaultProgressLabel, "Label of the progress bar.")
	_ = showCmd.MarkFlagRequired("title")
	_ = showCmd.MarkFlagRequired("subtitle")
	_ = showCmd.MarkFlagRequired("progress")

	updateCmd.Flags().Int("progress", 0, "Progress in percent (0-100).")
	updateCmd.Flags().String("status", "", "Status line shown under the progress bar.")
	_ = updateCmd.MarkFlagRequired("progress")

	completeCmd.Flags().String("title", "", "First line of the toast.")
	completeCmd.Flags().String("subtitle", "", "Second line of the toast.")
	completeCmd.Flags().String("message", "", "Closing message.")
	_ = completeCmd.MarkFlagRequired("title")
	_ = completeCmd.MarkFlagRequired("subtitle")

	for _, c := range []*cobra.Command{initializeCmd, showCmd, updateCmd, hideCmd, completeCmd, callCmd} {
		rootCmd.AddCommand(c)
	}
}

