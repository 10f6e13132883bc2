package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mblarsen/toast-bridge/internal/ipc"
)

func handleClientError(err error) {
	slog.Error("an ipc error occurred", "err", err)
	var connErr *ipc.ConnectionError
	if errors.As(err, &connErr) {
		_, _ = fmt.Fprintln(os.Stderr, "Error: toast-bridge daemon is not running. Please start it with 'toast-bridge daemon run'.")
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "Error: could not talk to the toast-bridge daemon: %v\n", err)
	}
	os.Exit(1)
}

// callError turns a failed method call into the command's error, and exits
// for transport failures.
func callError(err error) error {
	var callErr *ipc.CallError
	if errors.As(err, &callErr) {
		return callErr
	}
	handleClientError(err)
	return nil
}
