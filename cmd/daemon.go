package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mblarsen/toast-bridge/internal/daemon"
	"github.com/mblarsen/toast-bridge/internal/ipc"
	"github.com/mblarsen/toast-bridge/internal/native"
	"github.com/mblarsen/toast-bridge/internal/toast"
	"github.com/mblarsen/toast-bridge/internal/xdgpath"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the toast-bridge daemon.",
	Long:  `Manage the toast-bridge daemon.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the toast-bridge daemon.",
	Long: `Run the toast-bridge daemon in the foreground. The daemon owns the
progress toast session and serves method calls on a local socket until it is
interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		setupLogger(cfg.LogLevel)
		slog.Info("Starting daemon...", "backend", cfg.Backend, "app_id", cfg.AppID)

		socketPath, err := xdgpath.RuntimePath("daemon.sock")
		if err != nil {
			return fmt.Errorf("failed to get runtime path: %w", err)
		}
		secret, err := getSecret()
		if err != nil {
			return fmt.Errorf("failed to get secret: %w", err)
		}

		service, err := native.New(cfg, filepath.Dir(socketPath))
		if err != nil {
			return err
		}
		session := toast.NewSession(service, &toast.RealClock{})

		ipcServer, err := ipc.NewServer(socketPath, secret)
		if err != nil {
			return err
		}

		d := daemon.NewDaemon(session, ipcServer, &toast.RealClock{}, cfg.Backend)
		slog.Info("Daemon startup successful.", "socket", ipcServer.SocketPath())

		return d.Run(context.Background())
	},
}

func setupLogger(level string) {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
		}),
	))
}

func init() {
	daemonCmd.AddCommand(runCmd)
	rootCmd.AddCommand(daemonCmd)
}
