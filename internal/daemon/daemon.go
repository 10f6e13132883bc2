package daemon

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mblarsen/toast-bridge/internal/dispatch"
	"github.com/mblarsen/toast-bridge/internal/ipc"
	"github.com/mblarsen/toast-bridge/internal/toast"
)

// Daemon owns the toast session for the lifetime of the process and serves
// method calls for it over IPC.
type Daemon struct {
	session    *toast.Session
	dispatcher *dispatch.Dispatcher
	ipcServer  *ipc.Server
	clock      toast.Clock
	backend    string
	startedAt  time.Time
}

// NewDaemon creates a new daemon.
func NewDaemon(session *toast.Session, ipcServer *ipc.Server, clock toast.Clock, backend string) *Daemon {
	if clock == nil {
		clock = &toast.RealClock{}
	}
	return &Daemon{
		session:    session,
		dispatcher: dispatch.New(session),
		ipcServer:  ipcServer,
		clock:      clock,
		backend:    backend,
		startedAt:  clock.Now(),
	}
}

// Run serves IPC requests until ctx is cancelled or the process receives an
// interrupt, then shuts down.
func (d *Daemon) Run(ctx context.Context) error {
	// Set up a channel to listen for OS signals
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	server := d.ipcServer
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- server.Listen(d.handleIPC)
	}()

	select {
	case sig := <-sigs:
		slog.Info("Received shutdown signal, beginning graceful shutdown", "signal", sig)
	case <-ctx.Done():
		slog.Debug("Parent context cancelled, initiating shutdown...")
	case err := <-listenErr:
		slog.Error("IPC listener stopped unexpectedly", "err", err)
		d.ipcServer = nil
		d.Shutdown()
		return err
	}
	return d.Shutdown()
}

// Shutdown stops accepting requests and retracts any progress toast still on
// screen.
func (d *Daemon) Shutdown() error {
	slog.Info("Starting graceful shutdown.")

	if d.ipcServer != nil {
		if err := d.ipcServer.Close(); err != nil {
			slog.Error("Failed to close IPC server during shutdown", "err", err)
		}
		d.ipcServer = nil
	}

	if d.session.State() == toast.ShowingProgress {
		slog.Info("Retracting active progress toast")
		d.session.Hide(context.Background())
	}

	slog.Info("Shutdown complete.")
	return nil
}
