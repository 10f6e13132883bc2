// Package native implements toast.Service on top of the host's notification
// platform.
package native

import (
	"fmt"
	"path/filepath"

	"github.com/mblarsen/toast-bridge/internal/config"
	"github.com/mblarsen/toast-bridge/internal/toast"
)

const (
	BackendWinRT = "winrt"
	BackendLog   = "log"
)

// New returns the notification service selected by cfg.Backend. Scripts for
// the winrt backend are written below runtimeDir.
func New(cfg *config.Config, runtimeDir string) (toast.Service, error) {
	switch cfg.Backend {
	case BackendWinRT:
		return NewWinRT(WinRTOptions{
			AppID:      cfg.AppID,
			Group:      cfg.Group,
			PowerShell: cfg.PowerShell,
			ScriptDir:  filepath.Join(runtimeDir, "scripts"),
			Timeout:    cfg.CallTimeout,
		}), nil
	case BackendLog:
		return NewLog(cfg.AppID), nil
	default:
		return nil, fmt.Errorf("unknown notification backend '%s'", cfg.Backend)
	}
}
