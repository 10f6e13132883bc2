package cmd

import (
	"fmt"

	"github.com/mblarsen/toast-bridge/internal/config"
	"github.com/mblarsen/toast-bridge/internal/ipc"
	"github.com/mblarsen/toast-bridge/internal/xdgpath"
)

func getSocketPath() string {
	socketPath, err := xdgpath.RuntimePath("daemon.sock")
	if err != nil {
		panic(fmt.Sprintf("could not determine runtime directory: %v", err))
	}
	return socketPath
}

func getSecret() ([]byte, error) {
	secretPath, err := xdgpath.StatePath("auth.token")
	if err != nil {
		panic(fmt.Sprintf("could not determine state directory: %v", err))
	}
	return ipc.GetOrCreateSecret(secretPath)
}

func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		dir, err := xdgpath.ConfigPath()
		if err != nil {
			return nil, err
		}
		path = config.ResolveConfigFile(dir)
	}
	return config.Load(path)
}
