package ipc

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
)

const secretSize = 32

// GetOrCreateSecret reads the shared IPC secret from path, creating it with
// fresh random bytes on first use.
func GetOrCreateSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) < secretSize {
			return nil, fmt.Errorf("secret in %s is too short (%d bytes)", path, len(secret))
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	secret = make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0600); err != nil {
		return nil, err
	}
	return secret, nil
}
