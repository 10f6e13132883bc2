package fileutil

import (
	"os"
	"path/filepath"
)

// AtomicWriteFile writes data to a temporary file next to filename and renames
// it into place, so readers never see a partially written file.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}

	tmpfile, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpfile.Name()) // no-op once renamed

	if _, err := tmpfile.Write(data); err != nil {
		tmpfile.Close()
		return err
	}
	if err := tmpfile.Sync(); err != nil {
		tmpfile.Close()
		return err
	}
	if err := tmpfile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpfile.Name(), perm); err != nil {
		return err
	}

	return os.Rename(tmpfile.Name(), filename)
}
