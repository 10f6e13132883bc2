package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.ps1")
	perm := os.FileMode(0600)

	require.NoError(t, AtomicWriteFile(filename, []byte("first"), perm))
	require.NoError(t, AtomicWriteFile(filename, []byte("second"), perm))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filename)
		require.NoError(t, err)
		assert.Equal(t, perm, info.Mode())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestAtomicWriteFile_MissingDir(t *testing.T) {
	err := AtomicWriteFile(filepath.Join(t.TempDir(), "missing", "test.ps1"), []byte("x"), 0600)
	assert.Error(t, err)
}
