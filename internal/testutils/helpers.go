package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// WriteFiles creates a temporary directory holding files (name -> content).
// It returns the absolute path and fails the test immediately on error.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	// Loam sometimes prefers absolute paths, though t.TempDir usually returns one.
	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		p := filepath.Join(absPath, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644), "Failed to write %s", name)
	}
	return absPath
}

// SetupTestRepo seeds a temporary directory with files and initializes a Loam
// repository in it.
func SetupTestRepo(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir := WriteFiles(t, files)
	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return dir, repo
}
