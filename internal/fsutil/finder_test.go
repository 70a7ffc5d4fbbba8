package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
}

func TestFindFiles_WalksDirectoriesRecursively(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	one := filepath.Join(dir, "one.hcl")
	two := filepath.Join(dir, "nested", "two.hcl")
	writeFile(t, one)
	writeFile(t, two)
	writeFile(t, filepath.Join(dir, "skip.txt"))

	// Act
	files, err := FindFiles([]string{dir}, ".hcl")

	// Assert
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{one, two}, files)
}

func TestFindFiles_SingleFilePath(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	wiring := filepath.Join(dir, "wiring.hcl")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, wiring)
	writeFile(t, other)

	// Act
	files, err := FindFiles([]string{wiring, other}, ".hcl")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{wiring}, files)
}

func TestFindFiles_MissingPathIsSkipped(t *testing.T) {
	t.Parallel()

	// Act
	files, err := FindFiles([]string{filepath.Join(t.TempDir(), "nope")}, ".hcl")

	// Assert
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_MultipleExtensions(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	long := filepath.Join(dir, "a.yaml")
	short := filepath.Join(dir, "b.yml")
	writeFile(t, long)
	writeFile(t, short)
	writeFile(t, filepath.Join(dir, "c.hcl"))

	// Act
	files, err := FindFiles([]string{dir}, ".yaml", ".yml")

	// Assert
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{long, short}, files)
}

func TestFindFiles_DeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	// Arrange
	dir := t.TempDir()
	wiring := filepath.Join(dir, "wiring.hcl")
	writeFile(t, wiring)

	// Act
	files, err := FindFiles([]string{dir, wiring}, ".hcl")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{wiring}, files)
}
