package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickHash_DeterministicForSameContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	h1, err := QuickHash(path, 11)
	require.NoError(t, err)
	h2, err := QuickHash(path, 11)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestQuickHash_DiffersForDifferentSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	h1, err := QuickHash(path, 11)
	require.NoError(t, err)
	h2, err := QuickHash(path, 999)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "size is mixed into the hash even when content is read identically")
}

func TestQuickHash_DiffersForDifferentContent(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("goodbye world"), 0o644))

	hA, err := QuickHash(pathA, 11)
	require.NoError(t, err)
	hB, err := QuickHash(pathB, 13)
	require.NoError(t, err)
	assert.NotEqual(t, hA, hB)
}

func TestQuickHash_HandlesFileSmallerThanSampleWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	h, err := QuickHash(path, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, h)
}

func TestQuickHash_MissingFileErrors(t *testing.T) {
	_, err := QuickHash(filepath.Join(t.TempDir(), "missing.bin"), 0)
	assert.Error(t, err)
}
