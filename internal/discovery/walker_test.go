package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filerecon/recon/internal/metadata"
)

func createTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# hi\n")
	writeFile(t, filepath.Join(dir, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(dir, "debug.log"), "noisy\n")
	writeFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")
	return dir
}

func TestWalker_Walk_RespectsGitignoreAndDefaultIgnores(t *testing.T) {
	dir := createTestRepo(t)
	w := NewWalker()

	gm, err := NewGitignoreMatcher(dir)
	require.NoError(t, err)
	di := NewDefaultIgnoreMatcher()

	var visited []string
	result, err := w.Walk(context.Background(), WalkerConfig{
		Root:             dir,
		GitignoreMatcher: gm,
		DefaultIgnorer:   di,
	}, func(e metadata.Entry) error {
		visited = append(visited, e.Path)
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"main.go", "README.md", ".gitignore"}, visited)
	assert.Greater(t, result.TotalSkipped, 0)
}

func TestWalker_Walk_AllModeVisitsIgnoredEntries(t *testing.T) {
	dir := createTestRepo(t)
	w := NewWalker()

	var visited []string
	_, err := w.Walk(context.Background(), WalkerConfig{Root: dir}, func(e metadata.Entry) error {
		visited = append(visited, e.Path)
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, visited, "debug.log")
	assert.Contains(t, visited, filepath.ToSlash(filepath.Join("node_modules", "pkg", "index.js")))
	assert.NotContains(t, visited, filepath.ToSlash(filepath.Join(".git", "HEAD")), "the .git directory itself is always pruned")
}

func TestWalker_Walk_AbsPathIsCanonical(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	w := NewWalker()
	var absPaths []string
	_, err := w.Walk(context.Background(), WalkerConfig{Root: dir}, func(e metadata.Entry) error {
		absPaths = append(absPaths, e.AbsPath)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, absPaths, 1)
	assert.True(t, filepath.IsAbs(absPaths[0]))
}

func TestWalker_Walk_VisitErrorAbortsWalk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")
	writeFile(t, filepath.Join(dir, "b.txt"), "x")

	w := NewWalker()
	boom := assert.AnError
	_, err := w.Walk(context.Background(), WalkerConfig{Root: dir}, func(e metadata.Entry) error {
		return boom
	})
	assert.Error(t, err)
}

func TestWalker_Walk_ContextCancellationStopsWalk(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, filepath.Join(dir, "f"+string(rune('a'+i))+".txt"), "x")
	}

	w := NewWalker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Walk(ctx, WalkerConfig{Root: dir}, func(e metadata.Entry) error {
		return nil
	})
	assert.Error(t, err)
}

func TestWalker_Walk_RejectsNonDirectoryRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	writeFile(t, path, "x")

	w := NewWalker()
	_, err := w.Walk(context.Background(), WalkerConfig{Root: path}, func(e metadata.Entry) error {
		return nil
	})
	assert.Error(t, err)
}

func TestWalker_Walk_SkipsDuplicateSymlinkTargets(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link_a.txt")))
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link_b.txt")))

	w := NewWalker()
	var visited []string
	_, err := w.Walk(context.Background(), WalkerConfig{Root: dir}, func(e metadata.Entry) error {
		visited = append(visited, e.Path)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, visited, 2, "real.txt plus exactly one of the two symlinks pointing at it")
}
