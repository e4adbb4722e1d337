package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git not installed")
	}
}

var testAuthor = Author{Name: "Test Author", Email: "test@example.com"}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(context.Background(), dir))

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(context.Background(), dir))
	assert.True(t, IsRepo(dir), "initialized dir should be a repo")
}

func TestCommitAll(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, Init(ctx, dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte("id\n"), 0o644))

	hash, err := CommitAll(ctx, dir, "add: office chair", testAuthor)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "add: office chair|Test Author <test@example.com>")
}

func TestCommitAll_CleanTree(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, Init(ctx, dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	_, err := CommitAll(ctx, dir, "first", testAuthor)
	require.NoError(t, err)

	hash, err := CommitAll(ctx, dir, "second", testAuthor)
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestAuthorString(t *testing.T) {
	assert.Equal(t, "Test Author <test@example.com>", testAuthor.String())
}
