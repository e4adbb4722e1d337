// Package gitops versions a project directory with git so every change to
// the books is a commit.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	_, err := git(ctx, dir, "init", "--quiet")
	return err
}

// CommitAll stages everything and commits. It returns the short commit
// hash, or "" when the tree is clean.
func CommitAll(ctx context.Context, dir, message string, author Author) (string, error) {
	if _, err := git(ctx, dir, "add", "-A"); err != nil {
		return "", err
	}
	status, err := git(ctx, dir, "status", "--porcelain")
	if err != nil {
		return "", err
	}
	if status == "" {
		return "", nil
	}

	// Identity via -c so commits work without a global git config.
	if _, err := git(ctx, dir,
		"-c", "user.name="+author.Name, "-c", "user.email="+author.Email,
		"commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return git(ctx, dir, "rev-parse", "--short", "HEAD")
}
