package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "cashbook-test-*")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(tmpDir, "cashbook")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/cashbook")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		os.RemoveAll(tmpDir)
		panic("failed to build binary: " + err.Error())
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// runCashbook runs the binary and returns stdout and stderr separately so
// JSON output can be decoded.
func runCashbook(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// mustRun fails the test when the command exits non-zero.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := runCashbook(t, args...)
	require.NoError(t, err, "cashbook %s\nstderr: %s", strings.Join(args, " "), errOut)
	return out
}

// newProject initializes a project in a temp dir and returns its path.
func newProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, append([]string{"init", dir, "--name", "Test Biz"}, extra...)...)
	return dir
}

// add records a transaction and returns its ID.
func add(t *testing.T, dir, date, amount, typ, method, desc string) string {
	t.Helper()
	out := mustRun(t, "add", "--repo", dir, "--date", date, "--amount", amount,
		"--type", typ, "--method", method, "--description", desc)
	return strings.TrimSpace(out)
}
