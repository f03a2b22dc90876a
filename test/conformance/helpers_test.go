//go:build conformance

package conformance

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var punchBinary string

func init() {
	// Walk up to find bin/punch
	cwd, _ := os.Getwd()
	for {
		binPath := filepath.Join(cwd, "bin", "punch")
		if _, err := os.Stat(binPath); err == nil {
			punchBinary = binPath
			return
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}
	punchBinary = "punch"
}

// newHome returns a fresh storage root that does not exist yet.
func newHome(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".punch")
}

// runPunch executes the punch binary against the given storage root.
func runPunch(t *testing.T, home string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(punchBinary, args...)
	cmd.Env = append(os.Environ(), "PUNCH_HOME="+home, "NO_COLOR=1")
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	}
	return stdout, stderr, exitCode
}

func writeTimesheet(t *testing.T, home, content string) {
	t.Helper()
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "timesheet"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readTimesheet(t *testing.T, home string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(home, "timesheet"))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
