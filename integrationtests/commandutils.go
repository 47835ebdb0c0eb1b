// Package integrationtests runs the compiled webgrep binary against local
// fixtures. The tests only run with WEBGREP_INTEGRATION_TEST_RUN_MODE=yes
// and expect the binary in the repository root
// (go build -o webgrep ./cmd/webgrep).
package integrationtests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"
)

const webgrepCmd = "../webgrep"

// runCommand runs cmdStr and writes its stdout to stdoutFile. Stderr is
// logged through t.
func runCommand(ctx context.Context, t *testing.T, stdoutFile, cmdStr string,
	args ...string) (int, error) {

	if _, err := os.Stat(cmdStr); err != nil {
		return 0, fmt.Errorf("no such executable '%s', please compile first: %v", cmdStr, err)
	}

	t.Log("Creating stdout file", stdoutFile)
	fd, err := os.Create(stdoutFile)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	t.Log("Running command", cmdStr, strings.Join(args, " "))
	var stderr strings.Builder
	cmd := exec.CommandContext(ctx, cmdStr, args...)
	cmd.Stdout = fd
	cmd.Stderr = &stderr
	err = cmd.Run()
	t.Log("Done running command!", err)
	if stderr.Len() > 0 {
		t.Log("Stderr:", stderr.String())
	}

	return exitCodeFromError(err), err
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	if exitError, ok := err.(*exec.ExitError); ok {
		ws := exitError.Sys().(syscall.WaitStatus)
		return ws.ExitStatus()
	}
	panic(fmt.Sprintf("Unable to get process exit code from error: %v", err))
}
