package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const (
	updateExpectedEnvVar = "VLNUM_UPDATE_EXPECTED"
	binaryPathEnvVar     = "VLNUM_BINARY_PATH"
)

// shouldUpdateExpected reports whether VLNUM_UPDATE_EXPECTED is truthy.
func shouldUpdateExpected() bool {
	value := strings.TrimSpace(os.Getenv(updateExpectedEnvVar))
	if value == "" {
		return false
	}

	b, err := strconv.ParseBool(value)
	return err == nil && b
}

// RunExecutableAndCompare runs an executable and diffs its stdout against
// expectedFile. With VLNUM_UPDATE_EXPECTED set, the file is rewritten instead.
func RunExecutableAndCompare(
	t *testing.T,
	executablePath string,
	args []string,
	expectedFile string,
) {
	t.Helper()

	if _, err := os.Stat(executablePath); os.IsNotExist(err) {
		t.Fatalf("Executable not found at %s", executablePath)
	}

	cmd := exec.Command(executablePath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			t.Fatalf("Command failed: %v\nStderr: %s", err, exitErr.Stderr)
		}
		t.Fatalf("Command failed: %v", err)
	}

	expected, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("Failed to read expected file %s: %v", expectedFile, err)
	}

	if string(output) == string(expected) {
		return
	}

	actualFile, err := os.CreateTemp(t.TempDir(), "actual_*.out")
	if err != nil {
		t.Fatalf("Failed to create temp file for actual output: %v", err)
	}
	defer actualFile.Close()

	if _, err := actualFile.Write(output); err != nil {
		t.Fatalf("Failed to write actual output to temp file: %v", err)
	}

	if shouldUpdateExpected() {
		if err := os.WriteFile(expectedFile, output, 0644); err != nil {
			t.Fatalf("Failed to update expected file %s: %v", expectedFile, err)
		}
		t.Logf("Updated expected file: %s", expectedFile)
		return
	}

	diffCmd := exec.Command("diff", "-u", expectedFile, actualFile.Name())
	diffOutput, err := diffCmd.CombinedOutput()

	// diff exits 1 when the files differ.
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			t.Fatalf("Failed to run diff command: %v", err)
		}
	}

	t.Logf("\n%s", string(diffOutput))

	t.Fail()
}

// vlnumBinary returns the path of the vlnum binary, from VLNUM_BINARY_PATH
// or ../bin/vlnum. The test is skipped when neither exists.
func vlnumBinary(t *testing.T) string {
	t.Helper()
	if envPath := os.Getenv(binaryPathEnvVar); envPath != "" {
		return envPath
	}
	binaryPath, err := filepath.Abs("../bin/vlnum")
	if err != nil {
		t.Fatalf("Failed to get binary path: %v", err)
	}
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("vlnum binary not found at %s; set %s", binaryPath, binaryPathEnvVar)
	}
	return binaryPath
}

func RunVlnumAndCompare(t *testing.T, format, inputFile, expectedFile string) {
	RunExecutableAndCompare(t, vlnumBinary(t), []string{"-t", format, inputFile}, expectedFile)
}
