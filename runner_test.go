package stormext

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunnerExitStatus(t *testing.T) {
	skipOnWindows(t)

	runner := &ExecRunner{}
	output, err := runner.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo compiling; echo failed >&2; exit 3"},
	})

	code, ran := exitStatus(err)
	if !ran {
		t.Fatalf("Expected process to have run, got %v", err)
	}
	if code != 3 {
		t.Errorf("Expected exit code 3, got %d", code)
	}
	if diff := cmp.Diff([]string{"compiling", "failed"}, outputLines(output)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestExecRunnerNotFound(t *testing.T) {
	runner := &ExecRunner{}
	_, err := runner.Run(context.Background(), Command{Name: "stormext-no-such-cmake"})
	if err == nil {
		t.Fatal("Expected error for missing binary")
	}
	if _, ran := exitStatus(err); ran {
		t.Errorf("Missing binary should not count as ran: %v", err)
	}
}

func TestExecRunnerDirAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var stream bytes.Buffer
	runner := &ExecRunner{Stream: &stream}

	output, err := runner.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", `pwd; printf '%s\n' "$CXXFLAGS"`},
		Dir:  dir,
		Env:  map[string]string{"PATH": os.Getenv("PATH"), "CXXFLAGS": `-DVERSION_INFO=\"0.9\"`},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := outputLines(output)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", lines)
	}
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(lines[0])
	if gotDir != wantDir {
		t.Errorf("Expected working dir %s, got %s", wantDir, gotDir)
	}
	if lines[1] != `-DVERSION_INFO=\"0.9\"` {
		t.Errorf("Expected CXXFLAGS to reach the process unchanged, got %q", lines[1])
	}
	if stream.String() != string(output) {
		t.Errorf("Stream got %q, captured %q", stream.String(), output)
	}
}

func TestOutputLines(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"\n", nil},
		{"one\n", []string{"one"}},
		{"one\ntwo\r\n", []string{"one", "two"}},
		{"one\n\nthree", []string{"one", "", "three"}},
	}

	for _, tc := range testCases {
		if diff := cmp.Diff(tc.want, outputLines([]byte(tc.in))); diff != "" {
			t.Errorf("outputLines(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Name: "cmake", Args: []string{"--build", ".", "--target", "stormpy.core"}}
	if got := cmd.String(); got != "cmake --build . --target stormpy.core" {
		t.Errorf("Unexpected command string %q", got)
	}
}
