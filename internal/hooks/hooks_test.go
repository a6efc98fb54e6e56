package hooks

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func writeHook(t *testing.T, base, feature, event, script string) {
	t.Helper()
	dir := filepath.Join(base, feature)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, event+".sh"), []byte(script), 0o644); err != nil {
		t.Fatalf("write hook: %v", err)
	}
}

func TestRunMissingHookIsNoop(t *testing.T) {
	r := &Runner{BaseDir: t.TempDir()}
	result, err := r.Run(context.Background(), "pomodoro", "stop")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Skipped {
		t.Fatalf("expected skipped result, got %+v", result)
	}
}

func TestRunDisabled(t *testing.T) {
	requireShell(t)
	base := t.TempDir()
	marker := filepath.Join(base, "marker.txt")
	writeHook(t, base, "pomodoro", "start", "echo ran > "+marker+"\n")

	for _, r := range []*Runner{{BaseDir: base, Disabled: true}, {}, nil} {
		result, err := r.Run(context.Background(), "pomodoro", "start")
		if err != nil || !result.Skipped {
			t.Fatalf("Run() = %+v, %v; want skipped", result, err)
		}
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Fatal("disabled runner executed the hook")
	}
}

func TestRunExecutesHook(t *testing.T) {
	requireShell(t)
	base := t.TempDir()
	marker := filepath.Join(base, "marker.txt")
	writeHook(t, base, "pomodoro", "stop",
		"#!/bin/sh\necho \"$AMBROGIO_HOOK_FEATURE/$AMBROGIO_HOOK_EVENT $AMBROGIO_TASK\" > "+marker+"\necho done\n")

	var stdout bytes.Buffer
	r := &Runner{BaseDir: base, Stdout: &stdout}
	result, err := r.Run(context.Background(), "pomodoro", "stop", "AMBROGIO_TASK=write report")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Skipped || result.ExitCode != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	got, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("hook script did not run: %v", err)
	}
	if strings.TrimSpace(string(got)) != "pomodoro/stop write report" {
		t.Fatalf("marker = %q", got)
	}
	if stdout.String() != "done\n" {
		t.Fatalf("forwarded stdout = %q", stdout.String())
	}
}

func TestRunFailureReturnsExitCode(t *testing.T) {
	requireShell(t)
	base := t.TempDir()
	writeHook(t, base, "pomodoro", "cancel", "echo oops >&2\nexit 3\n")

	var stderr bytes.Buffer
	r := &Runner{BaseDir: base, Stderr: &stderr}
	result, err := r.Run(context.Background(), "pomodoro", "cancel")
	if err == nil {
		t.Fatal("expected error for failing hook")
	}
	if result.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", result.ExitCode)
	}
	if result.Stderr != "oops" || stderr.String() != "oops\n" {
		t.Fatalf("stderr = %q / %q", result.Stderr, stderr.String())
	}
}

func TestRunTimeout(t *testing.T) {
	requireShell(t)
	base := t.TempDir()
	writeHook(t, base, "pomodoro", "start", "exec sleep 5\n")

	r := &Runner{BaseDir: base, Timeout: 100 * time.Millisecond}
	result, err := r.Run(context.Background(), "pomodoro", "start")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !result.TimedOut {
		t.Fatalf("expected TimedOut, got %+v", result)
	}
}
