// Package hooks runs user scripts at <base>/<feature>/<event>.sh.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single hook run.
	DefaultTimeout = 30 * time.Second

	featureEnv = "AMBROGIO_HOOK_FEATURE"
	eventEnv   = "AMBROGIO_HOOK_EVENT"
	noHooksEnv = "AMBROGIO_NO_HOOKS"

	shellPath = "sh"
)

// Result describes one hook invocation.
type Result struct {
	Feature    string `json:"feature"`
	Event      string `json:"event"`
	Path       string `json:"path"`
	Skipped    bool   `json:"skipped,omitempty"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	TimedOut   bool   `json:"timed_out,omitempty"`
}

// Runner executes hook scripts.
type Runner struct {
	// BaseDir is the hook root. An empty BaseDir disables all hooks.
	BaseDir string

	// Disabled turns every Run into a skipped no-op.
	Disabled bool

	Timeout time.Duration

	// Stdout and Stderr receive the script's output after it finishes.
	// Nil writers discard it.
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// Path returns the script path for feature and event.
func (r *Runner) Path(feature, event string) string {
	return filepath.Join(r.BaseDir, feature, event+".sh")
}

// Run executes the hook for feature/event if the script exists. A missing
// script is a skipped no-op. A script that fails or times out returns the
// result together with a non-nil error; callers report it as a warning.
func (r *Runner) Run(ctx context.Context, feature, event string, env ...string) (Result, error) {
	result := Result{Feature: feature, Event: event}
	if r == nil || r.Disabled || r.BaseDir == "" {
		result.Skipped = true
		return result, nil
	}

	path := r.Path(feature, event)
	result.Path = path
	if _, err := os.Stat(path); err != nil {
		result.Skipped = true
		if !errors.Is(err, os.ErrNotExist) {
			return result, fmt.Errorf("stat hook %s: %w", path, err)
		}
		r.logger().Debug("no hook script", "path", path)
		return result, nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	execCmd := exec.CommandContext(ctx, shellPath, path)
	execCmd.Dir = filepath.Dir(path)
	execCmd.WaitDelay = time.Second
	execCmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=1", noHooksEnv),
		fmt.Sprintf("%s=%s", featureEnv, feature),
		fmt.Sprintf("%s=%s", eventEnv, event),
	)
	execCmd.Env = append(execCmd.Env, env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	start := time.Now()
	err := execCmd.Run()
	result.DurationMs = time.Since(start).Milliseconds()
	result.Stdout = strings.TrimSpace(stdout.String())
	result.Stderr = strings.TrimSpace(stderr.String())

	forward(r.Stdout, stdout.Bytes())
	forward(r.Stderr, stderr.Bytes())

	r.logger().Debug("ran hook", "path", path, "duration_ms", result.DurationMs, "error", err)

	if err == nil {
		return result, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1
	}

	return result, fmt.Errorf("hook %s/%s.sh exited with %d: %w", feature, event, result.ExitCode, err)
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func forward(w io.Writer, data []byte) {
	if w == nil || len(data) == 0 {
		return
	}
	_, _ = w.Write(data)
}
