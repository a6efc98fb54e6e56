package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ambrogio-dev/ambrogio/internal/hooks"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

// Hook features and events fired by commands.
const (
	hookFeaturePomodoro = "pomodoro"

	hookEventStart  = "start"
	hookEventStop   = "stop"
	hookEventCancel = "cancel"
)

// hookStdout receives hook output. JSON mode keeps stdout for the envelope.
func hookStdout() io.Writer {
	if isJSONOutput() {
		return os.Stderr
	}
	return stdout
}

func newHookRunner() *hooks.Runner {
	c := getConfig()
	return &hooks.Runner{
		BaseDir:  c.ResolveHooksDir(),
		Disabled: c.NoHooks,
		Timeout:  hooks.DefaultTimeout,
		Stdout:   hookStdout(),
		Stderr:   os.Stderr,
		Logger:   logger,
	}
}

// fireHook runs one hook and turns a failure into a warning. Text mode prints
// the warning immediately; JSON mode returns it for the envelope.
func fireHook(ctx context.Context, runner *hooks.Runner, feature, event string, env ...string) []Warning {
	result, err := runner.Run(ctx, feature, event, env...)
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf("hook %s/%s failed: %v", feature, event, err)
	if result.TimedOut {
		msg = fmt.Sprintf("hook %s/%s timed out after %s", feature, event, runner.Timeout)
	}
	emitHookWarning(msg)
	return []Warning{{Code: WarnHookExecution, Message: msg}}
}

func emitHookWarning(message string) {
	if isJSONOutput() {
		return
	}
	fmt.Fprintln(os.Stderr, ui.Warning(message))
}
