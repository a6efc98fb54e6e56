package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook <feature> <event>",
	Short: "Run a hook script by hand",
	Long: `Run <hooks_dir>/<feature>/<event>.sh the way a command would.

Hooks are plain shell scripts. Ambrogio fires pomodoro/start, pomodoro/stop
and pomodoro/cancel. A missing script is not an error.`,
	Example: "  ambrogio hook pomodoro stop",
	Args:    cobra.ExactArgs(2),
	RunE:    runHookCommand,
}

func runHookCommand(cmd *cobra.Command, args []string) error {
	feature, event := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
	if feature == "" || event == "" {
		return handleErrorMsg(ErrMissingArgument, "feature and event are required", "Usage: ambrogio hook <feature> <event>")
	}

	runner := newHookRunner()
	if runner.Disabled {
		return handleErrorMsg(ErrInvalidInput, "hooks are disabled by --no-hooks or AMBROGIO_NO_HOOKS", "remove --no-hooks or unset AMBROGIO_NO_HOOKS")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := runner.Run(ctx, feature, event)
	if err != nil {
		if isJSONOutput() {
			outputError(ErrInternal, fmt.Sprintf("hook %s/%s failed", feature, event), result, "")
			return nil
		}
		return fmt.Errorf("hook %s/%s failed (exit=%d): %w", feature, event, result.ExitCode, err)
	}

	if isJSONOutput() {
		outputSuccess(result, nil)
		return nil
	}
	if result.Skipped {
		printf("No hook at %s\n", runner.Path(feature, event))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(hookCmd)
}
