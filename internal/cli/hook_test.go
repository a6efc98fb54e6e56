package cli

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ambrogio-dev/ambrogio/internal/config"
)

func TestHookCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts need sh")
	}

	t.Run("runs the script", func(t *testing.T) {
		_, out := setupCLI(t, "")
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "pomodoro", "stop.sh"), "echo \"stopped $AMBROGIO_HOOK_FEATURE/$AMBROGIO_HOOK_EVENT\"\n")
		cfg = &config.Config{HooksDir: dir}
		jsonOutput = true

		if err := hookCmd.RunE(hookCmd, []string{"pomodoro", "stop"}); err != nil {
			t.Fatal(err)
		}
		resp := decodeResponse(t, out)
		if !resp.OK || resp.Data["stdout"] != "stopped pomodoro/stop" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("missing script is skipped", func(t *testing.T) {
		_, out := setupCLI(t, "")
		dir := t.TempDir()
		cfg = &config.Config{HooksDir: dir}

		if err := hookCmd.RunE(hookCmd, []string{"pomodoro", "start"}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out.String(), "No hook at "+filepath.Join(dir, "pomodoro", "start.sh")) {
			t.Fatalf("output = %q", out.String())
		}
	})

	t.Run("failing script", func(t *testing.T) {
		_, out := setupCLI(t, "")
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "pomodoro", "stop.sh"), "exit 4\n")
		cfg = &config.Config{HooksDir: dir}
		jsonOutput = true

		if err := hookCmd.RunE(hookCmd, []string{"pomodoro", "stop"}); err != nil {
			t.Fatal(err)
		}
		resp := assertErrorCode(t, out, ErrInternal)
		details := resp.Error.Details.(map[string]interface{})
		if details["exit_code"] != float64(4) {
			t.Fatalf("details = %v", details)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		_, out := setupCLI(t, "")
		jsonOutput = true

		if err := hookCmd.RunE(hookCmd, []string{"pomodoro", "stop"}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrInvalidInput)
	})
}
