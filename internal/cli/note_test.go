package cli

import (
	"strings"
	"testing"
)

func setNoteTask(t *testing.T, value string) {
	t.Helper()
	if err := noteCmd.Flags().Set("task", value); err != nil {
		t.Fatalf("set --task: %v", err)
	}
	t.Cleanup(func() { noteCmd.Flags().Lookup("task").Changed = false })
}

func TestNote(t *testing.T) {
	t.Run("appends after existing sub-items", func(t *testing.T) {
		path, out := setupCLI(t, seedTodos)
		setNoteTask(t, "1")

		if err := noteCmd.RunE(noteCmd, []string{"send", "to", "Ada"}); err != nil {
			t.Fatal(err)
		}
		if out.String() != "Added note to: write report\n" {
			t.Fatalf("output = %q", out.String())
		}
		if !strings.Contains(readFile(t, path), "  - 📝 due friday\n  - 📝 send to Ada\n- [x] file expenses") {
			t.Fatalf("content:\n%s", readFile(t, path))
		}
	})

	t.Run("json", func(t *testing.T) {
		_, out := setupCLI(t, seedTodos)
		jsonOutput = true
		setNoteTask(t, "3")

		if err := noteCmd.RunE(noteCmd, []string{"semi-skimmed"}); err != nil {
			t.Fatal(err)
		}
		resp := decodeResponse(t, out)
		task := resp.Data["task"].(map[string]interface{})
		if resp.Data["note"] != "semi-skimmed" || task["description"] != "buy milk" {
			t.Fatalf("response = %+v", resp)
		}
	})

	t.Run("interactive selection", func(t *testing.T) {
		path, _ := setupCLI(t, seedTodos)
		withInput(t, "2\n")

		if err := noteCmd.RunE(noteCmd, []string{"voicemail"}); err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(strings.SplitN(readFile(t, path), "## Home", 2)[0], "- [ ] call Ada\n  - 📝 voicemail\n\n") {
			t.Fatalf("content:\n%s", readFile(t, path))
		}
	})

	t.Run("task required without a terminal", func(t *testing.T) {
		_, out := setupCLI(t, seedTodos)
		jsonOutput = true

		if err := noteCmd.RunE(noteCmd, []string{"x"}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrMissingArgument)
	})

	t.Run("blank text", func(t *testing.T) {
		_, out := setupCLI(t, seedTodos)
		jsonOutput = true
		setNoteTask(t, "1")

		if err := noteCmd.RunE(noteCmd, []string{"  "}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrMissingArgument)
	})
}
