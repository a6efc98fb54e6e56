package cli

import (
	"strings"
	"testing"
)

func TestProjectsList(t *testing.T) {
	const content = `## Work
- [ ] write report
  - 🍅 2026-03-01 09:00
  - 🍅 2026-03-01 10:00 cancelled
- [x] file expenses

## Home
`

	t.Run("json summaries", func(t *testing.T) {
		_, out := setupCLI(t, content)
		jsonOutput = true

		if err := projectsListCmd.RunE(projectsListCmd, nil); err != nil {
			t.Fatal(err)
		}
		resp := decodeResponse(t, out)
		if resp.Meta == nil || resp.Meta.Count != 2 {
			t.Fatalf("meta = %+v", resp.Meta)
		}
		work := resp.Data["projects"].([]interface{})[0].(map[string]interface{})
		want := map[string]interface{}{
			"name":                     "Work",
			"open":                     float64(1),
			"done":                     float64(1),
			"focus_sessions":           float64(1),
			"cancelled_focus_sessions": float64(1),
		}
		for k, v := range want {
			if work[k] != v {
				t.Errorf("%s = %v, want %v", k, work[k], v)
			}
		}
	})

	t.Run("text table", func(t *testing.T) {
		_, out := setupCLI(t, content)

		if err := projectsListCmd.RunE(projectsListCmd, nil); err != nil {
			t.Fatal(err)
		}
		got := out.String()
		for _, want := range []string{"Project", "Work", "Home", "1 (1 cancelled)"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("empty json is an empty list", func(t *testing.T) {
		_, out := setupCLI(t, "")
		jsonOutput = true

		if err := projectsListCmd.RunE(projectsListCmd, nil); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), `"projects": []`) {
			t.Fatalf("output:\n%s", out.String())
		}
	})
}

func TestProjectsAdd(t *testing.T) {
	path, out := setupCLI(t, "")

	if err := projectsAddCmd.RunE(projectsAddCmd, []string{"Side", "Quests"}); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Added project: Side Quests\n" {
		t.Fatalf("output = %q", out.String())
	}
	if got := readFile(t, path); got != "## Side Quests\n" {
		t.Fatalf("content = %q", got)
	}

	out.Reset()
	jsonOutput = true
	if err := projectsAddCmd.RunE(projectsAddCmd, []string{"Side Quests"}); err != nil {
		t.Fatal(err)
	}
	assertErrorCode(t, out, ErrDuplicateProject)
}

func TestProjectsDelete(t *testing.T) {
	const content = "## Work\n- [ ] a\n\n## Home\n- [ ] b\n"

	t.Run("requires force without a terminal", func(t *testing.T) {
		path, out := setupCLI(t, content)
		jsonOutput = true

		if err := projectsDeleteCmd.RunE(projectsDeleteCmd, []string{"Work"}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrConfirmationRequired)
		if readFile(t, path) != content {
			t.Fatal("file changed")
		}
	})

	t.Run("force by slug", func(t *testing.T) {
		path, out := setupCLI(t, content)
		jsonOutput = true
		projectsDeleteForce = true

		if err := projectsDeleteCmd.RunE(projectsDeleteCmd, []string{"home"}); err != nil {
			t.Fatal(err)
		}
		resp := decodeResponse(t, out)
		if !resp.OK || resp.Data["deleted"] != "Home" {
			t.Fatalf("response = %+v", resp)
		}
		if got := readFile(t, path); got != "## Work\n- [ ] a\n\n" {
			t.Fatalf("content = %q", got)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		_, out := setupCLI(t, content)
		jsonOutput = true
		projectsDeleteForce = true

		if err := projectsDeleteCmd.RunE(projectsDeleteCmd, []string{"Garden"}); err != nil {
			t.Fatal(err)
		}
		assertErrorCode(t, out, ErrProjectNotFound)
	})

	t.Run("interactive pick and confirm", func(t *testing.T) {
		path, out := setupCLI(t, content)
		withInput(t, "1\ny\n")

		if err := projectsDeleteCmd.RunE(projectsDeleteCmd, nil); err != nil {
			t.Fatal(err)
		}
		got := out.String()
		if !strings.Contains(got, "Delete 'Work' and all its todos?") || !strings.Contains(got, "Deleted project: Work") {
			t.Fatalf("output:\n%s", got)
		}
		if got := readFile(t, path); got != "## Home\n- [ ] b\n" {
			t.Fatalf("content = %q", got)
		}
	})

	t.Run("nothing to delete", func(t *testing.T) {
		_, out := setupCLI(t, "")
		withInput(t, "")

		if err := projectsDeleteCmd.RunE(projectsDeleteCmd, nil); err != nil {
			t.Fatal(err)
		}
		if out.String() != "No projects to delete.\n" {
			t.Fatalf("output = %q", out.String())
		}
	})
}
