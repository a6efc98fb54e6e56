package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ambrogio-dev/ambrogio/internal/config"
)

// setupCLI points the package globals at a fresh todo file seeded with
// content and restores them when the test ends. Output goes to the
// returned buffer and prompts are disabled until withInput is called.
func setupCLI(t *testing.T, content string) (string, *bytes.Buffer) {
	t.Helper()

	prevStdout := stdout
	prevStdin := stdin
	prevReader := stdinReader
	prevInteractive := isInteractive
	prevJSON := jsonOutput
	prevTodos := todosFile
	prevCfg := cfg
	prevConfigPath := resolvedConfigPath
	prevLogger := logger
	prevTimer := runTimer
	prevCompleter := newCompleter
	prevFlags := []interface{}{
		tasksAddProject, tasksListAll, tasksDeleteForce, projectsDeleteForce,
		pomodoroMinutes, pomodoroLogAt, pomodoroCancelled, noteTask,
	}
	t.Cleanup(func() {
		stdout = prevStdout
		stdin = prevStdin
		stdinReader = prevReader
		isInteractive = prevInteractive
		jsonOutput = prevJSON
		todosFile = prevTodos
		cfg = prevCfg
		resolvedConfigPath = prevConfigPath
		logger = prevLogger
		runTimer = prevTimer
		newCompleter = prevCompleter
		tasksAddProject = prevFlags[0].(string)
		tasksListAll = prevFlags[1].(bool)
		tasksDeleteForce = prevFlags[2].(bool)
		projectsDeleteForce = prevFlags[3].(bool)
		pomodoroMinutes = prevFlags[4].(int)
		pomodoroLogAt = prevFlags[5].(string)
		pomodoroCancelled = prevFlags[6].(bool)
		noteTask = prevFlags[7].(int)
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "todos.md")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("seed todo file: %v", err)
		}
	}

	var buf bytes.Buffer
	stdout = &buf
	stdin = strings.NewReader("")
	stdinReader = nil
	isInteractive = func() bool { return false }
	jsonOutput = false
	todosFile = path
	cfg = &config.Config{NoHooks: true}
	resolvedConfigPath = filepath.Join(dir, "config.toml")
	logger = newLogger(io.Discard, false)

	tasksAddProject = ""
	tasksListAll = false
	tasksDeleteForce = false
	projectsDeleteForce = false
	pomodoroMinutes = 0
	pomodoroLogAt = ""
	pomodoroCancelled = false
	noteTask = 0

	return path, &buf
}

// withInput makes the session interactive and feeds it input.
func withInput(t *testing.T, input string) {
	t.Helper()
	stdin = strings.NewReader(input)
	stdinReader = bufio.NewReader(stdin)
	isInteractive = func() bool { return true }
}

type jsonResponse struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data"`
	Error    *ErrorInfo             `json:"error"`
	Warnings []Warning              `json:"warnings"`
	Meta     *Meta                  `json:"meta"`
}

func decodeResponse(t *testing.T, out *bytes.Buffer) jsonResponse {
	t.Helper()
	var resp jsonResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out.String())
	}
	return resp
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func assertErrorCode(t *testing.T, out *bytes.Buffer, code string) jsonResponse {
	t.Helper()
	resp := decodeResponse(t, out)
	if resp.OK {
		t.Fatalf("expected failure with %s, got ok; out=%s", code, out.String())
	}
	if resp.Error == nil || resp.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", resp.Error, code)
	}
	return resp
}
