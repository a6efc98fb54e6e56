package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// built holds the ambrogio binary shared by every test in the process.
var built struct {
	sync.Mutex
	path string
	err  error
}

// CLIResult is one decoded --json envelope plus how the process ended.
type CLIResult struct {
	OK       bool                   `json:"ok"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Error    *CLIError              `json:"error,omitempty"`
	Warnings []CLIWarning           `json:"warnings,omitempty"`
	Meta     *CLIMeta               `json:"meta,omitempty"`

	RawJSON  string `json:"-"`
	Stderr   string `json:"-"`
	ExitCode int    `json:"-"`
}

type CLIError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Suggestion string                 `json:"suggestion,omitempty"`
}

type CLIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CLIMeta struct {
	Count int `json:"count,omitempty"`
}

// BuildCLI compiles ./cmd/ambrogio once and returns the binary path.
func BuildCLI(t *testing.T) string {
	t.Helper()
	built.Lock()
	defer built.Unlock()

	if built.path != "" {
		if _, err := os.Stat(built.path); err == nil {
			return built.path
		}
		built.path, built.err = "", nil
	}
	if built.err == nil {
		built.path, built.err = buildBinary()
	}
	if built.err != nil {
		t.Fatalf("build ambrogio: %v", built.err)
	}
	return built.path
}

func buildBinary() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "ambrogio-cli-bin-*")
	if err != nil {
		return "", err
	}
	name := "ambrogio"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/ambrogio")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w\n%s", err, out)
	}
	return bin, nil
}

// moduleRoot is the nearest directory above the working directory holding go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// RunCLI runs ambrogio against the todo file with --json, hooks off and a
// config file inside the test directory.
func (f *TodoFile) RunCLI(args ...string) *CLIResult {
	f.t.Helper()
	return f.run("", nil, args...)
}

// RunCLIWithStdin runs ambrogio with stdin fed from input.
func (f *TodoFile) RunCLIWithStdin(input string, args ...string) *CLIResult {
	f.t.Helper()
	return f.run(input, nil, args...)
}

// RunCLIWithEnv runs ambrogio with extra KEY=VALUE environment entries.
func (f *TodoFile) RunCLIWithEnv(env []string, args ...string) *CLIResult {
	f.t.Helper()
	return f.run("", env, args...)
}

func (f *TodoFile) run(input string, env []string, args ...string) *CLIResult {
	f.t.Helper()

	argv := append([]string{
		"--config", f.Join("config.toml"),
		"--file", f.Path,
		"--no-hooks",
		"--json",
	}, args...)
	cmd := exec.Command(BuildCLI(f.t), argv...)
	cmd.Dir = f.Dir
	cmd.Env = append(isolatedEnv(f.Dir), env...)
	cmd.Stdin = strings.NewReader(input)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	result := &CLIResult{}
	if jsonErr := json.Unmarshal(out, result); jsonErr != nil {
		result = &CLIResult{Error: &CLIError{
			Code:    "PARSE_ERROR",
			Message: "decode envelope: " + jsonErr.Error(),
		}}
	}
	result.RawJSON = string(out)
	result.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		result.ExitCode = -1
	}
	return result
}

// isolatedEnv drops AMBROGIO_* variables and points HOME at dir so the
// user's own config and .env files never leak into a test.
func isolatedEnv(dir string) []string {
	var env []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		switch {
		case strings.HasPrefix(key, "AMBROGIO_"):
		case key == "HOME", key == "XDG_CONFIG_HOME", key == "USERPROFILE":
		default:
			env = append(env, kv)
		}
	}
	return append(env,
		"HOME="+dir,
		"USERPROFILE="+dir,
		"XDG_CONFIG_HOME="+filepath.Join(dir, ".config"),
	)
}

func (r *CLIResult) describe() string {
	return fmt.Sprintf("exit %d\nstdout: %s\nstderr: %s", r.ExitCode, r.RawJSON, r.Stderr)
}

// MustSucceed fails the test unless the envelope reports ok.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if r.OK {
		return r
	}
	reason := "no error in envelope"
	if r.Error != nil {
		reason = r.Error.Code + ": " + r.Error.Message
	}
	t.Fatalf("command failed (%s)\n%s", reason, r.describe())
	return r
}

// MustFail fails the test unless the envelope reports the error code.
func (r *CLIResult) MustFail(t *testing.T, code string) *CLIResult {
	t.Helper()
	switch {
	case r.OK:
		t.Fatalf("command succeeded, want %s\n%s", code, r.describe())
	case r.Error == nil:
		t.Fatalf("envelope has no error, want %s\n%s", code, r.describe())
	case r.Error.Code != code:
		t.Fatalf("error %s (%s), want %s\n%s", r.Error.Code, r.Error.Message, code, r.describe())
	}
	return r
}

func (r *CLIResult) DataList(key string) []interface{} {
	list, _ := r.Data[key].([]interface{})
	return list
}

func (r *CLIResult) DataMap(key string) map[string]interface{} {
	m, _ := r.Data[key].(map[string]interface{})
	return m
}

func (r *CLIResult) DataString(key string) string {
	s, _ := r.Data[key].(string)
	return s
}

// OpenTasks flattens the groups of a "tasks list" result into
// "number. description" strings in listing order.
func (r *CLIResult) OpenTasks() []string {
	var out []string
	for _, g := range r.DataList("groups") {
		group, _ := g.(map[string]interface{})
		tasks, _ := group["tasks"].([]interface{})
		for _, raw := range tasks {
			task, _ := raw.(map[string]interface{})
			number, _ := task["number"].(float64)
			out = append(out, fmt.Sprintf("%d. %v", int(number), task["description"]))
		}
	}
	return out
}
