package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `organiser_file = "/notes/organiser.md"
hooks_dir = "/hooks"

[llm]
url = "http://localhost:11434/v1"
model = "llama3"

[pomodoro]
minutes = 50

[ui]
accent = "39"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.OrganiserFile != "/notes/organiser.md" {
		t.Errorf("OrganiserFile = %q", cfg.OrganiserFile)
	}
	if cfg.LLM.URL != "http://localhost:11434/v1" || cfg.LLM.Model != "llama3" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.PomodoroMinutes() != 50 {
		t.Errorf("PomodoroMinutes() = %d, want 50", cfg.PomodoroMinutes())
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("UI.Accent = %q", cfg.UI.Accent)
	}
	if cfg.ResolveHooksDir() != "/hooks" {
		t.Errorf("ResolveHooksDir() = %q", cfg.ResolveHooksDir())
	}
}

func TestLoadFromErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.toml")
		os.WriteFile(path, []byte("organiser_file = \n"), 0644)
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("negative minutes", func(t *testing.T) {
		path := filepath.Join(tmpDir, "neg.toml")
		os.WriteFile(path, []byte("[pomodoro]\nminutes = -5\n"), 0644)
		if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "pomodoro.minutes") {
			t.Fatalf("expected pomodoro.minutes error, got %v", err)
		}
	})
}

func TestPomodoroMinutesDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.PomodoroMinutes(); got != DefaultPomodoroMinutes {
		t.Fatalf("PomodoroMinutes() = %d, want %d", got, DefaultPomodoroMinutes)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLLMAPIKey:     "sk-test",
		EnvLLMModel:      "gpt-test",
		EnvOrganiserFile: "/env/organiser.md",
		EnvNoHooks:       "1",
		EnvDebug:         "yes",
	}
	cfg := &Config{
		OrganiserFile: "/file/organiser.md",
		LLM:           LLMConfig{URL: "http://file", Model: "file-model"},
	}

	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "gpt-test" {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.LLM.URL != "http://file" {
		t.Errorf("unset env must keep file value, got %q", cfg.LLM.URL)
	}
	if cfg.OrganiserFile != "/env/organiser.md" {
		t.Errorf("OrganiserFile = %q", cfg.OrganiserFile)
	}
	if !cfg.NoHooks || !cfg.Debug {
		t.Errorf("NoHooks=%v Debug=%v, want both true", cfg.NoHooks, cfg.Debug)
	}
}

func TestApplyEnvFalseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyEnv(func(k string) string {
		if k == EnvNoHooks {
			return "false"
		}
		return ""
	})
	if cfg.NoHooks {
		t.Fatal("AMBROGIO_NO_HOOKS=false must not disable hooks")
	}
}

func TestRequireLLM(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{URL: "http://x"}}
	err := cfg.RequireLLM()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, name := range []string{EnvLLMAPIKey, EnvLLMModel} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), EnvLLMURL) {
		t.Errorf("error %q names a setting that is present", err)
	}

	cfg.LLM = LLMConfig{URL: "u", Model: "m", APIKey: "k"}
	if err := cfg.RequireLLM(); err != nil {
		t.Fatalf("RequireLLM() = %v", err)
	}
}

func TestResolveTodosPath(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		override string
		want     string
		wantErr  bool
	}{
		{name: "override wins", cfg: Config{TodosFile: "/a.md", OrganiserFile: "/n/o.md"}, override: "/flag.md", want: "/flag.md"},
		{name: "todos file", cfg: Config{TodosFile: "/a.md", OrganiserFile: "/n/o.md"}, want: "/a.md"},
		{name: "beside organiser", cfg: Config{OrganiserFile: "/n/o.md"}, want: filepath.Join("/n", "todos.md")},
		{name: "nothing configured", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.ResolveTodosPath(tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveTodosPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	os.WriteFile(filepath.Join(first, ".env"), []byte("AMBROGIO_TEST_A=first\n"), 0644)
	os.WriteFile(filepath.Join(second, ".env"), []byte("AMBROGIO_TEST_A=second\nAMBROGIO_TEST_B=second\n"), 0644)

	t.Setenv("AMBROGIO_TEST_A", "")
	os.Unsetenv("AMBROGIO_TEST_A")
	t.Setenv("AMBROGIO_TEST_B", "preset")

	if err := LoadDotEnv(first, "", filepath.Join(first, "missing"), second); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("AMBROGIO_TEST_A") })

	if got := os.Getenv("AMBROGIO_TEST_A"); got != "first" {
		t.Errorf("AMBROGIO_TEST_A = %q, want first file to win", got)
	}
	if got := os.Getenv("AMBROGIO_TEST_B"); got != "preset" {
		t.Errorf("AMBROGIO_TEST_B = %q, want existing value kept", got)
	}
}
