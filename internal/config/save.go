package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ambrogio-dev/ambrogio/internal/atomicfile"
)

type persistedConfig struct {
	TodosFile     *string            `toml:"todos_file,omitempty"`
	OrganiserFile *string            `toml:"organiser_file,omitempty"`
	HooksDir      *string            `toml:"hooks_dir,omitempty"`
	LLM           *persistedLLM      `toml:"llm,omitempty"`
	Pomodoro      *persistedPomodoro `toml:"pomodoro,omitempty"`
	UI            *persistedUI       `toml:"ui,omitempty"`
}

type persistedLLM struct {
	URL    *string `toml:"url,omitempty"`
	Model  *string `toml:"model,omitempty"`
	APIKey *string `toml:"api_key,omitempty"`
}

type persistedPomodoro struct {
	Minutes int `toml:"minutes"`
}

type persistedUI struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically. Empty
// values are omitted. Environment-only settings are never written.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		TodosFile:     nonEmptyPtr(cfg.TodosFile),
		OrganiserFile: nonEmptyPtr(cfg.OrganiserFile),
		HooksDir:      nonEmptyPtr(cfg.HooksDir),
	}

	url, model, key := nonEmptyPtr(cfg.LLM.URL), nonEmptyPtr(cfg.LLM.Model), nonEmptyPtr(cfg.LLM.APIKey)
	if url != nil || model != nil || key != nil {
		out.LLM = &persistedLLM{URL: url, Model: model, APIKey: key}
	}
	if cfg.Pomodoro.Minutes > 0 {
		out.Pomodoro = &persistedPomodoro{Minutes: cfg.Pomodoro.Minutes}
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUI{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key.
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

const defaultConfig = `# Ambrogio Configuration

# Daily organiser markdown file (# YYYY-MM-DD sections).
# organiser_file = "~/notes/organiser.md"

# Task file. Defaults to todos.md in the organiser's directory.
# todos_file = "~/notes/todos.md"

# Hook scripts live at <hooks_dir>/<feature>/<event>.sh
# hooks_dir = "~/.config/ambrogio/hooks"

# OpenAI-compatible chat completions endpoint for the chat REPL.
# The AMBROGIO_LLM_* environment variables override these.
# [llm]
# url = "https://api.openai.com/v1"
# model = "gpt-4o-mini"
# api_key = ""

# [pomodoro]
# minutes = 25

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault creates a default config file at the default path if it
// doesn't exist.
func CreateDefault() (string, error) {
	return CreateDefaultAt(DefaultPath())
}

// CreateDefaultAt writes the commented template to path unless a file is
// already there. It returns the path either way.
func CreateDefaultAt(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
