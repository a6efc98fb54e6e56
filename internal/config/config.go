// Package config handles global Ambrogio configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPomodoroMinutes is the focus-session length used when none is configured.
const DefaultPomodoroMinutes = 25

// Config represents the global Ambrogio configuration.
type Config struct {
	// TodosFile is the task file. Defaults to todos.md next to OrganiserFile.
	TodosFile string `toml:"todos_file"`

	// OrganiserFile is the daily organiser markdown file.
	OrganiserFile string `toml:"organiser_file"`

	// HooksDir holds <feature>/<event>.sh hook scripts.
	HooksDir string `toml:"hooks_dir"`

	// NoHooks disables hook execution. Only settable from the environment.
	NoHooks bool `toml:"-"`

	// Debug enables debug logging. Only settable from the environment.
	Debug bool `toml:"-"`

	LLM      LLMConfig      `toml:"llm"`
	Pomodoro PomodoroConfig `toml:"pomodoro"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	URL    string `toml:"url"`
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// PomodoroConfig configures the focus timer.
type PomodoroConfig struct {
	Minutes int `toml:"minutes"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// PomodoroMinutes returns the configured session length, falling back to the default.
func (c *Config) PomodoroMinutes() int {
	if c.Pomodoro.Minutes > 0 {
		return c.Pomodoro.Minutes
	}
	return DefaultPomodoroMinutes
}

// ResolveHooksDir returns the hook directory, defaulting to hooks/ beside the
// config file.
func (c *Config) ResolveHooksDir() string {
	if c.HooksDir != "" {
		return expandHome(c.HooksDir)
	}
	return filepath.Join(filepath.Dir(DefaultPath()), "hooks")
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.Pomodoro.Minutes < 0 {
		return nil, fmt.Errorf("invalid config %s: pomodoro.minutes must be positive", path)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/ambrogio/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "ambrogio", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/ambrogio/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ambrogio", "config.toml"), nil
}

func expandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
