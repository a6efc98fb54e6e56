package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that overlay the config file.
const (
	EnvLLMAPIKey     = "AMBROGIO_LLM_API_KEY"
	EnvLLMURL        = "AMBROGIO_LLM_URL"
	EnvLLMModel      = "AMBROGIO_LLM_MODEL"
	EnvOrganiserFile = "AMBROGIO_DAILY_ORGANISER_FILE"
	EnvTodosFile     = "AMBROGIO_TODOS_FILE"
	EnvHooksDir      = "AMBROGIO_HOOKS_DIR"
	EnvNoHooks       = "AMBROGIO_NO_HOOKS"
	EnvDebug         = "AMBROGIO_DEBUG"
)

// ErrTodosPathUnset is returned when no todo file location can be derived.
var ErrTodosPathUnset = errors.New("todo file location is not configured")

// LoadDotEnv loads .env files from each dir in order. Variables that are
// already set, including ones set by an earlier file, are left alone.
// Missing files are skipped.
func LoadDotEnv(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overlays the AMBROGIO_* variables on c. Set variables win over
// values from the config file.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	overlay := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	overlay(&c.LLM.APIKey, EnvLLMAPIKey)
	overlay(&c.LLM.URL, EnvLLMURL)
	overlay(&c.LLM.Model, EnvLLMModel)
	overlay(&c.OrganiserFile, EnvOrganiserFile)
	overlay(&c.TodosFile, EnvTodosFile)
	overlay(&c.HooksDir, EnvHooksDir)

	if envBool(getenv(EnvNoHooks)) {
		c.NoHooks = true
	}
	if envBool(getenv(EnvDebug)) {
		c.Debug = true
	}
}

func envBool(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		// Any other non-empty value ("yes", "on") counts as set.
		return true
	}
	return b
}

// MissingLLMSettings lists the environment variable for every LLM setting
// that is still empty.
func (c *Config) MissingLLMSettings() []string {
	var missing []string
	if c.LLM.APIKey == "" {
		missing = append(missing, EnvLLMAPIKey)
	}
	if c.LLM.URL == "" {
		missing = append(missing, EnvLLMURL)
	}
	if c.LLM.Model == "" {
		missing = append(missing, EnvLLMModel)
	}
	return missing
}

// RequireLLM returns an error naming every missing LLM setting.
func (c *Config) RequireLLM() error {
	missing := c.MissingLLMSettings()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing LLM configuration: set %s (or the [llm] section of %s)",
		strings.Join(missing, ", "), DefaultPath())
}

// RequireOrganiser returns the organiser file path or an error when unset.
func (c *Config) RequireOrganiser() (string, error) {
	if c.OrganiserFile == "" {
		return "", fmt.Errorf("daily organiser file is not configured: set %s or organiser_file", EnvOrganiserFile)
	}
	return expandHome(c.OrganiserFile), nil
}

// ResolveTodosPath returns the todo file path. override (the --file flag)
// wins, then TodosFile (already overlaid by AMBROGIO_TODOS_FILE), then
// todos.md beside the organiser file.
func (c *Config) ResolveTodosPath(override string) (string, error) {
	switch {
	case strings.TrimSpace(override) != "":
		return expandHome(strings.TrimSpace(override)), nil
	case c.TodosFile != "":
		return expandHome(c.TodosFile), nil
	case c.OrganiserFile != "":
		return filepath.Join(filepath.Dir(expandHome(c.OrganiserFile)), "todos.md"), nil
	}
	return "", fmt.Errorf("%w: set %s or %s, or pass --file", ErrTodosPathUnset, EnvTodosFile, EnvOrganiserFile)
}
