package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/config"
)

var (
	configSetOrganiser string
	configSetTodos     string
	configSetHooksDir  string
	configSetLLMURL    string
	configSetLLMModel  string
	configSetMinutes   int
	configSetUIAccent  string
)

// configData describes the effective configuration. The API key is never
// printed, only whether one is set.
func configData(c *config.Config, exists bool) map[string]interface{} {
	todos, todosErr := c.ResolveTodosPath(todosFile)
	data := map[string]interface{}{
		"config_path":    resolvedConfigPath,
		"exists":         exists,
		"organiser_file": c.OrganiserFile,
		"todos_file":     todos,
		"hooks_dir":      c.ResolveHooksDir(),
		"hooks_enabled":  !c.NoHooks,
		"llm": map[string]interface{}{
			"url":         c.LLM.URL,
			"model":       c.LLM.Model,
			"api_key_set": c.LLM.APIKey != "",
		},
		"pomodoro": map[string]interface{}{
			"minutes": c.PomodoroMinutes(),
		},
		"ui": map[string]interface{}{
			"accent": c.UI.Accent,
		},
	}
	if todosErr != nil {
		data["todos_file"] = ""
	}
	if missing := c.MissingLLMSettings(); len(missing) > 0 {
		data["llm_missing"] = missing
	}
	return data
}

func configFileExists() bool {
	_, err := os.Stat(resolvedConfigPath)
	return err == nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c := getConfig()
	exists := configFileExists()

	if isJSONOutput() {
		outputSuccess(configData(c, exists), nil)
		return nil
	}

	if exists {
		printf("config: %s\n", resolvedConfigPath)
	} else {
		printf("config: %s (not created; run 'ambrogio config init')\n", resolvedConfigPath)
	}

	show := func(key, value string) {
		if value == "" {
			value = "(unset)"
		}
		printf("%s: %s\n", key, value)
	}
	show("organiser_file", c.OrganiserFile)
	if todos, err := c.ResolveTodosPath(todosFile); err == nil {
		show("todos_file", todos)
	} else {
		show("todos_file", "")
	}
	show("hooks_dir", c.ResolveHooksDir())
	if c.NoHooks {
		printf("hooks: disabled\n")
	}
	show("llm.url", c.LLM.URL)
	show("llm.model", c.LLM.Model)
	if c.LLM.APIKey != "" {
		show("llm.api_key", "(set)")
	} else {
		show("llm.api_key", "")
	}
	printf("pomodoro.minutes: %d\n", c.PomodoroMinutes())
	if c.UI.Accent != "" {
		show("ui.accent", c.UI.Accent)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the global config.toml",
	Long: `Manage the global config.toml.

Values from AMBROGIO_* environment variables (and .env files) are shown
where they override the file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := resolveConfigPath(configPath)
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrFileReadError, statErr, "")
		}

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			printf("Config already exists: %s\n", createdPath)
		} else {
			printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config.toml fields",
	Example: `  ambrogio config set --organiser-file ~/notes/organiser.md
  ambrogio config set --pomodoro-minutes 50 --ui-accent 39`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Edit what the file holds, not the environment overlay.
		fileCfg, err := loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		var changed []string
		setString := func(flag, key string, value string, dst *string) error {
			if !cmd.Flags().Changed(flag) {
				return nil
			}
			value = strings.TrimSpace(value)
			if value == "" {
				return fmt.Errorf("%s cannot be empty", flag)
			}
			*dst = value
			changed = append(changed, key)
			return nil
		}

		for _, f := range []struct {
			flag, key string
			value     string
			dst       *string
		}{
			{"organiser-file", "organiser_file", configSetOrganiser, &fileCfg.OrganiserFile},
			{"todos-file", "todos_file", configSetTodos, &fileCfg.TodosFile},
			{"hooks-dir", "hooks_dir", configSetHooksDir, &fileCfg.HooksDir},
			{"llm-url", "llm.url", configSetLLMURL, &fileCfg.LLM.URL},
			{"llm-model", "llm.model", configSetLLMModel, &fileCfg.LLM.Model},
			{"ui-accent", "ui.accent", configSetUIAccent, &fileCfg.UI.Accent},
		} {
			if err := setString(f.flag, f.key, f.value, f.dst); err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
		}

		if cmd.Flags().Changed("pomodoro-minutes") {
			if configSetMinutes <= 0 {
				return handleErrorMsg(ErrInvalidInput, "pomodoro-minutes must be positive", "")
			}
			fileCfg.Pomodoro.Minutes = configSetMinutes
			changed = append(changed, "pomodoro.minutes")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided", "Run 'ambrogio config set --help' to see the settable fields")
		}

		if err := config.SaveTo(resolvedConfigPath, fileCfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": resolvedConfigPath,
				"changed":     changed,
			}, nil)
			return nil
		}
		printf("Updated config: %s\n", resolvedConfigPath)
		printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&configSetOrganiser, "organiser-file", "", "Daily organiser markdown file")
	configSetCmd.Flags().StringVar(&configSetTodos, "todos-file", "", "Todo file")
	configSetCmd.Flags().StringVar(&configSetHooksDir, "hooks-dir", "", "Hook script directory")
	configSetCmd.Flags().StringVar(&configSetLLMURL, "llm-url", "", "Chat completions base URL")
	configSetCmd.Flags().StringVar(&configSetLLMModel, "llm-model", "", "Model name")
	configSetCmd.Flags().IntVar(&configSetMinutes, "pomodoro-minutes", 0, "Focus session length in minutes")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Accent color (ANSI 0-255 or #RRGGBB)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
