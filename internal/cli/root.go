// Package cli implements the command-line interface.
package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/config"
	"github.com/ambrogio-dev/ambrogio/internal/todo"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

var (
	// Global flags
	configPath   string
	todosFile    string
	noHooksFlag  bool
	debugLogging bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
	logger             = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ambrogio",
	Short: "Ambrogio - a markdown-backed personal organiser",
	Long: `Ambrogio keeps your todos, focus sessions and notes in a plain markdown file
and answers questions about your daily organiser.

Run without a subcommand to chat about your day.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "help", "version", "completion":
			return nil
		}
		if cmd.Parent() != nil {
			switch {
			case cmd.Parent().Name() == "completion":
				return nil
			case cmd.Parent().Name() == "config" && cmd.Name() == "init":
				// Must work while the existing file is broken.
				return nil
			}
		}
		if err := loadRuntime(); err != nil {
			if jsonOutput {
				// The command must not run; report once and exit non-zero.
				outputErrorFromErr(ErrConfigInvalid, err, "Check the config file or run 'ambrogio config init'")
				cmd.SilenceErrors = true
				cmd.Root().SilenceErrors = true
			}
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&todosFile, "file", "f", "", "Path to the todo file (overrides todos_file and "+config.EnvTodosFile+")")
	rootCmd.PersistentFlags().BoolVar(&noHooksFlag, "no-hooks", false, "Do not run hook scripts")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// loadRuntime loads .env files, the config file and the environment overlay,
// then applies the theme and logger.
func loadRuntime() error {
	resolvedConfigPath = resolveConfigPath(configPath)

	cwd, _ := os.Getwd()
	if err := config.LoadDotEnv(cwd, filepath.Dir(resolvedConfigPath)); err != nil {
		return err
	}

	loaded, err := loadGlobalConfig()
	if err != nil {
		return err
	}
	loaded.ApplyEnv(os.Getenv)
	if noHooksFlag {
		loaded.NoHooks = true
	}
	if debugLogging {
		loaded.Debug = true
	}
	cfg = loaded

	ui.ConfigureTheme(cfg.UI.Accent)
	logger = newLogger(os.Stderr, cfg.Debug)
	logger.Debug("config loaded", "path", resolvedConfigPath)
	return nil
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return &config.Config{}, nil
		}
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func resolveConfigPath(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return config.DefaultPath()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg
}

// openStore resolves the todo file and returns a store for it.
func openStore() (*todo.Store, error) {
	path, err := getConfig().ResolveTodosPath(todosFile)
	if err != nil {
		return nil, err
	}
	return todo.NewStore(path, todo.WithLogger(logger)), nil
}
