package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/mcpclient"
)

var (
	mcpClientFlag string
	mcpPinFile    bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage MCP client integrations",
	Long: `Install, remove, or inspect the ambrogio MCP server entry in supported
client config files (Claude Code, Claude Desktop, Cursor).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// mcpEntry builds the server entry, pinned to the resolved todo file with --pin.
func mcpEntry() (mcpclient.ServerEntry, error) {
	todosPath := ""
	if mcpPinFile {
		path, err := getConfig().ResolveTodosPath(todosFile)
		if err != nil {
			return mcpclient.ServerEntry{}, err
		}
		todosPath = path
	}
	return mcpclient.NewServerEntry("", todosPath), nil
}

func mcpClientConfig() (mcpclient.Client, string, error) {
	client, err := mcpclient.ParseClient(mcpClientFlag)
	if err != nil {
		return "", "", newCommandError(ErrInvalidInput, err, "Supported clients: claude-code, claude-desktop, cursor")
	}
	path, err := mcpclient.ConfigPath(client, "")
	if err != nil {
		return "", "", newCommandError(ErrInternal, err, "")
	}
	return client, path, nil
}

var mcpInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Add ambrogio to an MCP client config",
	Example: `  ambrogio mcp install --client claude-code
  ambrogio mcp install --client cursor --pin`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfgPath, err := mcpClientConfig()
		if err != nil {
			return reportError(err)
		}
		entry, err := mcpEntry()
		if err != nil {
			return reportError(err)
		}

		result, err := mcpclient.Install(cfgPath, entry)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"result":      result.String(),
				"entry":       entry,
			}, nil)
			return nil
		}

		switch result {
		case mcpclient.Installed:
			printf("Installed ambrogio in %s config.\n", client)
		case mcpclient.Updated:
			printf("Updated ambrogio in %s config.\n", client)
		case mcpclient.AlreadyInstalled:
			printf("Already installed in %s config.\n", client)
		}
		printf("config: %s\n", cfgPath)
		return nil
	},
}

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove ambrogio from an MCP client config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfgPath, err := mcpClientConfig()
		if err != nil {
			return reportError(err)
		}

		removed, err := mcpclient.Remove(cfgPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"client":      string(client),
				"config_path": cfgPath,
				"removed":     removed,
			}, nil)
			return nil
		}
		if removed {
			printf("Removed ambrogio from %s config.\n", client)
		} else {
			printf("ambrogio not found in %s config.\n", client)
		}
		return nil
	},
}

var mcpStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ambrogio MCP status across all clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses := make([]interface{}, 0)
		installed := 0

		for _, client := range mcpclient.AllClients() {
			cfgPath, err := mcpclient.ConfigPath(client, "")
			if err != nil {
				continue
			}
			status, err := mcpclient.Inspect(client, cfgPath)
			if err != nil {
				statuses = append(statuses, map[string]interface{}{
					"client":      string(client),
					"config_path": cfgPath,
					"error":       err.Error(),
				})
				if !isJSONOutput() {
					printf("%-16s error: %v\n", client, err)
				}
				continue
			}
			statuses = append(statuses, status)
			if status.Installed {
				installed++
			}

			if !isJSONOutput() {
				state, detail := "not installed", ""
				switch {
				case status.Installed && status.Entry != nil:
					state = "installed"
					detail = fmt.Sprintf("  (%s %s)", status.Entry.Command, strings.Join(status.Entry.Args, " "))
				case !status.Exists:
					state = "no config file"
				}
				printf("%-16s %s%s\n", client, state, detail)
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"clients": statuses}, &Meta{Count: installed})
		}
		return nil
	},
}

var mcpShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the MCP config snippet for manual setup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := mcpEntry()
		if err != nil {
			return reportError(err)
		}
		snippet := map[string]interface{}{
			"mcpServers": map[string]interface{}{mcpclient.ServerName: entry},
		}

		if isJSONOutput() {
			outputSuccess(snippet, nil)
			return nil
		}
		out, err := json.MarshalIndent(snippet, "", "  ")
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		printf("%s\n", out)
		return nil
	},
}

func init() {
	mcpInstallCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor)")
	mcpInstallCmd.Flags().BoolVar(&mcpPinFile, "pin", false, "Pin the server to the current todo file")
	_ = mcpInstallCmd.MarkFlagRequired("client")

	mcpRemoveCmd.Flags().StringVar(&mcpClientFlag, "client", "", "MCP client (claude-code, claude-desktop, cursor)")
	_ = mcpRemoveCmd.MarkFlagRequired("client")

	mcpShowCmd.Flags().BoolVar(&mcpPinFile, "pin", false, "Pin the server to the current todo file")

	mcpCmd.AddCommand(mcpInstallCmd)
	mcpCmd.AddCommand(mcpRemoveCmd)
	mcpCmd.AddCommand(mcpStatusCmd)
	mcpCmd.AddCommand(mcpShowCmd)
	rootCmd.AddCommand(mcpCmd)
}
