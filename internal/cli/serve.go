package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Ambrogio as an MCP server",
	Long: `Run Ambrogio as an MCP (Model Context Protocol) server.

LLM agents can list, add, complete and delete tasks, manage projects, attach
notes and log focus sessions in your todo file.

The server communicates over stdin/stdout using JSON-RPC 2.0. Set up a client
with 'ambrogio mcp install --client <name>'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			// stdout belongs to the protocol; cobra reports on stderr.
			return err
		}

		server := mcp.NewServer(store, currentVersionInfo().Version, mcp.WithLogger(logger))
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
