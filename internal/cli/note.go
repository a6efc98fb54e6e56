package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var noteTask int

var noteCmd = &cobra.Command{
	Use:     "note <text...>",
	Aliases: []string{"n"},
	Short:   "Add a note to a task",
	Example: `  ambrogio note "ask Ada about the invoice" --task 2
  ambrogio n remember the receipt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return handleErrorMsg(ErrMissingArgument, "note text is required", "Usage: ambrogio note <text>")
		}

		store, err := openStore()
		if err != nil {
			return reportError(err)
		}

		var taskArgs []string
		if cmd.Flags().Changed("task") {
			taskArgs = []string{strconv.Itoa(noteTask)}
		}
		index, ok, err := pickTask(store, taskArgs, "Select a task:", "No open tasks. Add a task first with: ambrogio tasks add <name>")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		task, err := store.AddNote(index, text)
		if err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"task": toTaskJSON(task),
				"note": text,
			}, nil)
			return nil
		}
		printf("Added note to: %s\n", task.Description)
		return nil
	},
}

func init() {
	noteCmd.Flags().IntVarP(&noteTask, "task", "t", 0, "Task number as shown by 'ambrogio tasks list'")
	rootCmd.AddCommand(noteCmd)
}
