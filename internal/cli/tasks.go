package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/todo"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

var (
	tasksAddProject  string
	tasksListAll     bool
	tasksDeleteForce bool
)

type taskJSON struct {
	Number      int    `json:"number,omitempty"`
	Project     string `json:"project"`
	Description string `json:"description"`
	Done        bool   `json:"done,omitempty"`
}

type taskGroupJSON struct {
	Project string     `json:"project"`
	Tasks   []taskJSON `json:"tasks"`
}

func toTaskJSON(t todo.Task) taskJSON {
	out := taskJSON{Project: t.Project, Description: t.Description, Done: t.Done}
	if !t.Done {
		out.Number = t.Number()
	}
	return out
}

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"t"},
	Short:   "Manage your task list",
	Long: `Manage the tasks in your todo file.

Open tasks are numbered 1, 2, 3 ... across all projects in file order.
Numbers shift after a task is completed or deleted, so list before you act.`,
}

var tasksAddCmd = &cobra.Command{
	Use:     "add <description...>",
	Aliases: []string{"a"},
	Short:   "Add a new task",
	Example: `  ambrogio tasks add "buy milk" --project Home
  ambrogio t a call the bank`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			return handleErrorMsg(ErrMissingArgument, "task description is required", "Usage: ambrogio tasks add <description>")
		}

		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		projects, err := store.Projects()
		if err != nil {
			return reportError(err)
		}

		project, ok, err := chooseProject(tasksAddProject, projects, "Select a project:")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		if err := store.AddTask(project, description); err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"project":     project,
				"description": description,
			}, nil)
			return nil
		}
		printf("Added to %s: %s\n", project, description)
		return nil
	},
}

var tasksListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List open tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}

		var tasks []todo.Task
		if tasksListAll {
			tasks, err = store.LoadAll()
		} else {
			tasks, err = store.OpenTasks()
		}
		if err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			groups := make([]taskGroupJSON, 0)
			for _, g := range todo.GroupByProject(tasks) {
				group := taskGroupJSON{Project: g.Project, Tasks: make([]taskJSON, 0, len(g.Tasks))}
				for _, t := range g.Tasks {
					group.Tasks = append(group.Tasks, toTaskJSON(t))
				}
				groups = append(groups, group)
			}
			outputSuccess(map[string]interface{}{"groups": groups}, &Meta{Count: len(tasks)})
			return nil
		}

		if len(tasks) == 0 {
			printf("No open todos.\n")
			return nil
		}
		if tasksListAll {
			printAllTasks(tasks)
			return nil
		}
		printTaskList(tasks)
		return nil
	},
}

// printAllTasks lists open tasks with their numbers and done tasks with a check.
func printAllTasks(tasks []todo.Task) {
	open := 0
	for _, t := range tasks {
		if !t.Done {
			open++
		}
	}
	current := ""
	for i, t := range tasks {
		if i == 0 || t.Project != current {
			current = t.Project
			printf("\n  %s\n", ui.ProjectHeader(current))
		}
		if t.Done {
			printf("  %s %s\n", ui.Muted.Render(ui.SymbolSuccess), ui.Muted.Render(t.Description))
			continue
		}
		printf("%s\n", ui.NumberedItem(t.Number(), open, t.Description))
	}
}

var tasksCompleteCmd = &cobra.Command{
	Use:     "complete [number]",
	Aliases: []string{"c", "done"},
	Short:   "Mark a task as complete",
	Long: `Mark an open task as complete.

Without a number, the open tasks are listed and you are asked to pick one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		index, ok, err := pickTask(store, args, "Select a task to complete:", "No open tasks to complete.")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		task, err := store.Complete(index)
		if err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"completed": toTaskJSON(task)}, nil)
			return nil
		}
		printf("Completed: %s\n", task.Description)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:     "delete [number]",
	Aliases: []string{"d", "rm"},
	Short:   "Delete a task",
	Long: `Delete an open task together with its focus sessions and notes.

On a terminal you are asked to confirm unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		index, ok, err := pickTask(store, args, "Select a task to delete:", "No open tasks to delete.")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		if !tasksDeleteForce && canPrompt() {
			tasks, err := store.OpenTasks()
			if err != nil {
				return reportError(err)
			}
			if index < len(tasks) && !promptForConfirm(fmt.Sprintf("Delete '%s'?", tasks[index].Description)) {
				printf("Cancelled.\n")
				return nil
			}
		}

		task, err := store.Delete(index)
		if err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"deleted": toTaskJSON(task)}, nil)
			return nil
		}
		printf("Deleted: %s\n", task.Description)
		return nil
	},
}

// pickTask resolves the target open-index from a number argument or, on a
// terminal, an interactive selection. ok is false when there is nothing to
// pick; the empty message has then been printed.
func pickTask(store *todo.Store, args []string, header, empty string) (index int, ok bool, err error) {
	if len(args) > 0 {
		index, err := parseTaskNumber(args[0])
		if err != nil {
			return 0, false, newCommandError(ErrInvalidInput, err, "Run 'ambrogio tasks list' to see task numbers")
		}
		return index, true, nil
	}

	if !canPrompt() {
		return 0, false, newCommandError(ErrMissingArgument, errors.New("task number is required"), "Run 'ambrogio tasks list' to see task numbers")
	}

	tasks, err := store.OpenTasks()
	if err != nil {
		return 0, false, err
	}
	if len(tasks) == 0 {
		printf("%s\n", empty)
		return 0, false, nil
	}
	index, err = selectTask(header, tasks)
	if err != nil {
		return 0, false, err
	}
	return index, true, nil
}

func init() {
	tasksAddCmd.Flags().StringVarP(&tasksAddProject, "project", "p", "", "Project to add the task to (name or slug)")
	tasksListCmd.Flags().BoolVarP(&tasksListAll, "all", "a", false, "Include completed tasks")
	tasksDeleteCmd.Flags().BoolVar(&tasksDeleteForce, "force", false, "Delete without asking for confirmation")

	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
