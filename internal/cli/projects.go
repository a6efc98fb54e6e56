package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/slugs"
	"github.com/ambrogio-dev/ambrogio/internal/todo"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

var projectsDeleteForce bool

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"p"},
	Short:   "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l", "ls"},
	Short:   "List all projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		summaries, err := store.Summaries()
		if err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			if summaries == nil {
				summaries = []todo.ProjectSummary{}
			}
			outputSuccess(map[string]interface{}{"projects": summaries}, &Meta{Count: len(summaries)})
			return nil
		}

		if len(summaries) == 0 {
			printf("No projects.\n")
			return nil
		}
		rows := make([][]string, 0, len(summaries))
		for i, s := range summaries {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				s.Name,
				strconv.Itoa(s.Open),
				strconv.Itoa(s.Done),
				focusCell(s),
			})
		}
		printf("%s\n", ui.Table(
			[]string{"#", "Project", "Open", "Done", ui.SymbolFocus},
			rows,
			ui.AlignRight, ui.AlignLeft, ui.AlignRight, ui.AlignRight, ui.AlignRight,
		))
		return nil
	},
}

func focusCell(s todo.ProjectSummary) string {
	if s.CancelledFocus == 0 {
		return strconv.Itoa(s.FocusSessions)
	}
	return fmt.Sprintf("%d (%d cancelled)", s.FocusSessions, s.CancelledFocus)
}

var projectsAddCmd = &cobra.Command{
	Use:     "add <name...>",
	Aliases: []string{"a"},
	Short:   "Add a new project",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		if err := store.AddProject(name); err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"project": name, "file": store.Path()}, nil)
			return nil
		}
		printf("Added project: %s\n", name)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:     "delete [name...]",
	Aliases: []string{"d", "rm"},
	Short:   "Delete a project and all its todos",
	Long: `Delete a project together with every task, focus session and note in it.

Without a name you pick the project from a list. You are asked to confirm
unless --force is given; without a terminal --force is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		projects, err := store.Projects()
		if err != nil {
			return reportError(err)
		}

		if len(args) == 0 && len(projects) == 0 && canPrompt() {
			printf("No projects to delete.\n")
			return nil
		}
		name, ok, err := chooseProject(strings.Join(args, " "), projects, "Select a project to delete:")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		if !projectsDeleteForce {
			if !canPrompt() {
				return handleErrorMsg(ErrConfirmationRequired,
					fmt.Sprintf("deleting project '%s' requires confirmation", name),
					"Re-run with --force")
			}
			if !promptForConfirm(fmt.Sprintf("Delete '%s' and all its todos?", name)) {
				printf("Cancelled.\n")
				return nil
			}
		}

		if err := store.DeleteProject(name); err != nil {
			return reportError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"deleted": name}, nil)
			return nil
		}
		printf("Deleted project: %s\n", name)
		return nil
	},
}

// chooseProject resolves a project from a name argument or, on a terminal, an
// interactive selection. An unmatched name is returned unchanged so the store
// reports it. ok is false when there are no projects to choose from.
func chooseProject(name string, projects []string, header string) (string, bool, error) {
	if strings.TrimSpace(name) != "" {
		return slugs.Resolve(name, projects), true, nil
	}

	if !canPrompt() {
		return "", false, newCommandError(ErrMissingArgument, errors.New("project is required"), "Pass a project name; run 'ambrogio projects list' to see them")
	}
	if len(projects) == 0 {
		printf("No projects. Add a project first with: ambrogio projects add <name>\n")
		return "", false, nil
	}
	choice, err := selectItem(header, projects)
	if err != nil {
		return "", false, err
	}
	return projects[choice], true, nil
}

func init() {
	projectsDeleteCmd.Flags().BoolVar(&projectsDeleteForce, "force", false, "Delete without asking for confirmation")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
	rootCmd.AddCommand(projectsCmd)
}
