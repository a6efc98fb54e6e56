package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ambrogio-dev/ambrogio/internal/todo"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

var errNoSelection = errors.New("no selection")

// promptNumber asks for a number between 1 and count until it gets one.
// It returns the zero-based choice.
func promptNumber(count int) (int, error) {
	for {
		printf("Enter number: ")
		input, err := readLine()
		if err != nil {
			printf("\n")
			return 0, errNoSelection
		}
		n, convErr := strconv.Atoi(input)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		printf("Please enter a number between 1 and %d\n", count)
	}
}

// selectItem prints a numbered list under header and prompts for a choice.
func selectItem(header string, items []string) (int, error) {
	printf("%s\n", header)
	for i, item := range items {
		printf("%s\n", ui.NumberedItem(i+1, len(items), item))
	}
	return promptNumber(len(items))
}

// selectTask prints open tasks grouped under project headers and prompts for one.
func selectTask(header string, tasks []todo.Task) (int, error) {
	printf("%s\n", header)
	printTaskList(tasks)
	return promptNumber(len(tasks))
}

// printTaskList prints a project header each time the project changes,
// followed by the globally numbered tasks.
func printTaskList(tasks []todo.Task) {
	current := ""
	for i, t := range tasks {
		if i == 0 || t.Project != current {
			current = t.Project
			printf("\n  %s\n", ui.ProjectHeader(current))
		}
		printf("%s\n", ui.NumberedItem(t.Number(), len(tasks), t.Description))
	}
}

// parseTaskNumber converts a 1-based task number argument to an open-index.
func parseTaskNumber(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q: must be a positive integer", arg)
	}
	return n - 1, nil
}
