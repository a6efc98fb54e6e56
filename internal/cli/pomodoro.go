package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/dates"
	"github.com/ambrogio-dev/ambrogio/internal/pomodoro"
	"github.com/ambrogio-dev/ambrogio/internal/todo"
)

var (
	pomodoroMinutes   int
	pomodoroLogAt     string
	pomodoroCancelled bool
)

// runTimer is swapped in tests.
var runTimer = pomodoro.Run

type focusJSON struct {
	Task      taskJSON `json:"task"`
	Outcome   string   `json:"outcome"`
	StartedAt string   `json:"started_at"`
	Minutes   int      `json:"minutes,omitempty"`
	Recorded  bool     `json:"recorded"`
}

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pom"},
	Short:   "Pomodoro focus sessions",
}

var pomodoroStartCmd = &cobra.Command{
	Use:     "start [number]",
	Aliases: []string{"s"},
	Short:   "Start a pomodoro timer on a task",
	Long: `Start a focus timer (25 minutes unless configured otherwise) on an open task.

The session is recorded under the task when the timer ends. Press q, esc or
Ctrl+C to cancel; a cancelled session is recorded as cancelled.

Hooks pomodoro/start, pomodoro/stop and pomodoro/cancel run when present.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPomodoroStart,
}

func runPomodoroStart(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return reportError(err)
	}
	index, ok, err := pickTask(store, args, "Select a task to focus on:", "No open tasks. Add a task first with: ambrogio tasks add <name>")
	if err != nil {
		return reportError(err)
	}
	if !ok {
		return nil
	}
	task, err := openTaskAt(store, index)
	if err != nil {
		return reportError(err)
	}

	minutes := getConfig().PomodoroMinutes()
	if pomodoroMinutes > 0 {
		minutes = pomodoroMinutes
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := newHookRunner()
	env := hookTaskEnv(task)
	warnings := fireHook(ctx, runner, hookFeaturePomodoro, hookEventStart, env...)

	var timerOut io.Writer = stdout
	if isJSONOutput() {
		timerOut = os.Stderr
	} else {
		printf("Starting pomodoro: %s\n", task.Description)
	}

	startedAt := time.Now()
	logger.Debug("pomodoro started", "task", task.Description, "minutes", minutes)
	outcome, err := runTimer(ctx, task.Description, time.Duration(minutes)*time.Minute, pomodoro.Options{Output: timerOut})
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	cancelled := outcome == pomodoro.Cancelled
	logger.Debug("pomodoro finished", "outcome", outcome.String())

	recorded := true
	if _, err := recordFocus(store, task, startedAt, cancelled); err != nil {
		recorded = false
		msg := fmt.Sprintf("focus session not recorded: %v", err)
		warnings = append(warnings, Warning{Code: WarnFocusNotSaved, Message: msg})
		emitHookWarning(msg)
	}

	event := hookEventStop
	if cancelled {
		event = hookEventCancel
	}
	// The session has ended; the hook still runs after a Ctrl+C.
	warnings = append(warnings, fireHook(context.WithoutCancel(ctx), runner, hookFeaturePomodoro, event, env...)...)

	if isJSONOutput() {
		outputSuccessWithWarnings(focusJSON{
			Task:      toTaskJSON(task),
			Outcome:   outcome.String(),
			StartedAt: startedAt.Format(dates.StampLayout),
			Minutes:   minutes,
			Recorded:  recorded,
		}, warnings, nil)
		return nil
	}
	if cancelled {
		printf("\nPomodoro cancelled.\n")
	} else {
		printf("\nPomodoro complete!\n")
	}
	return nil
}

var pomodoroLogCmd = &cobra.Command{
	Use:   "log [number]",
	Short: "Record a focus session without running the timer",
	Example: `  ambrogio pomodoro log 3
  ambrogio pomodoro log 3 --at "2026-03-01 09:30" --cancelled`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startedAt, err := dates.ParseStamp(pomodoroLogAt, time.Now())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use YYYY-MM-DD HH:MM")
		}

		store, err := openStore()
		if err != nil {
			return reportError(err)
		}
		index, ok, err := pickTask(store, args, "Select a task:", "No open tasks. Add a task first with: ambrogio tasks add <name>")
		if err != nil {
			return reportError(err)
		}
		if !ok {
			return nil
		}

		task, err := store.AddFocusRecord(index, startedAt, pomodoroCancelled)
		if err != nil {
			return reportError(err)
		}

		outcome := pomodoro.Completed
		if pomodoroCancelled {
			outcome = pomodoro.Cancelled
		}
		if isJSONOutput() {
			outputSuccess(focusJSON{
				Task:      toTaskJSON(task),
				Outcome:   outcome.String(),
				StartedAt: startedAt.Format(dates.StampLayout),
				Recorded:  true,
			}, nil)
			return nil
		}
		printf("Logged %s focus session at %s for: %s\n", outcome, startedAt.Format(dates.StampLayout), task.Description)
		return nil
	},
}

// openTaskAt returns the open task at index.
func openTaskAt(store *todo.Store, index int) (todo.Task, error) {
	tasks, err := store.OpenTasks()
	if err != nil {
		return todo.Task{}, err
	}
	if index < 0 || index >= len(tasks) {
		return todo.Task{}, fmt.Errorf("%w: task %d (%d open tasks)", todo.ErrIndexOutOfRange, index+1, len(tasks))
	}
	return tasks[index], nil
}

// recordFocus writes the session under task. The file may have changed while
// the timer ran, so the task is looked up again by project and description.
func recordFocus(store *todo.Store, task todo.Task, startedAt time.Time, cancelled bool) (todo.Task, error) {
	tasks, err := store.OpenTasks()
	if err != nil {
		return todo.Task{}, err
	}
	index := -1
	for _, t := range tasks {
		if t.Project != task.Project || t.Description != task.Description {
			continue
		}
		if index == -1 || t.Index == task.Index {
			index = t.Index
		}
	}
	if index == -1 {
		return todo.Task{}, fmt.Errorf("%w: %q is no longer open", todo.ErrIndexOutOfRange, task.Description)
	}
	return store.AddFocusRecord(index, startedAt, cancelled)
}

func hookTaskEnv(task todo.Task) []string {
	return []string{
		"AMBROGIO_TASK=" + task.Description,
		"AMBROGIO_PROJECT=" + task.Project,
	}
}

func init() {
	pomodoroStartCmd.Flags().IntVarP(&pomodoroMinutes, "minutes", "m", 0, "Session length in minutes (default from config, 25)")
	pomodoroLogCmd.Flags().StringVar(&pomodoroLogAt, "at", "", "Start time as YYYY-MM-DD HH:MM (default: now)")
	pomodoroLogCmd.Flags().BoolVar(&pomodoroCancelled, "cancelled", false, "Record the session as cancelled")

	pomodoroCmd.AddCommand(pomodoroStartCmd)
	pomodoroCmd.AddCommand(pomodoroLogCmd)
	rootCmd.AddCommand(pomodoroCmd)
}
