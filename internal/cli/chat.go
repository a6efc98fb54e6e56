package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ambrogio-dev/ambrogio/internal/chat"
	"github.com/ambrogio-dev/ambrogio/internal/config"
	"github.com/ambrogio-dev/ambrogio/internal/llm"
	"github.com/ambrogio-dev/ambrogio/internal/organiser"
	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

// newCompleter builds the LLM client. Tests replace it.
var newCompleter = func(c *config.Config) chat.Completer {
	return llm.NewClient(c.LLM.URL, c.LLM.APIKey, c.LLM.Model, llm.WithLogger(logger))
}

// newChatManager checks the LLM settings, reads the organiser and starts a
// conversation about it.
func newChatManager() (*chat.Manager, error) {
	c := getConfig()
	if err := c.RequireLLM(); err != nil {
		return nil, newCommandError(ErrConfigInvalid, err, "Set the AMBROGIO_LLM_* variables, for example in a .env file")
	}
	path, err := c.RequireOrganiser()
	if err != nil {
		return nil, newCommandError(ErrConfigInvalid, err, "Set organiser_file in the config")
	}
	content, err := organiser.Read(path)
	if err != nil {
		return nil, newCommandError(ErrFileReadError, err, "")
	}
	return chat.NewManager(newCompleter(c), content, time.Now()), nil
}

// runChat is the REPL behind the bare "ambrogio" command.
func runChat(cmd *cobra.Command) error {
	if isJSONOutput() {
		return handleErrorMsg(ErrInvalidInput, "the chat needs a terminal", "Use 'ambrogio ask <question>' with --json")
	}
	manager, err := newChatManager()
	if err != nil {
		return reportError(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	printf("%s\n", ui.Header("Ambrogio - Your daily organiser assistant"))
	printf("%s\n\n", ui.Hint("Type 'quit' or 'exit' to leave"))

	for {
		printf("%s ", ui.AccentBold.Render("you:"))
		line, err := readLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("read input: %w", err)
			}
			printf("\nGoodbye!\n")
			return nil
		}
		if line == "" {
			continue
		}
		if chat.IsExit(line) {
			printf("Goodbye!\n")
			return nil
		}

		reply, err := ask(ctx, manager, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\n%s\n\n", ui.Error(err.Error()))
			continue
		}
		printf("\n%s\n", ui.AccentBold.Render("ambrogio:"))
		printf("%s\n", renderReply(reply))
	}
}

func ask(ctx context.Context, manager *chat.Manager, question string) (string, error) {
	spinner := ui.NewSpinner("Thinking...")
	spinner.Start()
	defer spinner.Stop()
	return manager.Send(ctx, question)
}

// renderReply renders markdown on a terminal and passes it through otherwise.
func renderReply(reply string) string {
	display := ui.NewDisplayContext()
	if !display.IsTTY {
		return strings.TrimRight(reply, "\n") + "\n"
	}
	rendered, err := ui.RenderMarkdown(reply, display.MarkdownWidth())
	if err != nil {
		logger.Debug("markdown render failed", "error", err)
		return strings.TrimRight(reply, "\n") + "\n"
	}
	return rendered
}

var askCmd = &cobra.Command{
	Use:     "ask <question...>",
	Short:   "Ask one question about your daily organiser",
	Example: `  ambrogio ask "what is on tomorrow?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		if question == "" {
			return handleErrorMsg(ErrMissingArgument, "question is required", "Usage: ambrogio ask <question>")
		}
		manager, err := newChatManager()
		if err != nil {
			return reportError(err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		reply, err := ask(ctx, manager, question)
		if err != nil {
			return handleError(ErrLLMUnavailable, err, "Check the [llm] settings and that the endpoint is reachable")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"question": question, "answer": reply}, nil)
			return nil
		}
		printf("%s", renderReply(reply))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
