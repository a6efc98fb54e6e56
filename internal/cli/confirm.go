package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ambrogio-dev/ambrogio/internal/ui"
)

var (
	stdin       io.Reader = os.Stdin
	stdinReader *bufio.Reader

	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	}
)

func inputReader() *bufio.Reader {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(stdin)
	}
	return stdinReader
}

// readLine reads one trimmed line. io.EOF is returned only when nothing was read.
func readLine() (string, error) {
	line, err := inputReader().ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func canPrompt() bool {
	if isJSONOutput() {
		return false
	}
	return isInteractive()
}

func promptForConfirm(message string) bool {
	if !canPrompt() {
		return false
	}
	if message == "" {
		message = "Apply changes?"
	}
	printf("%s %s ", message, ui.Hint("(y/N)"))
	response, _ := readLine()
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}
